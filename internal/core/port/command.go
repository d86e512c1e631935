package port

import (
	"context"
	"time"

	"waifubot/internal/core/domain"
)

type Command interface {
	// Respond handles one command invocation within the given timeout and
	// produces exactly one terminal reply through the Replier.
	Respond(ctx context.Context, timeout time.Duration, req *domain.Request, reply Replier) error
	// GetCommand retrieves the command identifier associated with a specific command handler.
	GetCommand() string
}

type Registry interface {
	// Register adds a new command handler to the command registry.
	Register(handler Command)
	// Get retrieves a registered Command based on its string identifier or returns an error if not found.
	Get(command string) (Command, error)
	// ListCommands returns a list of all command identifiers currently registered in the command registry.
	ListCommands() []string
}

type Pager interface {
	// RespondPage handles an authorized pagination button press and
	// produces exactly one terminal reply through the Replier.
	RespondPage(ctx context.Context, timeout time.Duration, action domain.ButtonAction, reply Replier) error
}
