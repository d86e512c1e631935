package commands

import (
	"context"
	"sort"
	"strings"
	"time"

	"waifubot/internal/core/domain"
	"waifubot/internal/core/port"
)

type HelpHandler struct {
	registry port.Registry
	command  string
}

func NewHelpHandler(registry port.Registry, command string) *HelpHandler {
	return &HelpHandler{
		registry: registry,
		command:  command,
	}
}

func (h *HelpHandler) GetCommand() string {
	return h.command
}

func (h *HelpHandler) Respond(ctx context.Context, _ time.Duration, _ *domain.Request,
	reply port.Replier) error {
	names := h.registry.ListCommands()
	sort.Strings(names)

	sb := &strings.Builder{}
	sb.WriteString("Available commands:\n\n")
	for _, name := range names {
		sb.WriteString("/" + name + "\n")
	}

	return reply.ReplyEmbed(ctx, domain.Embed{
		Title:       "❓ Help",
		Description: sb.String(),
		Color:       domain.EmbedColor,
	})
}
