package port

import (
	"context"

	"waifubot/internal/core/domain"
)

// Replier is the per-interaction reply surface. Defer may be called at most
// once and only before a terminal reply. Exactly one of the Reply* methods
// may succeed per interaction; any later attempt fails with
// domain.ErrAlreadyReplied without sending anything. FollowUpEmbed is only
// valid after a terminal reply and may be used any number of times.
type Replier interface {
	// Defer acknowledges the interaction early; the terminal reply then
	// edits the placeholder.
	Defer(ctx context.Context) error
	// Reply sends the terminal plain-text reply.
	Reply(ctx context.Context, text string) error
	// ReplyEphemeral sends the terminal reply visible only to the requester.
	ReplyEphemeral(ctx context.Context, text string) error
	// ReplyEmbed sends the terminal reply as a single embed.
	ReplyEmbed(ctx context.Context, embed domain.Embed) error
	// ReplyPage sends the terminal reply as an embed with pagination controls.
	ReplyPage(ctx context.Context, embed domain.Embed, controls domain.PageControls) error
	// ReplyFile sends the terminal reply with a file attachment.
	ReplyFile(ctx context.Context, name string, data []byte, text string) error
	// FollowUpEmbed sends an additional embed after the terminal reply.
	FollowUpEmbed(ctx context.Context, embed domain.Embed) error
	// Replied reports whether a terminal reply has been sent.
	Replied() bool
	// Deferred reports whether the interaction was acknowledged with a placeholder.
	Deferred() bool
}
