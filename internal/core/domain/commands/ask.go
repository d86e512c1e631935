package commands

import (
	"context"
	"strings"
	"time"

	"waifubot/internal/core/domain"
	"waifubot/internal/core/port"
	"waifubot/internal/core/service"

	"github.com/rs/zerolog/log"
)

type AskHandler struct {
	completer port.Completer
	stats     *service.Stats
	command   string
}

func NewAskHandler(completer port.Completer, stats *service.Stats, command string) *AskHandler {
	return &AskHandler{
		completer: completer,
		stats:     stats,
		command:   command,
	}
}

func (h *AskHandler) GetCommand() string {
	return h.command
}

func (h *AskHandler) Respond(ctx context.Context, timeout time.Duration, req *domain.Request,
	reply port.Replier) error {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("userId", req.UserID).
		Logger()

	l.Info().Msg("handling request")

	question := strings.TrimSpace(req.Args.String("question"))
	if question == "" {
		return reply.ReplyEphemeral(ctx, "please provide a question")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := reply.Defer(ctx); err != nil {
		return err
	}

	answer, err := h.completer.Complete(ctx, []domain.Prompt{{Author: domain.User, Text: question}})
	if err != nil {
		l.Error().Err(err).Msg("failed to generate answer")
		return reply.Reply(ctx, "failed to generate an answer, please try again later")
	}

	h.stats.CompletionDone()

	return sendChunked(ctx, reply, answer, "💡 AI Answer", "AI Answer, part")
}

// sendChunked delivers text that may exceed the embed limit: the first
// chunk is the terminal reply, later chunks go out as follow-ups.
func sendChunked(ctx context.Context, reply port.Replier, text, title, contPrefix string) error {
	chunks := domain.SplitText(text, title, contPrefix)

	err := reply.ReplyEmbed(ctx, domain.Embed{
		Title:       chunks[0].Title,
		Description: chunks[0].Body,
		Color:       domain.EmbedColor,
	})
	if err != nil {
		return err
	}

	for _, chunk := range chunks[1:] {
		err = reply.FollowUpEmbed(ctx, domain.Embed{
			Title:       chunk.Title,
			Description: chunk.Body,
			Color:       domain.EmbedColor,
		})
		if err != nil {
			return err
		}
	}

	return nil
}
