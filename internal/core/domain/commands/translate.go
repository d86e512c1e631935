package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"waifubot/internal/core/domain"
	"waifubot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type TranslateHandler struct {
	completer port.Completer
	command   string
}

func NewTranslateHandler(completer port.Completer, command string) *TranslateHandler {
	return &TranslateHandler{
		completer: completer,
		command:   command,
	}
}

func (h *TranslateHandler) GetCommand() string {
	return h.command
}

func (h *TranslateHandler) Respond(ctx context.Context, timeout time.Duration, req *domain.Request,
	reply port.Replier) error {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("userId", req.UserID).
		Logger()

	l.Info().Msg("handling request")

	text := strings.TrimSpace(req.Args.String("text"))
	if text == "" {
		return reply.ReplyEphemeral(ctx, "please provide a text to translate")
	}

	target := strings.TrimSpace(req.Args.String("target_language"))
	if target == "" {
		return reply.ReplyEphemeral(ctx, "please provide a target language")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := reply.Defer(ctx); err != nil {
		return err
	}

	prompts := []domain.Prompt{
		{Author: domain.System, Text: "You translate texts. Reply with the translation only."},
		{Author: domain.User, Text: fmt.Sprintf("Translate the following text to %s:\n\n%s", target, text)},
	}

	translation, err := h.completer.Complete(ctx, prompts)
	if err != nil {
		l.Error().Err(err).Msg("failed to generate translation")
		return reply.Reply(ctx, "failed to translate, please try again later")
	}

	return sendChunked(ctx, reply, translation, "🌐 Translation", "Translation, part")
}
