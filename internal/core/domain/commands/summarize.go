package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"waifubot/internal/core/domain"
	"waifubot/internal/core/port"
	"waifubot/internal/core/service"

	"github.com/rs/zerolog/log"
)

var summaryLengths = map[string]string{
	"short":  "two or three sentences",
	"medium": "one concise paragraph",
	"long":   "several detailed paragraphs",
}

type SummarizeHandler struct {
	completer port.Completer
	stats     *service.Stats
	command   string
}

func NewSummarizeHandler(completer port.Completer, stats *service.Stats, command string) *SummarizeHandler {
	return &SummarizeHandler{
		completer: completer,
		stats:     stats,
		command:   command,
	}
}

func (h *SummarizeHandler) GetCommand() string {
	return h.command
}

func (h *SummarizeHandler) Respond(ctx context.Context, timeout time.Duration, req *domain.Request,
	reply port.Replier) error {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("userId", req.UserID).
		Logger()

	l.Info().Msg("handling request")

	text := strings.TrimSpace(req.Args.String("text"))
	if text == "" {
		return reply.ReplyEphemeral(ctx, "please provide a text to summarize")
	}

	length := req.Args.StringOr("length", "medium")
	style, ok := summaryLengths[length]
	if !ok {
		return reply.ReplyEphemeral(ctx, "length must be one of: short, medium, long")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := reply.Defer(ctx); err != nil {
		return err
	}

	prompts := []domain.Prompt{
		{Author: domain.System, Text: "You summarize texts. Reply with the summary only."},
		{Author: domain.User, Text: fmt.Sprintf("Summarize the following text in %s:\n\n%s", style, text)},
	}

	summary, err := h.completer.Complete(ctx, prompts)
	if err != nil {
		l.Error().Err(err).Msg("failed to generate summary")
		return reply.Reply(ctx, "failed to generate a summary, please try again later")
	}

	h.stats.SummaryDone()

	return sendChunked(ctx, reply, summary, "📝 Summary", "Summary, part")
}
