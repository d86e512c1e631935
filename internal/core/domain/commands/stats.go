package commands

import (
	"context"
	"fmt"
	"time"

	"waifubot/internal/core/domain"
	"waifubot/internal/core/port"
	"waifubot/internal/core/service"
)

type StatsHandler struct {
	stats   *service.Stats
	command string
}

func NewStatsHandler(stats *service.Stats, command string) *StatsHandler {
	return &StatsHandler{
		stats:   stats,
		command: command,
	}
}

func (h *StatsHandler) GetCommand() string {
	return h.command
}

func (h *StatsHandler) Respond(ctx context.Context, _ time.Duration, _ *domain.Request,
	reply port.Replier) error {
	completions, summaries, uptime := h.stats.Snapshot()

	return reply.ReplyEmbed(ctx, domain.Embed{
		Title: "📊 Bot Stats",
		Color: domain.EmbedColor,
		Fields: []domain.EmbedField{
			{Name: "Questions answered", Value: fmt.Sprintf("%d", completions), Inline: true},
			{Name: "Texts summarized", Value: fmt.Sprintf("%d", summaries), Inline: true},
			{Name: "Uptime", Value: uptime.Truncate(time.Second).String(), Inline: true},
		},
	})
}
