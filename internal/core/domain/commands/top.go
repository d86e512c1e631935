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

const leaderboardSize = 10

type TopHandler struct {
	store   port.CollectibleStore
	users   port.UserResolver
	command string
}

func NewTopHandler(store port.CollectibleStore, users port.UserResolver, command string) *TopHandler {
	return &TopHandler{
		store:   store,
		users:   users,
		command: command,
	}
}

func (h *TopHandler) GetCommand() string {
	return h.command
}

func (h *TopHandler) Respond(ctx context.Context, timeout time.Duration, req *domain.Request,
	reply port.Replier) error {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("userId", req.UserID).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := reply.Defer(ctx); err != nil {
		return err
	}

	rows, err := h.store.Leaderboard(ctx, leaderboardSize)
	if err != nil {
		l.Error().Err(err).Msg("failed to load leaderboard")
		return reply.Reply(ctx, "could not load the leaderboard, please try again later")
	}

	if len(rows) == 0 {
		return reply.Reply(ctx, "nobody has claimed a waifu yet")
	}

	sb := &strings.Builder{}
	for i, row := range rows {
		name, err := h.users.DisplayName(ctx, row.OwnerID)
		if err != nil {
			l.Warn().Err(err).Str("ownerId", row.OwnerID).Msg("could not resolve display name")
			name = row.OwnerID
		}

		fmt.Fprintf(sb, "%d. **%s**: %d waifus\n", i+1, name, row.Count)
	}

	return reply.ReplyEmbed(ctx, domain.Embed{
		Title:       "🏆 Waifu Leaderboard",
		Description: sb.String(),
		Color:       domain.EmbedColor,
	})
}
