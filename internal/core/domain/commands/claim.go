package commands

import (
	"context"
	"errors"
	"time"

	"waifubot/internal/core/domain"
	"waifubot/internal/core/port"
	"waifubot/internal/core/service"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog/log"
)

type ClaimHandler struct {
	store   port.CollectibleStore
	rolls   *service.RollTracker
	command string
}

func NewClaimHandler(store port.CollectibleStore, rolls *service.RollTracker, command string) *ClaimHandler {
	return &ClaimHandler{
		store:   store,
		rolls:   rolls,
		command: command,
	}
}

func (h *ClaimHandler) GetCommand() string {
	return h.command
}

func (h *ClaimHandler) Respond(ctx context.Context, timeout time.Duration, req *domain.Request,
	reply port.Replier) error {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("userId", req.UserID).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	unlock := h.rolls.Lock(req.UserID)
	defer unlock()

	character, ok := h.rolls.Peek(req.UserID)
	if !ok {
		return reply.ReplyEphemeral(ctx, "you have no pending roll, use /gachawaifu first")
	}

	id, err := uuid.NewV4()
	if err != nil {
		return err
	}

	err = h.store.Claim(ctx, domain.ClaimedItem{
		ID:        id.String(),
		OwnerID:   req.UserID,
		ItemID:    character.ID,
		ItemName:  character.Name,
		ItemImage: character.ImageURL,
		ClaimedAt: time.Now().UTC(),
	})

	switch {
	case errors.Is(err, domain.ErrAlreadyClaimed):
		h.rolls.Remove(req.UserID)
		return reply.ReplyEphemeral(ctx, "you have already claimed "+character.Name)
	case err != nil:
		l.Error().Err(err).Msg("failed to store claim")
		return reply.ReplyEphemeral(ctx, "could not save your claim, please try again later")
	}

	h.rolls.Remove(req.UserID)
	l.Debug().Int("itemId", character.ID).Msg("claim stored")

	return reply.ReplyEmbed(ctx, characterEmbed("💍 You claimed "+character.Name, character,
		"see the ranking with /topwaifu"))
}
