package commands

import (
	"context"
	"fmt"
	"time"

	"waifubot/internal/core/domain"
	"waifubot/internal/core/port"
	"waifubot/internal/core/service"

	"github.com/rs/zerolog/log"
)

type RollHandler struct {
	characters port.CharacterSource
	rolls      *service.RollTracker
	command    string
}

func NewRollHandler(characters port.CharacterSource, rolls *service.RollTracker, command string) *RollHandler {
	return &RollHandler{
		characters: characters,
		rolls:      rolls,
		command:    command,
	}
}

func (h *RollHandler) GetCommand() string {
	return h.command
}

func (h *RollHandler) Respond(ctx context.Context, timeout time.Duration, req *domain.Request,
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

	unlock := h.rolls.Lock(req.UserID)
	defer unlock()

	character, err := h.characters.Random(ctx)
	if err != nil {
		l.Error().Err(err).Msg("character roll failed")
		return reply.Reply(ctx, "could not reach the character database, please try again later")
	}

	h.rolls.Put(req.UserID, character)

	return reply.ReplyEmbed(ctx, characterEmbed("✨ You rolled "+character.Name, character,
		"use /klaimwaifu to claim her before rolling again"))
}

func characterEmbed(title string, character domain.Character, footer string) domain.Embed {
	return domain.Embed{
		Title:    title,
		Color:    domain.EmbedColor,
		ImageURL: character.ImageURL,
		Fields: []domain.EmbedField{
			{Name: "Popularity", Value: fmt.Sprintf("%d favourites", character.Favourites), Inline: true},
		},
		Footer: footer,
	}
}
