package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"waifubot/internal/core/domain"
	"waifubot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type FindHandler struct {
	characters port.CharacterSource
	command    string
}

func NewFindHandler(characters port.CharacterSource, command string) *FindHandler {
	return &FindHandler{
		characters: characters,
		command:    command,
	}
}

func (h *FindHandler) GetCommand() string {
	return h.command
}

func (h *FindHandler) Respond(ctx context.Context, timeout time.Duration, req *domain.Request,
	reply port.Replier) error {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("userId", req.UserID).
		Logger()

	l.Info().Msg("handling request")

	name := strings.TrimSpace(req.Args.String("name"))
	if name == "" {
		return reply.ReplyEphemeral(ctx, "please provide a character name")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := reply.Defer(ctx); err != nil {
		return err
	}

	character, err := h.characters.FindByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return reply.Reply(ctx, fmt.Sprintf("no character named %q found", name))
	}

	if err != nil {
		l.Error().Err(err).Msg("character lookup failed")
		return reply.Reply(ctx, "could not reach the character database, please try again later")
	}

	return reply.ReplyEmbed(ctx, characterEmbed("🔍 "+character.Name, character, ""))
}
