package commands

import (
	"context"
	"time"

	"waifubot/internal/core/domain"
	"waifubot/internal/core/port"
)

type PingHandler struct {
	command string
}

func NewPingHandler(command string) *PingHandler {
	return &PingHandler{command: command}
}

func (h *PingHandler) GetCommand() string {
	return h.command
}

func (h *PingHandler) Respond(ctx context.Context, _ time.Duration, _ *domain.Request,
	reply port.Replier) error {
	return reply.Reply(ctx, "Pong! 🏓")
}
