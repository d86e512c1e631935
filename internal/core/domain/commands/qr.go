package commands

import (
	"context"
	"strings"
	"time"

	"waifubot/internal/core/domain"
	"waifubot/internal/core/port"

	"github.com/rs/zerolog/log"
)

type QRHandler struct {
	encoder port.QREncoder
	command string
}

func NewQRHandler(encoder port.QREncoder, command string) *QRHandler {
	return &QRHandler{
		encoder: encoder,
		command: command,
	}
}

func (h *QRHandler) GetCommand() string {
	return h.command
}

func (h *QRHandler) Respond(ctx context.Context, timeout time.Duration, req *domain.Request,
	reply port.Replier) error {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("userId", req.UserID).
		Logger()

	l.Info().Msg("handling request")

	text := strings.TrimSpace(req.Args.String("text"))
	if text == "" {
		return reply.ReplyEphemeral(ctx, "please provide a text to encode")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := reply.Defer(ctx); err != nil {
		return err
	}

	image, err := h.encoder.Encode(ctx, text)
	if err != nil {
		l.Error().Err(err).Msg("QR rendering failed")
		return reply.Reply(ctx, "could not render the QR code, please try again later")
	}

	return reply.ReplyFile(ctx, "qr.png", image, "here is your QR code:")
}
