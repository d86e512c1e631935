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

type CurrencyHandler struct {
	converter port.CurrencyConverter
	command   string
}

func NewCurrencyHandler(converter port.CurrencyConverter, command string) *CurrencyHandler {
	return &CurrencyHandler{
		converter: converter,
		command:   command,
	}
}

func (h *CurrencyHandler) GetCommand() string {
	return h.command
}

func (h *CurrencyHandler) Respond(ctx context.Context, timeout time.Duration, req *domain.Request,
	reply port.Replier) error {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("userId", req.UserID).
		Logger()

	l.Info().Msg("handling request")

	from := strings.ToUpper(strings.TrimSpace(req.Args.String("from")))
	to := strings.ToUpper(strings.TrimSpace(req.Args.String("to")))
	if len(from) != 3 || len(to) != 3 {
		return reply.ReplyEphemeral(ctx, "currency codes must be 3-letter ISO codes, e.g. USD")
	}

	amount := req.Args.Float("amount")
	if amount <= 0 {
		return reply.ReplyEphemeral(ctx, "amount must be a positive number")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := reply.Defer(ctx); err != nil {
		return err
	}

	conversion, err := h.converter.Convert(ctx, from, to, amount)
	if err != nil {
		l.Error().Err(err).Msg("conversion failed")

		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			return reply.Reply(ctx, "conversion failed: "+upstream.Message)
		}

		return reply.Reply(ctx, "conversion failed, please try again later")
	}

	return reply.ReplyEmbed(ctx, domain.Embed{
		Title: "💱 Currency Conversion",
		Description: fmt.Sprintf("%.2f %s = %.2f %s",
			conversion.Amount, conversion.From, conversion.Result, conversion.To),
		Color: domain.EmbedColor,
	})
}
