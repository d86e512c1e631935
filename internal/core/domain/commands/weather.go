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

type WeatherHandler struct {
	weather port.WeatherProvider
	command string
}

func NewWeatherHandler(weather port.WeatherProvider, command string) *WeatherHandler {
	return &WeatherHandler{
		weather: weather,
		command: command,
	}
}

func (h *WeatherHandler) GetCommand() string {
	return h.command
}

func (h *WeatherHandler) Respond(ctx context.Context, timeout time.Duration, req *domain.Request,
	reply port.Replier) error {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("userId", req.UserID).
		Logger()

	l.Info().Msg("handling request")

	city := strings.TrimSpace(req.Args.String("city"))
	if city == "" {
		return reply.ReplyEphemeral(ctx, "please provide a city name")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := reply.Defer(ctx); err != nil {
		return err
	}

	report, err := h.weather.Current(ctx, city)
	if err != nil {
		l.Error().Err(err).Msg("weather lookup failed")
		return reply.Reply(ctx, fmt.Sprintf("could not fetch weather for %q: city not found or upstream error", city))
	}

	return reply.ReplyEmbed(ctx, domain.Embed{
		Title:       "🌦 Weather in " + report.City,
		Description: report.Description,
		Color:       domain.EmbedColor,
		Fields: []domain.EmbedField{
			{Name: "Temperature", Value: fmt.Sprintf("%.1f °C", report.Temperature), Inline: true},
			{Name: "Feels like", Value: fmt.Sprintf("%.1f °C", report.FeelsLike), Inline: true},
			{Name: "Humidity", Value: fmt.Sprintf("%d%%", report.Humidity), Inline: true},
			{Name: "Wind", Value: fmt.Sprintf("%.1f m/s", report.WindSpeed), Inline: true},
		},
	})
}
