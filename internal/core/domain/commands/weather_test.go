package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"waifubot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockWeatherProvider struct {
	report domain.WeatherReport
	err    error
	city   string
}

func (m *MockWeatherProvider) Current(_ context.Context, city string) (domain.WeatherReport, error) {
	m.city = city
	return m.report, m.err
}

func weatherRequest(city string) *domain.Request {
	return &domain.Request{
		Command: "weather",
		Args:    domain.Args{"city": city},
		UserID:  "user-1",
	}
}

func TestWeatherHandlerSuccess(t *testing.T) {
	mw := &MockWeatherProvider{report: domain.WeatherReport{
		City:        "Berlin",
		Description: "scattered clouds",
		Temperature: 18.4,
		FeelsLike:   17.9,
		Humidity:    62,
		WindSpeed:   4.2,
	}}
	mr := &MockReplier{}
	h := NewWeatherHandler(mw, "weather")

	err := h.Respond(context.Background(), time.Minute, weatherRequest("berlin"), mr)

	require.NoError(t, err)
	assert.Equal(t, "berlin", mw.city)
	require.Len(t, mr.embeds, 1)
	assert.Equal(t, "🌦 Weather in Berlin", mr.embeds[0].Title)
	assert.Equal(t, "scattered clouds", mr.embeds[0].Description)
	require.Len(t, mr.embeds[0].Fields, 4)
	assert.Equal(t, "18.4 °C", mr.embeds[0].Fields[0].Value)
	assert.Equal(t, "62%", mr.embeds[0].Fields[2].Value)
}

func TestWeatherHandlerEmptyCity(t *testing.T) {
	mr := &MockReplier{}
	h := NewWeatherHandler(&MockWeatherProvider{}, "weather")

	err := h.Respond(context.Background(), time.Minute, weatherRequest(" "), mr)

	require.NoError(t, err)
	assert.Equal(t, "please provide a city name", mr.ephemeral)
}

func TestWeatherHandlerProviderError(t *testing.T) {
	mw := &MockWeatherProvider{err: errors.New("mock error")}
	mr := &MockReplier{}
	h := NewWeatherHandler(mw, "weather")

	err := h.Respond(context.Background(), time.Minute, weatherRequest("atlantis"), mr)

	require.NoError(t, err)
	assert.Equal(t, `could not fetch weather for "atlantis": city not found or upstream error`, mr.text)
}
