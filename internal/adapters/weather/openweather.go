package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"waifubot/internal/core/domain"
)

// OpenWeather wraps the OpenWeatherMap current-weather endpoint.
type OpenWeather struct {
	apiKey   string
	endpoint string
}

func NewOpenWeather(endpoint, apiKey string) *OpenWeather {
	return &OpenWeather{
		apiKey:   apiKey,
		endpoint: endpoint,
	}
}

type weatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (o *OpenWeather) Current(ctx context.Context, city string) (domain.WeatherReport, error) {
	u, err := url.Parse(o.endpoint)
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("invalid weather endpoint: %w", err)
	}

	params := u.Query()
	params.Set("q", city)
	params.Set("appid", o.apiKey)
	params.Set("units", "metric")
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("error creating weather request: %w", err)
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}

	defer res.Body.Close()

	// a 404 for an unknown city and an upstream failure are not distinguished
	if res.StatusCode != http.StatusOK {
		return domain.WeatherReport{}, fmt.Errorf("%w: weather status %d", domain.ErrInvalidResponse, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.WeatherReport{}, fmt.Errorf("error reading weather response: %w", err)
	}

	var result weatherResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.WeatherReport{}, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	if len(result.Weather) == 0 {
		return domain.WeatherReport{}, fmt.Errorf("%w: missing weather field", domain.ErrInvalidResponse)
	}

	report := domain.WeatherReport{
		City:        city,
		Description: result.Weather[0].Description,
		Temperature: result.Main.Temp,
		FeelsLike:   result.Main.FeelsLike,
		Humidity:    result.Main.Humidity,
		WindSpeed:   result.Wind.Speed,
	}

	if result.Name != "" {
		report.City = result.Name
	}

	return report, nil
}
