package currency

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"waifubot/internal/core/domain"
)

// ExchangeRate wraps the exchangerate conversion endpoint.
type ExchangeRate struct {
	apiKey   string
	endpoint string
}

func NewExchangeRate(endpoint, apiKey string) *ExchangeRate {
	return &ExchangeRate{
		apiKey:   apiKey,
		endpoint: endpoint,
	}
}

type convertResponse struct {
	Success bool     `json:"success"`
	Result  *float64 `json:"result"`
	Error   struct {
		Info string `json:"info"`
	} `json:"error"`
}

func (e *ExchangeRate) Convert(ctx context.Context, from, to string, amount float64) (domain.Conversion, error) {
	u, err := url.Parse(e.endpoint)
	if err != nil {
		return domain.Conversion{}, fmt.Errorf("invalid currency endpoint: %w", err)
	}

	params := u.Query()
	params.Set("access_key", e.apiKey)
	params.Set("from", from)
	params.Set("to", to)
	params.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Conversion{}, fmt.Errorf("error creating currency request: %w", err)
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return domain.Conversion{}, fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.Conversion{}, fmt.Errorf("error reading currency response: %w", err)
	}

	var result convertResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return domain.Conversion{}, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	if !result.Success {
		if result.Error.Info != "" {
			return domain.Conversion{}, &domain.UpstreamError{Message: result.Error.Info}
		}
		return domain.Conversion{}, fmt.Errorf("%w: currency status %d", domain.ErrInvalidResponse, res.StatusCode)
	}

	if result.Result == nil {
		return domain.Conversion{}, fmt.Errorf("%w: missing result field", domain.ErrInvalidResponse)
	}

	return domain.Conversion{
		From:   from,
		To:     to,
		Amount: amount,
		Result: math.Round(*result.Result*100) / 100,
	}, nil
}
