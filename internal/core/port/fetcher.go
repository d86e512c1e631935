package port

import (
	"context"

	"waifubot/internal/core/domain"
)

// Each adapter performs exactly one outbound call per invocation; failures
// are classified and surfaced immediately, never retried.

type Completer interface {
	// Complete sends the role-tagged prompts to the completion endpoint and
	// returns the answer text. A response with no answer yields a fallback
	// string, not an error.
	Complete(ctx context.Context, prompts []domain.Prompt) (string, error)
}

type Searcher interface {
	// Search returns up to one page of results for the 1-based page number.
	// An empty page is a valid outcome.
	Search(ctx context.Context, query string, page int) ([]domain.SearchResult, error)
}

type CurrencyConverter interface {
	// Convert converts amount between two upper-case currency codes,
	// rounded to two decimal places.
	Convert(ctx context.Context, from, to string, amount float64) (domain.Conversion, error)
}

type WeatherProvider interface {
	Current(ctx context.Context, city string) (domain.WeatherReport, error)
}

type QREncoder interface {
	// Encode renders text as a PNG image.
	Encode(ctx context.Context, text string) ([]byte, error)
}

type CharacterSource interface {
	// Random returns a uniformly chosen character from a fixed candidate pool.
	Random(ctx context.Context) (domain.Character, error)
	// FindByName returns the best match or domain.ErrNotFound.
	FindByName(ctx context.Context, name string) (domain.Character, error)
}
