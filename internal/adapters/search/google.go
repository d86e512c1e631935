package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"waifubot/internal/core/domain"
)

// Google wraps the Google Custom Search JSON API.
type Google struct {
	apiKey   string
	engineID string
	endpoint string
}

func NewGoogle(endpoint, apiKey, engineID string) *Google {
	return &Google{
		apiKey:   apiKey,
		engineID: engineID,
		endpoint: endpoint,
	}
}

type searchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

func (g *Google) Search(ctx context.Context, query string, page int) ([]domain.SearchResult, error) {
	u, err := url.Parse(g.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid search endpoint: %w", err)
	}

	// the API counts results 1-based, ten per page
	offset := (page-1)*domain.SearchPageSize + 1

	params := u.Query()
	params.Set("key", g.apiKey)
	params.Set("cx", g.engineID)
	params.Set("q", query)
	params.Set("start", strconv.Itoa(offset))
	params.Set("num", strconv.Itoa(domain.SearchPageSize))
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating search request: %w", err)
	}

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: search status %d", domain.ErrInvalidResponse, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading search response: %w", err)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	// a page without items is a valid outcome past the last page
	results := make([]domain.SearchResult, len(result.Items))
	for i, item := range result.Items {
		results[i] = domain.SearchResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		}
	}

	return results, nil
}
