package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"

	"waifubot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

// poolSize is the candidate pool fetched for a random roll. The API has no
// random-selection primitive, so selection happens client-side.
const poolSize = 50

const poolQuery = `query {
  Page(page: 1, perPage: 50) {
    characters(sort: FAVOURITES_DESC) {
      id
      name { full }
      image { large }
      favourites
    }
  }
}`

const searchQuery = `query ($search: String) {
  Character(search: $search) {
    id
    name { full }
    image { large }
    favourites
  }
}`

// AniList wraps the AniList GraphQL character database.
type AniList struct {
	endpoint string
}

func NewAniList(endpoint string) *AniList {
	return &AniList{endpoint: endpoint}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlCharacter struct {
	ID   int `json:"id"`
	Name struct {
		Full string `json:"full"`
	} `json:"name"`
	Image struct {
		Large string `json:"large"`
	} `json:"image"`
	Favourites int `json:"favourites"`
}

type gqlResponse struct {
	Data struct {
		Page *struct {
			Characters []gqlCharacter `json:"characters"`
		} `json:"Page"`
		Character *gqlCharacter `json:"Character"`
	} `json:"data"`
}

func (a *AniList) Random(ctx context.Context) (domain.Character, error) {
	result, err := a.postQuery(ctx, gqlRequest{Query: poolQuery})
	if err != nil {
		return domain.Character{}, err
	}

	if result.Data.Page == nil || len(result.Data.Page.Characters) == 0 {
		return domain.Character{}, fmt.Errorf("%w: empty character pool", domain.ErrInvalidResponse)
	}

	pool := result.Data.Page.Characters
	picked := pool[rand.IntN(len(pool))]

	log.Debug().Int("poolSize", len(pool)).Int("characterId", picked.ID).Msg("rolled character")

	return toCharacter(picked), nil
}

func (a *AniList) FindByName(ctx context.Context, name string) (domain.Character, error) {
	result, err := a.postQuery(ctx, gqlRequest{
		Query:     searchQuery,
		Variables: map[string]any{"search": name},
	})
	if err != nil {
		return domain.Character{}, err
	}

	if result.Data.Character == nil {
		return domain.Character{}, domain.ErrNotFound
	}

	return toCharacter(*result.Data.Character), nil
}

func (a *AniList) postQuery(ctx context.Context, query gqlRequest) (*gqlResponse, error) {
	payloadBuf := new(bytes.Buffer)
	if err := json.NewEncoder(payloadBuf).Encode(query); err != nil {
		return nil, fmt.Errorf("error encoding GraphQL request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, payloadBuf)
	if err != nil {
		return nil, fmt.Errorf("error creating GraphQL request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	client := &http.Client{}
	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnreachable, err)
	}

	defer res.Body.Close()

	// AniList answers 404 with a null Character; treat it as a valid body
	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusNotFound {
		return nil, fmt.Errorf("%w: character database status %d", domain.ErrInvalidResponse, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GraphQL response: %w", err)
	}

	var result gqlResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidResponse, err)
	}

	return &result, nil
}

func toCharacter(c gqlCharacter) domain.Character {
	return domain.Character{
		ID:         c.ID,
		Name:       c.Name.Full,
		ImageURL:   c.Image.Large,
		Favourites: c.Favourites,
	}
}
