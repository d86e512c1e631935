package anilist

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"waifubot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func poolBody(names ...string) map[string]interface{} {
	characters := make([]interface{}, len(names))
	for i, name := range names {
		characters[i] = map[string]interface{}{
			"id":         i + 1,
			"name":       map[string]interface{}{"full": name},
			"image":      map[string]interface{}{"large": "http://img/" + name},
			"favourites": 100 * (i + 1),
		}
	}

	return map[string]interface{}{
		"data": map[string]interface{}{
			"Page": map[string]interface{}{
				"characters": characters,
			},
		},
	}
}

func TestAniList_Random(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Query, "FAVOURITES_DESC")

		json.NewEncoder(w).Encode(poolBody("Rem", "Ram", "Emilia"))
	}))
	defer srv.Close()

	a := NewAniList(srv.URL)

	got, err := a.Random(t.Context())

	require.NoError(t, err)
	assert.Contains(t, []string{"Rem", "Ram", "Emilia"}, got.Name)
	assert.NotZero(t, got.ID)
	assert.NotEmpty(t, got.ImageURL)
}

func TestAniList_RandomEmptyPool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(poolBody())
	}))
	defer srv.Close()

	a := NewAniList(srv.URL)

	_, err := a.Random(t.Context())

	require.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestAniList_FindByName(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req gqlRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Rem", req.Variables["search"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"Character": map[string]interface{}{
					"id":         7,
					"name":       map[string]interface{}{"full": "Rem"},
					"image":      map[string]interface{}{"large": "http://img/rem"},
					"favourites": 12000,
				},
			},
		})
	}))
	defer srv.Close()

	a := NewAniList(srv.URL)

	got, err := a.FindByName(t.Context(), "Rem")

	require.NoError(t, err)
	assert.Equal(t, domain.Character{
		ID:         7,
		Name:       "Rem",
		ImageURL:   "http://img/rem",
		Favourites: 12000,
	}, got)
}

func TestAniList_FindByNameNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// AniList answers unknown names with a 404 and a null Character
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"Character": nil},
		})
	}))
	defer srv.Close()

	a := NewAniList(srv.URL)

	_, err := a.FindByName(t.Context(), "nobody")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAniList_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewAniList(srv.URL)

	_, err := a.Random(t.Context())

	require.ErrorIs(t, err, domain.ErrInvalidResponse)
}

func TestAniList_Unreachable(t *testing.T) {
	a := NewAniList("http://127.0.0.1:1")

	_, err := a.Random(t.Context())

	require.ErrorIs(t, err, domain.ErrUnreachable)
}
