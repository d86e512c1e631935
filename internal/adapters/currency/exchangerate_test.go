package currency

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"waifubot/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRate_Convert(t *testing.T) {
	tests := []struct {
		name         string
		responseBody interface{}
		wantResult   float64
		wantErr      bool
		wantUpstream string
	}{
		{
			name: "success rounds to cents",
			responseBody: map[string]interface{}{
				"success": true,
				"result":  155000.456,
			},
			wantResult: 155000.46,
		},
		{
			name: "upstream error surfaced verbatim",
			responseBody: map[string]interface{}{
				"success": false,
				"error": map[string]interface{}{
					"info": "You have entered an invalid \"to\" property. [Example: to=GBP]",
				},
			},
			wantErr:      true,
			wantUpstream: "You have entered an invalid \"to\" property. [Example: to=GBP]",
		},
		{
			name: "failure without info",
			responseBody: map[string]interface{}{
				"success": false,
			},
			wantErr: true,
		},
		{
			name: "missing result field",
			responseBody: map[string]interface{}{
				"success": true,
			},
			wantErr: true,
		},
		{
			name:         "malformed JSON",
			responseBody: "{not_json}",
			wantErr:      true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				params := r.URL.Query()
				assert.Equal(t, "test-api-key", params.Get("access_key"))
				assert.Equal(t, "USD", params.Get("from"))
				assert.Equal(t, "IDR", params.Get("to"))
				assert.Equal(t, "10", params.Get("amount"))

				switch b := tc.responseBody.(type) {
				case string:
					w.Write([]byte(b))
				default:
					json.NewEncoder(w).Encode(b)
				}
			}))
			defer srv.Close()

			e := NewExchangeRate(srv.URL, "test-api-key")

			got, err := e.Convert(t.Context(), "USD", "IDR", 10)
			if tc.wantErr {
				require.Error(t, err)
				if tc.wantUpstream != "" {
					var upstream *domain.UpstreamError
					require.ErrorAs(t, err, &upstream)
					assert.Equal(t, tc.wantUpstream, upstream.Message)
					assert.ErrorIs(t, err, domain.ErrInvalidResponse)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, domain.Conversion{
				From:   "USD",
				To:     "IDR",
				Amount: 10,
				Result: tc.wantResult,
			}, got)
		})
	}
}

func TestExchangeRate_ConvertUnreachable(t *testing.T) {
	e := NewExchangeRate("http://127.0.0.1:1", "test-api-key")

	_, err := e.Convert(t.Context(), "USD", "IDR", 10)

	require.ErrorIs(t, err, domain.ErrUnreachable)
}
