package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseButtonID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		want    ButtonAction
		wantErr bool
	}{
		{
			name: "next action",
			id:   "next_12345",
			want: ButtonAction{Action: PageNext, OwnerID: "12345"},
		},
		{
			name: "prev action",
			id:   "prev_6789",
			want: ButtonAction{Action: PagePrev, OwnerID: "6789"},
		},
		{
			name:    "unknown action",
			id:      "jump_12345",
			wantErr: true,
		},
		{
			name:    "missing owner",
			id:      "next_",
			wantErr: true,
		},
		{
			name:    "no separator",
			id:      "next",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseButtonID(tc.id)
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPageButtonIDRoundTrip(t *testing.T) {
	id := PageButtonID(PageNext, "42")
	got, err := ParseButtonID(id)

	require.NoError(t, err)
	assert.Equal(t, ButtonAction{Action: PageNext, OwnerID: "42"}, got)
}

func TestArgsAccessors(t *testing.T) {
	args := Args{
		"question": "why",
		"amount":   10.5,
		"blank":    "   ",
	}

	assert.Equal(t, "why", args.String("question"))
	assert.Equal(t, "", args.String("missing"))
	assert.Equal(t, "", args.String("amount"))
	assert.InDelta(t, 10.5, args.Float("amount"), 0.001)
	assert.Zero(t, args.Float("question"))
	assert.Equal(t, "medium", args.StringOr("blank", "medium"))
	assert.Equal(t, "medium", args.StringOr("missing", "medium"))
	assert.Equal(t, "why", args.StringOr("question", "medium"))
}
