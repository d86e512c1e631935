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

type MockResolver struct {
	names map[string]string
}

func (m *MockResolver) DisplayName(_ context.Context, userID string) (string, error) {
	name, ok := m.names[userID]
	if !ok {
		return "", errors.New("unknown user")
	}
	return name, nil
}

func topRequest() *domain.Request {
	return &domain.Request{
		Command: "topwaifu",
		Args:    domain.Args{},
		UserID:  "user-1",
	}
}

func TestTopHandlerSuccess(t *testing.T) {
	ms := &MockStore{rows: []domain.LeaderboardRow{
		{OwnerID: "1", Count: 5},
		{OwnerID: "2", Count: 3},
	}}
	resolver := &MockResolver{names: map[string]string{"1": "alice", "2": "bob"}}
	mr := &MockReplier{}
	h := NewTopHandler(ms, resolver, "topwaifu")

	err := h.Respond(context.Background(), time.Minute, topRequest(), mr)

	require.NoError(t, err)
	assert.True(t, mr.deferred)
	assert.Equal(t, leaderboardSize, ms.limit)
	require.Len(t, mr.embeds, 1)
	assert.Equal(t, "🏆 Waifu Leaderboard", mr.embeds[0].Title)
	assert.Contains(t, mr.embeds[0].Description, "1. **alice**: 5 waifus")
	assert.Contains(t, mr.embeds[0].Description, "2. **bob**: 3 waifus")
}

func TestTopHandlerEmptyLeaderboard(t *testing.T) {
	ms := &MockStore{}
	mr := &MockReplier{}
	h := NewTopHandler(ms, &MockResolver{}, "topwaifu")

	err := h.Respond(context.Background(), time.Minute, topRequest(), mr)

	require.NoError(t, err)
	assert.Equal(t, "nobody has claimed a waifu yet", mr.text)
}

func TestTopHandlerStoreError(t *testing.T) {
	ms := &MockStore{rowsErr: errors.New("mock error")}
	mr := &MockReplier{}
	h := NewTopHandler(ms, &MockResolver{}, "topwaifu")

	err := h.Respond(context.Background(), time.Minute, topRequest(), mr)

	require.NoError(t, err)
	assert.Equal(t, "could not load the leaderboard, please try again later", mr.text)
}

func TestTopHandlerNameLookupFallsBackToID(t *testing.T) {
	ms := &MockStore{rows: []domain.LeaderboardRow{
		{OwnerID: "1", Count: 5},
		{OwnerID: "999", Count: 2},
	}}
	resolver := &MockResolver{names: map[string]string{"1": "alice"}}
	mr := &MockReplier{}
	h := NewTopHandler(ms, resolver, "topwaifu")

	err := h.Respond(context.Background(), time.Minute, topRequest(), mr)

	require.NoError(t, err)
	require.Len(t, mr.embeds, 1)
	assert.Contains(t, mr.embeds[0].Description, "**alice**")
	assert.Contains(t, mr.embeds[0].Description, "**999**")
}
