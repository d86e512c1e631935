package commands

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"waifubot/internal/core/domain"
	"waifubot/internal/core/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSearcher struct {
	results []domain.SearchResult
	err     error
	calls   int
	queries []string
	pages   []int
	hook    func()
}

func (m *MockSearcher) Search(_ context.Context, query string, page int) ([]domain.SearchResult, error) {
	m.calls++
	m.queries = append(m.queries, query)
	m.pages = append(m.pages, page)
	if m.hook != nil {
		m.hook()
	}
	return m.results, m.err
}

func fullPage() []domain.SearchResult {
	results := make([]domain.SearchResult, domain.SearchPageSize)
	for i := range results {
		results[i] = domain.SearchResult{
			Title: fmt.Sprintf("result %d", i),
			Link:  "http://example.com",
		}
	}

	return results
}

func searchRequest(query string) *domain.Request {
	return &domain.Request{
		Command: "search",
		Args:    domain.Args{"query": query},
		UserID:  "user-1",
	}
}

func TestSearchHandlerSuccess(t *testing.T) {
	ms := &MockSearcher{results: fullPage()}
	mr := &MockReplier{}
	cache := service.NewPageCache(context.Background(), time.Minute)
	h := NewSearchHandler(ms, cache, "search")

	err := h.Respond(context.Background(), time.Minute, searchRequest("go generics"), mr)

	require.NoError(t, err)
	assert.True(t, mr.deferred)
	require.Len(t, mr.embeds, 1)
	assert.Equal(t, `🔎 Results for "go generics"`, mr.embeds[0].Title)
	assert.Equal(t, "Page 1", mr.embeds[0].Footer)
	assert.Len(t, mr.embeds[0].Fields, domain.SearchPageSize)

	require.NotNil(t, mr.controls)
	assert.Equal(t, "user-1", mr.controls.OwnerID)
	assert.True(t, mr.controls.DisablePrev)
	assert.False(t, mr.controls.DisableNext)
}

func TestSearchHandlerEmptyQuery(t *testing.T) {
	ms := &MockSearcher{}
	mr := &MockReplier{}
	h := NewSearchHandler(ms, service.NewPageCache(context.Background(), time.Minute), "search")

	err := h.Respond(context.Background(), time.Minute, searchRequest("  "), mr)

	require.NoError(t, err)
	assert.Zero(t, ms.calls)
	assert.Equal(t, "please provide a search query", mr.ephemeral)
}

func TestSearchHandlerSearcherError(t *testing.T) {
	ms := &MockSearcher{err: errors.New("mock error")}
	mr := &MockReplier{}
	h := NewSearchHandler(ms, service.NewPageCache(context.Background(), time.Minute), "search")

	err := h.Respond(context.Background(), time.Minute, searchRequest("go generics"), mr)

	require.NoError(t, err)
	assert.Equal(t, "search failed, please try again later", mr.text)
}

func TestSearchHandlerLastPageDisablesNext(t *testing.T) {
	ms := &MockSearcher{results: fullPage()[:3]}
	mr := &MockReplier{}
	h := NewSearchHandler(ms, service.NewPageCache(context.Background(), time.Minute), "search")

	err := h.Respond(context.Background(), time.Minute, searchRequest("rare term"), mr)

	require.NoError(t, err)
	require.NotNil(t, mr.controls)
	assert.True(t, mr.controls.DisableNext)
}

func TestSearchHandlerNextPageFetches(t *testing.T) {
	ms := &MockSearcher{results: fullPage()}
	cache := service.NewPageCache(context.Background(), time.Minute)
	h := NewSearchHandler(ms, cache, "search")

	err := h.Respond(context.Background(), time.Minute, searchRequest("go generics"), &MockReplier{})
	require.NoError(t, err)
	require.Equal(t, 1, ms.calls)

	mr := &MockReplier{}
	err = h.RespondPage(context.Background(), time.Minute,
		domain.ButtonAction{Action: domain.PageNext, OwnerID: "user-1"}, mr)

	require.NoError(t, err)
	assert.True(t, mr.deferred)
	assert.Equal(t, 2, ms.calls)
	assert.Equal(t, "go generics", ms.queries[1])
	assert.Equal(t, 2, ms.pages[1])
	require.Len(t, mr.embeds, 1)
	assert.Equal(t, "Page 2", mr.embeds[0].Footer)
	assert.False(t, mr.controls.DisablePrev)
}

func TestSearchHandlerDefersBeforePageFetch(t *testing.T) {
	ms := &MockSearcher{results: fullPage()}
	cache := service.NewPageCache(context.Background(), time.Minute)
	h := NewSearchHandler(ms, cache, "search")

	err := h.Respond(context.Background(), time.Minute, searchRequest("go generics"), &MockReplier{})
	require.NoError(t, err)

	mr := &MockReplier{}
	deferredAtFetch := false
	ms.hook = func() { deferredAtFetch = mr.deferred }

	err = h.RespondPage(context.Background(), time.Minute,
		domain.ButtonAction{Action: domain.PageNext, OwnerID: "user-1"}, mr)

	require.NoError(t, err)
	assert.True(t, deferredAtFetch, "page fetch must run after the interaction is deferred")
}

func TestSearchHandlerPrevOnFirstPageDoesNotFetch(t *testing.T) {
	ms := &MockSearcher{results: fullPage()}
	cache := service.NewPageCache(context.Background(), time.Minute)
	h := NewSearchHandler(ms, cache, "search")

	err := h.Respond(context.Background(), time.Minute, searchRequest("go generics"), &MockReplier{})
	require.NoError(t, err)

	mr := &MockReplier{}
	err = h.RespondPage(context.Background(), time.Minute,
		domain.ButtonAction{Action: domain.PagePrev, OwnerID: "user-1"}, mr)

	require.NoError(t, err)
	assert.Equal(t, 1, ms.calls)
	assert.False(t, mr.deferred)
	require.Len(t, mr.embeds, 1)
	assert.Equal(t, "Page 1", mr.embeds[0].Footer)
}

func TestSearchHandlerFailedFetchKeepsPage(t *testing.T) {
	ms := &MockSearcher{results: fullPage()}
	cache := service.NewPageCache(context.Background(), time.Minute)
	h := NewSearchHandler(ms, cache, "search")

	err := h.Respond(context.Background(), time.Minute, searchRequest("go generics"), &MockReplier{})
	require.NoError(t, err)

	ms.err = errors.New("mock error")

	mr := &MockReplier{}
	err = h.RespondPage(context.Background(), time.Minute,
		domain.ButtonAction{Action: domain.PageNext, OwnerID: "user-1"}, mr)

	require.NoError(t, err)
	assert.Equal(t, "search failed, please try again later", mr.text)

	current, err := cache.Current("user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, current.Number, "failed fetch must not move the page pointer")
	assert.Len(t, current.Results, domain.SearchPageSize)

	ms.err = nil

	mr = &MockReplier{}
	err = h.RespondPage(context.Background(), time.Minute,
		domain.ButtonAction{Action: domain.PageNext, OwnerID: "user-1"}, mr)

	require.NoError(t, err)
	assert.Equal(t, 2, ms.pages[len(ms.pages)-1], "retry advances from the unchanged pointer")
	assert.Equal(t, "Page 2", mr.embeds[0].Footer)
}

func TestSearchHandlerExpiredSearch(t *testing.T) {
	ms := &MockSearcher{}
	h := NewSearchHandler(ms, service.NewPageCache(context.Background(), time.Minute), "search")

	mr := &MockReplier{}
	err := h.RespondPage(context.Background(), time.Minute,
		domain.ButtonAction{Action: domain.PageNext, OwnerID: "user-1"}, mr)

	require.NoError(t, err)
	assert.Zero(t, ms.calls)
	assert.False(t, mr.deferred)
	assert.Equal(t, "this search has expired, please run it again", mr.ephemeral)
}

func TestSearchHandlerEmptyNextPage(t *testing.T) {
	ms := &MockSearcher{results: fullPage()}
	cache := service.NewPageCache(context.Background(), time.Minute)
	h := NewSearchHandler(ms, cache, "search")

	err := h.Respond(context.Background(), time.Minute, searchRequest("go generics"), &MockReplier{})
	require.NoError(t, err)

	ms.results = nil

	mr := &MockReplier{}
	err = h.RespondPage(context.Background(), time.Minute,
		domain.ButtonAction{Action: domain.PageNext, OwnerID: "user-1"}, mr)

	require.NoError(t, err)
	require.Len(t, mr.embeds, 1)
	assert.Equal(t, "no results on this page", mr.embeds[0].Description)
	assert.True(t, mr.controls.DisableNext)
}
