package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"waifubot/internal/core/domain"
	"waifubot/internal/core/port"
	"waifubot/internal/core/service"

	"github.com/rs/zerolog/log"
)

// SearchHandler serves the search command and the page buttons attached to
// its replies. The page buttons carry the searching user's ID; the
// interaction handler verifies ownership before calling RespondPage.
type SearchHandler struct {
	searcher port.Searcher
	cache    *service.PageCache
	command  string
}

func NewSearchHandler(searcher port.Searcher, cache *service.PageCache, command string) *SearchHandler {
	return &SearchHandler{
		searcher: searcher,
		cache:    cache,
		command:  command,
	}
}

func (h *SearchHandler) GetCommand() string {
	return h.command
}

func (h *SearchHandler) Respond(ctx context.Context, timeout time.Duration, req *domain.Request,
	reply port.Replier) error {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("userId", req.UserID).
		Logger()

	l.Info().Msg("handling request")

	query := strings.TrimSpace(req.Args.String("query"))
	if query == "" {
		return reply.ReplyEphemeral(ctx, "please provide a search query")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := reply.Defer(ctx); err != nil {
		return err
	}

	results, err := h.searcher.Search(ctx, query, 1)
	if err != nil {
		l.Error().Err(err).Msg("search failed")
		return reply.Reply(ctx, "search failed, please try again later")
	}

	h.cache.Start(req.UserID, query, results)

	page := service.Page{Query: query, Number: 1, Results: results}
	return reply.ReplyPage(ctx, searchEmbed(page), pageControls(req.UserID, page))
}

func (h *SearchHandler) RespondPage(ctx context.Context, timeout time.Duration, action domain.ButtonAction,
	reply port.Replier) error {
	l := log.With().
		Str("command", h.GetCommand()).
		Str("userId", action.OwnerID).
		Str("action", action.Action).
		Logger()

	l.Info().Msg("handling page action")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	page, fetch, err := h.cache.Advance(action.OwnerID, action.Action)
	if errors.Is(err, domain.ErrNotFound) {
		return reply.ReplyEphemeral(ctx, "this search has expired, please run it again")
	}

	if fetch {
		if err := reply.Defer(ctx); err != nil {
			return err
		}

		results, err := h.searcher.Search(ctx, page.Query, page.Number)
		if err != nil {
			l.Error().Err(err).Msg("page fetch failed")
			return reply.Reply(ctx, "search failed, please try again later")
		}

		h.cache.SetResults(action.OwnerID, page.Number, results)
		page.Results = results
	}

	return reply.ReplyPage(ctx, searchEmbed(page), pageControls(action.OwnerID, page))
}

func searchEmbed(page service.Page) domain.Embed {
	embed := domain.Embed{
		Title:  fmt.Sprintf("🔎 Results for %q", page.Query),
		Color:  domain.EmbedColor,
		Footer: fmt.Sprintf("Page %d", page.Number),
	}

	if len(page.Results) == 0 {
		embed.Description = "no results on this page"
		return embed
	}

	for _, result := range page.Results {
		value := result.Link
		if result.Snippet != "" {
			value += "\n" + result.Snippet
		}

		embed.Fields = append(embed.Fields, domain.EmbedField{
			Name:  result.Title,
			Value: value,
		})
	}

	return embed
}

func pageControls(ownerID string, page service.Page) domain.PageControls {
	return domain.PageControls{
		OwnerID:     ownerID,
		DisablePrev: page.Number <= 1,
		DisableNext: len(page.Results) < domain.SearchPageSize,
	}
}
