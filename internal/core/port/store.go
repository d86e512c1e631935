package port

import (
	"context"

	"waifubot/internal/core/domain"
)

type CollectibleStore interface {
	// Claim inserts the item, returning domain.ErrAlreadyClaimed if the
	// (owner, item) pair already exists.
	Claim(ctx context.Context, item domain.ClaimedItem) error
	// Leaderboard returns owners ordered by claim count descending,
	// limited to limit rows. Row names are not filled in.
	Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, error)
}

type UserResolver interface {
	// DisplayName resolves a platform user ID to a display name.
	DisplayName(ctx context.Context, userID string) (string, error)
}
