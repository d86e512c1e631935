package storage

import (
	"context"
	"errors"
	"fmt"

	"waifubot/internal/core/domain"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store persists claimed collectibles in SQLite. The unique index on
// (owner_id, item_id) is the enforcement point for at-most-once claims.
type Store struct {
	db *gorm.DB
}

func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %s: %w", path, err)
	}

	db.Exec("PRAGMA journal_mode=WAL;")
	db.Exec("PRAGMA busy_timeout=5000;")

	if err := db.AutoMigrate(&domain.ClaimedItem{}); err != nil {
		return nil, fmt.Errorf("failed to migrate store: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Claim(ctx context.Context, item domain.ClaimedItem) error {
	err := s.db.WithContext(ctx).Create(&item).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		log.Debug().Str("ownerId", item.OwnerID).Int("itemId", item.ItemID).Msg("duplicate claim rejected")
		return domain.ErrAlreadyClaimed
	}

	if err != nil {
		return fmt.Errorf("failed to insert claim: %w", err)
	}

	return nil
}

func (s *Store) Leaderboard(ctx context.Context, limit int) ([]domain.LeaderboardRow, error) {
	var rows []domain.LeaderboardRow

	err := s.db.WithContext(ctx).
		Model(&domain.ClaimedItem{}).
		Select("owner_id, count(*) as count").
		Group("owner_id").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}

	return rows, nil
}
