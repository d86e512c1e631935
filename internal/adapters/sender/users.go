package sender

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

type UserSession interface {
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
}

// UserDirectory resolves Discord user IDs to display names.
type UserDirectory struct {
	session UserSession
}

func NewUserDirectory(session UserSession) *UserDirectory {
	return &UserDirectory{session: session}
}

func (d *UserDirectory) DisplayName(ctx context.Context, userID string) (string, error) {
	user, err := d.session.User(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to look up user %s: %w", userID, err)
	}

	if user.GlobalName != "" {
		return user.GlobalName, nil
	}

	return user.Username, nil
}
