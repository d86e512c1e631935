package domain

import "time"

type Author string

const (
	User   Author = "user"
	System Author = "system"
)

// Prompt is one role-tagged message sent to the completion endpoint.
type Prompt struct {
	Author Author
	Text   string
}

// SearchPageSize is the fixed result count per search page. A page with
// fewer results is assumed to be the last one.
const SearchPageSize = 10

type SearchResult struct {
	Title   string
	Link    string
	Snippet string
}

type Conversion struct {
	From   string
	To     string
	Amount float64
	Result float64
}

type WeatherReport struct {
	City        string
	Description string
	Temperature float64
	FeelsLike   float64
	Humidity    int
	WindSpeed   float64
}

// Character is a character-database entry used by the gacha commands.
type Character struct {
	ID         int
	Name       string
	ImageURL   string
	Favourites int
}

// ClaimedItem is a durable record of a claimed collectible. The unique
// index on (owner_id, item_id) enforces the at-most-once claim.
type ClaimedItem struct {
	ID        string    `gorm:"primaryKey"`
	OwnerID   string    `gorm:"not null;uniqueIndex:idx_user_items_owner_item"`
	ItemID    int       `gorm:"not null;uniqueIndex:idx_user_items_owner_item"`
	ItemName  string    `gorm:"not null"`
	ItemImage string
	ClaimedAt time.Time `gorm:"not null"`
}

func (ClaimedItem) TableName() string {
	return "user_items"
}

type LeaderboardRow struct {
	OwnerID string
	Name    string `gorm:"-"`
	Count   int64
}

// EmbedColor is the accent color used for all reply embeds.
const EmbedColor = 0x0099FF

type Embed struct {
	Title       string
	Description string
	Color       int
	ImageURL    string
	Fields      []EmbedField
	Footer      string
}

type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// PageControls describes the prev/next buttons attached to a search reply.
type PageControls struct {
	OwnerID     string
	DisablePrev bool
	DisableNext bool
}

// ReplyState tracks the reply lifecycle of one interaction.
type ReplyState int

const (
	ReplyFresh ReplyState = iota
	ReplyDeferred
	ReplyReplied
)
