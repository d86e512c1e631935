package domain

import (
	"fmt"
	"strings"
)

// Request is a normalized slash-command invocation. It is built once by the
// interaction handler and never mutated afterwards.
type Request struct {
	Command   string
	Args      Args
	UserID    string
	Username  string
	ChannelID string
}

// Args holds the typed option values of a command invocation, keyed by
// option name. Discord delivers strings and numbers; anything else is left
// as-is and read back through the typed accessors.
type Args map[string]any

func (a Args) String(key string) string {
	v, ok := a[key]
	if !ok {
		return ""
	}

	s, _ := v.(string)
	return s
}

// StringOr returns the trimmed string value for key, or fallback if the
// option is absent or blank.
func (a Args) StringOr(key, fallback string) string {
	s := strings.TrimSpace(a.String(key))
	if s == "" {
		return fallback
	}

	return s
}

func (a Args) Float(key string) float64 {
	v, ok := a[key]
	if !ok {
		return 0
	}

	f, _ := v.(float64)
	return f
}

const (
	PageNext = "next"
	PagePrev = "prev"
)

// ButtonAction is a decoded pagination button press. OwnerID is the user the
// button was minted for, not necessarily the user pressing it.
type ButtonAction struct {
	Action  string
	OwnerID string
}

// PageButtonID encodes a pagination control into a component custom ID of
// the form "<action>_<ownerID>".
func PageButtonID(action, ownerID string) string {
	return action + "_" + ownerID
}

// ParseButtonID decodes a component custom ID produced by PageButtonID.
func ParseButtonID(id string) (ButtonAction, error) {
	action, owner, found := strings.Cut(id, "_")
	if !found || owner == "" {
		return ButtonAction{}, fmt.Errorf("malformed button id: %q", id)
	}

	if action != PageNext && action != PagePrev {
		return ButtonAction{}, fmt.Errorf("unknown button action: %q", action)
	}

	return ButtonAction{Action: action, OwnerID: owner}, nil
}
