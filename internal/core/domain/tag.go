package domain

import (
	"strings"
	"time"
	"unicode/utf8"
)

const maxTagNameLength = 255

// Tag is a label owned by exactly one user.
type Tag struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (t Tag) String() string {
	return t.Name
}

// NormalizeTagName trims name and enforces the length bounds.
func NormalizeTagName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxTagNameLength {
		return "", ErrInvalidTagName
	}
	return name, nil
}
