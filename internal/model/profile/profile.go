package profile

import (
	"context"
	"errors"
)

var ErrProfileNotFound = errors.New("profile not found")

// Profile holds the personalisation data read for a signed-in user.
type Profile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// Directory resolves display names for users.
type Directory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}
