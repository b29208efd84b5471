package profile

import (
	"context"
	"strings"
)

type claimedKey struct{}

// WithClaimedName records the display name carried by the caller's token.
func WithClaimedName(ctx context.Context, userID, name string) context.Context {
	name = strings.TrimSpace(name)
	if name == "" {
		return ctx
	}
	return context.WithValue(ctx, claimedKey{}, Profile{UserID: userID, DisplayName: name})
}

// ClaimedName returns the token name recorded for userID, if any.
func ClaimedName(ctx context.Context, userID string) (string, bool) {
	claimed, ok := ctx.Value(claimedKey{}).(Profile)
	if !ok || claimed.UserID != userID {
		return "", false
	}
	return claimed.DisplayName, true
}

// ClaimsDirectory 优先使用令牌中的显示名，缺失时回退到底层目录。
type ClaimsDirectory struct {
	next Directory
}

// NewClaimsDirectory wraps next, which may be nil.
func NewClaimsDirectory(next Directory) *ClaimsDirectory {
	return &ClaimsDirectory{next: next}
}

// DisplayName implements Directory.
func (d *ClaimsDirectory) DisplayName(ctx context.Context, userID string) (string, error) {
	if name, ok := ClaimedName(ctx, userID); ok {
		return name, nil
	}
	if d.next == nil {
		return "", ErrProfileNotFound
	}
	return d.next.DisplayName(ctx, userID)
}
