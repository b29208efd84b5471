package profile

import (
	"context"
	"strings"
	"sync"
)

// MemoryDirectory implements Directory with an in-memory map.
type MemoryDirectory struct {
	mu    sync.RWMutex
	names map[string]string
}

// NewMemoryDirectory returns a directory preloaded with profiles.
func NewMemoryDirectory(profiles ...Profile) *MemoryDirectory {
	dir := &MemoryDirectory{names: make(map[string]string, len(profiles))}
	for _, p := range profiles {
		dir.Put(p)
	}
	return dir
}

// Put stores or replaces a profile.
func (d *MemoryDirectory) Put(p Profile) {
	d.mu.Lock()
	d.names[p.UserID] = strings.TrimSpace(p.DisplayName)
	d.mu.Unlock()
}

// DisplayName looks up the stored name for userID.
func (d *MemoryDirectory) DisplayName(_ context.Context, userID string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	name, ok := d.names[userID]
	if !ok || name == "" {
		return "", ErrProfileNotFound
	}
	return name, nil
}
