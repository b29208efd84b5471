package disease

import "strings"

// Store exposes library lookups for HTTP handlers.
type Store interface {
	List() []Disease
	FindByID(id string) (Disease, bool)
	Search(term, category string) []Disease
}

// MemoryStore implements Store over a fixed slice.
type MemoryStore struct {
	items []Disease
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied entries.
func NewMemoryStore(items []Disease) *MemoryStore {
	copied := make([]Disease, 0, len(items))
	for _, item := range items {
		copied = append(copied, cloneDisease(item))
	}
	return &MemoryStore{items: copied}
}

// List returns every entry in library order.
func (s *MemoryStore) List() []Disease {
	result := make([]Disease, 0, len(s.items))
	for _, item := range s.items {
		result = append(result, cloneDisease(item))
	}
	return result
}

// FindByID looks up an entry by identifier.
func (s *MemoryStore) FindByID(id string) (Disease, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return cloneDisease(item), true
		}
	}
	return Disease{}, false
}

// Search filters by a case-insensitive substring of name or category, then
// by exact category. An empty category or "All" keeps every category.
func (s *MemoryStore) Search(term, category string) []Disease {
	term = strings.ToLower(strings.TrimSpace(term))
	category = strings.TrimSpace(category)

	result := make([]Disease, 0, len(s.items))
	for _, item := range s.items {
		matchesTerm := term == "" ||
			strings.Contains(strings.ToLower(item.Name), term) ||
			strings.Contains(strings.ToLower(item.Category), term)
		matchesCategory := category == "" || category == AllCategories || item.Category == category
		if matchesTerm && matchesCategory {
			result = append(result, cloneDisease(item))
		}
	}
	return result
}

// cloneDisease 复制切片字段，调用方修改结果不会影响资料库。
func cloneDisease(d Disease) Disease {
	d.Symptoms = append([]string(nil), d.Symptoms...)
	d.Treatments = append([]string(nil), d.Treatments...)
	d.Prevention = append([]string(nil), d.Prevention...)
	return d
}
