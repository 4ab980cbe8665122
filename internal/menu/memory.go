package menu

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"franchise-ops/internal/models"
)

// MemoryRepository is a Repository held in process memory, used by the CLI
// when no database is configured.
type MemoryRepository struct {
	mu       sync.Mutex
	sessions []models.DiningSession
	items    []models.MenuItem
	mappings map[pairKey]bool
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{mappings: make(map[pairKey]bool)}
}

func (r *MemoryRepository) ListSessions(context.Context) ([]models.DiningSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.DiningSession(nil), r.sessions...), nil
}

func (r *MemoryRepository) ListMenuItems(context.Context) ([]models.MenuItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.MenuItem(nil), r.items...), nil
}

func (r *MemoryRepository) ListMappings(context.Context) ([]models.MenuSessionMapping, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.MenuSessionMapping, 0, len(r.mappings))
	for k, available := range r.mappings {
		out = append(out, models.MenuSessionMapping{MenuItemID: k.item, SessionID: k.session, Available: available})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MenuItemID != out[j].MenuItemID {
			return out[i].MenuItemID < out[j].MenuItemID
		}
		return out[i].SessionID < out[j].SessionID
	})
	return out, nil
}

func (r *MemoryRepository) InsertMapping(_ context.Context, m models.MenuSessionMapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pairKey{m.MenuItemID, m.SessionID}
	if _, ok := r.mappings[k]; !ok {
		r.mappings[k] = m.Available
	}
	return nil
}

func (r *MemoryRepository) DeleteMapping(_ context.Context, menuItemID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.mappings, pairKey{menuItemID, sessionID})
	return nil
}

func (r *MemoryRepository) SetAvailability(_ context.Context, menuItemID, sessionID string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := pairKey{menuItemID, sessionID}
	if _, ok := r.mappings[k]; !ok {
		return fmt.Errorf("%w: %s not assigned to %s", ErrMenuItemNotFound, menuItemID, sessionID)
	}
	r.mappings[k] = available
	return nil
}

func (r *MemoryRepository) SaveMenuItem(_ context.Context, item models.MenuItem, mappings []models.MenuSessionMapping) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.Sessions = nil
	replaced := false
	for i := range r.items {
		if r.items[i].ID == item.ID {
			r.items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		r.items = append(r.items, item)
	}

	keep := make(map[string]bool, len(mappings))
	for _, m := range mappings {
		keep[m.SessionID] = true
	}
	for k := range r.mappings {
		if k.item == item.ID && !keep[k.session] {
			delete(r.mappings, k)
		}
	}
	for _, m := range mappings {
		k := pairKey{item.ID, m.SessionID}
		if _, ok := r.mappings[k]; !ok {
			r.mappings[k] = m.Available
		}
	}
	return nil
}

func (r *MemoryRepository) DeleteMenuItem(_ context.Context, menuItemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i := range r.items {
		if r.items[i].ID == menuItemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrMenuItemNotFound, menuItemID)
	}
	for k := range r.mappings {
		if k.item == menuItemID {
			delete(r.mappings, k)
		}
	}
	r.items = append(r.items[:idx], r.items[idx+1:]...)
	return nil
}

func (r *MemoryRepository) SaveSession(_ context.Context, s models.DiningSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.sessions {
		if r.sessions[i].ID == s.ID {
			r.sessions[i] = s
			return nil
		}
	}
	r.sessions = append(r.sessions, s)
	return nil
}
