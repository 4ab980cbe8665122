// Package menu owns the menu item / dining session relation. The relation is
// keyed by ids; session names on a MenuItem are derived on every read.
package menu

import (
	"sort"
	"sync"

	"franchise-ops/internal/models"
)

type pairKey struct {
	item    string
	session string
}

// Catalog is the in-memory view of the menu. It only changes after the
// repository has committed the matching write.
type Catalog struct {
	mu        sync.RWMutex
	sessions  []models.DiningSession
	items     map[string]models.MenuItem
	itemOrder []string
	mappings  map[pairKey]bool
}

func NewCatalog() *Catalog {
	return &Catalog{
		items:    make(map[string]models.MenuItem),
		mappings: make(map[pairKey]bool),
	}
}

// Replace swaps the whole catalog contents. Mappings that reference unknown
// items or sessions are dropped.
func (c *Catalog) Replace(sessions []models.DiningSession, items []models.MenuItem, mappings []models.MenuSessionMapping) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.sessions = append([]models.DiningSession(nil), sessions...)
	c.items = make(map[string]models.MenuItem, len(items))
	c.itemOrder = c.itemOrder[:0]
	for _, item := range items {
		c.storeItem(item)
	}
	c.mappings = make(map[pairKey]bool, len(mappings))
	for _, m := range mappings {
		if _, ok := c.items[m.MenuItemID]; !ok {
			continue
		}
		if c.sessionIndex(m.SessionID) < 0 {
			continue
		}
		c.mappings[pairKey{m.MenuItemID, m.SessionID}] = m.Available
	}
}

// PutSession adds or renames a session. Item session names follow on the
// next read.
func (c *Catalog) PutSession(s models.DiningSession) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.sessionIndex(s.ID); i >= 0 {
		c.sessions[i] = s
		return
	}
	c.sessions = append(c.sessions, s)
}

func (c *Catalog) Session(id string) (models.DiningSession, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.sessionIndex(id); i >= 0 {
		return c.sessions[i], true
	}
	return models.DiningSession{}, false
}

func (c *Catalog) Sessions() []models.DiningSession {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.DiningSession(nil), c.sessions...)
}

// Item returns the item with its session names filled in.
func (c *Catalog) Item(id string) (models.MenuItem, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	if !ok {
		return models.MenuItem{}, false
	}
	item.Sessions = c.sessionNames(id)
	return item, true
}

// Items returns every item in insertion order.
func (c *Catalog) Items() []models.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.MenuItem, 0, len(c.itemOrder))
	for _, id := range c.itemOrder {
		item := c.items[id]
		item.Sessions = c.sessionNames(id)
		out = append(out, item)
	}
	return out
}

// ItemsForSession lists the items assigned to sessionID, available or not.
func (c *Catalog) ItemsForSession(sessionID string) []models.MenuItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.MenuItem
	for _, id := range c.itemOrder {
		if _, ok := c.mappings[pairKey{id, sessionID}]; !ok {
			continue
		}
		item := c.items[id]
		item.Sessions = c.sessionNames(id)
		out = append(out, item)
	}
	return out
}

func (c *Catalog) State(itemID, sessionID string) models.AssignmentState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	available, ok := c.mappings[pairKey{itemID, sessionID}]
	switch {
	case !ok:
		return models.AssignmentUnassigned
	case available:
		return models.AssignmentAvailable
	default:
		return models.AssignmentUnavailable
	}
}

// SessionNames is the display list for an item, in session order. It is
// never nil.
func (c *Catalog) SessionNames(itemID string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionNames(itemID)
}

// Mappings returns the relation rows of one item in session order.
func (c *Catalog) Mappings(itemID string) []models.MenuSessionMapping {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.MenuSessionMapping
	for _, s := range c.sessions {
		if available, ok := c.mappings[pairKey{itemID, s.ID}]; ok {
			out = append(out, models.MenuSessionMapping{MenuItemID: itemID, SessionID: s.ID, Available: available})
		}
	}
	return out
}

// AllMappings returns every relation row ordered by item then session id.
func (c *Catalog) AllMappings() []models.MenuSessionMapping {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.MenuSessionMapping, 0, len(c.mappings))
	for k, available := range c.mappings {
		out = append(out, models.MenuSessionMapping{MenuItemID: k.item, SessionID: k.session, Available: available})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MenuItemID != out[j].MenuItemID {
			return out[i].MenuItemID < out[j].MenuItemID
		}
		return out[i].SessionID < out[j].SessionID
	})
	return out
}

func (c *Catalog) setMapping(itemID, sessionID string, available bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mappings[pairKey{itemID, sessionID}] = available
}

func (c *Catalog) deleteMapping(itemID, sessionID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.mappings, pairKey{itemID, sessionID})
}

// putItem stores item and replaces its relation rows with mappings.
func (c *Catalog) putItem(item models.MenuItem, mappings []models.MenuSessionMapping) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item.Sessions = nil
	c.storeItem(item)
	for k := range c.mappings {
		if k.item == item.ID {
			delete(c.mappings, k)
		}
	}
	for _, m := range mappings {
		c.mappings[pairKey{item.ID, m.SessionID}] = m.Available
	}
}

func (c *Catalog) removeItem(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, itemID)
	for i, id := range c.itemOrder {
		if id == itemID {
			c.itemOrder = append(c.itemOrder[:i], c.itemOrder[i+1:]...)
			break
		}
	}
	for k := range c.mappings {
		if k.item == itemID {
			delete(c.mappings, k)
		}
	}
}

func (c *Catalog) storeItem(item models.MenuItem) {
	item.Sessions = nil
	if _, exists := c.items[item.ID]; !exists {
		c.itemOrder = append(c.itemOrder, item.ID)
	}
	c.items[item.ID] = item
}

func (c *Catalog) sessionIndex(id string) int {
	for i, s := range c.sessions {
		if s.ID == id {
			return i
		}
	}
	return -1
}

func (c *Catalog) sessionNames(itemID string) []string {
	names := []string{}
	for _, s := range c.sessions {
		if _, ok := c.mappings[pairKey{itemID, s.ID}]; ok {
			names = append(names, s.Name)
		}
	}
	return names
}
