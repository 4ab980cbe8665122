package menu

import "sync"

// inflight tracks actions that are waiting on the repository. Pair actions
// exclude each other per pair; item actions (save, delete) exclude every
// action on that item.
type inflight struct {
	mu    sync.Mutex
	pairs map[pairKey]struct{}
	items map[string]struct{}
}

func newInflight() *inflight {
	return &inflight{
		pairs: make(map[pairKey]struct{}),
		items: make(map[string]struct{}),
	}
}

func (f *inflight) acquirePair(itemID, sessionID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := pairKey{itemID, sessionID}
	if _, busy := f.pairs[k]; busy {
		return false
	}
	if _, busy := f.items[itemID]; busy {
		return false
	}
	f.pairs[k] = struct{}{}
	return true
}

func (f *inflight) releasePair(itemID, sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pairs, pairKey{itemID, sessionID})
}

func (f *inflight) acquireItem(itemID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, busy := f.items[itemID]; busy {
		return false
	}
	for k := range f.pairs {
		if k.item == itemID {
			return false
		}
	}
	f.items[itemID] = struct{}{}
	return true
}

func (f *inflight) releaseItem(itemID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, itemID)
}
