package game

import (
	"sync"

	"github.com/ramusita/chitgame/internal/model"
)

// entry pairs a match with the lock that serialises every operation on it.
// removed is set under mu when the match is evicted so that callers who
// looked the entry up just before eviction see it as gone.
type entry struct {
	mu      sync.Mutex
	match   *model.Match
	removed bool
}

// registry indexes live matches by id and by code. Its lock only guards the
// indexes; it is never held while a match lock is being acquired.
type registry struct {
	mu     sync.RWMutex
	byID   map[model.MatchID]*entry
	byCode map[model.MatchCode]model.MatchID
	// non-finished match count per creator key
	active map[string]int
}

func newRegistry() *registry {
	return &registry{
		byID:   make(map[model.MatchID]*entry),
		byCode: make(map[model.MatchCode]model.MatchID),
		active: make(map[string]int),
	}
}

func (r *registry) get(id model.MatchID) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	return e, ok
}

func (r *registry) getByCode(code model.MatchCode) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byCode[code]
	if !ok {
		return nil, false
	}
	e, ok := r.byID[id]
	return e, ok
}

// insert adds a new match if its creator is under the active cap and its
// code is free. A cap of zero or less disables the check.
func (r *registry) insert(e *entry, maxActive int) (codeFree bool, err error) {
	m := e.match
	r.mu.Lock()
	defer r.mu.Unlock()

	if maxActive > 0 && r.active[m.CreatorKey] >= maxActive {
		return true, model.ErrTooManyActive
	}
	if _, taken := r.byCode[m.Code]; taken {
		return false, nil
	}
	r.byID[m.ID] = e
	r.byCode[m.Code] = m.ID
	r.active[m.CreatorKey]++
	return true, nil
}

// finished releases a creator's active slot
func (r *registry) finished(creatorKey string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.release(creatorKey)
}

// remove drops both index entries for a match. wasActive releases the
// creator slot for a match evicted before it finished.
func (r *registry) remove(m *model.Match, wasActive bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, m.ID)
	if r.byCode[m.Code] == m.ID {
		delete(r.byCode, m.Code)
	}
	if wasActive {
		r.release(m.CreatorKey)
	}
}

func (r *registry) release(creatorKey string) {
	if r.active[creatorKey] <= 1 {
		delete(r.active, creatorKey)
		return
	}
	r.active[creatorKey]--
}

// entries returns a point-in-time copy of all entries
func (r *registry) entries() []*entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entry, 0, len(r.byID))
	for _, e := range r.byID {
		out = append(out, e)
	}
	return out
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
