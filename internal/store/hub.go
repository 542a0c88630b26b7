package store

import "sync"

type subscription struct {
	once   sync.Once
	cancel func()
}

func (s *subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// hub fans change and auth events out to listeners. Callbacks run on the
// notifying goroutine, outside the hub lock.
type hub struct {
	mu      sync.Mutex
	nextID  uint64
	changes map[string]map[uint64]func()
	auth    map[uint64]func(*User)
}

func newHub() *hub {
	return &hub{
		changes: make(map[string]map[uint64]func()),
		auth:    make(map[uint64]func(*User)),
	}
}

func (h *hub) subscribeChanges(ownerID string, fn func()) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	if h.changes[ownerID] == nil {
		h.changes[ownerID] = make(map[uint64]func())
	}
	h.changes[ownerID][id] = fn
	return &subscription{cancel: func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.changes[ownerID], id)
		if len(h.changes[ownerID]) == 0 {
			delete(h.changes, ownerID)
		}
	}}
}

func (h *hub) subscribeAuth(fn func(*User)) Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.auth[id] = fn
	return &subscription{cancel: func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.auth, id)
	}}
}

func (h *hub) notifyChanges(ownerID string) {
	h.mu.Lock()
	fns := make([]func(), 0, len(h.changes[ownerID]))
	for _, fn := range h.changes[ownerID] {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

func (h *hub) notifyAuth(u *User) {
	h.mu.Lock()
	fns := make([]func(*User), 0, len(h.auth))
	for _, fn := range h.auth {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		var cp *User
		if u != nil {
			c := *u
			cp = &c
		}
		fn(cp)
	}
}
