package media

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event is pushed to agents watching an owner's gallery so the UI can refresh
// without polling.
type Event struct {
	Type      string `json:"type"` // created | deleted | primary_changed | reordered | updated
	Owner     string `json:"owner"`
	AssetID   string `json:"asset_id,omitempty"`
	SortOrder int    `json:"sort_order,omitempty"`
}

// Publisher decouples the store from the websocket hub; tests plug in a fake.
type Publisher interface {
	Publish(owner OwnerRef, ev Event)
}

// Hub fans media events out to websocket subscribers, keyed by owner.
// Delivery is best-effort: a failed write drops the connection.
type Hub struct {
	mu       sync.RWMutex
	watchers map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{watchers: make(map[string]map[*websocket.Conn]bool)}
}

func (h *Hub) Subscribe(owner OwnerRef, conn *websocket.Conn) {
	key := owner.String()

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.watchers[key] == nil {
		h.watchers[key] = make(map[*websocket.Conn]bool)
	}
	h.watchers[key][conn] = true
}

func (h *Hub) Unsubscribe(owner OwnerRef, conn *websocket.Conn) {
	key := owner.String()

	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.watchers[key]; ok {
		if conns[conn] {
			_ = conn.Close()
			delete(conns, conn)
		}
		if len(conns) == 0 {
			delete(h.watchers, key)
		}
	}
}

func (h *Hub) Publish(owner OwnerRef, ev Event) {
	key := owner.String()

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.watchers[key]))
	for conn := range h.watchers[key] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(ev); err != nil {
			h.Unsubscribe(owner, conn)
		}
	}
}

func (h *Hub) WatcherCount(owner OwnerRef) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.watchers[owner.String()])
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for key, conns := range h.watchers {
		for conn := range conns {
			_ = conn.Close()
		}
		delete(h.watchers, key)
	}
}
