// Package share publishes a read-only live copy of the drawing to viewers on
// the local network. Every change is pushed as interchange text over a
// websocket; the service is advertised over mDNS.
package share

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"VectorBoard/internal/logging"
)

const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Viewers are plain LAN clients without a browser origin to check.
	CheckOrigin: func(*http.Request) bool { return true },
}

// peer is one connected viewer.
type peer struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (p *peer) send(snapshot string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteMessage(websocket.TextMessage, []byte(snapshot))
}

// Hub fans drawing snapshots out to the connected viewers.
type Hub struct {
	peers map[*peer]struct{}
	last  string
	mu    sync.RWMutex
}

// NewHub creates a hub with no viewers.
func NewHub() *Hub {
	return &Hub{peers: make(map[*peer]struct{})}
}

// Handler serves the websocket at /ws and the newest snapshot as plain text
// at /drawing.txt.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", h)
	mux.HandleFunc("/drawing.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(h.Last()))
	})
	return mux
}

// ServeHTTP upgrades a viewer connection, sends it the newest snapshot and
// keeps it registered until it disconnects. Anything the viewer sends is
// discarded.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logging.For("share")
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	p := &peer{conn: conn}

	// The first snapshot goes out under the hub lock so a concurrent
	// Broadcast cannot overtake it.
	h.mu.Lock()
	h.peers[p] = struct{}{}
	if h.last != "" {
		err = p.send(h.last)
	}
	h.mu.Unlock()
	if err != nil {
		h.remove(p)
		return
	}
	log.Info("viewer connected", "remote", r.RemoteAddr)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.remove(p)
	log.Info("viewer disconnected", "remote", r.RemoteAddr)
}

func (h *Hub) remove(p *peer) {
	h.mu.Lock()
	_, ok := h.peers[p]
	delete(h.peers, p)
	h.mu.Unlock()
	if ok {
		p.conn.Close()
	}
}

// Broadcast sends snapshot to every viewer. A snapshot equal to the last one
// is not sent again. Viewers that fail to receive are dropped.
func (h *Hub) Broadcast(snapshot string) {
	h.mu.Lock()
	if snapshot == h.last {
		h.mu.Unlock()
		return
	}
	h.last = snapshot
	peers := make([]*peer, 0, len(h.peers))
	for p := range h.peers {
		peers = append(peers, p)
	}
	h.mu.Unlock()

	for _, p := range peers {
		if err := p.send(snapshot); err != nil {
			logging.For("share").Warn("dropping viewer", "remote", p.conn.RemoteAddr().String(), "err", err)
			h.remove(p)
		}
	}
}

// Last is the newest snapshot.
func (h *Hub) Last() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

// Count is the number of connected viewers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Close disconnects every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	peers := h.peers
	h.peers = make(map[*peer]struct{})
	h.mu.Unlock()
	for p := range peers {
		p.conn.Close()
	}
}
