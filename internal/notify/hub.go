// Package notify delivers pipeline confirmations to recruiters watching a view
// over a websocket.
package notify

import (
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"nexustalent/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBufferSize = 32
)

// ErrViewClosed is returned by Serve for views that are not open.
var ErrViewClosed = errors.New("pipeline view is not open")

type subscriber struct {
	conn *websocket.Conn
	send chan models.Notification
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.send) })
}

// Hub fans notifications out to the websocket subscribers of each pipeline view.
type Hub struct {
	mu       sync.Mutex
	open     map[uuid.UUID]struct{}
	subs     map[uuid.UUID]map[*subscriber]struct{}
	upgrader websocket.Upgrader
}

// NewHub creates a Hub accepting websocket upgrades from the given origins.
// "*" accepts any origin.
func NewHub(allowedOrigins []string) *Hub {
	h := &Hub{
		open: make(map[uuid.UUID]struct{}),
		subs: make(map[uuid.UUID]map[*subscriber]struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
	}
	return h
}

// OpenView allows subscriptions to a view until CloseView is called for it.
func (h *Hub) OpenView(viewID uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.open[viewID] = struct{}{}
}

func (h *Hub) isOpen(viewID uuid.UUID) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.open[viewID]
	return ok
}

// Notify implements pipeline.Notifier. Slow subscribers miss notifications
// instead of blocking the board.
func (h *Hub) Notify(n models.Notification) {
	log.Printf("Notify: [%s] view %s: %s", n.Kind, n.ViewID, n.Message)

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[n.ViewID] {
		select {
		case sub.send <- n:
		default:
			log.Printf("Notify: Dropping notification for slow subscriber on view %s", n.ViewID)
		}
	}
}

// Subscribers returns the number of open connections watching a view.
func (h *Hub) Subscribers(viewID uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[viewID])
}

// Serve upgrades the request and streams the view's notifications until the
// client disconnects or the view is closed. It returns ErrViewClosed without
// upgrading when the view is not open.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, viewID uuid.UUID) error {
	if !h.isOpen(viewID) {
		return ErrViewClosed
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	sub := &subscriber{conn: conn, send: make(chan models.Notification, sendBufferSize)}
	h.mu.Lock()
	// The view may have been closed while the upgrade was in flight.
	if _, ok := h.open[viewID]; !ok {
		h.mu.Unlock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "view closed"), time.Now().Add(writeWait))
		conn.Close()
		return nil
	}
	if h.subs[viewID] == nil {
		h.subs[viewID] = make(map[*subscriber]struct{})
	}
	h.subs[viewID][sub] = struct{}{}
	h.mu.Unlock()

	go h.readPump(viewID, sub)
	h.writePump(viewID, sub)
	return nil
}

// CloseView disconnects every subscriber of a view and refuses new ones.
func (h *Hub) CloseView(viewID uuid.UUID) {
	h.mu.Lock()
	delete(h.open, viewID)
	subs := h.subs[viewID]
	delete(h.subs, viewID)
	h.mu.Unlock()

	for sub := range subs {
		sub.close()
	}
}

func (h *Hub) unsubscribe(viewID uuid.UUID, sub *subscriber) {
	h.mu.Lock()
	if set, ok := h.subs[viewID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(h.subs, viewID)
		}
	}
	h.mu.Unlock()
	sub.close()
}

// readPump only exists to process control frames and notice disconnects.
func (h *Hub) readPump(viewID uuid.UUID, sub *subscriber) {
	defer h.unsubscribe(viewID, sub)

	sub.conn.SetReadLimit(512)
	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(viewID uuid.UUID, sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.conn.Close()
	}()

	for {
		select {
		case n, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "view closed"))
				return
			}
			if err := sub.conn.WriteJSON(n); err != nil {
				log.Printf("writePump: Error writing notification to view %s subscriber: %v", viewID, err)
				h.unsubscribe(viewID, sub)
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.unsubscribe(viewID, sub)
				return
			}
		}
	}
}
