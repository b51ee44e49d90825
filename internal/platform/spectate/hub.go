// Package spectate streams live game snapshots to WebSocket watchers.
//
// Game sessions publish a snapshot whenever their board changes; watchers
// connect to /watch/{session} and receive one JSON message per update,
// starting with the latest known state.
package spectate

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Per-watcher queue; slower watchers are dropped.
	sendBuffer = 64

	// Pending publications; further ones are dropped until the hub catches up.
	updateBuffer = 256
)

// Message events.
const (
	EventState = "state_update"
	EventEnd   = "session_end"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Watchers are read-only, so any origin may connect.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Message is the JSON document sent to watchers.
type Message struct {
	Event     string          `json:"event"`
	SessionID string          `json:"session_id"`
	Snapshot  *t2048.Snapshot `json:"snapshot,omitempty"`
}

// SessionInfo describes an active session for the /sessions listing.
type SessionInfo struct {
	SessionID string `json:"session_id"`
	Game      string `json:"game"`
	Score     int    `json:"score"`
	MaxTile   int    `json:"max_tile"`
	State     string `json:"state"`
	Watchers  int    `json:"watchers"`
}

// client is one connected watcher.
type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

type session struct {
	last    *t2048.Snapshot
	data    []byte // encoded last state message
	clients map[*client]struct{}
}

// update is either a new snapshot or the end of a session.
type update struct {
	snap  t2048.Snapshot
	ended string
}

// Hub fans snapshots out to watchers. All session state is owned by Run.
type Hub struct {
	logger *log.Logger

	sessions map[string]*session

	updates    chan update
	register   chan *client
	unregister chan *client
	list       chan chan []SessionInfo
	done       chan struct{}
}

// NewHub creates a hub. Run must be started before it delivers anything.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		logger:     logger,
		sessions:   make(map[string]*session),
		updates:    make(chan update, updateBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		list:       make(chan chan []SessionInfo),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until ctx is done, then disconnects every watcher.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for id, s := range h.sessions {
				for c := range s.clients {
					close(c.send)
				}
				delete(h.sessions, id)
			}
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case u := <-h.updates:
			if u.ended != "" {
				h.endSession(u.ended)
			} else {
				h.broadcast(u.snap)
			}

		case reply := <-h.list:
			reply <- h.sessionInfos()
		}
	}
}

// Publish queues a snapshot for its session's watchers. It never blocks.
func (h *Hub) Publish(snap t2048.Snapshot) {
	if snap.SessionID == "" {
		return
	}
	select {
	case h.updates <- update{snap: snap}:
	default:
		h.logger.Debug("spectate: update dropped", "session", snap.SessionID)
	}
}

// End tells watchers the session is over and forgets it. It never blocks.
func (h *Hub) End(sessionID string) {
	if sessionID == "" {
		return
	}
	select {
	case h.updates <- update{ended: sessionID}:
	default:
		h.logger.Debug("spectate: end dropped", "session", sessionID)
	}
}

// Sessions lists the sessions that have published at least one snapshot.
func (h *Hub) Sessions() []SessionInfo {
	reply := make(chan []SessionInfo, 1)
	select {
	case h.list <- reply:
		return <-reply
	case <-h.done:
		return nil
	}
}

// Handler returns the HTTP routes of the spectator feed.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /watch/{session}", func(w http.ResponseWriter, r *http.Request) {
		h.ServeWS(w, r, r.PathValue("session"))
	})
	mux.HandleFunc("GET /sessions", h.serveSessions)
	return mux
}

func (h *Hub) serveSessions(w http.ResponseWriter, _ *http.Request) {
	infos := h.Sessions()
	if infos == nil {
		infos = []SessionInfo{}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(infos); err != nil {
		h.logger.Warn("spectate: cannot write session list", "error", err)
	}
}

// ServeWS upgrades the request and attaches a watcher to sessionID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("spectate: websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (h *Hub) session(id string) *session {
	s, ok := h.sessions[id]
	if !ok {
		s = &session{clients: make(map[*client]struct{})}
		h.sessions[id] = s
	}
	return s
}

// registerClient adds a watcher and replays the latest state to it.
func (h *Hub) registerClient(c *client) {
	s := h.session(c.sessionID)
	s.clients[c] = struct{}{}
	if s.data != nil {
		c.send <- s.data
	}
	h.logger.Debug("spectate: watcher joined", "session", c.sessionID, "watchers", len(s.clients))
}

// unregisterClient removes a watcher; unknown watchers are ignored.
func (h *Hub) unregisterClient(c *client) {
	s, ok := h.sessions[c.sessionID]
	if !ok {
		return
	}
	if _, ok := s.clients[c]; !ok {
		return
	}
	delete(s.clients, c)
	close(c.send)

	// Sessions nobody publishes to disappear with their last watcher.
	if len(s.clients) == 0 && s.last == nil {
		delete(h.sessions, c.sessionID)
	}
	h.logger.Debug("spectate: watcher left", "session", c.sessionID, "watchers", len(s.clients))
}

func (h *Hub) broadcast(snap t2048.Snapshot) {
	data, err := json.Marshal(Message{Event: EventState, SessionID: snap.SessionID, Snapshot: &snap})
	if err != nil {
		h.logger.Warn("spectate: cannot encode snapshot", "error", err)
		return
	}

	s := h.session(snap.SessionID)
	s.last = &snap
	s.data = data
	h.fanOut(s, data)
}

func (h *Hub) endSession(id string) {
	s, ok := h.sessions[id]
	if !ok {
		return
	}
	data, err := json.Marshal(Message{Event: EventEnd, SessionID: id})
	if err == nil {
		h.fanOut(s, data)
	}
	for c := range s.clients {
		close(c.send)
	}
	delete(h.sessions, id)
}

func (h *Hub) fanOut(s *session, data []byte) {
	for c := range s.clients {
		select {
		case c.send <- data:
		default:
			// Watcher's queue is full, drop it
			delete(s.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) sessionInfos() []SessionInfo {
	infos := make([]SessionInfo, 0, len(h.sessions))
	for id, s := range h.sessions {
		if s.last == nil {
			continue
		}
		infos = append(infos, SessionInfo{
			SessionID: id,
			Game:      s.last.Game,
			Score:     s.last.Score,
			MaxTile:   s.last.MaxTile,
			State:     string(s.last.State),
			Watchers:  len(s.clients),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].SessionID < infos[j].SessionID
	})
	return infos
}

// readPump discards watcher input and detects disconnects.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	//nolint:errcheck // Deadline errors surface on the next read
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Debug("spectate: read error", "session", c.sessionID, "error", err)
			}
			return
		}
	}
}

// writePump sends queued messages, one per frame, and keeps the connection alive.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			//nolint:errcheck // Deadline errors surface on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				//nolint:errcheck // Connection is closing anyway
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // Deadline errors surface on the write
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
