package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/javijec/new-biblia/internal/logging"
	"github.com/javijec/new-biblia/searcher/internal/search"
)

const (
	socketReadLimit  = 4096
	socketWriteWait  = 10 * time.Second
	socketPongWait   = 60 * time.Second
	socketPingPeriod = 54 * time.Second
)

// Socket message types.
const (
	MessageSearch    = "search"
	MessageCancel    = "cancel"
	MessageProgress  = "progress"
	MessageComplete  = "complete"
	MessageCancelled = "cancelled"
	MessageError     = "error"
)

// Origin checking is left to gorilla's default same-host rule.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// SocketRequest is sent by the client: {"type":"search","query":"..."} or {"type":"cancel"}.
type SocketRequest struct {
	Type  string `json:"type"`
	Query string `json:"query,omitempty"`
}

// SocketMessage is sent by the server. Progress messages carry the matches
// found so far; complete carries them all.
type SocketMessage struct {
	Type    string          `json:"type"`
	QueryID string          `json:"queryId,omitempty"`
	Query   string          `json:"query,omitempty"`
	Current int             `json:"current,omitempty"`
	Total   int             `json:"total,omitempty"`
	Count   int             `json:"count"`
	Results []search.Result `json:"results,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type socketClient struct {
	id      string
	conn    *websocket.Conn
	session *search.Session

	writeMu sync.Mutex
	wg      sync.WaitGroup
}

// handleSearchSocket runs progressive searches over one connection. Each
// search gets a query id; a newer search cancels the one in flight.
func (s *Server) handleSearchSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.WarnContext(r.Context(), "websocket upgrade failed", "error", err)
		return
	}

	c := &socketClient{
		id:      uuid.NewString(),
		conn:    conn,
		session: search.NewSession(s.engine),
	}
	logging.WebSocketEvent("connected", c.id, "remote_addr", r.RemoteAddr)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go c.pingLoop(done)

	c.readLoop(ctx)

	c.session.Cancel()
	cancel()
	c.wg.Wait()
	close(done)
	conn.Close()
	logging.WebSocketEvent("disconnected", c.id)
}

func (c *socketClient) readLoop(ctx context.Context) {
	c.conn.SetReadLimit(socketReadLimit)
	c.conn.SetReadDeadline(time.Now().Add(socketPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(socketPongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.WebSocketEvent("read_error", c.id, "error", err)
			}
			return
		}

		var req SocketRequest
		if err := json.Unmarshal(data, &req); err != nil {
			c.send(SocketMessage{Type: MessageError, Error: "invalid message: " + err.Error()})
			continue
		}

		switch req.Type {
		case MessageSearch:
			c.search(ctx, req.Query)
		case MessageCancel:
			c.session.Cancel()
		default:
			c.send(SocketMessage{Type: MessageError, Error: "unknown message type: " + req.Type})
		}
	}
}

func (c *socketClient) search(ctx context.Context, query string) {
	queryID := uuid.NewString()
	logging.WebSocketEvent("search", c.id, "query_id", queryID, "query", query)

	run := c.session.Prepare(ctx, query, func(p search.Progress) {
		c.send(SocketMessage{
			Type:    MessageProgress,
			QueryID: queryID,
			Query:   query,
			Current: p.Current,
			Total:   p.Total,
			Count:   len(p.Results),
			Results: p.Results,
		})
	})

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		results, err := run()
		switch {
		case errors.Is(err, search.ErrSuperseded), errors.Is(err, context.Canceled):
			c.send(SocketMessage{Type: MessageCancelled, QueryID: queryID, Query: query})
		case err != nil:
			logging.WebSocketEvent("search_failed", c.id, "query_id", queryID, "error", err)
			c.send(SocketMessage{Type: MessageError, QueryID: queryID, Query: query, Error: err.Error()})
		default:
			c.send(SocketMessage{Type: MessageComplete, QueryID: queryID, Query: query, Count: len(results), Results: results})
		}
	}()
}

func (c *socketClient) send(msg SocketMessage) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(socketWriteWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		logging.WebSocketEvent("write_error", c.id, "error", err)
	}
}

func (c *socketClient) pingLoop(done <-chan struct{}) {
	ticker := time.NewTicker(socketPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			c.writeMu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(socketWriteWait))
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}
