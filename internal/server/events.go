// events.go - WebSocket Event Feed
//
// Streams a session's command events to the frontend. Each event is one
// JSON text message; the graph itself is not included, clients refetch
// /api/state when they see StateChanged.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"github.com/gitscape/gitscape/internal/command"
)

const (
	eventBuffer  = 16
	writeTimeout = 5 * time.Second
)

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.session(w, r.URL.Query().Get("sessionId"))
	if !ok {
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// the frontend dev server runs on its own port
		InsecureSkipVerify: true,
	})
	if err != nil {
		return
	}
	defer conn.Close(websocket.StatusInternalError, "event feed closed")

	// handlers run synchronously under the session lock, so they only
	// enqueue; a full buffer drops rather than blocks the executor
	events := make(chan command.Event, eventBuffer)
	sess.Lock()
	unsub := sess.Commands.Subscribe(func(ev command.Event) {
		select {
		case events <- ev:
		default:
		}
	})
	sess.Unlock()
	defer func() {
		sess.Lock()
		unsub()
		sess.Unlock()
	}()

	// CloseRead pumps control frames and cancels when the client goes
	ctx := conn.CloseRead(r.Context())

	// opening frame, tells the client its subscription is live
	hello, _ := json.Marshal(map[string]string{"type": "connected", "sessionId": sess.ID})
	if err := writeMessage(ctx, conn, hello); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case ev := <-events:
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			if err := writeMessage(ctx, conn, data); err != nil {
				return
			}
		}
	}
}

func writeMessage(ctx context.Context, conn *websocket.Conn, data []byte) error {
	wctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()
	return conn.Write(wctx, websocket.MessageText, data)
}
