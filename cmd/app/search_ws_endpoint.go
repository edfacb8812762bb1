package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/debounce"
	"github.com/aryant0/mithila-bazaar/internal/services"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsMaxFrameLen  = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type searchRequest struct {
	Query string `json:"query"`
}

type suggestionMessage struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// parseSearchFrame accepts {"query": "..."} or a JSON string. Anything not
// starting like JSON is taken as plain text; malformed JSON reads as empty.
func parseSearchFrame(msg []byte) string {
	msg = bytes.TrimSpace(msg)
	if len(msg) == 0 {
		return ""
	}

	switch msg[0] {
	case '{':
		var req searchRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			return ""
		}
		return strings.TrimSpace(req.Query)
	case '"':
		var q string
		if err := json.Unmarshal(msg, &q); err != nil {
			return ""
		}
		return strings.TrimSpace(q)
	}
	return string(msg)
}

// registerSearchSocketRoutes serves live suggestions. Each frame carries the
// current contents of the search box; only the last one typed within delay is
// answered.
func registerSearchSocketRoutes(g *echo.Group, pb *services.ProductBrowser, delay time.Duration) {
	g.GET("/products/search/ws", func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			// Upgrade already wrote the error response
			slog.Warn("Websocket upgrade failed", "error", err)
			return nil
		}
		defer conn.Close()

		var writeMu sync.Mutex
		send := func(m suggestionMessage) {
			writeMu.Lock()
			defer writeMu.Unlock()
			conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(m); err != nil && !errors.Is(err, websocket.ErrCloseSent) {
				slog.Debug("Suggestion write failed", "error", err)
			}
		}

		d := debounce.New(delay)
		defer d.Stop()

		conn.SetReadLimit(wsMaxFrameLen)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("Search socket closed", "error", err)
				}
				return nil
			}

			query := parseSearchFrame(msg)
			if query == "" {
				d.Cancel()
				send(suggestionMessage{Query: "", Suggestions: []string{}})
				continue
			}

			d.Trigger(func(ctx context.Context) {
				names, err := pb.Suggest(ctx, query)
				if err != nil || ctx.Err() != nil {
					return
				}
				send(suggestionMessage{Query: query, Suggestions: names})
			})
		}
	})
}
