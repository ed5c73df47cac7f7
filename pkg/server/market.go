package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rfurger9/robo-rides-hypertuner/pkg/log"
	"github.com/rfurger9/robo-rides-hypertuner/pkg/market"
)

func (s *Server) handleMarketPrices(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, s.market.Prices(r.Context()))
}

func (s *Server) handleMarketNetwork(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, s.market.Network(r.Context()))
}

func (s *Server) handleSolarEstimate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req market.SolarRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	estimate, err := s.market.SolarEstimate(ctx, req)
	if err != nil {
		if errors.Is(err, market.ErrInvalidRequest) {
			writeJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Ctx(ctx).ErrorContext(ctx, "failed to estimate solar", slog.Any("error", err))
		writeJSONError(w, "failed to estimate solar", http.StatusInternalServerError)
		return
	}
	writeJSON(ctx, w, estimate)
}

// MarketSnapshot is pushed to stream clients on connect and on every tick.
type MarketSnapshot struct {
	Prices    market.Prices  `json:"prices"`
	Network   market.Network `json:"network"`
	Timestamp time.Time      `json:"timestamp"`
}

func (s *Server) marketSnapshot(ctx context.Context) MarketSnapshot {
	return MarketSnapshot{
		Prices:    s.market.Prices(ctx),
		Network:   s.market.Network(ctx),
		Timestamp: s.now().UTC(),
	}
}

// streamClient serializes writes to one websocket connection.
type streamClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *streamClient) send(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second)); err != nil {
		return err
	}
	return c.conn.WriteJSON(v)
}

func (s *Server) handleMarketStream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response
		log.Ctx(ctx).WarnContext(ctx, "websocket upgrade failed", slog.Any("error", err))
		return
	}
	client := &streamClient{conn: conn}
	s.streamClients.Store(client, struct{}{})
	log.Ctx(ctx).DebugContext(ctx, "stream client connected")

	defer func() {
		s.streamClients.Delete(client)
		conn.Close()
		log.Ctx(ctx).DebugContext(ctx, "stream client disconnected")
	}()

	if err := client.send(s.marketSnapshot(ctx)); err != nil {
		log.Ctx(ctx).WarnContext(ctx, "failed to send initial snapshot", slog.Any("error", err))
		return
	}

	// drain reads so control frames are handled and closes are noticed
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Ctx(ctx).WarnContext(ctx, "stream read failed", slog.Any("error", err))
			}
			return
		}
	}
}

func (s *Server) hasStreamClients() bool {
	found := false
	s.streamClients.Range(func(key, value any) bool {
		found = true
		return false
	})
	return found
}

// broadcastMarket pushes a snapshot to every stream client each interval
// until ctx is done.
func (s *Server) broadcastMarket(ctx context.Context) {
	ticker := time.NewTicker(s.streamInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.hasStreamClients() {
				continue
			}
			s.broadcast(s.marketSnapshot(ctx))
		}
	}
}

func (s *Server) broadcast(snapshot MarketSnapshot) {
	s.streamClients.Range(func(key, value any) bool {
		client, ok := key.(*streamClient)
		if !ok {
			return true
		}
		if err := client.send(snapshot); err != nil {
			slog.Warn("stream write failed", slog.Any("error", err))
			client.conn.Close()
			s.streamClients.Delete(client)
		}
		return true
	})
}

func (s *Server) closeStreamClients() {
	s.streamClients.Range(func(key, value any) bool {
		if client, ok := key.(*streamClient); ok {
			client.conn.Close()
		}
		s.streamClients.Delete(key)
		return true
	})
}
