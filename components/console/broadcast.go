package console

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/goliatone/go-datagrid/components/chartdata"
)

// BroadcastHook fans out panel events to in-process subscribers.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]chan PanelEvent
	next int
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{
		subs: make(map[int]chan PanelEvent),
	}
}

// PanelUpdated satisfies the RefreshHook interface and broadcasts events.
// Slow subscribers are skipped rather than blocked on.
func (h *BroadcastHook) PanelUpdated(ctx context.Context, event PanelEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of panel events and a cancel func.
func (h *BroadcastHook) Subscribe() (<-chan PanelEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan PanelEvent, 8)
	h.subs[id] = ch
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams panel events as JSON.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	events, cancel := h.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE provides a Server-Sent Events endpoint for refresh events.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.Subscribe()
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	// EventSource clients expect the stream open before the first event.
	w.WriteHeader(http.StatusOK)
	if flusher != nil {
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.Write([]byte("data: "))
			if err := encoder.Encode(event); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

// LiveSeries pushes rapidly-arriving chart points into the broadcast fan-out,
// coalescing bursts so subscribers see at most one event per quiet interval.
type LiveSeries struct {
	hook     *BroadcastHook
	areaCode string
	panelID  string
	throttle *chartdata.Throttle[chartdata.Point]
}

// NewLiveSeries builds a throttled publisher for one panel's live data.
func NewLiveSeries(hook *BroadcastHook, areaCode, panelID string, interval time.Duration) *LiveSeries {
	s := &LiveSeries{
		hook:     hook,
		areaCode: areaCode,
		panelID:  panelID,
	}
	s.throttle = chartdata.NewThrottle(interval, func(point chartdata.Point) {
		s.hook.PanelUpdated(context.Background(), PanelEvent{
			AreaCode: s.areaCode,
			Instance: PanelInstance{ID: s.panelID},
			Reason:   "live",
			Payload:  map[string]any{"point": point},
		})
	})
	return s
}

// Push records a new point. The most recent point in a burst wins.
func (s *LiveSeries) Push(point chartdata.Point) {
	s.throttle.Push(point)
}

// Flush forces the pending point out immediately.
func (s *LiveSeries) Flush() {
	s.throttle.Flush()
}

// Close stops the underlying timer and drops any pending point.
func (s *LiveSeries) Close() {
	s.throttle.Stop()
}
