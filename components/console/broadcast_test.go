package console

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/goliatone/go-datagrid/components/chartdata"
)

func TestBroadcastHookFansOut(t *testing.T) {
	hook := NewBroadcastHook()
	first, cancelFirst := hook.Subscribe()
	second, cancelSecond := hook.Subscribe()
	defer cancelFirst()
	defer cancelSecond()

	event := PanelEvent{AreaCode: "console.area.main", Reason: "add"}
	if err := hook.PanelUpdated(context.Background(), event); err != nil {
		t.Fatalf("PanelUpdated returned error: %v", err)
	}

	for _, ch := range []<-chan PanelEvent{first, second} {
		select {
		case got := <-ch:
			if got.Reason != "add" {
				t.Fatalf("unexpected event: %#v", got)
			}
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBroadcastHookCancelClosesChannel(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	cancel()
	if _, ok := <-events; ok {
		t.Fatal("expected closed channel after cancel")
	}
	// second cancel is a no-op
	cancel()
	if err := hook.PanelUpdated(context.Background(), PanelEvent{Reason: "add"}); err != nil {
		t.Fatalf("PanelUpdated after cancel returned error: %v", err)
	}
}

func TestBroadcastHookSkipsSlowSubscribers(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	defer cancel()

	for i := 0; i < 20; i++ {
		if err := hook.PanelUpdated(context.Background(), PanelEvent{Reason: "reorder"}); err != nil {
			t.Fatalf("PanelUpdated returned error: %v", err)
		}
	}
	// the buffer holds some events; the rest were dropped without blocking
	received := 0
	for {
		select {
		case <-events:
			received++
		default:
			if received == 0 || received >= 20 {
				t.Fatalf("expected partial delivery, got %d", received)
			}
			return
		}
	}
}

func TestServeWebSocketStreamsEvents(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// give the handler time to register its subscription
	deadline := time.Now().Add(time.Second)
	for {
		hook.mu.RLock()
		subs := len(hook.subs)
		hook.mu.RUnlock()
		if subs > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("handler never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := hook.PanelUpdated(context.Background(), PanelEvent{AreaCode: "console.area.main", Reason: "refresh"}); err != nil {
		t.Fatalf("PanelUpdated returned error: %v", err)
	}

	var got PanelEvent
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("ReadJSON failed: %v", err)
	}
	if got.Reason != "refresh" || got.AreaCode != "console.area.main" {
		t.Fatalf("unexpected event: %#v", got)
	}
}

func TestServeSSEStreamsEvents(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeSSE))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	// headers must arrive before the first event so EventSource opens promptly
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("unexpected content type: %s", ct)
	}

	deadline := time.Now().Add(time.Second)
	for {
		hook.mu.RLock()
		subs := len(hook.subs)
		hook.mu.RUnlock()
		if subs > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("handler never subscribed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := hook.PanelUpdated(context.Background(), PanelEvent{Reason: "delete"}); err != nil {
		t.Fatalf("PanelUpdated returned error: %v", err)
	}

	reader := bufio.NewReader(resp.Body)
	line, err := reader.ReadString('\n')
	if err != nil {
		t.Fatalf("reading SSE stream failed: %v", err)
	}
	if !strings.HasPrefix(line, "data: ") || !strings.Contains(line, `"delete"`) {
		t.Fatalf("unexpected SSE line: %q", line)
	}
}

func TestLiveSeriesCoalescesBursts(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	defer cancel()

	series := NewLiveSeries(hook, "console.area.footer", "usage-1", 20*time.Millisecond)
	defer series.Close()

	for i := 0; i < 5; i++ {
		series.Push(chartdata.Point{"value": float64(i)})
	}

	select {
	case event := <-events:
		if event.Reason != "live" {
			t.Fatalf("unexpected reason: %s", event.Reason)
		}
		point, ok := event.Payload["point"].(chartdata.Point)
		if !ok || point["value"] != 4.0 {
			t.Fatalf("expected last point of burst, got %#v", event.Payload)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for coalesced event")
	}

	select {
	case extra := <-events:
		t.Fatalf("expected a single coalesced event, got extra %#v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestLiveSeriesFlushEmitsImmediately(t *testing.T) {
	hook := NewBroadcastHook()
	events, cancel := hook.Subscribe()
	defer cancel()

	series := NewLiveSeries(hook, "console.area.footer", "usage-1", time.Hour)
	defer series.Close()

	series.Push(chartdata.Point{"value": 7.0})
	series.Flush()

	select {
	case event := <-events:
		point := event.Payload["point"].(chartdata.Point)
		if point["value"] != 7.0 {
			t.Fatalf("unexpected point: %#v", point)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for flushed event")
	}
}
