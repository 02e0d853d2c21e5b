package realtime

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/devroster-backend/internal/platform/logger"
)

func mustTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func recvMessage(t *testing.T, ch <-chan SSEMessage, timeout time.Duration) SSEMessage {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for SSE message")
	}
	return SSEMessage{}
}

func TestSSEHubOrderingAndReconnect(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))

	clientA := hub.NewSSEClient()
	hub.AddChannel(clientA, ChannelDevelopers)

	first := SSEMessage{Channel: ChannelDevelopers, Event: SSEEventDeveloperCreated, Data: map[string]any{"seq": 1}}
	second := SSEMessage{Channel: ChannelDevelopers, Event: SSEEventDraftChanged, Data: map[string]any{"seq": 2}}
	hub.Broadcast(first)
	hub.Broadcast(second)

	if got := recvMessage(t, clientA.Outbound, time.Second); got.Event != SSEEventDeveloperCreated {
		t.Fatalf("first event: want=%s got=%s", SSEEventDeveloperCreated, got.Event)
	}
	if got := recvMessage(t, clientA.Outbound, time.Second); got.Event != SSEEventDraftChanged {
		t.Fatalf("second event: want=%s got=%s", SSEEventDraftChanged, got.Event)
	}

	hub.CloseClient(clientA)
	hub.CloseClient(clientA)
	if _, ok := <-clientA.Outbound; ok {
		t.Fatalf("clientA outbound should be closed after disconnect")
	}
	select {
	case <-clientA.Done():
	default:
		t.Fatalf("clientA done channel still open")
	}
	if n := hub.Subscribers(ChannelDevelopers); n != 0 {
		t.Fatalf("subscribers after close: %d", n)
	}

	clientB := hub.NewSSEClient()
	hub.AddChannel(clientB, ChannelDevelopers)
	hub.Broadcast(SSEMessage{Channel: ChannelDevelopers, Event: SSEEventDeveloperRemoved})
	if got := recvMessage(t, clientB.Outbound, time.Second); got.Event != SSEEventDeveloperRemoved {
		t.Fatalf("reconnect event: want=%s got=%s", SSEEventDeveloperRemoved, got.Event)
	}
}

func TestSSEHubIgnoresOtherChannels(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	client := hub.NewSSEClient()
	hub.AddChannel(client, ChannelDevelopers)
	hub.AddChannel(client, "  ")

	hub.Broadcast(SSEMessage{Channel: "other", Event: SSEEventDeveloperCreated})
	hub.Broadcast(SSEMessage{Event: SSEEventDeveloperCreated})

	select {
	case msg := <-client.Outbound:
		t.Fatalf("unexpected message: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}

	hub.RemoveChannel(client, ChannelDevelopers)
	hub.Broadcast(SSEMessage{Channel: ChannelDevelopers, Event: SSEEventDeveloperCreated})
	select {
	case msg := <-client.Outbound:
		t.Fatalf("message after unsubscribe: %+v", msg)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSSEHubDropsWhenBufferFull(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	client := hub.NewSSEClient()
	hub.AddChannel(client, ChannelDevelopers)

	for i := 0; i < outboundBuffer+5; i++ {
		hub.Broadcast(SSEMessage{Channel: ChannelDevelopers, Event: SSEEventDraftChanged})
	}
	if got := len(client.Outbound); got != outboundBuffer {
		t.Fatalf("buffered: want=%d got=%d", outboundBuffer, got)
	}
}

func TestSSEHubServeHTTPStreamsEvents(t *testing.T) {
	hub := NewSSEHub(mustTestLogger(t))
	client := hub.NewSSEClient()
	hub.AddChannel(client, ChannelDevelopers)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeHTTP(w, r, client)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type: %q", ct)
	}

	hub.Broadcast(SSEMessage{Channel: ChannelDevelopers, Event: SSEEventDeveloperCreated, Data: map[string]any{"id": "1"}})

	reader := bufio.NewReader(resp.Body)
	var sawEvent, sawData bool
	for !(sawEvent && sawData) {
		line, err := reader.ReadString('\n')
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		switch {
		case strings.HasPrefix(line, "event: DeveloperCreated"):
			sawEvent = true
		case strings.HasPrefix(line, "data: ") && strings.Contains(line, `"channel":"developers"`):
			sawData = true
		}
	}

	hub.CloseAll()
}
