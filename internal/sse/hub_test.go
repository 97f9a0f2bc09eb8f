package sse

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/hockeytracker/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{"single line", "match-update", `{"running":true}`, "event: match-update\ndata: {\"running\":true}\n\n"},
		{"multi line", "event", "a\nb", "event: event\ndata: a\ndata: b\n\n"},
		{"empty data", "ping", "", "event: ping\ndata: \n\n"},
		{"crlf", "x", "a\r\nb\r\n", "event: x\ndata: a\ndata: b\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"one"}, splitLines("one"))
	assert.Equal(t, []string{"one", "two"}, splitLines("one\ntwo\n"))
	assert.Equal(t, []string{""}, splitLines(""))
}

func receive(t *testing.T, c *Client) string {
	t.Helper()
	select {
	case msg := <-c.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestHub_BroadcastReachesEverySubscriber(t *testing.T) {
	hub := NewHub("match-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	a := NewClient("a")
	b := NewClient("b")
	hub.Register(a)
	hub.Register(b)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("match-update", "{}")

	assert.Equal(t, "event: match-update\ndata: {}\n\n", receive(t, a))
	assert.Equal(t, "event: match-update\ndata: {}\n\n", receive(t, b))
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub("match-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	c := NewClient("a")
	hub.Register(c)
	hub.Unregister(c)
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-c.send
	assert.False(t, open)
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := NewHub("match-1", testutil.NopLogger())
	go hub.Run()

	c := NewClient("a")
	hub.Register(c)
	hub.Close()
	hub.Close()

	select {
	case _, open := <-c.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("client channel not closed")
	}

	// Registering after close must not block
	late := NewClient("late")
	hub.Register(late)
	_, open := <-late.send
	assert.False(t, open)
}

func TestHubManager(t *testing.T) {
	m := NewHubManager(testutil.NopLogger())
	defer m.CloseAll()

	assert.Nil(t, m.GetHub("match-1"))

	h1 := m.GetOrCreateHub("match-1")
	assert.Same(t, h1, m.GetOrCreateHub("match-1"))
	assert.Same(t, h1, m.GetHub("match-1"))
	assert.NotSame(t, h1, m.GetOrCreateHub("match-2"))

	assert.Equal(t, 2, m.CleanupEmptyHubs())
	assert.Nil(t, m.GetHub("match-1"))

	m.GetOrCreateHub("match-3")
	m.RemoveHub("match-3")
	assert.Nil(t, m.GetHub("match-3"))
}

func TestServeSSE_StreamsUntilRequestEnds(t *testing.T) {
	hub := NewHub("match-1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		ServeSSE(rec, req, hub, "viewer", formatSSEMessage("match-update", "initial"))
		close(done)
	}()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	hub.BroadcastEvent("event", "next")
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ServeSSE did not return after cancellation")
	}

	body := rec.Body.String()
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(body, "event: connected\n"))
	assert.Contains(t, body, "event: match-update\ndata: initial\n\n")
	assert.Contains(t, body, "event: event\ndata: next\n\n")
}
