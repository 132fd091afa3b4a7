package notify_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bookworm-labs/alexandria/internal/notify"
	"github.com/bookworm-labs/alexandria/pkg/logger"
	"github.com/bookworm-labs/alexandria/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func setupHub(t *testing.T) (*notify.Hub, *httptest.Server) {
	t.Helper()
	logger.Init(logger.ERROR, false, nil)
	metrics.Reset()

	hub := notify.NewHub(logger.GetLogger())
	go hub.Run()
	t.Cleanup(hub.Stop)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ws", notify.NewHandler(hub).Serve)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return hub, server
}

func dialWS(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForConnections(t *testing.T, want int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for metrics.GetActiveConnections() != want {
		if time.Now().After(deadline) {
			t.Fatalf("active connections = %d, want %d", metrics.GetActiveConnections(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHub_BroadcastReachesClient(t *testing.T) {
	hub, server := setupHub(t)

	conn := dialWS(t, server)
	waitForConnections(t, 1)

	hub.BroadcastEvent(notify.Event{
		Type:   notify.EventBookFinished,
		BookID: "book-1",
		Title:  "Dune",
	})

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	var event notify.Event
	if err := json.Unmarshal(data, &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.Type != notify.EventBookFinished || event.BookID != "book-1" {
		t.Errorf("got %+v", event)
	}
	if event.Timestamp.IsZero() {
		t.Error("timestamp not stamped")
	}
}

func TestHub_BroadcastWithNoClientsDoesNotBlock(t *testing.T) {
	hub, _ := setupHub(t)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.BroadcastEvent(notify.Event{Type: notify.EventBookAdded, BookID: "b"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked with no clients")
	}
}
