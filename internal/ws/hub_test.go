package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialTestServer(t *testing.T, srv *httptest.Server, origin string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	header := http.Header{}
	header.Set("Origin", origin)

	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	return conn
}

func TestHub_BroadcastsBoardEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ServeWs(hub, w, r)
	}))
	defer srv.Close()

	// Browser clients come from whatever host serves the frontend, so the
	// upgrade must accept cross-origin requests.
	first := dialTestServer(t, srv, "http://dashboard.example.com")
	defer first.Close()
	second := dialTestServer(t, srv, "http://other.example.net")
	defer second.Close()

	// Give both clients a beat to register with the hub.
	time.Sleep(50 * time.Millisecond)

	hub.BoardUpdated(7)

	for _, conn := range []*websocket.Conn{first, second} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, message, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.Contains(t, string(message), `"event":"board_updated"`)
		assert.Contains(t, string(message), `"generation":7`)
	}
}
