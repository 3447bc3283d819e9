package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChannel(t *testing.T) {
	kind, id, err := ParseChannel("settings")
	require.NoError(t, err)
	assert.Equal(t, "settings", kind)
	assert.Empty(t, id)

	kind, id, err = ParseChannel(ThreadChannel("thr-1"))
	require.NoError(t, err)
	assert.Equal(t, "thread", kind)
	assert.Equal(t, "thr-1", id)

	kind, id, err = ParseChannel(CommunityChannel("accra-gh"))
	require.NoError(t, err)
	assert.Equal(t, "community", kind)
	assert.Equal(t, "accra-gh", id)

	for _, bad := range []string{"", "thread:", "community:", "chat:1", "Settings"} {
		_, _, err := ParseChannel(bad)
		assert.Error(t, err, bad)
	}
}

func newTestServer(t *testing.T, authorize ChannelAuthorizer) (*Hub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub(zerolog.Nop())
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws", NewHandler(hub, authorize, zerolog.Nop()).HandleConnection)
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, channel string) *gorilla.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?channel=" + channel
	conn, _, err := gorilla.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPublishReachesChannelSubscribers(t *testing.T) {
	hub, srv := newTestServer(t, nil)

	settingsConn := dial(t, srv, SettingsChannel)
	require.Eventually(t, func() bool { return hub.ClientsCount(SettingsChannel) == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(SettingsChannel, "settings.changed", map[string]string{"communityId": "accra-gh"})

	require.NoError(t, settingsConn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := settingsConn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "settings.changed", msg.Type)
	assert.Equal(t, SettingsChannel, msg.Channel)
	assert.JSONEq(t, `{"communityId":"accra-gh"}`, string(msg.Payload))
}

func TestBurstArrivesOneMessagePerFrame(t *testing.T) {
	hub, srv := newTestServer(t, nil)

	conn := dial(t, srv, ThreadChannel("t1"))
	require.Eventually(t, func() bool { return hub.ClientsCount(ThreadChannel("t1")) == 1 }, 2*time.Second, 10*time.Millisecond)

	const burst = 20
	for i := 0; i < burst; i++ {
		hub.Publish(ThreadChannel("t1"), "thread.message", map[string]int{"seq": i})
	}

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for i := 0; i < burst; i++ {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg), string(data))
		assert.JSONEq(t, fmt.Sprintf(`{"seq":%d}`, i), string(msg.Payload))
	}
}

func TestPublishSkipsOtherChannels(t *testing.T) {
	hub, srv := newTestServer(t, nil)

	accra := dial(t, srv, CommunityChannel("accra-gh"))
	london := dial(t, srv, CommunityChannel("london-uk"))
	require.Eventually(t, func() bool {
		return hub.ClientsCount(CommunityChannel("accra-gh")) == 1 && hub.ClientsCount(CommunityChannel("london-uk")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	hub.Publish(CommunityChannel("london-uk"), "post.created", map[string]string{"id": "p1"})

	require.NoError(t, london.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := london.ReadMessage()
	require.NoError(t, err)

	require.NoError(t, accra.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = accra.ReadMessage()
	assert.Error(t, err)
}

func TestHandshakeRejectsBadChannels(t *testing.T) {
	_, srv := newTestServer(t, func(kind, id string) bool { return id != "atlantis-xx" })

	resp, err := http.Get(srv.URL + "/ws?channel=chat:1")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/ws?channel=community:atlantis-xx")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClientUnregistersOnClose(t *testing.T) {
	hub, srv := newTestServer(t, nil)

	conn := dial(t, srv, ThreadChannel("thr-1"))
	require.Eventually(t, func() bool { return hub.ClientsCount(ThreadChannel("thr-1")) == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ClientsCount(ThreadChannel("thr-1")) == 0 }, 2*time.Second, 10*time.Millisecond)
}
