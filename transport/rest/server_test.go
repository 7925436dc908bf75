package rest

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/rocketscienceinc/doodle-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticRooms []entity.RoomSummary

func (that staticRooms) Rooms() []entity.RoomSummary {
	return that
}

func newTestRouter(rooms staticRooms) http.Handler {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	socket := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	return NewRouter(logger, rooms, socket, []string{"http://localhost:3000"})
}

func TestRouter(t *testing.T) {
	t.Run("Ping answers pong", func(t *testing.T) {
		router := newTestRouter(nil)

		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "pong", res.Body.String())
	})

	t.Run("Rooms lists the lobby", func(t *testing.T) {
		// Given: one waiting room
		router := newTestRouter(staticRooms{
			{ID: "room-1", Name: "Artists", PlayerCount: 2, MaxPlayers: 8, Phase: entity.PhaseWaiting},
		})

		// When: the listing is requested
		req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		// Then: it is served as JSON in the lobby shape
		assert.Equal(t, http.StatusOK, res.Code)
		assert.JSONEq(t, `{"rooms":[{"id":"room-1","name":"Artists","playerCount":2,"maxPlayers":8,"gameState":"waiting"}]}`, res.Body.String())
	})

	t.Run("The websocket route is handed to the socket server", func(t *testing.T) {
		router := newTestRouter(nil)

		req := httptest.NewRequest(http.MethodGet, "/ws", nil)
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		assert.Equal(t, http.StatusTeapot, res.Code)
	})

	t.Run("CORS allows only the configured origin", func(t *testing.T) {
		router := newTestRouter(nil)

		// When: the frontend asks
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		res := httptest.NewRecorder()
		router.ServeHTTP(res, req)

		// Then: it is allowed
		assert.Equal(t, http.StatusOK, res.Code)
		assert.Equal(t, "http://localhost:3000", res.Header().Get("Access-Control-Allow-Origin"))

		// When: another site asks
		req = httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("Origin", "http://evil.example")
		res = httptest.NewRecorder()
		router.ServeHTTP(res, req)

		// Then: it is refused
		assert.Equal(t, http.StatusForbidden, res.Code)
	})
}

func TestStart(t *testing.T) {
	// Given: a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := strconv.Itoa(listener.Addr().(*net.TCPAddr).Port)
	require.NoError(t, listener.Close())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Start(ctx, port, newTestRouter(nil))
	}()

	// When: the server is up
	require.Eventually(t, func() bool {
		res, getErr := http.Get("http://127.0.0.1:" + port + "/ping") //nolint: noctx
		if getErr != nil {
			return false
		}
		_ = res.Body.Close()
		return res.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	// Then: canceling the context stops it cleanly
	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(2 * shutdownTimeout):
		require.FailNow(t, "server did not stop")
	}
}
