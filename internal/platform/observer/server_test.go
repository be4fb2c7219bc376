package observer

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/games/runner"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	g := runner.New(true)
	g.SetLogger(log.New(io.Discard))
	g.Configure(config.DefaultRunnerConfig())
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})
	return NewServer(g, log.New(io.Discard), opts...)
}

func TestSnapshotEndpoint(t *testing.T) {
	s := newTestServer(t)
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/snapshot")
	if err != nil {
		t.Fatalf("GET /snapshot failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status before first frame = %d, expected 503", resp.StatusCode)
	}

	for i := 0; i < 30; i++ {
		s.tick()
	}

	resp, err = http.Get(ts.URL + "/snapshot")
	if err != nil {
		t.Fatalf("GET /snapshot failed: %v", err)
	}
	defer resp.Body.Close()

	var msg FrameMsg
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if msg.Type != "FRAME" || msg.Mode != runner.ModeEndless {
		t.Errorf("message = %+v", msg)
	}
	if msg.Status != "playing" || msg.Frame == 0 || msg.Distance <= 0 {
		t.Errorf("status=%s frame=%d distance=%v, expected a running game", msg.Status, msg.Frame, msg.Distance)
	}
	if msg.Run != 1 {
		t.Errorf("Run = %d, expected 1", msg.Run)
	}
}

func TestSnapshotRejectsRemote(t *testing.T) {
	s := newTestServer(t)
	s.tick()

	req := httptest.NewRequest(http.MethodGet, "/snapshot", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("remote status = %d, expected 403", rec.Code)
	}

	open := newTestServer(t, WithRemoteClients(true))
	open.tick()
	rec = httptest.NewRecorder()
	open.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("remote status with remote clients = %d, expected 200", rec.Code)
	}
}

func TestWebsocketStream(t *testing.T) {
	s := newTestServer(t)
	s.tick()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	defer conn.Close()

	read := func() FrameMsg {
		t.Helper()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, b, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage() failed: %v", err)
		}
		var msg FrameMsg
		if err := json.Unmarshal(b, &msg); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		return msg
	}

	first := read()
	if first.Frame != 1 {
		t.Errorf("first frame = %d, expected the latest published frame 1", first.Frame)
	}

	// The subscription is registered before the latest frame is sent.
	for s.Subscribers() == 0 {
		time.Sleep(time.Millisecond)
	}
	s.tick()
	s.tick()
	if got := read(); got.Frame != 2 {
		t.Errorf("next frame = %d, expected 2", got.Frame)
	}
	if got := read(); got.Frame != 3 {
		t.Errorf("next frame = %d, expected 3", got.Frame)
	}
}

func TestRunRestartsFinishedGames(t *testing.T) {
	s := newTestServer(t, WithRestartDelay(0))
	s.tick()
	sess := s.game.Session()
	for sess.Status() == runner.StatusPlaying {
		sess.OnDamage()
	}

	s.tick()
	if sess.Status() != runner.StatusPlaying {
		t.Errorf("Status() = %s, expected a new run", sess.Status())
	}
	if s.run != 2 {
		t.Errorf("run = %d, expected 2", s.run)
	}
}

func dialSpectator(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	return conn
}

func waitSubscribers(t *testing.T, s *Server, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Subscribers() != want {
		if time.Now().After(deadline) {
			t.Fatalf("Subscribers() = %d, expected %d", s.Subscribers(), want)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestIdleSpectatorKeptAlive(t *testing.T) {
	s := newTestServer(t, WithPingPeriod(20*time.Millisecond))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn := dialSpectator(t, ts)
	defer conn.Close()

	var pings atomic.Int32
	conn.SetPingHandler(func(data string) error {
		pings.Add(1)
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	waitSubscribers(t, s, 1)
	// Several read deadlines pass without any frames being published.
	time.Sleep(250 * time.Millisecond)

	if got := s.Subscribers(); got != 1 {
		t.Errorf("Subscribers() = %d, expected the idle spectator to stay", got)
	}
	if got := pings.Load(); got < 3 {
		t.Errorf("pings = %d, expected at least 3", got)
	}
}

func TestSilentSpectatorDropped(t *testing.T) {
	s := newTestServer(t, WithPingPeriod(50*time.Millisecond))
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	// Never reading means pings are never answered.
	conn := dialSpectator(t, ts)
	defer conn.Close()

	waitSubscribers(t, s, 1)
	waitSubscribers(t, s, 0)
}
