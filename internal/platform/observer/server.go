// Package observer serves a live autopilot run to spectators over HTTP and
// websockets. One goroutine owns the game; handlers only ever see encoded
// frames.
package observer

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/games/runner"
)

// ProtocolVersion is sent with every frame message.
const ProtocolVersion = 1

// FrameMsg is the JSON message streamed to spectators.
type FrameMsg struct {
	Type            string              `json:"type"`
	ProtocolVersion int                 `json:"protocol_version"`
	Mode            string              `json:"mode"`
	Run             int                 `json:"run"`
	Frame           uint64              `json:"frame"`
	ClockMs         int64               `json:"clock_ms"`
	Distance        float64             `json:"distance"`
	Status          string              `json:"status"`
	Score           int                 `json:"score"`
	Lives           int                 `json:"lives"`
	Level           int                 `json:"level"`
	Word            string              `json:"word"`
	Letters         []int               `json:"letters"`
	Player          runner.PlayerView   `json:"player"`
	Entities        []runner.EntityView `json:"entities"`
}

// Option configures a Server.
type Option func(*Server)

// WithRemoteClients allows spectators from non-loopback addresses.
func WithRemoteClients(allow bool) Option {
	return func(s *Server) {
		s.allowRemote = allow
	}
}

// WithRestartDelay sets how long a finished run stays on screen.
func WithRestartDelay(d time.Duration) Option {
	return func(s *Server) {
		s.restartDelay = d
	}
}

// WithPingPeriod sets how often idle spectators are pinged. A spectator
// that misses two pongs in a row is dropped.
func WithPingPeriod(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.pingPeriod = d
		}
	}
}

// Server runs an autopilot game and fans its frames out to clients.
type Server struct {
	game   *runner.Game
	pilot  *runner.Autopilot
	logger *log.Logger

	upgrader     websocket.Upgrader
	allowRemote  bool
	restartDelay time.Duration
	pingPeriod   time.Duration

	// Loop goroutine state.
	run         int
	finishedFor time.Duration

	nextID atomic.Uint64
	mu     sync.RWMutex
	latest []byte
	subs   map[uint64]chan []byte
}

// NewServer wraps a game that has already been Reset.
func NewServer(game *runner.Game, logger *log.Logger, opts ...Option) *Server {
	cfg := game.Config()
	s := &Server{
		game:         game,
		pilot:        runner.NewAutopilot(&cfg),
		logger:       logger,
		restartDelay: 3 * time.Second,
		pingPeriod:   30 * time.Second,
		subs:         make(map[uint64]chan []byte),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.allowRemote {
		s.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}
	return s
}

// Handler returns the HTTP routes: /snapshot and /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", s.snapshotHandler)
	mux.HandleFunc("/ws", s.wsHandler)
	return mux
}

// Run ticks the game at its fixed rate until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.game.FrameDuration())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.closeSubscribers()
			return ctx.Err()
		case <-ticker.C:
			s.tick()
		}
	}
}

// ListenAndServe serves on addr and runs the game loop until ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	loopErr := make(chan error, 1)
	go func() { loopErr <- s.Run(ctx) }()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.ListenAndServe() }()
	s.logger.Info("watch server listening", "addr", addr, "mode", s.game.ID())

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	<-loopErr
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// tick advances the game one frame and publishes it.
func (s *Server) tick() {
	st := s.game.State()
	snap := s.game.Snapshot()

	f := core.NewInputFrame()
	switch s.game.Session().Status() {
	case runner.StatusMenu:
		f.Set(core.ActionConfirm)
		s.run++
	case runner.StatusShop:
		f.Set(core.ActionConfirm) // The bot never shops
	case runner.StatusGameOver, runner.StatusVictory:
		s.finishedFor += s.game.FrameDuration()
		if s.finishedFor >= s.restartDelay {
			s.logger.Info("run finished", "run", s.run, "score", st.Score, "level", st.Level, "victory", st.Victory)
			f.Set(core.ActionRestart)
			s.finishedFor = 0
			s.run++
		}
	default:
		f = s.pilot.Decide(snap).Frame()
	}
	s.game.Step(f)
	s.publish(s.message())
}

func (s *Server) message() FrameMsg {
	snap := s.game.Snapshot()
	sess := s.game.Session()
	letters := sess.CollectedLetters()
	word := sess.Word()
	var got []int
	for i := range word {
		if letters.Has(i) {
			got = append(got, i)
		}
	}
	return FrameMsg{
		Type:            "FRAME",
		ProtocolVersion: ProtocolVersion,
		Mode:            s.game.ID(),
		Run:             s.run,
		Frame:           snap.Frame,
		ClockMs:         snap.Clock.Milliseconds(),
		Distance:        snap.Distance,
		Status:          sess.Status().String(),
		Score:           sess.Score(),
		Lives:           sess.Lives(),
		Level:           sess.Level(),
		Word:            string(word),
		Letters:         got,
		Player:          snap.Player,
		Entities:        snap.Views(),
	}
}

func (s *Server) publish(msg FrameMsg) {
	b, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("encode frame", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = b
	for _, ch := range s.subs {
		select {
		case ch <- b:
		default:
			// Slow spectator; it picks up a later frame.
		}
	}
}

func (s *Server) subscribe() (uint64, <-chan []byte, []byte) {
	id := s.nextID.Add(1)
	ch := make(chan []byte, 16)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[id] = ch
	return id, ch, s.latest
}

func (s *Server) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.subs[id]; ok {
		delete(s.subs, id)
		close(ch)
	}
}

func (s *Server) closeSubscribers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
}

// Subscribers returns the number of connected websocket clients.
func (s *Server) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

func (s *Server) snapshotHandler(rw http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		rw.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !s.allowed(r) {
		http.Error(rw, "forbidden", http.StatusForbidden)
		return
	}

	s.mu.RLock()
	b := s.latest
	s.mu.RUnlock()
	if b == nil {
		http.Error(rw, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	rw.Header().Set("Content-Type", "application/json")
	_, _ = rw.Write(b)
}

func (s *Server) wsHandler(rw http.ResponseWriter, r *http.Request) {
	if !s.allowed(r) {
		http.Error(rw, "forbidden", http.StatusForbidden)
		return
	}

	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	id, frames, latest := s.subscribe()
	defer s.unsubscribe(id)
	s.logger.Debug("spectator joined", "id", id, "remote", r.RemoteAddr)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	pongWait := 2 * s.pingPeriod
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Writer goroutine, the only one writing data and pings.
	writeErr := make(chan error, 1)
	go func() {
		ping := time.NewTicker(s.pingPeriod)
		defer ping.Stop()

		if latest != nil {
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, latest); err != nil {
				writeErr <- err
				return
			}
		}
		for {
			select {
			case <-ctx.Done():
				writeErr <- ctx.Err()
				return
			case <-ping.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
					writeErr <- err
					return
				}
			case b, ok := <-frames:
				if !ok {
					_ = conn.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseGoingAway, "server stopping"),
						time.Now().Add(time.Second))
					writeErr <- nil
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					writeErr <- err
					return
				}
			}
		}
	}()

	// Reader loop: spectators send nothing but pongs, this only notices the
	// close or a dead peer.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	cancel()
	select {
	case <-writeErr:
	case <-time.After(500 * time.Millisecond):
	}
	s.logger.Debug("spectator left", "id", id)
}

func (s *Server) allowed(r *http.Request) bool {
	return s.allowRemote || isLoopbackRemote(r.RemoteAddr)
}

func isLoopbackRemote(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	host = strings.TrimPrefix(host, "[")
	host = strings.TrimSuffix(host, "]")
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}
