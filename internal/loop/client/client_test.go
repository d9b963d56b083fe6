package client

import (
	"bufio"
	"bytes"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lanedodger/internal/loop/server"
	"github.com/tomz197/lanedodger/internal/world"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

type harness struct {
	client *Client
	server *server.Server
	out    *bytes.Buffer
	keys   *io.PipeWriter
	clock  *fakeClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	pr, pw := io.Pipe()
	t.Cleanup(func() { pw.Close() })

	srv := server.NewServer(log.New(io.Discard))
	out := &bytes.Buffer{}
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}

	c, err := NewClient(srv, bufio.NewReader(pr), out, ClientOptions{
		TermSizeFunc: func() (int, int, error) { return 80, 24, nil },
		Username:     "tester",
		Now:          clock.Now,
		Rand:         rand.New(rand.NewSource(1)),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return &harness{client: c, server: srv, out: out, keys: pw, clock: clock}
}

func (h *harness) step(t *testing.T) {
	t.Helper()
	if err := h.client.step(h.clock.Now()); err != nil {
		t.Fatalf("step: %v", err)
	}
}

func TestNewClientSizesSurfaceOnce(t *testing.T) {
	h := newHarness(t)
	w := h.client.World()

	// 80 columns and 23 canvas rows at 10 units per sub-pixel.
	if w.Surface.Width != 800 || w.Surface.Height != 460 {
		t.Fatalf("surface = %+v, want 800x460", w.Surface)
	}
	if h.server.Players() != 1 {
		t.Fatalf("client did not register with the server")
	}
}

func TestNewClientRejectsTinyTerminal(t *testing.T) {
	srv := server.NewServer(log.New(io.Discard))
	_, err := NewClient(srv, bufio.NewReader(strings.NewReader("")), io.Discard, ClientOptions{
		TermSizeFunc: func() (int, int, error) { return 80, 1, nil },
	})
	if err == nil {
		t.Fatalf("expected an error for a one-row terminal")
	}
}

func TestScoreReadoutAfterOneSecond(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 63; i++ {
		h.out.Reset()
		h.step(t)
	}
	if !strings.Contains(h.out.String(), "Time: 1") {
		t.Fatalf("readout missing after 63 frames: %q", h.out.String())
	}
}

func TestCollisionShowsGameOver(t *testing.T) {
	h := newHarness(t)
	w := h.client.World()
	w.AddObstacle(w.Player.X, w.Player.Y)

	h.step(t)
	if h.client.state.GameState != GameStateOver {
		t.Fatalf("game state = %v, want over", h.client.state.GameState)
	}
	if !strings.Contains(h.out.String(), world.GameOverText) {
		t.Fatalf("game over text not drawn")
	}
	if strings.Contains(h.out.String(), world.RecordText) {
		t.Fatalf("record text drawn below the threshold")
	}

	score := w.Score
	for i := 0; i < 10; i++ {
		h.step(t)
	}
	if w.Score != score {
		t.Fatalf("score changed after game over: %d -> %d", score, w.Score)
	}
}

func TestRecordMessageAtThreshold(t *testing.T) {
	h := newHarness(t)
	w := h.client.World()
	w.Score = 65_000 - 16
	w.AddObstacle(w.Player.X, w.Player.Y)

	h.step(t)
	// The colliding tick does not credit time, so the record is still missed.
	if strings.Contains(h.out.String(), world.RecordText) {
		t.Fatalf("record text drawn at 64.984s")
	}

	h = newHarness(t)
	w = h.client.World()
	w.Score = 65_000
	w.AddObstacle(w.Player.X, w.Player.Y)

	h.step(t)
	if !strings.Contains(h.out.String(), world.RecordText) {
		t.Fatalf("record text missing at 65s")
	}
}

func TestArrowKeyMovesPlayerOneStep(t *testing.T) {
	h := newHarness(t)
	w := h.client.World()
	y0 := w.Player.Y

	go h.keys.Write([]byte("\x1b[A"))

	deadline := time.Now().Add(time.Second)
	for w.Player.Y == y0 && time.Now().Before(deadline) {
		h.step(t)
		time.Sleep(2 * time.Millisecond)
	}
	if w.Player.Y >= y0 {
		t.Fatalf("player did not move up: y=%f", w.Player.Y)
	}
	moved := w.Player.Y

	for i := 0; i < 5; i++ {
		h.step(t)
	}
	if w.Player.Y != moved {
		t.Fatalf("player kept moving after a single press: %f -> %f", moved, w.Player.Y)
	}
}

func TestMouseBelowPlayerMovesDown(t *testing.T) {
	h := newHarness(t)
	w := h.client.World()
	y0 := w.Player.Y

	// Bottom row of the terminal is well below the vertically centered player.
	go h.keys.Write([]byte("\x1b[<0;10;24M"))

	deadline := time.Now().Add(time.Second)
	for w.Player.Y == y0 && time.Now().Before(deadline) {
		h.step(t)
		time.Sleep(2 * time.Millisecond)
	}
	if w.Player.Y <= y0 {
		t.Fatalf("player did not move down: y=%f", w.Player.Y)
	}
}

func TestShutdownEventEndsSession(t *testing.T) {
	h := newHarness(t)
	h.client.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}

	h.step(t)
	if h.client.state.GameState != GameStateShutdown {
		t.Fatalf("game state = %v, want shutdown", h.client.state.GameState)
	}
	if !strings.Contains(h.out.String(), "SERVER SHUTTING DOWN") {
		t.Fatalf("shutdown notice not drawn")
	}

	h.client.state.delta = 11 * time.Second
	h.step(t)
	if h.client.state.Running {
		t.Fatalf("client still running after the shutdown countdown")
	}
}

func TestInactivityWarnsThenDisconnects(t *testing.T) {
	h := newHarness(t)

	h.clock.Advance(91 * time.Second)
	h.step(t)
	if !h.client.state.isInactive {
		t.Fatalf("expected inactivity warning after 91s")
	}
	if !strings.Contains(h.out.String(), "INACTIVITY WARNING") {
		t.Fatalf("inactivity warning not drawn")
	}

	h.clock.Advance(30 * time.Second)
	h.step(t)
	if h.client.state.Running {
		t.Fatalf("client still running after 121s idle")
	}
}

func TestRunEndsWhenInputCloses(t *testing.T) {
	srv := server.NewServer(log.New(io.Discard))
	out := &bytes.Buffer{}
	c, err := NewClient(srv, bufio.NewReader(strings.NewReader("")), out, ClientOptions{
		TermSizeFunc: func() (int, int, error) { return 40, 12, nil },
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after input closed")
	}
	if srv.Players() != 0 {
		t.Fatalf("client still registered after Run")
	}
	if !strings.HasSuffix(out.String(), "\033[?25h") {
		t.Fatalf("cursor not restored at exit")
	}
}
