package server

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestServer() *Server {
	return NewServer(log.New(io.Discard))
}

func TestRegisterAssignsUniqueIDs(t *testing.T) {
	s := newTestServer()
	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")

	if a.ID == b.ID {
		t.Fatalf("duplicate client id %d", a.ID)
	}
	if got := s.Players(); got != 2 {
		t.Fatalf("players = %d, want 2", got)
	}

	s.UnregisterClient(a.ID)
	s.UnregisterClient(a.ID) // second call is a no-op
	if got := s.Players(); got != 1 {
		t.Fatalf("players after unregister = %d, want 1", got)
	}
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := newTestServer()
	h := s.RegisterClient("alice")

	go func() {
		select {
		case ev := <-h.EventsCh:
			if ev.Type == EventServerShutdown {
				s.UnregisterClient(h.ID)
			}
		case <-time.After(2 * time.Second):
		}
	}()

	if remaining := s.Shutdown(2 * time.Second); remaining != 0 {
		t.Fatalf("remaining = %d, want 0", remaining)
	}
}

func TestShutdownTimesOut(t *testing.T) {
	s := newTestServer()
	s.RegisterClient("stubborn")

	start := time.Now()
	if remaining := s.Shutdown(300 * time.Millisecond); remaining != 1 {
		t.Fatalf("remaining = %d, want 1", remaining)
	}
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Fatalf("Shutdown returned after %v, before the timeout", elapsed)
	}
}

func TestRegisterDuringShutdownGetsEvent(t *testing.T) {
	s := newTestServer()
	s.Shutdown(0)

	h := s.RegisterClient("late")
	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventServerShutdown {
			t.Fatalf("event = %v, want shutdown", ev.Type)
		}
	default:
		t.Fatalf("late client was not told about the shutdown")
	}
}
