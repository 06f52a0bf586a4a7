package tui

import (
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/IMNJL/AI-chef/internal/tui/commands"
)

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (s *recordingSender) Send(msg tea.Msg) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.msgs)
}

func TestStartRefreshEmptySpec(t *testing.T) {
	s := &recordingSender{}
	stop, err := StartRefresh(s, "")
	if err != nil {
		t.Fatal(err)
	}
	stop()
	if s.count() != 0 {
		t.Error("empty spec sent messages")
	}
}

func TestStartRefreshInvalidSpec(t *testing.T) {
	if _, err := StartRefresh(&recordingSender{}, "every now and then"); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestStartRefreshSends(t *testing.T) {
	s := &recordingSender{}
	stop, err := StartRefresh(s, "@every 1s")
	if err != nil {
		t.Fatal(err)
	}
	defer stop()

	deadline := time.Now().Add(3 * time.Second)
	for s.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if s.count() == 0 {
		t.Fatal("no refresh within 3s")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.msgs[0].(commands.RefreshMsg); !ok {
		t.Errorf("sent %T", s.msgs[0])
	}
}
