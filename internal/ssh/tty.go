// Package ssh lets a tcell screen draw over a gliderlabs/ssh session so every
// connection can play its own game.
package ssh

import (
	"errors"
	"sync"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
)

// ErrNoPty is returned when the client did not request a terminal.
var ErrNoPty = errors.New("session has no pty")

// Terminal is a tcell.Tty over one SSH channel. Reads come from the client's
// keyboard and writes go back to its terminal; window-change requests update
// the reported size.
type Terminal struct {
	sess gossh.Session
	term string

	mu       sync.Mutex
	size     gossh.Window
	onResize func()
	watching bool
	changes  <-chan gossh.Window
}

// NewTerminal wraps s. It fails with ErrNoPty when the client connected
// without -t.
func NewTerminal(s gossh.Session) (*Terminal, error) {
	pty, changes, ok := s.Pty()
	if !ok {
		return nil, ErrNoPty
	}
	return &Terminal{
		sess:    s,
		term:    pty.Term,
		size:    pty.Window,
		changes: changes,
	}, nil
}

// Term is the TERM value the client sent with its pty request.
func (t *Terminal) Term() string { return t.term }

func (t *Terminal) Read(b []byte) (int, error)  { return t.sess.Read(b) }
func (t *Terminal) Write(b []byte) (int, error) { return t.sess.Write(b) }
func (t *Terminal) Close() error                { return t.sess.Close() }

// The channel is opened and flushed by the SSH server, so there is no raw
// mode to enter or leave here.
func (t *Terminal) Start() error { return nil }
func (t *Terminal) Stop() error  { return nil }
func (t *Terminal) Drain() error { return nil }

// WindowSize reports the most recent size the client sent.
func (t *Terminal) WindowSize() (tcell.WindowSize, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tcell.WindowSize{Width: t.size.Width, Height: t.size.Height}, nil
}

// NotifyResize installs cb and starts following window changes. The watcher
// exits when the session closes its change channel.
func (t *Terminal) NotifyResize(cb func()) {
	t.mu.Lock()
	t.onResize = cb
	start := !t.watching && t.changes != nil
	t.watching = true
	t.mu.Unlock()

	if start {
		go t.watch()
	}
}

func (t *Terminal) watch() {
	for w := range t.changes {
		t.mu.Lock()
		t.size = w
		cb := t.onResize
		t.mu.Unlock()
		if cb != nil {
			cb()
		}
	}
}
