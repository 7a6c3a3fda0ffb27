package ssh

import (
	"bytes"
	"errors"
	"testing"
	"time"

	gossh "github.com/gliderlabs/ssh"
)

// fakeSession implements the parts of gossh.Session a Terminal touches.
type fakeSession struct {
	gossh.Session
	pty     gossh.Pty
	hasPty  bool
	changes chan gossh.Window
	in      *bytes.Buffer
	out     bytes.Buffer
}

func (f *fakeSession) Pty() (gossh.Pty, <-chan gossh.Window, bool) {
	return f.pty, f.changes, f.hasPty
}
func (f *fakeSession) Read(b []byte) (int, error)  { return f.in.Read(b) }
func (f *fakeSession) Write(b []byte) (int, error) { return f.out.Write(b) }

func newFake(hasPty bool) *fakeSession {
	return &fakeSession{
		pty:     gossh.Pty{Term: "xterm-256color", Window: gossh.Window{Width: 80, Height: 24}},
		hasPty:  hasPty,
		changes: make(chan gossh.Window, 1),
		in:      bytes.NewBufferString("b"),
	}
}

func TestNewTerminalRequiresPty(t *testing.T) {
	if _, err := NewTerminal(newFake(false)); !errors.Is(err, ErrNoPty) {
		t.Errorf("err = %v, want ErrNoPty", err)
	}
}

func TestTerminalPassesThrough(t *testing.T) {
	f := newFake(true)
	term, err := NewTerminal(f)
	if err != nil {
		t.Fatal(err)
	}
	if term.Term() != "xterm-256color" {
		t.Errorf("Term = %q", term.Term())
	}

	buf := make([]byte, 4)
	n, _ := term.Read(buf)
	if string(buf[:n]) != "b" {
		t.Errorf("Read = %q, want b", buf[:n])
	}
	term.Write([]byte("hi")) //nolint:errcheck
	if f.out.String() != "hi" {
		t.Errorf("client saw %q", f.out.String())
	}

	ws, _ := term.WindowSize()
	if ws.Width != 80 || ws.Height != 24 {
		t.Errorf("WindowSize = %dx%d, want 80x24", ws.Width, ws.Height)
	}
}

func TestTerminalResize(t *testing.T) {
	f := newFake(true)
	term, err := NewTerminal(f)
	if err != nil {
		t.Fatal(err)
	}

	called := make(chan struct{}, 1)
	term.NotifyResize(func() { called <- struct{}{} })
	f.changes <- gossh.Window{Width: 120, Height: 40}

	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("resize callback not invoked")
	}
	ws, _ := term.WindowSize()
	if ws.Width != 120 || ws.Height != 40 {
		t.Errorf("WindowSize = %dx%d, want 120x40", ws.Width, ws.Height)
	}
	close(f.changes)
}
