// simon-says-server serves the game over SSH. Every connection plays its own
// game; scores are kept per SSH user name in a shared SQLite database, and a
// small HTTP API exposes the leaderboard. Build:
//
//	go build -o simon-says-server ./cmd/server
//
// Usage:
//
//	./simon-says-server [--port 2222] [--key server_host_key] [--db simon.db] [--http :8080]
//
// Connect with:
//
//	ssh -t -p 2222 yourname@localhost
package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	gossh "github.com/gliderlabs/ssh"
	"github.com/google/uuid"
	xssh "golang.org/x/crypto/ssh"

	"simon-says/internal/api"
	"simon-says/internal/config"
	"simon-says/internal/game"
	"simon-says/internal/score"
	"simon-says/internal/simon"
	"simon-says/internal/sound"
	internalssh "simon-says/internal/ssh"
)

// maxNameBytes caps the player name stored with every score.
const maxNameBytes = 16

const defaultTerm = "xterm-256color"

// allowedTerms are the TERM values the server will look up in terminfo.
// Anything else falls back to defaultTerm.
var allowedTerms = map[string]bool{
	"xterm":                 true,
	"xterm-256color":        true,
	"screen":                true,
	"screen-256color":       true,
	"tmux":                  true,
	"tmux-256color":         true,
	"linux":                 true,
	"vt100":                 true,
	"rxvt-unicode":          true,
	"rxvt-unicode-256color": true,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		config.Exitf("error: %v", err)
	}
	flag.IntVar(&cfg.SSHPort, "port", cfg.SSHPort, "SSH server port")
	flag.StringVar(&cfg.SSHHostKey, "key", cfg.SSHHostKey, "Path to the PEM-encoded host key (auto-generated if absent)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database for scores")
	flag.StringVar(&cfg.HTTPAddr, "http", cfg.HTTPAddr, "Leaderboard HTTP address (empty disables it)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := run(cfg, logger); err != nil {
		config.Exitf("error: %v", err)
	}
}

// run serves until the SSH listener fails. The database is closed before it
// returns.
func run(cfg config.Config, logger *slog.Logger) error {
	signer, err := loadOrCreateHostKey(cfg.SSHHostKey, logger)
	if err != nil {
		return fmt.Errorf("host key: %w", err)
	}
	db, err := score.OpenSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("scores: %w", err)
	}
	defer db.Close()

	if cfg.HTTPAddr != "" {
		go serveAPI(cfg.HTTPAddr, db, logger)
	}

	h := &handler{db: db, timing: cfg.Timing, logger: logger}
	srv := &gossh.Server{
		Addr:    fmt.Sprintf(":%d", cfg.SSHPort),
		Handler: h.handleSession,
		// Accept PTY requests from any client.
		PtyCallback: func(_ gossh.Context, _ gossh.Pty) bool { return true },
		// No authentication: the SSH user name is the player name.
		HostSigners: []gossh.Signer{signer},
	}

	logger.Info("SSH server listening", "port", cfg.SSHPort, "db", cfg.DBPath)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("ssh: %w", err)
	}
	return nil
}

func serveAPI(addr string, db *score.SQLiteDB, logger *slog.Logger) {
	l := logger.With("component", "api")
	l.Info("leaderboard listening", "addr", addr)
	err := http.ListenAndServe(addr, api.NewServer(db, nil, l).Routes())
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		l.Error("leaderboard stopped", "error", err)
	}
}

// ─── sessions ───────────────────────────────────────────────────────────────

type handler struct {
	db     *score.SQLiteDB
	timing config.Timing
	logger *slog.Logger
}

// handleSession is the gliderlabs SSH handler for one connection. It blocks
// for the length of the game so the session stays open.
func (h *handler) handleSession(s gossh.Session) {
	log := h.logger.With("session", uuid.NewString(), "remote", s.RemoteAddr().String())

	tty, err := internalssh.NewTerminal(s)
	if err != nil {
		fmt.Fprintln(s, "This game needs a terminal. Connect with: ssh -t -p <port> <name>@<host>")
		return
	}

	name := sanitizeName(s.User())
	if name == "" {
		name = "guest"
	}
	log = log.With("player", name)

	screen, err := newScreen(tty, resolveTerm(tty.Term(), s.Environ()))
	if err != nil {
		log.Warn("terminal setup failed", "error", err)
		fmt.Fprintf(s, "Terminal setup failed: %v\n", err)
		return
	}

	log.Info("player connected")
	keeper := score.NewKeeper(h.db.Player(name), nil, log)
	game.New(screen, game.Options{
		Timing:     h.timing,
		Scores:     keeper,
		Sound:      sound.Nop{},
		Logger:     log,
		Difficulty: simon.Medium,
		Player:     name,
	}).Run()
	log.Info("player disconnected")
}

// termMu protects os.Setenv("TERM") around screen creation; terminfo lookup
// reads the process environment.
var termMu sync.Mutex

func newScreen(tty tcell.Tty, term string) (tcell.Screen, error) {
	termMu.Lock()
	_ = os.Setenv("TERM", term)
	screen, err := tcell.NewTerminfoScreenFromTty(tty)
	termMu.Unlock()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	return screen, nil
}

// resolveTerm picks the pty's TERM, then the session's TERM variable, and
// falls back to defaultTerm when neither is allowed.
func resolveTerm(ptyTerm string, environ []string) string {
	if allowedTerms[ptyTerm] {
		return ptyTerm
	}
	for _, env := range environ {
		if v, ok := strings.CutPrefix(env, "TERM="); ok && allowedTerms[v] {
			return v
		}
	}
	return defaultTerm
}

// sanitizeName drops control characters and truncates to maxNameBytes
// without splitting a rune.
func sanitizeName(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		if b.Len()+utf8.RuneLen(r) > maxNameBytes {
			break
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ─── host key ───────────────────────────────────────────────────────────────

// loadOrCreateHostKey loads a PEM private key from path, or generates and
// persists a new ed25519 key if the file is absent or unreadable.
func loadOrCreateHostKey(path string, logger *slog.Logger) (gossh.Signer, error) {
	if data, err := os.ReadFile(path); err == nil {
		if signer, err := xssh.ParsePrivateKey(data); err == nil {
			logger.Info("loaded host key", "path", path)
			return signer, nil
		}
	}

	logger.Info("generating ed25519 host key", "path", path)
	_, key, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate host key: %w", err)
	}
	signer, err := xssh.NewSignerFromKey(key)
	if err != nil {
		return nil, fmt.Errorf("create signer: %w", err)
	}
	block, err := xssh.MarshalPrivateKey(key, "simon-says server")
	if err != nil {
		return nil, fmt.Errorf("marshal host key: %w", err)
	}
	if err := os.WriteFile(path, pem.EncodeToMemory(block), 0o600); err != nil {
		logger.Warn("host key not saved; clients will see a new key next start", "error", err)
	}
	return signer, nil
}
