package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Sound {
		t.Error("sound should default to on")
	}
	if cfg.SSHPort != 2222 {
		t.Errorf("SSHPort = %d, want 2222", cfg.SSHPort)
	}
	if cfg.Timing.StepOn != 550*time.Millisecond {
		t.Errorf("StepOn = %v, want 550ms", cfg.Timing.StepOn)
	}
	if cfg.Timing.GameOverDelay != 1200*time.Millisecond {
		t.Errorf("GameOverDelay = %v, want 1.2s", cfg.Timing.GameOverDelay)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SIMON_SOUND", "false")
	t.Setenv("SIMON_TIMING_STEP_GAP", "1s")
	t.Setenv("SIMON_DATA_DIR", "/tmp/simon")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Sound {
		t.Error("SIMON_SOUND=false not applied")
	}
	if cfg.Timing.StepGap != time.Second {
		t.Errorf("StepGap = %v, want 1s", cfg.Timing.StepGap)
	}
	dir, err := cfg.ResolveDataDir()
	if err != nil || dir != "/tmp/simon" {
		t.Errorf("ResolveDataDir = %q, %v", dir, err)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("SIMON_SSH_PORT", "not-an-int")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestDataDirXDGEnvOverride(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)

	dir, err := DataDir()
	if err != nil {
		t.Fatalf("DataDir returned error: %v", err)
	}
	want := filepath.Join(tmp, AppName)
	if dir != want {
		t.Errorf("dir = %q; want %q", dir, want)
	}
}

func TestDataDirDefaultFallback(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")

	dir, err := DataDir()
	if err != nil {
		t.Skip("skipping: no user home directory available in test environment")
	}
	suffix := filepath.Join(".local", "share", AppName)
	if !strings.HasSuffix(dir, suffix) {
		t.Errorf("dir %q does not end with %q", dir, suffix)
	}
}

func TestOpenLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, closer, err := OpenLogFile(dir)
	if err != nil {
		t.Fatalf("OpenLogFile: %v", err)
	}
	logger.Info("hello", "k", 1)
	closer.Close()

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "msg=hello") {
		t.Errorf("log = %q", data)
	}
}

// TestExitf uses the subprocess pattern because os.Exit cannot be
// intercepted in-process.
func TestExitf(t *testing.T) {
	if os.Getenv("TEST_EXITF_SUBPROCESS") == "1" {
		Exitf("fatal: %s", "something broke")
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestExitf$")
	cmd.Env = append(os.Environ(), "TEST_EXITF_SUBPROCESS=1")

	out, err := cmd.CombinedOutput()
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
	if exitErr.ExitCode() != 1 {
		t.Fatalf("expected exit code 1, got %d", exitErr.ExitCode())
	}
	if !strings.Contains(string(out), "fatal: something broke") {
		t.Fatalf("expected output to contain message, got %q", out)
	}
}
