package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func parseOptions(t *testing.T, args ...string) (*options, *pflag.FlagSet) {
	t.Helper()
	opts := &options{}
	fs := pflag.NewFlagSet("wmwm", pflag.ContinueOnError)
	opts.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("expected flags to parse, got %v", err)
	}
	return opts, fs
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestFileValuesSurviveUnsetFlags(t *testing.T) {
	path := writeConfig(t, "border_width: 4\nterminal: urxvt\n")
	opts, fs := parseOptions(t, "--config", path)

	cfg, err := opts.resolve(fs)
	if err != nil {
		t.Fatalf("expected config to resolve, got %v", err)
	}
	if cfg.BorderWidth != 4 {
		t.Fatalf("expected border width 4 from the file, got %d", cfg.BorderWidth)
	}
	if cfg.Terminal != "urxvt" {
		t.Fatalf("expected terminal from the file, got %q", cfg.Terminal)
	}
	if cfg.Menu != "9menu" {
		t.Fatalf("expected default menu, got %q", cfg.Menu)
	}
}

func TestExplicitFlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, "border_width: 4\nallow_iconify: true\n")
	opts, fs := parseOptions(t, "--config", path, "-b", "2", "-i=false", "-f", "#ff8000")

	cfg, err := opts.resolve(fs)
	if err != nil {
		t.Fatalf("expected config to resolve, got %v", err)
	}
	if cfg.BorderWidth != 2 {
		t.Fatalf("expected border width 2 from the flag, got %d", cfg.BorderWidth)
	}
	if cfg.AllowIconify {
		t.Fatalf("expected iconify disabled by the flag")
	}
	if cfg.FocusColor != "#ff8000" {
		t.Fatalf("expected focus color from the flag, got %q", cfg.FocusColor)
	}
}

func TestInvalidFlagValueIsRejected(t *testing.T) {
	path := writeConfig(t, "")
	opts, fs := parseOptions(t, "--config", path, "--log-level", "verbose")

	if _, err := opts.resolve(fs); err == nil {
		t.Fatalf("expected an invalid log level to be rejected")
	}
}
