package config

import (
	"fmt"
	"strings"
)

// Config is the startup configuration handed to the window manager core.
// There is no runtime reconfiguration.
type Config struct {
	BorderWidth  int    `yaml:"border_width"`
	AllowIconify bool   `yaml:"allow_iconify"`
	Terminal     string `yaml:"terminal"`
	Menu         string `yaml:"menu"`
	FocusColor   string `yaml:"focus_color"`
	UnfocusColor string `yaml:"unfocus_color"`
	LogLevel     string `yaml:"log_level"`
	Display      string `yaml:"display"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BorderWidth:  1,
		AllowIconify: true,
		Terminal:     "xterm",
		Menu:         "9menu",
		FocusColor:   "chocolate1",
		UnfocusColor: "grey40",
		LogLevel:     "info",
		Display:      "",
	}
}

// ValidationError points at the offending configuration key.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.BorderWidth < 0 {
		return &ValidationError{Path: "border_width", Err: fmt.Errorf("border_width must be >= 0")}
	}
	if c.BorderWidth > MaxBorderWidth {
		return &ValidationError{Path: "border_width", Err: fmt.Errorf("border_width must be <= %d", MaxBorderWidth)}
	}
	if strings.TrimSpace(c.Terminal) == "" {
		return &ValidationError{Path: "terminal", Err: fmt.Errorf("terminal is required")}
	}
	if strings.TrimSpace(c.Menu) == "" {
		return &ValidationError{Path: "menu", Err: fmt.Errorf("menu is required")}
	}
	if strings.TrimSpace(c.FocusColor) == "" {
		return &ValidationError{Path: "focus_color", Err: fmt.Errorf("focus_color is required")}
	}
	if strings.TrimSpace(c.UnfocusColor) == "" {
		return &ValidationError{Path: "unfocus_color", Err: fmt.Errorf("unfocus_color is required")}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

// ProgramForButton returns the program launched by a modified click on the
// root window, or "" if the button has none.
func (c *Config) ProgramForButton(button uint8) string {
	switch button {
	case MenuButton:
		return c.Menu
	case TerminalButton:
		return c.Terminal
	default:
		return ""
	}
}
