package main

import (
	"github.com/spf13/pflag"

	"github.com/stapel/wmwm-sub000/internal/config"
)

// options holds the command line. Only flags the user actually set are
// applied over the configuration file.
type options struct {
	configPath   string
	borderWidth  int
	allowIconify bool
	terminal     string
	menu         string
	focusColor   string
	unfocusColor string
	display      string
	logLevel     string
}

func (o *options) register(fs *pflag.FlagSet) {
	def := config.DefaultConfig()
	fs.StringVar(&o.configPath, "config", "", "configuration file (default ~/.config/wmwm/config.yaml)")
	fs.IntVarP(&o.borderWidth, "border-width", "b", def.BorderWidth, "frame border width in pixels")
	fs.BoolVarP(&o.allowIconify, "allow-iconify", "i", def.AllowIconify, "honor requests to iconify windows")
	fs.StringVarP(&o.terminal, "terminal", "t", def.Terminal, "terminal program")
	fs.StringVarP(&o.menu, "menu", "m", def.Menu, "menu program")
	fs.StringVarP(&o.focusColor, "focus-color", "f", def.FocusColor, "border color of the focused window")
	fs.StringVarP(&o.unfocusColor, "unfocus-color", "u", def.UnfocusColor, "border color of other windows")
	fs.StringVar(&o.display, "display", def.Display, "X display to manage (default $DISPLAY)")
	fs.StringVar(&o.logLevel, "log-level", def.LogLevel, "log level: debug, info, warning or error")
}

// resolve loads the configuration file and overlays the flags that were
// given explicitly.
func (o *options) resolve(fs *pflag.FlagSet) (*config.Config, error) {
	var cfg *config.Config
	if o.configPath != "" {
		res, err := config.LoadFromPath(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = res.Config
	} else {
		loaded, err := config.Load()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if fs.Changed("border-width") {
		cfg.BorderWidth = o.borderWidth
	}
	if fs.Changed("allow-iconify") {
		cfg.AllowIconify = o.allowIconify
	}
	if fs.Changed("terminal") {
		cfg.Terminal = o.terminal
	}
	if fs.Changed("menu") {
		cfg.Menu = o.menu
	}
	if fs.Changed("focus-color") {
		cfg.FocusColor = o.focusColor
	}
	if fs.Changed("unfocus-color") {
		cfg.UnfocusColor = o.unfocusColor
	}
	if fs.Changed("display") {
		cfg.Display = o.display
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
