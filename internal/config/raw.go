package config

// RawConfig mirrors Config with pointer fields so unset keys keep their
// defaults.
type RawConfig struct {
	BorderWidth  *int    `yaml:"border_width"`
	AllowIconify *bool   `yaml:"allow_iconify"`
	Terminal     *string `yaml:"terminal"`
	Menu         *string `yaml:"menu"`
	FocusColor   *string `yaml:"focus_color"`
	UnfocusColor *string `yaml:"unfocus_color"`
	LogLevel     *string `yaml:"log_level"`
	Display      *string `yaml:"display"`
}

// apply copies every set field of r onto cfg.
func (r RawConfig) apply(cfg *Config) {
	if r.BorderWidth != nil {
		cfg.BorderWidth = *r.BorderWidth
	}
	if r.AllowIconify != nil {
		cfg.AllowIconify = *r.AllowIconify
	}
	if r.Terminal != nil {
		cfg.Terminal = *r.Terminal
	}
	if r.Menu != nil {
		cfg.Menu = *r.Menu
	}
	if r.FocusColor != nil {
		cfg.FocusColor = *r.FocusColor
	}
	if r.UnfocusColor != nil {
		cfg.UnfocusColor = *r.UnfocusColor
	}
	if r.LogLevel != nil {
		cfg.LogLevel = *r.LogLevel
	}
	if r.Display != nil {
		cfg.Display = *r.Display
	}
}
