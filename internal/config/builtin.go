package config

import "github.com/BurntSushi/xgb/xproto"

// Compiled-in settings. These are not exposed in the config file.
const (
	// KeyModifier prefixes every keyboard window operation (Super).
	KeyModifier = "Mod4"
	// ExtraModifier turns a move binding into a resize and a workspace
	// switch into a send-to-workspace.
	ExtraModifier = "Shift"
	// MouseModMask is the modifier for pointer move and resize (Alt).
	MouseModMask uint16 = xproto.ModMask1

	// MoveStep is the pixel step for keyboard moves and for resizes of
	// windows without a size increment.
	MoveStep = 32

	// Workspaces is the fixed number of workspaces.
	Workspaces = 10

	// MaxCloseAttempts is how many polite delete requests a client gets
	// before its connection is killed.
	MaxCloseAttempts = 3

	MaxBorderWidth = 64

	MoveButton     uint8 = 1
	ResizeButton   uint8 = 3
	MenuButton     uint8 = 1
	TerminalButton uint8 = 3
)
