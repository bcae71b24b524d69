package x11

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	xheads "github.com/BurntSushi/xgbutil/xinerama"
)

var errNoExtension = errors.New("extension not available")

// Output represents a physical output. Active is false for outputs with no
// CRTC driving them.
type Output struct {
	ID     uint32
	Name   string
	X      int
	Y      int
	Width  int
	Height int
	Active bool
}

// InitRandR enables the RandR extension and asks for screen change
// notifications on the root window. Without RandR, outputs come from
// Xinerama or the root window.
func (c *Connection) InitRandR() error {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return fmt.Errorf("randr init failed: %w", err)
	}
	c.hasRandR = true
	return randr.SelectInputChecked(c.XUtil.Conn(), c.Root,
		randr.NotifyMaskScreenChange|randr.NotifyMaskOutputChange|randr.NotifyMaskCrtcChange).Check()
}

// Outputs lists outputs in server order.
func (c *Connection) Outputs() ([]Output, error) {
	outputs, err := c.randrOutputs()
	if err == nil {
		return outputs, nil
	}
	if heads, herr := c.xineramaOutputs(); herr == nil {
		return heads, nil
	}
	return c.rootOutput()
}

func (c *Connection) randrOutputs() ([]Output, error) {
	if !c.hasRandR {
		return nil, errNoExtension
	}
	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	outputs := make([]Output, 0, len(resources.Outputs))
	for _, id := range resources.Outputs {
		info, err := randr.GetOutputInfo(c.XUtil.Conn(), id, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		out := Output{ID: uint32(id), Name: string(info.Name)}

		if info.Crtc != 0 {
			crtc, err := randr.GetCrtcInfo(c.XUtil.Conn(), info.Crtc, resources.ConfigTimestamp).Reply()
			if err == nil {
				out.X = int(crtc.X)
				out.Y = int(crtc.Y)
				out.Width = int(crtc.Width)
				out.Height = int(crtc.Height)
				out.Active = true
			}
		}
		outputs = append(outputs, out)
	}
	return outputs, nil
}

func (c *Connection) xineramaOutputs() ([]Output, error) {
	if err := xinerama.Init(c.XUtil.Conn()); err != nil {
		return nil, err
	}
	heads, err := xheads.PhysicalHeads(c.XUtil)
	if err != nil {
		return nil, err
	}
	outputs := make([]Output, 0, len(heads))
	for i, head := range heads {
		outputs = append(outputs, Output{
			ID:     uint32(i + 1),
			Name:   fmt.Sprintf("head%d", i),
			X:      head.X(),
			Y:      head.Y(),
			Width:  head.Width(),
			Height: head.Height(),
			Active: true,
		})
	}
	return outputs, nil
}

func (c *Connection) rootOutput() ([]Output, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return nil, fmt.Errorf("root geometry: %w", err)
	}
	return []Output{{
		ID:     1,
		Name:   "screen",
		Width:  int(geom.Width),
		Height: int(geom.Height),
		Active: true,
	}}, nil
}

// ScreenSize returns the root window size.
func (c *Connection) ScreenSize() (int, int) {
	screen := c.XUtil.Screen()
	return int(screen.WidthInPixels), int(screen.HeightInPixels)
}
