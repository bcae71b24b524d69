package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/lucasb-eyer/go-colorful"
)

// AllocColor returns the pixel for a color given either as "#rrggbb" or as
// a name from the server's color database.
func (c *Connection) AllocColor(name string) (uint32, error) {
	cmap := c.XUtil.Screen().DefaultColormap

	if strings.HasPrefix(name, "#") {
		col, err := colorful.Hex(name)
		if err != nil {
			return 0, fmt.Errorf("parse color %q: %w", name, err)
		}
		r, g, b := col.RGB255()
		reply, err := xproto.AllocColor(c.XUtil.Conn(), cmap,
			uint16(r)*0x101, uint16(g)*0x101, uint16(b)*0x101).Reply()
		if err != nil {
			return 0, fmt.Errorf("allocate color %q: %w", name, err)
		}
		return reply.Pixel, nil
	}

	reply, err := xproto.AllocNamedColor(c.XUtil.Conn(), cmap, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("allocate color %q: %w", name, err)
	}
	return reply.Pixel, nil
}
