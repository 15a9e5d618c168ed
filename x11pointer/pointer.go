// Package x11pointer reads the global pointer position from an X11 server.
// It lets a parallax engine follow the mouse even when its window is not
// focused or sits under other windows, as a desktop wallpaper does.
package x11pointer

import (
	"fmt"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/phanxgames/parallax"
)

// Source is a parallax.PointerSource backed by XQueryPointer on the root
// window. Positions are reported against the root window's bounds.
type Source struct {
	conn   *xgb.Conn
	root   xproto.Window
	bounds parallax.Rect
}

// Open connects to the X server named by $DISPLAY.
func Open() (*Source, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11pointer: connect: %w", err)
	}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	return &Source{
		conn: conn,
		root: screen.Root,
		bounds: parallax.RectXYWH(0, 0,
			float64(screen.WidthInPixels), float64(screen.HeightInPixels)),
	}, nil
}

// Pointer implements parallax.PointerSource. The container is ignored;
// the pointer is tracked across the whole screen.
func (s *Source) Pointer(parallax.Rect) (parallax.Vec2, parallax.Rect, bool) {
	reply, err := xproto.QueryPointer(s.conn, s.root).Reply()
	if err != nil {
		parallax.Logger().Debug("x11pointer: query failed", "err", err)
		return parallax.Vec2{}, parallax.Rect{}, false
	}
	return parallax.Vec2{X: float64(reply.RootX), Y: float64(reply.RootY)}, s.bounds, true
}

// Bounds returns the root window bounds.
func (s *Source) Bounds() parallax.Rect { return s.bounds }

// Close closes the X connection.
func (s *Source) Close() {
	s.conn.Close()
}
