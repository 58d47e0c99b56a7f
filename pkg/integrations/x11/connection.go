package x11

import (
	"encoding/binary"
	"strings"
	"unicode/utf8"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"
)

// nameLimit caps window and class names at 256 bytes. GetProperty lengths
// are counted in 32-bit units; names are read one unit past the limit so a
// cut can be detected.
const (
	nameLimit      = 256
	nameReadUnits  = nameLimit/4 + 1
	listLimitUnits = 4096
)

// errNoProperty is returned for properties that are not set on a window
var errNoProperty = errors.New("property not set")

var atomNames = []string{
	"_NET_CLIENT_LIST_STACKING",
	"_NET_CLIENT_LIST",
	"_NET_ACTIVE_WINDOW",
	"_NET_WM_NAME",
	"_NET_WM_PID",
	"UTF8_STRING",
}

// connection is one short-lived X server session
type connection struct {
	conn   *xgb.Conn
	root   xproto.Window
	screen *xproto.ScreenInfo
	atoms  map[string]xproto.Atom
}

func connect() (*connection, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to X server")
	}

	screen := xproto.Setup(conn).DefaultScreen(conn)
	c := &connection{
		conn:   conn,
		root:   screen.Root,
		screen: screen,
		atoms:  make(map[string]xproto.Atom, len(atomNames)),
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, errors.Wrapf(err, "failed to intern atom %s", name)
		}
		c.atoms[name] = reply.Atom
	}

	return c, nil
}

func (c *connection) close() {
	c.conn.Close()
}

func (c *connection) getProperty(win xproto.Window, atom, atomType xproto.Atom, units uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(c.conn, false, win, atom, atomType, 0, units).Reply()
	if err != nil {
		return nil, err
	}
	return propertyValue(reply)
}

// propertyValue distinguishes a missing property (format 0, type None) from
// one that is set but empty
func propertyValue(reply *xproto.GetPropertyReply) ([]byte, error) {
	if reply == nil || reply.Format == 0 || reply.Type == xproto.AtomNone {
		return nil, errNoProperty
	}
	return reply.Value, nil
}

// clientWindows returns managed windows bottom to top, as the window
// manager stacks them
func (c *connection) clientWindows() ([]xproto.Window, error) {
	data, err := c.getProperty(c.root, c.atoms["_NET_CLIENT_LIST_STACKING"], xproto.AtomWindow, listLimitUnits)
	if err == nil && len(data) > 0 {
		return decodeWindowList(data), nil
	}

	data, err = c.getProperty(c.root, c.atoms["_NET_CLIENT_LIST"], xproto.AtomWindow, listLimitUnits)
	if errors.Is(err, errNoProperty) {
		return nil, errors.New("window manager does not publish a client list")
	}
	if err != nil {
		return nil, err
	}
	return decodeWindowList(data), nil
}

func (c *connection) isViewable(win xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.conn, win).Reply()
	if err != nil {
		return false
	}
	return attrs.MapState == xproto.MapStateViewable
}

func (c *connection) windowName(win xproto.Window) string {
	data, err := c.getProperty(win, c.atoms["_NET_WM_NAME"], c.atoms["UTF8_STRING"], nameReadUnits)
	if err == nil && len(data) > 0 {
		return decodeName(data)
	}

	data, err = c.getProperty(win, xproto.AtomWmName, xproto.GetPropertyTypeAny, nameReadUnits)
	if err == nil && len(data) > 0 {
		return decodeName(data)
	}

	return ""
}

func (c *connection) windowClass(win xproto.Window) string {
	data, err := c.getProperty(win, xproto.AtomWmClass, xproto.AtomString, nameReadUnits)
	if err != nil {
		return ""
	}
	_, class := decodeWMClass(data)
	return class
}

func (c *connection) windowPID(win xproto.Window) int {
	data, err := c.getProperty(win, c.atoms["_NET_WM_PID"], xproto.AtomCardinal, 1)
	if err != nil || len(data) < 4 {
		return 0
	}
	return int(binary.LittleEndian.Uint32(data))
}

// geometry returns the window rectangle in root coordinates
func (c *connection) geometry(win xproto.Window) (x, y, width, height int) {
	geom, err := xproto.GetGeometry(c.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return 0, 0, 0, 0
	}
	width, height = int(geom.Width), int(geom.Height)

	pos, err := xproto.TranslateCoordinates(c.conn, win, c.root, 0, 0).Reply()
	if err != nil {
		return int(geom.X), int(geom.Y), width, height
	}
	return int(pos.DstX), int(pos.DstY), width, height
}

// activate asks the window manager to raise and focus win
func (c *connection) activate(win xproto.Window) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   c.atoms["_NET_ACTIVE_WINDOW"],
		// source indication 2: request from a pager-like tool
		Data: xproto.ClientMessageDataUnionData32New([]uint32{2, uint32(xproto.TimeCurrentTime), 0, 0, 0}),
	}
	mask := uint32(xproto.EventMaskSubstructureRedirect | xproto.EventMaskSubstructureNotify)
	return xproto.SendEventChecked(c.conn, false, c.root, mask, string(ev.Bytes())).Check()
}

func (c *connection) configure(win xproto.Window, mask uint16, values []uint32) error {
	return xproto.ConfigureWindowChecked(c.conn, win, mask, values).Check()
}

func decodeWindowList(data []byte) []xproto.Window {
	windows := make([]xproto.Window, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		windows = append(windows, xproto.Window(binary.LittleEndian.Uint32(data[i:])))
	}
	return windows
}

// decodeName caps data at nameLimit bytes, backing off to the start of a
// UTF-8 sequence the limit would split
func decodeName(data []byte) string {
	if len(data) > nameLimit {
		cut := nameLimit
		for i := cut; i > 0 && i > nameLimit-utf8.UTFMax; i-- {
			if utf8.RuneStart(data[i]) {
				cut = i
				break
			}
		}
		data = data[:cut]
	}
	return strings.TrimRight(string(data), "\x00")
}

// decodeWMClass splits WM_CLASS into its instance and class parts
func decodeWMClass(data []byte) (instance, class string) {
	parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	if len(parts) >= 1 {
		instance = parts[0]
	}
	if len(parts) >= 2 {
		class = parts[1]
	}
	return instance, class
}
