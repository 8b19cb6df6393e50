package session

import (
	"encoding/binary"
	"errors"
	"math"
	"strconv"

	"github.com/gogpu/raycam"
)

// Button is a movement input bit.
type Button uint32

// Movement buttons.
const (
	ButtonForward Button = 1 << iota
	ButtonBack
	ButtonLeft
	ButtonRight
	ButtonJump
	ButtonCrouch
	ButtonUse
	ButtonSprint
)

var buttonNames = [...]string{"forward", "back", "left", "right", "jump", "crouch", "use", "sprint"}

// String returns the button name, or "buttons(0x..)" for combinations.
func (b Button) String() string {
	for i, name := range buttonNames {
		if b == 1<<i {
			return name
		}
	}
	return "buttons(0x" + strconv.FormatUint(uint64(b), 16) + ")"
}

// ParseButton returns the button with the given name.
func ParseButton(name string) (Button, bool) {
	for i, n := range buttonNames {
		if n == name {
			return 1 << i, true
		}
	}
	return 0, false
}

// ControlSize is the length of an encoded Control.
const ControlSize = 12

var errControlSize = errors.New("session: control payload must be 12 bytes")

// Control is one movement command: a button bitmask and a joystick vector.
// The zero Control clears all movement.
type Control struct {
	Buttons uint32      `json:"buttons"`
	Mouse   raycam.Vec2 `json:"mouse"`
}

// NewControl combines buttons with a joystick vector.
func NewControl(buttons []Button, mouse raycam.Vec2) Control {
	var mask uint32
	for _, b := range buttons {
		mask |= uint32(b)
	}
	return Control{Buttons: mask, Mouse: mouse}
}

// IsZero reports whether c clears movement.
func (c Control) IsZero() bool {
	return c == Control{}
}

// Has reports whether every bit of b is set.
func (c Control) Has(b Button) bool {
	return c.Buttons&uint32(b) == uint32(b)
}

// MarshalBinary encodes c as little-endian mask, x, y.
func (c Control) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ControlSize)
	binary.LittleEndian.PutUint32(buf[0:], c.Buttons)
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(c.Mouse.X))
	binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(c.Mouse.Y))
	return buf, nil
}

// UnmarshalBinary decodes the format written by MarshalBinary.
func (c *Control) UnmarshalBinary(data []byte) error {
	if len(data) != ControlSize {
		return errControlSize
	}
	c.Buttons = binary.LittleEndian.Uint32(data[0:])
	c.Mouse.X = math.Float32frombits(binary.LittleEndian.Uint32(data[4:]))
	c.Mouse.Y = math.Float32frombits(binary.LittleEndian.Uint32(data[8:]))
	return nil
}
