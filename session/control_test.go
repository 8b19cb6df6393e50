package session

import (
	"bytes"
	"testing"

	"github.com/gogpu/raycam"
)

func TestControlMarshalBinary(t *testing.T) {
	c := NewControl([]Button{ButtonForward, ButtonJump}, raycam.Vec2{X: 1, Y: -0.5})
	got, err := c.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		0x11, 0, 0, 0, // forward|jump
		0, 0, 0x80, 0x3f, // 1.0
		0, 0, 0, 0xbf, // -0.5
	}
	if !bytes.Equal(got, want) {
		t.Errorf("MarshalBinary = % x, want % x", got, want)
	}

	var back Control
	if err := back.UnmarshalBinary(got); err != nil || back != c {
		t.Errorf("UnmarshalBinary = %+v, %v", back, err)
	}
	if err := back.UnmarshalBinary(got[:5]); err == nil {
		t.Error("short payload accepted")
	}
}

func TestControlZero(t *testing.T) {
	empty := NewControl(nil, raycam.Vec2{})
	if !empty.IsZero() {
		t.Error("no buttons and zero vector is not the clear command")
	}
	a, _ := empty.MarshalBinary()
	b, _ := Control{}.MarshalBinary()
	if !bytes.Equal(a, b) || !bytes.Equal(a, make([]byte, ControlSize)) {
		t.Errorf("clear payload = % x", a)
	}
}

func TestButtonNames(t *testing.T) {
	tests := []struct {
		b    Button
		want string
	}{
		{ButtonForward, "forward"},
		{ButtonSprint, "sprint"},
		{ButtonLeft | ButtonRight, "buttons(0xc)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.b.String(); got != tt.want {
				t.Errorf("String = %q", got)
			}
			if b, ok := ParseButton(tt.want); ok && b != tt.b {
				t.Errorf("ParseButton = %v", b)
			}
		})
	}
	if c := NewControl([]Button{ButtonUse}, raycam.Vec2{}); !c.Has(ButtonUse) || c.Has(ButtonCrouch) {
		t.Error("Has mismatch")
	}
}
