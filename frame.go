package raycam

import (
	"fmt"
	"math"
)

// Vec3 is a world-space vector.
type Vec3 struct {
	X, Y, Z float32
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float32 {
	return float32(math.Sqrt(float64(v.LenSq())))
}

// LenSq returns the squared length of v.
func (v Vec3) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Vec2 is a 2-D vector, used for joystick and mouse deltas.
type Vec2 struct {
	X, Y float32
}

// EntityType selects the archetype an entity is drawn with.
type EntityType uint8

const (
	// EntityTree is static scenery drawn as a canopy silhouette.
	EntityTree EntityType = iota
	// EntityPlayer is a humanoid drawn as a capsule with a name tag.
	EntityPlayer
)

// String returns the wire name of the entity type.
func (t EntityType) String() string {
	switch t {
	case EntityTree:
		return "tree"
	case EntityPlayer:
		return "player"
	default:
		return fmt.Sprintf("EntityType(%d)", uint8(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t EntityType) MarshalText() ([]byte, error) {
	switch t {
	case EntityTree, EntityPlayer:
		return []byte(t.String()), nil
	}
	return nil, fmt.Errorf("raycam: unknown entity type %d", uint8(t))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *EntityType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "tree":
		*t = EntityTree
	case "player":
		*t = EntityPlayer
	default:
		return fmt.Errorf("raycam: unknown entity type %q", b)
	}
	return nil
}

// Entity is a dynamically tracked object reported with a frame.
// Entities are replaced wholesale every frame and never merged.
type Entity struct {
	ID       string     `json:"id" yaml:"id"`
	Type     EntityType `json:"type" yaml:"type"`
	Position Vec3       `json:"position" yaml:"position"`
	// Rotation holds Euler angles in radians, applied X, then Y, then Z.
	Rotation Vec3   `json:"rotation" yaml:"rotation"`
	Size     Vec3   `json:"size" yaml:"size"`
	Name     string `json:"name,omitempty" yaml:"name,omitempty"`
}

// RayFrame is one camera update pushed by the server.
// A frame is immutable once handed to a session.
type RayFrame struct {
	// VerticalFOV is the vertical field of view in degrees.
	VerticalFOV float32 `json:"vertical_fov" yaml:"vertical_fov"`
	// SampleOffset is the starting cursor into the scramble table.
	SampleOffset uint32 `json:"sample_offset" yaml:"sample_offset"`
	// RayData is the bit-packed ray stream (see package wire).
	RayData []byte `json:"ray_data" yaml:"ray_data"`
	// Distance is the scalar distance from the player reported by the server.
	Distance float32  `json:"distance" yaml:"distance"`
	Entities []Entity `json:"entities" yaml:"entities"`
}

// Control flag bits advertised in CameraInfo.ControlFlags.
const (
	ControlMovement uint32 = 1 << iota
	ControlMouse
)

// CameraInfo is the capability descriptor delivered once at subscribe.
type CameraInfo struct {
	Width        int     `json:"width" yaml:"width"`
	Height       int     `json:"height" yaml:"height"`
	NearPlane    float32 `json:"near_plane" yaml:"near_plane"`
	FarPlane     float32 `json:"far_plane" yaml:"far_plane"`
	ControlFlags uint32  `json:"control_flags" yaml:"control_flags"`
}

// Validate reports whether the descriptor can drive a renderer.
func (c CameraInfo) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidCameraInfo, c.Width, c.Height)
	case c.Width > math.MaxUint16 || c.Height > math.MaxUint16:
		return fmt.Errorf("%w: %dx%d exceeds scramble table range", ErrInvalidCameraInfo, c.Width, c.Height)
	case !(c.NearPlane > 0) || !(c.FarPlane > c.NearPlane):
		return fmt.Errorf("%w: planes near=%v far=%v", ErrInvalidCameraInfo, c.NearPlane, c.FarPlane)
	}
	return nil
}

// PixelCount returns the number of ray cells, width·height.
func (c CameraInfo) PixelCount() int {
	return c.Width * c.Height
}

// Aspect returns width/height.
func (c CameraInfo) Aspect() float32 {
	if c.Height == 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Allows reports whether all bits of flag are set in ControlFlags.
func (c CameraInfo) Allows(flag uint32) bool {
	return c.ControlFlags&flag == flag
}
