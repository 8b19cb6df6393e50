package protocol

import (
	"encoding/base64"
	"fmt"

	"github.com/gogpu/raycam"
)

// CAMERA_INFO (server -> client)
type CameraInfoMsg struct {
	Type            string  `json:"type" yaml:"type,omitempty"`
	ProtocolVersion string  `json:"protocol_version,omitempty" yaml:"protocol_version,omitempty"`
	Width           int     `json:"width" yaml:"width"`
	Height          int     `json:"height" yaml:"height"`
	NearPlane       float32 `json:"near_plane" yaml:"near_plane"`
	FarPlane        float32 `json:"far_plane" yaml:"far_plane"`
	ControlFlags    uint32  `json:"control_flags,omitempty" yaml:"control_flags,omitempty"`
}

func NewCameraInfoMsg(info raycam.CameraInfo) CameraInfoMsg {
	return CameraInfoMsg{
		Type:            TypeCameraInfo,
		ProtocolVersion: Version,
		Width:           info.Width,
		Height:          info.Height,
		NearPlane:       info.NearPlane,
		FarPlane:        info.FarPlane,
		ControlFlags:    info.ControlFlags,
	}
}

// Info returns the camera descriptor carried by m.
func (m CameraInfoMsg) Info() raycam.CameraInfo {
	return raycam.CameraInfo{
		Width:        m.Width,
		Height:       m.Height,
		NearPlane:    m.NearPlane,
		FarPlane:     m.FarPlane,
		ControlFlags: m.ControlFlags,
	}
}

// RAY_FRAME (server -> client)
type RayFrameMsg struct {
	Type            string  `json:"type" yaml:"type,omitempty"`
	ProtocolVersion string  `json:"protocol_version,omitempty" yaml:"protocol_version,omitempty"`
	Seq             uint64  `json:"seq,omitempty" yaml:"seq,omitempty"`
	VerticalFOV     float32 `json:"vertical_fov" yaml:"vertical_fov"`
	SampleOffset    uint32  `json:"sample_offset" yaml:"sample_offset"`
	// RayData is the standard base64 encoding of the packed ray stream.
	RayData  string      `json:"ray_data" yaml:"ray_data"`
	Distance float32     `json:"distance" yaml:"distance"`
	Entities []EntityMsg `json:"entities,omitempty" yaml:"entities,omitempty"`
}

type EntityMsg struct {
	ID   string     `json:"id" yaml:"id"`
	Type string     `json:"type" yaml:"type"`
	Pos  [3]float32 `json:"pos" yaml:"pos"`
	Rot  [3]float32 `json:"rot,omitempty" yaml:"rot,omitempty"`
	Size [3]float32 `json:"size" yaml:"size"`
	Name string     `json:"name,omitempty" yaml:"name,omitempty"`
}

func NewRayFrameMsg(f *raycam.RayFrame) RayFrameMsg {
	m := RayFrameMsg{
		Type:            TypeRayFrame,
		ProtocolVersion: Version,
		VerticalFOV:     f.VerticalFOV,
		SampleOffset:    f.SampleOffset,
		RayData:         base64.StdEncoding.EncodeToString(f.RayData),
		Distance:        f.Distance,
	}
	for _, e := range f.Entities {
		m.Entities = append(m.Entities, EntityMsg{
			ID:   e.ID,
			Type: e.Type.String(),
			Pos:  vec(e.Position),
			Rot:  vec(e.Rotation),
			Size: vec(e.Size),
			Name: e.Name,
		})
	}
	return m
}

// Frame decodes m into a ray frame.
func (m RayFrameMsg) Frame() (*raycam.RayFrame, error) {
	data, err := base64.StdEncoding.DecodeString(m.RayData)
	if err != nil {
		return nil, fmt.Errorf("protocol: ray_data: %w", err)
	}
	f := &raycam.RayFrame{
		VerticalFOV:  m.VerticalFOV,
		SampleOffset: m.SampleOffset,
		RayData:      data,
		Distance:     m.Distance,
		Entities:     make([]raycam.Entity, 0, len(m.Entities)),
	}
	for i, em := range m.Entities {
		var typ raycam.EntityType
		if err := typ.UnmarshalText([]byte(em.Type)); err != nil {
			return nil, fmt.Errorf("protocol: entity %d: %w", i, err)
		}
		f.Entities = append(f.Entities, raycam.Entity{
			ID:       em.ID,
			Type:     typ,
			Position: raycam.Vec3{X: em.Pos[0], Y: em.Pos[1], Z: em.Pos[2]},
			Rotation: raycam.Vec3{X: em.Rot[0], Y: em.Rot[1], Z: em.Rot[2]},
			Size:     raycam.Vec3{X: em.Size[0], Y: em.Size[1], Z: em.Size[2]},
			Name:     em.Name,
		})
	}
	return f, nil
}

func vec(v raycam.Vec3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

// CLOSE (server -> client)
type CloseMsg struct {
	Type   string `json:"type"`
	Reason string `json:"reason,omitempty"`
}

// SUBSCRIBE (client -> server)
type SubscribeMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Camera          string `json:"camera,omitempty"`
	Compression     string `json:"compression,omitempty"`
}

// CONTROL (client -> server)
type ControlMsg struct {
	Type    string     `json:"type"`
	Buttons uint32     `json:"buttons"`
	Mouse   [2]float32 `json:"mouse"`
}

// UNSUBSCRIBE (client -> server)
type UnsubscribeMsg struct {
	Type string `json:"type"`
}
