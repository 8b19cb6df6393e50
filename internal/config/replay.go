package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/internal/protocol"
)

// Replay is a recorded camera stream: one descriptor and the frames pushed
// after it. JSON files load too, since YAML is a superset.
type Replay struct {
	Camera protocol.CameraInfoMsg `yaml:"camera"`
	Frames []protocol.RayFrameMsg `yaml:"frames"`
}

var errNoFrames = errors.New("replay has no frames")

// LoadReplay reads and validates a replay file.
func LoadReplay(path string) (Replay, error) {
	var r Replay
	raw, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return r, fmt.Errorf("%s: %w", path, err)
	}
	if err := r.Camera.Info().Validate(); err != nil {
		return r, fmt.Errorf("%s: %w", path, err)
	}
	if len(r.Frames) == 0 {
		return r, fmt.Errorf("%s: %w", path, errNoFrames)
	}
	return r, nil
}

// RayFrames decodes every recorded frame.
func (r Replay) RayFrames() ([]*raycam.RayFrame, error) {
	out := make([]*raycam.RayFrame, 0, len(r.Frames))
	for i, m := range r.Frames {
		f, err := m.Frame()
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		out = append(out, f)
	}
	return out, nil
}

// WriteReplay stores frames recorded from a camera at path.
func WriteReplay(path string, info raycam.CameraInfo, frames []*raycam.RayFrame) error {
	r := Replay{Camera: protocol.NewCameraInfoMsg(info)}
	for _, f := range frames {
		r.Frames = append(r.Frames, protocol.NewRayFrameMsg(f))
	}
	b, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
