package raycam

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestCameraInfoValidate(t *testing.T) {
	tests := []struct {
		name    string
		info    CameraInfo
		wantErr bool
	}{
		{"ok", CameraInfo{Width: 64, Height: 36, NearPlane: 0.1, FarPlane: 100}, false},
		{"zero width", CameraInfo{Height: 36, NearPlane: 0.1, FarPlane: 100}, true},
		{"negative height", CameraInfo{Width: 4, Height: -1, NearPlane: 0.1, FarPlane: 100}, true},
		{"near zero", CameraInfo{Width: 4, Height: 4, FarPlane: 100}, true},
		{"far before near", CameraInfo{Width: 4, Height: 4, NearPlane: 10, FarPlane: 1}, true},
		{"too wide", CameraInfo{Width: 70000, Height: 1, NearPlane: 0.1, FarPlane: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidCameraInfo) {
				t.Errorf("error %v does not wrap ErrInvalidCameraInfo", err)
			}
		})
	}
}

func TestEntityTypeJSON(t *testing.T) {
	in := Entity{ID: "7", Type: EntityPlayer, Name: "alice"}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var out Entity
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if out.Type != EntityPlayer || out.Name != "alice" {
		t.Errorf("round trip = %+v", out)
	}

	var bad Entity
	if err := json.Unmarshal([]byte(`{"type":"rock"}`), &bad); err == nil {
		t.Error("expected error for unknown entity type")
	}
}

func TestCameraInfoAllows(t *testing.T) {
	c := CameraInfo{ControlFlags: ControlMovement}
	if !c.Allows(ControlMovement) {
		t.Error("movement should be allowed")
	}
	if c.Allows(ControlMouse) {
		t.Error("mouse should not be allowed")
	}
}

func TestVec3Len(t *testing.T) {
	v := Vec3{X: 3, Y: 4}
	if v.Len() != 5 || v.LenSq() != 25 {
		t.Errorf("Len=%v LenSq=%v", v.Len(), v.LenSq())
	}
}
