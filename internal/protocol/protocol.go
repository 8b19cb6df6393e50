// Package protocol defines the JSON messages exchanged with a camera server.
//
// Server messages arrive as websocket text frames, or as zstd-compressed
// JSON in binary frames (see Decompress). Every message carries a "type"
// field used for routing with DecodeBase.
package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	// Server -> client.
	TypeCameraInfo = "CAMERA_INFO"
	TypeRayFrame   = "RAY_FRAME"
	TypeClose      = "CLOSE"

	// Client -> server.
	TypeSubscribe   = "SUBSCRIBE"
	TypeControl     = "CONTROL"
	TypeUnsubscribe = "UNSUBSCRIBE"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}

// IsSupportedVersion reports whether v can be decoded by this package.
// An empty version is accepted.
func IsSupportedVersion(v string) bool {
	return v == "" || v == Version
}
