package raycam

import "errors"

// Sentinel errors shared by the session and render pipeline.
var (
	// ErrNotReady is returned by operations that need camera capability
	// information before any subscription delivered it.
	ErrNotReady = errors.New("raycam: camera info not available")

	// ErrClosed is returned when a closed session is asked to render or
	// accept input. A closed session never returns stale data.
	ErrClosed = errors.New("raycam: session closed")

	// ErrNoData is returned when a render is requested with no buffered frames.
	ErrNoData = errors.New("raycam: no frame data")

	// ErrAlreadyOpen is returned by Subscribe on an open session.
	ErrAlreadyOpen = errors.New("raycam: session already open")

	// ErrInvalidCameraInfo is returned for capability descriptors that cannot
	// describe a raster.
	ErrInvalidCameraInfo = errors.New("raycam: invalid camera info")
)
