package ws

import (
	"net/http"
	"time"
)

// Option configures a Client during Dial.
type Option func(*options)

type options struct {
	camera           string
	compression      string
	validate         bool
	header           http.Header
	handshakeTimeout time.Duration
	writeTimeout     time.Duration
	readTimeout      time.Duration
}

func defaultOptions() options {
	return options{
		handshakeTimeout: 5 * time.Second,
		writeTimeout:     5 * time.Second,
		readTimeout:      60 * time.Second,
	}
}

// WithCamera names the camera to subscribe to. Empty lets the server pick.
func WithCamera(name string) Option {
	return func(o *options) {
		o.camera = name
	}
}

// WithCompression asks the server for compressed binary frames.
// The only supported value is protocol.CompressionZstd.
func WithCompression(name string) Option {
	return func(o *options) {
		o.compression = name
	}
}

// WithSchemaValidation checks every server message against the protocol
// JSON schemas and drops the ones that fail.
func WithSchemaValidation() Option {
	return func(o *options) {
		o.validate = true
	}
}

// WithHeader adds HTTP headers to the handshake request.
func WithHeader(h http.Header) Option {
	return func(o *options) {
		o.header = h
	}
}

// WithTimeouts overrides the handshake, write and read deadlines.
// Zero values keep the defaults.
func WithTimeouts(handshake, write, read time.Duration) Option {
	return func(o *options) {
		if handshake > 0 {
			o.handshakeTimeout = handshake
		}
		if write > 0 {
			o.writeTimeout = write
		}
		if read > 0 {
			o.readTimeout = read
		}
	}
}
