// Package ws connects a camera session to a server over a websocket.
//
// A Client implements session.Transport for outgoing control and
// unsubscribe messages, and Run feeds incoming CAMERA_INFO and RAY_FRAME
// messages into a Sink, usually a *session.Session.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/internal/protocol"
	"github.com/gogpu/raycam/session"
)

// ErrServerClosed is passed to Sink.Disconnect when the server ends the
// stream with a CLOSE message.
var ErrServerClosed = errors.New("ws: closed by server")

// Sink receives decoded server messages.
type Sink interface {
	Resubscribe(raycam.CameraInfo) error
	SubmitFrame(*raycam.RayFrame) error
	Disconnect(cause error)
}

var _ session.Transport = (*Client)(nil)

// Client is a websocket connection to a camera server.
type Client struct {
	conn      *websocket.Conn
	opts      options
	validator *protocol.Validator

	writeMu sync.Mutex

	frames  atomic.Uint64
	dropped atomic.Uint64
}

// Dial connects to url and sends SUBSCRIBE.
func Dial(ctx context.Context, url string, opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Client{opts: o}
	if o.validate {
		v, err := protocol.NewValidator()
		if err != nil {
			return nil, err
		}
		c.validator = v
	}

	d := websocket.Dialer{HandshakeTimeout: o.handshakeTimeout}
	conn, resp, err := d.DialContext(ctx, url, o.header)
	if err != nil {
		return nil, fmt.Errorf("ws: dial %s: %w", url, err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	c.conn = conn

	sub := protocol.SubscribeMsg{
		Type:            protocol.TypeSubscribe,
		ProtocolVersion: protocol.Version,
		Camera:          o.camera,
		Compression:     o.compression,
	}
	if err := c.writeJSON(sub); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ws: subscribe: %w", err)
	}
	raycam.Logger().Info("ws: connected", "url", url, "camera", o.camera, "compression", o.compression)
	return c, nil
}

// SendControl sends a CONTROL message.
func (c *Client) SendControl(ctl session.Control) error {
	return c.writeJSON(protocol.ControlMsg{
		Type:    protocol.TypeControl,
		Buttons: ctl.Buttons,
		Mouse:   [2]float32{ctl.Mouse.X, ctl.Mouse.Y},
	})
}

// Unsubscribe sends UNSUBSCRIBE. The connection stays open.
func (c *Client) Unsubscribe() error {
	return c.writeJSON(protocol.UnsubscribeMsg{Type: protocol.TypeUnsubscribe})
}

// Close sends a close frame and closes the connection.
func (c *Client) Close() error {
	c.writeMu.Lock()
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
		time.Now().Add(time.Second))
	c.writeMu.Unlock()
	return c.conn.Close()
}

// Frames returns the number of frames delivered to the sink.
func (c *Client) Frames() uint64 { return c.frames.Load() }

// Dropped returns the number of server messages that were ignored.
func (c *Client) Dropped() uint64 { return c.dropped.Load() }

func (c *Client) writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(c.opts.writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

// Run reads server messages until the connection fails, the server sends
// CLOSE, or ctx is done. Every exit path calls sink.Disconnect. A CLOSE
// message makes Run return nil.
func (c *Client) Run(ctx context.Context, sink Sink) error {
	stop := context.AfterFunc(ctx, func() { _ = c.conn.Close() })
	defer stop()

	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(c.opts.readTimeout))
		kind, msg, err := c.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				err = ctx.Err()
			}
			sink.Disconnect(err)
			return err
		}
		if kind == websocket.BinaryMessage {
			if msg, err = protocol.Decompress(msg); err != nil {
				c.drop("bad binary message", err)
				continue
			}
		}
		if done := c.handle(sink, msg); done {
			sink.Disconnect(ErrServerClosed)
			return nil
		}
	}
}

// handle dispatches one message and reports whether the stream ended.
func (c *Client) handle(sink Sink, msg []byte) bool {
	base, err := protocol.DecodeBase(msg)
	if err != nil {
		c.drop("bad json", err)
		return false
	}
	if !protocol.IsSupportedVersion(base.ProtocolVersion) {
		c.drop("unsupported protocol version", errors.New(base.ProtocolVersion))
		return false
	}
	if c.validator != nil {
		if err := c.validator.Validate(base.Type, msg); err != nil {
			c.drop("schema", err)
			return false
		}
	}

	log := raycam.Logger()
	switch base.Type {
	case protocol.TypeCameraInfo:
		var m protocol.CameraInfoMsg
		if err := json.Unmarshal(msg, &m); err != nil {
			c.drop("bad camera info", err)
			return false
		}
		if err := sink.Resubscribe(m.Info()); err != nil {
			log.Warn("ws: camera info rejected", "err", err)
		}
	case protocol.TypeRayFrame:
		var m protocol.RayFrameMsg
		if err := json.Unmarshal(msg, &m); err != nil {
			c.drop("bad ray frame", err)
			return false
		}
		f, err := m.Frame()
		if err != nil {
			c.drop("bad ray frame", err)
			return false
		}
		if err := sink.SubmitFrame(f); err != nil {
			c.drop("frame rejected", err)
			return false
		}
		c.frames.Add(1)
	case protocol.TypeClose:
		var m protocol.CloseMsg
		_ = json.Unmarshal(msg, &m)
		log.Info("ws: server closed stream", "reason", m.Reason)
		return true
	default:
		c.drop("unknown message type", errors.New(base.Type))
	}
	return false
}

func (c *Client) drop(what string, err error) {
	c.dropped.Add(1)
	raycam.Logger().Warn("ws: dropped message", "reason", what, "err", err)
}
