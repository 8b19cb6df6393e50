// Package session drives one camera subscription.
//
// A [Session] moves between two states. Subscribe or Resubscribe opens it
// with a camera descriptor; Exit, Unsubscribe or a transport Disconnect
// closes it. While open, frames pushed by the transport are buffered in a
// bounded queue (oldest evicted first) and rendered either on demand with
// Frame or eagerly for registered observers.
//
// Observers run synchronously after each buffered frame, in registration
// order. A failing observer is logged and does not stop delivery to the
// rest.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/raycam"
	"github.com/gogpu/raycam/render"
)

// ErrNilFrame is returned by SubmitFrame for a nil frame.
var ErrNilFrame = errors.New("session: nil frame")

// State is the session lifecycle state.
type State int

const (
	// StateClosed holds no frames and rejects renders and input.
	StateClosed State = iota
	// StateOpen accepts frames, renders and input.
	StateOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Transport carries session output to the game server.
type Transport interface {
	// SendControl forwards a movement command.
	SendControl(Control) error
	// Unsubscribe asks the server to stop streaming frames.
	Unsubscribe() error
}

// Observer receives every frame rendered after arrival.
type Observer func(*render.Result) error

// Session is a camera subscription.
//
// Methods are safe to call from multiple goroutines, but renders are
// serialized and a single owner is expected to drive the lifecycle.
// Observers are called without the session lock held, so they may call
// back into the session.
type Session struct {
	mu        sync.Mutex
	transport Transport
	cfg       config

	state         State
	info          raycam.CameraInfo
	hasInfo       bool
	renderer      *render.Renderer
	queue         *FrameQueue
	lastSubscribe time.Time

	observers []Observer
}

// New creates a closed session.
func New(t Transport, opts ...Option) *Session {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session{
		transport: t,
		cfg:       cfg,
		queue:     NewFrameQueue(cfg.capacity),
	}
}

// Subscribe opens a closed session with a camera descriptor.
// It returns ErrAlreadyOpen when the session is open.
func (s *Session) Subscribe(info raycam.CameraInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateOpen {
		return raycam.ErrAlreadyOpen
	}
	return s.open(info, "subscribed")
}

// Resubscribe opens the session with a new descriptor from any state,
// dropping every buffered frame.
func (s *Session) Resubscribe(info raycam.CameraInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.open(info, "resubscribed")
}

// Caller must hold s.mu.
func (s *Session) open(info raycam.CameraInfo, event string) error {
	r, err := render.New(info, s.cfg.render...)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.renderer = r
	s.info, s.hasInfo = info, true
	s.queue.Clear()
	s.lastSubscribe = s.cfg.now()
	s.state = StateOpen

	raycam.Logger().Info("session: "+event,
		"width", info.Width, "height", info.Height,
		"near", info.NearPlane, "far", info.FarPlane)
	return nil
}

// SubmitFrame buffers a frame and, when observers are registered, renders
// the buffer and notifies them. It returns ErrClosed unless open.
func (s *Session) SubmitFrame(f *raycam.RayFrame) error {
	if f == nil {
		return ErrNilFrame
	}
	s.mu.Lock()
	if s.state != StateOpen {
		s.mu.Unlock()
		return raycam.ErrClosed
	}
	if old := s.queue.Push(f); old != nil {
		raycam.Logger().Debug("session: evicted oldest frame",
			"buffered", s.queue.Len(), "evictions", s.queue.Evictions())
	}
	if len(s.observers) == 0 {
		s.mu.Unlock()
		return nil
	}
	observers := append([]Observer(nil), s.observers...)
	res, err := s.renderer.Render(s.queue.Frames())
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("session: render: %w", err)
	}

	for i, obs := range observers {
		if err := obs(res); err != nil {
			raycam.Logger().Warn("session: observer failed", "observer", i, "err", err)
		}
	}
	return nil
}

// Frame renders the buffered frames. It returns ErrClosed when closed and
// ErrNoData when nothing is buffered.
func (s *Session) Frame() (*render.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return nil, raycam.ErrClosed
	}
	if s.queue.Len() == 0 {
		return nil, raycam.ErrNoData
	}
	return s.renderer.Render(s.queue.Frames())
}

// OnFrame registers an observer. Observers are called in registration order.
func (s *Session) OnFrame(obs Observer) {
	if obs == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// Exit closes an open session and tells the transport to stop streaming.
// The session is closed even when the transport call fails.
func (s *Session) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return raycam.ErrClosed
	}
	s.close()
	raycam.Logger().Info("session: exited")
	if s.transport == nil {
		return nil
	}
	if err := s.transport.Unsubscribe(); err != nil {
		return fmt.Errorf("session: unsubscribe: %w", err)
	}
	return nil
}

// Unsubscribe is an alias for Exit.
func (s *Session) Unsubscribe() error {
	return s.Exit()
}

// Disconnect force-closes the session after a transport failure. The
// session never reconnects by itself; call Resubscribe.
func (s *Session) Disconnect(cause error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return
	}
	s.close()
	raycam.Logger().Info("session: disconnected", "err", cause)
}

// Caller must hold s.mu.
func (s *Session) close() {
	s.queue.Clear()
	s.state = StateClosed
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Info returns the camera descriptor of the last subscription, or
// ErrNotReady before any.
func (s *Session) Info() (raycam.CameraInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasInfo {
		return raycam.CameraInfo{}, raycam.ErrNotReady
	}
	return s.info, nil
}

// LastSubscribe returns when the session was last opened.
func (s *Session) LastSubscribe() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSubscribe
}

// Buffered returns the number of buffered frames.
func (s *Session) Buffered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// Frames returns the buffered frames from oldest to newest.
func (s *Session) Frames() []*raycam.RayFrame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Frames()
}

// Entities returns the entities reported with the newest frame.
func (s *Session) Entities() ([]raycam.Entity, error) {
	f, err := s.latest()
	if err != nil {
		return nil, err
	}
	return f.Entities, nil
}

// Distance returns the newest frame's distance from the player.
func (s *Session) Distance() (float32, error) {
	f, err := s.latest()
	if err != nil {
		return 0, err
	}
	return f.Distance, nil
}

func (s *Session) latest() (*raycam.RayFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return nil, raycam.ErrClosed
	}
	f := s.queue.Latest()
	if f == nil {
		return nil, raycam.ErrNoData
	}
	return f, nil
}
