package session

import (
	"fmt"

	"github.com/gogpu/raycam"
)

// SendActions presses the given buttons with a centered joystick.
// Calling it with no buttons is equivalent to ClearMovement.
func (s *Session) SendActions(buttons ...Button) error {
	return s.SendControl(NewControl(buttons, raycam.Vec2{}))
}

// SendMouseMovement moves the joystick with no buttons pressed.
func (s *Session) SendMouseMovement(delta raycam.Vec2) error {
	return s.SendControl(NewControl(nil, delta))
}

// SendCombinedMovement presses buttons and moves the joystick at once.
func (s *Session) SendCombinedMovement(buttons []Button, delta raycam.Vec2) error {
	return s.SendControl(NewControl(buttons, delta))
}

// ClearMovement releases every button and centers the joystick.
func (s *Session) ClearMovement() error {
	return s.SendControl(Control{})
}

// SendControl forwards c to the transport. It returns ErrClosed unless the
// session is open. The descriptor's control flags are advisory and not
// enforced.
func (s *Session) SendControl(c Control) error {
	s.mu.Lock()
	open := s.state == StateOpen
	t := s.transport
	s.mu.Unlock()

	if !open {
		return raycam.ErrClosed
	}
	if t == nil {
		return nil
	}
	if err := t.SendControl(c); err != nil {
		return fmt.Errorf("session: send control: %w", err)
	}
	return nil
}
