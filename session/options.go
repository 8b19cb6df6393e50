package session

import (
	"time"

	"github.com/gogpu/raycam/render"
)

// Option configures a Session.
type Option func(*config)

type config struct {
	render   []render.Option
	capacity int
	now      func() time.Time
}

func defaultConfig() config {
	return config{
		capacity: QueueCapacity,
		now:      time.Now,
	}
}

// WithRenderOptions passes options to every renderer the session builds.
func WithRenderOptions(opts ...render.Option) Option {
	return func(c *config) {
		c.render = append(c.render, opts...)
	}
}

// WithQueueCapacity lowers the number of buffered frames. Values are
// clamped to [1, QueueCapacity].
func WithQueueCapacity(n int) Option {
	return func(c *config) {
		c.capacity = min(max(n, 1), QueueCapacity)
	}
}

// WithClock sets the time source used for subscription timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.now = now
		}
	}
}
