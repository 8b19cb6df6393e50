package session

import "github.com/gogpu/raycam"

// QueueCapacity is the number of frames a session buffers.
const QueueCapacity = 6

// FrameQueue is a bounded FIFO of ray frames that evicts the oldest frame
// when full. It is not safe for concurrent use.
type FrameQueue struct {
	buf   []*raycam.RayFrame
	head  int // index of the oldest frame
	n     int
	evict uint64
}

// NewFrameQueue creates a queue holding up to capacity frames.
// Capacity ≤ 0 uses QueueCapacity.
func NewFrameQueue(capacity int) *FrameQueue {
	if capacity <= 0 {
		capacity = QueueCapacity
	}
	return &FrameQueue{buf: make([]*raycam.RayFrame, capacity)}
}

// Push appends f and returns the frame evicted to make room, if any.
func (q *FrameQueue) Push(f *raycam.RayFrame) (evicted *raycam.RayFrame) {
	if q.n == len(q.buf) {
		evicted = q.buf[q.head]
		q.buf[q.head] = f
		q.head = (q.head + 1) % len(q.buf)
		q.evict++
		return evicted
	}
	q.buf[(q.head+q.n)%len(q.buf)] = f
	q.n++
	return nil
}

// Frames returns the buffered frames from oldest to newest.
func (q *FrameQueue) Frames() []*raycam.RayFrame {
	out := make([]*raycam.RayFrame, q.n)
	for i := range out {
		out[i] = q.buf[(q.head+i)%len(q.buf)]
	}
	return out
}

// Latest returns the newest frame, or nil when empty.
func (q *FrameQueue) Latest() *raycam.RayFrame {
	if q.n == 0 {
		return nil
	}
	return q.buf[(q.head+q.n-1)%len(q.buf)]
}

// Clear drops every buffered frame.
func (q *FrameQueue) Clear() {
	clear(q.buf)
	q.head, q.n = 0, 0
}

// Len returns the number of buffered frames.
func (q *FrameQueue) Len() int {
	return q.n
}

// Cap returns the queue capacity.
func (q *FrameQueue) Cap() int {
	return len(q.buf)
}

// Evictions returns how many frames were dropped for capacity.
func (q *FrameQueue) Evictions() uint64 {
	return q.evict
}
