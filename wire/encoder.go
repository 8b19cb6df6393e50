package wire

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a value cannot be represented by the
// requested encoding.
var ErrOutOfRange = errors.New("wire: value out of range")

// Encoder builds a ray stream. It mirrors the decoder's reference cache so
// callers can look up what a slot holds before emitting a reference or delta.
type Encoder struct {
	buf   []byte
	cache ReferenceCache
	count int
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 256)}
}

// Reset discards all output and empties the cache.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
	e.cache.Clear()
	e.count = 0
}

// Bytes returns the encoded stream. The slice aliases the encoder's buffer.
func (e *Encoder) Bytes() []byte {
	return e.buf
}

// Len returns the number of rays emitted.
func (e *Encoder) Len() int {
	return e.count
}

// Lookup returns the triple the decoder will hold in slot.
func (e *Encoder) Lookup(slot int) Entry {
	return e.cache.Get(slot)
}

// Key emits a 4-byte key ray and returns the cache slot it was stored in.
func (e *Encoder) Key(t, r, i int) (int, error) {
	if err := checkTR(t, r); err != nil {
		return 0, err
	}
	if i < 0 || i > 255 {
		return 0, fmt.Errorf("%w: i=%d", ErrOutOfRange, i)
	}
	e.buf = append(e.buf, keyByte, byte(t>>2), byte((t&3)<<6|r), byte(i))
	e.count++
	return e.cache.Put(Entry{T: t, R: r, I: i}), nil
}

// Full emits a 3-byte ray carrying the material in the control byte and
// returns the cache slot it was stored in. Materials are limited to [0, 62]
// because 0xFF is reserved for key rays.
func (e *Encoder) Full(t, r, i int) (int, error) {
	if err := checkTR(t, r); err != nil {
		return 0, err
	}
	if i < 0 || i >= slotMask {
		return 0, fmt.Errorf("%w: i=%d", ErrOutOfRange, i)
	}
	e.buf = append(e.buf, modeMask|byte(i), byte(t>>2), byte((t&3)<<6|r))
	e.count++
	return e.cache.Put(Entry{T: t, R: r, I: i}), nil
}

// Ref emits a 1-byte ray repeating the triple in slot.
func (e *Encoder) Ref(slot int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	e.buf = append(e.buf, byte(slot))
	e.count++
	return nil
}

// DeltaTR emits a 2-byte ray adding dt in [-15, 16] and dr in [-3, 4] to
// the triple in slot.
func (e *Encoder) DeltaTR(slot, dt, dr int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if dt < -15 || dt > 16 || dr < -3 || dr > 4 {
		return fmt.Errorf("%w: dt=%d dr=%d", ErrOutOfRange, dt, dr)
	}
	e.buf = append(e.buf, 0x40|byte(slot), byte((dt+15)<<3|(dr+3)))
	e.count++
	return nil
}

// DeltaT emits a 2-byte ray adding dt in [-127, 128] to the triple in slot.
func (e *Encoder) DeltaT(slot, dt int) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	if dt < -127 || dt > 128 {
		return fmt.Errorf("%w: dt=%d", ErrOutOfRange, dt)
	}
	e.buf = append(e.buf, 0x80|byte(slot), byte(dt+127))
	e.count++
	return nil
}

// Encode emits the cheapest encoding for (t, r, i) given the current cache.
func (e *Encoder) Encode(t, r, i int) error {
	slot := SlotHash(t, r, i)
	c := e.cache.Get(slot)
	if c.I == i {
		dt, dr := t-c.T, r-c.R
		switch {
		case dt == 0 && dr == 0:
			return e.Ref(slot)
		case dt >= -15 && dt <= 16 && dr >= -3 && dr <= 4:
			return e.DeltaTR(slot, dt, dr)
		case dr == 0 && dt >= -127 && dt <= 128:
			return e.DeltaT(slot, dt)
		}
	}
	if i < slotMask {
		_, err := e.Full(t, r, i)
		return err
	}
	_, err := e.Key(t, r, i)
	return err
}

func checkTR(t, r int) error {
	if t < 0 || t > maxT || r < 0 || r > maxR {
		return fmt.Errorf("%w: t=%d r=%d", ErrOutOfRange, t, r)
	}
	return nil
}

func checkSlot(slot int) error {
	if slot < 0 || slot >= CacheSlots {
		return fmt.Errorf("%w: slot=%d", ErrOutOfRange, slot)
	}
	return nil
}
