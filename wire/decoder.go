package wire

// Mode identifies how a ray was encoded.
type Mode uint8

// Encoding modes selected by the control byte.
const (
	ModeKey     Mode = iota + 1 // 0xFF + 3 bytes, writes the cache
	ModeRef                     // 0b00ssssss, cached triple
	ModeDeltaTR                 // 0b01ssssss + G, t and r delta
	ModeDeltaT                  // 0b10ssssss + D, t delta
	ModeFull                    // 0b11iiiiii + 2 bytes, writes the cache
)

const (
	keyByte  = 0xFF
	modeMask = 0xC0
	slotMask = 0x3F

	maxT = 1023
	maxR = 63
)

var modeNames = [...]string{
	ModeKey:     "key",
	ModeRef:     "ref",
	ModeDeltaTR: "delta-tr",
	ModeDeltaT:  "delta-t",
	ModeFull:    "full",
}

// String returns a short name for the mode.
func (m Mode) String() string {
	if int(m) < len(modeNames) && modeNames[m] != "" {
		return modeNames[m]
	}
	return "unknown"
}

// ModeOf classifies a control byte.
func ModeOf(b byte) Mode {
	if b == keyByte {
		return ModeKey
	}
	switch b & modeMask {
	case 0x00:
		return ModeRef
	case 0x40:
		return ModeDeltaTR
	case 0x80:
		return ModeDeltaT
	default:
		return ModeFull
	}
}

// Size returns the total number of bytes a ray of this mode occupies,
// control byte included.
func (m Mode) Size() int {
	switch m {
	case ModeKey:
		return 4
	case ModeRef:
		return 1
	case ModeDeltaTR, ModeDeltaT:
		return 2
	case ModeFull:
		return 3
	}
	return 1
}

// Ray is one decoded line-of-sight sample.
type Ray struct {
	// Raw triple as reconstructed from the stream.
	T, R, I int

	// Distance is T/1023 clamped to [0, 1].
	Distance float32
	// Alignment is R/63 clamped to [0, 1]; used as alpha.
	Alignment float32
	// Material indexes the color table.
	Material uint8
}

// IsBackground reports whether the ray hit nothing: either the raw
// (1023, 0, 0) sentinel or material 7 and above. Delta rays that overshoot
// t = 1023 clamp to distance 1 but are not the sentinel.
func (r Ray) IsBackground() bool {
	return (r.T == maxT && r.R == 0 && r.I == 0) || r.Material >= 7
}

func newRay(e Entry) Ray {
	return Ray{
		T:         e.T,
		R:         e.R,
		I:         e.I,
		Distance:  unit(e.T, maxT),
		Alignment: unit(e.R, maxR),
		Material:  uint8(min(max(e.I, 0), 255)),
	}
}

func unit(v, scale int) float32 {
	switch {
	case v <= 0:
		return 0
	case v >= scale:
		return 1
	}
	return float32(v) / float32(scale)
}

// Decoder provides sequential decoding of a ray stream.
// It owns a private reference cache that starts empty on every Reset, so a
// Decoder never shares state with other decode passes.
//
// Example usage:
//
//	dec := wire.NewDecoder(frame.RayData)
//	for dec.Next() {
//	    ray := dec.Ray()
//	    // rasterize ray
//	}
type Decoder struct {
	data  []byte
	pos   int
	cache ReferenceCache

	ray   Ray
	mode  Mode
	count int
}

// NewDecoder creates a decoder over data with an empty reference cache.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Reset restarts decoding over data with an empty reference cache.
func (d *Decoder) Reset(data []byte) {
	d.data = data
	d.pos = 0
	d.cache.Clear()
	d.ray = Ray{}
	d.mode = 0
	d.count = 0
}

// Next decodes the next ray. It returns false when the stream is exhausted
// or the next ray is truncated.
func (d *Decoder) Next() bool {
	if d.pos >= len(d.data) {
		return false
	}
	b := d.data[d.pos]
	mode := ModeOf(b)
	if d.pos+mode.Size() > len(d.data) {
		return false
	}
	p := d.data[d.pos+1 : d.pos+mode.Size()]

	var e Entry
	switch mode {
	case ModeKey:
		e = Entry{
			T: int(p[0])<<2 | int(p[1])>>6,
			R: int(p[1] & slotMask),
			I: int(p[2]),
		}
		d.cache.Put(e)
	case ModeRef:
		e = d.cache.Get(int(b & slotMask))
	case ModeDeltaTR:
		e = d.cache.Get(int(b & slotMask))
		g := int(p[0])
		e.T += (g >> 3) - 15
		e.R += (g & 7) - 3
	case ModeDeltaT:
		e = d.cache.Get(int(b & slotMask))
		e.T += int(p[0]) - 127
	case ModeFull:
		e = Entry{
			T: int(p[0])<<2 | int(p[1])>>6,
			R: int(p[1] & slotMask),
			I: int(b & slotMask),
		}
		d.cache.Put(e)
	}

	d.pos += mode.Size()
	d.mode = mode
	d.ray = newRay(e)
	d.count++
	return true
}

// Ray returns the most recently decoded ray.
func (d *Decoder) Ray() Ray {
	return d.ray
}

// Mode returns the encoding mode of the most recently decoded ray.
func (d *Decoder) Mode() Mode {
	return d.mode
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int {
	return d.pos
}

// Count returns the number of rays decoded so far.
func (d *Decoder) Count() int {
	return d.count
}

// Remaining returns the number of unconsumed bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

// Cache returns a copy of the current reference cache.
func (d *Decoder) Cache() ReferenceCache {
	return d.cache
}

// Decode fills dst with up to len(dst) rays and returns how many were
// written. A short count means the stream ended.
func (d *Decoder) Decode(dst []Ray) int {
	n := 0
	for n < len(dst) && d.Next() {
		dst[n] = d.ray
		n++
	}
	return n
}

// DecodeAll decodes every complete ray in data with a fresh cache.
func DecodeAll(data []byte) []Ray {
	d := NewDecoder(data)
	rays := make([]Ray, 0, len(data)/2)
	for d.Next() {
		rays = append(rays, d.ray)
	}
	return rays
}
