package wire

// CacheSlots is the fixed number of reference cache slots.
const CacheSlots = 64

// Entry is a raw cached (t, r, i) triple.
type Entry struct {
	T, R, I int
}

// ReferenceCache holds the last triple written under each slot hash.
// The zero value is an empty cache with all slots holding (0, 0, 0).
type ReferenceCache [CacheSlots]Entry

// Get returns the triple stored in slot (taken modulo CacheSlots).
func (c *ReferenceCache) Get(slot int) Entry {
	return c[slot&(CacheSlots-1)]
}

// Put stores e under its slot hash and returns the slot.
func (c *ReferenceCache) Put(e Entry) int {
	slot := SlotHash(e.T, e.R, e.I)
	c[slot] = e
	return slot
}

// Clear empties every slot.
func (c *ReferenceCache) Clear() {
	*c = ReferenceCache{}
}

// SlotHash returns (3·(t div 128) + 5·(r div 16) + 7·i) mod 64.
// The result is always in [0, CacheSlots).
func SlotHash(t, r, i int) int {
	h := 3*floorDiv(t, 128) + 5*floorDiv(r, 16) + 7*i
	h %= CacheSlots
	if h < 0 {
		h += CacheSlots
	}
	return h
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
