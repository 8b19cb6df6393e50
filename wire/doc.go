// Package wire decodes and encodes the bit-packed camera ray stream.
//
// Every ray starts with one control byte B. The two high bits select how
// the remaining fields are obtained:
//
//	B == 0xFF      key:      3 more bytes carry t (10 bits), r (6 bits), i (8 bits);
//	                         the triple is stored in the reference cache
//	B&0xC0 == 0x00 ref:      copy the triple cached in slot B&63
//	B&0xC0 == 0x40 delta-tr: 1 byte G; t += (G>>3)-15, r += (G&7)-3
//	B&0xC0 == 0x80 delta-t:  1 byte D; t += D-127
//	B&0xC0 == 0xC0 full:     2 bytes carry t and r, i = B&63; the triple is
//	                         stored in the reference cache
//
// Cached triples live in a 64-slot [ReferenceCache] addressed by
// [SlotHash]. Each decode pass starts from an empty cache, so decoding the
// same bytes always yields the same rays. Decoding stops at the first ray
// whose bytes are not all present; the partial tail is dropped silently.
package wire
