// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Seeds of the default scramble permutation. The default table is a local
// deterministic choice; use ScrambleTableFrom for a table supplied by the
// server.
const (
	scrambleSeed1 = 0x5EED_CA3E_0000_0001
	scrambleSeed2 = 0x9E37_79B9_7F4A_7C15
)

// ErrBadTable is returned for scramble tables that are not a valid
// interleaved (column, row) listing for the camera size.
var ErrBadTable = errors.New("raster: invalid scramble table")

// ScrambleTable maps sequential ray cursor positions to pixel cells.
//
// Entries are interleaved (column, row) pairs, 2·width·height entries in
// total. A ray at cursor s lands on cell entries[s+1]·width + entries[s].
type ScrambleTable struct {
	width   int
	height  int
	entries []uint16
}

// NewScrambleTable returns the default table for a width×height grid:
// a fixed-seed permutation of every cell.
func NewScrambleTable(width, height int) *ScrambleTable {
	n := width * height
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	rng := rand.New(rand.NewPCG(scrambleSeed1, scrambleSeed2))
	rng.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

	entries := make([]uint16, 2*n)
	for k, cell := range perm {
		entries[2*k] = uint16(cell % width)
		entries[2*k+1] = uint16(cell / width)
	}
	return &ScrambleTable{width: width, height: height, entries: entries}
}

// ScrambleTableFrom wraps a server-provided table after validating it.
func ScrambleTableFrom(width, height int, entries []uint16) (*ScrambleTable, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrBadTable, width, height)
	}
	if len(entries) != 2*width*height {
		return nil, fmt.Errorf("%w: %d entries, want %d", ErrBadTable, len(entries), 2*width*height)
	}
	for i := 0; i < len(entries); i += 2 {
		if int(entries[i]) >= width || int(entries[i+1]) >= height {
			return nil, fmt.Errorf("%w: entry %d = (%d,%d) outside %dx%d",
				ErrBadTable, i/2, entries[i], entries[i+1], width, height)
		}
	}
	cp := make([]uint16, len(entries))
	copy(cp, entries)
	return &ScrambleTable{width: width, height: height, entries: cp}, nil
}

// Len returns the cursor period, 2·width·height.
func (t *ScrambleTable) Len() int {
	return len(t.entries)
}

// Size returns the grid dimensions the table was built for.
func (t *ScrambleTable) Size() (width, height int) {
	return t.width, t.height
}

// Cell advances the cursor by two reads and returns the grid cell index.
// The cursor is wrapped modulo Len before each read.
func (t *ScrambleTable) Cell(cursor int) (cell, next int) {
	n := len(t.entries)
	cursor %= n
	idx1 := int(t.entries[cursor])
	cursor = (cursor + 1) % n
	cell = int(t.entries[cursor])*t.width + idx1
	return cell, cursor + 1
}
