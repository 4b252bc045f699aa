// Copyright © 2025 The seqalign Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package wfa

import (
	"math"
	"sync"
)

// Each stored offset packs the transition that produced the cell into its
// low bits, so the traceback never has to re-derive predecessors.
const traceBits = 3
const traceMask = 1<<traceBits - 1

// Transitions stored in M cells.
const (
	traceStart uint32 = iota + 1 // M[0][0] only
	traceMismatch
	traceFromI1
	traceFromD1
	traceFromI2
	traceFromD2
)

// Transitions stored in I and D cells.
const (
	traceOpen uint32 = iota + 1
	traceExt
)

// MaxOffset is the largest sequence offset a packed cell can hold.
const MaxOffset = 1<<(32-traceBits) - 1

// noTag marks a cell whose path has not yet crossed the bisection column.
const noTag int32 = -1

// front holds one wavefront: the furthest-reaching query offsets for every
// live diagonal of a single score. Since k may be negative and wavefronts are
// roughly symmetric around zero, offsets are interleaved:
//
//	index: 0,  1,  2,  3,  4
//	k:     0, -1,  1, -2,  2
//
// A zero cell means the diagonal has no record (every set cell is non-zero
// because trace values start at 1).
type front struct {
	Lo, Hi int      // lowest and highest live k
	cells  []uint32 // offset<<traceBits | trace, k-interleaved

	// query offsets where each diagonal's path first crossed the bisection
	// column; allocated only by the bisect strategy.
	tags []int32
}

var poolFront = &sync.Pool{New: func() interface{} {
	return &front{}
}}

// newFront returns an empty wavefront sized for base diagonals.
// tagged fronts carry the parallel tag slice for midpoint tracking.
func newFront(base int, tagged bool) *front {
	f := poolFront.Get().(*front)
	f.Lo = math.MaxInt
	f.Hi = math.MinInt
	if cap(f.cells) < base {
		f.cells = make([]uint32, base)
	} else {
		f.cells = f.cells[:base]
		clear(f.cells)
	}
	if tagged {
		if cap(f.tags) < base {
			f.tags = make([]int32, base)
		} else {
			f.tags = f.tags[:base]
		}
		for i := range f.tags {
			f.tags[i] = noTag
		}
	} else {
		f.tags = f.tags[:0]
	}
	return f
}

func recycleFront(f *front) {
	if f != nil {
		poolFront.Put(f)
	}
}

// k2i converts a diagonal to its interleaved slice index.
func k2i(k int) int {
	if k >= 0 {
		return k << 1
	}
	return (-k)<<1 - 1
}

// grow makes room for index i and reports how many cells were added,
// for the engine's memory accounting.
func (f *front) grow(i int) int {
	need := i + 1 - len(f.cells)
	if need <= 0 {
		return 0
	}
	// grow in chunks to keep appends rare
	added := need + len(f.cells)/2
	f.cells = append(f.cells, make([]uint32, added)...)
	if f.tags != nil && len(f.tags) > 0 {
		f.tags = append(f.tags, make([]int32, added)...)
		for j := len(f.tags) - added; j < len(f.tags); j++ {
			f.tags[j] = noTag
		}
	}
	return added
}

// set stores an offset with its transition and returns the number of
// newly allocated cells.
func (f *front) set(k int, offset uint32, trace uint32) int {
	i := k2i(k)
	added := f.grow(i)
	f.cells[i] = offset<<traceBits | trace
	if k < f.Lo {
		f.Lo = k
	}
	if k > f.Hi {
		f.Hi = k
	}
	return added
}

// bump advances the offset of a live diagonal by delta, keeping its trace.
func (f *front) bump(k int, delta uint32) {
	f.cells[k2i(k)] += delta << traceBits
}

// get returns the offset and transition of a diagonal, if it is live.
func (f *front) get(k int) (uint32, uint32, bool) {
	if k < f.Lo || k > f.Hi {
		return 0, 0, false
	}
	c := f.cells[k2i(k)]
	return c >> traceBits, c & traceMask, c != 0
}

// offset returns just the offset of a live diagonal.
func (f *front) offset(k int) (uint32, bool) {
	if k < f.Lo || k > f.Hi {
		return 0, false
	}
	c := f.cells[k2i(k)]
	return c >> traceBits, c != 0
}

// drop kills a single diagonal, tightening the bounds when it was at an end.
func (f *front) drop(k int) {
	if k < f.Lo || k > f.Hi {
		return
	}
	f.cells[k2i(k)] = 0
	if k == f.Hi {
		f.Hi--
	} else if k == f.Lo {
		f.Lo++
	}
}

// tag returns the bisection tag of a diagonal.
func (f *front) tag(k int) int32 {
	return f.tags[k2i(k)]
}

// setTag records the bisection tag of a diagonal.
func (f *front) setTag(k int, v int32) {
	f.tags[k2i(k)] = v
}

func (f *front) empty() bool {
	return f.Lo > f.Hi
}
