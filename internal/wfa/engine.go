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

// Package wfa implements the wavefront alignment computation behind the
// public wrapper. It is consumed through a narrow contract: New, Align,
// Score, Ops and Release. The ops buffer returned by Ops is owned by the
// engine and is valid only until the next Align or Release.
package wfa

import (
	"errors"
	"math"
	"sync"
)

// Edit operations emitted into the ops buffer, one byte per consumed base.
// OpIns consumes one query base, OpDel one reference base.
const (
	OpMatch    byte = '='
	OpMismatch byte = 'X'
	OpIns      byte = 'I'
	OpDel      byte = 'D'
)

// MemoryMode selects how much wavefront state the engine keeps.
type MemoryMode uint8

const (
	MemoryFull       MemoryMode = iota // everything kept, exact backtrace
	MemoryReduced                      // compact wavefront storage, exact
	MemoryAggressive                   // compact storage plus wavefront pruning
	MemoryBisect                       // bidirectional low-memory, no score
)

// HeuristicKind tags the pruning heuristic applied during alignment.
type HeuristicKind uint8

const (
	HeurNone HeuristicKind = iota
	HeurBandedStatic
	HeurBandedAdaptive
	HeurWFAdaptive
	HeurXDrop
	HeurZDrop
	HeurWFMash
)

// Heuristic carries the parameters of the chosen pruning strategy.
// Only the fields relevant to Kind are consulted.
type Heuristic struct {
	Kind        HeuristicKind
	MinK, MaxK  int // band bounds (banded kinds)
	ScoreSteps  int // scores between heuristic applications
	MinLength   int // minimum wavefront length before pruning (wf-adaptive, wfmash)
	MaxDistDiff int // distance-to-end slack before a diagonal is dropped
	Drop        int // antidiagonal lag tolerance (x-drop, z-drop)
}

// Settings is the configuration blob the engine is created from.
// Penalties follow the edit-distance convention: match costs nothing,
// everything else is a non-negative penalty.
type Settings struct {
	Mismatch uint32
	GapOpen1 uint32
	GapExt1  uint32

	TwoPiece bool // enable the second gap cost curve
	GapOpen2 uint32
	GapExt2  uint32

	ScoreOnly bool
	Memory    MemoryMode
	Heur      Heuristic

	MaxSteps  int    // score ceiling per pass, 0 = unlimited
	MaxMemory uint64 // wavefront memory budget in bytes, 0 = unlimited

	// On a heuristic stop, backtrace the furthest-reaching cell into a
	// prefix edit script instead of leaving the ops buffer empty.
	PartialTraceback bool
}

// Status is the per-call outcome of Align.
type Status int8

const (
	Completed Status = iota
	Partial          // wavefronts died before the end (heuristic pruning)
	MaxStepsExceeded
	OutOfMemory
)

func (st Status) String() string {
	switch st {
	case Completed:
		return "completed"
	case Partial:
		return "partial"
	case MaxStepsExceeded:
		return "max steps exceeded"
	case OutOfMemory:
		return "out of memory"
	}
	return "unknown"
}

var (
	ErrZeroMismatch = errors.New("wfa: mismatch penalty must be positive")
	ErrZeroGapExt   = errors.New("wfa: gap extension penalty must be positive")
)

// front base sizes per memory mode. The full mode presets generously to
// avoid regrowth on long sequences; the compact modes start small.
const (
	baseFull    = 2048
	baseCompact = 64
)

// Engine holds one aligner's wavefront state. It is not safe for
// concurrent use: Align reuses the component and ops buffers in place.
type Engine struct {
	set   Settings
	nComp int
	base  int

	// largest score lookback of the recurrence; bounds the window the
	// score-only and bisect passes must keep alive.
	maxDiff int

	comp [numComponents]*component

	ops        []byte
	score      uint32
	scoreKnown bool

	cells      int64 // allocated offset cells
	cellBudget int64 // 0 = unlimited

	band struct {
		lo, hi int
		active bool
	}

	// best antidiagonal seen so far and its diagonal, for the drop
	// heuristics; reset per forward pass.
	bestAnti int
	bestK    int

	// base-case sub-engine for the bisect strategy, allocated at
	// construction like the rest of the strategy-specific state.
	sub *Engine

	released bool
}

var poolEngine = &sync.Pool{New: func() interface{} {
	return &Engine{}
}}

// New creates an engine shaped by set. The memory mode decides which
// auxiliary state is allocated here and cannot change afterwards.
func New(set Settings) (*Engine, error) {
	if set.Mismatch == 0 {
		return nil, ErrZeroMismatch
	}
	if set.GapExt1 == 0 || (set.TwoPiece && set.GapExt2 == 0) {
		return nil, ErrZeroGapExt
	}

	e := poolEngine.Get().(*Engine)
	e.set = set
	e.released = false
	e.score = 0
	e.scoreKnown = false
	e.cells = 0
	e.ops = e.ops[:0]

	e.nComp = 3
	if set.TwoPiece {
		e.nComp = numComponents
	}
	e.base = baseCompact
	if set.Memory == MemoryFull {
		e.base = baseFull
	}

	e.maxDiff = int(set.Mismatch)
	if d := int(set.GapOpen1 + set.GapExt1); d > e.maxDiff {
		e.maxDiff = d
	}
	if set.TwoPiece {
		if d := int(set.GapOpen2 + set.GapExt2); d > e.maxDiff {
			e.maxDiff = d
		}
	}

	e.cellBudget = 0
	if set.MaxMemory > 0 {
		e.cellBudget = int64(set.MaxMemory / 4)
	}

	for i := 0; i < e.nComp; i++ {
		e.comp[i] = newComponent()
	}

	if set.Memory == MemoryBisect {
		sub := set
		sub.Memory = MemoryFull
		sub.ScoreOnly = false
		var err error
		e.sub, err = New(sub)
		if err != nil {
			e.Release()
			return nil, err
		}
	} else {
		e.sub = nil
	}

	return e, nil
}

// Release returns all engine-owned memory to the pools. The engine must
// not be used afterwards. Safe to call more than once.
func (e *Engine) Release() {
	if e.released {
		return
	}
	e.released = true
	for i := 0; i < e.nComp; i++ {
		recycleComponent(e.comp[i])
		e.comp[i] = nil
	}
	if e.sub != nil {
		e.sub.Release()
		e.sub = nil
	}
	e.ops = e.ops[:0]
	poolEngine.Put(e)
}

// Score returns the score of the last completed alignment and whether it
// is known. The bisect strategy never reports a score.
func (e *Engine) Score() (int32, bool) {
	return int32(e.score), e.scoreKnown
}

// Ops returns the edit operations of the last alignment, oldest first.
// The slice aliases engine-owned memory: it is overwritten by the next
// Align and released by Release.
func (e *Engine) Ops() []byte {
	return e.ops
}

func (e *Engine) reset() {
	e.resetComponents()
	e.ops = e.ops[:0]
	e.score = 0
	e.scoreKnown = false
}

func (e *Engine) resetComponents() {
	for i := 0; i < e.nComp; i++ {
		e.comp[i].clear()
	}
	e.cells = 0
}

// Align computes the alignment of query q against reference t. It does
// not retain either slice past the call.
func (e *Engine) Align(q, t []byte) Status {
	e.reset()

	if len(q) == 0 || len(t) == 0 {
		return e.alignTrivial(len(q), len(t))
	}
	if e.set.Memory == MemoryBisect {
		return e.bisect(q, t)
	}

	st, s := e.forward(q, t, e.set.ScoreOnly, -1)
	switch st {
	case Completed:
		e.score = uint32(s)
		e.scoreKnown = true
		if !e.set.ScoreOnly {
			e.backtrace(s, len(q), len(t))
		}
	case Partial:
		if e.set.PartialTraceback && !e.set.ScoreOnly {
			e.partialTrace()
		}
	}
	return st
}

// alignTrivial handles alignments where one or both sequences are empty.
// Empty against empty is a legal zero-length alignment.
func (e *Engine) alignTrivial(n, m int) Status {
	switch {
	case n == 0 && m == 0:
		e.score = 0
	case n == 0:
		if !e.set.ScoreOnly {
			e.ops = appendRun(e.ops, OpDel, m)
		}
		e.score = e.gapCost(m)
	default:
		if !e.set.ScoreOnly {
			e.ops = appendRun(e.ops, OpIns, n)
		}
		e.score = e.gapCost(n)
	}
	e.scoreKnown = e.set.Memory != MemoryBisect
	return Completed
}

// gapCost is the cheapest affine cost of a single gap of length l.
func (e *Engine) gapCost(l int) uint32 {
	c := e.set.GapOpen1 + uint32(l)*e.set.GapExt1
	if e.set.TwoPiece {
		if c2 := e.set.GapOpen2 + uint32(l)*e.set.GapExt2; c2 < c {
			c = c2
		}
	}
	return c
}

// forward runs the wavefront recurrence until the final cell is reached
// or the run is cut short. windowed recycles wavefronts outside the
// recurrence window (score-only and bisect passes). mid >= 0 enables
// midpoint tagging against reference column mid.
func (e *Engine) forward(q, t []byte, windowed bool, mid int) (Status, int) {
	n, m := len(q), len(t)
	ak := n - m // final diagonal: v == n there implies h == m
	aoff := uint32(n)
	tagged := mid >= 0

	f, added := e.comp[cM].ensure(0, e.base, tagged)
	e.cells += int64(added)
	e.cells += int64(f.set(0, 0, traceStart))

	e.initBand()
	e.bestAnti, e.bestK = -1, 0

	s := 0
	dead := 0
	for {
		if fM := e.comp[cM].front(s); fM != nil && !fM.empty() {
			dead = 0
			e.extend(fM, q, t, mid)
			if off, ok := fM.offset(ak); ok && off >= aoff {
				return Completed, s
			}
			e.applyHeuristic(fM, s, n, m)
		} else {
			dead++
			if dead > e.maxDiff {
				return Partial, s
			}
		}

		if e.set.MaxSteps > 0 && s >= e.set.MaxSteps {
			return MaxStepsExceeded, s
		}
		s++

		if !e.next(q, t, s, tagged, mid) {
			return OutOfMemory, s
		}

		if windowed && s > e.maxDiff {
			keep := s - e.maxDiff
			for i := 0; i < e.nComp; i++ {
				e.comp[i].recycleBefore(keep)
			}
		}
	}
}

// extend advances every diagonal of an M wavefront along its run of
// matching bases (the WF_EXTEND step).
func (e *Engine) extend(f *front, q, t []byte, mid int) {
	n, m := len(q), len(t)
	for k := f.Lo; k <= f.Hi; k++ {
		off, ok := f.offset(k)
		if !ok {
			continue
		}
		v := int(off)
		h := v - k
		if h < 0 || h > m || v > n {
			continue
		}
		v0 := v
		for v < n && h < m && q[v] == t[h] {
			v++
			h++
		}
		if v > v0 {
			f.bump(k, uint32(v-v0))
		}
		if mid >= 0 && h >= mid && f.tag(k) == noTag {
			// the path crossed the bisection column during this run
			f.setTag(k, int32(mid+k))
		}
	}
}

// next computes the wavefronts of score s from their sources
// (the WF_NEXT step). It reports false when the memory budget is hit.
func (e *Engine) next(q, t []byte, s int, tagged bool, mid int) bool {
	n, m := len(q), len(t)
	x := int(e.set.Mismatch)
	oe1 := int(e.set.GapOpen1 + e.set.GapExt1)
	ex1 := int(e.set.GapExt1)
	two := e.set.TwoPiece
	var oe2, ex2 int
	if two {
		oe2 = int(e.set.GapOpen2 + e.set.GapExt2)
		ex2 = int(e.set.GapExt2)
	}

	lo, hi := math.MaxInt, math.MinInt
	span := func(c, d int) {
		if l, h, ok := e.comp[c].kRange(s, d); ok {
			if l < lo {
				lo = l
			}
			if h > hi {
				hi = h
			}
		}
	}
	span(cM, x)
	span(cM, oe1)
	span(cI1, ex1)
	span(cD1, ex1)
	if two {
		span(cM, oe2)
		span(cI2, ex2)
		span(cD2, ex2)
	}
	if lo > hi {
		return true // no sources for this score
	}
	lo--
	hi++
	if e.band.active {
		if lo < e.band.lo {
			lo = e.band.lo
		}
		if hi > e.band.hi {
			hi = e.band.hi
		}
		if lo > hi {
			return true
		}
	}

	mX := e.comp[cM].frontAt(s, x)
	mO1 := e.comp[cM].frontAt(s, oe1)
	i1E := e.comp[cI1].frontAt(s, ex1)
	d1E := e.comp[cD1].frontAt(s, ex1)
	var mO2, i2E, d2E *front
	if two {
		mO2 = e.comp[cM].frontAt(s, oe2)
		i2E = e.comp[cI2].frontAt(s, ex2)
		d2E = e.comp[cD2].frontAt(s, ex2)
	}

	for k := lo; k <= hi; k++ {
		vI1, tagI1, haveI1 := e.nextIns(cI1, mO1, i1E, s, k, n, tagged)
		vD1, tagD1, haveD1 := e.nextDel(cD1, mO1, d1E, s, k, m, mid, tagged)
		var vI2, vD2 uint32
		var tagI2, tagD2 int32
		var haveI2, haveD2 bool
		if two {
			vI2, tagI2, haveI2 = e.nextIns(cI2, mO2, i2E, s, k, n, tagged)
			vD2, tagD2, haveD2 = e.nextDel(cD2, mO2, d2E, s, k, m, mid, tagged)
		}

		// M takes the best of a mismatch step and the gap closures.
		var bestV uint32
		var bestTr uint32
		bestTag := noTag
		okM := false
		if mX != nil {
			if p, ok := mX.offset(k); ok {
				v := p + 1
				h := int(v) - k
				if int(v) <= n && h <= m {
					bestV, bestTr, okM = v, traceMismatch, true
					if tagged {
						bestTag = mX.tag(k)
						if bestTag == noTag && h >= mid {
							bestTag = int32(v)
						}
					}
				}
			}
		}
		if haveI1 && (!okM || vI1 > bestV) {
			bestV, bestTr, bestTag, okM = vI1, traceFromI1, tagI1, true
		}
		if haveD1 && (!okM || vD1 > bestV) {
			bestV, bestTr, bestTag, okM = vD1, traceFromD1, tagD1, true
		}
		if haveI2 && (!okM || vI2 > bestV) {
			bestV, bestTr, bestTag, okM = vI2, traceFromI2, tagI2, true
		}
		if haveD2 && (!okM || vD2 > bestV) {
			bestV, bestTr, bestTag, okM = vD2, traceFromD2, tagD2, true
		}
		if okM {
			if !e.setCell(cM, s, k, bestV, bestTr, bestTag, tagged) {
				return false
			}
		}
	}

	return e.cellBudget == 0 || e.cells <= e.cellBudget
}

// nextIns computes one insertion-component cell: open from M or extend
// the gap, both from diagonal k-1 (an insertion consumes a query base).
func (e *Engine) nextIns(c int, mOpen, iExt *front, s, k, n int, tagged bool) (uint32, int32, bool) {
	var best uint32
	var tr uint32
	tag := noTag
	ok := false
	if mOpen != nil {
		if p, okk := mOpen.offset(k - 1); okk {
			best, tr, ok = p, traceOpen, true
			if tagged {
				tag = mOpen.tag(k - 1)
			}
		}
	}
	if iExt != nil {
		if p, okk := iExt.offset(k - 1); okk && (!ok || p > best) {
			best, tr, ok = p, traceExt, true
			if tagged {
				tag = iExt.tag(k - 1)
			}
		}
	}
	if !ok {
		return 0, noTag, false
	}
	v := best + 1
	if int(v) > n {
		return 0, noTag, false
	}
	// an insertion keeps h, so it can never cross the bisection column
	if !e.setCell(c, s, k, v, tr, tag, tagged) {
		return 0, noTag, false
	}
	return v, tag, true
}

// nextDel computes one deletion-component cell: open from M or extend
// the gap, both from diagonal k+1 (a deletion consumes a reference base).
func (e *Engine) nextDel(c int, mOpen, dExt *front, s, k, m, mid int, tagged bool) (uint32, int32, bool) {
	var best uint32
	var tr uint32
	tag := noTag
	ok := false
	if mOpen != nil {
		if p, okk := mOpen.offset(k + 1); okk {
			best, tr, ok = p, traceOpen, true
			if tagged {
				tag = mOpen.tag(k + 1)
			}
		}
	}
	if dExt != nil {
		if p, okk := dExt.offset(k + 1); okk && (!ok || p > best) {
			best, tr, ok = p, traceExt, true
			if tagged {
				tag = dExt.tag(k + 1)
			}
		}
	}
	if !ok {
		return 0, noTag, false
	}
	v := best // a deletion leaves the query offset unchanged
	h := int(v) - k
	if h > m {
		return 0, noTag, false
	}
	if tagged && tag == noTag && h >= mid {
		tag = int32(v)
	}
	if !e.setCell(c, s, k, v, tr, tag, tagged) {
		return 0, noTag, false
	}
	return v, tag, true
}

// setCell stores one cell with memory accounting. It reports false when
// the budget is exceeded.
func (e *Engine) setCell(c, s, k int, v, tr uint32, tag int32, tagged bool) bool {
	f, added := e.comp[c].ensure(s, e.base, tagged)
	e.cells += int64(added)
	e.cells += int64(f.set(k, v, tr))
	if tagged {
		f.setTag(k, tag)
	}
	return e.cellBudget == 0 || e.cells <= e.cellBudget
}

// appendRun appends n copies of op.
func appendRun(ops []byte, op byte, n int) []byte {
	for ; n > 0; n-- {
		ops = append(ops, op)
	}
	return ops
}
