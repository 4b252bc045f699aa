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

// initBand primes the diagonal band for the banded heuristics.
func (e *Engine) initBand() {
	h := e.set.Heur
	switch h.Kind {
	case HeurBandedStatic, HeurBandedAdaptive:
		e.band.lo, e.band.hi, e.band.active = h.MinK, h.MaxK, true
	default:
		e.band.active = false
	}
}

// applyHeuristic runs the configured pruning step on the M wavefront of
// score s, after extension. The aggressive memory mode piggybacks on the
// wf-adaptive reduction with built-in constants.
func (e *Engine) applyHeuristic(f *front, s, n, m int) {
	h := e.set.Heur
	switch h.Kind {
	case HeurBandedAdaptive:
		if h.ScoreSteps > 0 && s > 0 && s%h.ScoreSteps == 0 {
			e.recenterBand(f, h.MaxK-h.MinK)
		}
	case HeurWFAdaptive:
		if h.ScoreSteps > 0 && s > 0 && s%h.ScoreSteps == 0 {
			reduce(f, n, m, h.MinLength, h.MaxDistDiff)
		}
	case HeurWFMash:
		if h.ScoreSteps > 0 && s > 0 && s%h.ScoreSteps == 0 {
			trimEnds(f, n, m, h.MinLength, h.MaxDistDiff)
		}
	case HeurXDrop:
		if h.ScoreSteps > 0 && s > 0 && s%h.ScoreSteps == 0 {
			e.dropBehind(f, h.Drop, false)
		}
	case HeurZDrop:
		if h.ScoreSteps > 0 && s > 0 && s%h.ScoreSteps == 0 {
			e.dropBehind(f, h.Drop, true)
		}
	case HeurNone:
		if e.set.Memory == MemoryAggressive {
			reduce(f, n, m, aggressiveMinLength, aggressiveMaxDistDiff)
		}
	}
}

// Built-in reduction constants for the aggressive memory mode, taken
// from the adaptive-WFA defaults.
const (
	aggressiveMinLength   = 10
	aggressiveMaxDistDiff = 50
)

// recenterBand moves the band of the adaptive banded heuristic so it is
// centered on the best diagonal of f, keeping its width.
func (e *Engine) recenterBand(f *front, width int) {
	bestK := 0
	bestMetric := -1
	for k := f.Lo; k <= f.Hi; k++ {
		off, ok := f.offset(k)
		if !ok {
			continue
		}
		if metric := 2*int(off) - k; metric > bestMetric {
			bestMetric = metric
			bestK = k
		}
	}
	if bestMetric < 0 {
		return
	}
	half := width / 2
	e.band.lo = bestK - half
	e.band.hi = bestK + half
}

// reduce drops the diagonals of f whose estimated remaining distance to
// the end exceeds the best estimate by more than maxDistDiff. Wavefronts
// shorter than minLength are left alone.
func reduce(f *front, n, m, minLength, maxDistDiff int) {
	if f.Hi-f.Lo+1 < minLength {
		return
	}

	dmin := n + m
	for k := f.Lo; k <= f.Hi; k++ {
		off, ok := f.offset(k)
		if !ok {
			continue
		}
		if d := distToEnd(int(off), k, n, m); d < dmin {
			dmin = d
		}
	}

	for k := f.Lo; k <= f.Hi; k++ {
		off, ok := f.offset(k)
		if !ok {
			continue
		}
		if distToEnd(int(off), k, n, m)-dmin > maxDistDiff {
			f.drop(k)
		}
	}
}

// dropBehind prunes the diagonals whose antidiagonal progress (v+h)
// lags the best seen over the whole pass by more than drop. The
// gap-aware variant discounts the lag by the diagonal distance to the
// best cell, so a path is not punished for the gap separating it from
// the leader.
func (e *Engine) dropBehind(f *front, drop int, gapAware bool) {
	for k := f.Lo; k <= f.Hi; k++ {
		off, ok := f.offset(k)
		if !ok {
			continue
		}
		if a := 2*int(off) - k; a > e.bestAnti {
			e.bestAnti = a
			e.bestK = k
		}
	}
	for k := f.Lo; k <= f.Hi; k++ {
		off, ok := f.offset(k)
		if !ok {
			continue
		}
		lag := e.bestAnti - (2*int(off) - k)
		if gapAware {
			d := k - e.bestK
			if d < 0 {
				d = -d
			}
			lag -= d
		}
		if lag > drop {
			f.drop(k)
		}
	}
}

// trimEnds is the contiguous variant of reduce: only the outermost
// diagonals are dropped, so the wavefront never acquires holes. This is
// the reduction long-read mappers apply.
func trimEnds(f *front, n, m, minLength, maxDistDiff int) {
	if f.Hi-f.Lo+1 < minLength {
		return
	}

	dmin := n + m
	for k := f.Lo; k <= f.Hi; k++ {
		off, ok := f.offset(k)
		if !ok {
			continue
		}
		if d := distToEnd(int(off), k, n, m); d < dmin {
			dmin = d
		}
	}

	for f.Lo <= f.Hi {
		off, ok := f.offset(f.Lo)
		if ok && distToEnd(int(off), f.Lo, n, m)-dmin <= maxDistDiff {
			break
		}
		f.drop(f.Lo)
	}
	for f.Hi >= f.Lo {
		off, ok := f.offset(f.Hi)
		if ok && distToEnd(int(off), f.Hi, n, m)-dmin <= maxDistDiff {
			break
		}
		f.drop(f.Hi)
	}
}

// distToEnd estimates the remaining alignment distance of a cell.
func distToEnd(v, k, n, m int) int {
	h := v - k
	dv, dh := n-v, m-h
	if dv > dh {
		return dv
	}
	return dh
}
