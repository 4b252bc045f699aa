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

package wavefront

import (
	"errors"
	"fmt"
	"math"

	"github.com/seqalign/wavefront/internal/wfa"
)

// AlignStatus is the per-call outcome of Align. The zero value,
// StatusUnaligned, is the state of a fresh Aligner before its first
// alignment.
type AlignStatus uint8

const (
	StatusUnaligned AlignStatus = iota
	StatusCompleted
	StatusPartialHeuristicStop
	StatusMaxStepsExceeded
	StatusOutOfMemory
	StatusInputTooLarge
	StatusInvalidInput
)

func (s AlignStatus) String() string {
	switch s {
	case StatusUnaligned:
		return "unaligned"
	case StatusCompleted:
		return "completed"
	case StatusPartialHeuristicStop:
		return "partial heuristic stop"
	case StatusMaxStepsExceeded:
		return "max steps exceeded"
	case StatusOutOfMemory:
		return "out of memory"
	case StatusInputTooLarge:
		return "input too large"
	case StatusInvalidInput:
		return "invalid input"
	}
	return "unknown"
}

// Ok reports whether the alignment produced a usable result. Only
// StatusCompleted guarantees the full-coverage invariant of the edit
// script; StatusPartialHeuristicStop may carry a valid prefix.
func (s AlignStatus) Ok() bool {
	return s == StatusCompleted || s == StatusPartialHeuristicStop
}

// MaxSeqLen is the longest sequence the engine's packed offsets can
// address. Longer inputs fail fast with StatusInputTooLarge instead of
// being handed to the engine. Align additionally rejects any input pair
// whose worst-case score would not fit the signed 32-bit score domain,
// so a reported score is never a wrapped value.
const MaxSeqLen = 1 << 28

// Score is the result of a score query: either a known 32-bit score or
// unavailable. Unavailable is a distinct state, not a sentinel value;
// the bisect memory strategy and failed or score-free alignments have
// no score to report.
type Score struct {
	v     int32
	known bool
}

// Value returns the score and whether one is available.
func (s Score) Value() (int32, bool) { return s.v, s.known }

func (s Score) String() string {
	if !s.known {
		return "unavailable"
	}
	return fmt.Sprintf("%d", s.v)
}

var (
	// ErrNotAligned is returned by EditScript before any alignment.
	ErrNotAligned = errors.New("wavefront: no alignment performed yet")
	// ErrScoreOnlyScope is returned by EditScript under the score-only scope.
	ErrScoreOnlyScope = errors.New("wavefront: configuration computes scores only, no edit script")
	// ErrNoEditScript is returned when the last alignment produced no script.
	ErrNoEditScript = errors.New("wavefront: last alignment produced no edit script")
	// ErrAlignerClosed is returned when the Aligner has been closed.
	ErrAlignerClosed = errors.New("wavefront: aligner is closed")
)

// Aligner owns one alignment engine shaped by an immutable Config. It
// may be reused for any number of query/reference pairs, but not
// concurrently: Align rewrites shared internal buffers in place. Scale
// by constructing one Aligner per goroutine from a shared Config.
type Aligner struct {
	cfg *Config
	eng *wfa.Engine

	// bumped by every Align and by Close; stale EditScript views are
	// detected by comparing against it.
	gen uint64

	status AlignStatus
	closed bool
}

// NewAligner acquires engine resources shaped by cfg. This is the only
// point where the memory strategy is consulted; it cannot be changed on
// the returned Aligner.
func NewAligner(cfg *Config) (*Aligner, error) {
	if cfg == nil {
		return nil, &ConfigError{errs: []error{ErrNoPenalties}}
	}

	eng, err := wfa.New(engineSettings(cfg))
	if err != nil {
		return nil, &ConfigError{errs: []error{err}}
	}
	return &Aligner{cfg: cfg, eng: eng}, nil
}

// engineSettings maps the public configuration onto the engine's knobs.
func engineSettings(cfg *Config) wfa.Settings {
	p := cfg.pen
	set := wfa.Settings{
		Mismatch:         uint32(p.Mismatch),
		GapOpen1:         uint32(p.GapOpen),
		GapExt1:          uint32(p.GapExt),
		TwoPiece:         p.twoPiece,
		ScoreOnly:        cfg.scope == ScoreOnly,
		MaxSteps:         cfg.maxSteps,
		MaxMemory:        cfg.maxMemory,
		PartialTraceback: cfg.partial,
	}
	if p.twoPiece {
		set.GapOpen2 = uint32(p.GapOpen2)
		set.GapExt2 = uint32(p.GapExt2)
	}

	switch cfg.mem {
	case ReducedMemory:
		set.Memory = wfa.MemoryReduced
	case AggressiveMemory:
		set.Memory = wfa.MemoryAggressive
	case BisectMemory:
		set.Memory = wfa.MemoryBisect
	default:
		set.Memory = wfa.MemoryFull
	}

	h := cfg.heur
	switch h.kind {
	case heurBandedStatic:
		set.Heur = wfa.Heuristic{Kind: wfa.HeurBandedStatic, MinK: h.minK, MaxK: h.maxK}
	case heurBandedAdaptive:
		set.Heur = wfa.Heuristic{Kind: wfa.HeurBandedAdaptive, MinK: h.minK, MaxK: h.maxK, ScoreSteps: h.scoreSteps}
	case heurWFAdaptive:
		set.Heur = wfa.Heuristic{Kind: wfa.HeurWFAdaptive, MinLength: h.minLen, MaxDistDiff: h.maxDist, ScoreSteps: h.scoreSteps}
	case heurXDrop:
		set.Heur = wfa.Heuristic{Kind: wfa.HeurXDrop, Drop: h.drop, ScoreSteps: h.scoreSteps}
	case heurZDrop:
		set.Heur = wfa.Heuristic{Kind: wfa.HeurZDrop, Drop: h.drop, ScoreSteps: h.scoreSteps}
	case heurWFMash:
		set.Heur = wfa.Heuristic{Kind: wfa.HeurWFMash, MinLength: h.minLen, MaxDistDiff: h.maxDist, ScoreSteps: h.scoreSteps}
	}
	return set
}

// Config returns the immutable configuration the Aligner was built from.
func (a *Aligner) Config() *Config { return a.cfg }

// Align aligns query against reference. The first argument is always
// the query, the second always the reference: swapping them yields a
// structurally valid but semantically transposed edit script, which the
// engine cannot detect.
//
// Align overwrites the internal score, status and edit-script buffers,
// invalidating every EditScript view obtained earlier. Empty inputs are
// legal; empty against empty is a zero-length alignment. Inputs longer
// than MaxSeqLen fail fast with StatusInputTooLarge.
func (a *Aligner) Align(query, reference []byte) AlignStatus {
	a.gen++

	switch {
	case a.closed:
		a.status = StatusInvalidInput
	case len(query) > MaxSeqLen || len(reference) > MaxSeqLen:
		a.status = StatusInputTooLarge
	case scoreOverflows(a.cfg.pen, len(query), len(reference)):
		a.status = StatusInputTooLarge
	default:
		a.status = wrapStatus(a.eng.Align(query, reference))
	}
	return a.status
}

// scoreOverflows reports whether aligning inputs of these lengths could
// push the score past the signed 32-bit domain. The all-gaps alignment
// bounds the optimal score from above, so rejecting on that bound keeps
// every reported score exact at the cost of being conservative.
func scoreOverflows(p Penalties, n, m int) bool {
	bases := uint64(n) + uint64(m)
	worst := 2*uint64(p.GapOpen) + bases*uint64(p.GapExt)
	if p.twoPiece {
		if w2 := 2*uint64(p.GapOpen2) + bases*uint64(p.GapExt2); w2 < worst {
			worst = w2
		}
	}
	return worst > math.MaxInt32
}

func wrapStatus(st wfa.Status) AlignStatus {
	switch st {
	case wfa.Completed:
		return StatusCompleted
	case wfa.Partial:
		return StatusPartialHeuristicStop
	case wfa.MaxStepsExceeded:
		return StatusMaxStepsExceeded
	case wfa.OutOfMemory:
		return StatusOutOfMemory
	}
	return StatusInvalidInput
}

// Status returns the outcome of the last Align call, or StatusUnaligned
// before the first one.
func (a *Aligner) Status() AlignStatus { return a.status }

// Score returns the score of the last alignment. It is unavailable
// before the first alignment, after a failed one, and always under the
// bisect memory strategy, whose meet-in-the-middle passes do not retain
// a final score.
func (a *Aligner) Score() Score {
	if a.closed || a.status != StatusCompleted {
		return Score{}
	}
	v, known := a.eng.Score()
	if !known {
		return Score{}
	}
	return Score{v: v, known: true}
}

// EditScript returns a read-only view over the last alignment's edit
// script. The view borrows the engine's internal buffer: it is valid
// only until the next Align call or Close, and any later access panics
// rather than reading overwritten data. Copy it out with AppendOps to
// keep it longer.
func (a *Aligner) EditScript() (EditScript, error) {
	switch {
	case a.closed:
		return EditScript{}, ErrAlignerClosed
	case a.status == StatusUnaligned:
		return EditScript{}, ErrNotAligned
	case a.cfg.scope == ScoreOnly:
		return EditScript{}, ErrScoreOnlyScope
	case a.status == StatusCompleted:
		// full script available
	case a.status == StatusPartialHeuristicStop && a.cfg.partial:
		// valid prefix script, see Config.PartialTraceback
	default:
		return EditScript{}, fmt.Errorf("%w: status %s", ErrNoEditScript, a.status)
	}
	return EditScript{a: a, gen: a.gen}, nil
}

// Close releases the engine's resources exactly once and invalidates
// all outstanding EditScript views. The Aligner is unusable afterwards;
// further Align calls report StatusInvalidInput.
func (a *Aligner) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.gen++
	a.status = StatusUnaligned
	a.eng.Release()
	a.eng = nil
}
