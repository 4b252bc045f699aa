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
	"strings"
)

// MemoryMode selects the engine's memory strategy. It is consulted once,
// at Aligner construction: the engine allocates strategy-specific state
// there (the bisect strategy builds its meeting-point sub-engine), so
// there is deliberately no way to change it on a live Aligner.
type MemoryMode uint8

const (
	FullMemory       MemoryMode = iota // complete DP state, exact backtrace
	ReducedMemory                      // compact wavefront storage, exact
	AggressiveMemory                   // compact storage plus pruning
	BisectMemory                       // bidirectional low-memory; no score
)

func (m MemoryMode) String() string {
	switch m {
	case FullMemory:
		return "full"
	case ReducedMemory:
		return "reduced"
	case AggressiveMemory:
		return "aggressive"
	case BisectMemory:
		return "bisect"
	}
	return "unknown"
}

// Scope selects whether alignments produce an edit script or a score only.
type Scope uint8

const (
	FullAlignment Scope = iota
	ScoreOnly
)

func (s Scope) String() string {
	if s == ScoreOnly {
		return "score-only"
	}
	return "full-alignment"
}

type heuristicKind uint8

const (
	heurNone heuristicKind = iota
	heurBandedStatic
	heurBandedAdaptive
	heurWFAdaptive
	heurXDrop
	heurZDrop
	heurWFMash
)

// Heuristic is a pruning strategy traded against optimality. The zero
// value is exact alignment. Heuristics may stop an alignment before the
// provable optimum; that is always observable through the status, never
// silent.
type Heuristic struct {
	kind       heuristicKind
	minK, maxK int
	scoreSteps int
	minLen     int
	maxDist    int
	drop       int
}

// HeuristicNone is exact alignment (the default).
func HeuristicNone() Heuristic { return Heuristic{} }

// BandedStatic restricts the wavefronts to diagonals [minK, maxK].
func BandedStatic(minK, maxK int) Heuristic {
	return Heuristic{kind: heurBandedStatic, minK: minK, maxK: maxK}
}

// BandedAdaptive keeps a band of width maxK-minK that is re-centered on
// the best diagonal every scoreSteps scores.
func BandedAdaptive(minK, maxK, scoreSteps int) Heuristic {
	return Heuristic{kind: heurBandedAdaptive, minK: minK, maxK: maxK, scoreSteps: scoreSteps}
}

// WFAdaptive drops diagonals whose estimated remaining distance trails
// the best by more than maxDistThreshold, every scoreSteps scores, once
// a wavefront is at least minWavefrontLength diagonals wide.
func WFAdaptive(minWavefrontLength, maxDistThreshold, scoreSteps int) Heuristic {
	return Heuristic{
		kind:       heurWFAdaptive,
		minLen:     minWavefrontLength,
		maxDist:    maxDistThreshold,
		scoreSteps: scoreSteps,
	}
}

// XDrop drops diagonals whose antidiagonal progress lags the best seen
// so far by more than xdrop, every scoreSteps scores.
func XDrop(xdrop, scoreSteps int) Heuristic {
	return Heuristic{kind: heurXDrop, drop: xdrop, scoreSteps: scoreSteps}
}

// ZDrop is the gap-aware variant of XDrop: a diagonal's lag is
// discounted by its distance to the best diagonal before being compared
// against zdrop, so a path is not punished for the gap separating it
// from the leader.
func ZDrop(zdrop, scoreSteps int) Heuristic {
	return Heuristic{kind: heurZDrop, drop: zdrop, scoreSteps: scoreSteps}
}

// WFMash is the adaptive reduction as applied by long-read mappers: the
// same parameters as WFAdaptive, but only the outermost diagonals are
// trimmed, keeping the wavefront contiguous.
func WFMash(minWavefrontLength, maxDistThreshold, scoreSteps int) Heuristic {
	return Heuristic{
		kind:       heurWFMash,
		minLen:     minWavefrontLength,
		maxDist:    maxDistThreshold,
		scoreSteps: scoreSteps,
	}
}

// Exact reports whether the heuristic leaves the alignment exact.
func (h Heuristic) Exact() bool { return h.kind == heurNone }

// Config is an immutable, fully validated aligner configuration. Build
// one with a Builder. A Config is safe to share: any number of Aligners,
// on any number of goroutines, may be constructed from the same Config.
type Config struct {
	pen       Penalties
	metric    DistanceMetric
	mem       MemoryMode
	scope     Scope
	heur      Heuristic
	maxSteps  int
	maxMemory uint64
	partial   bool
}

func (c *Config) Penalties() Penalties   { return c.pen }
func (c *Config) Metric() DistanceMetric { return c.metric }
func (c *Config) MemoryMode() MemoryMode { return c.mem }
func (c *Config) Scope() Scope           { return c.scope }
func (c *Config) Heuristic() Heuristic   { return c.heur }

// MaxSteps is the per-alignment score ceiling; zero means unlimited.
func (c *Config) MaxSteps() int { return c.maxSteps }

// MaxMemory is the wavefront memory budget in bytes; zero means unlimited.
func (c *Config) MaxMemory() uint64 { return c.maxMemory }

// PartialTraceback reports whether a heuristic stop exposes a prefix
// edit script instead of none.
func (c *Config) PartialTraceback() bool { return c.partial }

// Sentinel configuration errors, matched with errors.Is against the
// *ConfigError returned by Build.
var (
	ErrNoPenalties       = errors.New("wavefront: no penalties supplied")
	ErrPenaltyOutOfRange = errors.New("wavefront: penalty out of range")
	ErrMetricMismatch    = errors.New("wavefront: distance metric does not match penalty shape")
	ErrInvalidHeuristic  = errors.New("wavefront: invalid heuristic parameters")
	ErrInvalidLimit      = errors.New("wavefront: invalid limit")
	ErrScoreOnlyBisect   = errors.New("wavefront: bisect memory strategy cannot report a score; score-only scope would yield no result")
)

// ConfigError reports every violated constraint of a Build call, not
// just the first, so one round trip fixes them all.
type ConfigError struct {
	errs []error
}

func (e *ConfigError) Error() string {
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid configuration (%d violations): %s",
		len(e.errs), strings.Join(msgs, "; "))
}

// Unwrap exposes the individual violations to errors.Is and errors.As.
func (e *ConfigError) Unwrap() []error { return e.errs }

// Violations returns the individual violations.
func (e *ConfigError) Violations() []error { return e.errs }

// Builder accumulates settings for one atomic, validated construction.
// Nothing is checked until Build, which reports all violations at once.
type Builder struct {
	cfg       Config
	penSet    bool
	metricSet bool
	negMemory bool
}

// NewBuilder returns a Builder with the defaults: full memory, full
// alignment scope, no heuristic, no limits.
func NewBuilder() *Builder {
	return &Builder{}
}

// Penalties sets the scoring model (required).
func (b *Builder) Penalties(p Penalties) *Builder {
	b.cfg.pen = p
	b.penSet = true
	return b
}

// Metric fixes the distance metric explicitly. When unset it is derived
// from the penalty shape; when set it must agree with it.
func (b *Builder) Metric(m DistanceMetric) *Builder {
	b.cfg.metric = m
	b.metricSet = true
	return b
}

// MemoryStrategy sets the memory strategy (default FullMemory).
func (b *Builder) MemoryStrategy(m MemoryMode) *Builder {
	b.cfg.mem = m
	return b
}

// Scope sets the alignment scope (default FullAlignment).
func (b *Builder) Scope(s Scope) *Builder {
	b.cfg.scope = s
	return b
}

// Heuristic sets the pruning heuristic (default none).
func (b *Builder) Heuristic(h Heuristic) *Builder {
	b.cfg.heur = h
	return b
}

// MaxSteps caps the score an alignment may reach before stopping with
// StatusMaxStepsExceeded. Zero (the default) is unlimited.
func (b *Builder) MaxSteps(n int) *Builder {
	b.cfg.maxSteps = n
	return b
}

// MaxMemory caps the wavefront memory of an alignment in bytes; the cap
// is reported as StatusOutOfMemory. Zero (the default) is unlimited.
func (b *Builder) MaxMemory(bytes int64) *Builder {
	if bytes < 0 {
		b.cfg.maxMemory = 0
		b.negMemory = true // reported by Build
		return b
	}
	b.cfg.maxMemory = uint64(bytes)
	return b
}

// PartialTraceback controls whether a heuristic stop exposes the valid
// prefix of the edit script (default false: no script on a stop).
func (b *Builder) PartialTraceback(on bool) *Builder {
	b.cfg.partial = on
	return b
}

// Build validates all settings together and returns an immutable Config,
// or a *ConfigError listing every violation.
func (b *Builder) Build() (*Config, error) {
	var errs []error

	if !b.penSet {
		errs = append(errs, ErrNoPenalties)
	} else {
		errs = append(errs, validatePenalties(b.cfg.pen)...)
	}

	derived := b.cfg.pen.Metric()
	if b.metricSet && b.penSet && b.cfg.metric != derived {
		errs = append(errs, fmt.Errorf("%w: metric %s with %s penalties",
			ErrMetricMismatch, b.cfg.metric, derived))
	}

	errs = append(errs, validateHeuristic(b.cfg.heur)...)

	if b.cfg.maxSteps < 0 {
		errs = append(errs, fmt.Errorf("%w: negative max steps %d", ErrInvalidLimit, b.cfg.maxSteps))
	}
	if b.negMemory {
		errs = append(errs, fmt.Errorf("%w: negative memory budget", ErrInvalidLimit))
	}

	if b.cfg.mem == BisectMemory && b.cfg.scope == ScoreOnly {
		errs = append(errs, ErrScoreOnlyBisect)
	}

	if len(errs) > 0 {
		return nil, &ConfigError{errs: errs}
	}

	cfg := b.cfg
	if !b.metricSet {
		cfg.metric = derived
	}
	return &cfg, nil
}

func validatePenalties(p Penalties) []error {
	var errs []error
	if p.Match != 0 {
		errs = append(errs, fmt.Errorf("%w: match score must be zero under the edit-distance convention, got %d",
			ErrPenaltyOutOfRange, p.Match))
	}
	if p.Mismatch < 1 {
		errs = append(errs, fmt.Errorf("%w: mismatch penalty must be positive, got %d",
			ErrPenaltyOutOfRange, p.Mismatch))
	}
	if p.GapOpen < 0 {
		errs = append(errs, fmt.Errorf("%w: gap-open penalty must be non-negative, got %d",
			ErrPenaltyOutOfRange, p.GapOpen))
	}
	if p.GapExt < 1 {
		errs = append(errs, fmt.Errorf("%w: gap-extension penalty must be positive, got %d",
			ErrPenaltyOutOfRange, p.GapExt))
	}
	if p.twoPiece {
		if p.GapOpen2 < 0 {
			errs = append(errs, fmt.Errorf("%w: second gap-open penalty must be non-negative, got %d",
				ErrPenaltyOutOfRange, p.GapOpen2))
		}
		if p.GapExt2 < 1 {
			errs = append(errs, fmt.Errorf("%w: second gap-extension penalty must be positive, got %d",
				ErrPenaltyOutOfRange, p.GapExt2))
		}
	}
	return errs
}

func validateHeuristic(h Heuristic) []error {
	var errs []error
	switch h.kind {
	case heurBandedStatic, heurBandedAdaptive:
		if h.minK > 0 || h.maxK < 0 {
			errs = append(errs, fmt.Errorf("%w: band [%d, %d] must contain diagonal 0",
				ErrInvalidHeuristic, h.minK, h.maxK))
		}
		if h.kind == heurBandedAdaptive && h.scoreSteps < 1 {
			errs = append(errs, fmt.Errorf("%w: score steps must be positive, got %d",
				ErrInvalidHeuristic, h.scoreSteps))
		}
	case heurXDrop, heurZDrop:
		if h.drop < 1 {
			errs = append(errs, fmt.Errorf("%w: drop threshold must be positive, got %d",
				ErrInvalidHeuristic, h.drop))
		}
		if h.scoreSteps < 1 {
			errs = append(errs, fmt.Errorf("%w: score steps must be positive, got %d",
				ErrInvalidHeuristic, h.scoreSteps))
		}
	case heurWFAdaptive, heurWFMash:
		if h.minLen < 1 {
			errs = append(errs, fmt.Errorf("%w: minimum wavefront length must be positive, got %d",
				ErrInvalidHeuristic, h.minLen))
		}
		if h.maxDist < 1 {
			errs = append(errs, fmt.Errorf("%w: distance threshold must be positive, got %d",
				ErrInvalidHeuristic, h.maxDist))
		}
		if h.scoreSteps < 1 {
			errs = append(errs, fmt.Errorf("%w: score steps must be positive, got %d",
				ErrInvalidHeuristic, h.scoreSteps))
		}
	}
	return errs
}
