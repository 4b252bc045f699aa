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
	"testing"
)

func TestBuildDefaults(t *testing.T) {
	cfg, err := NewBuilder().Penalties(DefaultPenalties).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if cfg.Metric() != GapAffine {
		t.Errorf("metric %v, want GapAffine derived from penalties", cfg.Metric())
	}
	if cfg.MemoryMode() != FullMemory {
		t.Errorf("memory %v, want FullMemory", cfg.MemoryMode())
	}
	if cfg.Scope() != FullAlignment {
		t.Errorf("scope %v, want FullAlignment", cfg.Scope())
	}
	if !cfg.Heuristic().Exact() {
		t.Error("default heuristic is not exact")
	}
}

func TestBuildRequiresPenalties(t *testing.T) {
	_, err := NewBuilder().Build()
	if !errors.Is(err, ErrNoPenalties) {
		t.Fatalf("got %v, want ErrNoPenalties", err)
	}
}

func TestBuildRejectsBadPenalties(t *testing.T) {
	cases := []struct {
		name string
		pen  Penalties
	}{
		{"nonzero match", Penalties{Match: 1, Mismatch: 4, GapOpen: 6, GapExt: 2}},
		{"zero mismatch", SingleAffine(0, 0, 6, 2)},
		{"negative mismatch", SingleAffine(0, -4, 6, 2)},
		{"negative gap open", SingleAffine(0, 4, -6, 2)},
		{"zero gap extension", SingleAffine(0, 4, 6, 0)},
		{"zero second extension", TwoPieceAffine(0, 4, 6, 2, 24, 0)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBuilder().Penalties(tc.pen).Build()
			if !errors.Is(err, ErrPenaltyOutOfRange) {
				t.Fatalf("got %v, want ErrPenaltyOutOfRange", err)
			}
		})
	}
}

func TestBuildMetricPenaltyAgreement(t *testing.T) {
	single := SingleAffine(0, 4, 6, 2)
	two := TwoPieceAffine(0, 4, 6, 2, 24, 1)

	cases := []struct {
		name   string
		pen    Penalties
		metric DistanceMetric
		ok     bool
	}{
		{"single as gap-affine", single, GapAffine, true},
		{"two-piece as gap-affine-2p", two, GapAffine2p, true},
		{"single as gap-affine-2p", single, GapAffine2p, false},
		{"two-piece as gap-affine", two, GapAffine, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewBuilder().Penalties(tc.pen).Metric(tc.metric).Build()
			if tc.ok {
				if err != nil {
					t.Fatalf("Build: %v", err)
				}
				if cfg.Metric() != tc.metric {
					t.Fatalf("metric %v, want %v", cfg.Metric(), tc.metric)
				}
				return
			}
			if !errors.Is(err, ErrMetricMismatch) {
				t.Fatalf("got %v, want ErrMetricMismatch", err)
			}
		})
	}
}

func TestBuildRejectsBadHeuristics(t *testing.T) {
	cases := []struct {
		name string
		heur Heuristic
	}{
		{"band excludes main diagonal", BandedStatic(1, 5)},
		{"inverted band", BandedStatic(3, -3)},
		{"zero score steps", BandedAdaptive(-5, 5, 0)},
		{"zero min length", WFAdaptive(0, 50, 1)},
		{"zero dist threshold", WFAdaptive(10, 0, 1)},
		{"zero x-drop", XDrop(0, 1)},
		{"x-drop zero score steps", XDrop(100, 0)},
		{"zero z-drop", ZDrop(0, 1)},
		{"wfmash zero min length", WFMash(0, 50, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBuilder().
				Penalties(DefaultPenalties).
				Heuristic(tc.heur).
				Build()
			if !errors.Is(err, ErrInvalidHeuristic) {
				t.Fatalf("got %v, want ErrInvalidHeuristic", err)
			}
		})
	}
}

func TestBuildRejectsScoreOnlyBisect(t *testing.T) {
	_, err := NewBuilder().
		Penalties(DefaultPenalties).
		MemoryStrategy(BisectMemory).
		Scope(ScoreOnly).
		Build()
	if !errors.Is(err, ErrScoreOnlyBisect) {
		t.Fatalf("got %v, want ErrScoreOnlyBisect", err)
	}
}

func TestBuildCollectsAllViolations(t *testing.T) {
	_, err := NewBuilder().
		Penalties(SingleAffine(0, 0, -1, 0)).
		Heuristic(BandedStatic(2, 8)).
		MaxSteps(-1).
		MaxMemory(-1).
		Build()
	if err == nil {
		t.Fatal("Build succeeded on a configuration with several violations")
	}

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("got %T, want *ConfigError", err)
	}
	if len(ce.Violations()) < 4 {
		t.Fatalf("got %d violations (%v), want at least 4", len(ce.Violations()), ce)
	}
	if !errors.Is(err, ErrPenaltyOutOfRange) || !errors.Is(err, ErrInvalidHeuristic) || !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("violations not discoverable with errors.Is: %v", err)
	}
}

func TestConfigImmutableAfterBuild(t *testing.T) {
	b := NewBuilder().Penalties(SingleAffine(0, 4, 6, 2))
	cfg, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	// mutating the builder afterwards must not reach into the config
	b.Penalties(SingleAffine(0, 9, 9, 9)).MemoryStrategy(BisectMemory)

	if got := cfg.Penalties().Mismatch; got != 4 {
		t.Errorf("mismatch penalty changed to %d after builder reuse", got)
	}
	if cfg.MemoryMode() != FullMemory {
		t.Errorf("memory mode changed to %v after builder reuse", cfg.MemoryMode())
	}
}
