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
	"math"
	"strings"
	"testing"
)

func mustConfig(t *testing.T, b *Builder) *Config {
	t.Helper()
	cfg, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return cfg
}

func mustAligner(t *testing.T, cfg *Config) *Aligner {
	t.Helper()
	a, err := NewAligner(cfg)
	if err != nil {
		t.Fatalf("NewAligner: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func TestNewAlignerNilConfig(t *testing.T) {
	if _, err := NewAligner(nil); err == nil {
		t.Fatal("NewAligner accepted a nil config")
	}
}

func TestFreshAlignerState(t *testing.T) {
	a := mustAligner(t, mustConfig(t, NewBuilder().Penalties(DefaultPenalties)))

	if a.Status() != StatusUnaligned {
		t.Errorf("status %v, want StatusUnaligned", a.Status())
	}
	if _, ok := a.Score().Value(); ok {
		t.Error("score available before any alignment")
	}
	if _, err := a.EditScript(); !errors.Is(err, ErrNotAligned) {
		t.Errorf("EditScript: %v, want ErrNotAligned", err)
	}
}

func TestAlignAndInspect(t *testing.T) {
	a := mustAligner(t, mustConfig(t, NewBuilder().Penalties(DefaultPenalties)))

	if st := a.Align([]byte("ACGTACGT"), []byte("ACGTTCGT")); st != StatusCompleted {
		t.Fatalf("status %v", st)
	}
	if s, ok := a.Score().Value(); !ok || s != 4 {
		t.Fatalf("score %d (known %v), want 4", s, ok)
	}
	es, err := a.EditScript()
	if err != nil {
		t.Fatalf("EditScript: %v", err)
	}
	if es.String() != "====X===" {
		t.Fatalf("script %q, want ====X===", es)
	}
	if es.Len() != 8 || es.Op(4) != OpMismatch {
		t.Fatalf("script %q: Len %d, Op(4) %c", es, es.Len(), es.Op(4))
	}
	if es.QuerySpan() != 8 || es.ReferenceSpan() != 8 {
		t.Fatalf("spans %d/%d, want 8/8", es.QuerySpan(), es.ReferenceSpan())
	}
}

// Swapping the arguments transposes the script: insertions become
// deletions. The engine cannot detect the swap itself.
func TestArgumentOrderTransposesScript(t *testing.T) {
	a := mustAligner(t, mustConfig(t, NewBuilder().Penalties(DefaultPenalties)))
	q, ref := []byte("ACGTTA"), []byte("ACGTA")

	a.Align(q, ref)
	es, err := a.EditScript()
	if err != nil {
		t.Fatal(err)
	}
	forward := es.AppendOps(nil)

	a.Align(ref, q)
	es, err = a.EditScript()
	if err != nil {
		t.Fatal(err)
	}
	swapped := es.AppendOps(nil)

	if strings.Count(string(forward), "I") != strings.Count(string(swapped), "D") {
		t.Fatalf("forward %q vs swapped %q: insertions did not become deletions", forward, swapped)
	}
}

func TestScoreOnlyScope(t *testing.T) {
	a := mustAligner(t, mustConfig(t, NewBuilder().
		Penalties(DefaultPenalties).
		Scope(ScoreOnly)))

	if st := a.Align([]byte("ACGTA"), []byte("ACGGA")); st != StatusCompleted {
		t.Fatalf("status %v", st)
	}
	if s, ok := a.Score().Value(); !ok || s != 4 {
		t.Fatalf("score %d (known %v), want 4", s, ok)
	}
	if _, err := a.EditScript(); !errors.Is(err, ErrScoreOnlyScope) {
		t.Fatalf("EditScript: %v, want ErrScoreOnlyScope", err)
	}
}

func TestDropHeuristicsAlign(t *testing.T) {
	for _, heur := range []Heuristic{
		XDrop(100, 1),
		ZDrop(100, 1),
		WFMash(10, 50, 1),
	} {
		a := mustAligner(t, mustConfig(t, NewBuilder().
			Penalties(DefaultPenalties).
			Heuristic(heur)))

		if st := a.Align([]byte("ACGTACGT"), []byte("ACGTTCGT")); st != StatusCompleted {
			t.Fatalf("status %v", st)
		}
		if s, ok := a.Score().Value(); !ok || s != 4 {
			t.Fatalf("score %d (known %v), want 4", s, ok)
		}
	}
}

func TestBisectScoreUnavailable(t *testing.T) {
	a := mustAligner(t, mustConfig(t, NewBuilder().
		Penalties(DefaultPenalties).
		MemoryStrategy(BisectMemory)))
	q, ref := []byte("AGCTAGTGTCAATGGCTACTTTTCAGGTCCT"), []byte("AACTAAGTGTCGGTGGCTACTATATATCAGGTCCT")

	if st := a.Align(q, ref); st != StatusCompleted {
		t.Fatalf("status %v", st)
	}
	if _, ok := a.Score().Value(); ok {
		t.Fatal("bisect strategy reported a score")
	}
	if s := a.Score().String(); s != "unavailable" {
		t.Fatalf("score string %q, want unavailable", s)
	}

	es, err := a.EditScript()
	if err != nil {
		t.Fatalf("EditScript: %v", err)
	}
	if es.QuerySpan() != len(q) || es.ReferenceSpan() != len(ref) {
		t.Fatalf("spans %d/%d, want %d/%d", es.QuerySpan(), es.ReferenceSpan(), len(q), len(ref))
	}
}

func TestInputTooLarge(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates a quarter-gigabyte slice")
	}
	a := mustAligner(t, mustConfig(t, NewBuilder().Penalties(DefaultPenalties)))

	big := make([]byte, MaxSeqLen+1)
	if st := a.Align(big, []byte("ACGT")); st != StatusInputTooLarge {
		t.Fatalf("status %v, want StatusInputTooLarge", st)
	}
	if _, ok := a.Score().Value(); ok {
		t.Error("score available after a rejected input")
	}
	if _, err := a.EditScript(); !errors.Is(err, ErrNoEditScript) {
		t.Errorf("EditScript: %v, want ErrNoEditScript", err)
	}
}

// A score must never wrap into a negative value: inputs whose worst-case
// score exceeds the 32-bit domain are rejected up front.
func TestScoreDomainGuard(t *testing.T) {
	a := mustAligner(t, mustConfig(t, NewBuilder().
		Penalties(SingleAffine(0, 4, 6, math.MaxInt32))))

	if st := a.Align(nil, []byte("AC")); st != StatusInputTooLarge {
		t.Fatalf("status %v, want StatusInputTooLarge", st)
	}
	if s, ok := a.Score().Value(); ok {
		t.Fatalf("rejected input reported score %d", s)
	}

	// the same penalties still align the empty pair, whose score is zero
	if st := a.Align(nil, nil); st != StatusCompleted {
		t.Fatalf("empty pair status %v", st)
	}
}

func TestScoreDomainGuardLongGap(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates a quarter-gigabyte slice")
	}
	// a 1<<28-base deletion at gap-extend 8 would cost more than MaxInt32
	a := mustAligner(t, mustConfig(t, NewBuilder().
		Penalties(SingleAffine(0, 4, 6, 8))))

	ref := make([]byte, 1<<28)
	if st := a.Align(nil, ref); st != StatusInputTooLarge {
		t.Fatalf("status %v, want StatusInputTooLarge", st)
	}
	if s, ok := a.Score().Value(); ok {
		t.Fatalf("rejected input reported score %d", s)
	}
}

func TestPartialTracebackExposure(t *testing.T) {
	q, ref := []byte("AAAAA"), []byte("AAA")

	// without partial traceback a heuristic stop yields no script
	a := mustAligner(t, mustConfig(t, NewBuilder().
		Penalties(DefaultPenalties).
		Heuristic(BandedStatic(0, 0))))
	if st := a.Align(q, ref); st != StatusPartialHeuristicStop {
		t.Fatalf("status %v, want StatusPartialHeuristicStop", st)
	}
	if _, err := a.EditScript(); !errors.Is(err, ErrNoEditScript) {
		t.Fatalf("EditScript: %v, want ErrNoEditScript", err)
	}

	// with it the matched prefix is exposed
	b := mustAligner(t, mustConfig(t, NewBuilder().
		Penalties(DefaultPenalties).
		Heuristic(BandedStatic(0, 0)).
		PartialTraceback(true)))
	if st := b.Align(q, ref); st != StatusPartialHeuristicStop {
		t.Fatalf("status %v, want StatusPartialHeuristicStop", st)
	}
	es, err := b.EditScript()
	if err != nil {
		t.Fatalf("EditScript: %v", err)
	}
	if es.String() != "===" {
		t.Fatalf("script %q, want the matched prefix ===", es)
	}
}

func TestMaxStepsStatus(t *testing.T) {
	a := mustAligner(t, mustConfig(t, NewBuilder().
		Penalties(DefaultPenalties).
		MaxSteps(2)))
	if st := a.Align([]byte("AC"), []byte("GC")); st != StatusMaxStepsExceeded {
		t.Fatalf("status %v, want StatusMaxStepsExceeded", st)
	}
}

func TestMaxMemoryStatus(t *testing.T) {
	a := mustAligner(t, mustConfig(t, NewBuilder().
		Penalties(DefaultPenalties).
		MaxMemory(64)))
	if st := a.Align([]byte("AC"), []byte("GC")); st != StatusOutOfMemory {
		t.Fatalf("status %v, want StatusOutOfMemory", st)
	}
}

func TestSharedConfigIndependentAligners(t *testing.T) {
	cfg := mustConfig(t, NewBuilder().Penalties(DefaultPenalties))

	a := mustAligner(t, cfg)
	b := mustAligner(t, cfg)

	a.Align([]byte("ACGTA"), []byte("ACGGA"))
	b.Align([]byte("ACGT"), []byte("ACGT"))

	if s, _ := a.Score().Value(); s != 4 {
		t.Errorf("first aligner score %d, want 4", s)
	}
	if s, _ := b.Score().Value(); s != 0 {
		t.Errorf("second aligner score %d, want 0", s)
	}
}

func TestCloseSemantics(t *testing.T) {
	a, err := NewAligner(mustConfig(t, NewBuilder().Penalties(DefaultPenalties)))
	if err != nil {
		t.Fatal(err)
	}
	a.Align([]byte("ACGT"), []byte("ACGT"))

	a.Close()
	a.Close() // second close is a no-op

	if st := a.Align([]byte("A"), []byte("A")); st != StatusInvalidInput {
		t.Errorf("Align after Close: %v, want StatusInvalidInput", st)
	}
	if _, ok := a.Score().Value(); ok {
		t.Error("score available after Close")
	}
	if _, err := a.EditScript(); !errors.Is(err, ErrAlignerClosed) {
		t.Errorf("EditScript after Close: %v, want ErrAlignerClosed", err)
	}
}
