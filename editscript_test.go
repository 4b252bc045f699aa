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

import "testing"

func TestOpKindConsumption(t *testing.T) {
	cases := []struct {
		op   OpKind
		q, r bool
	}{
		{OpMatch, true, true},
		{OpMismatch, true, true},
		{OpInsert, true, false},
		{OpDelete, false, true},
	}
	for _, tc := range cases {
		if tc.op.ConsumesQuery() != tc.q || tc.op.ConsumesReference() != tc.r {
			t.Errorf("%c: consumes query %v reference %v, want %v %v",
				tc.op, tc.op.ConsumesQuery(), tc.op.ConsumesReference(), tc.q, tc.r)
		}
	}
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

func TestZeroEditScriptPanics(t *testing.T) {
	var es EditScript
	mustPanic(t, "Len on zero view", func() { es.Len() })
}

func TestStaleViewPanicsAfterRealign(t *testing.T) {
	a := mustAligner(t, mustConfig(t, NewBuilder().Penalties(DefaultPenalties)))

	a.Align([]byte("ACGTA"), []byte("ACGGA"))
	es, err := a.EditScript()
	if err != nil {
		t.Fatal(err)
	}
	es.Len() // live view is fine

	a.Align([]byte("ACGT"), []byte("ACGT"))
	mustPanic(t, "stale view after realign", func() { es.Len() })
}

func TestStaleViewPanicsAfterClose(t *testing.T) {
	a, err := NewAligner(mustConfig(t, NewBuilder().Penalties(DefaultPenalties)))
	if err != nil {
		t.Fatal(err)
	}
	a.Align([]byte("ACGTA"), []byte("ACGGA"))
	es, err := a.EditScript()
	if err != nil {
		t.Fatal(err)
	}

	a.Close()
	mustPanic(t, "stale view after close", func() { _ = es.String() })
}

func TestAppendOpsSurvivesRealign(t *testing.T) {
	a := mustAligner(t, mustConfig(t, NewBuilder().Penalties(DefaultPenalties)))

	a.Align([]byte("ACGTA"), []byte("ACGGA"))
	es, err := a.EditScript()
	if err != nil {
		t.Fatal(err)
	}
	kept := es.AppendOps(nil)

	a.Align([]byte("TTTT"), []byte("TTTT"))

	if string(kept) != "===X=" {
		t.Fatalf("copied ops %q changed after realign, want ===X=", kept)
	}
}
