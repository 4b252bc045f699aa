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

package cigar

import (
	"testing"

	"github.com/biogo/hts/sam"
)

func TestRunLength(t *testing.T) {
	cases := []struct {
		ops  string
		want string
	}{
		{"", ""},
		{"=", "1="},
		{"=====", "5="},
		{"===X=", "3=1X1="},
		{"=====X===II", "5=1X3=2I"},
		{"DDD===", "3D3="},
	}
	for _, tc := range cases {
		if got := RunLength([]byte(tc.ops)); got != tc.want {
			t.Errorf("RunLength(%q) = %q, want %q", tc.ops, got, tc.want)
		}
	}
}

func TestCollect(t *testing.T) {
	st := Collect([]byte("==X=II=D=DD"))
	if st.Len != 11 || st.Matches != 5 || st.Mismatches != 1 {
		t.Fatalf("got %+v", st)
	}
	if st.Insertions != 2 || st.Deletions != 3 {
		t.Fatalf("got %+v", st)
	}
	if st.GapRegions != 3 { // II, D, DD
		t.Fatalf("gap regions %d, want 3 (%+v)", st.GapRegions, st)
	}
}

func TestIdentityFraction(t *testing.T) {
	if got := Collect(nil).Identity(); got != 0 {
		t.Errorf("empty identity %f, want 0", got)
	}
	if got := Collect([]byte("====")).Identity(); got != 1 {
		t.Errorf("full identity %f, want 1", got)
	}
	if got := Collect([]byte("==XX")).Identity(); got != 0.5 {
		t.Errorf("half identity %f, want 0.5", got)
	}
}

func TestAlignmentText(t *testing.T) {
	q := []byte("ACGTTA")
	r := []byte("ACGAA")
	// ACG match, T/A mismatch, T insertion, A match
	ops := []byte("===XI=")

	query, middle, ref := AlignmentText(q, r, ops)
	if string(query) != "ACGTTA" {
		t.Errorf("query row %q", query)
	}
	if string(middle) != "|||  |" {
		t.Errorf("middle row %q", middle)
	}
	if string(ref) != "ACGA-A" {
		t.Errorf("reference row %q", ref)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate([]byte("===XI=D"), 6, 6); err != nil {
		t.Errorf("valid script rejected: %v", err)
	}
	if err := Validate([]byte("==="), 4, 3); err == nil {
		t.Error("query shortfall accepted")
	}
	if err := Validate([]byte("==="), 3, 4); err == nil {
		t.Error("reference shortfall accepted")
	}
	if err := Validate([]byte("==M"), 3, 3); err == nil {
		t.Error("invalid operation accepted")
	}
}

func TestSAM(t *testing.T) {
	cig, err := SAM([]byte("=====X===II"))
	if err != nil {
		t.Fatal(err)
	}
	want := sam.Cigar{
		sam.NewCigarOp(sam.CigarEqual, 5),
		sam.NewCigarOp(sam.CigarMismatch, 1),
		sam.NewCigarOp(sam.CigarEqual, 3),
		sam.NewCigarOp(sam.CigarInsertion, 2),
	}
	if len(cig) != len(want) {
		t.Fatalf("got %v, want %v", cig, want)
	}
	for i := range cig {
		if cig[i] != want[i] {
			t.Fatalf("op %d: got %v, want %v", i, cig[i], want[i])
		}
	}

	if _, err := SAM([]byte("==Z")); err == nil {
		t.Error("invalid operation accepted")
	}
	if cig, err := SAM(nil); err != nil || cig != nil {
		t.Errorf("empty script: got %v, %v", cig, err)
	}
}
