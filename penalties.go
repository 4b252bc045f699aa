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

// DistanceMetric tags the scoring model of a configuration. It must
// agree with the shape of the supplied penalties; by default it is
// derived from them.
type DistanceMetric uint8

const (
	MetricUnspecified DistanceMetric = iota
	GapAffine                        // single affine gap cost
	GapAffine2p                      // two-piece affine gap cost
)

func (m DistanceMetric) String() string {
	switch m {
	case GapAffine:
		return "gap-affine"
	case GapAffine2p:
		return "gap-affine-2p"
	}
	return "unspecified"
}

// Penalties is the scoring model under the edit-distance convention:
// a match scores zero and every other value is a non-negative penalty,
// so lower total scores are better. Values must fit the engine's signed
// 32-bit score domain; validation happens in Builder.Build.
type Penalties struct {
	Match    int32 // must be zero
	Mismatch int32
	GapOpen  int32
	GapExt   int32

	// second gap cost curve, set for two-piece affine penalties only
	GapOpen2 int32
	GapExt2  int32

	twoPiece bool
}

// SingleAffine returns gap-affine penalties.
func SingleAffine(match, mismatch, gapOpen, gapExt int32) Penalties {
	return Penalties{
		Match:    match,
		Mismatch: mismatch,
		GapOpen:  gapOpen,
		GapExt:   gapExt,
	}
}

// TwoPieceAffine returns gap-affine penalties with a second, typically
// cheaper-per-base, cost curve for long gaps.
func TwoPieceAffine(match, mismatch, gapOpen1, gapExt1, gapOpen2, gapExt2 int32) Penalties {
	return Penalties{
		Match:    match,
		Mismatch: mismatch,
		GapOpen:  gapOpen1,
		GapExt:   gapExt1,
		GapOpen2: gapOpen2,
		GapExt2:  gapExt2,
		twoPiece: true,
	}
}

// DefaultPenalties is the single-affine scoring from the wavefront
// alignment paper.
var DefaultPenalties = SingleAffine(0, 4, 6, 2)

// Metric returns the distance metric matching the penalty shape.
func (p Penalties) Metric() DistanceMetric {
	if p.twoPiece {
		return GapAffine2p
	}
	return GapAffine
}

// TwoPiece reports whether the penalties carry a second gap cost curve.
func (p Penalties) TwoPiece() bool {
	return p.twoPiece
}
