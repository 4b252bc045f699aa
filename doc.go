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

// Package wavefront provides gap-affine pairwise sequence alignment
// with the wavefront algorithm (WFA).
//
// Usage follows a three-stage lifecycle. A Builder assembles and
// validates alignment parameters, producing an immutable Config:
//
//	cfg, err := wavefront.NewBuilder().
//		Penalties(wavefront.SingleAffine(0, 4, 6, 2)).
//		MemoryStrategy(wavefront.ReducedMemory).
//		Build()
//
// A Config shapes any number of Aligners, each owning its own engine
// buffers:
//
//	a, err := wavefront.NewAligner(cfg)
//	defer a.Close()
//
//	if a.Align(query, reference) == wavefront.StatusCompleted {
//		score := a.Score()
//		es, _ := a.EditScript()
//		...
//	}
//
// An Aligner is cheap to reuse across sequence pairs but is not safe
// for concurrent use; share the Config instead and give each goroutine
// its own Aligner.
//
// Scores are accumulated penalties: identical sequences score 0 and
// larger means more divergent. Edit scripts use the query as the first
// sequence, so 'I' consumes a query base and 'D' a reference base.
package wavefront
