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

// The bisect strategy trades passes for memory: a score-windowed forward
// pass tags every cell with the query offset where its path first crossed
// the middle reference column, then the problem is split at that crossing
// and both halves are solved recursively. Working memory per pass stays
// within the recurrence window instead of growing with the score. The
// final score is not retained across passes, so the strategy reports no
// score.

// bisectBaseCells bounds the DP area handed to the full-memory
// sub-engine instead of being split further.
const bisectBaseCells = 1 << 20

func (e *Engine) bisect(q, t []byte) Status {
	ops := e.ops[:0]
	st := e.bisectRange(q, t, &ops)
	if st != Completed {
		ops = ops[:0]
	}
	e.ops = ops
	e.scoreKnown = false
	return st
}

func (e *Engine) bisectRange(q, t []byte, ops *[]byte) Status {
	n, m := len(q), len(t)
	switch {
	case n == 0 && m == 0:
		return Completed
	case n == 0:
		*ops = appendRun(*ops, OpDel, m)
		return Completed
	case m == 0:
		*ops = appendRun(*ops, OpIns, n)
		return Completed
	}

	if uint64(n)*uint64(m) <= bisectBaseCells || m < 2 {
		st := e.sub.Align(q, t)
		if st != Completed {
			return st
		}
		*ops = append(*ops, e.sub.Ops()...)
		return Completed
	}

	mid := m / 2
	e.resetComponents()
	st, s := e.forward(q, t, true, mid)
	if st != Completed {
		return st
	}

	// the final cell's tag is where the optimal path crossed column mid
	split := int(e.comp[cM].front(s).tag(n - m))
	if split < 0 {
		split = 0
	} else if split > n {
		split = n
	}
	e.resetComponents()

	if st := e.bisectRange(q[:split], t[:mid], ops); st != Completed {
		return st
	}
	return e.bisectRange(q[split:], t[mid:], ops)
}
