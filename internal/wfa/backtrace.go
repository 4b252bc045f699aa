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

// backtrace rebuilds the edit operations of a completed alignment by
// walking the packed transition types backwards from the final cell.
func (e *Engine) backtrace(s, n, m int) {
	e.backtraceFrom(s, n-m, uint32(n))
}

// backtraceFrom walks from M[s][k] with query offset v down to the
// origin, filling the ops buffer (reversed in place at the end).
func (e *Engine) backtraceFrom(s, k int, v uint32) {
	x := int(e.set.Mismatch)
	oe1 := int(e.set.GapOpen1 + e.set.GapExt1)
	ex1 := int(e.set.GapExt1)
	oe2 := int(e.set.GapOpen2 + e.set.GapExt2)
	ex2 := int(e.set.GapExt2)

	ops := e.ops[:0]
	comp := cM

walk:
	for {
		switch comp {
		case cM:
			_, tr, ok := e.comp[cM].front(s).get(k)
			if !ok {
				break walk // should not happen; stop rather than loop
			}
			switch tr {
			case traceStart:
				ops = appendRun(ops, OpMatch, int(v))
				break walk
			case traceMismatch:
				p, _, _ := e.comp[cM].frontAt(s, x).get(k)
				ops = appendRun(ops, OpMatch, int(v-p-1))
				ops = append(ops, OpMismatch)
				s -= x
				v = p
			case traceFromI1:
				p, _, _ := e.comp[cI1].front(s).get(k)
				ops = appendRun(ops, OpMatch, int(v-p))
				comp = cI1
				v = p
			case traceFromD1:
				p, _, _ := e.comp[cD1].front(s).get(k)
				ops = appendRun(ops, OpMatch, int(v-p))
				comp = cD1
				v = p
			case traceFromI2:
				p, _, _ := e.comp[cI2].front(s).get(k)
				ops = appendRun(ops, OpMatch, int(v-p))
				comp = cI2
				v = p
			case traceFromD2:
				p, _, _ := e.comp[cD2].front(s).get(k)
				ops = appendRun(ops, OpMatch, int(v-p))
				comp = cD2
				v = p
			}

		case cI1, cI2:
			_, tr, _ := e.comp[comp].front(s).get(k)
			ops = append(ops, OpIns)
			oe, ex := oe1, ex1
			if comp == cI2 {
				oe, ex = oe2, ex2
			}
			if tr == traceOpen {
				s -= oe
				comp = cM
			} else {
				s -= ex
			}
			k--
			v--

		case cD1, cD2:
			_, tr, _ := e.comp[comp].front(s).get(k)
			ops = append(ops, OpDel)
			oe, ex := oe1, ex1
			if comp == cD2 {
				oe, ex = oe2, ex2
			}
			if tr == traceOpen {
				s -= oe
				comp = cM
			} else {
				s -= ex
			}
			k++
		}
	}

	// operations were collected end-first
	for i, j := 0, len(ops)-1; i < j; i, j = i+1, j-1 {
		ops[i], ops[j] = ops[j], ops[i]
	}
	e.ops = ops
}

// partialTrace backtraces the furthest-reaching M cell of a stopped
// alignment into a valid prefix edit script.
func (e *Engine) partialTrace() {
	bestS, bestK := -1, 0
	var bestV uint32
	bestMetric := -1

	fronts := e.comp[cM].fronts
	for s := len(fronts) - 1; s >= 0; s-- {
		f := fronts[s]
		if f == nil || f.empty() {
			continue
		}
		for k := f.Lo; k <= f.Hi; k++ {
			off, ok := f.offset(k)
			if !ok {
				continue
			}
			// v+h, the number of consumed bases
			if metric := 2*int(off) - k; metric > bestMetric {
				bestMetric = metric
				bestS, bestK, bestV = s, k, off
			}
		}
	}

	if bestS >= 0 {
		e.backtraceFrom(bestS, bestK, bestV)
	}
}
