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

import (
	"fmt"
	"io"
)

// Fprint dumps every live wavefront cell of every component, one score
// per line. Meant for tests and debugging; the layout mirrors the DP
// state, not any output format.
func (e *Engine) Fprint(w io.Writer) {
	for c := 0; c < e.nComp; c++ {
		fmt.Fprintf(w, "%s:\n", componentNames[c])
		for s, f := range e.comp[c].fronts {
			if f == nil || f.empty() {
				continue
			}
			fmt.Fprintf(w, "  s=%-4d k[%d,%d]:", s, f.Lo, f.Hi)
			for k := f.Lo; k <= f.Hi; k++ {
				if off, tr, ok := f.get(k); ok {
					fmt.Fprintf(w, " k(%d):%d(%s)", k, off, traceName(c, tr))
				}
			}
			fmt.Fprintln(w)
		}
	}
}

// traceName renders a packed transition for the component it lives in.
func traceName(c int, tr uint32) string {
	if c == cM {
		switch tr {
		case traceStart:
			return "start"
		case traceMismatch:
			return "mis"
		case traceFromI1:
			return "i1"
		case traceFromD1:
			return "d1"
		case traceFromI2:
			return "i2"
		case traceFromD2:
			return "d2"
		}
		return "n/a"
	}
	switch tr {
	case traceOpen:
		return "open"
	case traceExt:
		return "ext"
	}
	return "n/a"
}
