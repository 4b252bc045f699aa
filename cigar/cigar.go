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

// Package cigar renders and validates edit scripts produced by the
// wavefront aligner. Scripts are plain operation bytes: '=' match,
// 'X' mismatch, 'I' insertion (consumes a query base), 'D' deletion
// (consumes a reference base).
package cigar

import (
	"bytes"
	"fmt"
	"strconv"
	"sync"
)

var poolBuffer = &sync.Pool{New: func() interface{} {
	return &bytes.Buffer{}
}}

// RunLength returns the run-length compressed form of an edit script,
// e.g. "5=1X3=2I" for "=====X===II". An empty script yields "".
func RunLength(ops []byte) string {
	if len(ops) == 0 {
		return ""
	}

	buf := poolBuffer.Get().(*bytes.Buffer)
	buf.Reset()

	cur := ops[0]
	n := 0
	for _, op := range ops {
		if op == cur {
			n++
			continue
		}
		buf.WriteString(strconv.Itoa(n))
		buf.WriteByte(cur)
		cur = op
		n = 1
	}
	buf.WriteString(strconv.Itoa(n))
	buf.WriteByte(cur)

	text := buf.String()
	poolBuffer.Put(buf)
	return text
}

// Stats summarizes an edit script.
type Stats struct {
	Len        int // total operations
	Matches    int
	Mismatches int
	Insertions int // query bases absent from the reference
	Deletions  int // reference bases absent from the query
	GapRegions int // maximal runs of 'I' or 'D'
}

// Identity returns the fraction of aligned columns that match, in
// [0, 1]. An empty script has identity 0.
func (st Stats) Identity() float64 {
	if st.Len == 0 {
		return 0
	}
	return float64(st.Matches) / float64(st.Len)
}

// Collect walks an edit script once and gathers its stats.
func Collect(ops []byte) Stats {
	var st Stats
	st.Len = len(ops)

	var prev byte
	for _, op := range ops {
		switch op {
		case '=':
			st.Matches++
		case 'X':
			st.Mismatches++
		case 'I':
			st.Insertions++
			if prev != 'I' {
				st.GapRegions++
			}
		case 'D':
			st.Deletions++
			if prev != 'D' {
				st.GapRegions++
			}
		}
		prev = op
	}
	return st
}

// AlignmentText renders a three-row picture of the alignment: the query
// with '-' at deletions, a middle row of '|' at matches, and the
// reference with '-' at insertions. The script must be valid for q and
// t; use Validate first for untrusted input.
func AlignmentText(q, t, ops []byte) (query, middle, ref []byte) {
	query = make([]byte, 0, len(ops))
	middle = make([]byte, 0, len(ops))
	ref = make([]byte, 0, len(ops))

	var v, h int
	for _, op := range ops {
		switch op {
		case '=':
			query = append(query, q[v])
			middle = append(middle, '|')
			ref = append(ref, t[h])
			v++
			h++
		case 'X':
			query = append(query, q[v])
			middle = append(middle, ' ')
			ref = append(ref, t[h])
			v++
			h++
		case 'I':
			query = append(query, q[v])
			middle = append(middle, ' ')
			ref = append(ref, '-')
			v++
		case 'D':
			query = append(query, '-')
			middle = append(middle, ' ')
			ref = append(ref, t[h])
			h++
		}
	}
	return query, middle, ref
}

// Validate checks that an edit script is well formed and consumes
// exactly qLen query bases and tLen reference bases.
func Validate(ops []byte, qLen, tLen int) error {
	var v, h int
	for i, op := range ops {
		switch op {
		case '=', 'X':
			v++
			h++
		case 'I':
			v++
		case 'D':
			h++
		default:
			return fmt.Errorf("cigar: invalid operation %q at %d", op, i)
		}
	}
	if v != qLen {
		return fmt.Errorf("cigar: script consumes %d query bases, have %d", v, qLen)
	}
	if h != tLen {
		return fmt.Errorf("cigar: script consumes %d reference bases, have %d", h, tLen)
	}
	return nil
}
