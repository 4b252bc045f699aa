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

// OpKind is a single edit operation, stored as its text byte.
type OpKind byte

const (
	OpMatch    OpKind = '='
	OpMismatch OpKind = 'X'
	OpInsert   OpKind = 'I' // consumes one query base
	OpDelete   OpKind = 'D' // consumes one reference base
)

// ConsumesQuery reports whether the operation advances the query.
func (op OpKind) ConsumesQuery() bool {
	return op == OpMatch || op == OpMismatch || op == OpInsert
}

// ConsumesReference reports whether the operation advances the reference.
func (op OpKind) ConsumesReference() bool {
	return op == OpMatch || op == OpMismatch || op == OpDelete
}

// EditScript is a read-only view over the engine's edit-script buffer
// for one alignment. It does not copy: the bytes belong to the Aligner
// and are overwritten by the next Align call. Every accessor checks the
// Aligner's generation and panics on a stale view, so a forgotten view
// fails loudly instead of silently reading the next alignment's data.
//
// The zero EditScript is invalid; obtain one from Aligner.EditScript.
type EditScript struct {
	a   *Aligner
	gen uint64
}

func (s EditScript) check() []byte {
	if s.a == nil {
		panic("wavefront: use of zero EditScript")
	}
	if s.a.gen != s.gen {
		panic("wavefront: stale edit script view, the aligner has been reused or closed")
	}
	return s.a.eng.Ops()
}

// Len returns the number of operations in the script.
func (s EditScript) Len() int { return len(s.check()) }

// Op returns the i-th operation.
func (s EditScript) Op(i int) OpKind { return OpKind(s.check()[i]) }

// AppendOps appends the script's operation bytes to dst and returns the
// extended slice. The appended bytes are a copy and remain valid after
// the Aligner moves on.
func (s EditScript) AppendOps(dst []byte) []byte {
	return append(dst, s.check()...)
}

// QuerySpan returns how many query bases the script consumes.
func (s EditScript) QuerySpan() int {
	n := 0
	for _, op := range s.check() {
		if OpKind(op).ConsumesQuery() {
			n++
		}
	}
	return n
}

// ReferenceSpan returns how many reference bases the script consumes.
func (s EditScript) ReferenceSpan() int {
	n := 0
	for _, op := range s.check() {
		if OpKind(op).ConsumesReference() {
			n++
		}
	}
	return n
}

// String returns the script as plain operation text, one byte per
// operation. Use package cigar for run-length compressed form.
func (s EditScript) String() string { return string(s.check()) }
