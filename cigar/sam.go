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
	"fmt"

	"github.com/biogo/hts/sam"
)

// SAM converts an edit script into a biogo/hts CIGAR, using the
// extended operators ('=' and 'X') rather than collapsing to 'M'.
func SAM(ops []byte) (sam.Cigar, error) {
	if len(ops) == 0 {
		return nil, nil
	}

	var cig sam.Cigar
	cur := ops[0]
	n := 0
	flush := func() error {
		t, err := samOp(cur)
		if err != nil {
			return err
		}
		cig = append(cig, sam.NewCigarOp(t, n))
		return nil
	}
	for _, op := range ops {
		if op == cur {
			n++
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		cur = op
		n = 1
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cig, nil
}

func samOp(op byte) (sam.CigarOpType, error) {
	switch op {
	case '=':
		return sam.CigarEqual, nil
	case 'X':
		return sam.CigarMismatch, nil
	case 'I':
		return sam.CigarInsertion, nil
	case 'D':
		return sam.CigarDeletion, nil
	}
	return 0, fmt.Errorf("cigar: invalid operation %q", op)
}
