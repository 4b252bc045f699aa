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

import "sync"

// Component indexes. A gap-affine engine uses M, I1 and D1; the two-piece
// engine adds I2 and D2 for the second gap cost curve.
const (
	cM = iota
	cI1
	cD1
	cI2
	cD2
	numComponents
)

var componentNames = [numComponents]string{"M", "I1", "D1", "I2", "D2"}

// component is the list of wavefronts of one DP matrix, indexed by score.
// A nil entry means no wavefront exists for that score.
type component struct {
	fronts []*front
}

var poolComponent = &sync.Pool{New: func() interface{} {
	return &component{fronts: make([]*front, 0, 1024)}
}}

func newComponent() *component {
	return poolComponent.Get().(*component)
}

// clear recycles every wavefront and empties the score list.
func (c *component) clear() {
	for i, f := range c.fronts {
		if f != nil {
			recycleFront(f)
			c.fronts[i] = nil
		}
	}
	c.fronts = c.fronts[:0]
}

func recycleComponent(c *component) {
	if c != nil {
		c.clear()
		poolComponent.Put(c)
	}
}

// front returns the wavefront of a score, or nil.
func (c *component) front(s int) *front {
	if s < 0 || s >= len(c.fronts) {
		return nil
	}
	return c.fronts[s]
}

// ensure returns the wavefront of a score, creating it when absent,
// plus the number of freshly allocated cells.
func (c *component) ensure(s, base int, tagged bool) (*front, int) {
	for s >= len(c.fronts) {
		c.fronts = append(c.fronts, nil)
	}
	f := c.fronts[s]
	if f == nil {
		f = newFront(base, tagged)
		c.fronts[s] = f
		return f, base
	}
	return f, 0
}

// kRange returns the live diagonal range of the wavefront at score s-d.
func (c *component) kRange(s, d int) (int, int, bool) {
	s -= d
	f := c.front(s)
	if f == nil || f.empty() {
		return 0, 0, false
	}
	return f.Lo, f.Hi, true
}

// offsetAt returns the offset on diagonal k of the wavefront at score s-d.
func (c *component) offsetAt(s, d, k int) (uint32, bool) {
	s -= d
	f := c.front(s)
	if f == nil {
		return 0, false
	}
	return f.offset(k)
}

// frontAt returns the wavefront at score s-d, or nil.
func (c *component) frontAt(s, d int) *front {
	return c.front(s - d)
}

// recycleBefore releases all wavefronts with score below s. Used by the
// score-only and bisect passes, which only ever look back a bounded
// number of scores.
func (c *component) recycleBefore(s int) {
	if s > len(c.fronts) {
		s = len(c.fronts)
	}
	for i := 0; i < s; i++ {
		if c.fronts[i] != nil {
			recycleFront(c.fronts[i])
			c.fronts[i] = nil
		}
	}
}
