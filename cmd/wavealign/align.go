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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/seqalign/wavefront"
	"github.com/seqalign/wavefront/cigar"
)

var alignOpts struct {
	infile string

	mismatch int32
	gapOpen  int32
	gapExt   int32
	gapOpen2 int32
	gapExt2  int32
	twoPiece bool

	memory    string
	scoreOnly bool

	band        []int
	wfAdaptive  []int
	maxSteps    int64
	maxMemoryMB int64

	noOutput bool

	profileCPU bool
	profileMem bool
}

var alignCmd = &cobra.Command{
	Use:   "align [query target]",
	Short: "Align sequence pairs and print scores and edit scripts",
	Long: `Align a query against a target sequence.

Examples:
  wavealign align ACCATACTCG AGGATGCTCG
  wavealign align -i pairs.txt.gz --memory bisect
  wavealign align --two-piece --gap-open2 24 --gap-ext2 1 -i pairs.txt`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if alignOpts.profileCPU {
			defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
		} else if alignOpts.profileMem {
			defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
		}

		cfg, err := buildConfig()
		if err != nil {
			return err
		}
		a, err := wavefront.NewAligner(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		outfh := bufio.NewWriter(os.Stdout)
		defer outfh.Flush()

		if alignOpts.infile == "" {
			if len(args) != 2 {
				return fmt.Errorf("give two sequences, or an input file with -i")
			}
			return alignPair(outfh, a, []byte(args[0]), []byte(args[1]))
		}
		return alignFile(outfh, a, alignOpts.infile)
	},
}

func init() {
	f := alignCmd.Flags()
	f.StringVarP(&alignOpts.infile, "infile", "i", "", "input file of sequence pairs ('>query' and '<target' lines, .gz supported)")

	f.Int32VarP(&alignOpts.mismatch, "mismatch", "x", 4, "mismatch penalty")
	f.Int32VarP(&alignOpts.gapOpen, "gap-open", "o", 6, "gap opening penalty")
	f.Int32VarP(&alignOpts.gapExt, "gap-ext", "e", 2, "gap extension penalty")
	f.BoolVar(&alignOpts.twoPiece, "two-piece", false, "use two-piece gap-affine penalties")
	f.Int32Var(&alignOpts.gapOpen2, "gap-open2", 24, "second gap opening penalty (with --two-piece)")
	f.Int32Var(&alignOpts.gapExt2, "gap-ext2", 1, "second gap extension penalty (with --two-piece)")

	f.StringVarP(&alignOpts.memory, "memory", "M", "full", "memory strategy: full, reduced, aggressive or bisect")
	f.BoolVarP(&alignOpts.scoreOnly, "score-only", "s", false, "compute scores only, skip edit scripts")

	f.IntSliceVar(&alignOpts.band, "band", nil, "static band as min,max diagonal (e.g. --band=-10,10)")
	f.IntSliceVar(&alignOpts.wfAdaptive, "wf-adaptive", nil, "adaptive reduction as min-length,max-dist-diff,steps (e.g. --wf-adaptive=10,50,1)")
	f.Int64Var(&alignOpts.maxSteps, "max-steps", 0, "abort after this many score steps (0 = unlimited)")
	f.Int64Var(&alignOpts.maxMemoryMB, "max-memory", 0, "approximate memory cap in MiB (0 = unlimited)")

	f.BoolVarP(&alignOpts.noOutput, "no-output", "N", false, "suppress alignment output (for benchmarking)")

	f.BoolVar(&alignOpts.profileCPU, "profile-cpu", false, "write cpu.pprof (go tool pprof -http=:8080 cpu.pprof)")
	f.BoolVar(&alignOpts.profileMem, "profile-mem", false, "write mem.pprof")
}

func buildConfig() (*wavefront.Config, error) {
	b := wavefront.NewBuilder()

	if alignOpts.twoPiece {
		b.Penalties(wavefront.TwoPieceAffine(0, alignOpts.mismatch,
			alignOpts.gapOpen, alignOpts.gapExt,
			alignOpts.gapOpen2, alignOpts.gapExt2))
	} else {
		b.Penalties(wavefront.SingleAffine(0, alignOpts.mismatch,
			alignOpts.gapOpen, alignOpts.gapExt))
	}

	switch strings.ToLower(alignOpts.memory) {
	case "full":
		b.MemoryStrategy(wavefront.FullMemory)
	case "reduced":
		b.MemoryStrategy(wavefront.ReducedMemory)
	case "aggressive":
		b.MemoryStrategy(wavefront.AggressiveMemory)
	case "bisect":
		b.MemoryStrategy(wavefront.BisectMemory)
	default:
		return nil, fmt.Errorf("unknown memory strategy: %s", alignOpts.memory)
	}

	if alignOpts.scoreOnly {
		b.Scope(wavefront.ScoreOnly)
	}
	if len(alignOpts.band) > 0 {
		if len(alignOpts.band) != 2 {
			return nil, fmt.Errorf("--band needs exactly two values")
		}
		b.Heuristic(wavefront.BandedStatic(alignOpts.band[0], alignOpts.band[1]))
	}
	if len(alignOpts.wfAdaptive) > 0 {
		if len(alignOpts.wfAdaptive) != 3 {
			return nil, fmt.Errorf("--wf-adaptive needs exactly three values")
		}
		b.Heuristic(wavefront.WFAdaptive(alignOpts.wfAdaptive[0],
			alignOpts.wfAdaptive[1], alignOpts.wfAdaptive[2]))
	}
	if alignOpts.maxSteps > 0 {
		b.MaxSteps(int(alignOpts.maxSteps))
	}
	if alignOpts.maxMemoryMB > 0 {
		b.MaxMemory(alignOpts.maxMemoryMB << 20)
	}

	return b.Build()
}

func alignPair(w io.Writer, a *wavefront.Aligner, q, t []byte) error {
	st := a.Align(q, t)
	if alignOpts.noOutput {
		return nil
	}
	if !st.Ok() {
		fmt.Fprintf(w, "status  %s\n\n", st)
		return nil
	}

	if score, ok := a.Score().Value(); ok {
		fmt.Fprintf(w, "score   %d\n", score)
	}
	if alignOpts.scoreOnly {
		fmt.Fprintln(w)
		return nil
	}

	es, err := a.EditScript()
	if err != nil {
		return err
	}
	ops := es.AppendOps(nil)

	Q, A, T := cigar.AlignmentText(q, t, ops)
	st2 := cigar.Collect(ops)

	fmt.Fprintf(w, "query   %s\n", Q)
	fmt.Fprintf(w, "        %s\n", A)
	fmt.Fprintf(w, "target  %s\n", T)
	fmt.Fprintf(w, "cigar   %s\n", cigar.RunLength(ops))
	fmt.Fprintf(w, "length: %d, matches: %d (%.2f%%), gaps: %d, gap regions: %d\n\n",
		st2.Len, st2.Matches, st2.Identity()*100,
		st2.Insertions+st2.Deletions, st2.GapRegions)
	return nil
}

func alignFile(w io.Writer, a *wavefront.Aligner, path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", path, err)
	}
	defer fh.Close()

	var r io.Reader = fh
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(fh)
		if err != nil {
			return fmt.Errorf("failed to read gzip file %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 1<<20), 1<<30)
	for scanner.Scan() {
		q := scanner.Text()
		if !scanner.Scan() {
			break
		}
		t := scanner.Text()

		if len(q) < 1 || len(t) < 1 || q[0] != '>' || t[0] != '<' {
			return fmt.Errorf("malformed pair in %s: expected '>query' then '<target'", path)
		}
		if err := alignPair(w, a, []byte(q[1:]), []byte(t[1:])); err != nil {
			return err
		}
	}
	return scanner.Err()
}
