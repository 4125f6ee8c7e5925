// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package ocrmerge rebuilds logical text runs from OCR fragments. An OCR
// backend splits a card number printed with group spacing into several
// boxed tokens; detection only works on the concatenated run, and
// redaction needs the way back from run offsets to the source pixel boxes.
package ocrmerge

import (
	"sort"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
)

const (
	// DefaultLineTolerance is the maximum top-edge distance, in pixels,
	// for two fragments to count as the same visual line.
	DefaultLineTolerance = 5
	// DefaultGapTolerance is the maximum horizontal gap, in pixels,
	// bridged when concatenating fragments within a line. 20px spans
	// typical OCR token spacing for digit-group runs.
	DefaultGapTolerance = 20
)

// Merger groups OCR fragments into runs. Immutable after construction.
type Merger struct {
	lineTolerance int
	gapTolerance  int
}

// NewMerger returns a merger with the given pixel tolerances; values below
// zero fall back to the defaults.
func NewMerger(lineTolerance, gapTolerance int) *Merger {
	if lineTolerance < 0 {
		lineTolerance = DefaultLineTolerance
	}
	if gapTolerance < 0 {
		gapTolerance = DefaultGapTolerance
	}
	return &Merger{lineTolerance: lineTolerance, gapTolerance: gapTolerance}
}

// segment records which byte range of a run's text one fragment supplied.
type segment struct {
	start, end int
	box        detector.PixelRegion
}

// Run is a synthetic text built from one or more fragments on a line,
// together with the offset map back to their pixel boxes. A run lives for
// the duration of one image-redaction call.
type Run struct {
	Text     string
	segments []segment
}

// Region returns the union of the boxes of every fragment whose
// contributed byte range intersects [start, end). ok is false when the
// span touches no fragment.
func (r *Run) Region(start, end int) (detector.PixelRegion, bool) {
	var region detector.PixelRegion
	found := false
	for _, s := range r.segments {
		if start < s.end && s.start < end {
			if !found {
				region = s.box
				found = true
			} else {
				region = region.Union(s.box)
			}
		}
	}
	return region, found
}

// Merge groups fragments into visual lines and concatenates horizontally
// close neighbors into runs.
//
// Line grouping is transitive: fragments A and C end up on one line when
// both are within tolerance of B, even if A and C themselves are not. A
// sequential left-to-right pass misses such chains when gaps are uneven,
// so grouping runs over a union-find structure instead.
func (m *Merger) Merge(fragments []detector.TextFragment) []Run {
	kept := make([]detector.TextFragment, 0, len(fragments))
	for _, f := range fragments {
		if f.Text != "" {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	parent := make([]int, len(kept))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[rb] = ra
		}
	}

	for i := 0; i < len(kept); i++ {
		for j := i + 1; j < len(kept); j++ {
			if absInt(kept[i].Top-kept[j].Top) <= m.lineTolerance {
				union(i, j)
			}
		}
	}

	lines := make(map[int][]detector.TextFragment)
	var roots []int
	for i, f := range kept {
		root := find(i)
		if _, seen := lines[root]; !seen {
			roots = append(roots, root)
		}
		lines[root] = append(lines[root], f)
	}
	// Lines ordered top to bottom for deterministic output.
	sort.Slice(roots, func(a, b int) bool {
		return kept[roots[a]].Top < kept[roots[b]].Top ||
			(kept[roots[a]].Top == kept[roots[b]].Top && roots[a] < roots[b])
	})

	var runs []Run
	for _, root := range roots {
		runs = append(runs, m.mergeLine(lines[root])...)
	}
	return runs
}

// mergeLine sorts a line's fragments left to right and concatenates
// neighbors whose horizontal gap is within tolerance. Overlapping boxes
// (negative gap) always merge.
func (m *Merger) mergeLine(line []detector.TextFragment) []Run {
	sort.Slice(line, func(i, j int) bool { return line[i].Left < line[j].Left })

	var runs []Run
	current := newRun(line[0])
	rightEdge := line[0].Left + line[0].Width

	for _, f := range line[1:] {
		if f.Left-rightEdge <= m.gapTolerance {
			current.append(f)
			if edge := f.Left + f.Width; edge > rightEdge {
				rightEdge = edge
			}
		} else {
			runs = append(runs, current)
			current = newRun(f)
			rightEdge = f.Left + f.Width
		}
	}
	return append(runs, current)
}

func newRun(f detector.TextFragment) Run {
	return Run{
		Text:     f.Text,
		segments: []segment{{start: 0, end: len(f.Text), box: f.Box()}},
	}
}

func (r *Run) append(f detector.TextFragment) {
	start := len(r.Text)
	r.Text += f.Text
	r.segments = append(r.segments, segment{start: start, end: len(r.Text), box: f.Box()})
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
