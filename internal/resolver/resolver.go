// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resolver turns the union of raw candidates into an
// interval-disjoint set of spans using a fixed category-priority ranking.
package resolver

import (
	"fmt"
	"sort"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
)

// Resolver holds the immutable category-priority table. Lower numbers
// outrank higher ones. Safe to share across concurrent calls.
type Resolver struct {
	priorities map[detector.Category]int
}

// New validates the priority table and returns a resolver. Every category
// must have an entry; a missing one would silently leak unredacted text,
// so this fails instead.
func New(priorities map[detector.Category]int) (*Resolver, error) {
	for _, c := range detector.Categories {
		if _, ok := priorities[c]; !ok {
			return nil, fmt.Errorf("priority table missing category %s", c)
		}
	}
	table := make(map[detector.Category]int, len(priorities))
	for c, p := range priorities {
		if !c.Valid() {
			return nil, fmt.Errorf("priority table has unknown category %s", c)
		}
		table[c] = p
	}
	return &Resolver{priorities: table}, nil
}

// Priority returns the rank of a category.
func (r *Resolver) Priority(c detector.Category) int { return r.priorities[c] }

// Resolve reduces candidates to a non-overlapping set. Candidates are
// processed in (start, end) order; a candidate replaces every overlapping
// accepted candidate it strictly outranks, and is discarded if any
// overlapping accepted candidate outranks or ties it. Ties therefore favor
// the earlier-accepted candidate.
func (r *Resolver) Resolve(candidates []detector.Candidate) []detector.Candidate {
	if len(candidates) == 0 {
		return nil
	}

	sorted := make([]detector.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	var accepted []detector.Candidate
	for _, c := range sorted {
		var overlapping []int
		for i, a := range accepted {
			if c.Overlaps(a) {
				overlapping = append(overlapping, i)
			}
		}
		if len(overlapping) == 0 {
			accepted = append(accepted, c)
			continue
		}

		outranksAll := true
		for _, i := range overlapping {
			if r.priorities[c.Category] >= r.priorities[accepted[i].Category] {
				outranksAll = false
				break
			}
		}
		if !outranksAll {
			continue
		}

		kept := accepted[:0]
		skip := make(map[int]bool, len(overlapping))
		for _, i := range overlapping {
			skip[i] = true
		}
		for i, a := range accepted {
			if !skip[i] {
				kept = append(kept, a)
			}
		}
		accepted = append(kept, c)
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].Start < accepted[j].Start })
	return accepted
}
