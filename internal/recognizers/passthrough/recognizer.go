// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package passthrough adapts externally supplied name/address candidates
// into the common candidate shape. It does no scoring of its own: each
// model candidate carries its reported probability, and deny-list entries
// are emitted at full confidence.
package passthrough

import (
	"strings"
	"unicode/utf8"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
	"github.com/neednlab/cn-pii-anonymization/internal/extraction"
)

// Options tunes a pass-through recognizer.
type Options struct {
	// MinLength drops model candidates with fewer runes, filtering
	// fragment noise from the extraction model.
	MinLength int
	// DenyList entries always surface, at every occurrence, with score 1.0.
	DenyList []string
	// AllowList entries suppress model candidates with exactly matching text.
	AllowList []string
}

// Recognizer wraps one batch of extraction entities for a single category.
// It is built per analysis call; the entities do not outlive the call.
type Recognizer struct {
	category detector.Category
	entities []extraction.Entity
	opts     Options
	allow    map[string]bool
}

// New builds a pass-through recognizer over the given entities, keeping
// only those matching the category.
func New(category detector.Category, entities []extraction.Entity, opts Options) *Recognizer {
	allow := make(map[string]bool, len(opts.AllowList))
	for _, s := range opts.AllowList {
		allow[s] = true
	}
	var kept []extraction.Entity
	for _, e := range entities {
		if e.Category == category {
			kept = append(kept, e)
		}
	}
	return &Recognizer{category: category, entities: kept, opts: opts, allow: allow}
}

// Category implements detector.Recognizer.
func (r *Recognizer) Category() detector.Category { return r.category }

// Recognize emits every occurrence of each deny-list entry at full
// confidence, then locates each model entity's first unclaimed occurrence
// in the text and emits it with the model's probability. Deny-list ranges
// count as claimed, so a model entity naming the same text settles on the
// next free occurrence or is dropped.
func (r *Recognizer) Recognize(text string) []detector.Candidate {
	var out []detector.Candidate

	for _, entry := range r.opts.DenyList {
		if entry == "" {
			continue
		}
		for _, loc := range allOccurrences(text, entry) {
			out = append(out, detector.Candidate{
				Category: r.category,
				Start:    loc,
				End:      loc + len(entry),
				Score:    1.0,
				Source:   detector.SourceDenyList,
			})
		}
	}

	claimed := out
	for _, e := range r.entities {
		if e.Text == "" || r.allow[e.Text] {
			continue
		}
		if utf8.RuneCountInString(e.Text) < r.opts.MinLength {
			continue
		}
		start, end, ok := firstUnclaimed(text, e.Text, claimed)
		if !ok {
			continue
		}
		c := detector.Candidate{
			Category: r.category,
			Start:    start,
			End:      end,
			Score:    e.Probability,
			Source:   detector.SourceModel,
		}
		claimed = append(claimed, c)
		out = append(out, c)
	}

	return out
}

// firstUnclaimed finds the first occurrence of needle whose range does not
// overlap an already claimed candidate.
func firstUnclaimed(text, needle string, claimed []detector.Candidate) (int, int, bool) {
	from := 0
	for from <= len(text)-len(needle) {
		i := strings.Index(text[from:], needle)
		if i < 0 {
			return 0, 0, false
		}
		start := from + i
		end := start + len(needle)
		span := detector.Candidate{Start: start, End: end}
		blocked := false
		for _, c := range claimed {
			if span.Overlaps(c) {
				blocked = true
				break
			}
		}
		if !blocked {
			return start, end, true
		}
		from = start + 1
	}
	return 0, 0, false
}

func allOccurrences(text, needle string) []int {
	var locs []int
	from := 0
	for {
		i := strings.Index(text[from:], needle)
		if i < 0 {
			return locs
		}
		locs = append(locs, from+i)
		from += i + len(needle)
	}
}
