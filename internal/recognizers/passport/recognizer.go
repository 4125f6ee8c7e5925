// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package passport detects passport numbers: letter-prefixed digit runs in
// strict and generic shapes.
package passport

import (
	"regexp"
	"sort"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
)

const (
	strictConfidence  = 0.85
	genericConfidence = 0.60
)

// Recognizer implements detector.Recognizer for the PASSPORT category.
type Recognizer struct {
	strict  *regexp.Regexp
	generic *regexp.Regexp
}

// NewRecognizer compiles the passport patterns once.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		strict:  regexp.MustCompile(`\b[A-Z]{2}\d{8}\b`),
		generic: regexp.MustCompile(`\b[A-Z]{1,2}\d{6,10}\b`),
	}
}

// Category implements detector.Recognizer.
func (r *Recognizer) Category() detector.Category { return detector.CategoryPassport }

// Recognize returns passport candidates; when the strict and generic
// patterns claim overlapping ranges the strict match wins.
func (r *Recognizer) Recognize(text string) []detector.Candidate {
	var raw []detector.Candidate
	for _, loc := range r.strict.FindAllStringIndex(text, -1) {
		raw = append(raw, candidate(loc, strictConfidence))
	}
	for _, loc := range r.generic.FindAllStringIndex(text, -1) {
		raw = append(raw, candidate(loc, genericConfidence))
	}
	return mergeOverlapping(raw)
}

func candidate(loc []int, score float64) detector.Candidate {
	return detector.Candidate{
		Category: detector.CategoryPassport,
		Start:    loc[0],
		End:      loc[1],
		Score:    score,
		Source:   detector.SourcePattern,
	}
}

func mergeOverlapping(candidates []detector.Candidate) []detector.Candidate {
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Start < candidates[j].Start
	})

	var merged []detector.Candidate
	for _, c := range candidates {
		overlaps := false
		for _, m := range merged {
			if c.Overlaps(m) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			merged = append(merged, c)
		}
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Start < merged[j].Start })
	return merged
}
