// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package phone detects mainland-China mobile phone numbers: an optional
// +86/0086 prefix followed by 11 digits starting with 1 and a second digit
// in 3-9, in compact or space/hyphen separated form.
package phone

import (
	"regexp"
	"sort"
	"strings"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
	"github.com/neednlab/cn-pii-anonymization/internal/validators"
)

const (
	compactConfidence   = 0.85
	separatedConfidence = 0.75
)

// Recognizer implements detector.Recognizer for the PHONE category.
type Recognizer struct {
	compact   *regexp.Regexp
	separated *regexp.Regexp
}

// NewRecognizer compiles the phone patterns once; the recognizer is
// immutable and safe for concurrent use.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		compact:   regexp.MustCompile(`(?:\+86|0086)?1[3-9]\d{9}`),
		separated: regexp.MustCompile(`(?:\+86|0086)?1[3-9]\d[ -]\d{4}[ -]\d{4}`),
	}
}

// Category implements detector.Recognizer.
func (r *Recognizer) Category() detector.Category { return detector.CategoryPhone }

// Recognize returns one candidate per phone-shaped run that survives
// normalization and the ID-card/bank-card substring checks.
func (r *Recognizer) Recognize(text string) []detector.Candidate {
	var raw []detector.Candidate
	raw = append(raw, r.findAll(text, r.compact, compactConfidence)...)
	raw = append(raw, r.findAll(text, r.separated, separatedConfidence)...)
	return mergeOverlapping(raw)
}

func (r *Recognizer) findAll(text string, pattern *regexp.Regexp, score float64) []detector.Candidate {
	var out []detector.Candidate
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		match := text[loc[0]:loc[1]]
		if !validPhone(match) {
			continue
		}
		// A phone-shaped run embedded in a longer digit sequence is far more
		// likely a slice of an ID or card number than a real phone number.
		if partOfNationalID(text, loc[0], loc[1]) {
			continue
		}
		if partOfBankCard(text, loc[0], loc[1]) {
			continue
		}
		out = append(out, detector.Candidate{
			Category: detector.CategoryPhone,
			Start:    loc[0],
			End:      loc[1],
			Score:    score,
			Source:   detector.SourcePattern,
		})
	}
	return out
}

// validPhone normalizes away separators and dialing prefixes, then checks
// the canonical 11-digit shape.
func validPhone(match string) bool {
	clean := strings.NewReplacer(" ", "", "-", "", "+", "").Replace(match)
	clean = strings.TrimPrefix(clean, "0086")
	clean = strings.TrimPrefix(clean, "86")
	if len(clean) != 11 {
		return false
	}
	for i := 0; i < len(clean); i++ {
		if clean[i] < '0' || clean[i] > '9' {
			return false
		}
	}
	return clean[0] == '1' && clean[1] >= '3' && clean[1] <= '9'
}

// partOfNationalID reports whether the matched run extends, within the
// surrounding digit run, to an 18-character string that passes the resident
// ID checksum.
func partOfNationalID(text string, start, end int) bool {
	prefix := 0
	for i := start - 1; i >= 0 && isDigit(text[i]); i-- {
		prefix++
	}
	suffix := 0
	for i := end; i < len(text) && (isDigit(text[i]) || text[i] == 'X' || text[i] == 'x'); i++ {
		suffix++
	}

	if prefix < 6 || suffix < 1 {
		return false
	}
	candidate := text[start-prefix : end+suffix]
	return len(candidate) == 18 && validators.ValidNationalID(candidate)
}

// partOfBankCard reports whether the matched 11 digits sit inside a digit
// run long enough to be a 16-19 digit card number: five or more extra
// adjacent digits on either side combined.
func partOfBankCard(text string, start, end int) bool {
	extra := 0
	for i := start - 1; i >= 0 && isDigit(text[i]); i-- {
		extra++
	}
	for i := end; i < len(text) && isDigit(text[i]); i++ {
		extra++
	}
	return extra >= 5
}

// mergeOverlapping keeps the highest-scoring candidate for each contested
// range: the compact and separated patterns can both claim the same digits.
func mergeOverlapping(candidates []detector.Candidate) []detector.Candidate {
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Start != candidates[j].Start {
			return candidates[i].Start < candidates[j].Start
		}
		return candidates[i].Score > candidates[j].Score
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
	return merged
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
