// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package idcard detects 18-character resident identity card numbers
// (GB 11643), including a recovery path for 19-digit runs produced by
// OCR noise.
package idcard

import (
	"regexp"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
	"github.com/neednlab/cn-pii-anonymization/internal/validators"
)

const (
	exactConfidence    = 0.95
	repairedConfidence = 0.90
)

// Recognizer implements detector.Recognizer for the ID_CARD category.
type Recognizer struct {
	exact    *regexp.Regexp
	nineteen *regexp.Regexp
}

// NewRecognizer compiles the ID card patterns once.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		// 18 characters, optionally space-separated, ending in a digit or X.
		exact: regexp.MustCompile(`[1-9](?: ?[0-9]){16} ?[0-9Xx]`),
		// 19 consecutive digits, the signature of one extra OCR digit.
		nineteen: regexp.MustCompile(`[1-9](?: ?[0-9]){18}`),
	}
}

// Category implements detector.Recognizer.
func (r *Recognizer) Category() detector.Category { return detector.CategoryIDCard }

// Recognize returns candidates for checksum-valid ID numbers and for
// 19-digit runs that become valid after removing a single digit.
func (r *Recognizer) Recognize(text string) []detector.Candidate {
	var out []detector.Candidate

	// Longer 19-digit runs are claimed first so the exact pattern does not
	// report a checksum-invalid 18-char slice of the same run.
	claimed := make(map[int]bool)
	for _, loc := range r.nineteen.FindAllStringIndex(text, -1) {
		if !cleanBoundaries(text, loc[0], loc[1]) {
			continue
		}
		digits := stripSpaces(text[loc[0]:loc[1]])
		if len(digits) != 19 {
			continue
		}
		if _, ok := validators.RepairNationalID(digits); !ok {
			continue
		}
		for i := loc[0]; i < loc[1]; i++ {
			claimed[i] = true
		}
		out = append(out, detector.Candidate{
			Category: detector.CategoryIDCard,
			Start:    loc[0],
			End:      loc[1],
			Score:    repairedConfidence,
			Source:   detector.SourcePattern,
		})
	}

	for _, loc := range r.exact.FindAllStringIndex(text, -1) {
		if claimed[loc[0]] || claimed[loc[1]-1] {
			continue
		}
		if !cleanBoundaries(text, loc[0], loc[1]) {
			continue
		}
		id := stripSpaces(text[loc[0]:loc[1]])
		if len(id) != 18 || !validators.ValidNationalID(id) {
			continue
		}
		out = append(out, detector.Candidate{
			Category: detector.CategoryIDCard,
			Start:    loc[0],
			End:      loc[1],
			Score:    exactConfidence,
			Source:   detector.SourcePattern,
		})
	}

	return out
}

// cleanBoundaries rejects matches glued to adjacent ASCII letters, digits,
// or an X that would extend the run.
func cleanBoundaries(text string, start, end int) bool {
	if start > 0 {
		b := text[start-1]
		if isDigit(b) || isLetter(b) {
			return false
		}
	}
	if end < len(text) {
		b := text[end]
		if isDigit(b) || isLetter(b) {
			return false
		}
	}
	return true
}

func stripSpaces(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' {
			out = append(out, s[i])
		}
	}
	return string(out)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
