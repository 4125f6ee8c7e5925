// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package email detects email addresses.
package email

import (
	"regexp"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
)

const emailConfidence = 0.85

// Recognizer implements detector.Recognizer for the EMAIL category.
type Recognizer struct {
	pattern *regexp.Regexp
}

// NewRecognizer compiles the email pattern once.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		pattern: regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
	}
}

// Category implements detector.Recognizer.
func (r *Recognizer) Category() detector.Category { return detector.CategoryEmail }

// Recognize returns one candidate per address-shaped match.
func (r *Recognizer) Recognize(text string) []detector.Candidate {
	var out []detector.Candidate
	for _, loc := range r.pattern.FindAllStringIndex(text, -1) {
		out = append(out, detector.Candidate{
			Category: detector.CategoryEmail,
			Start:    loc[0],
			End:      loc[1],
			Score:    emailConfidence,
			Source:   detector.SourcePattern,
		})
	}
	return out
}
