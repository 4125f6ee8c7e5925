// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package text implements human-readable terminal output.
package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/neednlab/cn-pii-anonymization/internal/anonymizer"
	"github.com/neednlab/cn-pii-anonymization/internal/detector"
	"github.com/neednlab/cn-pii-anonymization/internal/formatters"
	"github.com/neednlab/cn-pii-anonymization/internal/recognizers/bankcard"
)

// Formatter renders results as colorized terminal text.
type Formatter struct{}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter { return &Formatter{} }

// Name implements formatters.Formatter.
func (f *Formatter) Name() string { return "text" }

// Description implements formatters.Formatter.
func (f *Formatter) Description() string {
	return "Human-readable terminal output"
}

// FileExtension implements formatters.Formatter.
func (f *Formatter) FileExtension() string { return ".txt" }

// Format implements formatters.Formatter.
func (f *Formatter) Format(result *formatters.Result, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	header := color.New(color.FgWhite, color.Bold)
	categoryColor := color.New(color.FgRed, color.Bold)
	detail := color.New(color.FgCyan)
	mask := anonymizer.New(nil)

	var b strings.Builder

	total := len(result.Spans) + len(result.Regions)
	if total == 0 {
		b.WriteString("No PII found.\n")
		if result.Suppressed > 0 {
			fmt.Fprintf(&b, "%d finding(s) suppressed.\n", result.Suppressed)
		}
		return b.String(), nil
	}

	header.Fprintf(&b, "Found %d finding(s):\n\n", total)

	for i, s := range result.Spans {
		shown := s.Text
		if !options.ShowMatch {
			shown = mask.MaskText(s.Category, s.Text)
		}
		fmt.Fprintf(&b, "%d. ", i+1)
		categoryColor.Fprintf(&b, "%s", s.Category)
		fmt.Fprintf(&b, " [%d:%d] score %.2f", s.Start, s.End, s.Score)
		if s.Source != detector.SourcePattern {
			fmt.Fprintf(&b, " (%s)", s.Source)
		}
		b.WriteString("\n   ")
		detail.Fprint(&b, shown)
		if s.Category == detector.CategoryBankCard {
			if issuer, ok := bankcard.IssuerFor(strings.ReplaceAll(s.Text, " ", "")); ok {
				fmt.Fprintf(&b, "  (%s)", issuer)
			}
		}
		b.WriteString("\n")
	}

	for i, r := range result.Regions {
		shown := r.Text
		if !options.ShowMatch {
			shown = mask.MaskText(r.Category, r.Text)
		}
		fmt.Fprintf(&b, "%d. ", len(result.Spans)+i+1)
		categoryColor.Fprintf(&b, "%s", r.Category)
		fmt.Fprintf(&b, " region %s score %.2f\n   ", r.Region, r.Score)
		detail.Fprint(&b, shown)
		b.WriteString("\n")
	}

	if result.Suppressed > 0 {
		fmt.Fprintf(&b, "\n%d finding(s) suppressed.\n", result.Suppressed)
	}

	if result.Anonymized != "" {
		b.WriteString("\n")
		header.Fprintln(&b, "Anonymized text:")
		b.WriteString(result.Anonymized)
		b.WriteString("\n")
	}

	return b.String(), nil
}

func init() {
	formatters.Register(NewFormatter())
}
