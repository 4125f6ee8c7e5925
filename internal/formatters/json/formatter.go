// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package json implements machine-readable output.
package json

import (
	"encoding/json"
	"fmt"

	"github.com/neednlab/cn-pii-anonymization/internal/anonymizer"
	"github.com/neednlab/cn-pii-anonymization/internal/detector"
	"github.com/neednlab/cn-pii-anonymization/internal/formatters"
)

// Formatter renders results as indented JSON.
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter { return &Formatter{} }

// Name implements formatters.Formatter.
func (f *Formatter) Name() string { return "json" }

// Description implements formatters.Formatter.
func (f *Formatter) Description() string {
	return "JSON output for programmatic consumption"
}

// FileExtension implements formatters.Formatter.
func (f *Formatter) FileExtension() string { return ".json" }

// Format implements formatters.Formatter. Without ShowMatch the matched
// text is replaced by its masked form, so result files can be shared
// without re-leaking the values they report.
func (f *Formatter) Format(result *formatters.Result, options formatters.FormatterOptions) (string, error) {
	out := *result
	if !options.ShowMatch {
		mask := anonymizer.New(nil)
		out.Spans = append([]detector.Span(nil), result.Spans...)
		for i := range out.Spans {
			out.Spans[i].Text = mask.MaskText(out.Spans[i].Category, out.Spans[i].Text)
		}
		out.Regions = append([]detector.RegionFinding(nil), result.Regions...)
		for i := range out.Regions {
			out.Regions[i].Text = mask.MaskText(out.Regions[i].Category, out.Regions[i].Text)
		}
	}

	data, err := json.MarshalIndent(&out, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal results: %w", err)
	}
	return string(data), nil
}

func init() {
	formatters.Register(NewFormatter())
}
