// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
	"github.com/neednlab/cn-pii-anonymization/internal/formatters"
)

func TestFormat_MasksMatchByDefault(t *testing.T) {
	f := NewFormatter()

	out, err := f.Format(&formatters.Result{
		Spans: []detector.Span{
			{Category: detector.CategoryPhone, Start: 0, End: 11, Score: 0.85, Source: detector.SourcePattern, Text: "13812345678"},
		},
	}, formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)

	assert.Contains(t, out, "PHONE")
	assert.Contains(t, out, "138****5678")
	assert.NotContains(t, out, "13812345678")
}

func TestFormat_BankCardShowsIssuer(t *testing.T) {
	f := NewFormatter()

	out, err := f.Format(&formatters.Result{
		Spans: []detector.Span{
			{Category: detector.CategoryBankCard, Start: 0, End: 16, Score: 0.95, Source: detector.SourcePattern, Text: "6222021234567894"},
		},
	}, formatters.FormatterOptions{NoColor: true, ShowMatch: true})
	require.NoError(t, err)

	assert.Contains(t, out, "6222021234567894")
	assert.Contains(t, out, "工商银行")
}

func TestFormat_NoFindings(t *testing.T) {
	f := NewFormatter()

	out, err := f.Format(&formatters.Result{}, formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)
	assert.Contains(t, out, "No PII found")
}

func TestFormat_AnonymizedSection(t *testing.T) {
	f := NewFormatter()

	out, err := f.Format(&formatters.Result{
		Spans: []detector.Span{
			{Category: detector.CategoryPhone, Start: 0, End: 11, Score: 0.85, Source: detector.SourcePattern, Text: "13812345678"},
		},
		Anonymized: "138****5678",
	}, formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)
	assert.Contains(t, out, "Anonymized text:")
}

func TestFormat_RegionFindings(t *testing.T) {
	f := NewFormatter()

	out, err := f.Format(&formatters.Result{
		Regions: []detector.RegionFinding{
			{Category: detector.CategoryIDCard, Score: 0.95, Text: "110101199001011237",
				Region: detector.PixelRegion{Left: 10, Top: 20, Right: 200, Bottom: 40}},
		},
	}, formatters.FormatterOptions{NoColor: true})
	require.NoError(t, err)
	assert.Contains(t, out, "ID_CARD")
	assert.Contains(t, out, "(10,20)-(200,40)")
	assert.Contains(t, out, "110101********1237")
}
