// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package ocrmerge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
)

func frag(text string, left, top, width, height int) detector.TextFragment {
	return detector.TextFragment{Text: text, Left: left, Top: top, Width: width, Height: height, Confidence: 0.9}
}

func TestMerge_CardNumberSplitAcrossBoxes(t *testing.T) {
	m := NewMerger(DefaultLineTolerance, DefaultGapTolerance)

	// Three digit groups of a card number at 15-20px gaps on one line.
	runs := m.Merge([]detector.TextFragment{
		frag("62175", 10, 100, 50, 14),
		frag("6080", 75, 102, 40, 14),
		frag("0040", 135, 99, 40, 14),
	})
	require.Len(t, runs, 1)
	assert.Equal(t, "6217560800040", runs[0].Text)

	// Offsets 0-4 come from the first box only.
	region, ok := runs[0].Region(0, 5)
	require.True(t, ok)
	assert.Equal(t, detector.PixelRegion{Left: 10, Top: 100, Right: 60, Bottom: 114}, region)

	// A span crossing all three groups unions all three boxes.
	region, ok = runs[0].Region(2, 12)
	require.True(t, ok)
	assert.Equal(t, detector.PixelRegion{Left: 10, Top: 99, Right: 175, Bottom: 116}, region)
}

func TestMerge_TransitiveLineGrouping(t *testing.T) {
	m := NewMerger(5, 20)

	// Tops 100, 104, 108: A-B and B-C are within tolerance, A-C is not.
	// All three must still land on one line.
	runs := m.Merge([]detector.TextFragment{
		frag("aa", 0, 100, 20, 12),
		frag("bb", 25, 104, 20, 12),
		frag("cc", 50, 108, 20, 12),
	})
	require.Len(t, runs, 1)
	assert.Equal(t, "aabbcc", runs[0].Text)
}

func TestMerge_WideGapSplitsRuns(t *testing.T) {
	m := NewMerger(5, 20)

	runs := m.Merge([]detector.TextFragment{
		frag("left", 0, 50, 30, 12),
		frag("right", 200, 50, 30, 12),
	})
	require.Len(t, runs, 2)
	assert.Equal(t, "left", runs[0].Text)
	assert.Equal(t, "right", runs[1].Text)
}

func TestMerge_SeparateLines(t *testing.T) {
	m := NewMerger(5, 20)

	runs := m.Merge([]detector.TextFragment{
		frag("second", 0, 140, 40, 12),
		frag("first", 0, 100, 40, 12),
	})
	require.Len(t, runs, 2)
	assert.Equal(t, "first", runs[0].Text)
	assert.Equal(t, "second", runs[1].Text)
}

func TestMerge_OverlappingBoxesAlwaysMerge(t *testing.T) {
	m := NewMerger(5, 0)

	runs := m.Merge([]detector.TextFragment{
		frag("over", 0, 10, 30, 12),
		frag("lap", 25, 10, 30, 12),
	})
	require.Len(t, runs, 1)
	assert.Equal(t, "overlap", runs[0].Text)
}

func TestMerge_EmptyInputs(t *testing.T) {
	m := NewMerger(5, 20)

	assert.Empty(t, m.Merge(nil))
	assert.Empty(t, m.Merge([]detector.TextFragment{frag("", 0, 0, 10, 10)}))
}

func TestRegion_OutsideAnySegment(t *testing.T) {
	m := NewMerger(5, 20)

	runs := m.Merge([]detector.TextFragment{frag("abc", 0, 0, 30, 10)})
	require.Len(t, runs, 1)

	_, ok := runs[0].Region(3, 5)
	assert.False(t, ok)
}
