// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package passport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecognize_StrictForm(t *testing.T) {
	r := NewRecognizer()

	text := "护照号 EA12345678 有效"
	got := r.Recognize(text)
	require.Len(t, got, 1)
	assert.Equal(t, "EA12345678", text[got[0].Start:got[0].End])
	assert.Equal(t, strictConfidence, got[0].Score)
}

func TestRecognize_GenericForm(t *testing.T) {
	r := NewRecognizer()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"single letter", "passport G12345678 issued", "G12345678"},
		{"short digits", "旧护照 P123456", "P123456"},
		{"two letters seven digits", "doc AB1234567", "AB1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Recognize(tt.text)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, tt.text[got[0].Start:got[0].End])
			assert.Equal(t, genericConfidence, got[0].Score)
		})
	}
}

func TestRecognize_StrictWinsOverlap(t *testing.T) {
	r := NewRecognizer()

	// Both patterns match the same run; only the strict finding survives.
	got := r.Recognize("EA12345678")
	require.Len(t, got, 1)
	assert.Equal(t, strictConfidence, got[0].Score)
}

func TestRecognize_Rejects(t *testing.T) {
	r := NewRecognizer()

	tests := []struct {
		name string
		text string
	}{
		{"lowercase letters", "ea12345678"},
		{"too few digits", "AB12345"},
		{"glued to word", "CODEA12345678X"},
		{"three letters", "ABC1234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, r.Recognize(tt.text))
		})
	}
}

func TestRecognize_MultipleFindingsSorted(t *testing.T) {
	r := NewRecognizer()

	text := "G12345678 then EA12345678"
	got := r.Recognize(text)
	require.Len(t, got, 2)
	assert.Less(t, got[0].Start, got[1].Start)
	assert.Equal(t, genericConfidence, got[0].Score)
	assert.Equal(t, strictConfidence, got[1].Score)
}
