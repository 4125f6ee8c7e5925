// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
)

func TestRecognize_CompactNumber(t *testing.T) {
	r := NewRecognizer()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"bare", "联系电话13812345678,请尽快回复", "13812345678"},
		{"plus country code", "overseas: +8613812345678", "+8613812345678"},
		{"double zero country code", "008613912345678", "008613912345678"},
		{"start of text", "15900001111 是我的手机", "15900001111"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Recognize(tt.text)
			require.Len(t, got, 1)
			assert.Equal(t, detector.CategoryPhone, got[0].Category)
			assert.Equal(t, tt.want, tt.text[got[0].Start:got[0].End])
			assert.Equal(t, compactConfidence, got[0].Score)
			assert.Equal(t, detector.SourcePattern, got[0].Source)
		})
	}
}

func TestRecognize_SeparatedNumber(t *testing.T) {
	r := NewRecognizer()

	tests := []struct {
		name string
		text string
		want string
	}{
		{"hyphens", "tel: 138-1234-5678", "138-1234-5678"},
		{"spaces", "手机 139 8765 4321", "139 8765 4321"},
		{"prefix and hyphens", "+86 is not attached, but +86138-1234-5678 is", "+86138-1234-5678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Recognize(tt.text)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, tt.text[got[0].Start:got[0].End])
			assert.Equal(t, separatedConfidence, got[0].Score)
		})
	}
}

func TestRecognize_RejectsInvalidShapes(t *testing.T) {
	r := NewRecognizer()

	tests := []struct {
		name string
		text string
	}{
		{"second digit out of range", "12812345678"},
		{"too short", "1381234567"},
		{"landline", "010-12345678"},
		{"no digits", "请拨打客服热线"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, r.Recognize(tt.text))
		})
	}
}

func TestRecognize_SuppressedInsideNationalID(t *testing.T) {
	r := NewRecognizer()

	// Indices 6-16 of this valid resident ID form a phone-shaped run.
	text := "身份证号110101199001011237已登记"
	assert.Empty(t, r.Recognize(text))
}

func TestRecognize_SuppressedInsideCardNumber(t *testing.T) {
	r := NewRecognizer()

	// Phone-shaped prefix of a 19-digit card run: 8 extra digits adjacent.
	assert.Empty(t, r.Recognize("卡号1381234567890123456"))

	// Only 4 extra digits: not enough to look like a card number.
	got := r.Recognize("ref 138123456781234 end")
	assert.Len(t, got, 1)
}

func TestRecognize_CompactWinsOverlap(t *testing.T) {
	r := NewRecognizer()

	// The compact pattern claims the digits; the separated pattern must not
	// produce a second finding for the same range.
	got := r.Recognize("13812345678")
	require.Len(t, got, 1)
	assert.Equal(t, compactConfidence, got[0].Score)
}

func TestRecognize_MultipleNumbers(t *testing.T) {
	r := NewRecognizer()

	text := "A: 13812345678, B: 159-8765-4321"
	got := r.Recognize(text)
	require.Len(t, got, 2)
	assert.Equal(t, "13812345678", text[got[0].Start:got[0].End])
	assert.Equal(t, "159-8765-4321", text[got[1].Start:got[1].End])
}
