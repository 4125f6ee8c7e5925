// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		key  string
		want detector.Category
		ok   bool
	}{
		{"姓名", detector.CategoryName, true},
		{"人名", detector.CategoryName, true},
		{"NAME", detector.CategoryName, true},
		{"地址", detector.CategoryAddress, true},
		{"具体地址", detector.CategoryAddress, true},
		{"ADDRESS", detector.CategoryAddress, true},
		{"身份证", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := NormalizeKey(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_DropsUnknownKeys(t *testing.T) {
	entities := Normalize([]Record{
		{EntityKey: "人名", Text: "张伟", Probability: 0.92},
		{EntityKey: "电话", Text: "13812345678", Probability: 0.99},
		{EntityKey: "具体地址", Text: "北京市朝阳区建国路88号", Probability: 0.81},
	})

	require.Len(t, entities, 2)
	assert.Equal(t, Entity{Category: detector.CategoryName, Text: "张伟", Probability: 0.92}, entities[0])
	assert.Equal(t, Entity{Category: detector.CategoryAddress, Text: "北京市朝阳区建国路88号", Probability: 0.81}, entities[1])
}

func TestStatic_ServesSameEntitiesForAnyText(t *testing.T) {
	entities := []Entity{{Category: detector.CategoryName, Text: "张伟", Probability: 0.92}}
	fn := Static(entities)

	for _, text := range []string{"张伟在北京", "无关文本", ""} {
		got, err := fn(text)
		require.NoError(t, err)
		assert.Equal(t, entities, got)
	}
}
