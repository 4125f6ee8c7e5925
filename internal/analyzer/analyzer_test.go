// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neednlab/cn-pii-anonymization/internal/config"
	"github.com/neednlab/cn-pii-anonymization/internal/detector"
	"github.com/neednlab/cn-pii-anonymization/internal/extraction"
)

const validID = "110101199001011237"

func newAnalyzer(t *testing.T, extract extraction.Func) *Analyzer {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	a, err := New(cfg, extract, nil)
	require.NoError(t, err)
	return a
}

func TestAnalyze_EmptyText(t *testing.T) {
	a := newAnalyzer(t, nil)

	spans, err := a.Analyze(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestAnalyze_NoPII(t *testing.T) {
	a := newAnalyzer(t, nil)

	spans, err := a.Analyze(context.Background(), "今天天气不错。")
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestAnalyze_SingleIDCardSpan(t *testing.T) {
	a := newAnalyzer(t, nil)

	// Sub-ranges of a valid ID independently match PHONE and BANK_CARD
	// shaped patterns; only the ID_CARD span may survive.
	spans, err := a.Analyze(context.Background(), validID)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, detector.CategoryIDCard, spans[0].Category)
	assert.Equal(t, validID, spans[0].Text)
	assert.Equal(t, 0, spans[0].Start)
	assert.Equal(t, len(validID), spans[0].End)
}

func TestAnalyze_MixedDocument(t *testing.T) {
	a := newAnalyzer(t, func(text string) ([]extraction.Entity, error) {
		return []extraction.Entity{
			{Category: detector.CategoryName, Text: "张伟", Probability: 0.8},
		}, nil
	})

	text := "张伟,电话13812345678,邮箱zhang.wei@example.com,身份证" + validID
	spans, err := a.Analyze(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, spans, 4)

	byCategory := map[detector.Category]detector.Span{}
	for _, s := range spans {
		byCategory[s.Category] = s
	}
	assert.Equal(t, "张伟", byCategory[detector.CategoryName].Text)
	assert.Equal(t, "13812345678", byCategory[detector.CategoryPhone].Text)
	assert.Equal(t, "zhang.wei@example.com", byCategory[detector.CategoryEmail].Text)
	assert.Equal(t, validID, byCategory[detector.CategoryIDCard].Text)

	// Output is ordered and disjoint.
	for i := 1; i < len(spans); i++ {
		assert.GreaterOrEqual(t, spans[i].Start, spans[i-1].End)
	}
}

func TestAnalyze_ModelRecordsThroughAliases(t *testing.T) {
	// Raw model output uses Chinese entity keys; normalization maps them
	// to categories before the pass-through recognizers run.
	entities := extraction.Normalize([]extraction.Record{
		{EntityKey: "人名", Text: "张伟", Probability: 0.9},
		{EntityKey: "具体地址", Text: "北京市朝阳区建国路88号", Probability: 0.85},
		{EntityKey: "职位", Text: "经理", Probability: 0.95},
	})
	a := newAnalyzer(t, extraction.Static(entities))

	spans, err := a.Analyze(context.Background(), "张伟,住北京市朝阳区建国路88号,职务经理")
	require.NoError(t, err)
	require.Len(t, spans, 2)
	assert.Equal(t, detector.CategoryName, spans[0].Category)
	assert.Equal(t, "张伟", spans[0].Text)
	assert.Equal(t, detector.CategoryAddress, spans[1].Category)
	assert.Equal(t, "北京市朝阳区建国路88号", spans[1].Text)
}

func TestAnalyze_ThresholdFiltersLowScores(t *testing.T) {
	a := newAnalyzer(t, func(text string) ([]extraction.Entity, error) {
		return []extraction.Entity{
			{Category: detector.CategoryName, Text: "张伟", Probability: 0.1},
		}, nil
	})

	spans, err := a.Analyze(context.Background(), "联系人张伟")
	require.NoError(t, err)
	assert.Empty(t, spans)
}

func TestAnalyze_DenyListWithoutModel(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	cfg.Names.DenyList = []string{"李四"}
	a, err := New(cfg, nil, nil)
	require.NoError(t, err)

	text := "经办人李四已确认"
	spans, err := a.Analyze(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, spans, 1)
	assert.Equal(t, detector.CategoryName, spans[0].Category)
	assert.Equal(t, "李四", spans[0].Text)
	assert.Equal(t, 1.0, spans[0].Score)
	assert.Equal(t, detector.SourceDenyList, spans[0].Source)
}

func TestAnalyze_ExtractionErrorPropagates(t *testing.T) {
	a := newAnalyzer(t, func(text string) ([]extraction.Entity, error) {
		return nil, errors.New("model unavailable")
	})

	_, err := a.Analyze(context.Background(), "联系人张伟")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model unavailable")
}

func TestAnalyze_CancelledContext(t *testing.T) {
	a := newAnalyzer(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, "13812345678")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew_InvalidConfigFails(t *testing.T) {
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	delete(cfg.Priorities, string(detector.CategoryEmail))

	_, err = New(cfg, nil, nil)
	assert.Error(t, err)
}
