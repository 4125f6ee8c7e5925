// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package suppressions

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
)

func span(category detector.Category, text string) detector.Span {
	return detector.Span{Category: category, Start: 0, End: len(text), Score: 0.9, Text: text}
}

func tempManager(t *testing.T) *Manager {
	t.Helper()
	return NewManager(filepath.Join(t.TempDir(), "rules.yaml"))
}

func TestIsSuppressed_AfterAdd(t *testing.T) {
	m := tempManager(t)
	phone := span(detector.CategoryPhone, "13812345678")

	ok, _ := m.IsSuppressed(phone)
	assert.False(t, ok)

	require.NoError(t, m.Add(phone, "test fixture number", nil))

	ok, rule := m.IsSuppressed(phone)
	require.True(t, ok)
	assert.Equal(t, "test fixture number", rule.Reason)
	assert.Equal(t, string(detector.CategoryPhone), rule.Category)
}

func TestIsSuppressed_SameTextDifferentCategory(t *testing.T) {
	m := tempManager(t)
	require.NoError(t, m.Add(span(detector.CategoryPhone, "13812345678"), "fixture", nil))

	ok, _ := m.IsSuppressed(span(detector.CategoryName, "13812345678"))
	assert.False(t, ok)
}

func TestRulesPersistAcrossManagers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	phone := span(detector.CategoryPhone, "13812345678")

	m1 := NewManager(path)
	require.NoError(t, m1.Add(phone, "fixture", nil))

	m2 := NewManager(path)
	ok, _ := m2.IsSuppressed(phone)
	assert.True(t, ok)
}

func TestExpiredRuleIgnored(t *testing.T) {
	m := tempManager(t)
	phone := span(detector.CategoryPhone, "13812345678")

	past := time.Now().Add(-time.Hour)
	require.NoError(t, m.Add(phone, "expired", &past))

	ok, _ := m.IsSuppressed(phone)
	assert.False(t, ok)
}

func TestAdd_DuplicateFails(t *testing.T) {
	m := tempManager(t)
	phone := span(detector.CategoryPhone, "13812345678")

	require.NoError(t, m.Add(phone, "first", nil))
	assert.Error(t, m.Add(phone, "second", nil))
}

func TestGenerate_CreatesDisabledRules(t *testing.T) {
	m := tempManager(t)
	spans := []detector.Span{
		span(detector.CategoryPhone, "13812345678"),
		span(detector.CategoryEmail, "a@b.com"),
	}

	added, err := m.Generate(spans, "pending review")
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	// Disabled rules do not suppress.
	ok, _ := m.IsSuppressed(spans[0])
	assert.False(t, ok)

	// Re-generating adds nothing.
	added, err = m.Generate(spans, "pending review")
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Len(t, m.List(), 2)
}

func TestFilter(t *testing.T) {
	m := tempManager(t)
	phone := span(detector.CategoryPhone, "13812345678")
	email := span(detector.CategoryEmail, "a@b.com")
	require.NoError(t, m.Add(phone, "fixture", nil))

	got := m.Filter([]detector.Span{phone, email})
	require.Len(t, got, 1)
	assert.Equal(t, detector.CategoryEmail, got[0].Category)
}

func TestRemove(t *testing.T) {
	m := tempManager(t)
	phone := span(detector.CategoryPhone, "13812345678")
	require.NoError(t, m.Add(phone, "fixture", nil))

	rules := m.List()
	require.Len(t, rules, 1)
	require.NoError(t, m.Remove(rules[0].ID))

	ok, _ := m.IsSuppressed(phone)
	assert.False(t, ok)
	assert.Error(t, m.Remove("no-such-id"))
}

func TestSetEnabled(t *testing.T) {
	m := tempManager(t)
	phone := span(detector.CategoryPhone, "13812345678")
	require.NoError(t, m.Add(phone, "fixture", nil))

	m.SetEnabled(false)
	ok, _ := m.IsSuppressed(phone)
	assert.False(t, ok)
}
