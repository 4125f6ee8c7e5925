// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package anonymizer replaces resolved spans with partially masked text.
// Masking keeps the conventional visible prefix/suffix per category, e.g.
// 138****5678 for phones.
package anonymizer

import (
	"sort"
	"strings"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
)

// Rule describes how one category is masked. Prefix/suffix counts are in
// runes, not bytes, so Chinese names mask correctly.
type Rule struct {
	MaskChar        rune
	KeepPrefix      int
	KeepSuffix      int
	MaskEmailDomain bool
}

// DefaultRules returns the per-category masking conventions.
func DefaultRules() map[detector.Category]Rule {
	return map[detector.Category]Rule{
		detector.CategoryPhone:    {MaskChar: '*', KeepPrefix: 3, KeepSuffix: 4},
		detector.CategoryIDCard:   {MaskChar: '*', KeepPrefix: 6, KeepSuffix: 4},
		detector.CategoryBankCard: {MaskChar: '*', KeepPrefix: 4, KeepSuffix: 4},
		detector.CategoryPassport: {MaskChar: '*', KeepPrefix: 2, KeepSuffix: 2},
		detector.CategoryEmail:    {MaskChar: '*', KeepPrefix: 2, MaskEmailDomain: true},
		detector.CategoryName:     {MaskChar: '*', KeepPrefix: 1},
		detector.CategoryAddress:  {MaskChar: '*', KeepPrefix: 6},
	}
}

// Anonymizer applies masking rules to analyzed text. Immutable after
// construction.
type Anonymizer struct {
	rules map[detector.Category]Rule
}

// New returns an anonymizer; nil rules select the defaults.
func New(rules map[detector.Category]Rule) *Anonymizer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &Anonymizer{rules: rules}
}

// Anonymize rewrites every span in the text with its category's mask.
// Spans are replaced right to left so earlier offsets stay valid while the
// text shrinks or grows.
func (a *Anonymizer) Anonymize(text string, spans []detector.Span) string {
	if len(spans) == 0 {
		return text
	}

	ordered := make([]detector.Span, len(spans))
	copy(ordered, spans)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start > ordered[j].Start })

	out := text
	for _, s := range ordered {
		if s.Start < 0 || s.End > len(out) || s.Start >= s.End {
			continue
		}
		out = out[:s.Start] + a.MaskText(s.Category, out[s.Start:s.End]) + out[s.End:]
	}
	return out
}

// MaskText masks a single matched text per its category rule. Categories
// without a rule are fully masked.
func (a *Anonymizer) MaskText(category detector.Category, text string) string {
	if text == "" {
		return text
	}
	rule, ok := a.rules[category]
	if !ok {
		rule = Rule{MaskChar: '*'}
	}
	if rule.MaskChar == 0 {
		rule.MaskChar = '*'
	}

	if rule.MaskEmailDomain && strings.Contains(text, "@") {
		return maskEmail(text, rule)
	}

	runes := []rune(text)
	if rule.KeepPrefix+rule.KeepSuffix >= len(runes) {
		return text
	}
	masked := make([]rune, len(runes))
	copy(masked, runes)
	for i := rule.KeepPrefix; i < len(runes)-rule.KeepSuffix; i++ {
		masked[i] = rule.MaskChar
	}
	return string(masked)
}

// maskEmail keeps the local part's prefix and the top-level domain,
// masking everything between: zh****@*******.com.
func maskEmail(text string, rule Rule) string {
	at := strings.LastIndex(text, "@")
	local, domain := text[:at], text[at+1:]

	localRunes := []rune(local)
	masked := make([]rune, len(localRunes))
	for i := range localRunes {
		if i < rule.KeepPrefix && len(localRunes) > rule.KeepPrefix {
			masked[i] = localRunes[i]
		} else {
			masked[i] = rule.MaskChar
		}
	}

	var maskedDomain string
	if dot := strings.LastIndex(domain, "."); dot > 0 {
		maskedDomain = strings.Repeat(string(rule.MaskChar), dot) + domain[dot:]
	} else {
		maskedDomain = strings.Repeat(string(rule.MaskChar), len(domain))
	}
	return string(masked) + "@" + maskedDomain
}
