// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package bankcard detects 16-19 digit payment card numbers that pass the
// Luhn checksum, with issuer BIN prefixes raising confidence.
package bankcard

import (
	"regexp"
	"strings"

	"github.com/neednlab/cn-pii-anonymization/internal/detector"
	"github.com/neednlab/cn-pii-anonymization/internal/validators"
)

const (
	knownBINConfidence = 0.95
	luhnConfidence     = 0.70
)

// binPrefixes maps issuing banks to their common 6-digit BIN prefixes.
var binPrefixes = map[string][]string{
	"工商银行": {"622202", "622203", "622208", "621225", "621226"},
	"农业银行": {"622848", "622849", "622845", "622846"},
	"中国银行": {"621660", "621661", "621663", "621665"},
	"建设银行": {"621700", "436742", "436745", "622280"},
	"交通银行": {"622260", "622261", "622262"},
	"招商银行": {"622580", "622588", "621286", "621483"},
	"浦发银行": {"622518", "622520", "622521", "622522"},
	"民生银行": {"622615", "622617", "622618", "622622"},
	"兴业银行": {"622909", "622910", "622911", "622912"},
	"平安银行": {"622155", "622156", "622157", "622158"},
	"光大银行": {"622660", "622661", "622662", "622663"},
	"华夏银行": {"622630", "622631", "622632"},
	"广发银行": {"622568", "622569", "622570"},
	"中信银行": {"622690", "622691", "622692"},
	"邮储银行": {"622188", "622199", "622810"},
}

// Recognizer implements detector.Recognizer for the BANK_CARD category.
type Recognizer struct {
	pattern *regexp.Regexp
}

// NewRecognizer compiles the card pattern once.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		pattern: regexp.MustCompile(`\d(?: ?\d){15,18}`),
	}
}

// Category implements detector.Recognizer.
func (r *Recognizer) Category() detector.Category { return detector.CategoryBankCard }

// Recognize returns one candidate per Luhn-valid card-shaped digit run.
func (r *Recognizer) Recognize(text string) []detector.Candidate {
	var out []detector.Candidate
	for _, loc := range r.pattern.FindAllStringIndex(text, -1) {
		if !cleanBoundaries(text, loc[0], loc[1]) {
			continue
		}
		digits := strings.ReplaceAll(text[loc[0]:loc[1]], " ", "")
		if len(digits) < 16 || len(digits) > 19 {
			continue
		}
		if !validators.Luhn(digits) {
			continue
		}
		out = append(out, detector.Candidate{
			Category: detector.CategoryBankCard,
			Start:    loc[0],
			End:      loc[1],
			Score:    confidence(digits),
			Source:   detector.SourcePattern,
		})
	}
	return out
}

// confidence returns the higher score when the card starts with a known
// issuer BIN prefix.
func confidence(digits string) float64 {
	for _, bins := range binPrefixes {
		for _, bin := range bins {
			if strings.HasPrefix(digits, bin) {
				return knownBINConfidence
			}
		}
	}
	return luhnConfidence
}

// IssuerFor returns the bank name for a card's BIN prefix, if known.
func IssuerFor(digits string) (string, bool) {
	for bank, bins := range binPrefixes {
		for _, bin := range bins {
			if strings.HasPrefix(digits, bin) {
				return bank, true
			}
		}
	}
	return "", false
}

func cleanBoundaries(text string, start, end int) bool {
	if start > 0 && isAlnum(text[start-1]) {
		return false
	}
	if end < len(text) && isAlnum(text[end]) {
		return false
	}
	return true
}

func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
