// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package passport

import "github.com/neednlab/cn-pii-anonymization/internal/help"

// GetCheckInfo returns standardized information about the passport check
func (r *Recognizer) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "PASSPORT",
		ShortDescription: "Detects passport numbers",
		DetailedDescription: `The PASSPORT check detects letter-prefixed passport numbers in two shapes: a strict two-letter, eight-digit form and a looser generic form covering one or two letters followed by six to ten digits.

When both patterns claim the same text the strict match wins and only one finding is reported.`,

		Patterns: []string{
			"Strict: 2 uppercase letters followed by 8 digits (e.g., EA12345678)",
			"Generic: 1-2 uppercase letters followed by 6-10 digits (e.g., G12345678)",
		},

		Validation: []string{
			"ASCII word boundaries on both sides",
			"Strict matches score 0.85, generic matches 0.60",
		},

		Examples: []string{
			"cn-pii-scan --text '护照号 EA12345678'",
		},
	}
}
