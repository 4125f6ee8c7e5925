// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package idcard

import "github.com/neednlab/cn-pii-anonymization/internal/help"

// GetCheckInfo returns standardized information about the ID card check
func (r *Recognizer) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "ID_CARD",
		ShortDescription: "Detects resident identity card numbers (GB 11643)",
		DetailedDescription: `The ID_CARD check detects 18-character resident identity card numbers: a 6-digit region code, an 8-digit birth date, a 3-digit sequence and a mod-11 check character (0-9 or X).

A secondary pattern handles OCR noise: a run of exactly 19 digits is accepted when removing a single digit yields a checksum-valid ID. Removal positions inside the birth-date field are tried first, where OCR duplication is most common.`,

		Patterns: []string{
			"18 characters: 17 digits plus a final digit or X, optionally space-separated",
			"19 consecutive digits (one inserted OCR digit)",
		},

		Validation: []string{
			"First two digits match a known province/region code",
			"Birth date is a real calendar date, year 1900 or later, not in the future",
			"Weighted mod-11 check character matches (X accepted in either case)",
			"Match is not glued to adjacent letters or digits",
		},

		Examples: []string{
			"cn-pii-scan --text '身份证: 110101199001011237'",
			"cn-pii-scan --fragments scan.json --image idcard.png",
		},
	}
}
