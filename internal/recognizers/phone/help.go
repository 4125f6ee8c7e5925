// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package phone

import "github.com/neednlab/cn-pii-anonymization/internal/help"

// GetCheckInfo returns standardized information about the phone check
func (r *Recognizer) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "PHONE",
		ShortDescription: "Detects mainland-China mobile phone numbers",
		DetailedDescription: `The PHONE check detects 11-digit mainland-China mobile numbers, with or without a +86/0086 country prefix, in compact or space/hyphen separated form.

Raw matches are normalized before validation, and matches that are really slices of a longer identifier (a resident ID card or a bank card number) are discarded.`,

		Patterns: []string{
			"Compact: optional +86/0086, then 1[3-9] and nine more digits (e.g., 13812345678)",
			"Separated: 3-4-4 groups split by a space or hyphen (e.g., 138-1234-5678)",
		},

		Validation: []string{
			"Separators and dialing prefix stripped before checking",
			"Exactly 11 digits after normalization",
			"First digit 1, second digit 3-9",
		},

		Suppressions: []string{
			"At least 6 digits immediately before and 1 digit (or X) after, and the resulting 18 characters pass the resident ID checksum",
			"Five or more extra adjacent digits on either side, consistent with a 16-19 digit card number",
		},

		Examples: []string{
			"cn-pii-scan --text '客服电话: 13812345678'",
			"cn-pii-scan --file contacts.txt --format json",
		},
	}
}
