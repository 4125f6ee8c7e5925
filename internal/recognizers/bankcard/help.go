// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package bankcard

import "github.com/neednlab/cn-pii-anonymization/internal/help"

// GetCheckInfo returns standardized information about the bank card check
func (r *Recognizer) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "BANK_CARD",
		ShortDescription: "Detects 16-19 digit payment card numbers",
		DetailedDescription: `The BANK_CARD check detects payment card numbers of 16 to 19 digits, optionally space-separated, that pass the Luhn mod-10 checksum.

Numbers starting with a known issuer BIN prefix (major Chinese banks) score higher than numbers that only pass the checksum.`,

		Patterns: []string{
			"16-19 digits, optionally space-separated (e.g., 6222 0212 3456 7894)",
		},

		Validation: []string{
			"Luhn mod-10 checksum after removing spaces",
			"Match is not glued to adjacent letters or digits",
			"Known issuer BIN prefix raises confidence from 0.70 to 0.95",
		},

		Examples: []string{
			"cn-pii-scan --text '卡号6222021234567894' --format json",
		},
	}
}
