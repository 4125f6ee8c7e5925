// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package email

import "github.com/neednlab/cn-pii-anonymization/internal/help"

// GetCheckInfo returns standardized information about the email check
func (r *Recognizer) GetCheckInfo() help.CheckInfo {
	return help.CheckInfo{
		Name:             "EMAIL",
		ShortDescription: "Detects email addresses",
		DetailedDescription: `The EMAIL check detects addresses of the form local@domain.tld, where the local part allows dots, underscores, percent signs, plus and minus, and the top-level domain has at least two letters.`,

		Patterns: []string{
			"local@domain.tld (e.g., zhang.wei@example.com.cn)",
		},

		Examples: []string{
			"cn-pii-scan --text '邮箱: zhang.wei@example.com' --format json",
		},
	}
}
