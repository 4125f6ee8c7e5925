// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package validators holds the pure checksum and repair functions shared by
// the recognizers. Everything here is stateless: invalid input yields a
// negative result, never an error.
package validators

// Luhn reports whether number (decimal digits only) passes the mod-10
// checksum used for payment card numbers. Any non-digit byte fails the
// check.
func Luhn(number string) bool {
	if number == "" {
		return false
	}

	sum := 0
	isDouble := false
	for i := len(number) - 1; i >= 0; i-- {
		if number[i] < '0' || number[i] > '9' {
			return false
		}
		digit := int(number[i] - '0')

		if isDouble {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}

		sum += digit
		isDouble = !isDouble
	}

	return sum%10 == 0
}
