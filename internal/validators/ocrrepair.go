// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

// repairOrder is the position search order for removing the spurious digit
// from a 19-digit run. OCR insertions cluster at the start of the embedded
// birth date, so positions 6..8 are tried first, then the remaining
// positions in ascending order.
var repairOrder = buildRepairOrder()

func buildRepairOrder() []int {
	order := []int{6, 7, 8}
	for i := 0; i <= 5; i++ {
		order = append(order, i)
	}
	for i := 9; i <= 18; i++ {
		order = append(order, i)
	}
	return order
}

// RepairNationalID handles the known OCR failure mode where a resident ID
// number is read with one spurious inserted digit, producing a 19-digit run.
// It tries removing each single position in priority order and returns the
// first resulting 18-digit string that passes ValidNationalID. The second
// return is false when the input is not exactly 19 digits or no removal
// validates; that is a normal outcome, not an error.
//
// When several removals validate, the priority order decides which
// reconstruction is returned; recovering the exact pre-corruption string is
// not guaranteed.
func RepairNationalID(digits string) (string, bool) {
	if len(digits) != 19 {
		return "", false
	}
	if digits[0] < '1' || digits[0] > '9' {
		return "", false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", false
		}
	}

	for _, pos := range repairOrder {
		candidate := digits[:pos] + digits[pos+1:]
		// Removing position 0 may expose a leading zero, which can never
		// start a resident ID number.
		if candidate[0] == '0' {
			continue
		}
		if ValidNationalID(candidate) {
			return candidate, true
		}
	}
	return "", false
}
