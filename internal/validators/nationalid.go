// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package validators

import "time"

// idWeights are the GB 11643 position weights for the first 17 digits.
var idWeights = [17]int{7, 9, 10, 5, 8, 4, 2, 1, 6, 3, 7, 9, 10, 5, 8, 4, 2}

// idCheckCodes maps (weighted sum mod 11) to the expected 18th character.
const idCheckCodes = "10X98765432"

// regionCodes holds the valid two-digit administrative-division prefixes for
// resident ID numbers (provinces, autonomous regions, municipalities, plus
// Taiwan, Hong Kong and Macao).
var regionCodes = map[string]bool{
	"11": true, "12": true, "13": true, "14": true, "15": true,
	"21": true, "22": true, "23": true,
	"31": true, "32": true, "33": true, "34": true, "35": true, "36": true, "37": true,
	"41": true, "42": true, "43": true, "44": true, "45": true, "46": true,
	"50": true, "51": true, "52": true, "53": true, "54": true,
	"61": true, "62": true, "63": true, "64": true, "65": true,
	"71": true, "81": true, "82": true,
}

// ValidNationalID reports whether id is a valid 18-character Chinese
// resident ID number: known region prefix, plausible embedded birth date
// (not in the future), and a correct GB 11643 check character. The check
// character may be lower- or upper-case x.
func ValidNationalID(id string) bool {
	return validNationalIDAt(id, time.Now())
}

// validNationalIDAt is the clock-injected form used by tests.
func validNationalIDAt(id string, now time.Time) bool {
	if len(id) != 18 {
		return false
	}
	for i := 0; i < 17; i++ {
		if id[i] < '0' || id[i] > '9' {
			return false
		}
	}
	last := id[17]
	if last == 'x' {
		last = 'X'
	}
	if last != 'X' && (last < '0' || last > '9') {
		return false
	}

	if !regionCodes[id[:2]] {
		return false
	}
	if !validBirthDate(id[6:14], now) {
		return false
	}

	total := 0
	for i, w := range idWeights {
		total += int(id[i]-'0') * w
	}
	return last == idCheckCodes[total%11]
}

// validBirthDate checks an 8-digit YYYYMMDD string: year 1900..now, month
// 1..12, day valid for that month, and the full date not in the future.
func validBirthDate(date string, now time.Time) bool {
	year := atoi4(date[:4])
	month := atoi2(date[4:6])
	day := atoi2(date[6:8])

	if year < 1900 || year > now.Year() {
		return false
	}
	if month < 1 || month > 12 {
		return false
	}
	if day < 1 || day > daysInMonth(year, month) {
		return false
	}

	birth := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return !birth.After(now)
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	default: // February
		if year%4 == 0 && (year%100 != 0 || year%400 == 0) {
			return 29
		}
		return 28
	}
}

func atoi4(s string) int {
	return int(s[0]-'0')*1000 + int(s[1]-'0')*100 + int(s[2]-'0')*10 + int(s[3]-'0')
}

func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}
