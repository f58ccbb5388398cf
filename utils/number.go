// Copyright 2019 Zhenhua Yang. All rights reserved.
// Licensed under the MIT License that can be
// found in the LICENSE file in the root directory.

package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseNumber reports whether s reads as a number. NaN is rejected so that
// parsed values stay totally ordered.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// CompareValues compares numerically when both sides are numbers and as
// case-insensitive text otherwise.
func CompareValues(a, b string) int {
	if x, ok := ParseNumber(a); ok {
		if y, ok := ParseNumber(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// CanonicalValue maps values that compare equal under CompareValues to the
// same string.
func CanonicalValue(s string) string {
	if f, ok := ParseNumber(s); ok {
		if f == 0 {
			return "0"
		}
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strings.ToLower(s)
}
