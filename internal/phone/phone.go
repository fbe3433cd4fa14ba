// Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied. See the License for the
// specific language governing permissions and limitations
// under the License.

// Package phone canonicalizes phone numbers for matching. Normalized forms are
// comparison-only; display always uses the original or masked string.
package phone

import "strings"

// matchSuffixLen tolerates inconsistent country-code prefixing between the
// upstream event payload and the provisioning API.
const matchSuffixLen = 10

// Normalize strips every non-digit character.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Matches reports whether two numbers refer to the same line: normalized forms
// are equal, or either one ends with the other's last 10 digits. Numbers
// shorter than 10 digits degrade to whatever suffix is available.
func Matches(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	return strings.HasSuffix(na, lastDigits(nb)) || strings.HasSuffix(nb, lastDigits(na))
}

func lastDigits(s string) string {
	if len(s) <= matchSuffixLen {
		return s
	}
	return s[len(s)-matchSuffixLen:]
}

// Mask hides the middle of a number for shared-channel display, keeping the
// first 5 and last 3 digits. Numbers with 6 or fewer digits are returned as-is.
func Mask(raw string) string {
	clean := Normalize(raw)
	if len(clean) > 6 {
		return clean[:5] + "*****" + clean[len(clean)-3:]
	}
	return raw
}
