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

package relay

import (
	"fmt"
	"strings"
	"time"

	"github.com/auroratech/numberbot/internal/phone"
	"github.com/auroratech/numberbot/pkg/core"
)

// displayZone shifts received-at timestamps for the audience's local time.
var displayZone = time.FixedZone("UTC+6", 6*60*60)

const displayTimeLayout = "02-01-2006 03:04:05 PM"

var markdownEscaper = strings.NewReplacer(
	"_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "(", "\\(", ")", "\\)",
	"~", "\\~", "`", "\\`", ">", "\\>", "#", "\\#", "+", "\\+", "-", "\\-",
	"=", "\\=", "|", "\\|", "{", "\\{", "}", "\\}", ".", "\\.", "!", "\\!",
)

// EscapeMarkdown escapes every MarkdownV2-significant character so upstream
// payloads cannot break message rendering.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// DisplayTime converts an upstream RFC 3339 timestamp to the display zone.
// Malformed input falls back to the raw string rather than failing the event.
func DisplayTime(raw string) string {
	if raw == "" {
		return "N/A"
	}
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return ts.In(displayZone).Format(displayTimeLayout)
}

// FormatOTP renders the MarkdownV2 body shared by broadcast and direct
// deliveries. The number is masked; the full upstream message is quoted.
func FormatOTP(evt core.OTPEvent) string {
	masked := phone.Mask(orNA(evt.PhoneNumber))
	if !strings.HasPrefix(masked, "+") {
		masked = "+" + masked
	}

	return fmt.Sprintf(
		"📬 \"%s\" OTP Received\\!\n\n"+
			"Number: `%s`\n"+
			"🔐OTP: `%s`\n"+
			"Country: %s\n"+
			"Time: %s\n\n"+
			"`%s`",
		EscapeMarkdown(orNA(evt.Service)),
		EscapeMarkdown(masked),
		EscapeMarkdown(orNA(evt.OTPCode)),
		EscapeMarkdown(orNA(evt.Country)),
		EscapeMarkdown(DisplayTime(evt.ReceivedAt)),
		EscapeMarkdown(orNA(evt.FullMessage)),
	)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
