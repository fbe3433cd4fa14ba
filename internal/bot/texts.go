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

package bot

import (
	"fmt"
	"strings"

	"github.com/auroratech/numberbot/internal/country"
	"github.com/auroratech/numberbot/pkg/core"
)

const welcomeText = "*📊 Welcome To Number Bot!*\n" +
	"━━━━━━━━━━━━━━━━━━━\n" +
	"_Press country below ⤵️ to get numbers._"

const noInventoryText = "❌ No numbers available. Please download numbers from the OTP Revenue dashboard first."

const helpText = "🆘 *Help - Number Bot with OTP Fetcher*\n\n" +
	"This bot provides phone numbers from your OTP Revenue account " +
	"and automatically forwards received OTPs to your group.\n\n" +
	"*How to use:*\n" +
	"1. Use /start to see available countries\n" +
	"2. Click a country button to get a number\n" +
	"3. Use 'Change Number' to get a different number\n" +
	"4. OTPs are automatically forwarded to the group\n\n" +
	"*Commands:*\n" +
	"/start - Show country menu\n" +
	"/status - Check bot status\n" +
	"/help - Show this help"

func noNumbersForCountryText(countryName string) string {
	return fmt.Sprintf("❌ No numbers available for %s.\n\n"+
		"Please download more numbers from the dashboard or try another country.", countryName)
}

func noMoreNumbersText(countryName string) string {
	return fmt.Sprintf("❌ No more numbers available for %s.\n\n"+
		"Please download more numbers from the dashboard.", countryName)
}

func numberAssignedText(countryName string, rec core.NumberRecord) string {
	return fmt.Sprintf("✅ *Number Assigned!*\n\n"+
		"📱 Number: `%s`\n"+
		"🌍 Country: %s %s\n"+
		"📋 Range: %s\n\n"+
		"🔐 Your OTP: _Waiting..._\n"+
		"💬 Full Message: _Waiting for OTP..._",
		rec.Number, country.Flag(countryName), countryName, rec.Range)
}

func numberChangedText(countryName string, rec core.NumberRecord) string {
	return fmt.Sprintf("🔄 *Number Changed!*\n\n"+
		"📱 New Number: `%s`\n"+
		"🌍 Country: %s %s\n"+
		"📋 Range: %s\n\n"+
		"🔐 Your OTP: _Waiting..._\n"+
		"💬 Full Message: _Waiting for OTP..._",
		rec.Number, country.Flag(countryName), countryName, rec.Range)
}

func statusText(countries []core.CountryInfo, startedAt string, botLink, groupLink string) string {
	total := 0
	for _, c := range countries {
		total += c.Available
	}

	var b strings.Builder
	b.WriteString("✅ *Bot Status: Active*\n\n")
	if botLink != "" {
		fmt.Fprintf(&b, "🤖 Bot: %s\n", botLink)
	}
	if groupLink != "" {
		fmt.Fprintf(&b, "💬 Group: %s\n", groupLink)
	}
	fmt.Fprintf(&b, "📱 Available Numbers: %d\n", total)
	fmt.Fprintf(&b, "🌍 Countries: %d\n", len(countries))
	fmt.Fprintf(&b, "⏰ Running Since: %s", startedAt)
	return b.String()
}
