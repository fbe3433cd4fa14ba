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

// Package country maps provisioning country names to display flag glyphs.
package country

import "strings"

// neutralFlag is returned for countries missing from the catalog.
const neutralFlag = "\U0001F3F3\uFE0F"

// regionalIndicatorBase converts an uppercase ASCII letter to its Unicode
// regional indicator symbol (U+1F1E6 is 'A' + 127397).
const regionalIndicatorBase = 127397

// codes maps lowercase country names to ISO 3166-1 alpha-2 codes.
var codes = map[string]string{
	// Africa
	"algeria": "DZ", "angola": "AO", "benin": "BJ", "botswana": "BW", "burkina faso": "BF",
	"burundi": "BI", "cameroon": "CM", "cape verde": "CV", "central african republic": "CF",
	"chad": "TD", "comoros": "KM", "congo": "CG", "dr congo": "CD",
	"cote d'ivoire": "CI", "ivory coast": "CI", "djibouti": "DJ", "egypt": "EG",
	"eritrea": "ER", "ethiopia": "ET", "gabon": "GA", "gambia": "GM", "ghana": "GH",
	"guinea": "GN", "kenya": "KE", "liberia": "LR", "libya": "LY",
	"madagascar": "MG", "malawi": "MW", "mali": "ML", "mauritius": "MU", "morocco": "MA",
	"mozambique": "MZ", "namibia": "NA", "niger": "NE", "nigeria": "NG", "rwanda": "RW",
	"senegal": "SN", "sierra leone": "SL", "somalia": "SO", "south africa": "ZA",
	"sudan": "SD", "tanzania": "TZ", "togo": "TG", "tunisia": "TN", "uganda": "UG",
	"zambia": "ZM", "zimbabwe": "ZW",
	// Asia
	"afghanistan": "AF", "bangladesh": "BD", "cambodia": "KH", "china": "CN",
	"hong kong": "HK", "india": "IN", "indonesia": "ID", "iran": "IR", "iraq": "IQ",
	"israel": "IL", "japan": "JP", "jordan": "JO", "kuwait": "KW", "laos": "LA",
	"lebanon": "LB", "malaysia": "MY", "mongolia": "MN", "myanmar": "MM",
	"nepal": "NP", "oman": "OM", "pakistan": "PK", "philippines": "PH",
	"qatar": "QA", "saudi arabia": "SA", "singapore": "SG", "south korea": "KR",
	"sri lanka": "LK", "syria": "SY", "taiwan": "TW", "thailand": "TH",
	"turkey": "TR", "uae": "AE", "united arab emirates": "AE", "vietnam": "VN", "yemen": "YE",
	// Europe
	"austria": "AT", "belgium": "BE", "bulgaria": "BG", "croatia": "HR", "czech republic": "CZ",
	"denmark": "DK", "estonia": "EE", "finland": "FI", "france": "FR", "germany": "DE", "greece": "GR",
	"hungary": "HU", "iceland": "IS", "ireland": "IE", "italy": "IT", "latvia": "LV",
	"lithuania": "LT", "netherlands": "NL", "norway": "NO", "poland": "PL", "portugal": "PT",
	"romania": "RO", "russia": "RU", "serbia": "RS", "slovakia": "SK", "slovenia": "SI",
	"spain": "ES", "sweden": "SE", "switzerland": "CH", "ukraine": "UA",
	"uk": "GB", "united kingdom": "GB", "england": "GB",
	// Americas
	"argentina": "AR", "brazil": "BR", "canada": "CA", "chile": "CL", "colombia": "CO",
	"cuba": "CU", "ecuador": "EC", "mexico": "MX", "peru": "PE", "usa": "US", "united states": "US",
	"uruguay": "UY", "venezuela": "VE",
	// Oceania
	"australia": "AU", "new zealand": "NZ", "fiji": "FJ", "papua new guinea": "PG",
}

// Flag returns the flag emoji for a country name. Lookup is case-insensitive
// and whitespace-trimmed; unknown countries get a neutral white flag.
func Flag(name string) string {
	code, ok := codes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return neutralFlag
	}
	var b strings.Builder
	for _, c := range code {
		b.WriteRune(regionalIndicatorBase + c)
	}
	return b.String()
}
