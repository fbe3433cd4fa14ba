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
	"github.com/auroratech/numberbot/internal/country"
	"github.com/auroratech/numberbot/pkg/core"
)

// Callback payload tags.
const (
	actionCountry   = "country"
	actionChange    = "change"
	actionCountries = "countries"
)

func countryMarkup(countries []core.CountryInfo) core.Markup {
	var markup core.Markup
	var row []core.Button
	for _, c := range countries {
		row = append(row, core.Button{
			Label: country.Flag(c.Country) + " " + c.Country,
			Data:  actionCountry + ":" + c.Country,
		})
		if len(row) == 2 {
			markup = append(markup, row)
			row = nil
		}
	}
	if len(row) > 0 {
		markup = append(markup, row)
	}
	return markup
}

func numberMarkup(countryName string) core.Markup {
	return core.Markup{
		{{Label: "🔄 Change Number", Data: actionChange + ":" + countryName}},
		{{Label: "◀️ Back to Countries", Data: actionCountries}},
	}
}

func backMarkup() core.Markup {
	return core.Markup{
		{{Label: "◀️ Back to Countries", Data: actionCountries}},
	}
}
