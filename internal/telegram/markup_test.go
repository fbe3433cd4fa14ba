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

package telegram

import (
	"testing"

	"github.com/auroratech/numberbot/pkg/core"
)

func TestToInlineMarkupDataAndURLButtons(t *testing.T) {
	markup := core.Markup{
		{
			{Label: "🇳🇬 Nigeria", Data: "country:Nigeria"},
			{Label: "🇬🇭 Ghana", Data: "country:Ghana"},
		},
		{
			{Label: "Bot", URL: "https://t.me/bot"},
			{Label: "Group", URL: "https://t.me/group"},
		},
	}

	keyboard := toInlineMarkup(markup)
	if keyboard == nil {
		t.Fatal("expected keyboard, got nil")
	}
	if len(keyboard.InlineKeyboard) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(keyboard.InlineKeyboard))
	}

	first := keyboard.InlineKeyboard[0]
	if len(first) != 2 {
		t.Fatalf("expected 2 buttons in first row, got %d", len(first))
	}
	if first[0].Text != "🇳🇬 Nigeria" {
		t.Fatalf("unexpected button text: %s", first[0].Text)
	}
	if first[0].CallbackData == nil || *first[0].CallbackData != "country:Nigeria" {
		t.Fatalf("unexpected callback data: %v", first[0].CallbackData)
	}
	if first[0].URL != nil {
		t.Fatalf("data button must not carry a url, got %v", *first[0].URL)
	}

	second := keyboard.InlineKeyboard[1]
	if second[0].URL == nil || *second[0].URL != "https://t.me/bot" {
		t.Fatalf("unexpected url: %v", second[0].URL)
	}
	if second[0].CallbackData != nil {
		t.Fatalf("url button must not carry callback data, got %v", *second[0].CallbackData)
	}
	if second[1].URL == nil || *second[1].URL != "https://t.me/group" {
		t.Fatalf("unexpected url: %v", second[1].URL)
	}
}

func TestToInlineMarkupEmptyClearsKeyboard(t *testing.T) {
	if got := toInlineMarkup(nil); got != nil {
		t.Fatalf("expected nil for nil markup, got %+v", got)
	}
	if got := toInlineMarkup(core.Markup{}); got != nil {
		t.Fatalf("expected nil for empty markup, got %+v", got)
	}
}
