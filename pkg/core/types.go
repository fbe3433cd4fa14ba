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

package core

import "time"

// NumberRecord is a single number assignment returned by the provisioning API.
type NumberRecord struct {
	Number string `json:"number"`
	Range  string `json:"range"`
}

// CountryInfo is one entry of the provisioning inventory.
type CountryInfo struct {
	Country   string `json:"country"`
	Available int    `json:"available"`
}

// OTPEvent is one upstream success-number event. ReceivedAt is kept as the raw
// upstream string; display formatting parses it lazily and falls back to the
// raw value on malformed input.
type OTPEvent struct {
	ID          string `json:"id"`
	PhoneNumber string `json:"phoneNumber"`
	OTPCode     string `json:"otpCode"`
	Country     string `json:"country"`
	Service     string `json:"service"`
	FullMessage string `json:"fullMessage"`
	ReceivedAt  string `json:"receivedAt"`
}

// SessionKey identifies a user's number holding for one country.
type SessionKey struct {
	UserID  int64
	Country string
}

// Session is the current number assignment for a (user, country) pair.
type Session struct {
	Key        SessionKey
	Record     NumberRecord
	AssignedAt time.Time
}

type ParseMode string

const (
	ModeNone       ParseMode = ""
	ModeMarkdown   ParseMode = "Markdown"
	ModeMarkdownV2 ParseMode = "MarkdownV2"
)

// Button is one inline button. Data and URL are mutually exclusive.
type Button struct {
	Label string
	Data  string
	URL   string
}

// Markup is a button grid, one slice per row.
type Markup [][]Button

// Outgoing is a transport-neutral outbound message.
type Outgoing struct {
	Text              string
	Mode              ParseMode
	Markup            Markup
	DisableWebPreview bool
}

// Callback is an inline-button press relayed by the transport.
type Callback struct {
	ID        string
	UserID    int64
	ChatID    int64
	MessageID int
	Data      string
}
