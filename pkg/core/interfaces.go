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

import (
	"context"
	"time"
)

// Provider is the upstream number-provisioning API.
type Provider interface {
	AvailableCountries(ctx context.Context) ([]CountryInfo, error)
	GetNumber(ctx context.Context, country string) (NumberRecord, error)
	ChangeNumber(ctx context.Context, country string) (NumberRecord, error)
	SuccessNumbers(ctx context.Context, after time.Time, limit int) ([]OTPEvent, error)
}

// Transport is the outbound side of the chat platform. Message handles are the
// platform's message IDs; the relay core only stores and replays them.
type Transport interface {
	SendBroadcast(ctx context.Context, msg Outgoing) (int, error)
	SendDirect(ctx context.Context, userID int64, msg Outgoing) (int, error)
	Edit(ctx context.Context, chatID int64, messageID int, msg Outgoing) error
	Delete(ctx context.Context, chatID int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// Handler receives inbound transport triggers.
type Handler interface {
	OnStart(ctx context.Context, userID, chatID int64)
	OnStatus(ctx context.Context, chatID int64)
	OnHelp(ctx context.Context, chatID int64)
	OnCallback(ctx context.Context, cb Callback)
}
