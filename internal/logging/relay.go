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

package logging

import (
	"log/slog"

	"github.com/auroratech/numberbot/internal/phone"
	"github.com/auroratech/numberbot/pkg/core"
)

// RelayLogger emits one structured line per delivery attempt. Numbers are
// always masked before they reach the log stream.
type RelayLogger struct {
	logger *slog.Logger
}

func NewRelayLogger(logger *slog.Logger) *RelayLogger {
	return &RelayLogger{logger: logger}
}

func (r *RelayLogger) Delivered(relayID string, evt core.OTPEvent, direction string, userID int64) {
	r.logger.Info("relay",
		"relay_id", relayID,
		"event_id", evt.ID,
		"service", evt.Service,
		"country", evt.Country,
		"number", phone.Mask(evt.PhoneNumber),
		"direction", direction,
		"user_id", userID,
	)
}

func (r *RelayLogger) Failed(relayID string, evt core.OTPEvent, direction string, err error) {
	r.logger.Error("relay failed",
		"relay_id", relayID,
		"event_id", evt.ID,
		"direction", direction,
		"error", err,
	)
}
