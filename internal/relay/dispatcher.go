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

// Package relay delivers admitted OTP events: always to the shared channel,
// and directly to the user currently holding the matching number. Every
// delivery is best-effort; a failed broadcast never blocks the direct send
// and vice versa.
package relay

import (
	"context"
	"log/slog"

	"github.com/auroratech/numberbot/internal/logging"
	"github.com/auroratech/numberbot/internal/store"
	"github.com/auroratech/numberbot/pkg/core"
)

// Links are the promo buttons attached under every relayed OTP.
type Links struct {
	Bot   string
	Group string
}

type Dispatcher struct {
	transport core.Transport
	store     *store.Store
	links     Links
	logger    *slog.Logger
	relayLog  *logging.RelayLogger
}

func NewDispatcher(
	transport core.Transport,
	st *store.Store,
	links Links,
	logger *slog.Logger,
	relayLog *logging.RelayLogger,
) *Dispatcher {
	return &Dispatcher{
		transport: transport,
		store:     st,
		links:     links,
		logger:    logger,
		relayLog:  relayLog,
	}
}

// Relay broadcasts the event and, when a session holds the number, delivers
// it directly and records the message handle for later cleanup.
func (d *Dispatcher) Relay(ctx context.Context, relayID string, evt core.OTPEvent) {
	msg := core.Outgoing{
		Text:              FormatOTP(evt),
		Mode:              core.ModeMarkdownV2,
		Markup:            d.linkMarkup(),
		DisableWebPreview: true,
	}

	if _, err := d.transport.SendBroadcast(ctx, msg); err != nil {
		d.relayLog.Failed(relayID, evt, "broadcast", err)
	} else {
		d.relayLog.Delivered(relayID, evt, "broadcast", 0)
	}

	sess, ok := d.store.FindByNumber(evt.PhoneNumber)
	if !ok {
		d.logger.Debug("no session holds number", "relay_id", relayID, "event_id", evt.ID)
		return
	}

	messageID, err := d.transport.SendDirect(ctx, sess.Key.UserID, msg)
	if err != nil {
		d.relayLog.Failed(relayID, evt, "direct", err)
		return
	}
	d.store.RecordMessage(sess.Key.UserID, messageID)
	d.relayLog.Delivered(relayID, evt, "direct", sess.Key.UserID)
}

func (d *Dispatcher) linkMarkup() core.Markup {
	if d.links.Bot == "" && d.links.Group == "" {
		return nil
	}
	row := []core.Button{}
	if d.links.Bot != "" {
		row = append(row, core.Button{Label: "Bot", URL: d.links.Bot})
	}
	if d.links.Group != "" {
		row = append(row, core.Button{Label: "Group", URL: d.links.Group})
	}
	return core.Markup{row}
}
