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

// Package bot handles user-initiated transitions: country selection, number
// assignment and replacement, and navigation back to the country list. Every
// failure degrades to an informative message with a way back to the country
// menu; nothing here returns an error to the transport loop.
package bot

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/auroratech/numberbot/internal/relay"
	"github.com/auroratech/numberbot/internal/store"
	"github.com/auroratech/numberbot/pkg/core"
)

type Controller struct {
	provider  core.Provider
	transport core.Transport
	store     *store.Store
	links     relay.Links
	startedAt time.Time
	logger    *slog.Logger
}

func NewController(
	provider core.Provider,
	transport core.Transport,
	st *store.Store,
	links relay.Links,
	startedAt time.Time,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		provider:  provider,
		transport: transport,
		store:     st,
		links:     links,
		startedAt: startedAt,
		logger:    logger,
	}
}

func (c *Controller) OnStart(ctx context.Context, userID, chatID int64) {
	c.store.TrackUser(userID)
	c.logger.Info("user started bot", "user_id", userID, "active_users", c.store.ActiveUsers())

	countries, err := c.provider.AvailableCountries(ctx)
	if err != nil || len(countries) == 0 {
		if err != nil {
			c.logger.Error("available countries fetch failed", "error", err)
		}
		c.send(ctx, chatID, core.Outgoing{Text: noInventoryText})
		return
	}

	c.send(ctx, chatID, core.Outgoing{
		Text:   welcomeText,
		Mode:   core.ModeMarkdown,
		Markup: countryMarkup(countries),
	})
}

func (c *Controller) OnStatus(ctx context.Context, chatID int64) {
	countries, err := c.provider.AvailableCountries(ctx)
	if err != nil {
		c.logger.Error("available countries fetch failed", "error", err)
	}
	c.send(ctx, chatID, core.Outgoing{
		Text: statusText(countries, c.startedAt.Format("2006-01-02 15:04:05"), c.links.Bot, c.links.Group),
		Mode: core.ModeMarkdown,
	})
}

func (c *Controller) OnHelp(ctx context.Context, chatID int64) {
	c.send(ctx, chatID, core.Outgoing{Text: helpText, Mode: core.ModeMarkdown})
}

func (c *Controller) OnCallback(ctx context.Context, cb core.Callback) {
	action, arg, _ := strings.Cut(cb.Data, ":")

	switch action {
	case actionCountry:
		c.answer(ctx, cb.ID, "")
		c.handleCountrySelected(ctx, cb, arg)
	case actionChange:
		c.answer(ctx, cb.ID, "Getting new number...")
		c.handleChangeRequested(ctx, cb, arg)
	case actionCountries:
		c.answer(ctx, cb.ID, "")
		c.handleBackToCountries(ctx, cb)
	default:
		c.answer(ctx, cb.ID, "")
		c.logger.Warn("unknown callback action", "data", cb.Data, "user_id", cb.UserID)
	}
}

func (c *Controller) handleCountrySelected(ctx context.Context, cb core.Callback, countryName string) {
	rec, err := c.provider.GetNumber(ctx, countryName)
	if err != nil {
		c.logger.Warn("get number failed", "country", countryName, "user_id", cb.UserID, "error", err)
		c.edit(ctx, cb, core.Outgoing{
			Text:   noNumbersForCountryText(countryName),
			Markup: backMarkup(),
		})
		return
	}

	c.store.Assign(cb.UserID, countryName, rec)
	c.edit(ctx, cb, core.Outgoing{
		Text:   numberAssignedText(countryName, rec),
		Mode:   core.ModeMarkdown,
		Markup: numberMarkup(countryName),
	})
}

func (c *Controller) handleChangeRequested(ctx context.Context, cb core.Callback, countryName string) {
	rec, err := c.provider.ChangeNumber(ctx, countryName)
	if err != nil {
		c.logger.Warn("change number failed", "country", countryName, "user_id", cb.UserID, "error", err)
		c.edit(ctx, cb, core.Outgoing{
			Text:   noMoreNumbersText(countryName),
			Markup: backMarkup(),
		})
		return
	}

	c.cleanupPending(ctx, cb.UserID)
	c.store.Assign(cb.UserID, countryName, rec)
	c.edit(ctx, cb, core.Outgoing{
		Text:   numberChangedText(countryName, rec),
		Mode:   core.ModeMarkdown,
		Markup: numberMarkup(countryName),
	})
}

func (c *Controller) handleBackToCountries(ctx context.Context, cb core.Callback) {
	c.cleanupPending(ctx, cb.UserID)

	countries, err := c.provider.AvailableCountries(ctx)
	if err != nil || len(countries) == 0 {
		if err != nil {
			c.logger.Error("available countries fetch failed", "error", err)
		}
		c.edit(ctx, cb, core.Outgoing{Text: noInventoryText})
		return
	}

	c.edit(ctx, cb, core.Outgoing{
		Text:   welcomeText,
		Mode:   core.ModeMarkdown,
		Markup: countryMarkup(countries),
	})
}

// cleanupPending deletes the user's delivered OTP messages. Handles are
// drained under the store lock, deletions happen outside it; each delete is
// an independent attempt and failures are only logged.
func (c *Controller) cleanupPending(ctx context.Context, userID int64) {
	for _, messageID := range c.store.DrainMessages(userID) {
		if err := c.transport.Delete(ctx, userID, messageID); err != nil {
			c.logger.Warn("delete otp message failed",
				"user_id", userID,
				"message_id", messageID,
				"error", err,
			)
		}
	}
}

func (c *Controller) send(ctx context.Context, chatID int64, msg core.Outgoing) {
	if _, err := c.transport.SendDirect(ctx, chatID, msg); err != nil {
		c.logger.Error("send failed", "chat_id", chatID, "error", err)
	}
}

func (c *Controller) edit(ctx context.Context, cb core.Callback, msg core.Outgoing) {
	if err := c.transport.Edit(ctx, cb.ChatID, cb.MessageID, msg); err != nil {
		c.logger.Error("edit failed", "chat_id", cb.ChatID, "message_id", cb.MessageID, "error", err)
	}
}

func (c *Controller) answer(ctx context.Context, callbackID, text string) {
	if err := c.transport.AnswerCallback(ctx, callbackID, text); err != nil {
		c.logger.Debug("answer callback failed", "error", err)
	}
}
