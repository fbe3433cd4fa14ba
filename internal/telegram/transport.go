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

// Package telegram adapts the Telegram Bot API to the transport boundary.
// Nothing outside this package imports the Telegram types.
package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/auroratech/numberbot/pkg/core"
)

const updateTimeoutSeconds = 30

type Transport struct {
	bot       *tgbotapi.BotAPI
	broadcast int64
	logger    *slog.Logger
}

func New(token string, broadcastChatID int64, logger *slog.Logger) (*Transport, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}

	logger.Info("telegram transport ready", "bot", bot.Self.UserName)
	return &Transport{bot: bot, broadcast: broadcastChatID, logger: logger}, nil
}

func (t *Transport) SendBroadcast(ctx context.Context, msg core.Outgoing) (int, error) {
	return t.send(t.broadcast, msg)
}

func (t *Transport) SendDirect(ctx context.Context, userID int64, msg core.Outgoing) (int, error) {
	return t.send(userID, msg)
}

func (t *Transport) send(chatID int64, msg core.Outgoing) (int, error) {
	m := tgbotapi.NewMessage(chatID, msg.Text)
	m.ParseMode = string(msg.Mode)
	m.DisableWebPagePreview = msg.DisableWebPreview
	if markup := toInlineMarkup(msg.Markup); markup != nil {
		m.ReplyMarkup = *markup
	}

	sent, err := t.bot.Send(m)
	if err != nil {
		return 0, fmt.Errorf("send message: %w", err)
	}
	return sent.MessageID, nil
}

func (t *Transport) Edit(ctx context.Context, chatID int64, messageID int, msg core.Outgoing) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, msg.Text)
	edit.ParseMode = string(msg.Mode)
	edit.ReplyMarkup = toInlineMarkup(msg.Markup)

	if _, err := t.bot.Send(edit); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}

func (t *Transport) Delete(ctx context.Context, chatID int64, messageID int) error {
	if _, err := t.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

func (t *Transport) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if _, err := t.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("answer callback: %w", err)
	}
	return nil
}

// Run long-polls Telegram for updates and dispatches them to the handler
// until ctx is cancelled.
func (t *Transport) Run(ctx context.Context, handler core.Handler) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = updateTimeoutSeconds
	updates := t.bot.GetUpdatesChan(cfg)

	t.logger.Info("telegram update loop started")
	for {
		select {
		case <-ctx.Done():
			t.bot.StopReceivingUpdates()
			t.logger.Info("telegram update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			t.dispatch(ctx, handler, update)
		}
	}
}

func (t *Transport) dispatch(ctx context.Context, handler core.Handler, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.IsCommand():
		msg := update.Message
		switch msg.Command() {
		case "start":
			handler.OnStart(ctx, msg.From.ID, msg.Chat.ID)
		case "status":
			handler.OnStatus(ctx, msg.Chat.ID)
		case "help":
			handler.OnHelp(ctx, msg.Chat.ID)
		}
	case update.CallbackQuery != nil:
		cb := update.CallbackQuery
		if cb.Message == nil {
			return
		}
		handler.OnCallback(ctx, core.Callback{
			ID:        cb.ID,
			UserID:    cb.From.ID,
			ChatID:    cb.Message.Chat.ID,
			MessageID: cb.Message.MessageID,
			Data:      cb.Data,
		})
	}
}
