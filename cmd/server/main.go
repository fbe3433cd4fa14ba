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

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/auroratech/numberbot/internal/bot"
	"github.com/auroratech/numberbot/internal/dedup"
	"github.com/auroratech/numberbot/internal/logging"
	"github.com/auroratech/numberbot/internal/ops"
	"github.com/auroratech/numberbot/internal/poller"
	"github.com/auroratech/numberbot/internal/provider"
	"github.com/auroratech/numberbot/internal/relay"
	"github.com/auroratech/numberbot/internal/store"
	"github.com/auroratech/numberbot/internal/telegram"
	"github.com/auroratech/numberbot/pkg/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Lower bound for all upstream event queries; immutable for the
	// process lifetime.
	startedAt := time.Now().UTC()

	transport, err := telegram.New(cfg.BotToken, cfg.BroadcastChatID, logger.With("component", "telegram"))
	if err != nil {
		logger.Error("failed to start telegram transport", "error", err)
		os.Exit(1)
	}

	st := store.New(logger.With("component", "store"))
	ledger := dedup.NewLedger(cfg.DedupTTL, logger.With("component", "dedup"))
	client := provider.New(cfg.BaseURL, cfg.APIKey, logger.With("component", "provider"))

	links := relay.Links{Bot: cfg.BotLink, Group: cfg.GroupLink}
	relayLog := logging.NewRelayLogger(logger.With("component", "relay"))
	dispatcher := relay.NewDispatcher(transport, st, links, logger.With("component", "relay"), relayLog)
	controller := bot.NewController(client, transport, st, links, startedAt, logger.With("component", "bot"))

	eventPoller := poller.New(
		client, ledger, dispatcher,
		startedAt, cfg.PollInterval, cfg.PollInitialDelay, cfg.PageLimit,
		logger.With("component", "poller"),
	)

	opsServer := ops.New(cfg.Port, st, ledger, startedAt, logger.With("component", "ops"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := opsServer.Start(ctx); err != nil {
			logger.Error("ops server failed", "error", err)
		}
	}()
	go eventPoller.Run(ctx)
	go transport.Run(ctx, controller)

	logger.Info("number bot started", "port", cfg.Port, "poll_interval", cfg.PollInterval)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down number bot")
	cancel()

	// Give the update loop and in-flight deliveries a moment to drain.
	time.Sleep(2 * time.Second)
	ledger.Close()

	logger.Info("number bot stopped")
}
