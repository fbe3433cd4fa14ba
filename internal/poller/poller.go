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

// Package poller drives the ingestion loop: fetch success events since the
// process start marker on a fixed interval and hand each new one to the
// dispatcher. The tick boundary is the outermost recovery point; no event or
// fetch failure stops the loop, and the next tick retries with no backoff.
package poller

import (
	"context"
	"log/slog"
	"time"

	"github.com/auroratech/numberbot/internal/dedup"
	"github.com/auroratech/numberbot/pkg/core"

	"github.com/google/uuid"
)

// EventSource fetches success events newer than the given marker.
type EventSource interface {
	SuccessNumbers(ctx context.Context, after time.Time, limit int) ([]core.OTPEvent, error)
}

// Sink delivers one admitted event.
type Sink interface {
	Relay(ctx context.Context, relayID string, evt core.OTPEvent)
}

type Poller struct {
	source   EventSource
	ledger   *dedup.Ledger
	sink     Sink
	since    time.Time
	interval time.Duration
	initial  time.Duration
	limit    int
	logger   *slog.Logger
}

// New creates a poller bounded below by the immutable start marker.
func New(
	source EventSource,
	ledger *dedup.Ledger,
	sink Sink,
	start time.Time,
	interval, initialDelay time.Duration,
	limit int,
	logger *slog.Logger,
) *Poller {
	return &Poller{
		source:   source,
		ledger:   ledger,
		sink:     sink,
		since:    start,
		interval: interval,
		initial:  initialDelay,
		limit:    limit,
		logger:   logger,
	}
}

// Run polls until ctx is cancelled. The first tick fires after the initial
// delay, then on the fixed interval.
func (p *Poller) Run(ctx context.Context) {
	p.logger.Info("poller started",
		"since", p.since,
		"interval", p.interval,
		"limit", p.limit,
	)

	select {
	case <-ctx.Done():
		return
	case <-time.After(p.initial):
	}
	p.tick(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped")
			return
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	events, err := p.source.SuccessNumbers(ctx, p.since, p.limit)
	if err != nil {
		p.logger.Error("success-numbers fetch failed", "error", err)
		return
	}

	for _, evt := range events {
		// Admission is in-memory and happens before any network call for
		// the event, so an overlapping slow tick cannot double-broadcast.
		if evt.ID == "" || !p.ledger.Admit(evt.ID) {
			continue
		}
		p.sink.Relay(ctx, uuid.New().String(), evt)
	}
}
