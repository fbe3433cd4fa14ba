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

// Package dedup tracks upstream event IDs that have already been relayed.
// The poller is the only writer. Entries expire after a TTL so a long-lived
// process does not grow without bound; the upstream query window is bounded
// by the process start marker, so expired IDs cannot resurface.
package dedup

import (
	"log/slog"
	"sync"
	"time"
)

const cleanupInterval = time.Minute

type Ledger struct {
	mu      sync.Mutex
	seen    map[string]time.Time
	ttl     time.Duration
	stop    chan struct{}
	stopped sync.Once
	logger  *slog.Logger
}

// NewLedger creates a ledger whose entries expire after ttl. A ttl of zero
// disables eviction and the ledger grows for the process lifetime.
func NewLedger(ttl time.Duration, logger *slog.Logger) *Ledger {
	l := &Ledger{
		seen:   make(map[string]time.Time),
		ttl:    ttl,
		stop:   make(chan struct{}),
		logger: logger,
	}
	if ttl > 0 {
		go l.cleanupLoop()
	}
	return l
}

// Admit returns true and records the ID the first time it is seen, false on
// every subsequent call with the same ID.
func (l *Ledger) Admit(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[id]; ok {
		return false
	}
	l.seen[id] = time.Now()
	return true
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (l *Ledger) Close() {
	l.stopped.Do(func() {
		close(l.stop)
	})
}

func (l *Ledger) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			l.evict(time.Now())
		}
	}
}

func (l *Ledger) evict(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for id, admitted := range l.seen {
		if now.Sub(admitted) > l.ttl {
			delete(l.seen, id)
			evicted++
		}
	}

	if evicted > 0 {
		l.logger.Info("ledger eviction", "evicted", evicted, "remaining", len(l.seen))
	}
}
