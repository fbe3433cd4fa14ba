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

// Package store holds the authoritative mutable state: current number
// assignments per (user, country) and per-user pending OTP message handles.
// One mutex covers both, so a navigation that drains messages cannot race a
// delivery that is mid-record for the same user. The lock is never held
// across network calls.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/auroratech/numberbot/internal/phone"
	"github.com/auroratech/numberbot/pkg/core"
)

type Store struct {
	mu       sync.Mutex
	sessions map[core.SessionKey]core.Session
	order    []core.SessionKey
	pending  map[int64][]int
	users    map[int64]struct{}
	logger   *slog.Logger
}

func New(logger *slog.Logger) *Store {
	return &Store{
		sessions: make(map[core.SessionKey]core.Session),
		pending:  make(map[int64][]int),
		users:    make(map[int64]struct{}),
		logger:   logger,
	}
}

// Assign overwrites the session for (user, country). No history is kept.
func (s *Store) Assign(userID int64, country string, rec core.NumberRecord) {
	key := core.SessionKey{UserID: userID, Country: country}

	s.mu.Lock()
	if _, exists := s.sessions[key]; !exists {
		s.order = append(s.order, key)
	}
	s.sessions[key] = core.Session{Key: key, Record: rec, AssignedAt: time.Now().UTC()}
	s.mu.Unlock()

	s.logger.Info("number assigned",
		"user_id", userID,
		"country", country,
		"number", phone.Mask(rec.Number),
		"range", rec.Range,
	)
}

func (s *Store) Lookup(userID int64, country string) (core.NumberRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[core.SessionKey{UserID: userID, Country: country}]
	return sess.Record, ok
}

// FindByNumber resolves an upstream phone number to the session holding it.
// Sessions are scanned in insertion order, so ties resolve first-inserted-wins
// and a run's lookups stay deterministic.
func (s *Store) FindByNumber(raw string) (core.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range s.order {
		sess := s.sessions[key]
		if phone.Matches(raw, sess.Record.Number) {
			return sess, true
		}
	}
	return core.Session{}, false
}

// RecordMessage appends a delivered OTP message handle for later cleanup.
func (s *Store) RecordMessage(userID int64, messageID int) {
	s.mu.Lock()
	s.pending[userID] = append(s.pending[userID], messageID)
	s.mu.Unlock()
}

// DrainMessages returns and clears the user's pending message handles. The
// caller deletes them through the transport after releasing the lock.
func (s *Store) DrainMessages(userID int64) []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.pending[userID]
	if len(ids) == 0 {
		return nil
	}
	delete(s.pending, userID)
	return ids
}

// TrackUser remembers that a user has started the bot.
func (s *Store) TrackUser(userID int64) {
	s.mu.Lock()
	s.users[userID] = struct{}{}
	s.mu.Unlock()
}

func (s *Store) ActiveUsers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *Store) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}
