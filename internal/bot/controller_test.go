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

package bot

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/auroratech/numberbot/internal/relay"
	"github.com/auroratech/numberbot/internal/store"
	"github.com/auroratech/numberbot/pkg/core"
)

type mockProvider struct {
	countries    []core.CountryInfo
	countriesErr error
	number       core.NumberRecord
	numberErr    error
}

func (m *mockProvider) AvailableCountries(ctx context.Context) ([]core.CountryInfo, error) {
	return m.countries, m.countriesErr
}

func (m *mockProvider) GetNumber(ctx context.Context, country string) (core.NumberRecord, error) {
	return m.number, m.numberErr
}

func (m *mockProvider) ChangeNumber(ctx context.Context, country string) (core.NumberRecord, error) {
	return m.number, m.numberErr
}

func (m *mockProvider) SuccessNumbers(ctx context.Context, after time.Time, limit int) ([]core.OTPEvent, error) {
	return nil, nil
}

type sentMessage struct {
	chatID int64
	msg    core.Outgoing
}

type editedMessage struct {
	chatID    int64
	messageID int
	msg       core.Outgoing
}

type mockTransport struct {
	deleteErr error

	sent    []sentMessage
	edits   []editedMessage
	deletes []int
	answers []string
}

func (m *mockTransport) SendBroadcast(ctx context.Context, msg core.Outgoing) (int, error) {
	return 0, nil
}

func (m *mockTransport) SendDirect(ctx context.Context, userID int64, msg core.Outgoing) (int, error) {
	m.sent = append(m.sent, sentMessage{chatID: userID, msg: msg})
	return len(m.sent), nil
}

func (m *mockTransport) Edit(ctx context.Context, chatID int64, messageID int, msg core.Outgoing) error {
	m.edits = append(m.edits, editedMessage{chatID: chatID, messageID: messageID, msg: msg})
	return nil
}

func (m *mockTransport) Delete(ctx context.Context, chatID int64, messageID int) error {
	m.deletes = append(m.deletes, messageID)
	return m.deleteErr
}

func (m *mockTransport) AnswerCallback(ctx context.Context, callbackID, text string) error {
	m.answers = append(m.answers, text)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newController(p core.Provider, tr core.Transport, st *store.Store) *Controller {
	return NewController(p, tr, st,
		relay.Links{Bot: "https://t.me/bot", Group: "https://t.me/group"},
		time.Now(), testLogger())
}

func callback(data string) core.Callback {
	return core.Callback{ID: "cb-1", UserID: 7, ChatID: 7, MessageID: 42, Data: data}
}

func TestOnStartShowsCountries(t *testing.T) {
	p := &mockProvider{countries: []core.CountryInfo{
		{Country: "Nigeria", Available: 10},
		{Country: "Ghana", Available: 4},
		{Country: "India", Available: 2},
	}}
	tr := &mockTransport{}
	st := store.New(testLogger())
	c := newController(p, tr, st)

	c.OnStart(context.Background(), 7, 7)

	if st.ActiveUsers() != 1 {
		t.Fatalf("expected user tracked, got %d", st.ActiveUsers())
	}
	if len(tr.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(tr.sent))
	}
	markup := tr.sent[0].msg.Markup
	// Three countries lay out as a row of two plus a row of one.
	if len(markup) != 2 || len(markup[0]) != 2 || len(markup[1]) != 1 {
		t.Fatalf("unexpected keyboard layout: %v", markup)
	}
	if markup[0][0].Data != "country:Nigeria" {
		t.Fatalf("unexpected callback payload: %s", markup[0][0].Data)
	}
}

func TestOnStartEmptyInventory(t *testing.T) {
	p := &mockProvider{}
	tr := &mockTransport{}
	c := newController(p, tr, store.New(testLogger()))

	c.OnStart(context.Background(), 7, 7)

	if len(tr.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(tr.sent))
	}
	if !strings.Contains(tr.sent[0].msg.Text, "No numbers available") {
		t.Fatalf("expected empty-inventory message, got %q", tr.sent[0].msg.Text)
	}
}

func TestCountrySelectionAssignsNumber(t *testing.T) {
	p := &mockProvider{number: core.NumberRecord{Number: "2348012345678", Range: "MTN"}}
	tr := &mockTransport{}
	st := store.New(testLogger())
	c := newController(p, tr, st)

	c.OnCallback(context.Background(), callback("country:Nigeria"))

	rec, ok := st.Lookup(7, "Nigeria")
	if !ok || rec.Number != "2348012345678" {
		t.Fatalf("expected assignment, got %+v ok=%v", rec, ok)
	}
	if len(tr.edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(tr.edits))
	}
	if !strings.Contains(tr.edits[0].msg.Text, "Number Assigned") {
		t.Fatalf("unexpected text: %q", tr.edits[0].msg.Text)
	}
	if tr.edits[0].msg.Markup[0][0].Data != "change:Nigeria" {
		t.Fatalf("expected change button, got %v", tr.edits[0].msg.Markup)
	}
}

func TestCountrySelectionNoInventory(t *testing.T) {
	p := &mockProvider{numberErr: core.ErrNoInventory}
	tr := &mockTransport{}
	st := store.New(testLogger())
	c := newController(p, tr, st)

	c.OnCallback(context.Background(), callback("country:Nigeria"))

	if _, ok := st.Lookup(7, "Nigeria"); ok {
		t.Fatal("expected no assignment on failure")
	}
	if len(tr.edits) != 1 {
		t.Fatalf("expected 1 edit, got %d", len(tr.edits))
	}
	// Failure always leaves a way back to the country list.
	if tr.edits[0].msg.Markup[0][0].Data != actionCountries {
		t.Fatalf("expected back affordance, got %v", tr.edits[0].msg.Markup)
	}
}

func TestChangeNumberDeletesPendingFirst(t *testing.T) {
	p := &mockProvider{number: core.NumberRecord{Number: "2348099999999", Range: "Airtel"}}
	tr := &mockTransport{}
	st := store.New(testLogger())
	st.Assign(7, "Nigeria", core.NumberRecord{Number: "2348011111111"})
	st.RecordMessage(7, 100)
	st.RecordMessage(7, 101)

	c := newController(p, tr, st)
	c.OnCallback(context.Background(), callback("change:Nigeria"))

	if len(tr.deletes) != 2 || tr.deletes[0] != 100 || tr.deletes[1] != 101 {
		t.Fatalf("expected deletes for both pending handles, got %v", tr.deletes)
	}
	if ids := st.DrainMessages(7); len(ids) != 0 {
		t.Fatalf("expected pending set emptied, got %v", ids)
	}
	rec, _ := st.Lookup(7, "Nigeria")
	if rec.Number != "2348099999999" {
		t.Fatalf("expected replacement assigned, got %s", rec.Number)
	}
	if len(tr.answers) != 1 || tr.answers[0] != "Getting new number..." {
		t.Fatalf("expected change acknowledgement, got %v", tr.answers)
	}
}

func TestChangeNumberDeleteFailuresAreBestEffort(t *testing.T) {
	p := &mockProvider{number: core.NumberRecord{Number: "2348099999999"}}
	tr := &mockTransport{deleteErr: errors.New("message not found")}
	st := store.New(testLogger())
	st.RecordMessage(7, 100)
	st.RecordMessage(7, 101)

	c := newController(p, tr, st)
	c.OnCallback(context.Background(), callback("change:Nigeria"))

	if len(tr.deletes) != 2 {
		t.Fatalf("expected both deletes attempted, got %v", tr.deletes)
	}
	// The pending set is emptied regardless of delete outcomes.
	if ids := st.DrainMessages(7); len(ids) != 0 {
		t.Fatalf("expected pending set emptied, got %v", ids)
	}
	if len(tr.edits) != 1 || !strings.Contains(tr.edits[0].msg.Text, "Number Changed") {
		t.Fatal("expected new number presented despite delete failures")
	}
}

func TestBackToCountriesIdempotent(t *testing.T) {
	p := &mockProvider{countries: []core.CountryInfo{{Country: "Nigeria", Available: 1}}}
	tr := &mockTransport{}
	st := store.New(testLogger())
	st.RecordMessage(7, 100)

	c := newController(p, tr, st)
	c.OnCallback(context.Background(), callback("countries"))

	if len(tr.deletes) != 1 || tr.deletes[0] != 100 {
		t.Fatalf("expected one delete, got %v", tr.deletes)
	}

	// Second navigation with no intervening delivery issues no new deletes.
	c.OnCallback(context.Background(), callback("countries"))
	if len(tr.deletes) != 1 {
		t.Fatalf("expected no duplicate deletes, got %v", tr.deletes)
	}
	if len(tr.edits) != 2 {
		t.Fatalf("expected country menu presented both times, got %d edits", len(tr.edits))
	}
}

func TestStatusSummarizesInventory(t *testing.T) {
	p := &mockProvider{countries: []core.CountryInfo{
		{Country: "Nigeria", Available: 10},
		{Country: "Ghana", Available: 5},
	}}
	tr := &mockTransport{}
	c := newController(p, tr, store.New(testLogger()))

	c.OnStatus(context.Background(), 7)

	if len(tr.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(tr.sent))
	}
	text := tr.sent[0].msg.Text
	if !strings.Contains(text, "Available Numbers: 15") {
		t.Fatalf("expected total of 15, got %q", text)
	}
	if !strings.Contains(text, "Countries: 2") {
		t.Fatalf("expected 2 countries, got %q", text)
	}
}

func TestStatusOmitsUnsetLinks(t *testing.T) {
	p := &mockProvider{countries: []core.CountryInfo{{Country: "Nigeria", Available: 10}}}
	tr := &mockTransport{}
	c := NewController(p, tr, store.New(testLogger()), relay.Links{}, time.Now(), testLogger())

	c.OnStatus(context.Background(), 7)

	if len(tr.sent) != 1 {
		t.Fatalf("expected 1 message, got %d", len(tr.sent))
	}
	text := tr.sent[0].msg.Text
	if strings.Contains(text, "Bot:") || strings.Contains(text, "Group:") {
		t.Fatalf("expected link lines omitted when unset, got %q", text)
	}
	if !strings.Contains(text, "Available Numbers: 10") {
		t.Fatalf("expected inventory summary, got %q", text)
	}
}

func TestStatusIncludesConfiguredLinks(t *testing.T) {
	p := &mockProvider{countries: []core.CountryInfo{{Country: "Nigeria", Available: 1}}}
	tr := &mockTransport{}
	c := newController(p, tr, store.New(testLogger()))

	c.OnStatus(context.Background(), 7)

	text := tr.sent[0].msg.Text
	if !strings.Contains(text, "Bot: https://t.me/bot") {
		t.Fatalf("expected bot link line, got %q", text)
	}
	if !strings.Contains(text, "Group: https://t.me/group") {
		t.Fatalf("expected group link line, got %q", text)
	}
}

func TestUnknownCallbackIgnored(t *testing.T) {
	p := &mockProvider{}
	tr := &mockTransport{}
	c := newController(p, tr, store.New(testLogger()))

	c.OnCallback(context.Background(), callback("bogus:payload"))

	if len(tr.edits) != 0 || len(tr.sent) != 0 {
		t.Fatal("expected unknown action to be a no-op")
	}
}
