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

package provider

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/auroratech/numberbot/pkg/core"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestAvailableCountries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/numbers/available-countries" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("X-API-Key") != "test-key" {
			t.Errorf("missing api key header")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"countries": []map[string]any{
					{"country": "Nigeria", "available": 12},
					{"country": "Ghana", "available": 3},
				},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key", testLogger())
	countries, err := c.AvailableCountries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(countries) != 2 {
		t.Fatalf("expected 2 countries, got %d", len(countries))
	}
	if countries[0].Country != "Nigeria" || countries[0].Available != 12 {
		t.Fatalf("unexpected first country: %+v", countries[0])
	}
}

func TestGetNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["country"] != "Nigeria" {
			t.Errorf("expected country Nigeria, got %q", body["country"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data":    map[string]any{"number": "2348012345678", "range": "MTN"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "key", testLogger())
	rec, err := c.GetNumber(context.Background(), "Nigeria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Number != "2348012345678" || rec.Range != "MTN" {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestGetNumberNoInventory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false})
	}))
	defer srv.Close()

	c := New(srv.URL, "key", testLogger())
	_, err := c.GetNumber(context.Background(), "Nigeria")
	if !errors.Is(err, core.ErrNoInventory) {
		t.Fatalf("expected ErrNoInventory, got %v", err)
	}
}

func TestGetNumberUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := New(srv.URL, "key", testLogger())
	_, err := c.ChangeNumber(context.Background(), "Nigeria")
	if !errors.Is(err, core.ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestSuccessNumbers(t *testing.T) {
	after := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/success-numbers" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("page") != "1" || q.Get("limit") != "50" {
			t.Errorf("unexpected paging params: %v", q)
		}
		if q.Get("after") != "2025-06-01T12:00:00Z" {
			t.Errorf("unexpected after param: %s", q.Get("after"))
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"numbers": []map[string]any{
					{
						"id":          "evt-1",
						"phoneNumber": "2348012345678",
						"otpCode":     "443211",
						"country":     "Nigeria",
						"service":     "WhatsApp",
						"fullMessage": "Your code is 443211",
						"receivedAt":  "2025-06-01T12:30:00Z",
					},
				},
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, "key", testLogger())
	events, err := c.SuccessNumbers(context.Background(), after, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID != "evt-1" || events[0].Service != "WhatsApp" {
		t.Fatalf("unexpected event: %+v", events[0])
	}
}

func TestSuccessNumbersUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, "key", testLogger())
	_, err := c.SuccessNumbers(context.Background(), time.Now(), 50)
	if !errors.Is(err, core.ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
}
