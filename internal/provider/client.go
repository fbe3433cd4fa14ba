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

// Package provider is the HTTP client for the upstream number-provisioning
// API. All calls carry the API key header and an explicit request timeout so
// a slow upstream cannot stall a poll tick indefinitely.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/auroratech/numberbot/pkg/core"
)

const requestTimeout = 15 * time.Second

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *slog.Logger
}

func New(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) AvailableCountries(ctx context.Context) ([]core.CountryInfo, error) {
	env, err := c.post(ctx, "/numbers/available-countries", map[string]string{})
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("available-countries: %w", core.ErrNoInventory)
	}
	var data struct {
		Countries []core.CountryInfo `json:"countries"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("decode countries: %w", err)
	}
	return data.Countries, nil
}

func (c *Client) GetNumber(ctx context.Context, country string) (core.NumberRecord, error) {
	return c.requestNumber(ctx, "/numbers/get-number", country)
}

func (c *Client) ChangeNumber(ctx context.Context, country string) (core.NumberRecord, error) {
	return c.requestNumber(ctx, "/numbers/change-number", country)
}

func (c *Client) requestNumber(ctx context.Context, path, country string) (core.NumberRecord, error) {
	env, err := c.post(ctx, path, map[string]string{"country": country})
	if err != nil {
		return core.NumberRecord{}, err
	}
	if !env.Success {
		return core.NumberRecord{}, fmt.Errorf("%s: %w", path, core.ErrNoInventory)
	}
	var rec core.NumberRecord
	if err := json.Unmarshal(env.Data, &rec); err != nil {
		return core.NumberRecord{}, fmt.Errorf("decode number: %w", err)
	}
	return rec, nil
}

// SuccessNumbers fetches OTP events received after the given marker, most
// recent page first, bounded by limit.
func (c *Client) SuccessNumbers(ctx context.Context, after time.Time, limit int) ([]core.OTPEvent, error) {
	q := url.Values{}
	q.Set("page", "1")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("after", after.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/success-numbers?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("success-numbers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("success-numbers: %w: %d", core.ErrUnexpectedStatus, resp.StatusCode)
	}

	var out struct {
		Data struct {
			Numbers []core.OTPEvent `json:"numbers"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode success-numbers: %w", err)
	}
	if len(out.Data.Numbers) > 0 {
		c.logger.Debug("success-numbers fetched", "count", len(out.Data.Numbers))
	}
	return out.Data.Numbers, nil
}

func (c *Client) post(ctx context.Context, path string, body any) (*envelope, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: %w: %d", path, core.ErrUnexpectedStatus, resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &env, nil
}
