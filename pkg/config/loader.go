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

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	BotToken        string `yaml:"bot_token"`
	BroadcastChatID int64  `yaml:"broadcast_chat_id"`
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"`
	Port            int    `yaml:"port"`

	PollInterval     time.Duration `yaml:"poll_interval"`
	PollInitialDelay time.Duration `yaml:"poll_initial_delay"`
	PageLimit        int           `yaml:"page_limit"`
	DedupTTL         time.Duration `yaml:"dedup_ttl"`

	BotLink   string `yaml:"bot_link"`
	GroupLink string `yaml:"group_link"`
}

func Default() Config {
	return Config{
		BaseURL:          "https://api.otprevenue.com/api",
		Port:             8080,
		PollInterval:     10 * time.Second,
		PollInitialDelay: 10 * time.Second,
		PageLimit:        50,
		DedupTTL:         24 * time.Hour,
	}
}

// Load reads an optional YAML file, then applies environment overrides.
// An empty path skips the file and configures from environment alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("BOT_TOKEN"); v != "" {
		c.BotToken = v
	}
	if v := os.Getenv("BROADCAST_CHAT_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse BROADCAST_CHAT_ID: %w", err)
		}
		c.BroadcastChatID = id
	}
	if v := os.Getenv("PROVIDER_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("PROVIDER_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse PORT: %w", err)
		}
		c.Port = port
	}
	return nil
}

func (c *Config) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("bot token is required")
	}
	if c.BroadcastChatID == 0 {
		return fmt.Errorf("broadcast chat id is required")
	}
	if c.APIKey == "" {
		return fmt.Errorf("provider api key is required")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.PageLimit <= 0 {
		return fmt.Errorf("page limit must be positive")
	}
	return nil
}
