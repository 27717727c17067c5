/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package config is the process-level settings layer: listen ports,
// active-mode IP, slot counts and share roots, loaded through viper and
// decoded with mapstructure the way golib/viper feeds typed config structs.
package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/nabbar/ncdc/internal/duration"
)

// Config is the typed process configuration.
type Config struct {
	Nickname    string            `mapstructure:"nickname"`
	Description string            `mapstructure:"description"`
	Email       string            `mapstructure:"email"`

	ActiveMode  bool              `mapstructure:"active_mode"`
	ListenIP    string            `mapstructure:"listen_ip"`
	ListenPort  int               `mapstructure:"listen_port"`
	TLSPort     int               `mapstructure:"tls_port"`

	Slots       int               `mapstructure:"slots"`
	MiniSlots   int               `mapstructure:"minislots"`
	MinislotSize int64            `mapstructure:"minislot_size"`

	ShareRoots  map[string]string `mapstructure:"share_roots"`
	ShareRefreshInterval duration.Duration `mapstructure:"share_refresh_interval"`

	DownloadDir string            `mapstructure:"download_dir"`
	DownloadSlots int             `mapstructure:"download_slots"`
	ExcludeRegex string           `mapstructure:"exclude_regex"`

	LogLevel    string            `mapstructure:"log_level"`

	Hubs []HubConfig `mapstructure:"hubs"`

	WorkerPoolSize int `mapstructure:"worker_pool_size"`
}

// HubConfig is one configured hub connection.
type HubConfig struct {
	Name    string `mapstructure:"name"`
	Addr    string `mapstructure:"addr"`
	Dialect string `mapstructure:"dialect"` // "legacy" or "modern"
	TLS     bool   `mapstructure:"tls"`
	Password string `mapstructure:"password"`
}

// Validate applies the hand-rolled checks this module needs: a handful of
// numeric-range checks, with no validator-tag library.
func (c *Config) Validate() error {
	if c.Slots < 0 || c.MiniSlots < 0 {
		return fmt.Errorf("config: slots and minislots must be non-negative")
	}
	if c.MinislotSize < 0 {
		return fmt.Errorf("config: minislot_size must be non-negative")
	}
	if c.ListenPort < 0 || c.ListenPort > 65535 {
		return fmt.Errorf("config: listen_port out of range")
	}
	if c.ShareRefreshInterval.AsSeconds() != 0 && c.ShareRefreshInterval.AsSeconds() < 600 {
		return fmt.Errorf("config: share_refresh_interval must be 0 (disabled) or at least 10 minutes")
	}
	return nil
}

// Default returns the built-in defaults, applied before Load overlays viper
// settings on top.
func Default() *Config {
	return &Config{
		Slots:        3,
		MiniSlots:    3,
		MinislotSize: 64 * 1024,
		ListenPort:   0,
		DownloadSlots: 3,
		LogLevel:     "info",
		WorkerPoolSize: 4,
	}
}

// Load reads settings from v (already configured with file/env sources by
// the cmd/ncdc caller) and decodes them into a Config via mapstructure.
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
