/**
 * Copyright Ascensio System SIA 2026. All rights reserved.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License. You may obtain a copy
 * of the License at http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software distributed under
 * the License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR REPRESENTATIONS
 * OF ANY KIND, either express or implied. See the License for the specific language
 * governing permissions and limitations under the License.
 */

// Package config resolves the harness run configuration from an optional YAML
// file plus environment variable overrides. The environment wins, so CI can
// point the same config file at different deployments.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ghodss/yaml"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/log"
)

// Config is the full harness run configuration
type Config struct {
	// RegistrationURL is the apisystem endpoint used to create/remove portals
	RegistrationURL string `json:"registration_url"`

	// AdminEmail/AdminPassword become the owner credentials of every
	// portal the harness provisions
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`

	// MachineAuthToken is only needed for local (standalone) deployments
	// where the registration endpoint requires it
	MachineAuthToken string `json:"machine_auth_token"`

	// Local switches portal URLs to plain http for standalone deployments
	Local bool `json:"local"`

	// Workers caps the amount of test files running in parallel
	Workers int `json:"workers"`

	// RequestTimeout bounds every single API call of the harness
	RequestTimeout Duration `json:"request_timeout"`
	// ProvisionTimeout bounds portal creation plus reachability wait
	ProvisionTimeout Duration `json:"provision_timeout"`

	// Browser is the playwright browser to use (chromium, firefox, webkit)
	Browser string `json:"browser"`
	// Headful disables headless browser mode for debugging
	Headful bool `json:"headful"`

	// ArtifactsDir is where screenshots/videos/traces are collected
	ArtifactsDir string `json:"artifacts_dir"`

	Log *log.Config `json:"log"`
}

// Default returns the configuration used when nothing is specified
func Default() *Config {
	return &Config{
		Workers:          4,
		RequestTimeout:   Duration(30 * time.Second),
		ProvisionTimeout: Duration(2 * time.Minute),
		Browser:          "chromium",
		ArtifactsDir:     "artifacts",
		Log:              log.DefaultConfig(),
	}
}

// Load reads the config file (when path is not empty), then applies the
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unable to parse config file %q: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FromEnv builds the configuration from environment only. Used by the test
// helpers where no config file is involved.
func FromEnv() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DOCSPACE_REGISTRATION_URL"); v != "" {
		c.RegistrationURL = v
	}
	if v := os.Getenv("DOCSPACE_ADMIN_EMAIL"); v != "" {
		c.AdminEmail = v
	}
	if v := os.Getenv("DOCSPACE_ADMIN_PASSWORD"); v != "" {
		c.AdminPassword = v
	}
	if v := os.Getenv("DOCSPACE_AUTH_TOKEN"); v != "" {
		c.MachineAuthToken = v
	}
	if v := os.Getenv("DOCSPACE_LOCAL"); v != "" {
		c.Local = v == "true" || v == "1"
	}
	if v := os.Getenv("DOCSPACE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Workers = n
		}
	}
	if v := os.Getenv("BROWSER"); v != "" {
		c.Browser = v
	}
	if v := os.Getenv("HEADFUL"); v != "" {
		c.Headful = true
	}
	if v := os.Getenv("DOCSPACE_ARTIFACTS_DIR"); v != "" {
		c.ArtifactsDir = v
	}
}

// Validate catches missing mandatory fields before any test runs
func (c *Config) Validate() error {
	if c.RegistrationURL == "" {
		return fmt.Errorf("registration_url is required (env DOCSPACE_REGISTRATION_URL)")
	}
	if c.AdminEmail == "" {
		return fmt.Errorf("admin_email is required (env DOCSPACE_ADMIN_EMAIL)")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("admin_password is required (env DOCSPACE_ADMIN_PASSWORD)")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	switch c.Browser {
	case "chromium", "firefox", "webkit":
	default:
		return fmt.Errorf("unsupported browser %q", c.Browser)
	}
	return nil
}

// Scheme returns the URL scheme portals are reachable on
func (c *Config) Scheme() string {
	if c.Local {
		return "http"
	}
	return "https"
}
