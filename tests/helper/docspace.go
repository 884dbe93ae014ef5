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

// Package helper wires a real DocSpace deployment into the integration tests:
// one provisioned portal per test with automatic teardown.
package helper

import (
	"context"
	"os"
	"testing"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/client"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/config"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/portal"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
)

// DSPortal saves the state of the provisioned portal for a particular test
type DSPortal struct {
	cfg    *config.Config
	portal *portal.Portal
}

// LoadConfig resolves the run configuration and skips the test when no
// deployment is configured. Integration tests need a live registration
// service, there is nothing meaningful to run against otherwise.
func LoadConfig(tb testing.TB) *config.Config {
	tb.Helper()

	cfg := config.FromEnv()
	if cfg.RegistrationURL == "" {
		tb.Skip("SKIP: no DocSpace deployment configured (set DOCSPACE_REGISTRATION_URL)")
	}
	if err := cfg.Validate(); err != nil {
		tb.Fatal("ERROR: Incomplete deployment configuration:", err)
	}
	return cfg
}

// NewDocSpacePortal provisions a fresh portal and registers its teardown.
// When the test fails and DOCSPACE_KEEP_FAILED is set the portal stays up
// for investigation.
func NewDocSpacePortal(tb testing.TB) *DSPortal {
	tb.Helper()

	cfg := LoadConfig(tb)

	ctx := context.Background()
	p, err := portal.Setup(ctx, cfg)
	if err != nil {
		tb.Fatal("ERROR: Unable to provision portal:", err)
	}
	tb.Log("INFO: Provisioned portal:", p.Tenant.Domain)

	d := &DSPortal{cfg: cfg, portal: p}

	tb.Cleanup(func() {
		if tb.Failed() && os.Getenv("DOCSPACE_KEEP_FAILED") != "" {
			tb.Log("INFO: Keeping failed test portal for investigation:", p.Tenant.Domain)
			return
		}
		if err := p.Cleanup(context.Background()); err != nil {
			// never fail the test from teardown, just make the leak visible
			tb.Log("WARN: Portal cleanup failed:", err)
		}
	})

	return d
}

// Config returns the run configuration of the portal
func (d *DSPortal) Config() *config.Config {
	return d.cfg
}

// Portal returns the underlying provisioned portal
func (d *DSPortal) Portal() *portal.Portal {
	return d.portal
}

// Domain returns the portal domain
func (d *DSPortal) Domain() string {
	return d.portal.Tenant.Domain
}

// BaseURL returns the portal root URL
func (d *DSPortal) BaseURL() string {
	return d.portal.BaseURL()
}

// Session returns a transport bound to the stored session of a role
func (d *DSPortal) Session(tb testing.TB, role types.Role) *client.Client {
	tb.Helper()

	cli, err := d.portal.Session(role)
	if err != nil {
		tb.Fatal("ERROR: No session for role:", role, err)
	}
	return cli
}

// LoginAs provisions (when needed) and authenticates a member with the role
func (d *DSPortal) LoginAs(tb testing.TB, role types.Role) *client.Client {
	tb.Helper()

	cli, err := d.portal.LoginAs(context.Background(), role)
	if err != nil {
		tb.Fatal("ERROR: Unable to login as role:", role, err)
	}
	return cli
}
