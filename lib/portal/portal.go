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

// Package portal provisions and tears down DocSpace portals through the
// registration service. Every test run gets its own portal with a unique
// name, so runs never observe each other's state.
package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/auth"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/client"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/config"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/log"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/people"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/store"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
)

// Portal is a provisioned tenant plus the credential store of its sessions
type Portal struct {
	Tenant types.Tenant
	Store  *store.Store

	cfg     *config.Config
	cli     *client.Client
	deleted bool
}

// registerRequest is the registration service payload
type registerRequest struct {
	PortalName string `json:"portalName"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Language   string `json:"language"`
}

// registerResponse is what the registration service answers with. It does not
// use the regular API envelope.
type registerResponse struct {
	Tenant struct {
		Domain  string `json:"domain"`
		OwnerID string `json:"ownerId"`
	} `json:"tenant"`
	Error string `json:"error"`
}

// GenerateName returns a unique portal name for this run
func GenerateName() string {
	return "autotest-" + strings.Split(uuid.NewString(), "-")[0]
}

// Setup registers a new portal, waits until it answers and authenticates the
// owner. The returned Portal is ready for role provisioning. Any failure in
// the chain surfaces as ProvisioningError since an unusable portal makes the
// whole run pointless.
func Setup(ctx context.Context, cfg *config.Config) (*Portal, error) {
	name := GenerateName()
	logger := log.WithFunc("portal", "setup").With("portal", name)

	logger.Info("registering portal")

	regCli := client.New(cfg.RegistrationURL, client.WithTimeout(cfg.RequestTimeout.Std()))
	res, err := regCli.Post(ctx, "/register", registerRequest{
		PortalName: name,
		FirstName:  "Admin",
		LastName:   "Autotest",
		Email:      cfg.AdminEmail,
		Password:   cfg.AdminPassword,
		Language:   "en",
	})
	if err != nil {
		return nil, &types.ProvisioningError{Portal: name, Err: err}
	}
	if !res.OK() {
		return nil, &types.ProvisioningError{
			Portal: name,
			Err:    fmt.Errorf("registration rejected with status %d: %s", res.Status, string(res.Body)),
		}
	}

	var reg registerResponse
	if err := json.Unmarshal(res.Body, &reg); err != nil {
		return nil, &types.ProvisioningError{Portal: name, Err: fmt.Errorf("unable to decode registration response: %w", err)}
	}
	if reg.Tenant.Domain == "" {
		return nil, &types.ProvisioningError{Portal: name, Err: fmt.Errorf("registration returned no domain: %s", string(res.Body))}
	}

	p := &Portal{
		Tenant: types.Tenant{
			Name:      name,
			Domain:    reg.Tenant.Domain,
			OwnerID:   reg.Tenant.OwnerID,
			CreatedAt: time.Now(),
		},
		Store: store.New(reg.Tenant.Domain),
		cfg:   cfg,
	}
	p.cli = client.New(p.BaseURL(), client.WithTimeout(cfg.RequestTimeout.Std()))

	logger.Info("portal registered, waiting for readiness", "domain", p.Tenant.Domain)

	if err := p.waitReachable(ctx); err != nil {
		return nil, &types.ProvisioningError{Portal: name, Err: err}
	}

	ownerCreds := types.Credentials{Email: cfg.AdminEmail, Password: cfg.AdminPassword}
	if err := auth.Login(ctx, p.cli, p.Store, types.RoleOwner, ownerCreds); err != nil {
		return nil, &types.ProvisioningError{Portal: name, Err: err}
	}
	p.Store.AddProfile(types.RoleOwner, types.Profile{
		ID:        p.Tenant.OwnerID,
		Email:     cfg.AdminEmail,
		Password:  cfg.AdminPassword,
		FirstName: "Admin",
		LastName:  "Autotest",
		IsOwner:   true,
		IsAdmin:   true,
	})

	// a fresh owner account sits in pending activation until flipped
	if p.Tenant.OwnerID != "" {
		ownerCli, err := auth.Session(p.cli, p.Store, types.RoleOwner)
		if err != nil {
			return nil, &types.ProvisioningError{Portal: name, Err: err}
		}
		if err := people.NewService(ownerCli).Activate(ctx, p.Tenant.OwnerID); err != nil {
			logger.Warn("owner activation failed, continuing", "err", err)
		}
	}

	logger.Info("portal ready")

	return p, nil
}

// waitReachable polls the portal root until it responds with a success
// status. New tenants answer 404 or 503 while the deployment warms up.
func (p *Portal) waitReachable(ctx context.Context) error {
	probe := func() (bool, error) {
		res, err := p.cli.Get(ctx, "/api/2.0/capabilities")
		if err != nil {
			return false, err
		}
		if res.Status >= 500 || res.Status == 404 {
			return false, fmt.Errorf("portal answered %d", res.Status)
		}
		return true, nil
	}

	_, err := backoff.Retry(ctx, probe,
		backoff.WithBackOff(backoff.NewConstantBackOff(2*time.Second)),
		backoff.WithMaxElapsedTime(p.cfg.ProvisionTimeout.Std()),
	)
	if err != nil {
		return fmt.Errorf("portal %q did not become reachable within %s: %w",
			p.Tenant.Domain, p.cfg.ProvisionTimeout.Std(), err)
	}
	return nil
}

// BaseURL is the root URL of the provisioned portal
func (p *Portal) BaseURL() string {
	return fmt.Sprintf("%s://%s", p.cfg.Scheme(), p.Tenant.Domain)
}

// Client returns the unauthenticated transport of the portal
func (p *Portal) Client() *client.Client {
	return p.cli
}

// Session returns a transport bound to the stored session of a role
func (p *Portal) Session(role types.Role) (*client.Client, error) {
	return auth.Session(p.cli, p.Store, role)
}

// LoginAs provisions a member with the given role (unless one exists already)
// and authenticates it. Safe to call repeatedly for the same role.
func (p *Portal) LoginAs(ctx context.Context, role types.Role) (*client.Client, error) {
	if role == types.RoleOwner {
		return p.Session(types.RoleOwner)
	}

	if _, err := p.Store.Token(role); err == nil {
		return p.Session(role)
	}

	creds, err := p.Store.Credentials(role)
	if err != nil {
		ownerCli, err := p.Session(types.RoleOwner)
		if err != nil {
			return nil, err
		}
		profile, err := people.NewService(ownerCli).AddMember(ctx, p.Store, role)
		if err != nil {
			return nil, err
		}
		creds = profile.Credentials()
	}

	if err := auth.Login(ctx, p.cli, p.Store, role, creds); err != nil {
		return nil, err
	}
	return p.Session(role)
}

// Cleanup removes the portal. Idempotent: the second and every following
// call is a no-op, and an already-missing portal is treated as success.
func (p *Portal) Cleanup(ctx context.Context) error {
	if p.deleted {
		return nil
	}
	logger := log.WithFunc("portal", "cleanup").With("portal", p.Tenant.Name)

	ownerCli, err := p.Session(types.RoleOwner)
	if err != nil {
		return &types.CleanupError{Resource: "portal " + p.Tenant.Name, Err: err}
	}

	res, err := ownerCli.Delete(ctx, "/api/2.0/portal/deleteportalimmediately", nil)
	if err != nil {
		return &types.CleanupError{Resource: "portal " + p.Tenant.Name, Err: err}
	}
	if !res.OK() && res.Status != 404 {
		return &types.CleanupError{
			Resource: "portal " + p.Tenant.Name,
			Err:      fmt.Errorf("delete answered status %d: %s", res.Status, res.ErrorMessage()),
		}
	}

	p.deleted = true
	logger.Info("portal removed")

	return nil
}
