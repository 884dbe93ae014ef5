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

// Package people provisions portal members through the people API. It
// generates realistic identities, creates members with a chosen role and
// exposes the raw exchange for permission tests that assert on denials.
package people

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/client"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/log"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/store"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
)

// Service talks to the people API through a client already bound to the
// session of the acting identity. Whether a call succeeds therefore depends
// on who the session belongs to, which is exactly what permission tests need.
type Service struct {
	cli *client.Client
}

// NewService wraps a session-bound client
func NewService(cli *client.Client) *Service {
	return &Service{cli: cli}
}

// GenerateIdentity produces a fresh member identity for a role. The e-mail
// carries a uuid fragment so parallel runs never collide on the same portal.
func GenerateIdentity(role types.Role) types.Profile {
	first := gofakeit.FirstName()
	last := gofakeit.LastName()
	tag := strings.Split(uuid.NewString(), "-")[0]

	return types.Profile{
		Email:     fmt.Sprintf("%s.%s.%s@example.com", strings.ToLower(first), strings.ToLower(last), tag),
		Password:  gofakeit.Password(true, true, true, false, false, 16),
		FirstName: first,
		LastName:  last,
	}
}

// createRequest is the POST /people payload
type createRequest struct {
	Password  string `json:"password"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Type      string `json:"type"`
}

// Create issues the member creation call and returns the raw exchange. A 403
// from a session that lacks the permission is a valid result here.
func (s *Service) Create(ctx context.Context, role types.Role, identity types.Profile) (*client.Result, error) {
	payloadType, err := role.PayloadType()
	if err != nil {
		return nil, err
	}

	return s.cli.Post(ctx, "/api/2.0/people", createRequest{
		Password:  identity.Password,
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Type:      payloadType,
	})
}

// AddMember generates an identity, creates the member and records the
// resulting profile in the store. The generated password is kept on the
// profile since the server never echoes it back.
func (s *Service) AddMember(ctx context.Context, st *store.Store, role types.Role) (types.Profile, error) {
	logger := log.WithFunc("people", "add_member").With("role", role)

	identity := GenerateIdentity(role)

	res, err := s.Create(ctx, role, identity)
	if err != nil {
		return types.Profile{}, err
	}
	if !res.OK() {
		return types.Profile{}, fmt.Errorf("member creation for role %q denied with status %d: %s",
			role, res.Status, res.ErrorMessage())
	}

	var profile types.Profile
	if err := res.Decode(&profile); err != nil {
		return types.Profile{}, err
	}
	profile.Password = identity.Password

	st.AddProfile(role, profile)

	logger.Info("member provisioned", "email", profile.Email, "id", profile.ID)

	return profile, nil
}

// Activate flips the activation status of the given members to Activated.
// Freshly created admins need this before they can authenticate.
func (s *Service) Activate(ctx context.Context, userIDs ...string) error {
	res, err := s.cli.Put(ctx, "/api/2.0/people/activationstatus/Activated", map[string]any{
		"userIds": userIDs,
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("activation failed with status %d: %s", res.Status, res.ErrorMessage())
	}
	return nil
}

// Self returns the profile of the session owner
func (s *Service) Self(ctx context.Context) (types.Profile, error) {
	res, err := s.cli.Get(ctx, "/api/2.0/people/@self")
	if err != nil {
		return types.Profile{}, err
	}
	if !res.OK() {
		return types.Profile{}, fmt.Errorf("self lookup failed with status %d: %s", res.Status, res.ErrorMessage())
	}

	var profile types.Profile
	if err := res.Decode(&profile); err != nil {
		return types.Profile{}, err
	}
	return profile, nil
}

// ByEmail looks a member up by e-mail address
func (s *Service) ByEmail(ctx context.Context, email string) (types.Profile, error) {
	res, err := s.cli.Get(ctx, "/api/2.0/people/email?email="+url.QueryEscape(email))
	if err != nil {
		return types.Profile{}, err
	}
	if !res.OK() {
		return types.Profile{}, fmt.Errorf("lookup of %q failed with status %d: %s", email, res.Status, res.ErrorMessage())
	}

	var profile types.Profile
	if err := res.Decode(&profile); err != nil {
		return types.Profile{}, err
	}
	return profile, nil
}

// List returns all portal members visible to the session
func (s *Service) List(ctx context.Context) ([]types.Profile, error) {
	res, err := s.cli.Get(ctx, "/api/2.0/people")
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, fmt.Errorf("member listing failed with status %d: %s", res.Status, res.ErrorMessage())
	}

	var profiles []types.Profile
	if err := res.Decode(&profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// Invite sends e-mail invitations for the given role. Invited members only
// appear in the portal after they accept, unlike Create which adds them
// right away.
func (s *Service) Invite(ctx context.Context, role types.Role, emails ...string) (*client.Result, error) {
	payloadType, err := role.PayloadType()
	if err != nil {
		return nil, err
	}

	invitations := make([]map[string]string, 0, len(emails))
	for _, email := range emails {
		invitations = append(invitations, map[string]string{
			"email": email,
			"type":  payloadType,
		})
	}

	return s.cli.Post(ctx, "/api/2.0/people/invite", map[string]any{
		"invitations": invitations,
	})
}

// Delete removes a member. The raw exchange is returned so permission tests
// can assert on denials the same way as on Create.
func (s *Service) Delete(ctx context.Context, userID string) (*client.Result, error) {
	return s.cli.Delete(ctx, "/api/2.0/people/"+userID, nil)
}

// RemindPassword triggers the password recovery mail for an e-mail address
func (s *Service) RemindPassword(ctx context.Context, email string) (*client.Result, error) {
	return s.cli.Post(ctx, "/api/2.0/people/password", map[string]string{
		"email": email,
	})
}
