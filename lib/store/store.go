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

// Package store keeps the per-run credentials of a provisioned portal: the
// session cookie and the generated profile of every role. The store is owned
// by the portal lifecycle and passed explicitly to the clients that need it,
// so there is no shared on-disk state between parallel workers.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
)

// Store is a run-scoped, mutex-guarded credential store keyed by role
type Store struct {
	mu sync.RWMutex

	domain   string
	sessions map[types.Role]types.Session
	profiles map[types.Role][]types.Profile
}

// New creates an empty store for the given portal domain
func New(domain string) *Store {
	return &Store{
		domain:   domain,
		sessions: make(map[types.Role]types.Session),
		profiles: make(map[types.Role][]types.Profile),
	}
}

// Domain returns the portal domain the credentials belong to
func (s *Store) Domain() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.domain
}

// SetDomain updates the portal domain, used once right after provisioning
func (s *Store) SetDomain(domain string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.domain = domain
}

// SetToken stores the session cookie for a role
func (s *Store) SetToken(role types.Role, cookie string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[role] = types.Session{
		Role:       role,
		Cookie:     cookie,
		AcquiredAt: time.Now(),
	}
}

// Token returns the session cookie for a role. A missing token is an error:
// sending a request without it would just run unauthenticated and produce a
// confusing 401 far away from the actual mistake.
func (s *Store) Token(role types.Role) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[role]
	if !ok || session.Cookie == "" {
		return "", &types.AuthenticationError{
			Role: role,
			Err:  fmt.Errorf("no session token stored, was Authenticate() called for this role?"),
		}
	}
	return session.Cookie, nil
}

// AddProfile remembers a generated identity for a role. Roles can be
// provisioned multiple times for multi-actor scenarios, so profiles append.
func (s *Store) AddProfile(role types.Role, profile types.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[role] = append(s.profiles[role], profile)
}

// Profile returns the most recent identity generated for a role
func (s *Store) Profile(role types.Role) (types.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.profiles[role]
	if len(list) == 0 {
		return types.Profile{}, fmt.Errorf("no profile stored for role %q, was AddMember() called for this role?", role)
	}
	return list[len(list)-1], nil
}

// Profiles returns every identity generated for a role in creation order
func (s *Store) Profiles(role types.Role) []types.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]types.Profile, len(s.profiles[role]))
	copy(list, s.profiles[role])
	return list
}

// Credentials returns the login pair of the latest identity of a role
func (s *Store) Credentials(role types.Role) (types.Credentials, error) {
	profile, err := s.Profile(role)
	if err != nil {
		return types.Credentials{}, err
	}
	return profile.Credentials(), nil
}

// snapshot is the on-disk representation of a store
type snapshot struct {
	Domain   string                         `json:"domain"`
	Sessions map[types.Role]types.Session   `json:"sessions"`
	Profiles map[types.Role][]types.Profile `json:"profiles"`
}

// SaveFile writes the store content to a JSON file. Opt-in only: reusing
// credentials across runs is unsafe with more than one worker since portals
// are provisioned per run.
func (s *Store) SaveFile(path string) error {
	s.mu.RLock()
	snap := snapshot{
		Domain:   s.domain,
		Sessions: s.sessions,
		Profiles: s.profiles,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("unable to encode store snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("unable to write store snapshot %q: %w", path, err)
	}
	return nil
}

// LoadFile restores a store from a JSON snapshot written by SaveFile
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read store snapshot %q: %w", path, err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unable to decode store snapshot %q: %w", path, err)
	}

	s := New(snap.Domain)
	for role, session := range snap.Sessions {
		s.sessions[role] = session
	}
	for role, profiles := range snap.Profiles {
		s.profiles[role] = profiles
	}
	return s, nil
}

// Roles lists the roles that currently have a session token
func (s *Store) Roles() []types.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var roles []types.Role
	for _, role := range types.AllRoles {
		if _, ok := s.sessions[role]; ok {
			roles = append(roles, role)
		}
	}
	return roles
}
