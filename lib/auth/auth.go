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

// Package auth performs the credential exchange against a portal and stores
// the resulting session cookie per role.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/client"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/log"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/store"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
)

// authRequest is the POST /authentication payload. The API wants the login
// under "userName" even though it is an email address.
type authRequest struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

// Authenticate exchanges credentials for a session cookie. The token is the
// first cookie of the Set-Cookie response header, cut before its attributes.
func Authenticate(ctx context.Context, cli *client.Client, role types.Role, creds types.Credentials) (string, error) {
	logger := log.WithFunc("auth", "authenticate").With("role", role, "email", creds.Email)

	res, err := cli.Post(ctx, "/api/2.0/authentication", authRequest{
		UserName: creds.Email,
		Password: creds.Password,
	})
	if err != nil {
		return "", &types.AuthenticationError{Role: role, Err: err}
	}
	if !res.OK() {
		return "", &types.AuthenticationError{
			Role:   role,
			Status: res.Status,
			Err:    fmt.Errorf("server rejected credentials: %s", res.ErrorMessage()),
		}
	}

	setCookie := res.Header.Get("Set-Cookie")
	if setCookie == "" {
		return "", &types.AuthenticationError{
			Role:   role,
			Status: res.Status,
			Err:    fmt.Errorf("authentication succeeded but no Set-Cookie header was returned"),
		}
	}

	// "asc_auth_key=...; expires=...; path=/" -> "asc_auth_key=..."
	token, _, _ := strings.Cut(setCookie, ";")
	token = strings.TrimSpace(token)
	if token == "" {
		return "", &types.AuthenticationError{
			Role:   role,
			Status: res.Status,
			Err:    fmt.Errorf("Set-Cookie header contained no token: %q", setCookie),
		}
	}

	logger.Debug("session token acquired")

	return token, nil
}

// Login authenticates a role and records the token in the credential store,
// so later calls can pick up a client bound to this session via Session().
func Login(ctx context.Context, cli *client.Client, st *store.Store, role types.Role, creds types.Credentials) error {
	token, err := Authenticate(ctx, cli, role, creds)
	if err != nil {
		return err
	}
	st.SetToken(role, token)
	return nil
}

// Session returns a client bound to the stored session cookie of a role
func Session(cli *client.Client, st *store.Store, role types.Role) (*client.Client, error) {
	token, err := st.Token(role)
	if err != nil {
		return nil, err
	}
	return cli.WithCookie(token), nil
}
