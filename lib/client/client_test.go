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

package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnvelopeDecode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/2.0/people/@self", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"statusCode":200,"response":{"id":"u1","email":"a@b.c"}}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Get(context.Background(), "/api/2.0/people/@self")
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Equal(t, 200, res.StatusCode)

	var payload struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, res.Decode(&payload))
	require.Equal(t, "u1", payload.ID)
}

func TestDeniedRequestIsDataNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"statusCode":403,"error":{"message":"Access denied"}}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Post(context.Background(), "/api/2.0/people", map[string]string{"email": "x@y.z"})
	require.NoError(t, err)
	require.False(t, res.OK())
	require.Equal(t, http.StatusForbidden, res.Status)
	require.Equal(t, "Access denied", res.ErrorMessage())
}

func TestCookieInjection(t *testing.T) {
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte(`{"statusCode":200,"response":{}}`))
	}))
	defer srv.Close()

	base := New(srv.URL)
	bound := base.WithCookie("asc_auth_key=tok123")

	_, err := bound.Get(context.Background(), "/api/2.0/files/rooms")
	require.NoError(t, err)
	require.Equal(t, "asc_auth_key=tok123", gotCookie)

	// the unbound client must stay cookie-free
	gotCookie = "unset"
	_, err = base.Get(context.Background(), "/api/2.0/files/rooms")
	require.NoError(t, err)
	require.Empty(t, gotCookie)
}

func TestRequestBodyEncoding(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"statusCode":200,"response":true}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Put(context.Background(), "/api/2.0/people/userquota", map[string]any{
		"userIds": []string{"u1"},
		"quota":   104857600,
	})
	require.NoError(t, err)
	require.Equal(t, float64(104857600), got["quota"])
}

func TestNonEnvelopeBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>portal landing</html>"))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Get(context.Background(), "/")
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Contains(t, string(res.Body), "portal landing")
	require.Nil(t, res.Response)
}

func TestStringErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"portalName already taken"}`))
	}))
	defer srv.Close()

	res, err := New(srv.URL).Post(context.Background(), "/register", map[string]string{"portalName": "x"})
	require.NoError(t, err)
	require.False(t, res.OK())
	require.Equal(t, "portalName already taken", res.ErrorMessage())
}

func TestDecodeEmptyPayload(t *testing.T) {
	res := &Result{Status: 403, Error: &APIError{Message: "Access denied"}}
	var out map[string]any
	err := res.Decode(&out)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Access denied")
}
