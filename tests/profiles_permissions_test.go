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

package tests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/steinfletcher/apitest"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/people"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
	h "github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/tests/helper"
)

// Testing member creation by the portal owner
// * Provision a fresh portal
// * Owner creates a member with the user role
// * The created profile reports collaborator permissions only
// * The new member can authenticate with the generated credentials
func Test_owner_creates_user_profile(t *testing.T) {
	t.Parallel()
	d := h.NewDocSpacePortal(t)
	ctx := context.Background()

	var profile types.Profile
	t.Run("Owner creates user member", func(t *testing.T) {
		svc := people.NewService(d.Session(t, types.RoleOwner))

		var err error
		profile, err = svc.AddMember(ctx, d.Portal().Store, types.RoleUser)
		if err != nil {
			t.Fatal("ERROR: Unable to create user member:", err)
		}
		if profile.ID == "" {
			t.Fatal("ERROR: Created profile has no id")
		}
	})

	t.Run("Profile reports collaborator permissions only", func(t *testing.T) {
		if !profile.IsCollaborator {
			t.Error("ERROR: Expected isCollaborator=true, got false")
		}
		if profile.IsOwner {
			t.Error("ERROR: Expected isOwner=false, got true")
		}
		if profile.IsAdmin {
			t.Error("ERROR: Expected isAdmin=false, got true")
		}
	})

	t.Run("New member can authenticate", func(t *testing.T) {
		// activation of a fresh member can lag behind the creation call
		h.Retry(&h.Timer{Timeout: 30 * time.Second, Wait: 2 * time.Second}, t, func(r *h.R) {
			_, err := d.Portal().LoginAs(ctx, types.RoleUser)
			r.Check(err)
		})
	})
}

// Testing the permission boundary of the docspace admin role
// * Provision a portal and a docspace admin member
// * The admin attempts to create another docspace admin
// * The call is denied with 403 "Access denied" and nothing is created
func Test_docspaceadmin_cannot_create_docspaceadmin(t *testing.T) {
	t.Parallel()
	d := h.NewDocSpacePortal(t)
	ctx := context.Background()

	t.Run("Provision docspace admin", func(t *testing.T) {
		svc := people.NewService(d.Session(t, types.RoleOwner))
		profile, err := svc.AddMember(ctx, d.Portal().Store, types.RoleDocSpaceAdmin)
		if err != nil {
			t.Fatal("ERROR: Unable to create docspace admin:", err)
		}
		if err := svc.Activate(ctx, profile.ID); err != nil {
			t.Fatal("ERROR: Unable to activate docspace admin:", err)
		}
	})

	t.Run("Admin creation by admin is denied", func(t *testing.T) {
		if _, err := d.Portal().LoginAs(ctx, types.RoleDocSpaceAdmin); err != nil {
			t.Fatal("ERROR: Unable to login as docspace admin:", err)
		}
		token, err := d.Portal().Store.Token(types.RoleDocSpaceAdmin)
		if err != nil {
			t.Fatal("ERROR: No admin session token:", err)
		}

		identity := people.GenerateIdentity(types.RoleDocSpaceAdmin)
		apitest.New().
			EnableNetworking(&http.Client{Timeout: 30 * time.Second}).
			Post(d.BaseURL()+"/api/2.0/people").
			Header("Cookie", token).
			JSON(map[string]string{
				"password":  identity.Password,
				"email":     identity.Email,
				"firstName": identity.FirstName,
				"lastName":  identity.LastName,
				"type":      "DocSpaceAdmin",
			}).
			Expect(t).
			Status(http.StatusForbidden).
			Assert(func(res *http.Response, req *http.Request) error {
				return assertAPIError(res, "Access denied")
			}).
			End()
	})

	t.Run("Denied member does not exist", func(t *testing.T) {
		svc := people.NewService(d.Session(t, types.RoleOwner))
		profiles, err := svc.List(ctx)
		if err != nil {
			t.Fatal("ERROR: Unable to list members:", err)
		}
		admins := 0
		for _, p := range profiles {
			if p.IsAdmin && !p.IsOwner {
				admins++
			}
		}
		if admins != 1 {
			t.Errorf("ERROR: Expected exactly 1 docspace admin, found %d", admins)
		}
	})
}
