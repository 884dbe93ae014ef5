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
	"fmt"
	"testing"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/fixture"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/people"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/portal"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/sdk"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
	h "github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/tests/helper"
)

// Testing the fixture composition against a live deployment
// * Declare portal, member and room fixtures with dependencies
// * Up provisions them in dependency order
// * Down removes everything in reverse, portal last
func Test_fixture_composition_full_stack(t *testing.T) {
	t.Parallel()
	cfg := h.LoadConfig(t)

	set := fixture.NewSet()

	if err := set.Register(fixture.Fixture{
		Name: "portal",
		Setup: func(ctx context.Context, env *fixture.Env) error {
			p, err := portal.Setup(ctx, cfg)
			if err != nil {
				return err
			}
			env.Put("portal", p)
			return nil
		},
		Teardown: func(ctx context.Context, env *fixture.Env) error {
			return env.Get("portal").(*portal.Portal).Cleanup(ctx)
		},
	}); err != nil {
		t.Fatal("ERROR: Unable to register portal fixture:", err)
	}

	if err := set.Register(fixture.Fixture{
		Name:     "member",
		Requires: []string{"portal"},
		Setup: func(ctx context.Context, env *fixture.Env) error {
			p := env.Get("portal").(*portal.Portal)
			cli, err := p.Session(types.RoleOwner)
			if err != nil {
				return err
			}
			profile, err := people.NewService(cli).AddMember(ctx, p.Store, types.RoleRoomAdmin)
			if err != nil {
				return err
			}
			env.Put("member", profile)
			return nil
		},
	}); err != nil {
		t.Fatal("ERROR: Unable to register member fixture:", err)
	}

	if err := set.Register(fixture.Fixture{
		Name:     "room",
		Requires: []string{"member"},
		Setup: func(ctx context.Context, env *fixture.Env) error {
			p := env.Get("portal").(*portal.Portal)
			cli, err := p.Session(types.RoleOwner)
			if err != nil {
				return err
			}
			room, err := sdk.New(cli).CreateRoom(ctx, "Fixture Room", sdk.RoomCustom)
			if err != nil {
				return err
			}
			env.Put("room", room)
			return nil
		},
		Teardown: func(ctx context.Context, env *fixture.Env) error {
			p := env.Get("portal").(*portal.Portal)
			cli, err := p.Session(types.RoleOwner)
			if err != nil {
				return err
			}
			room, ok := env.Get("room").(*sdk.Room)
			if !ok {
				return fmt.Errorf("room fixture left no artifact")
			}
			return sdk.New(cli).DeleteRoom(ctx, room.ID)
		},
	}); err != nil {
		t.Fatal("ERROR: Unable to register room fixture:", err)
	}

	ctx := context.Background()
	if err := set.Up(ctx); err != nil {
		t.Fatal("ERROR: Fixture setup failed:", err)
	}

	t.Run("Artifacts are in place", func(t *testing.T) {
		if set.Env().Get("member").(types.Profile).ID == "" {
			t.Error("ERROR: Member fixture left no profile")
		}
		if set.Env().Get("room").(*sdk.Room).ID == 0 {
			t.Error("ERROR: Room fixture left no room")
		}
	})

	for _, err := range set.Down(ctx) {
		t.Error("ERROR: Teardown failure:", err)
	}
}
