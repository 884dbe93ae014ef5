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

// Package types holds the shared data model of the DocSpace test harness:
// the closed set of portal roles, generated identities, session tokens and
// the harness error taxonomy.
package types

import "fmt"

// Role is a closed enum of the DocSpace permission levels the harness works with.
// Using a dedicated type instead of free-form strings means an unknown role is
// rejected when it's constructed, not when an HTTP call mysteriously fails.
type Role string

const (
	RoleOwner         Role = "owner"
	RoleDocSpaceAdmin Role = "docSpaceAdmin"
	RoleRoomAdmin     Role = "roomAdmin"
	RoleUser          Role = "user"
	RoleGuest         Role = "guest"
)

// AllRoles lists every known role in permission order, owner first.
var AllRoles = []Role{RoleOwner, RoleDocSpaceAdmin, RoleRoomAdmin, RoleUser, RoleGuest}

// payloadTypes maps a role to the "type" field the people API expects.
// The owner is never created through POST /people - it comes with the portal.
var payloadTypes = map[Role]string{
	RoleDocSpaceAdmin: "DocSpaceAdmin",
	RoleRoomAdmin:     "RoomAdmin",
	RoleUser:          "User",
	RoleGuest:         "Guest",
}

// ParseRole validates a role name and returns the typed value
func ParseRole(name string) (Role, error) {
	for _, role := range AllRoles {
		if string(role) == name {
			return role, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", name)
}

// PayloadType returns the people API "type" field value for the role.
// Errors for the owner role since the platform creates the owner itself.
func (r Role) PayloadType() (string, error) {
	t, ok := payloadTypes[r]
	if !ok {
		return "", fmt.Errorf("role %q cannot be provisioned via the people API", r)
	}
	return t, nil
}

// Valid checks the role belongs to the closed set
func (r Role) Valid() bool {
	if r == RoleOwner {
		return true
	}
	_, ok := payloadTypes[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}
