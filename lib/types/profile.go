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

package types

import "time"

// Credentials is the username/password pair used for the authentication exchange
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the generated identity of a provisioned portal member plus the
// permission flags the people API reports back for it.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`

	IsOwner        bool `json:"isOwner"`
	IsAdmin        bool `json:"isAdmin"`
	IsRoomAdmin    bool `json:"isRoomAdmin"`
	IsCollaborator bool `json:"isCollaborator"`
	IsVisitor      bool `json:"isVisitor"`
	IsLDAP         bool `json:"isLDAP"`

	QuotaLimit int64 `json:"quotaLimit,omitempty"`
}

// Credentials returns the login pair of the profile
func (p *Profile) Credentials() Credentials {
	return Credentials{Email: p.Email, Password: p.Password}
}

// Session is the opaque auth cookie obtained for a role on a portal
type Session struct {
	Role       Role      `json:"role"`
	Cookie     string    `json:"cookie"`
	AcquiredAt time.Time `json:"acquiredAt"`
}

// Tenant describes a provisioned portal
type Tenant struct {
	Name      string    `json:"name"`
	Domain    string    `json:"domain"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}
