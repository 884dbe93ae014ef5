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

package sdk

import (
	"context"
	"fmt"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
)

// EnableUserQuota turns the per-user storage quota on with the given default
func (s *SDK) EnableUserQuota(ctx context.Context, defaultQuota int64) error {
	return s.setUserQuotaSettings(ctx, true, defaultQuota)
}

// DisableUserQuota turns the per-user storage quota off portal-wide
func (s *SDK) DisableUserQuota(ctx context.Context) error {
	return s.setUserQuotaSettings(ctx, false, -1)
}

func (s *SDK) setUserQuotaSettings(ctx context.Context, enable bool, defaultQuota int64) error {
	res, err := s.cli.Post(ctx, "/api/2.0/settings/userquotasettings", map[string]any{
		"enableQuota":  enable,
		"defaultQuota": defaultQuota,
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("quota settings update failed with status %d: %s", res.Status, res.ErrorMessage())
	}
	return nil
}

// EnableRoomQuota turns the per-room storage quota on with the given default
func (s *SDK) EnableRoomQuota(ctx context.Context, defaultQuota int64) error {
	return s.setRoomQuotaSettings(ctx, true, defaultQuota)
}

// DisableRoomQuota turns the per-room storage quota off portal-wide
func (s *SDK) DisableRoomQuota(ctx context.Context) error {
	return s.setRoomQuotaSettings(ctx, false, -1)
}

func (s *SDK) setRoomQuotaSettings(ctx context.Context, enable bool, defaultQuota int64) error {
	res, err := s.cli.Post(ctx, "/api/2.0/settings/roomquotasettings", map[string]any{
		"enableQuota":  enable,
		"defaultQuota": defaultQuota,
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("room quota settings update failed with status %d: %s", res.Status, res.ErrorMessage())
	}
	return nil
}

// SetUserQuota assigns an individual quota limit to members and returns
// their updated profiles so callers can verify what the server applied.
func (s *SDK) SetUserQuota(ctx context.Context, quota int64, userIDs ...string) ([]types.Profile, error) {
	res, err := s.cli.Put(ctx, "/api/2.0/people/userquota", map[string]any{
		"userIds": userIDs,
		"quota":   quota,
	})
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, fmt.Errorf("user quota update failed with status %d: %s", res.Status, res.ErrorMessage())
	}

	var profiles []types.Profile
	if err := res.Decode(&profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// ResetUserQuota drops individual quota limits back to the portal default
func (s *SDK) ResetUserQuota(ctx context.Context, userIDs ...string) ([]types.Profile, error) {
	res, err := s.cli.Put(ctx, "/api/2.0/people/resetquota", map[string]any{
		"userIds": userIDs,
	})
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, fmt.Errorf("user quota reset failed with status %d: %s", res.Status, res.ErrorMessage())
	}

	var profiles []types.Profile
	if err := res.Decode(&profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}
