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
)

// CreateTag registers a portal-wide room tag
func (s *SDK) CreateTag(ctx context.Context, name string) error {
	res, err := s.cli.Post(ctx, "/api/2.0/files/tags", map[string]string{
		"name": name,
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("tag %q creation failed with status %d: %s", name, res.Status, res.ErrorMessage())
	}
	return nil
}

// ListTags returns the portal-wide room tags
func (s *SDK) ListTags(ctx context.Context) ([]string, error) {
	res, err := s.cli.Get(ctx, "/api/2.0/files/tags")
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, fmt.Errorf("tag listing failed with status %d: %s", res.Status, res.ErrorMessage())
	}

	var tags []string
	if err := res.Decode(&tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// TagRoom attaches existing tags to a room
func (s *SDK) TagRoom(ctx context.Context, roomID int, names ...string) error {
	res, err := s.cli.Put(ctx, fmt.Sprintf("/api/2.0/files/rooms/%d/tags", roomID), map[string]any{
		"names": names,
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("tagging room %d failed with status %d: %s", roomID, res.Status, res.ErrorMessage())
	}
	return nil
}
