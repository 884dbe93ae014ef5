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

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/log"
)

// TemplateStatus is the roomtemplate progress report
type TemplateStatus struct {
	TemplateID  int    `json:"templateId"`
	Progress    int    `json:"progress"`
	IsCompleted bool   `json:"isCompleted"`
	Error       string `json:"error"`
}

// StartRoomTemplate kicks off template creation from an existing room.
// Completion has to be awaited separately via TemplateStatus polling.
func (s *SDK) StartRoomTemplate(ctx context.Context, roomID int, title string) error {
	res, err := s.cli.Post(ctx, "/api/2.0/files/roomtemplate", map[string]any{
		"roomId": roomID,
		"title":  title,
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("template creation for room %d failed with status %d: %s",
			roomID, res.Status, res.ErrorMessage())
	}
	return nil
}

// TemplateStatus fetches the current template creation progress
func (s *SDK) TemplateStatus(ctx context.Context) (*TemplateStatus, error) {
	res, err := s.cli.Get(ctx, "/api/2.0/files/roomtemplate/status")
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, fmt.Errorf("template status query failed with status %d: %s", res.Status, res.ErrorMessage())
	}

	var status TemplateStatus
	if err := res.Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}

// SetTemplateAvailable toggles whether the template is visible to everyone
// on the portal or only to its owner.
func (s *SDK) SetTemplateAvailable(ctx context.Context, templateID int, public bool) error {
	res, err := s.cli.Put(ctx, "/api/2.0/files/roomtemplate/public", map[string]any{
		"id":     templateID,
		"public": public,
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("template %d availability update failed with status %d: %s",
			templateID, res.Status, res.ErrorMessage())
	}
	return nil
}

// TemplateAvailable reports whether the template is public on the portal
func (s *SDK) TemplateAvailable(ctx context.Context, templateID int) (bool, error) {
	res, err := s.cli.Get(ctx, fmt.Sprintf("/api/2.0/files/roomtemplate/%d/public", templateID))
	if err != nil {
		return false, err
	}
	if !res.OK() {
		return false, fmt.Errorf("template %d availability query failed with status %d: %s",
			templateID, res.Status, res.ErrorMessage())
	}

	var public bool
	if err := res.Decode(&public); err != nil {
		return false, err
	}
	return public, nil
}

// CreateRoomTemplateAndWait creates a template from a room and polls the
// status feed until the server reports completion. A server-reported error
// fails the wait immediately, a silent server runs into the poll timeout.
func (s *SDK) CreateRoomTemplateAndWait(ctx context.Context, roomID int, title string) (int, error) {
	logger := log.WithFunc("sdk", "create_room_template").With("room", roomID, "title", title)

	if err := s.StartRoomTemplate(ctx, roomID, title); err != nil {
		return 0, err
	}

	status, err := poll(ctx, fmt.Sprintf("room %d template creation", roomID), DefaultPollTimeout,
		func(ctx context.Context) (*TemplateStatus, bool, error) {
			status, err := s.TemplateStatus(ctx)
			if err != nil {
				return nil, false, err
			}
			if status.Error != "" {
				return nil, false, fmt.Errorf("template creation failed server-side: %s", status.Error)
			}
			return status, status.IsCompleted, nil
		})
	if err != nil {
		return 0, err
	}

	logger.Debug("template created", "template", status.TemplateID)

	return status.TemplateID, nil
}
