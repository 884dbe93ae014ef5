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

// RoomType is the numeric room kind code of the files API
type RoomType int

const (
	RoomFillingForms RoomType = 1
	RoomEditing      RoomType = 2
	RoomCustom       RoomType = 5
	RoomPublic       RoomType = 6
	RoomVirtualData  RoomType = 8
)

// Room is the subset of the files API room object the scenarios care about
type Room struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	RoomType int    `json:"roomType"`
	RootID   int    `json:"rootFolderId"`
}

// fileOperation is one entry of the async file operations feed
type fileOperation struct {
	ID       string `json:"id"`
	Finished bool   `json:"finished"`
	Error    string `json:"error"`
	Progress int    `json:"progress"`
}

// CreateRoom creates a room of the given type and returns its descriptor
func (s *SDK) CreateRoom(ctx context.Context, title string, roomType RoomType) (*Room, error) {
	logger := log.WithFunc("sdk", "create_room").With("title", title, "type", int(roomType))

	res, err := s.cli.Post(ctx, "/api/2.0/files/rooms", map[string]any{
		"title":    title,
		"roomType": int(roomType),
	})
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, fmt.Errorf("room creation failed with status %d: %s", res.Status, res.ErrorMessage())
	}

	var room Room
	if err := res.Decode(&room); err != nil {
		return nil, err
	}

	logger.Debug("room created", "id", room.ID)

	return &room, nil
}

// RoomInfo fetches the current descriptor of a room
func (s *SDK) RoomInfo(ctx context.Context, roomID int) (*Room, error) {
	res, err := s.cli.Get(ctx, fmt.Sprintf("/api/2.0/files/rooms/%d", roomID))
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, fmt.Errorf("room %d lookup failed with status %d: %s", roomID, res.Status, res.ErrorMessage())
	}

	var room Room
	if err := res.Decode(&room); err != nil {
		return nil, err
	}
	return &room, nil
}

// ListRooms returns the rooms visible to the session
func (s *SDK) ListRooms(ctx context.Context) ([]Room, error) {
	res, err := s.cli.Get(ctx, "/api/2.0/files/rooms")
	if err != nil {
		return nil, err
	}
	if !res.OK() {
		return nil, fmt.Errorf("room listing failed with status %d: %s", res.Status, res.ErrorMessage())
	}

	// rooms come wrapped in a folder feed
	var feed struct {
		Folders []Room `json:"folders"`
	}
	if err := res.Decode(&feed); err != nil {
		return nil, err
	}
	return feed.Folders, nil
}

// PinRoom pins a room to the top of the rooms list
func (s *SDK) PinRoom(ctx context.Context, roomID int) error {
	return s.roomPin(ctx, roomID, "pin")
}

// UnpinRoom removes the pin again
func (s *SDK) UnpinRoom(ctx context.Context, roomID int) error {
	return s.roomPin(ctx, roomID, "unpin")
}

func (s *SDK) roomPin(ctx context.Context, roomID int, action string) error {
	res, err := s.cli.Put(ctx, fmt.Sprintf("/api/2.0/files/rooms/%d/%s", roomID, action), nil)
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("room %d %s failed with status %d: %s", roomID, action, res.Status, res.ErrorMessage())
	}
	return nil
}

// ArchiveRoom moves a room to the archive and waits for the server-side
// operation to finish.
func (s *SDK) ArchiveRoom(ctx context.Context, roomID int) error {
	return s.roomTransition(ctx, roomID, "archive")
}

// UnarchiveRoom restores a room from the archive and waits for completion
func (s *SDK) UnarchiveRoom(ctx context.Context, roomID int) error {
	return s.roomTransition(ctx, roomID, "unarchive")
}

func (s *SDK) roomTransition(ctx context.Context, roomID int, action string) error {
	res, err := s.cli.Put(ctx, fmt.Sprintf("/api/2.0/files/rooms/%d/%s", roomID, action), map[string]any{
		"deleteAfter": false,
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("room %d %s failed with status %d: %s", roomID, action, res.Status, res.ErrorMessage())
	}

	return s.WaitForFileOperations(ctx, fmt.Sprintf("room %d %s", roomID, action))
}

// DeleteRoom removes a room permanently and waits for the operation
func (s *SDK) DeleteRoom(ctx context.Context, roomID int) error {
	res, err := s.cli.Delete(ctx, fmt.Sprintf("/api/2.0/files/rooms/%d", roomID), map[string]any{
		"deleteAfter": true,
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("room %d delete failed with status %d: %s", roomID, res.Status, res.ErrorMessage())
	}

	return s.WaitForFileOperations(ctx, fmt.Sprintf("room %d delete", roomID))
}

// WaitForFileOperations polls the file operations feed until the most recent
// operation reports finished. A server-side operation error fails the wait.
func (s *SDK) WaitForFileOperations(ctx context.Context, operation string) error {
	_, err := poll(ctx, operation, DefaultPollTimeout, func(ctx context.Context) (struct{}, bool, error) {
		res, err := s.cli.Get(ctx, "/api/2.0/files/fileops")
		if err != nil {
			return struct{}{}, false, err
		}
		if !res.OK() {
			return struct{}{}, false, fmt.Errorf("fileops query failed with status %d: %s", res.Status, res.ErrorMessage())
		}

		var ops []fileOperation
		if err := res.Decode(&ops); err != nil {
			return struct{}{}, false, err
		}
		if len(ops) == 0 {
			return struct{}{}, true, nil
		}

		last := ops[len(ops)-1]
		if last.Error != "" {
			return struct{}{}, false, fmt.Errorf("server-side operation failed: %s", last.Error)
		}
		return struct{}{}, last.Finished, nil
	})
	return err
}
