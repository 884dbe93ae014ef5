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

// Package sdk wraps the DocSpace domain APIs the scenarios exercise: rooms,
// room templates, tags and quota management. Asynchronous server-side
// operations are polled on a bounded schedule, never waited on open-ended.
package sdk

import (
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/client"
)

// SDK issues domain API calls on behalf of one authenticated session
type SDK struct {
	cli *client.Client
}

// New wraps a session-bound client
func New(cli *client.Client) *SDK {
	return &SDK{cli: cli}
}
