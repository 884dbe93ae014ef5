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

import (
	"fmt"
	"time"
)

// ProvisioningError means the portal could not be created or did not become
// reachable in time. It is fatal for the test run - the harness does not retry.
type ProvisioningError struct {
	Portal string
	Err    error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning of portal %q failed: %v", e.Portal, e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

// AuthenticationError means a credential exchange failed or produced no usable
// token. Propagates to fail any fixture depending on the identity - a bad
// password is a configuration problem, not a transient fault.
type AuthenticationError struct {
	Role   Role
	Status int
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication of role %q failed: %v", e.Role, e.Err)
	}
	return fmt.Sprintf("authentication of role %q failed with status %d", e.Role, e.Status)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// OperationTimeoutError means a polled asynchronous server-side operation did
// not report completion within the bounded schedule.
type OperationTimeoutError struct {
	Operation string
	Timeout   time.Duration
}

func (e *OperationTimeoutError) Error() string {
	return fmt.Sprintf("operation %q did not complete within %s", e.Operation, e.Timeout)
}

// CleanupError wraps a teardown failure. It is logged by the caller and never
// re-raised in a way that could mask the original test result.
type CleanupError struct {
	Resource string
	Err      error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup of %s failed: %v", e.Resource, e.Err)
}

func (e *CleanupError) Unwrap() error { return e.Err }
