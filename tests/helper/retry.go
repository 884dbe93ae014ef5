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

package helper

import (
	"fmt"
	"time"
)

// Failer is the subset of testing.T the retry loop needs
type Failer interface {
	Helper()

	// Log is called for the final output of the abandoned retry
	Log(args ...any)

	// FailNow is called when retrying is abandoned
	FailNow()
}

// R collects failures of a single retry attempt
type R struct {
	fail   bool
	output []string
}

// Helper marks R as a test helper
func (*R) Helper() {}

var attemptFailed = struct{}{}

// FailNow aborts the current attempt
func (r *R) FailNow() {
	r.fail = true
	panic(attemptFailed)
}

// Fatalf logs and aborts the current attempt
func (r *R) Fatalf(format string, args ...any) {
	r.output = append(r.output, fmt.Sprintf(format, args...))
	r.FailNow()
}

// Errorf logs and marks the attempt failed without aborting it
func (r *R) Errorf(format string, args ...any) {
	r.output = append(r.output, fmt.Sprintf(format, args...))
	r.fail = true
}

// Check aborts the attempt on a non-nil error
func (r *R) Check(err error) {
	if err != nil {
		r.output = append(r.output, err.Error())
		r.FailNow()
	}
}

// Retryer decides whether another attempt should run
type Retryer interface {
	// Continue returns true while the operation should be repeated
	Continue() bool
}

// Counter retries a fixed number of times with a wait in between
type Counter struct {
	Count int
	Wait  time.Duration

	attempts int
}

// Continue the counter
func (c *Counter) Continue() bool {
	if c.attempts == c.Count {
		return false
	}
	if c.attempts > 0 {
		time.Sleep(c.Wait)
	}
	c.attempts++
	return true
}

// Timer retries until a deadline with a wait in between
type Timer struct {
	Timeout time.Duration
	Wait    time.Duration

	// deadline is set on the first Continue call
	deadline time.Time
}

// Continue the timer
func (t *Timer) Continue() bool {
	if t.deadline.IsZero() {
		t.deadline = time.Now().Add(t.Timeout)
		return true
	}
	if time.Now().After(t.deadline) {
		return false
	}
	time.Sleep(t.Wait)
	return true
}

// Retry runs f until it passes or the retryer gives up. Used by integration
// tests for assertions on eventually-consistent portal state.
func Retry(retryer Retryer, t Failer, f func(r *R)) {
	t.Helper()

	r := &R{}
	for retryer.Continue() {
		func() {
			defer func() {
				if p := recover(); p != nil && p != attemptFailed {
					panic(p)
				}
			}()
			f(r)
		}()

		if !r.fail {
			return
		}
		r.fail = false
	}

	for _, line := range r.output {
		t.Log(line)
	}
	t.FailNow()
}
