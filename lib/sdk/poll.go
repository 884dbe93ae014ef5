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
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
)

// DefaultPollTimeout bounds every asynchronous operation wait
const DefaultPollTimeout = 30 * time.Second

// pollIntervals is the wait schedule between probes. The first checks come
// quickly since most operations finish fast, then the pace settles at the
// last interval until the timeout.
var pollIntervals = []time.Duration{time.Second, 2 * time.Second, 5 * time.Second}

var errNotFinished = errors.New("operation still in progress")

// schedule is a backoff.BackOff walking a fixed interval list and staying on
// the last entry once reached.
type schedule struct {
	intervals []time.Duration
	idx       int
}

func newSchedule() *schedule {
	return &schedule{intervals: pollIntervals}
}

func (s *schedule) NextBackOff() time.Duration {
	d := s.intervals[s.idx]
	if s.idx < len(s.intervals)-1 {
		s.idx++
	}
	return d
}

func (s *schedule) Reset() {
	s.idx = 0
}

// poll repeatedly runs probe until it reports done, a probe error occurs or
// the timeout expires. Probe errors stop the poll immediately, an expired
// schedule surfaces as OperationTimeoutError.
func poll[T any](ctx context.Context, operation string, timeout time.Duration, probe func(ctx context.Context) (T, bool, error)) (T, error) {
	op := func() (T, error) {
		value, done, err := probe(ctx)
		if err != nil {
			var zero T
			return zero, backoff.Permanent(err)
		}
		if !done {
			return value, errNotFinished
		}
		return value, nil
	}

	value, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(newSchedule()),
		backoff.WithMaxElapsedTime(timeout),
	)
	if err != nil {
		var zero T
		if errors.Is(err, errNotFinished) {
			return zero, &types.OperationTimeoutError{Operation: operation, Timeout: timeout}
		}
		return zero, err
	}
	return value, nil
}
