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

package fixture

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
)

// recorder builds fixtures that log their lifecycle into a shared trace
type recorder struct {
	trace []string
}

func (r *recorder) fixture(name string, requires ...string) Fixture {
	return Fixture{
		Name:     name,
		Requires: requires,
		Setup: func(ctx context.Context, env *Env) error {
			r.trace = append(r.trace, "up:"+name)
			return nil
		},
		Teardown: func(ctx context.Context, env *Env) error {
			r.trace = append(r.trace, "down:"+name)
			return nil
		},
	}
}

func TestResolveOrdersDependenciesFirst(t *testing.T) {
	r := &recorder{}
	s := NewSet()
	require.NoError(t, s.Register(r.fixture("room", "portal", "user")))
	require.NoError(t, s.Register(r.fixture("portal")))
	require.NoError(t, s.Register(r.fixture("user", "portal")))

	order, err := s.Resolve()
	require.NoError(t, err)
	require.Equal(t, []string{"portal", "user", "room"}, order)
}

func TestResolveDeterministicTieBreak(t *testing.T) {
	r := &recorder{}
	s := NewSet()
	require.NoError(t, s.Register(r.fixture("b")))
	require.NoError(t, s.Register(r.fixture("a")))
	require.NoError(t, s.Register(r.fixture("c")))

	for i := 0; i < 10; i++ {
		order, err := s.Resolve()
		require.NoError(t, err)
		require.Equal(t, []string{"b", "a", "c"}, order)
	}
}

func TestResolveCycleDetected(t *testing.T) {
	r := &recorder{}
	s := NewSet()
	require.NoError(t, s.Register(r.fixture("a", "b")))
	require.NoError(t, s.Register(r.fixture("b", "c")))
	require.NoError(t, s.Register(r.fixture("c", "a")))

	_, err := s.Resolve()
	require.Error(t, err)
	require.Contains(t, err.Error(), "cycle")
}

func TestResolveUnknownDependency(t *testing.T) {
	r := &recorder{}
	s := NewSet()
	require.NoError(t, s.Register(r.fixture("a", "ghost")))

	_, err := s.Resolve()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ghost")
}

func TestRegisterDuplicateName(t *testing.T) {
	r := &recorder{}
	s := NewSet()
	require.NoError(t, s.Register(r.fixture("a")))
	require.Error(t, s.Register(r.fixture("a")))
}

func TestUpDownReverseOrder(t *testing.T) {
	r := &recorder{}
	s := NewSet()
	require.NoError(t, s.Register(r.fixture("portal")))
	require.NoError(t, s.Register(r.fixture("user", "portal")))
	require.NoError(t, s.Register(r.fixture("room", "user")))

	require.NoError(t, s.Up(context.Background()))
	require.Empty(t, s.Down(context.Background()))

	require.Equal(t, []string{
		"up:portal", "up:user", "up:room",
		"down:room", "down:user", "down:portal",
	}, r.trace)
}

func TestUpFailureTearsDownActiveOnly(t *testing.T) {
	r := &recorder{}
	s := NewSet()
	require.NoError(t, s.Register(r.fixture("portal")))
	require.NoError(t, s.Register(Fixture{
		Name:     "user",
		Requires: []string{"portal"},
		Setup: func(ctx context.Context, env *Env) error {
			return fmt.Errorf("people API unavailable")
		},
		Teardown: func(ctx context.Context, env *Env) error {
			r.trace = append(r.trace, "down:user")
			return nil
		},
	}))
	require.NoError(t, s.Register(r.fixture("room", "user")))

	err := s.Up(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), `fixture "user"`)

	// portal came up and went down, the failed and never-started ones did not run teardown
	require.Equal(t, []string{"up:portal", "down:portal"}, r.trace)
	require.Equal(t, StateTornDown, s.State("portal"))
	require.Equal(t, StateFailed, s.State("user"))
	require.Equal(t, StatePending, s.State("room"))
}

func TestDownIsolatesFailures(t *testing.T) {
	var downed []string
	mk := func(name string, fail bool) Fixture {
		return Fixture{
			Name:  name,
			Setup: func(ctx context.Context, env *Env) error { return nil },
			Teardown: func(ctx context.Context, env *Env) error {
				downed = append(downed, name)
				if fail {
					return fmt.Errorf("boom")
				}
				return nil
			},
		}
	}

	s := NewSet()
	require.NoError(t, s.Register(mk("a", false)))
	require.NoError(t, s.Register(mk("b", true)))
	require.NoError(t, s.Register(mk("c", false)))

	require.NoError(t, s.Up(context.Background()))

	errs := s.Down(context.Background())
	require.Len(t, errs, 1)

	var cleanupErr *types.CleanupError
	require.True(t, errors.As(errs[0], &cleanupErr))
	require.Contains(t, cleanupErr.Resource, "b")

	// the failing teardown did not stop the others
	require.Equal(t, []string{"c", "b", "a"}, downed)
}

func TestDownIdempotent(t *testing.T) {
	r := &recorder{}
	s := NewSet()
	require.NoError(t, s.Register(r.fixture("portal")))

	require.NoError(t, s.Up(context.Background()))
	require.Empty(t, s.Down(context.Background()))
	require.Empty(t, s.Down(context.Background()))

	require.Equal(t, []string{"up:portal", "down:portal"}, r.trace)
}

func TestEnvHandsArtifactsDownstream(t *testing.T) {
	s := NewSet()
	require.NoError(t, s.Register(Fixture{
		Name: "portal",
		Setup: func(ctx context.Context, env *Env) error {
			env.Put("portal.domain", "autotest-abc.example.com")
			return nil
		},
	}))
	require.NoError(t, s.Register(Fixture{
		Name:     "room",
		Requires: []string{"portal"},
		Setup: func(ctx context.Context, env *Env) error {
			if env.Get("portal.domain") == nil {
				return fmt.Errorf("portal not provisioned")
			}
			env.Put("room.id", 42)
			return nil
		},
	}))

	require.NoError(t, s.Up(context.Background()))
	require.Equal(t, 42, s.Env().Get("room.id"))
	require.Empty(t, s.Down(context.Background()))
}
