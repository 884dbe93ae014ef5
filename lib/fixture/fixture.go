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

// Package fixture composes test environment pieces with explicit dependencies.
// Fixtures declare what they require, the set resolves a deterministic setup
// order and guarantees that everything that came up also goes down, in
// reverse order, even when setup aborts halfway.
package fixture

import (
	"context"
	"fmt"
	"sync"

	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/log"
	"github.com/ONLYOFFICE/DocSpace-e2e-tests-sub002/lib/types"
)

// State tracks the lifecycle position of one fixture
type State int

const (
	// StatePending means setup has not run yet
	StatePending State = iota
	// StateActive means setup completed and teardown is owed
	StateActive
	// StateFailed means setup errored, teardown must not run
	StateFailed
	// StateTornDown means teardown has completed (or was attempted)
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateActive:
		return "active"
	case StateFailed:
		return "failed"
	case StateTornDown:
		return "torndown"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Env is the shared bag fixtures use to hand artifacts down the chain,
// for example the provisioned portal or a created room id.
type Env struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewEnv creates an empty environment
func NewEnv() *Env {
	return &Env{values: make(map[string]any)}
}

// Put stores a value under a key
func (e *Env) Put(key string, value any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.values[key] = value
}

// Get returns a stored value, nil when absent
func (e *Env) Get(key string) any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.values[key]
}

// Fixture is one composable piece of the test environment
type Fixture struct {
	// Name identifies the fixture, also the key others use in Requires
	Name string

	// Requires lists fixture names that must be active before this one
	Requires []string

	// Setup brings the fixture up. Artifacts go into the Env.
	Setup func(ctx context.Context, env *Env) error

	// Teardown releases what Setup created. Optional. Must tolerate being
	// called with a partially working environment.
	Teardown func(ctx context.Context, env *Env) error
}

// Set is an ordered collection of fixtures sharing one Env
type Set struct {
	env      *Env
	fixtures map[string]*Fixture
	names    []string // registration order, the tie-breaker for resolution
	states   map[string]State
	upOrder  []string // the order setup actually ran in
}

// NewSet creates an empty fixture set
func NewSet() *Set {
	return &Set{
		env:      NewEnv(),
		fixtures: make(map[string]*Fixture),
		states:   make(map[string]State),
	}
}

// Env exposes the shared environment of the set
func (s *Set) Env() *Env {
	return s.env
}

// Register adds a fixture to the set. Names must be unique.
func (s *Set) Register(f Fixture) error {
	if f.Name == "" {
		return fmt.Errorf("fixture name must not be empty")
	}
	if f.Setup == nil {
		return fmt.Errorf("fixture %q has no setup", f.Name)
	}
	if _, ok := s.fixtures[f.Name]; ok {
		return fmt.Errorf("fixture %q registered twice", f.Name)
	}
	fix := f
	s.fixtures[f.Name] = &fix
	s.names = append(s.names, f.Name)
	s.states[f.Name] = StatePending
	return nil
}

// State returns the lifecycle state of a fixture
func (s *Set) State(name string) State {
	return s.states[name]
}

// Resolve computes the setup order: every fixture after its dependencies,
// ties broken by registration order so the result is deterministic. Unknown
// dependencies and cycles are detected here, before anything runs.
func (s *Set) Resolve() ([]string, error) {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	marks := make(map[string]int, len(s.names))
	var order []string

	var visit func(name string, chain []string) error
	visit = func(name string, chain []string) error {
		fix, ok := s.fixtures[name]
		if !ok {
			return fmt.Errorf("fixture %q requires unknown fixture %q", chain[len(chain)-1], name)
		}
		switch marks[name] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("dependency cycle involving fixture %q (chain: %v)", name, append(chain, name))
		}
		marks[name] = visiting
		for _, dep := range fix.Requires {
			if err := visit(dep, append(chain, name)); err != nil {
				return err
			}
		}
		marks[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range s.names {
		if err := visit(name, []string{name}); err != nil {
			return nil, err
		}
	}

	return order, nil
}

// Up brings the whole set up in resolved order. When one setup fails,
// everything already active is torn down in reverse before the error
// returns, so a failed Up never leaks resources.
func (s *Set) Up(ctx context.Context) error {
	logger := log.WithFunc("fixture", "up")

	order, err := s.Resolve()
	if err != nil {
		return err
	}

	for _, name := range order {
		fix := s.fixtures[name]
		logger.Debug("fixture setup", "name", name)

		if err := fix.Setup(ctx, s.env); err != nil {
			s.states[name] = StateFailed
			logger.Error("fixture setup failed", "name", name, "err", err)

			for _, terr := range s.Down(ctx) {
				logger.Error("teardown after failed setup", "err", terr)
			}
			return fmt.Errorf("setup of fixture %q failed: %w", name, err)
		}

		s.states[name] = StateActive
		s.upOrder = append(s.upOrder, name)
	}

	return nil
}

// Down tears the set down in reverse setup order. Only fixtures that
// actually became active are touched. Each teardown failure is collected as
// a CleanupError and never stops the remaining teardowns. Calling Down
// again is a no-op.
func (s *Set) Down(ctx context.Context) []error {
	logger := log.WithFunc("fixture", "down")

	var errs []error
	for i := len(s.upOrder) - 1; i >= 0; i-- {
		name := s.upOrder[i]
		if s.states[name] != StateActive {
			continue
		}
		s.states[name] = StateTornDown

		fix := s.fixtures[name]
		if fix.Teardown == nil {
			continue
		}
		logger.Debug("fixture teardown", "name", name)

		if err := fix.Teardown(ctx, s.env); err != nil {
			errs = append(errs, &types.CleanupError{Resource: "fixture " + name, Err: err})
		}
	}
	s.upOrder = nil

	return errs
}
