// Copyright 2016-2020, Pulumi Corporation.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package binder

import (
	"github.com/pulumi/dynexpr/pkg/compiler/bound"
	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
	"github.com/pulumi/dynexpr/pkg/util/contract"
)

// Scope holds the named values an expression may refer to without a target.  Scopes nest; lookups walk outward.
type Scope struct {
	parent    *Scope
	variables map[string]*bound.Parameter
}

// NewScope allocates an empty root scope.
func NewScope() *Scope {
	return &Scope{variables: make(map[string]*bound.Parameter)}
}

// Push creates a new, empty scope parented to this one.
func (s *Scope) Push() *Scope {
	child := NewScope()
	child.parent = s
	return child
}

// Pop returns the parent scope, or nil if this is the root.
func (s *Scope) Pop() *Scope {
	return s.parent
}

// Lookup finds a named value, searching outward through enclosing scopes.
func (s *Scope) Lookup(nm string) (*bound.Parameter, bool) {
	for s != nil {
		if p, exists := s.variables[nm]; exists {
			contract.Assert(p != nil)
			return p, true
		}
		s = s.parent
	}
	return nil, false
}

// Register declares a named value in this scope; if one by that name already exists here, it returns false.
func (s *Scope) Register(p *bound.Parameter) bool {
	contract.Require(p != nil, "p")
	if _, exists := s.variables[p.Name]; exists {
		return false
	}
	s.variables[p.Name] = p
	return true
}

// MustRegister declares a named value, failing if the name is already taken in this scope.
func (s *Scope) MustRegister(nm string, t *symbols.Type) *bound.Parameter {
	p := bound.NewParameter(nil, nm, t)
	ok := s.Register(p)
	contract.Assertf(ok, "Expected parameter '%v' to be unique in its scope", nm)
	return p
}
