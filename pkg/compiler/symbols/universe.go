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

package symbols

import (
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// Universe is an explicitly populated set of named types against which type references are resolved.  A fresh
// universe knows only the primitive types, their aliases, and System.Type.
type Universe struct {
	lock  sync.RWMutex
	types map[string]*Type
}

// NewUniverse creates a universe holding the primitive types.
func NewUniverse() *Universe {
	u := &Universe{types: make(map[string]*Type)}
	for _, p := range Primitives {
		u.types[p.Name()] = p
	}
	u.types[TypeInfo.Name()] = TypeInfo
	for alias, p := range PrimitiveAliases {
		u.types[alias] = p
	}
	return u
}

// Declare adds a named type to the universe.  It is an error to declare the same name twice.
func (u *Universe) Declare(t *Type) error {
	u.lock.Lock()
	defer u.lock.Unlock()
	if existing, has := u.types[t.Name()]; has {
		return errors.Errorf("type '%v' is already declared (as a %v)", t.Name(), existing.Kind)
	}
	logging.V(7).Infof("Declared %v '%v'", t.Kind, t.Name())
	u.types[t.Name()] = t
	return nil
}

// Lookup finds a type by its exact name (or a primitive alias).
func (u *Universe) Lookup(nm string) (*Type, bool) {
	u.lock.RLock()
	defer u.lock.RUnlock()
	t, has := u.types[nm]
	return t, has
}

// ResolveType resolves a type reference.  Besides plain names, a reference may carry any number of "[]" (array) and
// "?" (nullable) suffixes; "?" may only be applied to value types.
func (u *Universe) ResolveType(ref string) (*Type, bool) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return nil, false
	case strings.HasSuffix(ref, "[]"):
		elem, ok := u.ResolveType(ref[:len(ref)-2])
		if !ok {
			return nil, false
		}
		return NewArrayType(elem), true
	case strings.HasSuffix(ref, "?"):
		elem, ok := u.ResolveType(ref[:len(ref)-1])
		if !ok || !elem.IsValueType() || elem.IsNullable() {
			return nil, false
		}
		return NewNullableType(elem), true
	default:
		return u.Lookup(ref)
	}
}

// Types returns every distinct type in the universe, sorted by name.
func (u *Universe) Types() []*Type {
	u.lock.RLock()
	defer u.lock.RUnlock()
	seen := make(map[*Type]bool)
	var result []*Type
	for _, t := range u.types {
		if !seen[t] {
			seen[t] = true
			result = append(result, t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name() < result[j].Name() })
	return result
}
