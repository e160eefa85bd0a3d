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
	"sync"

	"github.com/pulumi/dynexpr/pkg/util/contract"
)

// TypeKind classifies a type descriptor.
type TypeKind int

const (
	PrimitiveKind TypeKind = iota
	ClassKind
	InterfaceKind
	EnumKind
	NullableKind
	ArrayKind
	DelegateKind
)

func (k TypeKind) String() string {
	switch k {
	case PrimitiveKind:
		return "primitive"
	case ClassKind:
		return "class"
	case InterfaceKind:
		return "interface"
	case EnumKind:
		return "enum"
	case NullableKind:
		return "nullable"
	case ArrayKind:
		return "array"
	case DelegateKind:
		return "delegate"
	default:
		return "unknown"
	}
}

// Type describes a type known to the binder: its name, its place in the inheritance hierarchy, and its members.
// Everything but the member list is fixed at construction; members may be added until the type is first used for
// binding, and are guarded by a per-type lock so that readers never observe a partially appended list.
type Type struct {
	Nm         string
	Kind       TypeKind
	Extends    *Type   // the base type; nil for object, interfaces, and the special null and void types.
	Implements []*Type // directly implemented interfaces (for an interface, the interfaces it extends).
	Underlying *Type   // the underlying type of an enum or nullable.
	Element    *Type   // the element type of an array.

	valueType bool
	lock      sync.RWMutex
	members   []*Member
	byName    map[string][]*Member
}

func newType(nm string, kind TypeKind, extends *Type, valueType bool) *Type {
	return &Type{
		Nm:        nm,
		Kind:      kind,
		Extends:   extends,
		valueType: valueType,
		byName:    make(map[string][]*Member),
	}
}

func (t *Type) Name() string   { return t.Nm }
func (t *Type) String() string { return t.Nm }

func (t *Type) IsPrimitive() bool { return t.Kind == PrimitiveKind }
func (t *Type) IsClass() bool     { return t.Kind == ClassKind }
func (t *Type) IsInterface() bool { return t.Kind == InterfaceKind }
func (t *Type) IsEnum() bool      { return t.Kind == EnumKind }
func (t *Type) IsNullable() bool  { return t.Kind == NullableKind }
func (t *Type) IsArray() bool     { return t.Kind == ArrayKind }
func (t *Type) IsDelegate() bool  { return t.Kind == DelegateKind }

// IsValueType returns true for types whose values can never be null: the non-reference primitives, enums, and
// nullable wrappers (which are values that carry their own "no value" state).
func (t *Type) IsValueType() bool { return t.valueType }

// IsReferenceType returns true if the null literal is a valid value of this type.
func (t *Type) IsReferenceType() bool {
	return !t.valueType && t != Null && t != Void
}

// UnderlyingType returns the integral type beneath an enum, or the value type wrapped by a nullable; nil otherwise.
func (t *Type) UnderlyingType() *Type {
	if t.IsEnum() || t.IsNullable() {
		return t.Underlying
	}
	return nil
}

// ElementType returns the element type of an array, or nil.
func (t *Type) ElementType() *Type {
	if t.IsArray() {
		return t.Element
	}
	return nil
}

// Base returns the immediate base type, if any.
func (t *Type) Base() *Type { return t.Extends }

// BaseTypes returns the type itself followed by all of its ancestors, nearest first.  Interfaces have no base class,
// but every interface value is still an object, so object closes their chain too.
func (t *Type) BaseTypes() []*Type {
	bases := []*Type{t}
	for b := t.Extends; b != nil; b = b.Extends {
		bases = append(bases, b)
	}
	if t.IsInterface() {
		bases = append(bases, Object)
	}
	return bases
}

// Interfaces returns every interface this type implements, including those implemented by ancestors and those
// extended by implemented interfaces.  The result is deduplicated and in discovery order; an interface does not
// list itself.
func (t *Type) Interfaces() []*Type {
	var result []*Type
	seen := make(map[*Type]bool)
	var visit func(*Type)
	visit = func(i *Type) {
		if seen[i] {
			return
		}
		seen[i] = true
		result = append(result, i)
		for _, ii := range i.Implements {
			visit(ii)
		}
	}
	for _, b := range t.BaseTypes() {
		for _, i := range b.Implements {
			visit(i)
		}
	}
	return result
}

// DerivesFrom returns true if other is this type, one of its ancestors, or one of its interfaces.
func (t *Type) DerivesFrom(other *Type) bool {
	for _, b := range t.BaseTypes() {
		if b == other {
			return true
		}
	}
	for _, i := range t.Interfaces() {
		if i == other {
			return true
		}
	}
	return false
}

// AddMember declares a new member on this type and returns it.
func (t *Type) AddMember(m *Member) *Member {
	contract.Require(m != nil, "m")
	contract.Requiref(m.Declaring == nil, "m", "member %v is already declared on %v", m.Name, m.Declaring)
	contract.Requiref(m.Kind != ConversionMember || len(m.Parameters) == 1,
		"m", "conversion operators take exactly one parameter")

	t.lock.Lock()
	defer t.lock.Unlock()
	m.Declaring = t
	m.Ordinal = len(t.members)
	t.members = append(t.members, m)
	t.byName[m.Name] = append(t.byName[m.Name], m)
	return m
}

// Members returns the members declared directly on this type, in declaration order.
func (t *Type) Members() []*Member {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return append([]*Member(nil), t.members...)
}

// DeclaredMembers returns the members named name declared directly on this type, in declaration order.
func (t *Type) DeclaredMembers(name string) []*Member {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return append([]*Member(nil), t.byName[name]...)
}

// Conversions returns the user-defined conversion operators declared on this type.
func (t *Type) Conversions() []*Member {
	t.lock.RLock()
	defer t.lock.RUnlock()
	var convs []*Member
	for _, m := range t.members {
		if m.Kind == ConversionMember {
			convs = append(convs, m)
		}
	}
	return convs
}

// lookupChain is the order in which members are searched: the type and its ancestors, then (for interfaces)
// the interfaces it extends.
func (t *Type) lookupChain() []*Type {
	if t.IsInterface() {
		return append(append([]*Type{t}, t.Interfaces()...), Object)
	}
	return t.BaseTypes()
}

// GetMembers returns all members named name that are visible on this type: its own first, then inherited ones.  An
// inherited member is hidden when a member with the same signature was already found further down the hierarchy.
func (t *Type) GetMembers(name string) []*Member {
	var result []*Member
	seen := make(map[string]bool)
	for _, b := range t.lookupChain() {
		for _, m := range b.DeclaredMembers(name) {
			sig := m.Signature()
			if !seen[sig] {
				seen[sig] = true
				result = append(result, m)
			}
		}
	}
	return result
}

// MemberNames returns the sorted names of all members visible on this type.
func (t *Type) MemberNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, b := range t.lookupChain() {
		for _, m := range b.Members() {
			if m.Kind != ConversionMember && !seen[m.Name] {
				seen[m.Name] = true
				names = append(names, m.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// InvokeMethod returns the designated instance method through which a delegate is invoked, or nil if this isn't a
// delegate type.
func (t *Type) InvokeMethod() *Member {
	if !t.IsDelegate() {
		return nil
	}
	for _, m := range t.DeclaredMembers(DelegateInvokeName) {
		if m.IsCallable() && !m.Static {
			return m
		}
	}
	return nil
}
