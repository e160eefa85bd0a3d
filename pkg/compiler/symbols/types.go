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
	"bytes"
	"fmt"
	"sync"

	"github.com/pulumi/dynexpr/pkg/util/contract"
)

// DelegateInvokeName is the name of the instance method through which every delegate is invoked.
const DelegateInvokeName = "Invoke"

// NewClassType creates a class deriving from extends (object when nil) and implementing the given interfaces.
func NewClassType(nm string, extends *Type, implements ...*Type) *Type {
	contract.Require(nm != "", "nm")
	if extends == nil {
		extends = Object
	}
	contract.Requiref(!extends.IsInterface(), "extends", "class %v cannot extend interface %v", nm, extends)
	for _, i := range implements {
		contract.Requiref(i.IsInterface(), "implements", "class %v cannot implement non-interface %v", nm, i)
	}
	t := newType(nm, ClassKind, extends, false)
	t.Implements = implements
	return t
}

// NewInterfaceType creates an interface extending the given interfaces.
func NewInterfaceType(nm string, extends ...*Type) *Type {
	contract.Require(nm != "", "nm")
	for _, i := range extends {
		contract.Requiref(i.IsInterface(), "extends", "interface %v cannot extend non-interface %v", nm, i)
	}
	t := newType(nm, InterfaceKind, nil, false)
	t.Implements = extends
	return t
}

// NewEnumType creates an enumeration whose values are stored as the given integral type.
func NewEnumType(nm string, underlying *Type) *Type {
	contract.Require(nm != "", "nm")
	contract.Requiref(underlying != nil && IsIntegral(underlying),
		"underlying", "enum %v must have an integral underlying type", nm)
	t := newType(nm, EnumKind, Object, true)
	t.Underlying = underlying
	return t
}

// NewNamedDelegateType creates a distinct delegate type with the given name and signature.  Unlike NewDelegateType,
// two calls with the same arguments produce two different types.
func NewNamedDelegateType(nm string, params []*Type, result *Type) *Type {
	contract.Require(nm != "", "nm")
	return newDelegateType(nm, params, result)
}

func newDelegateType(nm string, params []*Type, result *Type) *Type {
	t := newType(nm, DelegateKind, Object, false)
	ps := make([]*Parameter, len(params))
	for i, p := range params {
		ps[i] = NewParameter(fmt.Sprintf("arg%d", i), p)
	}
	t.AddMember(NewMethod(DelegateInvokeName, false, result, ps...))
	return t
}

// Constructed types are memoized for the life of the process, so that pointer equality is type identity.
var (
	typeCacheLock     sync.Mutex
	nullableTypeCache = make(map[*Type]*Type)
	arrayTypeCache    = make(map[*Type]*Type)
	delegateTypeCache = make(map[string]*Type)
)

// NewNullableType returns an existing nullable wrapper of elem from the cache, if one exists, or allocates a new one
// otherwise.
func NewNullableType(elem *Type) *Type {
	contract.Require(elem != nil, "elem")
	contract.Requiref(elem.IsValueType() && !elem.IsNullable(),
		"elem", "only non-nullable value types can be made nullable (got %v)", elem)

	typeCacheLock.Lock()
	defer typeCacheLock.Unlock()
	if t, has := nullableTypeCache[elem]; has {
		return t
	}

	t := newType(elem.Name()+"?", NullableKind, Object, true)
	t.Underlying = elem
	t.AddMember(NewProperty("HasValue", false, Bool))
	t.AddMember(NewProperty("Value", false, elem))
	t.AddMember(NewMethod("GetValueOrDefault", false, elem))
	nullableTypeCache[elem] = t
	return t
}

// NewArrayType returns an existing array type from the cache, if one exists, or allocates a new one otherwise.
func NewArrayType(elem *Type) *Type {
	contract.Require(elem != nil, "elem")

	typeCacheLock.Lock()
	defer typeCacheLock.Unlock()
	if t, has := arrayTypeCache[elem]; has {
		return t
	}

	t := newType(elem.Name()+"[]", ArrayKind, Object, false)
	t.Element = elem
	t.AddMember(NewProperty("Length", false, Int32))
	arrayTypeCache[elem] = t
	return t
}

// NewDelegateType returns an existing anonymous delegate type with the given signature from the cache, if one exists,
// or allocates a new one otherwise.  A nil result means the delegate returns nothing.
func NewDelegateType(params []*Type, result *Type) *Type {
	if result == nil {
		result = Void
	}

	// The cache key is made of type identities rather than names; distinct universes may reuse a name.
	var key bytes.Buffer
	var nm bytes.Buffer
	nm.WriteString("func(")
	for i, p := range params {
		contract.Requiref(p != nil, "params", "delegate parameter %d is nil", i)
		if i > 0 {
			nm.WriteString(", ")
		}
		nm.WriteString(p.Name())
		fmt.Fprintf(&key, "%p,", p)
	}
	nm.WriteRune(')')
	if result != Void {
		nm.WriteRune(' ')
		nm.WriteString(result.Name())
	}
	fmt.Fprintf(&key, "->%p", result)

	typeCacheLock.Lock()
	defer typeCacheLock.Unlock()
	if t, has := delegateTypeCache[key.String()]; has {
		return t
	}

	t := newDelegateType(nm.String(), params, result)
	delegateTypeCache[key.String()] = t
	return t
}
