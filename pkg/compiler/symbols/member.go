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

	"github.com/pulumi/dynexpr/pkg/util/contract"
)

// MemberKind classifies a member descriptor.
type MemberKind int

const (
	MethodMember MemberKind = iota
	PropertyMember
	FieldMember
	ConversionMember
)

func (k MemberKind) String() string {
	switch k {
	case MethodMember:
		return "method"
	case PropertyMember:
		return "property"
	case FieldMember:
		return "field"
	case ConversionMember:
		return "conversion"
	default:
		return "unknown"
	}
}

const (
	ImplicitOperatorName = "op_Implicit"
	ExplicitOperatorName = "op_Explicit"
)

// Member describes a method, property, field, or user-defined conversion operator declared on a type.
type Member struct {
	Name       string
	Kind       MemberKind
	Static     bool
	Parameters []*Parameter
	Result     *Type // return type of a method or operator; value type of a property or field.
	Implicit   bool  // true for implicit conversion operators.
	Declaring  *Type // set when the member is added to a type.
	Ordinal    int   // declaration order within the declaring type.
}

// Parameter is a single formal parameter of a callable member.  Position -1 denotes the result slot.
type Parameter struct {
	Position int
	Name     string
	Type     *Type
	Optional bool
	Default  interface{}
	Variadic bool
}

// NewParameter creates a required positional parameter.
func NewParameter(name string, t *Type) *Parameter {
	contract.Require(t != nil, "t")
	return &Parameter{Name: name, Type: t}
}

// NewOptionalParameter creates a parameter that may be omitted; when it is, def is passed in its place (a nil def
// means the parameter type's default value).
func NewOptionalParameter(name string, t *Type, def interface{}) *Parameter {
	p := NewParameter(name, t)
	p.Optional = true
	p.Default = def
	return p
}

// NewVariadicParameter creates a trailing parameter that collects any number of arguments into an array of elem.
func NewVariadicParameter(name string, elem *Type) *Parameter {
	p := NewParameter(name, NewArrayType(elem))
	p.Variadic = true
	return p
}

func (p *Parameter) String() string {
	s := p.Type.String()
	if p.Variadic {
		s = "..." + s
	}
	if p.Name != "" {
		s = p.Name + " " + s
	}
	if p.Optional {
		s += "?"
	}
	return s
}

func newCallable(name string, kind MemberKind, static bool, result *Type, params []*Parameter) *Member {
	for i, p := range params {
		contract.Requiref(p != nil, "params", "parameter %d of %v is nil", i, name)
		contract.Requiref(!p.Variadic || i == len(params)-1,
			"params", "only the last parameter of %v may be variadic", name)
		p.Position = i
	}
	if result == nil {
		result = Void
	}
	return &Member{
		Name:       name,
		Kind:       kind,
		Static:     static,
		Parameters: params,
		Result:     result,
	}
}

// NewMethod creates a method; a nil result means the method returns nothing.
func NewMethod(name string, static bool, result *Type, params ...*Parameter) *Member {
	return newCallable(name, MethodMember, static, result, params)
}

// NewProperty creates a property of type t.
func NewProperty(name string, static bool, t *Type) *Member {
	contract.Require(t != nil, "t")
	return &Member{Name: name, Kind: PropertyMember, Static: static, Result: t}
}

// NewField creates a field of type t.
func NewField(name string, static bool, t *Type) *Member {
	contract.Require(t != nil, "t")
	return &Member{Name: name, Kind: FieldMember, Static: static, Result: t}
}

// NewConversion creates a static user-defined conversion operator from one type to another.
func NewConversion(implicit bool, from *Type, to *Type) *Member {
	contract.Require(from != nil, "from")
	contract.Require(to != nil, "to")
	name := ExplicitOperatorName
	if implicit {
		name = ImplicitOperatorName
	}
	m := newCallable(name, ConversionMember, true, to, []*Parameter{NewParameter("value", from)})
	m.Implicit = implicit
	return m
}

func (m *Member) IsCallable() bool { return m.Kind == MethodMember }
func (m *Member) IsProperty() bool { return m.Kind == PropertyMember }
func (m *Member) IsField() bool    { return m.Kind == FieldMember }

// IsValue returns true for members that produce a value when accessed without being called.
func (m *Member) IsValue() bool { return m.Kind == PropertyMember || m.Kind == FieldMember }

// Type returns the type of the value a member produces: its result type.
func (m *Member) Type() *Type { return m.Result }

// Parameter returns the parameter at the given position, or a synthetic parameter for the result slot when pos is -1.
// It returns nil if there is no such parameter.
func (m *Member) Parameter(pos int) *Parameter {
	if pos == -1 {
		return &Parameter{Position: -1, Type: m.Result}
	}
	if pos < 0 || pos >= len(m.Parameters) {
		return nil
	}
	return m.Parameters[pos]
}

// IsVariadic returns true if the last parameter collects trailing arguments.
func (m *Member) IsVariadic() bool {
	return len(m.Parameters) > 0 && m.Parameters[len(m.Parameters)-1].Variadic
}

// MinArity returns the number of arguments that must be supplied.
func (m *Member) MinArity() int {
	n := 0
	for _, p := range m.Parameters {
		if !p.Optional && !p.Variadic {
			n++
		}
	}
	return n
}

// Signature identifies a member for the purposes of hiding: properties and fields hide by name, callables by name and
// parameter types.
func (m *Member) Signature() string {
	if m.IsValue() {
		return m.Name
	}
	var buf bytes.Buffer
	buf.WriteString(m.Name)
	buf.WriteRune('(')
	for i, p := range m.Parameters {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.Type.String())
	}
	buf.WriteRune(')')
	return buf.String()
}

func (m *Member) String() string {
	prefix := ""
	if m.Declaring != nil {
		prefix = m.Declaring.String() + "."
	}
	if m.IsValue() {
		return fmt.Sprintf("%v%v %v", prefix, m.Name, m.Result)
	}

	var buf bytes.Buffer
	buf.WriteString(prefix)
	buf.WriteString(m.Name)
	buf.WriteRune('(')
	for i, p := range m.Parameters {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.String())
	}
	buf.WriteRune(')')
	if m.Result != Void {
		buf.WriteRune(' ')
		buf.WriteString(m.Result.String())
	}
	return buf.String()
}
