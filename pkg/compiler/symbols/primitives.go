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

// Object is the root of the type hierarchy; every non-interface type derives from it.
var Object = newType("object", PrimitiveKind, nil, false)

// The built-in primitive types.
var (
	Bool    = newPrimitive("bool", true)
	Char    = newPrimitive("char", true)
	Int8    = newPrimitive("int8", true)
	Uint8   = newPrimitive("uint8", true)
	Int16   = newPrimitive("int16", true)
	Uint16  = newPrimitive("uint16", true)
	Int32   = newPrimitive("int32", true)
	Uint32  = newPrimitive("uint32", true)
	Int64   = newPrimitive("int64", true)
	Uint64  = newPrimitive("uint64", true)
	Float32 = newPrimitive("float32", true)
	Float64 = newPrimitive("float64", true)
	String  = newPrimitive("string", false)
)

// Null is the type of the null literal.  It has no base type and no members; it converts to any reference or nullable
// type.
var Null = newType("null", PrimitiveKind, nil, false)

// Void is the result type of methods that return nothing.
var Void = newType("void", PrimitiveKind, nil, false)

// TypeInfo is the type of a typeof(...) expression.
var TypeInfo = newType("System.Type", ClassKind, Object, false)

// Primitives lists the built-in types that are registered in every catalog and universe.
var Primitives = []*Type{
	Object, Bool, Char,
	Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64,
	Float32, Float64, String,
}

// PrimitiveAliases maps alternative spellings of primitive type names to their canonical types.
var PrimitiveAliases = map[string]*Type{
	"sbyte":   Int8,
	"byte":    Uint8,
	"short":   Int16,
	"ushort":  Uint16,
	"int":     Int32,
	"uint":    Uint32,
	"long":    Int64,
	"ulong":   Uint64,
	"float":   Float32,
	"single":  Float32,
	"double":  Float64,
	"boolean": Bool,

	"Object":  Object,
	"Boolean": Bool,
	"Char":    Char,
	"SByte":   Int8,
	"Byte":    Uint8,
	"Int16":   Int16,
	"UInt16":  Uint16,
	"Int32":   Int32,
	"UInt32":  Uint32,
	"Int64":   Int64,
	"UInt64":  Uint64,
	"Single":  Float32,
	"Double":  Float64,
	"String":  String,

	"System.Object":  Object,
	"System.Boolean": Bool,
	"System.Char":    Char,
	"System.SByte":   Int8,
	"System.Byte":    Uint8,
	"System.Int16":   Int16,
	"System.UInt16":  Uint16,
	"System.Int32":   Int32,
	"System.UInt32":  Uint32,
	"System.Int64":   Int64,
	"System.UInt64":  Uint64,
	"System.Single":  Float32,
	"System.Double":  Float64,
	"System.String":  String,
}

func newPrimitive(nm string, valueType bool) *Type {
	return newType(nm, PrimitiveKind, Object, valueType)
}

// IsIntegral returns true for the primitive integer types (char is not one of them).
func IsIntegral(t *Type) bool {
	switch t {
	case Int8, Uint8, Int16, Uint16, Int32, Uint32, Int64, Uint64:
		return true
	}
	return false
}

// IsNumeric returns true for the primitive types that take part in numeric conversions: the integers, the floating
// point types, and char.
func IsNumeric(t *Type) bool {
	return IsIntegral(t) || t == Char || t == Float32 || t == Float64
}

func init() {
	Object.AddMember(NewMethod("ToString", false, String))
	Object.AddMember(NewMethod("Equals", false, Bool, NewParameter("obj", Object)))
	Object.AddMember(NewMethod("GetHashCode", false, Int32))

	TypeInfo.AddMember(NewProperty("Name", false, String))
	TypeInfo.AddMember(NewProperty("FullName", false, String))

	String.AddMember(NewProperty("Length", false, Int32))
	String.AddMember(NewMethod("Substring", false, String, NewParameter("startIndex", Int32)))
	String.AddMember(NewMethod("Substring", false, String,
		NewParameter("startIndex", Int32), NewParameter("length", Int32)))
	String.AddMember(NewMethod("Contains", false, Bool, NewParameter("value", String)))
	String.AddMember(NewMethod("ToUpper", false, String))
	String.AddMember(NewMethod("ToLower", false, String))
	String.AddMember(NewField("Empty", true, String))
	String.AddMember(NewMethod("Concat", true, String, NewParameter("str0", String), NewParameter("str1", String)))
	String.AddMember(NewMethod("Concat", true, String, NewParameter("arg0", Object), NewParameter("arg1", Object)))
	String.AddMember(NewMethod("Join", true, String,
		NewParameter("separator", String), NewVariadicParameter("values", Object)))
	String.AddMember(NewMethod("IsNullOrEmpty", true, Bool, NewParameter("value", String)))
}
