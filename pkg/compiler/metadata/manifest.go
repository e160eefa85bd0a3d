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

// Package metadata reads type universe manifests: documents declaring the classes, interfaces, enums, and delegates
// expressions are bound against, along with their members.
package metadata

// Manifest is the document form of a type universe.
type Manifest struct {
	FormatVersion string     `json:"formatVersion" yaml:"formatVersion"`
	Types         []TypeDecl `json:"types,omitempty" yaml:"types,omitempty"`
}

// Kinds of declared types.
const (
	ClassDecl     = "class"
	InterfaceDecl = "interface"
	EnumDecl      = "enum"
	DelegateDecl  = "delegate"
)

// TypeDecl declares one named type.  Type references anywhere in a manifest may use the `T?` and `T[]` suffixes.
type TypeDecl struct {
	Name       string          `json:"name" yaml:"name"`
	Kind       string          `json:"kind" yaml:"kind"`
	Base       string          `json:"base,omitempty" yaml:"base,omitempty"`             // classes only.
	Interfaces []string        `json:"interfaces,omitempty" yaml:"interfaces,omitempty"` // classes and interfaces.
	Underlying string          `json:"underlying,omitempty" yaml:"underlying,omitempty"` // enums only.
	Parameters []ParameterDecl `json:"parameters,omitempty" yaml:"parameters,omitempty"` // delegates only.
	Result     string          `json:"result,omitempty" yaml:"result,omitempty"`         // delegates only.
	Members    []MemberDecl    `json:"members,omitempty" yaml:"members,omitempty"`
}

// Kinds of declared members.
const (
	MethodDecl     = "method"
	PropertyDecl   = "property"
	FieldDecl      = "field"
	ConversionDecl = "conversion"
)

// MemberDecl declares a member of a type.  Properties and fields use Type; methods and conversions use Parameters
// and Result.  A conversion has exactly one parameter, the type it converts from.
type MemberDecl struct {
	Name       string          `json:"name" yaml:"name"`
	Kind       string          `json:"kind" yaml:"kind"`
	Static     bool            `json:"static,omitempty" yaml:"static,omitempty"`
	Type       string          `json:"type,omitempty" yaml:"type,omitempty"`
	Implicit   bool            `json:"implicit,omitempty" yaml:"implicit,omitempty"`
	Parameters []ParameterDecl `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Result     string          `json:"result,omitempty" yaml:"result,omitempty"`
}

// ParameterDecl declares a parameter.  A variadic parameter is declared with its array type and must come last.
type ParameterDecl struct {
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Type     string      `json:"type" yaml:"type"`
	Optional bool        `json:"optional,omitempty" yaml:"optional,omitempty"`
	Default  interface{} `json:"default,omitempty" yaml:"default,omitempty"`
	Variadic bool        `json:"variadic,omitempty" yaml:"variadic,omitempty"`
}
