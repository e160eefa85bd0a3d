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
	"github.com/pulumi/dynexpr/pkg/compiler/types"
	"github.com/pulumi/dynexpr/pkg/util/contract"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// TypeResolver maps textual type references to type descriptors.  symbols.Universe is the usual implementation.
type TypeResolver interface {
	ResolveType(ref string) (*symbols.Type, bool)
}

// Options control binding policy.
type Options struct {
	// DisallowExplicitArguments prevents overload resolution from falling back to candidates that need an explicit
	// conversion for some argument, even when no other candidate applies.
	DisallowExplicitArguments bool
}

// Context is everything binding depends on: the conversion catalog, type-name resolution, the ambient values an
// expression can refer to, and policy options.  A context may be shared by concurrent binds once it is set up.
type Context struct {
	Catalog    *types.Catalog   // the conversion catalog consulted during overload resolution.
	Types      TypeResolver     // resolves textual type references.
	Global     bound.Expression // the optional implicit receiver for target-less member accesses.
	Parameters *Scope           // named values, consulted before the global receiver.
	Options    Options
}

// NewContext creates a binding context with no global receiver and no parameters.
func NewContext(catalog *types.Catalog, resolver TypeResolver) *Context {
	contract.Require(catalog != nil, "catalog")
	contract.Require(resolver != nil, "resolver")
	return &Context{
		Catalog:    catalog,
		Types:      resolver,
		Parameters: NewScope(),
	}
}

// SetGlobal makes a named value of type t the implicit receiver for target-less member accesses and calls.
func (ctx *Context) SetGlobal(nm string, t *symbols.Type) bound.Expression {
	contract.Require(t != nil, "t")
	ctx.Global = bound.NewParameter(nil, nm, t)
	ctx.Catalog.Register(t)
	return ctx.Global
}

// DeclareParameter makes a named value of type t available to expressions.
func (ctx *Context) DeclareParameter(nm string, t *symbols.Type) *bound.Parameter {
	contract.Require(t != nil, "t")
	ctx.Catalog.Register(t)
	return ctx.Parameters.MustRegister(nm, t)
}

// resolveType resolves a type reference and makes sure the catalog knows about the result.
func (ctx *Context) resolveType(ref string) (*symbols.Type, bool) {
	t, ok := ctx.Types.ResolveType(ref)
	if !ok {
		logging.V(7).Infof("Type reference '%v' did not resolve", ref)
		return nil, false
	}
	ctx.Catalog.Register(t)
	return t, true
}
