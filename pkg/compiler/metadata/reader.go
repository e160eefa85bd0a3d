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

package metadata

import (
	"fmt"
	"io/ioutil"

	"github.com/blang/semver"
	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
	"github.com/pulumi/dynexpr/pkg/encoding"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// SupportedFormat is the range of manifest format versions this reader understands.
var SupportedFormat = semver.MustParseRange(">=1.0.0 <2.0.0")

// ReadUniverseFile reads a manifest from disk, picking a marshaler by file extension.
func ReadUniverseFile(path string) (*symbols.Universe, error) {
	m, ext := encoding.Detect(path)
	if m == nil {
		return nil, errors.Errorf("no marshaler is registered for '%v' files", ext)
	}
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading manifest")
	}
	u, err := ReadUniverse(m, b)
	if err != nil {
		return nil, errors.Wrapf(err, "%v", path)
	}
	return u, nil
}

// ReadUniverse decodes a manifest document and loads it into a new universe.
func ReadUniverse(m encoding.Marshaler, b []byte) (*symbols.Universe, error) {
	logging.V(3).Infof("Reading type manifest (len(body)=%v)", len(b))
	var manifest Manifest
	if err := m.Unmarshal(b, &manifest); err != nil {
		return nil, errors.Wrap(err, "malformed manifest")
	}
	return Load(&manifest)
}

// Load declares every type of a manifest in a new universe that also holds the primitive types.  All problems found
// are returned together; on error no universe is returned.
func Load(manifest *Manifest) (*symbols.Universe, error) {
	if manifest.FormatVersion == "" {
		return nil, errors.New("manifest is missing its formatVersion")
	}
	v, err := semver.ParseTolerant(manifest.FormatVersion)
	if err != nil {
		return nil, errors.Wrapf(err, "manifest formatVersion '%v' is invalid", manifest.FormatVersion)
	}
	if !SupportedFormat(v) {
		return nil, errors.Errorf("manifest formatVersion %v is not supported; expected 1.x", v)
	}

	l := &loader{u: symbols.NewUniverse(), types: make(map[string]*symbols.Type)}
	l.declare(manifest.Types)
	l.buildDelegates(manifest.Types)
	l.link(manifest.Types)
	for _, decl := range manifest.Types {
		if t, ok := l.types[decl.Name]; ok {
			l.members(t, decl)
		}
	}
	if err := l.errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	logging.V(3).Infof("Loaded %v types from manifest version %v", len(manifest.Types), v)
	return l.u, nil
}

type loader struct {
	u     *symbols.Universe
	types map[string]*symbols.Type // the types declared by this manifest.
	errs  *multierror.Error
}

func (l *loader) errorf(format string, args ...interface{}) {
	l.errs = multierror.Append(l.errs, errors.Errorf(format, args...))
}

func (l *loader) resolve(ref string, what string) *symbols.Type {
	if ref == "" {
		l.errorf("%v: missing type reference", what)
		return nil
	}
	t, ok := l.u.ResolveType(ref)
	if !ok {
		l.errorf("%v: type '%v' could not be found", what, ref)
		return nil
	}
	return t
}

func (l *loader) add(t *symbols.Type) {
	if err := l.u.Declare(t); err != nil {
		l.errs = multierror.Append(l.errs, err)
		return
	}
	l.types[t.Name()] = t
}

// declare creates every class, interface, and enum, so that later passes can refer to them in any order.
func (l *loader) declare(decls []TypeDecl) {
	for _, decl := range decls {
		what := fmt.Sprintf("type '%v'", decl.Name)
		if decl.Name == "" {
			l.errorf("a type is missing its name")
			continue
		}
		switch decl.Kind {
		case ClassDecl:
			l.add(symbols.NewClassType(decl.Name, nil))
		case InterfaceDecl:
			l.add(symbols.NewInterfaceType(decl.Name))
		case EnumDecl:
			underlying := symbols.Int32
			if decl.Underlying != "" {
				underlying = l.resolve(decl.Underlying, what)
				if underlying == nil {
					continue
				}
				if !symbols.IsIntegral(underlying) {
					l.errorf("%v: enum underlying type '%v' is not integral", what, underlying)
					continue
				}
			}
			l.add(symbols.NewEnumType(decl.Name, underlying))
		case DelegateDecl:
			// Built once every other type exists.
		default:
			l.errorf("%v: unrecognized kind '%v'", what, decl.Kind)
		}
	}
}

// buildDelegates creates delegates in dependency order, since their signatures may mention one another.
func (l *loader) buildDelegates(decls []TypeDecl) {
	var pending []TypeDecl
	for _, decl := range decls {
		if decl.Kind == DelegateDecl && decl.Name != "" {
			pending = append(pending, decl)
		}
	}

	for len(pending) > 0 {
		var next []TypeDecl
		for _, decl := range pending {
			params, result, ok := l.tryDelegateSignature(decl)
			if !ok {
				next = append(next, decl)
				continue
			}
			l.add(symbols.NewNamedDelegateType(decl.Name, params, result))
		}
		if len(next) == len(pending) {
			// No progress; report every reference that still doesn't resolve.
			for _, decl := range next {
				what := fmt.Sprintf("delegate '%v'", decl.Name)
				for _, p := range decl.Parameters {
					l.resolve(p.Type, what)
				}
				if decl.Result != "" {
					l.resolve(decl.Result, what)
				}
			}
			return
		}
		pending = next
	}
}

func (l *loader) tryDelegateSignature(decl TypeDecl) ([]*symbols.Type, *symbols.Type, bool) {
	params := make([]*symbols.Type, len(decl.Parameters))
	for i, p := range decl.Parameters {
		t, ok := l.u.ResolveType(p.Type)
		if !ok {
			return nil, nil, false
		}
		params[i] = t
	}
	result := symbols.Void
	if decl.Result != "" {
		t, ok := l.u.ResolveType(decl.Result)
		if !ok {
			return nil, nil, false
		}
		result = t
	}
	return params, result, true
}

// link resolves base classes and implemented interfaces.
func (l *loader) link(decls []TypeDecl) {
	for _, decl := range decls {
		t, ok := l.types[decl.Name]
		if !ok || (!t.IsClass() && !t.IsInterface()) {
			continue
		}
		what := fmt.Sprintf("type '%v'", decl.Name)

		if decl.Base != "" {
			if t.IsInterface() {
				l.errorf("%v: interfaces cannot have a base class; list '%v' under interfaces", what, decl.Base)
			} else if base := l.resolve(decl.Base, what); base != nil {
				if base.IsClass() || base == symbols.Object {
					t.Extends = base
				} else {
					l.errorf("%v: base type '%v' is not a class", what, base)
				}
			}
		}
		for _, ref := range decl.Interfaces {
			if i := l.resolve(ref, what); i != nil {
				if i.IsInterface() {
					t.Implements = append(t.Implements, i)
				} else {
					l.errorf("%v: '%v' is not an interface", what, i)
				}
			}
		}
	}

	// Break inheritance cycles, so that walking a base chain always terminates.
	for _, decl := range decls {
		t, ok := l.types[decl.Name]
		if !ok || !t.IsClass() {
			continue
		}
		seen := map[*symbols.Type]bool{t: true}
		for b := t.Extends; b != nil; b = b.Extends {
			if seen[b] {
				l.errorf("type '%v': inheritance cycle through '%v'", t, b)
				t.Extends = symbols.Object
				break
			}
			seen[b] = true
		}
	}
}

func (l *loader) members(t *symbols.Type, decl TypeDecl) {
	for _, md := range decl.Members {
		what := fmt.Sprintf("member '%v.%v'", decl.Name, md.Name)
		if md.Name == "" && md.Kind != ConversionDecl {
			l.errorf("type '%v': a member is missing its name", decl.Name)
			continue
		}
		if t.IsDelegate() {
			l.errorf("%v: delegates cannot declare members", what)
			continue
		}

		switch md.Kind {
		case MethodDecl:
			params, ok := l.parameters(md.Parameters, what)
			result := symbols.Void
			if md.Result != "" {
				if result = l.resolve(md.Result, what); result == nil {
					ok = false
				}
			}
			if ok {
				t.AddMember(symbols.NewMethod(md.Name, md.Static, result, params...))
			}
		case PropertyDecl, FieldDecl:
			typ := l.resolve(md.Type, what)
			if typ == nil {
				continue
			}
			if md.Kind == PropertyDecl {
				t.AddMember(symbols.NewProperty(md.Name, md.Static, typ))
			} else {
				t.AddMember(symbols.NewField(md.Name, md.Static, typ))
			}
		case ConversionDecl:
			if len(md.Parameters) != 1 {
				l.errorf("%v: a conversion takes exactly one parameter, not %v", what, len(md.Parameters))
				continue
			}
			from := l.resolve(md.Parameters[0].Type, what)
			to := l.resolve(md.Result, what)
			if from == nil || to == nil {
				continue
			}
			if from != t && to != t {
				l.errorf("%v: a conversion must convert to or from '%v'", what, t)
				continue
			}
			t.AddMember(symbols.NewConversion(md.Implicit, from, to))
		default:
			l.errorf("%v: unrecognized member kind '%v'", what, md.Kind)
		}
	}
}

func (l *loader) parameters(decls []ParameterDecl, what string) ([]*symbols.Parameter, bool) {
	ok := true
	var params []*symbols.Parameter
	for i, pd := range decls {
		name := pd.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		t := l.resolve(pd.Type, fmt.Sprintf("%v, parameter '%v'", what, name))
		if t == nil {
			ok = false
			continue
		}

		switch {
		case pd.Variadic:
			if i != len(decls)-1 {
				l.errorf("%v: variadic parameter '%v' must come last", what, name)
				ok = false
			} else if !t.IsArray() {
				l.errorf("%v: variadic parameter '%v' must have an array type, not '%v'", what, name, t)
				ok = false
			} else {
				params = append(params, symbols.NewVariadicParameter(name, t.ElementType()))
			}
		case pd.Optional || pd.Default != nil:
			params = append(params, symbols.NewOptionalParameter(name, t, pd.Default))
		default:
			if len(params) > 0 && params[len(params)-1].Optional {
				l.errorf("%v: required parameter '%v' follows an optional one", what, name)
				ok = false
			}
			params = append(params, symbols.NewParameter(name, t))
		}
	}
	return params, ok
}
