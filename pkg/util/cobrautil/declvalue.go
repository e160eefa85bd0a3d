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

package cobrautil

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Decl is a name bound to a type reference, written on the command line as "name=type".
type Decl struct {
	Name string
	Type string
}

func (d Decl) String() string { return d.Name + "=" + d.Type }

// ParseDecl parses a "name=type" declaration.
func ParseDecl(s string) (Decl, error) {
	eq := strings.IndexByte(s, '=')
	if eq == -1 {
		return Decl{}, errors.Errorf("expected a declaration of the form name=type, got '%v'", s)
	}
	name, t := strings.TrimSpace(s[:eq]), strings.TrimSpace(s[eq+1:])
	if name == "" || t == "" {
		return Decl{}, errors.Errorf("declaration '%v' is missing a name or a type", s)
	}
	return Decl{Name: name, Type: t}, nil
}

type declsValue struct {
	value   *[]Decl
	changed bool
}

func (v *declsValue) Set(val string) error {
	d, err := ParseDecl(val)
	if err != nil {
		return err
	}
	if !v.changed {
		*v.value = nil
		v.changed = true
	}
	*v.value = append(*v.value, d)
	return nil
}

func (v *declsValue) Type() string {
	return "name=type"
}

func (v *declsValue) String() string {
	strs := make([]string, len(*v.value))
	for i, d := range *v.value {
		strs[i] = d.String()
	}
	return "[" + strings.Join(strs, ",") + "]"
}

// NewDeclsVar defines a repeatable flag whose values are "name=type" declarations, appended to p in order.
func NewDeclsVar(flags *pflag.FlagSet, p *[]Decl, name string, usage string) {
	flags.Var(&declsValue{value: p}, name, usage)
}
