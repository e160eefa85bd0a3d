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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/dynexpr/pkg/compiler/ast"
	"github.com/pulumi/dynexpr/pkg/compiler/binder"
	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
	"github.com/pulumi/dynexpr/pkg/compiler/types"
	"github.com/pulumi/dynexpr/pkg/encoding"
)

const geometryYAML = `
formatVersion: 1.0.0
types:
  - name: Geometry.Point
    kind: class
    base: Geometry.Shape
    interfaces: [Geometry.IShape]
    members:
      - {name: X, kind: property, type: float64}
      - {name: Origin, kind: field, static: true, type: Geometry.Point}
      - {name: Scale, kind: method, parameters: [{name: f, type: float64}], result: Geometry.Point}
      - {name: Map, kind: method, parameters: [{name: fn, type: Geometry.Mapper}], result: Geometry.Point}
      - name: Offset
        kind: method
        parameters:
          - {name: dx, type: float64}
          - {name: dy, type: float64, optional: true, default: 0}
        result: Geometry.Point
      - {kind: conversion, implicit: true, parameters: [{type: Geometry.Point}], result: string}
  - name: Geometry.Shape
    kind: class
    members:
      - {name: Area, kind: method, result: float64}
      - name: Tag
        kind: method
        parameters:
          - {name: label, type: string}
          - {name: values, type: "object[]", variadic: true}
  - name: Geometry.IShape
    kind: interface
    members:
      - {name: Name, kind: property, type: string}
  - name: Geometry.Mapper
    kind: delegate
    parameters: [{type: Geometry.Point}]
    result: Geometry.Point
  - name: Geometry.MapperFactory
    kind: delegate
    parameters: [{type: "Geometry.Mapper[]"}, {type: "Geometry.Quadrant?"}]
    result: Geometry.Mapper
  - name: Geometry.Quadrant
    kind: enum
    underlying: uint8
`

func TestReadUniverse(t *testing.T) {
	t.Parallel()

	u, err := ReadUniverse(encoding.YAML, []byte(geometryYAML))
	require.NoError(t, err)

	point, ok := u.Lookup("Geometry.Point")
	require.True(t, ok)
	shape, _ := u.Lookup("Geometry.Shape")
	ishape, _ := u.Lookup("Geometry.IShape")
	assert.Equal(t, shape, point.Base())
	assert.True(t, point.DerivesFrom(ishape))
	assert.True(t, point.DerivesFrom(symbols.Object))

	scale := point.GetMembers("Scale")
	require.Len(t, scale, 1)
	assert.Equal(t, "Geometry.Point.Scale(f float64) Geometry.Point", scale[0].String())

	offset := point.GetMembers("Offset")[0]
	assert.Equal(t, 1, offset.MinArity())
	assert.True(t, offset.Parameters[1].Optional)

	tag := point.GetMembers("Tag")
	require.Len(t, tag, 1)
	assert.True(t, tag[0].IsVariadic())
	assert.Equal(t, shape, tag[0].Declaring)

	convs := point.Conversions()
	require.Len(t, convs, 1)
	assert.True(t, convs[0].Implicit)
	assert.Equal(t, symbols.String, convs[0].Result)

	quadrant, _ := u.Lookup("Geometry.Quadrant")
	assert.True(t, quadrant.IsEnum())
	assert.Equal(t, symbols.Uint8, quadrant.UnderlyingType())

	factory, ok := u.Lookup("Geometry.MapperFactory")
	require.True(t, ok)
	invoke := factory.InvokeMethod()
	require.NotNil(t, invoke)
	assert.Equal(t, "Geometry.Mapper[]", invoke.Parameters[0].Type.Name())
	assert.Equal(t, "Geometry.Quadrant?", invoke.Parameters[1].Type.Name())
}

func TestReadUniverseJSON(t *testing.T) {
	t.Parallel()

	u, err := ReadUniverse(encoding.JSON, []byte(`{
		"formatVersion": "1.2",
		"types": [{
			"name": "Counter",
			"kind": "class",
			"members": [{
				"name": "Add",
				"kind": "method",
				"parameters": [{"name": "by", "type": "int64", "default": 5}],
				"result": "int64"
			}]
		}]
	}`))
	require.NoError(t, err)
	counter, ok := u.Lookup("Counter")
	require.True(t, ok)
	add := counter.GetMembers("Add")[0]
	assert.True(t, add.Parameters[0].Optional)
	assert.Equal(t, 0, add.MinArity())
}

func TestBindAgainstManifest(t *testing.T) {
	t.Parallel()

	u, err := ReadUniverse(encoding.YAML, []byte(geometryYAML))
	require.NoError(t, err)
	point, _ := u.Lookup("Geometry.Point")

	ctx := binder.NewContext(types.NewCatalog(), u)
	ctx.SetGlobal("p", point)

	expr, err := binder.TryBindInvocation(
		ast.NewInvoke(ast.NewPropertyOrField(nil, "Offset"), ast.NewConstant(1, "")), ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "p.Offset((float64)1, 0)", expr.String())

	expr, err = binder.TryBindInvocation(ast.NewInvoke(ast.NewPropertyOrField(nil, "Tag"),
		ast.NewConstant("a", ""), ast.NewConstant(1, ""), ast.NewPropertyOrField(nil, "X")), ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, `p.Tag("a", new object[]{(object)1, (object)p.X})`, expr.String())

	// Static members are reached through their type, not the global instance.
	_, err = binder.Bind(ast.NewPropertyOrField(nil, "Origin"), ctx, nil)
	assert.Error(t, err)
	expr, err = binder.Bind(ast.NewPropertyOrField(ast.NewPropertyOrField(
		ast.NewPropertyOrField(nil, "Geometry"), "Point"), "Origin"), ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, point, expr.Type())

	// The implicit operator lets a point stand in for a string.
	ctx.DeclareParameter("q", point)
	expr, err = binder.Bind(ast.NewPropertyOrField(nil, "q"), ctx, symbols.String)
	require.NoError(t, err)
	assert.Equal(t, "Geometry.Point.op_Implicit(q)", expr.String())
}

func TestFormatVersions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		version string
		ok      bool
	}{
		{"1.0.0", true},
		{"1", true},
		{"1.9.3", true},
		{"v1.1", true},
		{"2.0.0", false},
		{"0.9.0", false},
		{"", false},
		{"one", false},
	}
	for _, test := range tests {
		_, err := Load(&Manifest{FormatVersion: test.version})
		if test.ok {
			assert.NoError(t, err, test.version)
		} else {
			assert.Error(t, err, test.version)
		}
	}

	_, err := ReadUniverse(encoding.YAML, []byte("formatVersion: 2.0.0\n"))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "not supported")
	}
}

func TestManifestErrorsAreAggregated(t *testing.T) {
	t.Parallel()

	_, err := ReadUniverse(encoding.YAML, []byte(`
formatVersion: 1.0.0
types:
  - {name: A, kind: class, base: B}
  - {name: B, kind: class, base: A}
  - {name: A, kind: class}
  - {name: int, kind: class}
  - {name: C, kind: struct}
  - {name: D, kind: enum, underlying: string}
  - {name: E, kind: class, base: Missing, interfaces: [B]}
  - name: F
    kind: class
    members:
      - {name: M, kind: method, parameters: [{name: xs, type: "int32[]", variadic: true}, {name: y, type: int32}]}
      - {name: N, kind: method, parameters: [{name: x, type: int32, optional: true}, {name: y, type: int32}]}
      - {name: P, kind: event, type: int32}
      - {kind: conversion, parameters: [{type: int32}], result: string}
      - {name: Q, kind: property}
  - {name: G, kind: delegate, parameters: [{type: H}]}
  - {name: H, kind: delegate, parameters: [{type: G}]}
`))
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "expected a multierror, got %T", err)

	msg := err.Error()
	for _, want := range []string{
		"type 'A' is already declared",
		"type 'int' is already declared",
		"unrecognized kind 'struct'",
		"enum underlying type 'string' is not integral",
		"type 'Missing' could not be found",
		"'B' is not an interface",
		"inheritance cycle",
		"variadic parameter 'xs' must come last",
		"required parameter 'y' follows an optional one",
		"unrecognized member kind 'event'",
		"a conversion must convert to or from 'F'",
		"member 'F.Q': missing type reference",
		"delegate 'G': type 'H' could not be found",
		"delegate 'H': type 'G' could not be found",
	} {
		assert.Contains(t, msg, want)
	}
	assert.True(t, len(merr.Errors) >= 14)
}

func TestReadUniverseFile(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "dynexpr-manifest")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "types.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(geometryYAML), 0600))
	u, err := ReadUniverseFile(path)
	require.NoError(t, err)
	_, ok := u.Lookup("Geometry.Mapper")
	assert.True(t, ok)

	_, err = ReadUniverseFile(filepath.Join(dir, "types.txt"))
	assert.Error(t, err)
	_, err = ReadUniverseFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
