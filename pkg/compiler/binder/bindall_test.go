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
	"context"
	"fmt"
	"testing"

	multierror "github.com/hashicorp/go-multierror"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/mocktracer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulumi/dynexpr/pkg/compiler/ast"
	"github.com/pulumi/dynexpr/pkg/compiler/errors"
)

func TestBindAllKeepsOrderAndAggregatesErrors(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	nodes := []ast.Node{
		call("F", lit(1)),
		ref("nope"),
		call("G", lit(2)),
		call("H", lit(1), lit(2)),
	}
	results, err := BindAll(context.Background(), fx.ctx, nodes)
	require.Len(t, results, len(nodes))
	assert.Equal(t, "calc.F(1)", results[0].String())
	assert.Nil(t, results[1])
	assert.Equal(t, "calc.G((float64)2)", results[2].String())
	assert.Nil(t, results[3])

	merr, ok := err.(*multierror.Error)
	require.True(t, ok, "expected a multierror, got %T", err)
	require.Len(t, merr.Errors, 2)
	assert.Contains(t, merr.Errors[0].Error(), "expression #1")
	assert.Equal(t, 1, merr.Errors[0].(*ExprError).Index)
	assert.True(t, errors.Is(merr.Errors[0], errors.ErrorNameNotResolved))
	assert.Contains(t, merr.Errors[1].Error(), "expression #3")
	assert.True(t, errors.Is(merr.Errors[1], errors.ErrorAmbiguousCall))
}

func TestBindAllConcurrent(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	var nodes []ast.Node
	for i := 0; i < 64; i++ {
		switch i % 4 {
		case 0:
			nodes = append(nodes, call("F", lit(i)))
		case 1:
			nodes = append(nodes, call("Describe", ref("p")))
		case 2:
			nodes = append(nodes, call("Sum", lit(fmt.Sprintf("s%d", i)), lit(i), lit(i)))
		default:
			nodes = append(nodes, call("G", ref("m")))
		}
	}
	results, err := BindAll(context.Background(), fx.ctx, nodes)
	require.NoError(t, err)
	for i, r := range results {
		require.NotNil(t, r, "result %d", i)
	}
	assert.Equal(t, "calc.F(8)", results[8].String())
	assert.Equal(t, `calc.Sum("s2", new int32[]{2, 2})`, results[2].String())
}

func TestBindAllCanceled(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := BindAll(ctx, fx.ctx, []ast.Node{call("F", lit(1)), call("G", lit(1))})
	assert.Equal(t, 2, len(results))
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 2)
	for _, e := range merr.Errors {
		assert.Equal(t, context.Canceled, e)
	}
}

func TestBindAllEmpty(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	results, err := BindAll(context.Background(), fx.ctx, nil)
	assert.NoError(t, err)
	assert.Empty(t, results)
}

// TestBindAllSpans swaps the global tracer, so it must not run in parallel.
func TestBindAllSpans(t *testing.T) {
	tracer := mocktracer.New()
	prev := opentracing.GlobalTracer()
	opentracing.SetGlobalTracer(tracer)
	defer opentracing.SetGlobalTracer(prev)

	fx := newFixture(t)
	_, err := BindAll(context.Background(), fx.ctx, []ast.Node{call("F", lit(1)), ref("nope")})
	require.Error(t, err)

	spans := tracer.FinishedSpans()
	require.Len(t, spans, 2)
	failed := 0
	for _, span := range spans {
		assert.Equal(t, "bind", span.OperationName)
		if span.Tag("error") == true {
			failed++
		}
	}
	assert.Equal(t, 1, failed)
}
