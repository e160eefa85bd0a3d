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

	multierror "github.com/hashicorp/go-multierror"
	opentracing "github.com/opentracing/opentracing-go"
	"golang.org/x/sync/errgroup"

	"github.com/pulumi/dynexpr/pkg/compiler/ast"
	"github.com/pulumi/dynexpr/pkg/compiler/bound"
	"github.com/pulumi/dynexpr/pkg/util/contract"
)

// ExprError is a failure to bind one of the expressions given to BindAll.
type ExprError struct {
	Index int // the position of the expression in BindAll's input.
	Err   error
}

func (e *ExprError) Error() string { return fmt.Sprintf("expression #%d: %v", e.Index, e.Err) }

// Cause returns the underlying error, so that errors.Cause sees through the wrapper.
func (e *ExprError) Cause() error { return e.Err }

// BindAll binds independent top-level expressions concurrently.  Results are in input order; a node that fails to bind
// leaves a nil result, and every failure is reported in the returned error, as an *ExprError, rather than only the first.
// Nodes that have not started binding when ctx is canceled fail with the context's error.
func BindAll(ctx context.Context, bctx *Context, nodes []ast.Node) ([]bound.Expression, error) {
	results := make([]bound.Expression, len(nodes))
	errs := make([]error, len(nodes))

	g, gctx := errgroup.WithContext(ctx)
	for i, node := range nodes {
		i, node := i, node
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				errs[i] = err
				return nil
			}

			span, _ := opentracing.StartSpanFromContext(gctx, "bind")
			defer span.Finish()
			if node != nil {
				span.SetTag("kind", string(node.GetKind()))
			}

			expr, err := Bind(node, bctx, nil)
			if err != nil {
				span.SetTag("error", true)
				errs[i] = &ExprError{Index: i, Err: err}
				return nil
			}
			results[i] = expr
			return nil
		})
	}
	contract.IgnoreError(g.Wait())

	var result *multierror.Error
	for _, err := range errs {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return results, result.ErrorOrNil()
}
