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
	pkgerrors "github.com/pkg/errors"

	"github.com/pulumi/dynexpr/pkg/compiler/ast"
	"github.com/pulumi/dynexpr/pkg/compiler/bound"
	"github.com/pulumi/dynexpr/pkg/compiler/errors"
	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
	"github.com/pulumi/dynexpr/pkg/util/contract"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// ErrNotMethodCall is returned by TryBindMethodCall when the callee of an invocation is not a named member, so the
// invocation cannot be a method call.
var ErrNotMethodCall = pkgerrors.New("the callee is not a named member")

// TryBindMethodCall binds an invocation whose callee is a named member, `target.Name(args...)` or `Name(args...)`, as
// a call of that member.  A target that names a type makes the call static; a missing target means the global
// receiver.  If expected is non-nil, the result is implicitly converted to it.
func TryBindMethodCall(node *ast.InvokeExpression, ctx *Context, expected *symbols.Type) (bound.Expression, error) {
	contract.Require(node != nil, "node")
	expr, _, err := tryBindMethodCall(node, ctx)
	if err != nil {
		return nil, err
	}
	return coerce(ctx, node, expr, expected)
}

// TryBindInvocation binds any invocation: as a method call if possible, and otherwise as the invocation of a delegate
// value.  When both fail, the more specific diagnostic is returned.  If expected is non-nil, the result is implicitly
// converted to it.
func TryBindInvocation(node *ast.InvokeExpression, ctx *Context, expected *symbols.Type) (bound.Expression, error) {
	contract.Require(node != nil, "node")
	expr, err := tryBindInvocation(node, ctx)
	if err != nil {
		return nil, err
	}
	return coerce(ctx, node, expr, expected)
}

// tryBindMethodCall rewrites the invocation as a call node around a resolved receiver and binds that.  The returned
// bool reports whether overload resolution found candidates, in which case its failure is final.
func tryBindMethodCall(node *ast.InvokeExpression, ctx *Context) (bound.Expression, bool, error) {
	if node.Expression == nil {
		return nil, false, malformed(node, ast.ExpressionAttribute)
	}
	callee, ok := node.Expression.(*ast.PropertyOrFieldExpression)
	if !ok {
		return nil, false, ErrNotMethodCall
	}
	if callee.Name == "" {
		return nil, false, malformed(callee, ast.PropertyOrFieldNameAttribute)
	}

	var receiver ast.Node
	if callee.Expression == nil {
		// Parameters shadow members of the global receiver; invoking one is a delegate invocation.
		if _, param := ctx.Parameters.Lookup(callee.Name); param {
			return nil, false, ErrNotMethodCall
		}
		if ctx.Global == nil {
			return nil, false, errors.New(errors.ErrorNameNotResolved, callee, callee.Name, nameHint(ctx, callee.Name))
		}
		receiver = newBoundReceiver(callee, ctx.Global)
	} else {
		target, static, err := bindReceiver(callee.Expression, ctx)
		if err != nil {
			return nil, false, err
		}
		if static {
			receiver = newTypeReceiver(callee.Expression, target.Type())
		} else {
			receiver = newBoundReceiver(callee.Expression, target)
		}
	}

	call := node.ToCall(receiver, callee.Name)
	call.UseNullPropagation = call.UseNullPropagation || callee.UseNullPropagation
	return bindCall(call, ctx)
}

// bindCall binds a call node: its receiver, then the best overload of its method.
func bindCall(node *ast.CallExpression, ctx *Context) (bound.Expression, bool, error) {
	if node.Expression == nil {
		return nil, false, malformed(node, ast.ExpressionAttribute)
	}
	if node.Method == nil || node.Method.Name == "" {
		return nil, false, malformed(node, ast.MethodAttribute)
	}

	receiver, static, err := bindReceiver(node.Expression, ctx)
	if err != nil {
		return nil, false, err
	}
	return resolveCall(ctx, &callSite{
		node:     node,
		receiver: receiver,
		typ:      receiver.Type(),
		name:     node.Method.Name,
		static:   static,
		args:     node.Arguments,
		nullProp: node.UseNullPropagation,
	})
}

func tryBindInvocation(node *ast.InvokeExpression, ctx *Context) (bound.Expression, error) {
	expr, committed, methodErr := tryBindMethodCall(node, ctx)
	if methodErr == nil {
		return expr, nil
	}
	if committed || errors.Is(methodErr, errors.ErrorMalformedNode) {
		return nil, methodErr
	}
	logging.V(7).Infof("Binding %v as a delegate invocation (%v)", ast.Format(node), methodErr)

	callee, err := bind(node.Expression, ctx, nil)
	if err != nil {
		return nil, preferError(methodErr, err)
	}
	t := callee.Type()
	if !t.IsDelegate() || t.InvokeMethod() == nil {
		return nil, preferError(methodErr, errors.New(errors.ErrorCannotInvokeNonDelegate, node.Expression, t))
	}

	expr, _, err = resolveCall(ctx, &callSite{
		node:     node,
		receiver: callee,
		typ:      t,
		name:     symbols.DelegateInvokeName,
		args:     node.Arguments,
		nullProp: node.UseNullPropagation,
	})
	if err != nil {
		return nil, preferError(methodErr, err)
	}
	return expr, nil
}

// preferError picks the more specific of the errors from the method-call and delegate-invocation paths.  Overload
// resolution failures are the most specific, then non-invokable values, then missing members; ties go to the
// method-call path.
func preferError(methodErr error, invokeErr error) error {
	if errorRank(invokeErr) > errorRank(methodErr) {
		return invokeErr
	}
	return methodErr
}

func errorRank(err error) int {
	if err == ErrNotMethodCall {
		return 0
	}
	be, ok := errors.AsBindingError(err)
	if !ok {
		return 1
	}
	switch be.ID() {
	case errors.ErrorNoApplicableOverload.ID, errors.ErrorAmbiguousCall.ID:
		return 4
	case errors.ErrorCannotInvokeNonDelegate.ID:
		return 3
	case errors.ErrorMemberNotFound.ID:
		return 2
	default:
		return 1
	}
}
