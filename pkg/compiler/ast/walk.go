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

package ast

import (
	"reflect"

	"github.com/pulumi/dynexpr/pkg/util/contract"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// Visitor is a pluggable interface invoked during walks of a syntax tree.
type Visitor interface {
	// Visit visits the given node.  If it returns nil, the calling code will stop visiting the node's children.  If it
	// returns a non-nil Visitor, that visitor is used for the children.
	Visit(node Node) Visitor

	// After is invoked after visitation of a given node.
	After(node Node)
}

// Walk visits a node and all of its children in depth-first, evaluation order.
func Walk(v Visitor, node Node) {
	contract.Requiref(node != nil, "node", "!= nil")

	if logging.V(9) {
		logging.V(9).Infof("syntax walk: pre-visit %v", reflect.TypeOf(node))
	}

	// First visit the node; only proceed if the visitor says to do so (and use its returned visitor below).
	w := v.Visit(node)
	if w == nil {
		return
	}

	switch n := node.(type) {
	case *ConstantExpression, *DefaultExpression, *TypeOfExpression:
		// No children, nothing to do.
	case *PropertyOrFieldExpression:
		if n.Expression != nil {
			Walk(w, n.Expression)
		}
	case *InvokeExpression:
		if n.Expression != nil {
			Walk(w, n.Expression)
		}
		walkAll(w, n.Arguments)
	case *CallExpression:
		if n.Expression != nil {
			Walk(w, n.Expression)
		}
		walkAll(w, n.Arguments)
	case *ConvertExpression:
		if n.Expression != nil {
			Walk(w, n.Expression)
		}
	case *GroupExpression:
		if n.Expression != nil {
			Walk(w, n.Expression)
		}
	default:
		// Nodes synthesized outside of this package have no children we know about.
	}

	// Finally let the visitor know that we are done processing this node.
	v.After(node)
}

func walkAll(v Visitor, nodes []Node) {
	for _, node := range nodes {
		if node != nil {
			Walk(v, node)
		}
	}
}

// Inspect walks the tree, calling f for each node; if f returns false, the node's children are skipped.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

func (f inspector) After(node Node) {}
