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

// Package ast contains the syntax node model consumed by the binder.  Nodes are produced by an external parser, usually
// by way of the attribute-dictionary form decoded by the encoding package, and are immutable once constructed.  The
// binder never mutates a node; when it needs a differently shaped node it builds a new one.
package ast

import (
	"github.com/pulumi/dynexpr/pkg/diag"
)

// Node is a discriminated type for all syntax nodes.
type Node interface {
	nd()
	GetKind() NodeKind     // the node kind.
	GetLoc() *Location     // an optional location associated with this node.
	Where() *diag.Location // source location information for this node.
}

var _ diag.Diagable = (Node)(nil)

// NodeKind is a type discriminator, indicating what sort of kind a node instance represents.  It corresponds to the
// "expressionType" attribute of the attribute-dictionary form.
type NodeKind string

// NodeValue is embedded by every concrete node; other packages may embed it to synthesize nodes of their own.
type NodeValue struct {
	Kind NodeKind
	Loc  *Location
}

func (node *NodeValue) nd()               {}
func (node *NodeValue) GetKind() NodeKind { return node.Kind }
func (node *NodeValue) GetLoc() *Location { return node.Loc }

func (node *NodeValue) Where() *diag.Location {
	if node.Loc == nil {
		return nil
	}
	return diag.NewSpan(node.Loc.Line, node.Loc.Column, node.Loc.TokenLength)
}

// Location is the optional source position of a node.  It is carried for diagnostics only.
type Location struct {
	Line        int // a 1-based line number.
	Column      int // a 1-based column number.
	TokenLength int // the length of the token that produced the node, or 0 if unknown.
}
