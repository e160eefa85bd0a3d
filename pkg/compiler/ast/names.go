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
	"strings"
)

// TryGetTypeReference flattens a chain of target-less property-or-field nodes, like `System.Math`, into a dotted
// type reference.  Groups are looked through.  It returns false if any part of the chain is not a plain name.
func TryGetTypeReference(node Node) (string, bool) {
	var parts []string
	for node != nil {
		switch n := node.(type) {
		case *PropertyOrFieldExpression:
			if n.UseNullPropagation || n.Name == "" {
				return "", false
			}
			parts = append(parts, n.Name)
			node = n.Expression
		case *GroupExpression:
			node = n.Expression
		default:
			return "", false
		}
	}
	if len(parts) == 0 {
		return "", false
	}

	// The chain was collected from the innermost member outwards.
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, "."), true
}

// GetMethodName returns the member name a call-shaped callee refers to, if the callee is a property-or-field node.
func GetMethodName(node Node) (string, bool) {
	if pof, ok := node.(*PropertyOrFieldExpression); ok && pof.Name != "" {
		return pof.Name, true
	}
	return "", false
}

// FreeNames returns the distinct ambient names an expression refers to: the names of target-less property-or-field
// nodes, in first-use order.
func FreeNames(node Node) []string {
	var names []string
	seen := make(map[string]bool)
	Inspect(node, func(n Node) bool {
		if pof, ok := n.(*PropertyOrFieldExpression); ok && pof.Expression == nil && !seen[pof.Name] {
			seen[pof.Name] = true
			names = append(names, pof.Name)
		}
		return true
	})
	return names
}
