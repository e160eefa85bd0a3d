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
	"bytes"
	"fmt"
	"strconv"
)

// Format renders a node in a compact, source-like notation for diagnostics and logging.
func Format(node Node) string {
	var buffer bytes.Buffer
	format(&buffer, node)
	return buffer.String()
}

func format(b *bytes.Buffer, node Node) {
	switch n := node.(type) {
	case nil:
		b.WriteString("<nil>")
	case *ConstantExpression:
		switch v := n.Value.(type) {
		case nil:
			b.WriteString("null")
		case string:
			b.WriteString(strconv.Quote(v))
		default:
			fmt.Fprintf(b, "%v", v)
		}
		if n.Type != "" {
			fmt.Fprintf(b, ":%v", n.Type)
		}
	case *PropertyOrFieldExpression:
		if n.Expression != nil {
			format(b, n.Expression)
			if n.UseNullPropagation {
				b.WriteString("?.")
			} else {
				b.WriteString(".")
			}
		}
		b.WriteString(n.Name)
	case *InvokeExpression:
		format(b, n.Expression)
		formatArgs(b, n.Arguments)
	case *CallExpression:
		format(b, n.Expression)
		if n.UseNullPropagation {
			b.WriteString("?.")
		} else {
			b.WriteString(".")
		}
		if n.Method != nil {
			b.WriteString(n.Method.Name)
		}
		formatArgs(b, n.Arguments)
	case *ConvertExpression:
		fmt.Fprintf(b, "(%v)", n.Type)
		format(b, n.Expression)
	case *GroupExpression:
		b.WriteString("(")
		format(b, n.Expression)
		b.WriteString(")")
	case *DefaultExpression:
		fmt.Fprintf(b, "default(%v)", n.Type)
	case *TypeOfExpression:
		fmt.Fprintf(b, "typeof(%v)", n.Type)
	default:
		if s, ok := node.(fmt.Stringer); ok {
			b.WriteString(s.String())
		} else {
			fmt.Fprintf(b, "<%v>", node.GetKind())
		}
	}
}

func formatArgs(b *bytes.Buffer, args []Node) {
	b.WriteString("(")
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		format(b, arg)
	}
	b.WriteString(")")
}
