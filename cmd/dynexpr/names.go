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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pulumi/dynexpr/pkg/compiler/ast"
	"github.com/pulumi/dynexpr/pkg/encoding"
	"github.com/pulumi/dynexpr/pkg/util/cmdutil"
)

func newNamesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "names <expr-doc>...",
		Short: "List the ambient names each expression refers to",
		Long: "List the ambient names each expression refers to.\n" +
			"\n" +
			"An ambient name is the root of a target-less member access: a parameter, a member of the\n" +
			"global receiver, or the first part of a type name.  Declaring the parameters listed here\n" +
			"with 'bind --param' is usually the first step to binding a new document.",
		Args: cobra.MinimumNArgs(1),
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			return runNames(args, os.Stdout)
		}),
	}
}

func runNames(files []string, w io.Writer) error {
	for _, file := range files {
		m, b, err := readDocument(file)
		if err != nil {
			return err
		}
		nodes, err := encoding.DecodeAll(m, b)
		if err != nil {
			return errors.Wrapf(err, "decoding '%v'", file)
		}
		for i, node := range nodes {
			fmt.Fprintf(w, "%v#%d: %v\n\t%v\n", file, i, ast.Format(node), strings.Join(ast.FreeNames(node), ", "))
		}
	}
	return nil
}
