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
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"github.com/pulumi/dynexpr/pkg/diag"
	"github.com/pulumi/dynexpr/pkg/util/cmdutil"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// NewDynexprCmd creates a new dynexpr Cmd instance.
func NewDynexprCmd() *cobra.Command {
	var color string
	var logFlow bool
	var logToStderr bool
	var tracing string
	var verbose int
	cmd := &cobra.Command{
		Use:   "dynexpr",
		Short: "dynexpr binds dynamic expression trees against a universe of types",
		Long: "dynexpr binds dynamic expression trees against a universe of types.\n" +
			"\n" +
			"Expression documents are JSON or YAML attribute dictionaries, one tree per document or a list of\n" +
			"them.  Types come from a universe manifest; the primitive types are always available.",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			colors, err := useColors(color)
			if err != nil {
				return err
			}
			pwd, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, "getting the working directory")
			}

			logging.InitLogging(logToStderr, verbose, logFlow)
			cmdutil.InitDiag(diag.FormatOptions{Pwd: pwd, Colors: colors})
			return cmdutil.InitTracing("dynexpr", "dynexpr", tracing)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Flush()
			cmdutil.CloseTracing()
		},
	}

	cmd.PersistentFlags().StringVar(&color, "color", "auto",
		"Colorize diagnostics. Choices are: always, never, auto")
	cmd.PersistentFlags().BoolVar(&logFlow, "logflow", false,
		"Flow log settings to child processes")
	cmd.PersistentFlags().BoolVar(&logToStderr, "logtostderr", false,
		"Log to stderr instead of to files")
	cmd.PersistentFlags().StringVar(&tracing, "tracing", "",
		"Emit tracing to a Zipkin-compatible tracing endpoint")
	cmd.PersistentFlags().IntVarP(&verbose, "verbose", "v", 0,
		"Enable verbose logging (e.g., v=3); anything >3 is very verbose")

	cmd.AddCommand(newBindCmd())
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newNamesCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func useColors(choice string) (bool, error) {
	switch choice {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return terminal.IsTerminal(int(os.Stderr.Fd())), nil
	default:
		return false, errors.Errorf("unsupported color option: '%v'; choices are: always, never, auto", choice)
	}
}
