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

package cmdutil

import (
	"fmt"
	"os"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pulumi/dynexpr/pkg/diag"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// ExitCodeError is the process exit code used when a command fails.
const ExitCodeError = 1

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// DetailedError extracts a detailed error message, including the stack trace of every error in the cause chain that
// recorded one.
func DetailedError(err error) string {
	var buf strings.Builder
	buf.WriteString(errorMessage(err))
	for first := true; ; first = false {
		st, ok := err.(stackTracer)
		if !ok {
			break
		}
		buf.WriteString("\n")
		if !first {
			buf.WriteString("CAUSED BY...\n")
		}
		for _, f := range st.StackTrace() {
			fmt.Fprintf(&buf, "%+v\n", f)
		}

		cause := errors.Cause(err)
		if cause == nil || cause == err {
			break
		}
		err = cause
	}
	return buf.String()
}

// RunFunc adapts an error-returning run func to cobra.  A failure is reported through the diagnostics sink, with stack
// traces when logging to stderr, and then the process exits.  Commands should not call os.Exit themselves, nor rely on
// cobra's own error reporting, which also prints usage.
func RunFunc(run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		err := run(cmd, args)
		if err == nil {
			return
		}

		msg := errorMessage(err)
		if logging.LogToStderr {
			msg = DetailedError(err)
		} else {
			logging.V(3).Infof("%v failed: %v", cmd.CommandPath(), DetailedError(err))
		}
		ExitError("%s", msg)
	}
}

// Exit reports err and exits.
func Exit(err error) {
	ExitError("%s", errorMessage(err))
}

// ExitError reports a formatted error message and exits with ExitCodeError.
func ExitError(format string, args ...interface{}) {
	exitErrorCode(ExitCodeError, format, args...)
}

func exitErrorCode(code int, format string, args ...interface{}) {
	Diag().Errorf(diag.Message(format), args...)
	if !logging.LogToStderr {
		logging.Errorf(format, args...)
	}
	logging.Flush()
	os.Exit(code)
}

// errorMessage renders err for the user.  An aggregate of several errors becomes a numbered list; an aggregate of
// one is just that error.
func errorMessage(err error) string {
	multi, ok := err.(*multierror.Error)
	if !ok {
		return err.Error()
	}

	errs := multi.WrappedErrors()
	if len(errs) == 1 {
		return errorMessage(errs[0])
	}
	var buf strings.Builder
	fmt.Fprintf(&buf, "%d errors occurred:", len(errs))
	for i, e := range errs {
		msg := strings.Replace(errorMessage(e), "\n", "\n       ", -1)
		fmt.Fprintf(&buf, "\n    %d) %s", i+1, msg)
	}
	return buf.String()
}
