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

// Package errors defines the numbered diagnostics reported while binding expressions, and the error type that
// carries them.
package errors

import (
	"bytes"
	"fmt"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/pulumi/dynexpr/pkg/diag"
)

func newError(id diag.ID, message string) *diag.Diag {
	return &diag.Diag{ID: id, Message: message}
}

// BindingError is a structured binding failure: a numbered diagnostic at the offending node's location, the arguments
// for its message, and optionally the reasons that led to it (for instance, why each overload was rejected).
type BindingError struct {
	Diag    *diag.Diag
	Args    []interface{}
	Reasons *multierror.Error
}

// New creates a binding error for the given diagnostic, located at node.
func New(d *diag.Diag, node diag.Diagable, args ...interface{}) *BindingError {
	return &BindingError{Diag: d.At(node), Args: args}
}

// ID returns the diagnostic's identifier.
func (e *BindingError) ID() diag.ID { return e.Diag.ID }

// Is returns true if this error reports the given diagnostic.
func (e *BindingError) Is(d *diag.Diag) bool { return e.Diag.ID == d.ID }

// Where returns the location of the node the error was reported against, if known.
func (e *BindingError) Where() *diag.Location { return e.Diag.Loc }

// Message returns the formatted message, without location or reasons.
func (e *BindingError) Message() string {
	return fmt.Sprintf(e.Diag.Message, e.Args...)
}

// WithReasons attaches the reasons that led to this error.
func (e *BindingError) WithReasons(reasons *multierror.Error) *BindingError {
	e.Reasons = reasons
	return e
}

func (e *BindingError) Error() string {
	var buf bytes.Buffer
	if loc := e.Diag.Loc; loc != nil && !loc.Start.IsEmpty() {
		fmt.Fprintf(&buf, "(%v,%v): ", loc.Start.Line, loc.Start.Column)
	}
	e.writeText(&buf)
	return buf.String()
}

// Diagnostic returns the error as a diagnostic located in doc, with its message and reasons already formatted, so that
// it can be handed to a diag.Sink without further arguments.
func (e *BindingError) Diagnostic(doc *diag.Document) *diag.Diag {
	var buf bytes.Buffer
	e.writeText(&buf)
	return &diag.Diag{
		ID:      e.Diag.ID,
		Message: strings.Replace(buf.String(), "%", "%%", -1),
		Doc:     doc,
		Loc:     e.Diag.Loc,
	}
}

func (e *BindingError) writeText(buf *bytes.Buffer) {
	buf.WriteString(e.Message())
	if e.Reasons != nil {
		for _, reason := range e.Reasons.Errors {
			buf.WriteString("\n\t* ")
			buf.WriteString(strings.Replace(reason.Error(), "\n", "\n\t  ", -1))
		}
	}
}

// AsBindingError returns the binding error at the root of err's cause chain, if there is one.
func AsBindingError(err error) (*BindingError, bool) {
	if err == nil {
		return nil, false
	}
	be, ok := errors.Cause(err).(*BindingError)
	return be, ok
}

// Is returns true if err is, or wraps, a binding error reporting the given diagnostic.
func Is(err error, d *diag.Diag) bool {
	be, ok := AsBindingError(err)
	return ok && be.Is(d)
}
