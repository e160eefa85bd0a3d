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

package errors

import (
	"fmt"
	"testing"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/pulumi/dynexpr/pkg/diag"
)

type at struct{ loc *diag.Location }

func (a at) Where() *diag.Location { return a.loc }

func TestBindingErrorFormatting(t *testing.T) {
	t.Parallel()

	err := New(ErrorMemberNotFound, at{diag.NewSpan(3, 7, 4)}, "instance", "Nope", "Point", "")
	assert.Equal(t, diag.ID(531), err.ID())
	assert.Equal(t, "(3,7): No instance member 'Nope' exists on type 'Point'", err.Error())
	assert.Equal(t, 4, err.Where().Length())

	bare := New(ErrorTypeNotFound, nil, "Missing")
	assert.Equal(t, "Type 'Missing' could not be found", bare.Error())
	assert.Nil(t, bare.Where())
}

func TestBindingErrorReasons(t *testing.T) {
	t.Parallel()

	var reasons *multierror.Error
	reasons = multierror.Append(reasons, fmt.Errorf("f(int32): argument count"))
	reasons = multierror.Append(reasons, fmt.Errorf("f(float64):\nnested"))
	err := New(ErrorNoApplicableOverload, nil, "M", "f", "string").WithReasons(reasons)
	assert.Equal(t,
		"No overload of 'M.f' accepts arguments (string)\n\t* f(int32): argument count\n\t* f(float64):\n\t  nested",
		err.Error())
}

func TestAsBindingError(t *testing.T) {
	t.Parallel()

	err := New(ErrorAmbiguousCall, nil, "M", "f", "f(a), f(b)")
	wrapped := errors.Wrap(err, "binding expression 1")
	be, ok := AsBindingError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, err, be)
	assert.True(t, Is(wrapped, ErrorAmbiguousCall))
	assert.False(t, Is(wrapped, ErrorMemberNotFound))
	assert.False(t, Is(fmt.Errorf("plain"), ErrorAmbiguousCall))
	_, ok = AsBindingError(nil)
	assert.False(t, ok)
}

func TestDiagnostic(t *testing.T) {
	t.Parallel()

	err := New(ErrorIllegalConstant, at{diag.NewSpan(2, 1, 0)}, "100%", "int8", "out of range")
	doc := diag.NewDocument("exprs.yaml")
	d := err.Diagnostic(doc)
	assert.Equal(t, diag.ID(535), d.ID)
	assert.Equal(t, doc, d.Doc)
	assert.Equal(t, 2, d.Loc.Start.Line)
	assert.Equal(t, "Constant '100%' cannot be represented as 'int8': out of range", fmt.Sprintf(d.Message))
}
