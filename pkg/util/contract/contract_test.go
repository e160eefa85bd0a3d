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

package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertPanics(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { Assert(true) })
	assert.Panics(t, func() { Assert(false) })
	assert.Panics(t, func() { Assertf(false, "value was %v", 42) })
	assert.NotPanics(t, func() { AssertNoError(nil) })
}

func TestRequireMessage(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		assert.Equal(t, "fatal: A precondition has failed for node: missing callee", r)
	}()
	Requiref(false, "node", "missing %v", "callee")
}
