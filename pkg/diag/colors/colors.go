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

package colors

import (
	"github.com/reconquest/loreley"

	"github.com/pulumi/dynexpr/pkg/util/contract"
)

const colorLeft = "<{%"
const colorRight = "%}>"

func init() {
	// Change the Loreley delimiters from { and }, to something more complex, to avoid accidental collisions.
	loreley.DelimLeft = colorLeft
	loreley.DelimRight = colorRight
}

// Command wraps a loreley directive in the module's delimiters.
func Command(s string) string {
	return colorLeft + s + colorRight
}

// ColorizeText compiles and executes any color directives embedded in s.
func ColorizeText(s string) string {
	c, err := loreley.CompileAndExecuteToString(s, nil, nil)
	contract.Assertf(err == nil, "Expected no errors during string colorization; str=%v, err=%v", s, err)
	return c
}

// Basic
var (
	Red     = Command("fg 1")
	Yellow  = Command("fg 3")
	Magenta = Command("fg 5")
	Cyan    = Command("fg 6")
	Reset   = Command("reset")
)

// Special predefined colors for logical conditions.
var (
	SpecInfo     = Magenta // for information.
	SpecError    = Red     // for errors.
	SpecWarning  = Yellow  // for warnings.
	SpecLocation = Cyan    // for source locations.
)
