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

// Binder errors are in the [500-600) range.
var (
	ErrorTypeNotFound            = newError(504, "Type '%v' could not be found")
	ErrorNameNotResolved         = newError(505, "Name '%v' could not be resolved%v")
	ErrorIncorrectExprType       = newError(507, "Expression has the wrong type; expected '%v', got '%v'")
	ErrorCannotInvokeNonDelegate = newError(523, "Cannot invoke a non-delegate value; type '%v' is not invokable")
	ErrorInvalidCast             = newError(529, "Illegal cast from '%v' to '%v'; this can never succeed")
	ErrorMemberNotFound          = newError(531, "No %v member '%v' exists on type '%v'%v")
	ErrorNoApplicableOverload    = newError(532, "No overload of '%v.%v' accepts arguments (%v)")
	ErrorAmbiguousCall           = newError(533, "The call to '%v.%v' is ambiguous between %v")
	ErrorMalformedNode           = newError(534, "Malformed %v node: %v")
	ErrorIllegalConstant         = newError(535, "Constant '%v' cannot be represented as '%v': %v")
	ErrorArgumentNotConvertible  = newError(536,
		"Argument %v of type '%v' cannot be converted to parameter '%v' of type '%v'")
	ErrorArgumentCountMismatch = newError(537, "'%v' expects %v argument(s); got %v instead")
)
