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
	"fmt"

	"github.com/golang/glog"
)

// failfast logs and panics in a way that is friendly to debugging.  Contract violations indicate programming errors
// on the part of a caller, so they are never converted into ordinary error values.
func failfast(msg string) {
	if glog.V(3) {
		glog.V(3).Infof("contract violation: %v", msg)
	}
	panic(fmt.Sprintf("fatal: %v", msg))
}
