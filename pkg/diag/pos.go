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

package diag

import (
	"fmt"
)

// Pos represents a position in a document.
type Pos struct {
	Line   int // a 1-based line number
	Column int // a 1-based column number
}

// EmptyPos may be used when no position is needed.
var EmptyPos = Pos{0, 0}

// IsEmpty returns true if the Pos information is missing.
func (pos Pos) IsEmpty() bool {
	return pos.Line == 0 && pos.Column == 0
}

func (pos Pos) String() string {
	return fmt.Sprintf("%d,%d", pos.Line, pos.Column)
}

// Location represents a region spanning two positions in a document.
type Location struct {
	Start Pos  // a starting position.
	End   *Pos // an ending position; if nil, represents a point.
}

// EmptyLocation may be used when no position information is available.
var EmptyLocation = Location{EmptyPos, nil}

// NewSpan returns a single-line location starting at the given line and column and covering length characters.
func NewSpan(line, column, length int) *Location {
	loc := &Location{Start: Pos{Line: line, Column: column}}
	if length > 0 {
		loc.End = &Pos{Line: line, Column: column + length}
	}
	return loc
}

// IsEmpty returns true if the Location information is missing.
func (loc Location) IsEmpty() bool {
	return loc.Start.IsEmpty() && (loc.End == nil || loc.End.IsEmpty())
}

// Length returns the number of columns covered by a single-line location, or 0 if unknown.
func (loc Location) Length() int {
	if loc.End == nil || loc.End.Line != loc.Start.Line {
		return 0
	}
	return loc.End.Column - loc.Start.Column
}
