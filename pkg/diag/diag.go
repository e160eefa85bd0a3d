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

// ID is a unique diagnostics identifier.
type ID int

// Diag is an instance of an error or warning generated by the binder.
type Diag struct {
	ID      ID        // a unique identifier for this diagnostic; 0 for free-form messages.
	Message string    // a human-friendly format string for this diagnostic.
	Doc     *Document // the document in which this diagnostic occurred, if any.
	Loc     *Location // the source location of this diagnostic, if any.
}

// Diagable can be used to determine a diagnostic's position.
type Diagable interface {
	Where() *Location
}

// Message returns an anonymous diagnostic with the given format string.
func Message(msg string) *Diag {
	return &Diag{Message: msg}
}

// At adds a position to an existing diagnostic, retaining its ID and message.
func (diag *Diag) At(d Diagable) *Diag {
	var loc *Location
	if d != nil {
		loc = d.Where()
	}
	return &Diag{
		ID:      diag.ID,
		Message: diag.Message,
		Doc:     diag.Doc,
		Loc:     loc,
	}
}

// In associates a document with an existing diagnostic.
func (diag *Diag) In(doc *Document) *Diag {
	return &Diag{
		ID:      diag.ID,
		Message: diag.Message,
		Doc:     doc,
		Loc:     diag.Loc,
	}
}

func (diag *Diag) String() string {
	if diag.ID == 0 {
		return diag.Message
	}
	return fmt.Sprintf("%v%v: %v", DefaultSinkIDPrefix, diag.ID, diag.Message)
}

// Document is a file that diagnostics may refer to.
type Document struct {
	File string
}

// NewDocument returns a document for the given file name.
func NewDocument(file string) *Document {
	return &Document{File: file}
}
