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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/pulumi/dynexpr/pkg/diag/colors"
	"github.com/pulumi/dynexpr/pkg/util/contract"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// Sink facilitates pluggable diagnostics messages.
type Sink interface {
	// Count fetches the total number of diagnostics issued (errors plus warnings).
	Count() int
	// Infos fetches the number of informational messages issued.
	Infos() int
	// Errors fetches the number of errors issued.
	Errors() int
	// Warnings fetches the number of warnings issued.
	Warnings() int
	// Success returns true if this sink is currently error-free.
	Success() bool

	// Infof issues an informational message.
	Infof(diag *Diag, args ...interface{})
	// Errorf issues a new error diagnostic.
	Errorf(diag *Diag, args ...interface{})
	// Warningf issues a new warning diagnostic.
	Warningf(diag *Diag, args ...interface{})

	// Stringify stringifies a diagnostic in the usual way (e.g., "error: DX531: expr.json(7,39): error goes here\n").
	Stringify(sev Severity, diag *Diag, args ...interface{}) string
}

// Severity dictates the kind of diagnostic.
type Severity string

const (
	Info    Severity = "info"
	Error   Severity = "error"
	Warning Severity = "warning"
)

// FormatOptions controls the output style and content.
type FormatOptions struct {
	Pwd    string // the working directory.
	Colors bool   // if true, output will be colorized.
}

// DefaultSink returns a default sink that simply logs output to stderr/stdout.
func DefaultSink(opts FormatOptions) Sink {
	return newDefaultSink(opts, map[Severity]io.Writer{
		Info:    os.Stdout,
		Error:   os.Stderr,
		Warning: os.Stderr,
	})
}

func newDefaultSink(opts FormatOptions, writers map[Severity]io.Writer) *defaultSink {
	contract.Assert(writers[Info] != nil)
	contract.Assert(writers[Error] != nil)
	contract.Assert(writers[Warning] != nil)
	return &defaultSink{opts: opts, counts: make(map[Severity]int), writers: writers}
}

const DefaultSinkIDPrefix = "DX"

// defaultSink is the default sink which logs output to stderr/stdout.
type defaultSink struct {
	opts    FormatOptions          // a set of options that control output style and content.
	lock    sync.Mutex             // a lock to guard the counts; bindings may report concurrently.
	counts  map[Severity]int       // the number of diagnostics issued per severity.
	writers map[Severity]io.Writer // the output stream to use for each severity.
}

func (d *defaultSink) count(sev Severity) int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.counts[sev]
}

func (d *defaultSink) Count() int    { return d.Errors() + d.Warnings() }
func (d *defaultSink) Infos() int    { return d.count(Info) }
func (d *defaultSink) Errors() int   { return d.count(Error) }
func (d *defaultSink) Warnings() int { return d.count(Warning) }
func (d *defaultSink) Success() bool { return d.Errors() == 0 }

func (d *defaultSink) Infof(diag *Diag, args ...interface{}) {
	d.logf(Info, diag, args...)
}

func (d *defaultSink) Errorf(diag *Diag, args ...interface{}) {
	d.logf(Error, diag, args...)
}

func (d *defaultSink) Warningf(diag *Diag, args ...interface{}) {
	d.logf(Warning, diag, args...)
}

func (d *defaultSink) logf(sev Severity, diag *Diag, args ...interface{}) {
	msg := d.Stringify(sev, diag, args...)
	if logging.V(3) {
		logging.V(3).Infof("defaultSink::%v(%v)", sev, msg[:len(msg)-1])
	}

	d.lock.Lock()
	defer d.lock.Unlock()
	fmt.Fprint(d.writers[sev], msg)
	d.counts[sev]++
}

func (d *defaultSink) Stringify(sev Severity, diag *Diag, args ...interface{}) string {
	var buffer bytes.Buffer

	// First print the location if there is one.
	if diag.Doc != nil || diag.Loc != nil {
		buffer.WriteString(d.StringifyLocation(diag.Doc, diag.Loc))
		buffer.WriteString(": ")
	}

	// Now print the message category's prefix (error/warning).
	if d.opts.Colors {
		switch sev {
		case Info:
			buffer.WriteString(colors.SpecInfo)
		case Error:
			buffer.WriteString(colors.SpecError)
		case Warning:
			buffer.WriteString(colors.SpecWarning)
		default:
			contract.Failf("Unrecognized diagnostic severity: %v", sev)
		}
	}

	buffer.WriteString(string(sev))

	if diag.ID > 0 {
		buffer.WriteString(" ")
		buffer.WriteString(DefaultSinkIDPrefix)
		buffer.WriteString(strconv.Itoa(int(diag.ID)))
	}

	buffer.WriteString(": ")

	if d.opts.Colors {
		buffer.WriteString(colors.Reset)
	}

	// Finally, actually print the message itself.
	buffer.WriteString(fmt.Sprintf(diag.Message, args...))
	buffer.WriteRune('\n')

	s := buffer.String()

	// If colorization was requested, compile and execute the directives now.
	if d.opts.Colors {
		s = colors.ColorizeText(s)
	}

	return s
}

func (d *defaultSink) StringifyLocation(doc *Document, loc *Location) string {
	var buffer bytes.Buffer

	if doc != nil {
		if d.opts.Colors {
			buffer.WriteString(colors.SpecLocation)
		}

		file := doc.File
		if d.opts.Pwd != "" {
			// If a PWD is available, try to create a relative path.
			rel, err := filepath.Rel(d.opts.Pwd, file)
			if err == nil {
				file = rel
			}
		}
		buffer.WriteString(file)
	}

	if loc != nil && !loc.IsEmpty() {
		buffer.WriteRune('(')
		buffer.WriteString(strconv.Itoa(loc.Start.Line))
		buffer.WriteRune(',')
		buffer.WriteString(strconv.Itoa(loc.Start.Column))
		buffer.WriteRune(')')
	}

	if d.opts.Colors && doc != nil {
		buffer.WriteString(colors.Reset)
	}

	return buffer.String()
}
