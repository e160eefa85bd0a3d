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

// Package testutil contains helpers shared by tests.
package testutil

import (
	"sync"

	"github.com/pulumi/dynexpr/pkg/diag"
)

// TestDiagSink suppresses message output, but captures diagnostics so that tests can inspect them.
type TestDiagSink struct {
	Pwd  string
	sink diag.Sink

	lock     sync.Mutex
	infos    []string
	errors   []string
	warnings []string
}

var _ diag.Sink = (*TestDiagSink)(nil)

func NewTestDiagSink(pwd string) *TestDiagSink {
	return &TestDiagSink{
		Pwd: pwd,
		sink: diag.DefaultSink(diag.FormatOptions{
			Pwd: pwd,
		}),
	}
}

func (d *TestDiagSink) Count() int {
	return d.Errors() + d.Warnings()
}

func (d *TestDiagSink) Infos() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return len(d.infos)
}

func (d *TestDiagSink) InfoMsgs() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]string(nil), d.infos...)
}

func (d *TestDiagSink) Errors() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return len(d.errors)
}

func (d *TestDiagSink) ErrorMsgs() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]string(nil), d.errors...)
}

func (d *TestDiagSink) Warnings() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return len(d.warnings)
}

func (d *TestDiagSink) WarningMsgs() []string {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]string(nil), d.warnings...)
}

func (d *TestDiagSink) Success() bool {
	return d.Errors() == 0
}

func (d *TestDiagSink) Infof(dia *diag.Diag, args ...interface{}) {
	d.append(&d.infos, d.Stringify(diag.Info, dia, args...))
}

func (d *TestDiagSink) Errorf(dia *diag.Diag, args ...interface{}) {
	d.append(&d.errors, d.Stringify(diag.Error, dia, args...))
}

func (d *TestDiagSink) Warningf(dia *diag.Diag, args ...interface{}) {
	d.append(&d.warnings, d.Stringify(diag.Warning, dia, args...))
}

func (d *TestDiagSink) Stringify(sev diag.Severity, dia *diag.Diag, args ...interface{}) string {
	return d.sink.Stringify(sev, dia, args...)
}

func (d *TestDiagSink) append(msgs *[]string, msg string) {
	d.lock.Lock()
	defer d.lock.Unlock()
	*msgs = append(*msgs, msg)
}
