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

package encoding

import (
	"bytes"
	"encoding/json"
	"path/filepath"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

// Marshaler reads and writes documents in one format.
type Marshaler interface {
	Format() string // the format's name, e.g. "json".
	Marshal(v interface{}) ([]byte, error)
	Unmarshal(data []byte, v interface{}) error
}

var (
	JSON Marshaler = jsonMarshaler{}
	YAML Marshaler = yamlMarshaler{}
)

// Exts lists the recognized document extensions, the preferred one first.  ".yml" is not a sanctioned YAML extension,
// but it is common enough to accept.
var Exts = []string{".json", ".yaml", ".yml"}

// Marshalers maps each extension in Exts to the marshaler for its format.
var Marshalers map[string]Marshaler

// Detect picks a marshaler by the extension of path, returning nil if the extension is not recognized.  Paths without
// an extension get the default marshaler.
func Detect(path string) (Marshaler, string) {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = Exts[0]
	}
	return Marshalers[ext], ext
}

// Default returns the marshaler for the preferred extension.
func Default() Marshaler {
	return Marshalers[Exts[0]]
}

// ForFormat finds a marshaler by format name.
func ForFormat(name string) (Marshaler, bool) {
	for _, m := range []Marshaler{JSON, YAML} {
		if m.Format() == name {
			return m, true
		}
	}
	return nil, false
}

type jsonMarshaler struct{}

func (jsonMarshaler) Format() string { return "json" }

func (jsonMarshaler) Marshal(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "    ")
}

// Unmarshal keeps numbers as json.Number, so that integers of any width survive until a type is known for them.
func (jsonMarshaler) Unmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

type yamlMarshaler struct{}

func (yamlMarshaler) Format() string { return "yaml" }

func (yamlMarshaler) Marshal(v interface{}) ([]byte, error) {
	return yaml.Marshal(v)
}

// Unmarshal reports type mismatches as they are; anything else is a syntax error in the document.
func (yamlMarshaler) Unmarshal(data []byte, v interface{}) error {
	err := yaml.Unmarshal(data, v)
	if _, ok := err.(*yaml.TypeError); ok || err == nil {
		return err
	}
	return errors.Wrap(err, "invalid YAML file")
}
