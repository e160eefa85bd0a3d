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

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
	"github.com/pulumi/dynexpr/pkg/compiler/types"
	"github.com/pulumi/dynexpr/pkg/encoding"
	"github.com/pulumi/dynexpr/pkg/util/cmdutil"
)

func newConvertCmd() *cobra.Command {
	var manifest string
	var list bool
	var output string
	cmd := &cobra.Command{
		Use:   "convert <from> [to]",
		Short: "Show how values of one type convert to another",
		Long: "Show how values of one type convert to another.\n" +
			"\n" +
			"Prints the conversion catalog's entry for the pair: its quality, whether a built-in rule\n" +
			"provides it, and any user-defined operators.  With --list, prints every known conversion\n" +
			"from the first type instead, or the whole catalog if no type is given.",
		Args: cobra.RangeArgs(0, 2),
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			if !list && len(args) != 2 {
				return errors.New("convert needs a source and a destination type, or --list")
			}
			if list && len(args) > 1 {
				return errors.New("--list accepts at most one type")
			}
			if output != "" && !list {
				return errors.New("--output only applies to --list")
			}

			u, err := loadUniverse(manifest)
			if err != nil {
				return err
			}
			if list {
				var from string
				if len(args) == 1 {
					from = args[0]
				}
				return listConversions(u, types.NewCatalog(), from, output, os.Stdout)
			}
			return showConversion(u, types.NewCatalog(), args[0], args[1], os.Stdout)
		}),
	}

	cmd.Flags().StringVarP(&manifest, "types", "t", "",
		"A universe manifest (JSON or YAML) declaring additional types")
	cmd.Flags().BoolVarP(&list, "list", "l", false,
		"List every known conversion instead of a single pair")
	cmd.Flags().StringVarP(&output, "output", "o", "",
		"Print the --list as a json or yaml document instead of text")

	return cmd
}

func resolveTypeArg(u *symbols.Universe, ref string) (*symbols.Type, error) {
	t, ok := u.ResolveType(ref)
	if !ok {
		return nil, errors.Errorf("type '%v' could not be found", ref)
	}
	return t, nil
}

func showConversion(u *symbols.Universe, catalog *types.Catalog, from, to string, w io.Writer) error {
	ft, err := resolveTypeArg(u, from)
	if err != nil {
		return err
	}
	tt, err := resolveTypeArg(u, to)
	if err != nil {
		return err
	}

	conv, ok := catalog.Resolve(ft, tt)
	if !ok {
		fmt.Fprintf(w, "%v -> %v: none\n", ft, tt)
		return nil
	}
	fmt.Fprintf(w, "%v -> %v: %v (%v)\n", ft, tt, conv, qualityTier(conv))
	return nil
}

// conversionRecord is one catalog entry, as written by --list --output.
type conversionRecord struct {
	From     string  `json:"from" yaml:"from"`
	To       string  `json:"to" yaml:"to"`
	Quality  float64 `json:"quality" yaml:"quality"`
	Tier     string  `json:"tier" yaml:"tier"`
	Natural  bool    `json:"natural,omitempty" yaml:"natural,omitempty"`
	Implicit string  `json:"implicit,omitempty" yaml:"implicit,omitempty"`
	Explicit string  `json:"explicit,omitempty" yaml:"explicit,omitempty"`
}

func newConversionRecord(e types.Entry) conversionRecord {
	r := conversionRecord{
		From:    e.From.Name(),
		To:      e.To.Name(),
		Quality: e.Quality,
		Tier:    qualityTier(e.Conversion),
		Natural: e.Natural,
	}
	if e.Implicit != nil {
		r.Implicit = e.Implicit.String()
	}
	if e.Explicit != nil {
		r.Explicit = e.Explicit.String()
	}
	return r
}

// listConversions prints the catalog entries from one type, or all of them if from is empty.  Entries are printed as
// text lines unless output names a document format.
func listConversions(u *symbols.Universe, catalog *types.Catalog, from string, output string, w io.Writer) error {
	var m encoding.Marshaler
	if output != "" {
		var ok bool
		if m, ok = encoding.ForFormat(output); !ok {
			return errors.Errorf("unsupported output format '%v'; choices are: json, yaml", output)
		}
	}

	var ft *symbols.Type
	if from != "" {
		t, err := resolveTypeArg(u, from)
		if err != nil {
			return err
		}
		ft = t
	}

	for _, t := range u.Types() {
		catalog.Register(t)
	}
	records := []conversionRecord{}
	for _, e := range catalog.Entries() {
		if ft != nil && e.From != ft {
			continue
		}
		if m == nil {
			fmt.Fprintf(w, "%v -> %v: %v (%v)\n", e.From, e.To, e.Conversion, qualityTier(e.Conversion))
			continue
		}
		records = append(records, newConversionRecord(e))
	}
	if m == nil {
		return nil
	}

	b, err := m.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "marshaling conversions")
	}
	if _, err = w.Write(b); err != nil {
		return err
	}
	if len(b) > 0 && b[len(b)-1] != '\n' {
		_, err = fmt.Fprintln(w)
	}
	return err
}

// qualityTier names the best tier a conversion's quality reaches.
func qualityTier(conv types.Conversion) string {
	switch q := conv.Quality; {
	case q >= types.QualitySameType:
		return "same type"
	case q >= types.QualityInheritanceHierarchy:
		return "inheritance"
	case q >= types.QualityInPlaceConversion:
		return "in-place"
	case q >= types.QualityImplicitConversion:
		return "implicit"
	case q >= types.QualityPrecisionConversion:
		return "precision loss"
	default:
		return "explicit only"
	}
}
