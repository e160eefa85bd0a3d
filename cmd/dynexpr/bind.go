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
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	humanize "github.com/dustin/go-humanize"
	multierror "github.com/hashicorp/go-multierror"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pulumi/dynexpr/pkg/compiler/binder"
	bindingerrors "github.com/pulumi/dynexpr/pkg/compiler/errors"
	"github.com/pulumi/dynexpr/pkg/compiler/metadata"
	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
	"github.com/pulumi/dynexpr/pkg/compiler/types"
	"github.com/pulumi/dynexpr/pkg/diag"
	"github.com/pulumi/dynexpr/pkg/encoding"
	"github.com/pulumi/dynexpr/pkg/util/cmdutil"
	"github.com/pulumi/dynexpr/pkg/util/cobrautil"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

type bindOptions struct {
	Types    string           // the universe manifest; empty for primitives only.
	Global   string           // the implicit receiver, as "name=type".
	Params   []cobrautil.Decl // named parameters.
	Explicit bool             // allow the explicit-conversion fallback.
}

func newBindCmd() *cobra.Command {
	var opts bindOptions
	cmd := &cobra.Command{
		Use:   "bind <expr-doc>...",
		Short: "Bind expression documents and print the bound trees",
		Long: "Bind expression documents and print the bound trees.\n" +
			"\n" +
			"Each document holds one expression tree or a list of them.  Every expression is bound\n" +
			"independently against the types in the --types manifest, the --global receiver, and any\n" +
			"--param declarations.  Each bound tree is printed along with its static type; every\n" +
			"expression that fails to bind is reported as a diagnostic.",
		Args: cobra.MinimumNArgs(1),
		Run: cmdutil.RunFunc(func(cmd *cobra.Command, args []string) error {
			bctx, err := newBindingContext(opts)
			if err != nil {
				return err
			}

			ctx := context.Background()
			if cmdutil.TracingRootSpan != nil {
				ctx = opentracing.ContextWithSpan(ctx, cmdutil.TracingRootSpan)
			}
			return runBind(ctx, bctx, args, os.Stdout, cmdutil.Diag())
		}),
	}

	cmd.Flags().StringVarP(&opts.Types, "types", "t", "",
		"A universe manifest (JSON or YAML) declaring the types expressions may use")
	cmd.Flags().StringVarP(&opts.Global, "global", "g", "",
		"Bind target-less member accesses against a receiver, declared as name=type")
	cobrautil.NewDeclsVar(cmd.Flags(), &opts.Params, "param",
		"Declare a named parameter as name=type; may be repeated")
	cmd.Flags().BoolVar(&opts.Explicit, "explicit", true,
		"Fall back to overloads that need an explicit argument conversion when nothing else applies")

	return cmd
}

// loadUniverse reads the manifest at path, or returns the primitive universe if there is none.
func loadUniverse(path string) (*symbols.Universe, error) {
	if path == "" {
		return symbols.NewUniverse(), nil
	}
	return metadata.ReadUniverseFile(path)
}

func newBindingContext(opts bindOptions) (*binder.Context, error) {
	u, err := loadUniverse(opts.Types)
	if err != nil {
		return nil, err
	}

	resolve := func(d cobrautil.Decl, what string) (*symbols.Type, error) {
		t, ok := u.ResolveType(d.Type)
		if !ok {
			return nil, errors.Errorf("%v '%v' has an unknown type '%v'", what, d.Name, d.Type)
		}
		return t, nil
	}

	bctx := binder.NewContext(types.DefaultCatalog(), u)
	bctx.Options.DisallowExplicitArguments = !opts.Explicit
	if opts.Global != "" {
		d, err := cobrautil.ParseDecl(opts.Global)
		if err != nil {
			return nil, errors.Wrap(err, "--global")
		}
		t, err := resolve(d, "global")
		if err != nil {
			return nil, err
		}
		bctx.SetGlobal(d.Name, t)
	}
	for _, d := range opts.Params {
		t, err := resolve(d, "parameter")
		if err != nil {
			return nil, err
		}
		if _, has := bctx.Parameters.Lookup(d.Name); has {
			return nil, errors.Errorf("parameter '%v' is declared more than once", d.Name)
		}
		bctx.DeclareParameter(d.Name, t)
	}
	return bctx, nil
}

// runBind binds every expression in the given documents.  Bound trees are printed to stdout as they are produced,
// one per line; failures go to the sink, and the returned error only summarizes how many there were.
func runBind(ctx context.Context, bctx *binder.Context, files []string, stdout io.Writer, sink diag.Sink) error {
	var total, failed int
	for _, file := range files {
		n, bad, err := bindDocument(ctx, bctx, file, stdout, sink)
		if err != nil {
			return err
		}
		total += n
		failed += bad
	}

	logging.V(3).Infof("Bound %v expressions from %v documents; %v failed", total, len(files), failed)
	if failed > 0 {
		return errors.Errorf("%v of %v expressions failed to bind",
			humanize.Comma(int64(failed)), humanize.Comma(int64(total)))
	}
	return nil
}

// bindDocument binds one document, returning how many expressions it held and how many of them failed.  A document
// that cannot be decoded at all, for instance because of a syntax error, counts as a single failed expression.
func bindDocument(ctx context.Context, bctx *binder.Context, file string, stdout io.Writer,
	sink diag.Sink) (int, int, error) {

	m, b, err := readDocument(file)
	if err != nil {
		return 0, 0, err
	}

	doc := diag.NewDocument(file)
	nodes, err := encoding.DecodeAll(m, b)
	if err != nil {
		report(sink, doc, err)
		return 1, 1, nil
	}

	exprs, err := binder.BindAll(ctx, bctx, nodes)
	for i, expr := range exprs {
		if expr != nil {
			fmt.Fprintf(stdout, "%v#%d: %v : %v\n", file, i, expr, expr.Type())
		}
	}
	if err == nil {
		return len(nodes), 0, nil
	}

	errs := []error{err}
	if merr, ok := err.(*multierror.Error); ok {
		errs = merr.Errors
	}
	for _, e := range errs {
		report(sink, doc, e)
	}
	return len(nodes), len(errs), nil
}

// readDocument reads an expression document, picking its marshaler by extension.
func readDocument(file string) (encoding.Marshaler, []byte, error) {
	m, ext := encoding.Detect(file)
	if m == nil {
		return nil, nil, errors.Errorf("'%v' has an unrecognized extension '%v'; expected one of %v",
			file, ext, strings.Join(encoding.Exts, ", "))
	}
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading '%v'", file)
	}
	return m, b, nil
}

// report issues err as an error diagnostic in doc.
func report(sink diag.Sink, doc *diag.Document, err error) {
	index := -1
	if ee, ok := err.(*binder.ExprError); ok {
		index, err = ee.Index, ee.Err
	}

	var d *diag.Diag
	if be, ok := bindingerrors.AsBindingError(err); ok {
		d = be.Diagnostic(doc)
	} else {
		d = diag.Message(strings.Replace(err.Error(), "%", "%%", -1)).In(doc)
	}
	if index >= 0 && (d.Loc == nil || d.Loc.IsEmpty()) {
		d.Message = fmt.Sprintf("expression #%d: ", index) + d.Message
	}
	sink.Errorf(d)
}
