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

package binder

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	multierror "github.com/hashicorp/go-multierror"
	pkgerrors "github.com/pkg/errors"
	"github.com/texttheater/golang-levenshtein/levenshtein"

	"github.com/pulumi/dynexpr/pkg/compiler/ast"
	"github.com/pulumi/dynexpr/pkg/compiler/bound"
	"github.com/pulumi/dynexpr/pkg/compiler/errors"
	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
	"github.com/pulumi/dynexpr/pkg/compiler/types"
	"github.com/pulumi/dynexpr/pkg/util/contract"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// callSite is one call to resolve: a member name looked up on a type, in static or instance mode, applied to a list of
// unbound argument nodes.
type callSite struct {
	node     ast.Node         // the call node, for diagnostics.
	receiver bound.Expression // the bound receiver; for static calls, a type reference.
	typ      *symbols.Type    // the type whose members are searched.
	name     string
	static   bool
	args     []ast.Node
	nullProp bool
}

// argKey identifies a tentative argument binding.
type argKey struct {
	index    int
	expected *symbols.Type
}

type argBinding struct {
	expr bound.Expression
	err  error
}

// argPlan is one supplied argument of an applicable candidate: its tentative binding and the conversion it needs.
type argPlan struct {
	expr bound.Expression
	to   *symbols.Type
	conv types.Conversion
}

// candidate is an applicable overload together with its score.
type candidate struct {
	member      *symbols.Member
	plans       []argPlan
	packed      bool    // true if trailing arguments are packed into the variadic parameter's array.
	explicit    bool    // true if some argument needs an explicit conversion.
	min         float64 // the worst argument conversion quality; 1.0 when there are no arguments.
	sum         float64 // the sum of all argument conversion qualities.
	nonIdentity int     // the number of arguments whose type differs from their parameter's.
}

// resolver carries the state of a single overload resolution.
type resolver struct {
	ctx    *Context
	site   *callSite
	args   map[argKey]argBinding
	argErr error // the first error encountered binding an argument.
}

// resolveCall selects the best callable member for a call site and binds the call.  The returned bool reports whether
// any callable member of the right name and mode existed; once it does, failures are final for the call site.
func resolveCall(ctx *Context, site *callSite) (bound.Expression, bool, error) {
	var members []*symbols.Member
	for _, m := range site.typ.GetMembers(site.name) {
		if m.IsCallable() && m.Static == site.static {
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		return nil, false, memberNotFound(site.node, site.typ, site.name, site.static, false)
	}

	r := &resolver{ctx: ctx, site: site, args: make(map[argKey]argBinding)}
	var implicit, explicit []*candidate
	var reasons *multierror.Error
	for _, m := range members {
		c, err := r.evaluate(m)
		if err != nil {
			if errors.Is(err, errors.ErrorMalformedNode) {
				return nil, true, err
			}
			logging.V(7).Infof("Candidate %v rejected: %v", m, err)
			reasons = multierror.Append(reasons, pkgerrors.Wrapf(err, "%v", m))
			continue
		}
		if c.explicit {
			explicit = append(explicit, c)
		} else {
			implicit = append(implicit, c)
		}
	}

	applicable := implicit
	if len(applicable) == 0 {
		if ctx.Options.DisallowExplicitArguments {
			for _, c := range explicit {
				reasons = multierror.Append(reasons,
					pkgerrors.Errorf("%v: an argument requires an explicit conversion", c.member))
			}
		} else {
			applicable = explicit
		}
	}
	if len(applicable) == 0 {
		if r.argErr != nil {
			return nil, true, r.argErr
		}
		return nil, true, errors.New(errors.ErrorNoApplicableOverload, site.node,
			site.typ, site.name, r.argTypes()).WithReasons(reasons)
	}

	winners := r.selectBest(applicable)
	if len(winners) > 1 {
		var names []string
		for _, w := range winners {
			names = append(names, fmt.Sprintf("'%v'", w.member))
		}
		return nil, true, errors.New(errors.ErrorAmbiguousCall, site.node,
			site.typ, site.name, strings.Join(names, " and "))
	}

	w := winners[0]
	logging.V(7).Infof("Resolved %v.%v to %v (min=%v, sum=%v)", site.typ, site.name, w.member, w.min, w.sum)
	var receiver bound.Expression
	if !site.static {
		receiver = site.receiver
	}
	return bound.NewCall(site.node, receiver, w.member, r.materialize(w), site.nullProp && !site.static), true, nil
}

// bindArg binds argument i, at most once per expected type.
func (r *resolver) bindArg(i int, expected *symbols.Type) (bound.Expression, error) {
	key := argKey{i, expected}
	if b, has := r.args[key]; has {
		return b.expr, b.err
	}
	expr, err := bind(r.site.args[i], r.ctx, expected)
	if err == nil {
		r.ctx.Catalog.Register(expr.Type())
	} else if r.argErr == nil {
		r.argErr = err
	}
	r.args[key] = argBinding{expr, err}
	return expr, err
}

// evaluate checks whether m can accept the call's arguments and, if so, scores it.  A variadic member is tried in its
// normal form first and then with trailing arguments packed into its array parameter.
func (r *resolver) evaluate(m *symbols.Member) (*candidate, error) {
	n := len(r.site.args)
	params := m.Parameters
	if n < m.MinArity() || (!m.IsVariadic() && n > len(params)) {
		return nil, errors.New(errors.ErrorArgumentCountMismatch, r.site.node, m.Name, arity(m), n)
	}

	var err error
	if n <= len(params) {
		var c *candidate
		if c, err = r.evaluateForm(m, false); err == nil {
			return c, nil
		}
	}
	if m.IsVariadic() && n >= len(params)-1 {
		return r.evaluateForm(m, true)
	}
	return nil, err
}

func (r *resolver) evaluateForm(m *symbols.Member, packed bool) (*candidate, error) {
	c := &candidate{member: m, packed: packed, min: 1.0}
	fixed := len(m.Parameters)
	if packed {
		fixed--
	}
	for i := range r.site.args {
		var p *symbols.Parameter
		var to *symbols.Type
		if i < fixed {
			p = m.Parameters[i]
			to = p.Type
		} else {
			p = m.Parameters[fixed]
			to = p.Type.ElementType()
		}
		contract.Assert(to != nil)

		expr, err := r.bindArg(i, to)
		if err != nil {
			return nil, err
		}
		from := expr.Type()
		conv, ok := r.ctx.Catalog.Resolve(from, to)
		if !ok {
			return nil, errors.New(errors.ErrorArgumentNotConvertible, r.site.args[i], i+1, from, p.Name, to)
		}

		q := conv.Quality
		if from == to {
			q = types.QualitySameType
		} else {
			c.nonIdentity++
			if !conv.IsImplicit() {
				c.explicit = true
			}
		}
		c.min = math.Min(c.min, q)
		c.sum += q
		c.plans = append(c.plans, argPlan{expr: expr, to: to, conv: conv})
	}
	return c, nil
}

// materialize builds the final argument list of the winning candidate: converted supplied arguments, packed variadic
// arguments, and defaults for omitted optional parameters.
func (r *resolver) materialize(c *candidate) []bound.Expression {
	params := c.member.Parameters
	var args []bound.Expression
	fixed := len(c.plans)
	if c.packed {
		fixed = len(params) - 1
	}
	for i := 0; i < fixed; i++ {
		plan := c.plans[i]
		args = append(args, convert(plan.expr, plan.to, plan.conv))
	}

	if c.packed {
		variadic := params[len(params)-1]
		var elems []bound.Expression
		for _, plan := range c.plans[fixed:] {
			elems = append(elems, convert(plan.expr, plan.to, plan.conv))
		}
		return append(args, bound.NewNewArray(nil, variadic.Type.ElementType(), elems))
	}

	for _, p := range params[len(args):] {
		args = append(args, defaultArgument(p))
	}
	return args
}

// defaultArgument produces the value passed for an omitted parameter.
func defaultArgument(p *symbols.Parameter) bound.Expression {
	if p.Variadic {
		return bound.NewNewArray(nil, p.Type.ElementType(), nil)
	}
	contract.Assertf(p.Optional, "parameter '%v' is required", p.Name)
	if p.Default != nil {
		v, err := coerceConstant(p.Default, p.Type)
		if err == nil {
			return bound.NewConstant(nil, p.Type, v)
		}
		logging.V(5).Infof("Default value %v of parameter '%v' is not a %v: %v", p.Default, p.Name, p.Type, err)
	}
	return bound.NewDefault(nil, p.Type)
}

// argTypes renders the natural types of the call's arguments for diagnostics.
func (r *resolver) argTypes() string {
	var buf bytes.Buffer
	for i := range r.site.args {
		if i > 0 {
			buf.WriteString(", ")
		}
		if expr, err := r.bindArg(i, nil); err == nil {
			buf.WriteString(expr.Type().Name())
		} else {
			buf.WriteString("?")
		}
	}
	return buf.String()
}

func arity(m *symbols.Member) string {
	lo, hi := m.MinArity(), len(m.Parameters)
	switch {
	case m.IsVariadic():
		return fmt.Sprintf("at least %v", lo)
	case lo == hi:
		return fmt.Sprintf("%v", lo)
	default:
		return fmt.Sprintf("%v to %v", lo, hi)
	}
}

// qualityEpsilon absorbs rounding differences between sums of the same qualities taken in different orders.
const qualityEpsilon = 1e-9

// better returns true if a is a strictly better match than b.  Candidates are ranked by their worst argument
// conversion, then by how many arguments need any conversion, then by total quality, then by how specific their
// parameter types are, then by how derived the declaring type is; finally the normal form of a variadic member beats
// its packed form.
func (r *resolver) better(a *candidate, b *candidate) bool {
	if math.Abs(a.min-b.min) > qualityEpsilon {
		return a.min > b.min
	}
	if a.nonIdentity != b.nonIdentity {
		return a.nonIdentity < b.nonIdentity
	}
	if math.Abs(a.sum-b.sum) > qualityEpsilon {
		return a.sum > b.sum
	}
	if r.moreSpecific(a, b) {
		return true
	}
	if r.moreSpecific(b, a) {
		return false
	}
	if da, db := a.member.Declaring, b.member.Declaring; da != db {
		if da.DerivesFrom(db) {
			return true
		}
		if db.DerivesFrom(da) {
			return false
		}
	}
	return !a.packed && b.packed
}

// moreSpecific returns true if each of a's parameter types converts implicitly, and only one way, to the
// corresponding parameter type of b, and at least one of them differs.
func (r *resolver) moreSpecific(a *candidate, b *candidate) bool {
	if len(a.plans) != len(b.plans) {
		return false
	}
	strict := false
	for i := range a.plans {
		ta, tb := a.plans[i].to, b.plans[i].to
		if ta == tb {
			continue
		}
		if conv, ok := r.ctx.Catalog.Resolve(ta, tb); !ok || !conv.IsImplicit() {
			return false
		}
		if back, ok := r.ctx.Catalog.Resolve(tb, ta); ok && back.IsImplicit() {
			return false
		}
		strict = true
	}
	return strict
}

// selectBest returns the candidates that no other candidate beats, in declaration order.
func (r *resolver) selectBest(cands []*candidate) []*candidate {
	var best []*candidate
	for _, c := range cands {
		beaten := false
		for _, other := range cands {
			if other != c && r.better(other, c) {
				beaten = true
				break
			}
		}
		if !beaten {
			best = append(best, c)
		}
	}
	if len(best) == 0 {
		// The ranking has a cycle; none of the candidates is better than all of the others.
		return cands
	}
	return best
}

// memberNotFound reports a missing member, explaining near misses: a member of the wrong mode or shape, or a
// similarly spelled name.
func memberNotFound(node ast.Node, t *symbols.Type, name string, static bool, wantValue bool) error {
	mode := "instance"
	if static {
		mode = "static"
	}

	hint := ""
	for _, m := range t.GetMembers(name) {
		switch {
		case m.Static != static && m.Static:
			hint = fmt.Sprintf("; '%v' is static and must be accessed through the type", name)
		case m.Static != static:
			hint = fmt.Sprintf("; '%v' is an instance member and needs a receiver", name)
		case wantValue && m.IsCallable():
			hint = fmt.Sprintf("; '%v' is a method and must be invoked", name)
		case !wantValue && m.IsValue():
			hint = fmt.Sprintf("; '%v' is a %v, not a method", name, m.Kind)
		}
		if hint != "" {
			break
		}
	}
	if hint == "" {
		if suggestion := closestMember(t, name); suggestion != "" {
			hint = fmt.Sprintf("; did you mean '%v'?", suggestion)
		}
	}
	return errors.New(errors.ErrorMemberNotFound, node, mode, name, t, hint)
}

// closestMember finds the visible member name nearest to name, ignoring case, within a small edit distance.  Ties go
// to the alphabetically first name.
func closestMember(t *symbols.Type, name string) string {
	maxDistance := len(name) / 3
	if maxDistance < 1 {
		maxDistance = 1
	}

	match, closest := "", maxDistance+1
	needle := []rune(strings.ToLower(name))
	for _, nm := range t.MemberNames() {
		d := levenshtein.DistanceForStrings(needle, []rune(strings.ToLower(nm)), levenshtein.DefaultOptions)
		if d < closest {
			closest = d
			match = nm
		}
	}
	return match
}
