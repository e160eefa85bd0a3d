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

package types

import (
	"fmt"
	"sort"
	"sync"

	"github.com/pulumi/dynexpr/pkg/compiler/symbols"
	"github.com/pulumi/dynexpr/pkg/util/contract"
	"github.com/pulumi/dynexpr/pkg/util/logging"
)

// Conversion qualities, from best to worst.
const (
	QualitySameType             = 1.0
	QualityInheritanceHierarchy = 0.9
	QualityInPlaceConversion    = 0.7
	QualityImplicitConversion   = 0.5
	QualityNumberExpansion      = 0.5
	QualityPrecisionConversion  = 0.4
	QualityExplicitConversion   = 0.0
	QualityNoConversion         = 0.0
)

// Conversion records what is known about converting values of one type to another.
type Conversion struct {
	Quality  float64         // how natural the conversion is; 0.0 means it requires an explicit cast.
	Natural  bool            // true if a built-in rule provides it.
	Implicit *symbols.Member // a user-defined implicit operator for the pair, if any.
	Explicit *symbols.Member // a user-defined explicit operator for the pair, if any.
}

// IsImplicit returns true if the conversion may be applied without an explicit cast.
func (c Conversion) IsImplicit() bool { return c.Quality > QualityExplicitConversion }

// Operator returns the user-defined operator that performs this conversion, preferring the implicit one.
func (c Conversion) Operator() *symbols.Member {
	if c.Implicit != nil {
		return c.Implicit
	}
	return c.Explicit
}

func (c Conversion) String() string {
	s := fmt.Sprintf("%.1f", c.Quality)
	if c.Natural {
		s += " natural"
	}
	if c.Implicit != nil {
		s += " implicit=" + c.Implicit.String()
	}
	if c.Explicit != nil {
		s += " explicit=" + c.Explicit.String()
	}
	return s
}

// expand merges another fact about the same pair into this one, keeping the better quality and every operator.
func (c *Conversion) expand(other Conversion) bool {
	changed := false
	if other.Quality > c.Quality {
		c.Quality = other.Quality
		changed = true
	}
	if other.Natural && !c.Natural {
		c.Natural = true
		changed = true
	}
	if other.Implicit != nil && c.Implicit == nil {
		c.Implicit = other.Implicit
		changed = true
	}
	if other.Explicit != nil && c.Explicit == nil {
		c.Explicit = other.Explicit
		changed = true
	}
	return changed
}

type pair struct {
	from *symbols.Type
	to   *symbols.Type
}

// Entry is one row of a catalog snapshot.
type Entry struct {
	From *symbols.Type
	To   *symbols.Type
	Conversion
}

// Catalog ranks conversions between ordered pairs of types.  It is seeded with the natural numeric conversions and
// learns the rest incrementally as types are registered.  A catalog is safe for concurrent use.
type Catalog struct {
	lock       sync.Mutex
	entries    map[pair]*Conversion
	registered map[*symbols.Type]bool
}

// NewCatalog creates a catalog holding the numeric conversion table and the primitive types.
func NewCatalog() *Catalog {
	c := &Catalog{
		entries:    make(map[pair]*Conversion),
		registered: make(map[*symbols.Type]bool),
	}
	for i, from := range numericKinds {
		row := numericTable[i]
		contract.Assertf(len(row) == len(numericKinds), "numeric table row %v has %d cells", from, len(row))
		for j, to := range numericKinds {
			c.entries[pair{from, to}] = &Conversion{Quality: numericQuality(row[j]), Natural: true}
		}
	}
	for _, prim := range symbols.Primitives {
		c.Register(prim)
	}
	return c
}

var defaultCatalog struct {
	once    sync.Once
	catalog *Catalog
}

// DefaultCatalog returns a process-wide catalog, creating it on first use.
func DefaultCatalog() *Catalog {
	defaultCatalog.once.Do(func() {
		defaultCatalog.catalog = NewCatalog()
	})
	return defaultCatalog.catalog
}

// QualityOf returns the known conversion from one type to another, if any.  The null literal converts to every
// reference and nullable type; that answer is synthesized rather than stored.
func (c *Catalog) QualityOf(from *symbols.Type, to *symbols.Type) (Conversion, bool) {
	contract.Require(from != nil, "from")
	contract.Require(to != nil, "to")

	c.lock.Lock()
	defer c.lock.Unlock()
	return c.qualityOf(from, to)
}

func (c *Catalog) qualityOf(from *symbols.Type, to *symbols.Type) (Conversion, bool) {
	if from == symbols.Null {
		switch {
		case to == symbols.Null:
			return Conversion{Quality: QualitySameType, Natural: true}, true
		case to.IsReferenceType() || to.IsNullable():
			return Conversion{Quality: QualityInheritanceHierarchy, Natural: true}, true
		default:
			return Conversion{}, false
		}
	}
	if conv, has := c.entries[pair{from, to}]; has {
		return *conv, true
	}
	return Conversion{}, false
}

// Resolve registers both types, if they haven't been already, and then returns the known conversion between them.
func (c *Catalog) Resolve(from *symbols.Type, to *symbols.Type) (Conversion, bool) {
	contract.Require(from != nil, "from")
	contract.Require(to != nil, "to")

	c.lock.Lock()
	defer c.lock.Unlock()
	c.register(from)
	c.register(to)
	return c.qualityOf(from, to)
}

// Register ingests everything about t that bears on conversions: its place in the type hierarchy, its conversion
// operators, and (for enums and nullables) its underlying type.  Registering a type more than once has no effect.
func (c *Catalog) Register(t *symbols.Type) {
	contract.Require(t != nil, "t")

	c.lock.Lock()
	defer c.lock.Unlock()
	c.register(t)
}

func (c *Catalog) register(t *symbols.Type) {
	if c.registered[t] || t == symbols.Null || t == symbols.Void {
		return
	}
	c.registered[t] = true
	logging.V(7).Infof("Registering type %v with the conversion catalog", t)

	// Identity, then every ancestor and interface.
	for _, b := range t.BaseTypes() {
		q := QualityInheritanceHierarchy
		if b == t {
			q = QualitySameType
		}
		c.expand(t, b, Conversion{Quality: q, Natural: true})
	}
	for _, i := range t.Interfaces() {
		c.expand(t, i, Conversion{Quality: QualityInheritanceHierarchy, Natural: true})
	}

	// User-defined operators.
	for _, op := range t.Conversions() {
		from, to := op.Parameter(0).Type, op.Parameter(-1).Type
		if op.Implicit {
			c.expand(from, to, Conversion{Quality: QualityImplicitConversion, Implicit: op})
		} else {
			c.expand(from, to, Conversion{Quality: QualityExplicitConversion, Explicit: op})
		}
	}

	// In-place conversions always take the fixed in-place quality, in both directions.
	if u := t.UnderlyingType(); u != nil {
		c.overwrite(t, u, QualityInPlaceConversion)
		c.overwrite(u, t, QualityInPlaceConversion)
	}
}

func (c *Catalog) expand(from *symbols.Type, to *symbols.Type, conv Conversion) {
	key := pair{from, to}
	if existing, has := c.entries[key]; has {
		if existing.expand(conv) {
			logging.V(7).Infof("Expanded conversion %v -> %v: %v", from, to, existing)
		}
		return
	}
	c.entries[key] = &conv
	logging.V(7).Infof("Added conversion %v -> %v: %v", from, to, conv)
}

// overwrite replaces the entry for a pair with a natural conversion of the given quality, dropping any operators
// previously attached to it.
func (c *Catalog) overwrite(from *symbols.Type, to *symbols.Type, quality float64) {
	conv := &Conversion{Quality: quality, Natural: true}
	c.entries[pair{from, to}] = conv
	logging.V(7).Infof("Set in-place conversion %v -> %v: %v", from, to, conv)
}

// IsRegistered returns true if t has been ingested by this catalog.
func (c *Catalog) IsRegistered(t *symbols.Type) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.registered[t]
}

// Len returns the number of stored entries.
func (c *Catalog) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.entries)
}

// Entries returns a snapshot of every stored entry, sorted by source and then destination type name.
func (c *Catalog) Entries() []Entry {
	c.lock.Lock()
	defer c.lock.Unlock()
	entries := make([]Entry, 0, len(c.entries))
	for key, conv := range c.entries {
		entries = append(entries, Entry{From: key.from, To: key.to, Conversion: *conv})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].From.Name() != entries[j].From.Name() {
			return entries[i].From.Name() < entries[j].From.Name()
		}
		return entries[i].To.Name() < entries[j].To.Name()
	})
	return entries
}
