package features

import (
	"fmt"

	"github.com/pable/go-nhl-features/internal/model"
)

// Schema is the fixed, ordered column set of one extractor.
type Schema struct {
	names []string
	index map[string]int
}

// NewSchema builds a schema from names in output order. It panics on a
// duplicate name.
func NewSchema(names ...string) *Schema {
	s := &Schema{names: names, index: make(map[string]int, len(names))}
	for i, n := range names {
		if _, dup := s.index[n]; dup {
			panic(fmt.Sprintf("features: duplicate column %q", n))
		}
		s.index[n] = i
	}
	return s
}

// Names returns a copy of the column names in order.
func (s *Schema) Names() []string {
	return append([]string(nil), s.names...)
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.names) }

// Has reports whether name is a column of s.
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// New returns an accumulator with every column seeded to zero.
func (s *Schema) New() *Accumulator {
	return &Accumulator{schema: s, values: make([]float64, len(s.names))}
}

func (s *Schema) mustIndex(name string) int {
	i, ok := s.index[name]
	if !ok {
		panic(fmt.Sprintf("features: column %q not in schema", name))
	}
	return i
}

// Accumulator is the mutable register of one extractor's pass.
type Accumulator struct {
	schema *Schema
	values []float64
}

// Add adds delta to name.
func (a *Accumulator) Add(name string, delta float64) {
	a.values[a.schema.mustIndex(name)] += delta
}

// Inc adds one to name.
func (a *Accumulator) Inc(name string) { a.Add(name, 1) }

// Set overwrites name.
func (a *Accumulator) Set(name string, v float64) {
	a.values[a.schema.mustIndex(name)] = v
}

// Get returns the current value of name.
func (a *Accumulator) Get(name string) float64 {
	return a.values[a.schema.mustIndex(name)]
}

// Diff sets diffName to home_stat minus away_stat.
func (a *Accumulator) Diff(diffName, stat string) {
	a.Set(diffName, a.Get(key(model.SideHome, stat))-a.Get(key(model.SideAway, stat)))
}

// Finalize freezes the current values.
func (a *Accumulator) Finalize() Features {
	return Features{schema: a.schema, values: append([]float64(nil), a.values...)}
}

// Features is the immutable output of one extractor.
type Features struct {
	schema *Schema
	values []float64
}

// Len returns the number of columns.
func (f Features) Len() int {
	if f.schema == nil {
		return 0
	}
	return f.schema.Len()
}

// Name returns the i-th column name.
func (f Features) Name(i int) string { return f.schema.names[i] }

// Value returns the i-th column value.
func (f Features) Value(i int) float64 { return f.values[i] }

// Get returns the value of name and whether it exists.
func (f Features) Get(name string) (float64, bool) {
	if f.schema == nil {
		return 0, false
	}
	i, ok := f.schema.index[name]
	if !ok {
		return 0, false
	}
	return f.values[i], true
}

// key builds a team-scoped column name such as "home_hits".
func key(side model.Side, stat string) string {
	return side.String() + "_" + stat
}

// perSide expands stats into home_* columns followed by away_* columns.
func perSide(stats ...string) []string {
	out := make([]string, 0, 2*len(stats))
	for _, side := range model.Sides {
		for _, s := range stats {
			out = append(out, key(side, s))
		}
	}
	return out
}
