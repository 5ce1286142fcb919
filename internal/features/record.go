package features

import "fmt"

// Record is the merged per-game feature row.
type Record struct {
	GameID string
	names  []string
	values map[string]float64
}

// NewRecord builds a record from parallel name/value slices, as read back
// from storage.
func NewRecord(gameID string, names []string, values []float64) (Record, error) {
	if len(names) != len(values) {
		return Record{}, fmt.Errorf("record %s: %d names, %d values", gameID, len(names), len(values))
	}
	r := Record{GameID: gameID, names: make([]string, 0, len(names)), values: make(map[string]float64, len(names))}
	for i, n := range names {
		if _, dup := r.values[n]; dup {
			return Record{}, fmt.Errorf("record %s: duplicate column %q", gameID, n)
		}
		r.names = append(r.names, n)
		r.values[n] = values[i]
	}
	return r, nil
}

// Merge unions extractor outputs in the given order. A column produced by
// more than one extractor must carry the same value in each.
func Merge(gameID string, parts ...Features) (Record, error) {
	r := Record{GameID: gameID, values: make(map[string]float64)}
	for _, f := range parts {
		for i := 0; i < f.Len(); i++ {
			name, v := f.Name(i), f.Value(i)
			if prev, seen := r.values[name]; seen {
				if prev != v {
					return Record{}, fmt.Errorf("merge %s: column %q: %v != %v", gameID, name, prev, v)
				}
				continue
			}
			r.names = append(r.names, name)
			r.values[name] = v
		}
	}
	return r, nil
}

// Names returns a copy of the column names in merge order.
func (r Record) Names() []string {
	return append([]string(nil), r.names...)
}

// Len returns the number of feature columns, excluding game_id.
func (r Record) Len() int { return len(r.names) }

// Get returns the value of name and whether the column exists.
func (r Record) Get(name string) (float64, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Value returns the value of name, or 0 when absent.
func (r Record) Value(name string) float64 {
	return r.values[name]
}

// Values returns the values in column order.
func (r Record) Values() []float64 {
	out := make([]float64, len(r.names))
	for i, n := range r.names {
		out[i] = r.values[n]
	}
	return out
}
