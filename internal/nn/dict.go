package nn

import "github.com/samber/lo"

// Item is one name/value entry of a Dict.
type Item[V any] struct {
	Name  string
	Value V
}

// Dict is a read-only, name-keyed mapping view.
//
// Implementations decide where the entries live: OrderedDict stores them
// directly, while the native facade's mirrored dicts re-fetch them from a
// native handle on every call. Callers must not assume two calls observe the
// same underlying collection.
type Dict[V any] interface {
	// Len returns the number of entries.
	Len() int

	// Has reports whether an entry with the given name exists.
	Has(name string) bool

	// Get returns the entry with the given name, if present.
	Get(name string) (V, bool)

	// Keys returns all entry names in iteration order.
	Keys() []string

	// Values returns all values in iteration order.
	Values() []V

	// Items returns all entries in iteration order.
	Items() []Item[V]

	// Range calls fn for each entry in iteration order until fn returns false.
	Range(fn func(name string, value V) bool)
}

// OrderedDict is an insertion-ordered mutable Dict.
//
// The zero value is not usable; create instances with NewOrderedDict.
// Re-setting an existing name updates the value and keeps its position.
type OrderedDict[V any] struct {
	keys   []string
	values map[string]V
}

// Compile-time check that OrderedDict satisfies Dict.
var _ Dict[int] = (*OrderedDict[int])(nil)

// NewOrderedDict creates an empty OrderedDict.
func NewOrderedDict[V any]() *OrderedDict[V] {
	return &OrderedDict[V]{values: make(map[string]V)}
}

// Set inserts or updates the entry with the given name.
func (d *OrderedDict[V]) Set(name string, value V) {
	if _, ok := d.values[name]; !ok {
		d.keys = append(d.keys, name)
	}
	d.values[name] = value
}

// Delete removes the entry with the given name, if present.
func (d *OrderedDict[V]) Delete(name string) {
	if _, ok := d.values[name]; !ok {
		return
	}
	delete(d.values, name)
	d.keys = lo.Without(d.keys, name)
}

// Len returns the number of entries.
func (d *OrderedDict[V]) Len() int {
	return len(d.keys)
}

// Has reports whether an entry with the given name exists.
func (d *OrderedDict[V]) Has(name string) bool {
	_, ok := d.values[name]
	return ok
}

// Get returns the entry with the given name, if present.
func (d *OrderedDict[V]) Get(name string) (V, bool) {
	v, ok := d.values[name]
	return v, ok
}

// Keys returns all entry names in insertion order.
func (d *OrderedDict[V]) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)
	return out
}

// Values returns all values in insertion order.
func (d *OrderedDict[V]) Values() []V {
	return lo.Map(d.keys, func(name string, _ int) V {
		return d.values[name]
	})
}

// Items returns all entries in insertion order.
func (d *OrderedDict[V]) Items() []Item[V] {
	return lo.Map(d.keys, func(name string, _ int) Item[V] {
		return Item[V]{Name: name, Value: d.values[name]}
	})
}

// Range calls fn for each entry in insertion order until fn returns false.
func (d *OrderedDict[V]) Range(fn func(name string, value V) bool) {
	for _, name := range d.keys {
		if !fn(name, d.values[name]) {
			return
		}
	}
}
