package native

import (
	"fmt"

	"github.com/forge-ml/forge/internal/nn"
)

// mirroredDict is an nn.Dict view over one structural collection of a native
// handle. Every operation re-fetches the live collection, so native-side
// changes between two calls are always observed. Caching the fetched
// collection here would reintroduce exactly the staleness this type exists
// to prevent.
type mirroredDict[V any] struct {
	name  string // collection name, for invariant panics
	fetch func() *nn.OrderedDict[V]
}

var _ nn.Dict[int] = mirroredDict[int]{}

func newMirroredDict[V any](name string, fetch func() *nn.OrderedDict[V]) mirroredDict[V] {
	return mirroredDict[V]{name: name, fetch: fetch}
}

// live fetches the current collection. A nil collection means the handle
// violates the Handle contract; that is a programmer error, not a runtime
// condition.
func (d mirroredDict[V]) live() *nn.OrderedDict[V] {
	od := d.fetch()
	if od == nil {
		panic(fmt.Sprintf("native: handle returned nil %s collection", d.name))
	}
	return od
}

func (d mirroredDict[V]) Len() int { return d.live().Len() }

func (d mirroredDict[V]) Has(name string) bool { return d.live().Has(name) }

func (d mirroredDict[V]) Get(name string) (V, bool) { return d.live().Get(name) }

func (d mirroredDict[V]) Keys() []string { return d.live().Keys() }

func (d mirroredDict[V]) Values() []V { return d.live().Values() }

func (d mirroredDict[V]) Items() []nn.Item[V] { return d.live().Items() }

func (d mirroredDict[V]) Range(fn func(name string, value V) bool) { d.live().Range(fn) }
