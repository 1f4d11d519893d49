package safe_map

import (
	"encoding/json"

	"github.com/tidwall/btree"
)

// Map keeps its values sorted by key. Storage entries are keyed by their
// hex encoded storage key, so iteration follows the chain's key order.
type Map[V any] struct {
	*btree.Map[string, V]
}

func New[V any]() *Map[V] {
	return &Map[V]{
		Map: btree.NewMap[string, V](0),
	}
}

func (m *Map[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns all keys in sorted order.
func (m *Map[V]) Keys() []string {
	keys := make([]string, 0, m.Len())
	m.Scan(func(key string, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values returns all values in key-sorted order.
func (m *Map[V]) Values() []V {
	values := make([]V, 0, m.Len())
	m.Scan(func(_ string, value V) bool {
		values = append(values, value)
		return true
	})
	return values
}

func (m *Map[V]) Clone() *Map[V] {
	clone := New[V]()
	m.Scan(func(key string, value V) bool {
		clone.Set(key, value)
		return true
	})
	return clone
}

func (m *Map[V]) MarshalJSON() ([]byte, error) {
	obj := make(map[string]V, m.Len())
	m.Scan(func(key string, value V) bool {
		obj[key] = value
		return true
	})
	return json.Marshal(obj)
}
