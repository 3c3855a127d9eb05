package value

import (
	"fmt"
	"strconv"
	"strings"
)

// MetaKey names an entry in a Map's optional meta-map, e.g. an operator
// overload or a custom @type.
type MetaKey string

// MetaType is the meta-map key used to overload a Map's reported type
// name (Value.type_as_string in the Rust original checks this key).
const MetaType MetaKey = "@type"

// mapEntry is a node in a Map's insertion-order doubly-linked list.
//
// This adapts starlark's hashtable (starlark/hashtable.go), which keeps an
// insertion-order linked list threaded through open-addressed buckets.
// Koto runs single-threaded with no preemption to guard against mid-insert
// interleaving, so the bucket machinery is dropped in favor of a native Go
// map for O(1) lookup, while the insertion-order linked list is kept
// verbatim as the idiom for iterating a Map in the order keys were added.
type mapEntry struct {
	key        Value
	value      Value
	prev, next *mapEntry
}

// Map is Koto's insertion-ordered mapping from ImmutableValue to Value,
// with an optional meta-map carrying operator overloads and other
// metadata.
type Map struct {
	entries map[string]*mapEntry
	head    *mapEntry
	tail    *mapEntry
	meta    *Map
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{entries: map[string]*mapEntry{}} }

func (*Map) Type() string      { return "Map" }
func (*Map) IsImmutable() bool { return false }

func (m *Map) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	first := true
	for e := m.head; e != nil; e = e.next {
		if !first {
			sb.WriteString(", ")
		}
		first = false
		sb.WriteString(e.key.String())
		sb.WriteString(": ")
		sb.WriteString(e.value.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// KeyError describes an attempt to use a non-immutable value (a List,
// Tuple, Map, Function, or Iterator) as a map key.
type KeyError struct {
	Kind string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("only immutable values can be used as map keys (found '%s')", e.Kind)
}

// encodeKey returns a canonical, collision-free string encoding of an
// immutable value, suitable as a native Go map key. It returns a *KeyError
// if v is not immutable.
func encodeKey(v Value) (string, error) {
	switch t := v.(type) {
	case Null:
		return "n", nil
	case Bool:
		if t {
			return "b1", nil
		}
		return "b0", nil
	case Number:
		if t.IsFloat() {
			return "f" + strconv.FormatFloat(t.AsF64(), 'g', -1, 64), nil
		}
		return "i" + strconv.FormatInt(t.AsI64(), 10), nil
	case Num2:
		return fmt.Sprintf("2:%v:%v", t[0], t[1]), nil
	case Num4:
		return fmt.Sprintf("4:%v:%v:%v:%v", t[0], t[1], t[2], t[3]), nil
	case Range:
		return fmt.Sprintf("r:%d:%d", t.Start, t.End), nil
	case Str:
		return "s" + t.Go(), nil
	default:
		return "", &KeyError{Kind: v.Type()}
	}
}

// Insert adds or overwrites the entry for key, preserving the original
// insertion position of an existing key (matching Go map / starlark
// hashtable update-in-place semantics).
func (m *Map) Insert(key, val Value) error {
	enc, err := encodeKey(key)
	if err != nil {
		return err
	}
	if e, ok := m.entries[enc]; ok {
		e.value = val
		return nil
	}
	e := &mapEntry{key: key, value: val}
	m.entries[enc] = e
	if m.tail == nil {
		m.head = e
		m.tail = e
	} else {
		m.tail.next = e
		e.prev = m.tail
		m.tail = e
	}
	return nil
}

// Get returns the value associated with key, and whether it was present.
func (m *Map) Get(key Value) (Value, bool) {
	enc, err := encodeKey(key)
	if err != nil {
		return nil, false
	}
	e, ok := m.entries[enc]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Delete removes the entry for key, if present.
func (m *Map) Delete(key Value) {
	enc, err := encodeKey(key)
	if err != nil {
		return
	}
	e, ok := m.entries[enc]
	if !ok {
		return
	}
	delete(m.entries, enc)
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		m.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		m.tail = e.prev
	}
}

// Each calls f for every entry in insertion order, stopping early if f
// returns false.
func (m *Map) Each(f func(key, value Value) bool) {
	for e := m.head; e != nil; e = e.next {
		if !f(e.key, e.value) {
			return
		}
	}
}

// Keys returns the map's keys in insertion order.
func (m *Map) Keys() []Value {
	result := make([]Value, 0, m.Len())
	m.Each(func(k, _ Value) bool {
		result = append(result, k)
		return true
	})
	return result
}

// MetaMap returns the map's meta-map, or nil if it has none.
func (m *Map) MetaMap() *Map { return m.meta }

// SetMetaMap replaces the map's meta-map.
func (m *Map) SetMetaMap(meta *Map) { m.meta = meta }

// MetaValue looks up a key in the meta-map, returning ok=false if there is
// no meta-map or the key isn't present.
func (m *Map) MetaValue(key MetaKey) (Value, bool) {
	if m.meta == nil {
		return nil, false
	}
	return m.meta.Get(Str{s: string(key)})
}
