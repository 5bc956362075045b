// Package jsonvalue defines the tagged Value tree produced by the JSON
// streaming parser (component D's output) and the pool that owns every
// node in it (component B, specialized to this one node type rather than
// one free list per Java-style subtype — see DESIGN.md).
package jsonvalue

import (
	"bytes"

	"prime-fix-engine-go/pool"
)

// Kind discriminates the sum type a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindLong
	KindDouble
	KindString
	KindList
	KindMap
)

// Value is a single node in the tree produced by the JSON parser. Every
// contained List/Map/String value has exactly one parent except the root;
// String values borrow their bytes from the caller's source buffer and must
// not be read once that buffer is reused.
type Value struct {
	Kind   Kind
	Bool   bool
	Long   int64
	Double float64
	Str    []byte

	List []*Value
	Keys [][]byte
	Vals []*Value

	parent *Value
	owner  *Pool
}

// Reset restores a Value to its zero state for reuse by the pool. It does
// NOT recursively release children — that is Pool.Release's job, since
// Reset alone doesn't know whether children are still referenced elsewhere.
func (v *Value) Reset() {
	v.Kind = KindNull
	v.Bool = false
	v.Long = 0
	v.Double = 0
	v.Str = nil
	v.List = v.List[:0]
	v.Keys = v.Keys[:0]
	v.Vals = v.Vals[:0]
	v.parent = nil
}

// Parent returns the containing Map/List Value, or nil at the root.
func (v *Value) Parent() *Value { return v.parent }

// IsNull reports whether this Value holds JSON null.
func (v *Value) IsNull() bool { return v.Kind == KindNull }

// Len returns the number of elements for List/Map kinds, 0 otherwise.
func (v *Value) Len() int {
	switch v.Kind {
	case KindList:
		return len(v.List)
	case KindMap:
		return len(v.Keys)
	default:
		return 0
	}
}

// Index returns the i'th element of a List Value.
func (v *Value) Index(i int) *Value {
	if v.Kind != KindList || i < 0 || i >= len(v.List) {
		return nil
	}
	return v.List[i]
}

// Get returns the Map entry for key, or nil if absent or not a Map.
func (v *Value) Get(key string) *Value {
	if v.Kind != KindMap {
		return nil
	}
	kb := []byte(key)
	for i, k := range v.Keys {
		if bytes.Equal(k, kb) {
			return v.Vals[i]
		}
	}
	return nil
}

// KeyAt and ValAt expose the i'th map entry for iteration in insertion order.
func (v *Value) KeyAt(i int) []byte { return v.Keys[i] }
func (v *Value) ValAt(i int) *Value { return v.Vals[i] }

// appendListElement links child as the next element of this List Value.
func (v *Value) appendListElement(child *Value) {
	v.List = append(v.List, child)
	child.parent = v
}

// putMapEntry links child under key in this Map Value. Returns false if key
// already exists (duplicate key, a parse error per spec.md §4.D).
func (v *Value) putMapEntry(key []byte, child *Value) bool {
	for _, k := range v.Keys {
		if bytes.Equal(k, key) {
			return false
		}
	}
	v.Keys = append(v.Keys, key)
	v.Vals = append(v.Vals, child)
	child.parent = v
	return true
}

// Pool owns every Value produced during parsing. Borrow hands out a reset
// node; Release returns a node and, transitively, every child it owns, back
// to the free list.
type Pool struct {
	values *pool.Pool[*Value]
}

// NewPool creates a Value pool with the given bound (0 = unbounded).
func NewPool(capacity int) *Pool {
	p := &Pool{}
	p.values = pool.New(func() *Value { return &Value{} }, capacity)
	return p
}

// Borrow returns a fresh or recycled, zeroed Value owned by this pool.
func (p *Pool) Borrow() *Value {
	v := p.values.Borrow()
	v.owner = p
	return v
}

// Release returns v, and transitively every List/Map child it owns, to the
// pool. The root's parent link does not matter; Release does not touch it.
func (p *Pool) Release(v *Value) {
	if v == nil {
		return
	}
	switch v.Kind {
	case KindList:
		for _, c := range v.List {
			p.Release(c)
		}
	case KindMap:
		for _, c := range v.Vals {
			p.Release(c)
		}
	}
	p.values.Return(v)
}

// NewList borrows an empty List Value from the pool.
func (p *Pool) NewList() *Value {
	v := p.Borrow()
	v.Kind = KindList
	return v
}

// NewMap borrows an empty Map Value from the pool.
func (p *Pool) NewMap() *Value {
	v := p.Borrow()
	v.Kind = KindMap
	return v
}

// AppendListElement links child as the next element of a List Value.
func (p *Pool) AppendListElement(list, child *Value) {
	list.appendListElement(child)
}

// PutMapEntry links child under key in a Map Value; false means duplicate key.
func (p *Pool) PutMapEntry(m *Value, key []byte, child *Value) bool {
	return m.putMapEntry(key, child)
}
