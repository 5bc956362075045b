// Package encoding implements the value-tree encoder (component C): a
// single stateful encoder that drives a pluggable Formatter to render maps,
// lists, and scalars as JSON, CSV, a query string, a debug ("Java-ish")
// form, or indented text, while enforcing nesting depth and
// key-before-value ordering.
package encoding

import (
	"errors"
	"fmt"
	"strconv"

	"prime-fix-engine-go/jsonvalue"
)

// maxDepth is the hard cap on container nesting; the source this module
// generalizes from hard-codes the same limit rather than making it
// unbounded.
const maxDepth = 10

// EncoderError is returned for programmer errors (wrong nesting, a
// non-string map key, depth overflow). It never poisons the Encoder: the
// caller may Rewind and retry, or abandon the buffer.
type EncoderError struct {
	Reason string
}

func (e *EncoderError) Error() string { return e.Reason }

func encErr(format string, args ...any) error {
	return &EncoderError{Reason: fmt.Sprintf(format, args...)}
}

type level struct {
	kind         ContainerKind
	expectingKey bool
	haveKey      bool
	index        int
}

// Encoder drives a Formatter over a caller-supplied buffer. It is not safe
// for concurrent use; the session's single event loop owns one per output
// direction.
type Encoder struct {
	fmt Formatter
	buf []byte
	off int
	pos int

	stack []level

	finishListeners map[int]func(bytesWritten int)
}

// New creates an Encoder for the given Formatter.
func New(f Formatter) *Encoder {
	return &Encoder{fmt: f}
}

// Start resets the encoder to begin writing into buf at off.
func (e *Encoder) Start(buf []byte, off int) {
	e.buf = buf
	e.off = off
	e.pos = off
	e.stack = e.stack[:0]
}

// Rewind discards everything written since Start without reallocating.
func (e *Encoder) Rewind() {
	e.pos = e.off
	e.stack = e.stack[:0]
}

// SetFinishLevelListener installs cb to fire after the value at the given
// depth (0 = root) completes; level is keyed to stack depth at the moment
// the corresponding container was opened.
func (e *Encoder) SetFinishLevelListener(lvl int, cb func(bytesWritten int)) {
	if e.finishListeners == nil {
		e.finishListeners = make(map[int]func(int))
	}
	e.finishListeners[lvl] = cb
}

func (e *Encoder) top() *level {
	if len(e.stack) == 0 {
		return nil
	}
	return &e.stack[len(e.stack)-1]
}

// preValue validates the encoder is in a state that accepts a scalar/
// container value right now (list element, map value — not awaiting a
// map key) and writes any separators the formatter requires. It returns an
// error only when a map key is expected.
func (e *Encoder) preValue() error {
	lv := e.top()
	if lv == nil {
		return nil
	}
	if lv.kind == KindMap {
		if lv.expectingKey {
			return encErr("expected a string map key, got a value")
		}
		// Map value position: the separator was already written before the
		// key, so nothing more precedes the value itself.
		return nil
	}
	e.pos += e.fmt.PreElement(e.buf, e.pos, len(e.stack)-1, lv.index)
	return nil
}

// postValue advances bookkeeping after a scalar/container value has been
// fully written at the current level, then fires any finish-level listener
// registered for the depth the completed value lives at (len(e.stack) at
// this point: 0 for a value completing at the root).
func (e *Encoder) postValue() {
	if lv := e.top(); lv != nil {
		if lv.kind == KindMap {
			lv.expectingKey = true
			lv.haveKey = false
		}
		lv.index++
	}
	if cb, ok := e.finishListeners[len(e.stack)]; ok {
		cb(e.pos - e.off)
	}
}

func (e *Encoder) checkCSVNesting(kind ContainerKind) error {
	if _, ok := e.fmt.(CSVFormatter); !ok {
		return nil
	}
	if len(e.stack) >= 1 {
		return errUnsupportedNesting
	}
	return nil
}

// OpenMap begins a new map at the current position.
func (e *Encoder) OpenMap() error {
	if err := e.openContainer(KindMap); err != nil {
		return err
	}
	return nil
}

// OpenList begins a new list at the current position.
func (e *Encoder) OpenList() error {
	if err := e.openContainer(KindList); err != nil {
		return err
	}
	return nil
}

func (e *Encoder) openContainer(kind ContainerKind) error {
	if err := e.checkCSVNesting(kind); err != nil {
		return err
	}
	if len(e.stack) >= maxDepth {
		return encErr("nesting depth exceeds %d", maxDepth)
	}
	if err := e.preValue(); err != nil {
		return err
	}
	depth := len(e.stack)
	e.pos += e.fmt.OpenContainer(e.buf, e.pos, depth, kind)
	e.stack = append(e.stack, level{kind: kind, expectingKey: kind == KindMap})
	return nil
}

func (e *Encoder) closeContainer(kind ContainerKind) error {
	lv := e.top()
	if lv == nil {
		return encErr("close %v called at depth 0", kind)
	}
	if lv.kind != kind {
		return encErr("mismatched close: expected %v, got %v", lv.kind, kind)
	}
	if kind == KindMap && !lv.expectingKey && lv.haveKey {
		return encErr("map closed while awaiting a value")
	}
	depth := len(e.stack) - 1
	e.pos += e.fmt.CloseContainer(e.buf, e.pos, depth, kind)
	e.stack = e.stack[:depth]

	e.postValue()
	return nil
}

// CloseMap ends the current map.
func (e *Encoder) CloseMap() error { return e.closeContainer(KindMap) }

// CloseList ends the current list.
func (e *Encoder) CloseList() error { return e.closeContainer(KindList) }

// String writes s as a string value, or as a map key if the encoder is
// currently expecting one.
func (e *Encoder) String(s []byte) error {
	lv := e.top()
	isKey := lv != nil && lv.kind == KindMap && lv.expectingKey
	if !isKey {
		if err := e.preValue(); err != nil {
			return err
		}
	} else {
		e.pos += e.fmt.PreElement(e.buf, e.pos, len(e.stack)-1, lv.index)
	}

	e.pos += e.fmt.PreString(e.buf, e.pos, isKey)
	e.pos += e.fmt.WriteStringBody(e.buf, e.pos, s)
	e.pos += e.fmt.PostString(e.buf, e.pos, isKey)

	if isKey {
		e.pos += e.fmt.KeyValueSeparator(e.buf, e.pos)
		lv.expectingKey = false
		lv.haveKey = true
		return nil
	}
	e.postValue()
	return nil
}

// Long writes an integer value.
func (e *Encoder) Long(v int64) error {
	if err := e.preValue(); err != nil {
		return err
	}
	e.pos += e.fmt.WriteLong(e.buf, e.pos, v)
	e.postValue()
	return nil
}

// Double writes a floating-point value with the given min/max trailing
// fraction digits.
func (e *Encoder) Double(v float64, minFrac, maxFrac int) error {
	if err := e.preValue(); err != nil {
		return err
	}
	e.pos += e.fmt.WriteDouble(e.buf, e.pos, v, minFrac, maxFrac)
	e.postValue()
	return nil
}

// Bool writes a boolean value.
func (e *Encoder) Bool(v bool) error {
	if err := e.preValue(); err != nil {
		return err
	}
	e.pos += e.fmt.WriteBool(e.buf, e.pos, v)
	e.postValue()
	return nil
}

// Null writes a null value.
func (e *Encoder) Null() error {
	if err := e.preValue(); err != nil {
		return err
	}
	e.pos += e.fmt.WriteNull(e.buf, e.pos)
	e.postValue()
	return nil
}

// Encodable is implemented by values that know how to render themselves
// against an Encoder without going through Object's type-switch.
type Encodable interface {
	EncodeValue(e *Encoder) error
}

// Object dispatches v to the matching primitive writer: a value
// implementing Encodable renders itself; otherwise the dynamic kind
// (jsonvalue.Value tree, map, slice, bool, integer, float, byte slice,
// string) is inspected and mapped onto the appropriate Encoder method.
// Anything else degrades to its fmt.Sprintf("%v") string rendering.
func (e *Encoder) Object(v any) error {
	if v == nil {
		return e.Null()
	}
	if enc, ok := v.(Encodable); ok {
		return enc.EncodeValue(e)
	}
	switch t := v.(type) {
	case *jsonvalue.Value:
		return EncodeJSONValue(e, t)
	case map[string]any:
		return e.encodeGoMap(t)
	case []any:
		return e.encodeGoList(t)
	case []byte:
		return e.String(t)
	case string:
		return e.String([]byte(t))
	case bool:
		return e.Bool(t)
	case int:
		return e.Long(int64(t))
	case int32:
		return e.Long(int64(t))
	case int64:
		return e.Long(t)
	case float32:
		return e.Double(float64(t), 0, 8)
	case float64:
		return e.Double(t, 0, 8)
	default:
		return e.String([]byte(fmt.Sprintf("%v", t)))
	}
}

func (e *Encoder) encodeGoMap(m map[string]any) error {
	if err := e.OpenMap(); err != nil {
		return err
	}
	for k, v := range m {
		if err := e.String([]byte(k)); err != nil {
			return err
		}
		if err := e.Object(v); err != nil {
			return err
		}
	}
	return e.CloseMap()
}

func (e *Encoder) encodeGoList(l []any) error {
	if err := e.OpenList(); err != nil {
		return err
	}
	for _, v := range l {
		if err := e.Object(v); err != nil {
			return err
		}
	}
	return e.CloseList()
}

// Stop finalizes the encoding. It requires the encoder be back at depth 0
// and returns the number of bytes written since Start.
func (e *Encoder) Stop() (int, error) {
	if len(e.stack) != 0 {
		return 0, encErr("stop called at depth %d, expected 0", len(e.stack))
	}
	return e.pos - e.off, nil
}

// IsMachineReadable reports whether the installed formatter targets a
// parser rather than a human reader.
func (e *Encoder) IsMachineReadable() bool { return e.fmt.IsMachineReadable() }

var errUnsupportedNesting = errors.New("unsupported: nested container")

func (k ContainerKind) String() string {
	if k == KindMap {
		return "map"
	}
	return "list"
}

// EncodeJSONValue walks a jsonvalue.Value tree (the output of the streaming
// JSON parser) through e, realizing the JSON round-trip property: encoding
// a parsed tree and reparsing it yields an identical tree.
func EncodeJSONValue(e *Encoder, v *jsonvalue.Value) error {
	switch v.Kind {
	case jsonvalue.KindNull:
		return e.Null()
	case jsonvalue.KindBool:
		return e.Bool(v.Bool)
	case jsonvalue.KindLong:
		return e.Long(v.Long)
	case jsonvalue.KindDouble:
		return e.Double(v.Double, 0, 17)
	case jsonvalue.KindString:
		return e.String(v.Str)
	case jsonvalue.KindList:
		if err := e.OpenList(); err != nil {
			return err
		}
		for i := 0; i < v.Len(); i++ {
			if err := EncodeJSONValue(e, v.Index(i)); err != nil {
				return err
			}
		}
		return e.CloseList()
	case jsonvalue.KindMap:
		if err := e.OpenMap(); err != nil {
			return err
		}
		for i := 0; i < v.Len(); i++ {
			if err := e.String(v.KeyAt(i)); err != nil {
				return err
			}
			if err := EncodeJSONValue(e, v.ValAt(i)); err != nil {
				return err
			}
		}
		return e.CloseMap()
	default:
		return encErr("unknown jsonvalue.Kind %d", v.Kind)
	}
}

// sizeHint is a convenience used by callers sizing scratch buffers before
// encoding a long/double, mirroring buffer.AsciiSize for longs.
func sizeHint(v int64) int {
	return len(strconv.FormatInt(v, 10))
}
