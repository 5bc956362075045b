package jsonparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"prime-fix-engine-go/jsonvalue"
)

func newParser() (*Parser, *jsonvalue.Pool) {
	pool := jsonvalue.NewPool(0)
	return New(pool), pool
}

// S1 — JSON mixed map.
func TestParseMixedMap(t *testing.T) {
	p, _ := newParser()
	input := []byte(`{"a":123,"b":"abc","c":true,"d":null,"e":false,"f":456.789}`)

	res := p.Parse(input, 0, len(input))
	require.Equal(t, len(input), res.LengthParsed)
	require.Equal(t, 59, res.LengthParsed)
	require.Empty(t, res.ErrorReason)

	root := res.Root
	require.Equal(t, jsonvalue.KindMap, root.Kind)
	require.Equal(t, 6, root.Len())

	a := root.Get("a")
	require.Equal(t, jsonvalue.KindLong, a.Kind)
	require.EqualValues(t, 123, a.Long)

	b := root.Get("b")
	require.Equal(t, jsonvalue.KindString, b.Kind)
	require.Equal(t, "abc", string(b.Str))

	c := root.Get("c")
	require.Equal(t, jsonvalue.KindBool, c.Kind)
	require.True(t, c.Bool)

	d := root.Get("d")
	require.True(t, d.IsNull())

	e := root.Get("e")
	require.Equal(t, jsonvalue.KindBool, e.Kind)
	require.False(t, e.Bool)

	f := root.Get("f")
	require.Equal(t, jsonvalue.KindDouble, f.Kind)
	require.InDelta(t, 456.789, f.Double, 1e-9)
}

// S2 — JSON truncated.
func TestParseTruncated(t *testing.T) {
	p, _ := newParser()
	input := []byte(`{"foo":"bar","soo`)

	res := p.Parse(input, 0, len(input))
	require.Equal(t, 0, res.LengthParsed)
	require.Empty(t, res.ErrorReason)
}

// S3 — JSON error.
func TestParseTwoDecimalPoints(t *testing.T) {
	p, _ := newParser()
	input := []byte(`[123.456.789]`)

	res := p.Parse(input, 0, len(input))
	require.Equal(t, -1, res.LengthParsed)
	require.Equal(t, "two decimal points in number", res.ErrorReason)
	require.Equal(t, 8, res.ErrorIndex)
}

func TestParseIncrementalCompleteness(t *testing.T) {
	p, _ := newParser()
	full := []byte(`{"x":1,"y":[1,2,3]}`)

	for split := 1; split < len(full); split++ {
		prefix := full[:split]
		res := p.Parse(prefix, 0, len(prefix))
		require.Equalf(t, 0, res.LengthParsed, "split at %d should be incomplete", split)
	}

	res := p.Parse(full, 0, len(full))
	require.Equal(t, len(full), res.LengthParsed)
}

func TestParseTrailingBytes(t *testing.T) {
	p, _ := newParser()
	value := []byte(`{"x":1}`)
	withTrailing := append(append([]byte{}, value...), "garbage after"...)

	res := p.Parse(withTrailing, 0, len(withTrailing))
	require.Equal(t, len(value), res.LengthParsed)
	require.Equal(t, jsonvalue.KindMap, res.Root.Kind)
}

func TestParseDuplicateKey(t *testing.T) {
	p, _ := newParser()
	input := []byte(`{"a":1,"a":2}`)

	res := p.Parse(input, 0, len(input))
	require.Equal(t, -1, res.LengthParsed)
	require.Equal(t, "duplicate key", res.ErrorReason)
}

func TestParseNestedListsAndMaps(t *testing.T) {
	p, _ := newParser()
	input := []byte(`{"list":[1,2,{"nested":true}],"empty":[]}`)

	res := p.Parse(input, 0, len(input))
	require.Equal(t, len(input), res.LengthParsed)

	list := res.Root.Get("list")
	require.Equal(t, jsonvalue.KindList, list.Kind)
	require.Equal(t, 3, list.Len())
	require.True(t, list.Index(2).Get("nested").Bool)

	empty := res.Root.Get("empty")
	require.Equal(t, jsonvalue.KindList, empty.Kind)
	require.Equal(t, 0, empty.Len())
}

func TestParseIllegalCharacter(t *testing.T) {
	p, _ := newParser()
	input := []byte(`{"a": xyz}`)

	res := p.Parse(input, 0, len(input))
	require.Equal(t, -1, res.LengthParsed)
	require.NotEmpty(t, res.ErrorReason)
}

func TestParseReusesPoolAcrossCalls(t *testing.T) {
	p, _ := newParser()
	first := []byte(`{"a":1}`)
	second := []byte(`{"b":2}`)

	r1 := p.Parse(first, 0, len(first))
	require.Equal(t, len(first), r1.LengthParsed)

	r2 := p.Parse(second, 0, len(second))
	require.Equal(t, len(second), r2.LengthParsed)
	require.Equal(t, jsonvalue.KindLong, r2.Root.Get("b").Kind)
}
