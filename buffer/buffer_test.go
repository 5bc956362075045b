package buffer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPutLongASCII(t *testing.T) {
	cases := []struct {
		v    int64
		want string
	}{
		{0, "0"},
		{123, "123"},
		{-123, "-123"},
		{9223372036854775807, "9223372036854775807"},
		{-9223372036854775808, "-9223372036854775808"},
	}
	for _, c := range cases {
		buf := make([]byte, 32)
		n := PutLongASCII(buf, 0, c.v)
		require.Equal(t, c.want, string(buf[:n]))
		require.Equal(t, len(c.want), AsciiSize(c.v))
	}
}

func TestParseAsLong(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"123", 123},
		{"-123", -123},
		{"+123", 123},
		{"0", 0},
	}
	for _, c := range cases {
		got := ParseAsLong([]byte(c.in), 0, len(c.in), -1)
		require.Equal(t, c.want, got)
	}

	require.Equal(t, int64(-1), ParseAsLong([]byte("12.3"), 0, 4, -1))
	require.Equal(t, int64(-1), ParseAsLong([]byte("abc"), 0, 3, -1))
	require.Equal(t, int64(-1), ParseAsLong([]byte("-"), 0, 1, -1))
}

func TestPutDecimalASCII(t *testing.T) {
	cases := []struct {
		v                float64
		minFrac, maxFrac int
		want             string
	}{
		{1.5, 0, 8, "1.5"},
		{1.0, 0, 8, "1"},
		{1.0, 2, 8, "1.00"},
		{-1.5, 0, 8, "-1.5"},
	}
	for _, c := range cases {
		buf := make([]byte, 64)
		n := PutDecimalASCII(buf, 0, c.v, c.minFrac, c.maxFrac)
		require.Equal(t, c.want, string(buf[:n]))
	}

	buf := make([]byte, 64)
	n := PutDecimalASCII(buf, 0, 21173.999999999996, 0, 8)
	require.Equal(t, "21173", string(buf[:n]))

	buf = make([]byte, 64)
	n = PutDecimalASCII(buf, 0, posInf(), 0, 8)
	require.Equal(t, "Infinity", string(buf[:n]))

	buf = make([]byte, 64)
	n = PutDecimalASCII(buf, 0, negInf(), 0, 8)
	require.Equal(t, "-Infinity", string(buf[:n]))

	buf = make([]byte, 64)
	n = PutDecimalASCII(buf, 0, nan(), 0, 8)
	require.Equal(t, "NaN", string(buf[:n]))
}

func TestFastParseAsDouble(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"123", 123},
		{"123.456", 123.456},
		{"-123.456", -123.456},
		{"1e10", 1e10},
		{"1.5e-3", 1.5e-3},
		{"-1.5E+3", -1.5e3},
	}
	for _, c := range cases {
		got := FastParseAsDouble([]byte(c.in), 0, len(c.in), -999)
		require.InDelta(t, c.want, got, 1e-9)
	}
	require.Equal(t, -999.0, FastParseAsDouble([]byte("abc"), 0, 3, -999))
}

func TestCompactAndIndexOf(t *testing.T) {
	buf := []byte("xxxhello")
	Compact(buf, 3, 5)
	require.Equal(t, "hellollo", string(buf))

	buf2 := []byte("foo=bar baz=qux")
	idx := IndexOf(buf2, 0, len(buf2), []byte("baz="))
	require.Equal(t, 8, idx)
	require.Equal(t, -1, IndexOf(buf2, 0, len(buf2), []byte("nope")))
}

func posInf() float64 { return 1e308 * 10 }
func negInf() float64 { return -1e308 * 10 }
func nan() float64    { z := 0.0; return z / z }
