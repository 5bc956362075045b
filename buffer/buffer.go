// Package buffer provides allocation-light primitives over raw byte slices:
// ASCII integer/decimal rendering and parsing, case-insensitive compare, and
// the compact/index-of helpers the streaming parsers build on.
//
// Every function here operates on a caller-owned []byte at a given
// (offset, length). The integer codecs and the parse/compare helpers do
// not allocate, apart from the >18-significant-digit fallback in
// FastParseAsDouble, which hands off to strconv. PutDecimalASCII formats
// through strconv.FormatFloat and intermediate strings, so it allocates
// on every non-NaN, non-infinite call.
package buffer

import (
	"math"
	"strconv"
	"strings"
)

// AsciiSize returns the number of ASCII bytes PutLongASCII would write for v.
func AsciiSize(v int64) int {
	if v == 0 {
		return 1
	}
	n := 0
	if v < 0 {
		n++
		if v == math.MinInt64 {
			// -9223372036854775808 has 19 digits after the sign.
			return n + 19
		}
		v = -v
	}
	for v > 0 {
		n++
		v /= 10
	}
	return n
}

// PutLongASCII writes the decimal ASCII rendering of v (matching -?[0-9]+)
// into buf starting at off, and returns the number of bytes written.
func PutLongASCII(buf []byte, off int, v int64) int {
	n := AsciiSize(v)
	end := off + n
	neg := v < 0
	if neg {
		buf[off] = '-'
	}
	if v == 0 {
		buf[off] = '0'
		return 1
	}
	// Work with a uint64 magnitude so math.MinInt64 doesn't overflow negation.
	var mag uint64
	if neg {
		mag = uint64(-(v + 1)) + 1
	} else {
		mag = uint64(v)
	}
	i := end
	for mag > 0 {
		i--
		buf[i] = byte('0' + mag%10)
		mag /= 10
	}
	return n
}

// ParseAsLong parses buf[off:off+length] as a signed decimal integer,
// rejecting '.' and letters; a single leading '+' or '-' is allowed.
// Returns def on any malformed input.
func ParseAsLong(buf []byte, off, length int, def int64) int64 {
	if length == 0 {
		return def
	}
	i := 0
	neg := false
	c := buf[off]
	if c == '+' || c == '-' {
		neg = c == '-'
		i++
	}
	if i == length {
		return def
	}
	var v int64
	for ; i < length; i++ {
		c := buf[off+i]
		if c < '0' || c > '9' {
			return def
		}
		v = v*10 + int64(c-'0')
	}
	if neg {
		v = -v
	}
	return v
}

// PutDecimalASCII renders v into buf starting at off, honoring minFrac/maxFrac
// trailing-fraction bounds, and returns the number of bytes written.
//
// Infinities render as "Infinity"/"-Infinity", NaN as "NaN". Values whose
// decimal exponent, at 15 significant digits, is 15 or more or below -4
// (roughly |v| >= 1e15 or |v| < 1e-4, zero excepted) switch to
// "<mantissa>E<exp>" form with exactly one digit before the mantissa's
// decimal point and a capital E; minFrac/maxFrac do not apply to that form. Trailing fractional zeros beyond minFrac are
// elided. A long run of trailing 9s past maxFrac (float noise just under an
// exact boundary, e.g. 21173.999999999996) is truncated rather than rounded
// up, per the regression case in spec.md §4.A.
func PutDecimalASCII(buf []byte, off int, v float64, minFrac, maxFrac int) int {
	switch {
	case math.IsNaN(v):
		return copy(buf[off:], "NaN")
	case math.IsInf(v, 1):
		return copy(buf[off:], "Infinity")
	case math.IsInf(v, -1):
		return copy(buf[off:], "-Infinity")
	}

	neg := math.Signbit(v) && v != 0
	av := math.Abs(v)

	if needsScientific(av) {
		s := scientificForm(av)
		if neg {
			s = "-" + s
		}
		return copy(buf[off:], s)
	}

	intPart, fracPart := splitDecimal(av, maxFrac)
	fracPart = applyFracBounds(fracPart, minFrac, maxFrac)

	s := intPart
	if fracPart != "" {
		s += "." + fracPart
	}
	if neg {
		s = "-" + s
	}
	return copy(buf[off:], s)
}

// needsScientific reports whether strconv's 'g' format at 15 significant
// digits picks exponent form for av (exponent below -4 or at least 15).
func needsScientific(av float64) bool {
	if av == 0 {
		return false
	}
	g := strconv.FormatFloat(av, 'g', 15, 64)
	return strings.ContainsAny(g, "eE")
}

func scientificForm(av float64) string {
	g := strconv.FormatFloat(av, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(g, "e")
	if !strings.Contains(mantissa, ".") {
		mantissa += ".0"
	}
	expVal, _ := strconv.Atoi(exp)
	return mantissa + "E" + strconv.Itoa(expVal)
}

// splitDecimal returns the integer and fractional digit strings for av,
// truncating (never rounding up across a long trailing-9 run) at maxFrac
// fractional digits.
func splitDecimal(av float64, maxFrac int) (string, string) {
	full := strconv.FormatFloat(av, 'f', -1, 64)
	dot := strings.IndexByte(full, '.')
	if dot == -1 {
		return full, ""
	}
	intPart, fracPart := full[:dot], full[dot+1:]
	if len(fracPart) <= maxFrac {
		return intPart, fracPart
	}

	cut := fracPart[:maxFrac]
	rest := fracPart[maxFrac:]
	if isTrailingNoise(cut, rest) {
		trimmed := strings.TrimRight(cut, "9")
		return intPart, trimmed
	}

	rounded := strconv.FormatFloat(av, 'f', maxFrac, 64)
	rdot := strings.IndexByte(rounded, '.')
	if rdot == -1 {
		return rounded, ""
	}
	return rounded[:rdot], rounded[rdot+1:]
}

// isTrailingNoise detects a run of 9s immediately before the truncation
// point that continues through (almost) all of the remaining digits —
// the signature of float64 rounding noise just under a clean value.
func isTrailingNoise(cut, rest string) bool {
	if rest == "" || cut == "" {
		return false
	}
	if cut[len(cut)-1] != '9' {
		return false
	}
	nines := strings.Count(rest, "9")
	return nines >= len(rest)-1
}

// applyFracBounds elides trailing zeros beyond minFrac and pads with zeros
// up to minFrac when the fraction is shorter than required.
func applyFracBounds(frac string, minFrac, maxFrac int) string {
	if len(frac) > maxFrac {
		frac = frac[:maxFrac]
	}
	for len(frac) > minFrac && strings.HasSuffix(frac, "0") {
		frac = frac[:len(frac)-1]
	}
	for len(frac) < minFrac {
		frac += "0"
	}
	return frac
}

// FastParseAsDouble parses buf[off:off+length] as a float64 using a
// two-phase walk (integer part, optional fraction, optional signed
// exponent). Falls back to strconv.ParseFloat when the combined
// integer+fraction digit count exceeds 18 significant digits, per spec.
// Returns def on any non-numeric byte.
func FastParseAsDouble(buf []byte, off, length int, def float64) float64 {
	v, ok := TryParseAsDouble(buf, off, length)
	if !ok {
		return def
	}
	return v
}

// TryParseAsDouble is the checked form of FastParseAsDouble, used by callers
// (the JSON number lexer) that must distinguish "not a number" from any
// legitimate value including zero, infinities, or NaN payloads.
func TryParseAsDouble(buf []byte, off, length int) (float64, bool) {
	if length == 0 {
		return 0, false
	}
	i := 0
	neg := false
	if buf[off] == '+' || buf[off] == '-' {
		neg = buf[off] == '-'
		i++
	}

	var fraction int64
	digitCount := 0
	decimalPos := -1

	for i < length {
		c := buf[off+i]
		switch {
		case c >= '0' && c <= '9':
			fraction = fraction*10 + int64(c-'0')
			digitCount++
			i++
		case c == '.' && decimalPos == -1:
			decimalPos = digitCount
			i++
		case c == 'e' || c == 'E':
			i++
			goto exponent
		default:
			return 0, false
		}
	}
	goto done

exponent:
	{
		negExp := false
		if i < length && (buf[off+i] == '+' || buf[off+i] == '-') {
			negExp = buf[off+i] == '-'
			i++
		}
		if i == length {
			return 0, false
		}
		exp := 0
		for i < length {
			c := buf[off+i]
			if c < '0' || c > '9' {
				return 0, false
			}
			exp = exp*10 + int(c-'0')
			i++
		}
		if negExp {
			exp = -exp
		}
		return reconstructDoubleChecked(neg, fraction, decimalPos, digitCount, exp, buf, off, length)
	}

done:
	return reconstructDoubleChecked(neg, fraction, decimalPos, digitCount, 0, buf, off, length)
}

// reconstructDoubleChecked builds a float64 from the parsed (negative,
// fraction, decimal-point-position, digit-count, exp) tuple, falling back to
// strconv.ParseFloat when more than 18 significant digits were seen. The
// bool result is false only when no digits were seen at all or the
// strconv fallback rejects the span outright.
func reconstructDoubleChecked(neg bool, fraction int64, decimalPos, digitCount, exp int, buf []byte, off, length int) (float64, bool) {
	if digitCount == 0 {
		return 0, false
	}
	if digitCount > 18 {
		s := string(buf[off : off+length])
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}

	fracDigits := 0
	if decimalPos >= 0 {
		fracDigits = digitCount - decimalPos
	}
	v := float64(fraction)
	pow := fracDigits - exp
	switch {
	case pow > 0:
		v /= pow10(pow)
	case pow < 0:
		v *= pow10(-pow)
	}
	if neg {
		v = -v
	}
	return v, true
}

func pow10(n int) float64 {
	if n < 0 {
		return 1 / pow10(-n)
	}
	result := 1.0
	base := 10.0
	for n > 0 {
		if n&1 == 1 {
			result *= base
		}
		base *= base
		n >>= 1
	}
	return result
}

// Compact slides the len bytes starting at from to offset 0 of buf.
func Compact(buf []byte, from, length int) {
	if from == 0 || length == 0 {
		return
	}
	copy(buf[:length], buf[from:from+length])
}

// IndexOf returns the offset (relative to the start of buf, not to off) of
// the first occurrence of pattern within buf[off:off+length], or -1.
func IndexOf(buf []byte, off, length int, pattern []byte) int {
	if len(pattern) == 0 || len(pattern) > length {
		if len(pattern) == 0 {
			return off
		}
		return -1
	}
	end := off + length - len(pattern)
	for i := off; i <= end; i++ {
		if matches(buf, i, pattern) {
			return i
		}
	}
	return -1
}

func matches(buf []byte, at int, pattern []byte) bool {
	for j := range pattern {
		if buf[at+j] != pattern[j] {
			return false
		}
	}
	return true
}

// EqualASCIICaseInsensitive compares two byte slices ignoring ASCII case.
func EqualASCIICaseInsensitive(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if lower(a[i]) != lower(b[i]) {
			return false
		}
	}
	return true
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
