package encoding

import (
	"prime-fix-engine-go/buffer"
)

// ContainerKind distinguishes a map level from a list level in the encoder's
// depth stack.
type ContainerKind int

const (
	KindMap ContainerKind = iota
	KindList
)

// Formatter is the pluggable lexical-decision trait the Encoder drives.
// Every method writes into buf starting at off and returns the number of
// bytes written; formatters never allocate the output themselves.
type Formatter interface {
	OpenContainer(buf []byte, off, depth int, kind ContainerKind) int
	CloseContainer(buf []byte, off, depth int, kind ContainerKind) int

	// PreElement is called before writing the index'th element (0-based) of
	// a container at the given depth; it writes a leading separator (e.g.
	// ",") for every element but the first.
	PreElement(buf []byte, off, depth, index int) int

	// KeyValueSeparator is called between a map key and its value.
	KeyValueSeparator(buf []byte, off int) int

	PreString(buf []byte, off int, isKey bool) int
	PostString(buf []byte, off int, isKey bool) int
	WriteStringBody(buf []byte, off int, s []byte) int

	WriteLong(buf []byte, off int, v int64) int
	WriteDouble(buf []byte, off int, v float64, minFrac, maxFrac int) int
	WriteBool(buf []byte, off int, v bool) int
	WriteNull(buf []byte, off int) int

	// IsMachineReadable reports whether this formatter targets a parser
	// (true: JSON) rather than a human (false: debug/text).
	IsMachineReadable() bool
}

func writeBytes(buf []byte, off int, s string) int {
	return copy(buf[off:], s)
}

// --- JSON -------------------------------------------------------------

// JSONFormatter renders standard RFC 8259 JSON. Strings are always quoted
// and minimally escaped (", \, and control characters).
type JSONFormatter struct{}

func (JSONFormatter) OpenContainer(buf []byte, off, depth int, kind ContainerKind) int {
	if kind == KindMap {
		return writeBytes(buf, off, "{")
	}
	return writeBytes(buf, off, "[")
}

func (JSONFormatter) CloseContainer(buf []byte, off, depth int, kind ContainerKind) int {
	if kind == KindMap {
		return writeBytes(buf, off, "}")
	}
	return writeBytes(buf, off, "]")
}

func (JSONFormatter) PreElement(buf []byte, off, depth, index int) int {
	if index == 0 {
		return 0
	}
	return writeBytes(buf, off, ",")
}

func (JSONFormatter) KeyValueSeparator(buf []byte, off int) int {
	return writeBytes(buf, off, ":")
}

func (JSONFormatter) PreString(buf []byte, off int, isKey bool) int {
	return writeBytes(buf, off, "\"")
}

func (JSONFormatter) PostString(buf []byte, off int, isKey bool) int {
	return writeBytes(buf, off, "\"")
}

func (JSONFormatter) WriteStringBody(buf []byte, off int, s []byte) int {
	n := 0
	for _, c := range s {
		switch c {
		case '"':
			n += writeBytes(buf, off+n, "\\\"")
		case '\\':
			n += writeBytes(buf, off+n, "\\\\")
		case '\n':
			n += writeBytes(buf, off+n, "\\n")
		case '\r':
			n += writeBytes(buf, off+n, "\\r")
		case '\t':
			n += writeBytes(buf, off+n, "\\t")
		default:
			if c < 0x20 {
				n += writeBytes(buf, off+n, "\\u00")
				buf[off+n] = hexDigit(c >> 4)
				buf[off+n+1] = hexDigit(c & 0xf)
				n += 2
			} else {
				buf[off+n] = c
				n++
			}
		}
	}
	return n
}

func hexDigit(v byte) byte {
	if v < 10 {
		return '0' + v
	}
	return 'a' + (v - 10)
}

func (JSONFormatter) WriteLong(buf []byte, off int, v int64) int {
	return buffer.PutLongASCII(buf, off, v)
}

func (JSONFormatter) WriteDouble(buf []byte, off int, v float64, minFrac, maxFrac int) int {
	return buffer.PutDecimalASCII(buf, off, v, minFrac, maxFrac)
}

func (JSONFormatter) WriteBool(buf []byte, off int, v bool) int {
	if v {
		return writeBytes(buf, off, "true")
	}
	return writeBytes(buf, off, "false")
}

func (JSONFormatter) WriteNull(buf []byte, off int) int {
	return writeBytes(buf, off, "null")
}

func (JSONFormatter) IsMachineReadable() bool { return true }

// --- CSV ----------------------------------------------------------------

// CSVFormatter supports a single outer list whose elements are written
// comma-separated and terminated by "\n". Nested containers are rejected by
// the Encoder before reaching this formatter (see errUnsupportedNesting).
type CSVFormatter struct{}

func (CSVFormatter) OpenContainer(buf []byte, off, depth int, kind ContainerKind) int {
	return 0
}

func (CSVFormatter) CloseContainer(buf []byte, off, depth int, kind ContainerKind) int {
	if depth == 0 {
		return writeBytes(buf, off, "\n")
	}
	return 0
}

func (CSVFormatter) PreElement(buf []byte, off, depth, index int) int {
	if index == 0 {
		return 0
	}
	return writeBytes(buf, off, ",")
}

func (CSVFormatter) KeyValueSeparator(buf []byte, off int) int { return 0 }

func (CSVFormatter) PreString(buf []byte, off int, isKey bool) int  { return 0 }
func (CSVFormatter) PostString(buf []byte, off int, isKey bool) int { return 0 }

func (CSVFormatter) WriteStringBody(buf []byte, off int, s []byte) int {
	return copy(buf[off:], s)
}

func (CSVFormatter) WriteLong(buf []byte, off int, v int64) int {
	return buffer.PutLongASCII(buf, off, v)
}

func (CSVFormatter) WriteDouble(buf []byte, off int, v float64, minFrac, maxFrac int) int {
	return buffer.PutDecimalASCII(buf, off, v, minFrac, maxFrac)
}

func (CSVFormatter) WriteBool(buf []byte, off int, v bool) int {
	if v {
		return writeBytes(buf, off, "true")
	}
	return writeBytes(buf, off, "false")
}

func (CSVFormatter) WriteNull(buf []byte, off int) int { return 0 }

func (CSVFormatter) IsMachineReadable() bool { return true }

// --- Query string ---------------------------------------------------------

// QueryStringFormatter joins an outer list's elements with "&", the way a
// URL-encoded query string's fragments would be (no key=value nesting is
// supported here; that belongs to a map-shaped value, handled the same as
// any other container by the Encoder's key/value machinery).
type QueryStringFormatter struct{}

func (QueryStringFormatter) OpenContainer(buf []byte, off, depth int, kind ContainerKind) int {
	return 0
}

func (QueryStringFormatter) CloseContainer(buf []byte, off, depth int, kind ContainerKind) int {
	return 0
}

func (QueryStringFormatter) PreElement(buf []byte, off, depth, index int) int {
	if index == 0 {
		return 0
	}
	return writeBytes(buf, off, "&")
}

func (QueryStringFormatter) KeyValueSeparator(buf []byte, off int) int {
	return writeBytes(buf, off, "=")
}

func (QueryStringFormatter) PreString(buf []byte, off int, isKey bool) int  { return 0 }
func (QueryStringFormatter) PostString(buf []byte, off int, isKey bool) int { return 0 }

func (QueryStringFormatter) WriteStringBody(buf []byte, off int, s []byte) int {
	return copy(buf[off:], s)
}

func (QueryStringFormatter) WriteLong(buf []byte, off int, v int64) int {
	return buffer.PutLongASCII(buf, off, v)
}

func (QueryStringFormatter) WriteDouble(buf []byte, off int, v float64, minFrac, maxFrac int) int {
	return buffer.PutDecimalASCII(buf, off, v, minFrac, maxFrac)
}

func (QueryStringFormatter) WriteBool(buf []byte, off int, v bool) int {
	if v {
		return writeBytes(buf, off, "true")
	}
	return writeBytes(buf, off, "false")
}

func (QueryStringFormatter) WriteNull(buf []byte, off int) int { return 0 }

func (QueryStringFormatter) IsMachineReadable() bool { return true }

// --- Debug ("Java-ish") ---------------------------------------------------

// DebugFormatter renders maps as "{k=v, ...}", lists as "[v, ...]", and
// strings as 'v' except at key position (bare).
type DebugFormatter struct{}

func (DebugFormatter) OpenContainer(buf []byte, off, depth int, kind ContainerKind) int {
	if kind == KindMap {
		return writeBytes(buf, off, "{")
	}
	return writeBytes(buf, off, "[")
}

func (DebugFormatter) CloseContainer(buf []byte, off, depth int, kind ContainerKind) int {
	if kind == KindMap {
		return writeBytes(buf, off, "}")
	}
	return writeBytes(buf, off, "]")
}

func (DebugFormatter) PreElement(buf []byte, off, depth, index int) int {
	if index == 0 {
		return 0
	}
	return writeBytes(buf, off, ", ")
}

func (DebugFormatter) KeyValueSeparator(buf []byte, off int) int {
	return writeBytes(buf, off, "=")
}

func (DebugFormatter) PreString(buf []byte, off int, isKey bool) int {
	if isKey {
		return 0
	}
	return writeBytes(buf, off, "'")
}

func (DebugFormatter) PostString(buf []byte, off int, isKey bool) int {
	if isKey {
		return 0
	}
	return writeBytes(buf, off, "'")
}

func (DebugFormatter) WriteStringBody(buf []byte, off int, s []byte) int {
	return copy(buf[off:], s)
}

func (DebugFormatter) WriteLong(buf []byte, off int, v int64) int {
	return buffer.PutLongASCII(buf, off, v)
}

func (DebugFormatter) WriteDouble(buf []byte, off int, v float64, minFrac, maxFrac int) int {
	return buffer.PutDecimalASCII(buf, off, v, minFrac, maxFrac)
}

func (DebugFormatter) WriteBool(buf []byte, off int, v bool) int {
	if v {
		return writeBytes(buf, off, "true")
	}
	return writeBytes(buf, off, "false")
}

func (DebugFormatter) WriteNull(buf []byte, off int) int {
	return writeBytes(buf, off, "null")
}

func (DebugFormatter) IsMachineReadable() bool { return false }

// --- Text (indented) -------------------------------------------------

// TextFormatter renders an indented, newline-separated tree for logging.
type TextFormatter struct{}

func indent(buf []byte, off, depth int) int {
	n := 0
	for i := 0; i < depth; i++ {
		n += writeBytes(buf, off+n, "  ")
	}
	return n
}

func (TextFormatter) OpenContainer(buf []byte, off, depth int, kind ContainerKind) int {
	return writeBytes(buf, off, "\n")
}

func (TextFormatter) CloseContainer(buf []byte, off, depth int, kind ContainerKind) int {
	return 0
}

func (TextFormatter) PreElement(buf []byte, off, depth, index int) int {
	return indent(buf, off, depth+1)
}

func (TextFormatter) KeyValueSeparator(buf []byte, off int) int {
	return writeBytes(buf, off, ": ")
}

func (TextFormatter) PreString(buf []byte, off int, isKey bool) int  { return 0 }
func (TextFormatter) PostString(buf []byte, off int, isKey bool) int { return writeBytes(buf, off, "\n") }

func (TextFormatter) WriteStringBody(buf []byte, off int, s []byte) int {
	return copy(buf[off:], s)
}

func (TextFormatter) WriteLong(buf []byte, off int, v int64) int {
	n := buffer.PutLongASCII(buf, off, v)
	n += writeBytes(buf, off+n, "\n")
	return n
}

func (TextFormatter) WriteDouble(buf []byte, off int, v float64, minFrac, maxFrac int) int {
	n := buffer.PutDecimalASCII(buf, off, v, minFrac, maxFrac)
	n += writeBytes(buf, off+n, "\n")
	return n
}

func (TextFormatter) WriteBool(buf []byte, off int, v bool) int {
	var n int
	if v {
		n = writeBytes(buf, off, "true")
	} else {
		n = writeBytes(buf, off, "false")
	}
	n += writeBytes(buf, off+n, "\n")
	return n
}

func (TextFormatter) WriteNull(buf []byte, off int) int {
	n := writeBytes(buf, off, "null")
	n += writeBytes(buf, off+n, "\n")
	return n
}

func (TextFormatter) IsMachineReadable() bool { return false }
