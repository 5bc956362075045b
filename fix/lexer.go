package fix

// FieldCallback is invoked once per tag=value field found by Lex, in
// on-wire order. Returning false aborts the scan (Lex then returns -1).
type FieldCallback func(tag Tag, buf []byte, valueOff, valueLen int) bool

// Lex scans buf[off:off+length] for a single FIX frame: a run of
// "tag=value\x01" fields terminated by the "10=DDD\x01" checksum trailer.
//
//   - returns the number of bytes consumed (> 0) once the Checksum field
//     (tag 10) has been seen and the end callback accepts it;
//   - returns 0 if the bytes form a valid prefix but no complete frame was
//     found (more data needed);
//   - returns -1 on any malformed byte (empty tag, non-digit in the tag) or
//     if onField/end rejects a field.
func Lex(buf []byte, off, length int, onField FieldCallback, end func(nextOff int) bool) int {
	end_ := off + length
	pos := off

	for pos < end_ {
		tagVal := 0
		digits := 0
		for pos < end_ && buf[pos] != '=' {
			c := buf[pos]
			if c < '0' || c > '9' {
				return -1
			}
			tagVal = tagVal*10 + int(c-'0')
			digits++
			pos++
		}
		if pos >= end_ {
			// Ran off the end mid-tag: incomplete frame.
			return 0
		}
		if digits == 0 {
			return -1
		}
		pos++ // consume '='

		valueOff := pos
		for pos < end_ && buf[pos] != SOH {
			pos++
		}
		if pos >= end_ {
			// Value not yet terminated by SOH: incomplete frame.
			return 0
		}
		valueLen := pos - valueOff
		pos++ // consume SOH

		tag := Tag(tagVal)
		if !onField(tag, buf, valueOff, valueLen) {
			return -1
		}

		if tag == TagCheckSum {
			if !end(pos) {
				return -1
			}
			return pos - off
		}
	}
	return 0
}
