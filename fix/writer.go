package fix

import (
	"prime-fix-engine-go/buffer"
)

// smallTagCacheSize bounds the cached "tag=" prefixes; tags below it reuse a
// precomputed byte slice and checksum contribution instead of reformatting
// on every field (component F: "Small tags (< 118) keep a cached tag=
// byte slice and its running checksum contribution").
const smallTagCacheSize = 118

var smallTagPrefix [smallTagCacheSize][]byte
var smallTagChecksum [smallTagCacheSize]int

func init() {
	for t := 0; t < smallTagCacheSize; t++ {
		b := make([]byte, buffer.AsciiSize(int64(t))+1)
		n := buffer.PutLongASCII(b, 0, int64(t))
		b[n] = '='
		smallTagPrefix[t] = b[:n+1]
		sum := 0
		for _, c := range b[:n+1] {
			sum += int(c)
		}
		smallTagChecksum[t] = sum
	}
}

// Writer builds one FIX frame into a caller-owned buffer, tracking a
// running checksum as each field is appended.
type Writer struct {
	buf      []byte
	off      int
	pos      int
	msgTypeOff int
	bodyLenValOff int
	checksum int
}

// NewWriter creates a Writer. Call Start before any typed setter.
func NewWriter() *Writer { return &Writer{} }

// Start writes the header fields 8, 9 (placeholder), 35, 49, 56, 34, 52 in
// order, recording the body-length placeholder offset and the offset of
// the 35= tag, and returns the position just after the header.
func (w *Writer) Start(buf []byte, off int, cfg SessionConfig, msgType string, outSeq int64, sendingTimeNs int64) int {
	w.buf = buf
	w.off = off
	w.pos = off
	w.checksum = 0

	w.putTag(TagBeginString)
	w.putRaw([]byte(cfg.BeginString))
	w.terminateField()

	w.putTag(TagBodyLength)
	w.bodyLenValOff = w.pos
	w.putRaw([]byte("    ")) // 4-space placeholder, patched in Send
	w.terminateField()

	w.msgTypeOff = w.pos
	w.putTag(TagMsgType)
	w.putRaw([]byte(msgType))
	w.terminateField()

	w.putTag(TagSenderCompID)
	w.putRaw([]byte(cfg.SenderCompID))
	w.terminateField()

	w.putTag(TagTargetCompID)
	w.putRaw([]byte(cfg.TargetCompID))
	w.terminateField()

	w.PutInteger(TagMsgSeqNum, outSeq)
	w.PutTimestamp(TagSendingTime, sendingTimeNs)

	return w.pos
}

func (w *Writer) putTag(tag Tag) {
	t := int(tag)
	if t >= 0 && t < smallTagCacheSize {
		n := copy(w.buf[w.pos:], smallTagPrefix[t])
		w.pos += n
		w.checksum += smallTagChecksum[t]
		return
	}
	n := buffer.PutLongASCII(w.buf, w.pos, int64(tag))
	for _, c := range w.buf[w.pos : w.pos+n] {
		w.checksum += int(c)
	}
	w.pos += n
	w.buf[w.pos] = '='
	w.checksum += int('=')
	w.pos++
}

func (w *Writer) putRaw(b []byte) {
	n := copy(w.buf[w.pos:], b)
	for _, c := range b {
		w.checksum += int(c)
	}
	w.pos += n
}

func (w *Writer) terminateField() {
	w.buf[w.pos] = SOH
	w.checksum += int(SOH)
	w.pos++
}

// PutInteger appends tag=v\x01.
func (w *Writer) PutInteger(tag Tag, v int64) {
	w.putTag(tag)
	start := w.pos
	n := buffer.PutLongASCII(w.buf, w.pos, v)
	for _, c := range w.buf[start : start+n] {
		w.checksum += int(c)
	}
	w.pos += n
	w.terminateField()
}

// PutDecimal appends tag=v\x01 rendered with the given fraction bounds.
func (w *Writer) PutDecimal(tag Tag, v float64, minFrac, maxFrac int) {
	w.putTag(tag)
	start := w.pos
	n := buffer.PutDecimalASCII(w.buf, w.pos, v, minFrac, maxFrac)
	for _, c := range w.buf[start : start+n] {
		w.checksum += int(c)
	}
	w.pos += n
	w.terminateField()
}

// PutBuffer appends tag=<raw bytes>\x01 without further encoding.
func (w *Writer) PutBuffer(tag Tag, v []byte) {
	w.putTag(tag)
	w.putRaw(v)
	w.terminateField()
}

// PutASCIIString appends tag=s\x01.
func (w *Writer) PutASCIIString(tag Tag, s string) {
	w.PutBuffer(tag, []byte(s))
}

// PutASCIICharacter appends tag=c\x01.
func (w *Writer) PutASCIICharacter(tag Tag, c byte) {
	w.putTag(tag)
	w.buf[w.pos] = c
	w.checksum += int(c)
	w.pos++
	w.terminateField()
}

// PutEnum appends tag=<mapped string>\x01.
func (w *Writer) PutEnum(tag Tag, v string) {
	w.PutASCIIString(tag, v)
}

// PutTimestamp appends tag=<yyyyMMdd-HH:mm:ss.SSS>\x01. The FIX formatter
// always writes millisecond precision regardless of the nanosecond input's
// finer resolution (see DESIGN.md's Open Question decision).
func (w *Writer) PutTimestamp(tag Tag, ns int64) {
	w.putTag(tag)
	start := w.pos
	n := formatDateTime(w.buf, w.pos, ns)
	for _, c := range w.buf[start : start+n] {
		w.checksum += int(c)
	}
	w.pos += n
	w.terminateField()
}

// Send computes the body length, patches the placeholder, appends the
// checksum trailer, and delivers the final span to commit.
func (w *Writer) Send(commit func(buf []byte, off, length int)) {
	bodyLen := w.pos - w.msgTypeOff
	var patched [4]byte
	v := bodyLen
	for i := 3; i >= 0; i-- {
		patched[i] = byte('0' + v%10)
		v /= 10
	}
	copy(w.buf[w.bodyLenValOff:w.bodyLenValOff+4], patched[:])
	w.checksum -= 4 * int(' ') // drop the placeholder's contribution before adding the patched digits
	for _, c := range patched {
		w.checksum += int(c)
	}

	cs := w.checksum % 256
	w.putTag(TagCheckSum)
	n := writeZeroPadded3(w.buf, w.pos, cs)
	w.pos += n
	w.terminateField()

	commit(w.buf, w.off, w.pos-w.off)
}

func writeZeroPadded3(buf []byte, off, v int) int {
	buf[off] = byte('0' + (v/100)%10)
	buf[off+1] = byte('0' + (v/10)%10)
	buf[off+2] = byte('0' + v%10)
	return 3
}

