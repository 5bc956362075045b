// Package fix implements the FIX wire-format lexer, parser, message view,
// and writer (components E and F): a SOH-delimited tag=value codec that
// never allocates per field, building on the buffer package's ASCII
// primitives the way the teacher's fixclient/parser.go hand-extracts
// fields from a raw frame.
package fix

// Tag identifies a FIX field number. It replaces the quickfix.Tag type the
// teacher's constants package used to import — the session, lexer, and
// writer in this module own the wire format themselves.
type Tag int

// SOH is the FIX field terminator, 0x01.
const SOH = byte(0x01)

// Well-known header/trailer tags referenced directly by the lexer, parser,
// and writer (component E/F invariants: position 0/1/2 and the trailer).
const (
	TagBeginString = Tag(8)
	TagBodyLength  = Tag(9)
	TagMsgType     = Tag(35)
	TagSenderCompID = Tag(49)
	TagTargetCompID = Tag(56)
	TagMsgSeqNum    = Tag(34)
	TagSendingTime  = Tag(52)
	TagCheckSum     = Tag(10)
)
