package fix

// Parser wraps Lex with the session-identity checks from component E: the
// first three fields must be BeginString/BodyLength/MsgType in that order,
// and the sender/target CompIDs must match the configured session. It
// reuses one TimestampParser across frames so the hour cache stays warm.
type Parser struct {
	cfg SessionConfig
	ts  TimestampParser

	tags   []Tag
	valOff []int
	valLen []int
}

// NewParser creates a Parser bound to cfg's BeginString/CompID checks.
func NewParser(cfg SessionConfig) *Parser {
	return &Parser{cfg: cfg}
}

// Parse lexes one frame from buf[off:off+length] and, once complete,
// validates its header. Returns (view, consumed, nil) on success,
// (nil, 0, nil) if more bytes are needed, and (nil, -1, err) on any
// violation — the caller must disconnect per the session error taxonomy.
func (p *Parser) Parse(buf []byte, off, length int) (*MessageView, int, error) {
	p.tags = p.tags[:0]
	p.valOff = p.valOff[:0]
	p.valLen = p.valLen[:0]

	var violation error
	onField := func(tag Tag, b []byte, valueOff, valueLen int) bool {
		idx := len(p.tags)
		switch idx {
		case 0:
			if tag != TagBeginString || string(b[valueOff:valueOff+valueLen]) != p.cfg.BeginString {
				violation = fieldErr("expected BeginString(8) with the configured value at position 0")
				return false
			}
		case 1:
			if tag != TagBodyLength {
				violation = fieldErr("expected BodyLength(9) at position 1")
				return false
			}
		case 2:
			if tag != TagMsgType {
				violation = fieldErr("expected MsgType(35) at position 2")
				return false
			}
		}
		if tag == TagSenderCompID && string(b[valueOff:valueOff+valueLen]) != p.cfg.TargetCompID {
			violation = fieldErr("SenderCompID does not match configured target_comp_id")
			return false
		}
		if tag == TagTargetCompID && string(b[valueOff:valueOff+valueLen]) != p.cfg.SenderCompID {
			violation = fieldErr("TargetCompID does not match configured sender_comp_id")
			return false
		}
		p.tags = append(p.tags, tag)
		p.valOff = append(p.valOff, valueOff)
		p.valLen = append(p.valLen, valueLen)
		return true
	}

	consumed := Lex(buf, off, length, onField, func(int) bool { return true })
	if consumed < 0 {
		if violation != nil {
			return nil, -1, violation
		}
		return nil, -1, errMalformedFrame
	}
	if consumed == 0 {
		return nil, 0, nil
	}

	view := &MessageView{
		buf:    buf,
		tags:   append([]Tag(nil), p.tags...),
		valOff: append([]int(nil), p.valOff...),
		valLen: append([]int(nil), p.valLen...),
		ts:     &p.ts,
	}
	return view, consumed, nil
}

type fieldErr string

func (e fieldErr) Error() string { return string(e) }

var errMalformedFrame = fieldErr("malformed FIX frame")
