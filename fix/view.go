package fix

import (
	"prime-fix-engine-go/buffer"
)

// SessionConfig carries the identity fields the parser validates every
// inbound frame against (component E: "position 0 ⇒ tag 8 with the
// session's BeginString", CompID checks).
type SessionConfig struct {
	BeginString  string
	SenderCompID string
	TargetCompID string
}

// MessageView is a zero-copy record over a caller's receive buffer: parallel
// tags/values arrays plus byte offsets into the original frame. It borrows
// buf and is invalid once that buffer is compacted or reused.
type MessageView struct {
	buf    []byte
	tags   []Tag
	valOff []int
	valLen []int
	ts     *TimestampParser
}

// Size returns the number of fields in the view.
func (v *MessageView) Size() int { return len(v.tags) }

// TagAt returns the tag of the i'th field.
func (v *MessageView) TagAt(i int) Tag { return v.tags[i] }

// ValueAt returns the raw value bytes of the i'th field.
func (v *MessageView) ValueAt(i int) []byte {
	return v.buf[v.valOff[i] : v.valOff[i]+v.valLen[i]]
}

// indexOfTag returns the field index of the first occurrence of tag at or
// after start, or -1. The spec accepts a linear scan here.
func (v *MessageView) indexOfTag(tag Tag, start int) int {
	for i := start; i < len(v.tags); i++ {
		if v.tags[i] == tag {
			return i
		}
	}
	return -1
}

// Get returns the field index of the first occurrence of tag, or -1.
func (v *MessageView) Get(tag Tag) int { return v.indexOfTag(tag, 0) }

// AsInteger returns the field's value parsed as a signed integer, or -1 if
// the tag is absent or the value is not numeric.
func (v *MessageView) AsInteger(tag Tag) int64 {
	i := v.Get(tag)
	if i < 0 {
		return -1
	}
	return buffer.ParseAsLong(v.buf, v.valOff[i], v.valLen[i], -1)
}

// AsDouble returns the field's value parsed as a float64, or NaN if the tag
// is absent or not numeric.
func (v *MessageView) AsDouble(tag Tag) float64 {
	i := v.Get(tag)
	if i < 0 {
		return nan()
	}
	val, ok := buffer.TryParseAsDouble(v.buf, v.valOff[i], v.valLen[i])
	if !ok {
		return nan()
	}
	return val
}

func nan() float64 {
	var zero float64
	return zero / zero
}

// AsTimestamp returns the field's value parsed as a FIX UTCTimestamp
// (epoch ns), or (0, false) if the tag is absent or malformed.
func (v *MessageView) AsTimestamp(tag Tag) (int64, bool) {
	i := v.Get(tag)
	if i < 0 {
		return 0, false
	}
	return v.ts.AsTimestamp(v.buf, v.valOff[i], v.valLen[i])
}

// AsDate returns the field's value parsed as a FIX UTCDateOnly.
func (v *MessageView) AsDate(tag Tag) (int64, bool) {
	i := v.Get(tag)
	if i < 0 {
		return 0, false
	}
	return v.ts.AsDate(v.buf, v.valOff[i], v.valLen[i])
}

// AsTime returns the field's value parsed as a FIX UTCTimeOnly.
func (v *MessageView) AsTime(tag Tag) (int64, bool) {
	i := v.Get(tag)
	if i < 0 {
		return 0, false
	}
	return v.ts.AsTime(v.buf, v.valOff[i], v.valLen[i])
}

// AsEnum maps the field's value through m, returning ("", false) if the tag
// is absent or the value is not a key of m.
func (v *MessageView) AsEnum(tag Tag, m map[string]string) (string, bool) {
	i := v.Get(tag)
	if i < 0 {
		return "", false
	}
	s, ok := m[string(v.ValueAt(i))]
	return s, ok
}

// RepeatingGroups scans forward from the field whose tag equals
// numGroupsTag, treating each occurrence of firstTag as the start of a new
// sub-view. It yields at most the integer value of numGroupsTag's field,
// stops at the end of the message, and does not support nested groups
// (returns an error if firstTag's own group contains another occurrence of
// numGroupsTag before reassembly completes — the spec requires this to
// "raise").
func (v *MessageView) RepeatingGroups(numGroupsTag, firstTag Tag) ([]*MessageView, error) {
	countIdx := v.Get(numGroupsTag)
	if countIdx < 0 {
		return nil, nil
	}
	count := int(v.AsInteger(numGroupsTag))
	if count < 0 {
		return nil, errGroupCount
	}

	var groups []*MessageView
	start := -1
	for i := countIdx + 1; i < len(v.tags) && len(groups) < count; i++ {
		if v.tags[i] == numGroupsTag {
			return nil, errNestedGroup
		}
		if v.tags[i] == firstTag {
			if start >= 0 {
				groups = append(groups, v.subView(start, i))
			}
			start = i
		}
	}
	if start >= 0 && len(groups) < count {
		groups = append(groups, v.subView(start, len(v.tags)))
	}
	return groups, nil
}

func (v *MessageView) subView(from, to int) *MessageView {
	return &MessageView{
		buf:    v.buf,
		tags:   v.tags[from:to],
		valOff: v.valOff[from:to],
		valLen: v.valLen[from:to],
		ts:     v.ts,
	}
}

var errGroupCount = groupError("repeating group count field is not a non-negative integer")
var errNestedGroup = groupError("nested repeating groups are not supported")

type groupError string

func (e groupError) Error() string { return string(e) }
