package fix

import "time"

// TimestampParser parses the FIX calendar formats (yyyyMMdd-HH:mm:ss[.sss],
// yyyyMMdd, HH:mm:ss[.sss]) and caches the epoch-nanosecond value of the
// start of the most recently seen hour, since callers parse long bursts of
// timestamps sharing the same (year, month, day, hour) prefix.
type TimestampParser struct {
	haveCache                    bool
	cachedYear, cachedMonth       int
	cachedDay, cachedHour         int
	cachedHourStartNs             int64
}

// AsTimestamp parses buf[off:off+length] as yyyyMMdd-HH:mm:ss[.SSS[SSS[SSS]]]
// and returns its value in epoch nanoseconds, or (0, false) on any invalid
// field or calendar violation.
func (p *TimestampParser) AsTimestamp(buf []byte, off, length int) (int64, bool) {
	if length < 17 {
		return 0, false
	}
	year, month, day, ok := parseDate(buf, off)
	if !ok {
		return 0, false
	}
	if buf[off+8] != '-' {
		return 0, false
	}
	hour, min, sec, nanos, ok := parseTimeOfDay(buf, off+9, length-9)
	if !ok {
		return 0, false
	}
	if !validCalendar(year, month, day, hour, min, sec) {
		return 0, false
	}

	hourStart := p.hourStart(year, month, day, hour)
	return hourStart + int64(min)*int64(time.Minute) + int64(sec)*int64(time.Second) + nanos, true
}

// AsDate parses buf[off:off+length] as yyyyMMdd and returns epoch
// nanoseconds at midnight UTC, or (0, false) on invalid/out-of-range input.
func (p *TimestampParser) AsDate(buf []byte, off, length int) (int64, bool) {
	if length != 8 {
		return 0, false
	}
	year, month, day, ok := parseDate(buf, off)
	if !ok || !validCalendar(year, month, day, 0, 0, 0) {
		return 0, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return t.UnixNano(), true
}

// AsTime parses buf[off:off+length] as HH:mm:ss[.SSS[SSS[SSS]]] and returns
// nanoseconds since midnight, or (0, false) on invalid input.
func (p *TimestampParser) AsTime(buf []byte, off, length int) (int64, bool) {
	hour, min, sec, nanos, ok := parseTimeOfDay(buf, off, length)
	if !ok || !validCalendar(2000, 1, 1, hour, min, sec) {
		return 0, false
	}
	return int64(hour)*int64(time.Hour) + int64(min)*int64(time.Minute) + int64(sec)*int64(time.Second) + nanos, true
}

func (p *TimestampParser) hourStart(year, month, day, hour int) int64 {
	if p.haveCache && p.cachedYear == year && p.cachedMonth == month && p.cachedDay == day && p.cachedHour == hour {
		return p.cachedHourStartNs
	}
	t := time.Date(year, time.Month(month), day, hour, 0, 0, 0, time.UTC)
	ns := t.UnixNano()
	p.haveCache = true
	p.cachedYear, p.cachedMonth, p.cachedDay, p.cachedHour = year, month, day, hour
	p.cachedHourStartNs = ns
	return ns
}

func parseDate(buf []byte, off int) (year, month, day int, ok bool) {
	y, ok1 := digits4(buf, off)
	mo, ok2 := digits2(buf, off+4)
	d, ok3 := digits2(buf, off+6)
	if !ok1 || !ok2 || !ok3 {
		return 0, 0, 0, false
	}
	return y, mo, d, true
}

// parseTimeOfDay parses HH:mm:ss[.SSS[SSS[SSS]]] starting at off within a
// span of length bytes, returning nanoseconds for the fractional part.
func parseTimeOfDay(buf []byte, off, length int) (hour, min, sec int, nanos int64, ok bool) {
	if length != 8 && !(length >= 12 && buf[off+8] == '.') {
		return 0, 0, 0, 0, false
	}
	h, ok1 := digits2(buf, off)
	if !ok1 || buf[off+2] != ':' {
		return 0, 0, 0, 0, false
	}
	m, ok2 := digits2(buf, off+3)
	if !ok2 || buf[off+5] != ':' {
		return 0, 0, 0, 0, false
	}
	s, ok3 := digits2(buf, off+6)
	if !ok3 {
		return 0, 0, 0, 0, false
	}
	if length == 8 {
		return h, m, s, 0, true
	}
	fracLen := length - 9
	if fracLen != 3 && fracLen != 6 && fracLen != 9 {
		return 0, 0, 0, 0, false
	}
	frac := 0
	for i := 0; i < fracLen; i++ {
		c := buf[off+9+i]
		if c < '0' || c > '9' {
			return 0, 0, 0, 0, false
		}
		frac = frac*10 + int(c-'0')
	}
	var ns int64
	switch fracLen {
	case 3:
		ns = int64(frac) * int64(time.Millisecond)
	case 6:
		ns = int64(frac) * int64(time.Microsecond)
	case 9:
		ns = int64(frac)
	}
	return h, m, s, ns, true
}

func digits4(buf []byte, off int) (int, bool) {
	v := 0
	for i := 0; i < 4; i++ {
		c := buf[off+i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}

func digits2(buf []byte, off int) (int, bool) {
	c0, c1 := buf[off], buf[off+1]
	if c0 < '0' || c0 > '9' || c1 < '0' || c1 > '9' {
		return 0, false
	}
	return int(c0-'0')*10 + int(c1-'0'), true
}

func isLeapYear(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

func daysInMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// formatDateTime renders ns (epoch nanoseconds) as
// yyyyMMdd-HH:mm:ss.SSS — the writer always emits millisecond precision
// regardless of the input's finer resolution (see DESIGN.md's Open
// Question decision).
func formatDateTime(buf []byte, off int, ns int64) int {
	t := time.Unix(0, ns).UTC()
	n := writePadded(buf, off, t.Year(), 4)
	n += writePadded(buf, off+n, int(t.Month()), 2)
	n += writePadded(buf, off+n, t.Day(), 2)
	buf[off+n] = '-'
	n++
	n += writePadded(buf, off+n, t.Hour(), 2)
	buf[off+n] = ':'
	n++
	n += writePadded(buf, off+n, t.Minute(), 2)
	buf[off+n] = ':'
	n++
	n += writePadded(buf, off+n, t.Second(), 2)
	buf[off+n] = '.'
	n++
	n += writePadded(buf, off+n, t.Nanosecond()/1e6, 3)
	return n
}

func writePadded(buf []byte, off, v, width int) int {
	for i := width - 1; i >= 0; i-- {
		buf[off+i] = byte('0' + v%10)
		v /= 10
	}
	return width
}

// validCalendar rejects Feb-29 on non-leap years, months outside 1..12,
// days outside the valid range for that month/year, hours outside 0..23,
// minutes outside 0..59, and seconds outside 0..60 (60 allows a leap
// second).
func validCalendar(year, month, day, hour, min, sec int) bool {
	if month < 1 || month > 12 {
		return false
	}
	maxDay := daysInMonth(year, month)
	if day < 1 || day > maxDay {
		return false
	}
	if hour < 0 || hour > 23 {
		return false
	}
	if min < 0 || min > 59 {
		return false
	}
	if sec < 0 || sec > 60 {
		return false
	}
	return true
}
