package codec

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Precision records how much of a date/time the producer supplied.
type Precision uint8

const (
	PrecisionDay Precision = iota
	PrecisionMinute
	PrecisionSecond
	PrecisionMillisecond
	PrecisionMicrosecond
	PrecisionNanosecond
)

func (p Precision) String() string {
	switch p {
	case PrecisionDay:
		return "day"
	case PrecisionMinute:
		return "minute"
	case PrecisionSecond:
		return "second"
	case PrecisionMillisecond:
		return "millisecond"
	case PrecisionMicrosecond:
		return "microsecond"
	case PrecisionNanosecond:
		return "nanosecond"
	}
	return "unknown"
}

// fractionPrecision maps the number of fractional second digits on the wire
// to the finest precision that holds them.
func fractionPrecision(digits int) Precision {
	switch {
	case digits <= 3:
		return PrecisionMillisecond
	case digits <= 6:
		return PrecisionMicrosecond
	}
	return PrecisionNanosecond
}

// Zone is the optional "[offset:name]" suffix of an OFX date.
type Zone struct {
	Known  bool
	Offset int // seconds east of UTC
	Name   string
}

// DateTime is an OFX date with the precision and zone it was written with.
// A value without a known zone holds UTC wall-clock time.
type DateTime struct {
	Time      time.Time
	Precision Precision
	Zone      Zone
}

// Date returns a day-precision value without zone information.
func Date(year int, month time.Month, day int) DateTime {
	return DateTime{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), Precision: PrecisionDay}
}

// NewDateTime captures t at precision p, keeping t's offset and zone
// abbreviation.
func NewDateTime(t time.Time, p Precision) DateTime {
	name, off := t.Zone()
	z := Zone{Known: true, Offset: off, Name: name}
	return DateTime{Time: truncate(t.In(z.Location()), p), Precision: p, Zone: z}
}

var locations sync.Map // Zone -> *time.Location

// Location returns a fixed location for the zone, shared between values so
// equal DateTimes compare equal with reflect.DeepEqual. Unknown zones map to
// UTC.
func (z Zone) Location() *time.Location {
	if !z.Known {
		return time.UTC
	}
	if l, ok := locations.Load(z); ok {
		return l.(*time.Location)
	}
	l, _ := locations.LoadOrStore(z, time.FixedZone(z.Name, z.Offset))
	return l.(*time.Location)
}

// Floating captures t's wall clock at precision p with no zone suffix.
func Floating(t time.Time, p Precision) DateTime {
	wall := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
	return DateTime{Time: truncate(wall, p), Precision: p}
}

func truncate(t time.Time, p Precision) time.Time {
	switch p {
	case PrecisionDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case PrecisionMinute:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	case PrecisionSecond:
		return t.Truncate(time.Second)
	case PrecisionMillisecond:
		return t.Truncate(time.Millisecond)
	case PrecisionMicrosecond:
		return t.Truncate(time.Microsecond)
	}
	return t
}

// IsZero reports whether d is unset.
func (d DateTime) IsZero() bool { return d.Time.IsZero() }

// Equal compares instant, precision and zone.
func (d DateTime) Equal(o DateTime) bool {
	return d.Time.Equal(o.Time) && d.Precision == o.Precision && d.Zone == o.Zone
}

// String renders the wire form.
func (d DateTime) String() string { return FormatDateTime(d) }

// ParseDateTime parses YYYYMMDD[HHMM[SS[.fff]]][[offset[:name]]]. One to
// three fraction digits give millisecond precision, up to six microsecond
// and up to nine nanosecond.
func ParseDateTime(text string) (DateTime, error) {
	s := strings.TrimSpace(text)
	var zonePart string
	if i := strings.IndexByte(s, '['); i >= 0 {
		if !strings.HasSuffix(s, "]") {
			return DateTime{}, convErr(KeyDateTime, text, "unterminated zone suffix", nil)
		}
		zonePart = s[i+1 : len(s)-1]
		s = s[:i]
	}

	main, frac, hasFrac := strings.Cut(s, ".")
	if !allDigits(main) {
		return DateTime{}, convErr(KeyDateTime, text, "expected digits", nil)
	}
	var p Precision
	switch len(main) {
	case 8:
		p = PrecisionDay
	case 12:
		p = PrecisionMinute
	case 14:
		p = PrecisionSecond
	default:
		return DateTime{}, convErr(KeyDateTime, text, "unsupported length", nil)
	}
	nanos := 0
	if hasFrac {
		if p != PrecisionSecond || frac == "" || len(frac) > 9 || !allDigits(frac) {
			return DateTime{}, convErr(KeyDateTime, text, "invalid fractional seconds", nil)
		}
		n, _ := strconv.Atoi(frac + strings.Repeat("0", 9-len(frac)))
		nanos = n
		p = fractionPrecision(len(frac))
	}

	num := func(from, to int) int {
		if len(main) < to {
			return 0
		}
		n, _ := strconv.Atoi(main[from:to])
		return n
	}
	year, month, day := num(0, 4), num(4, 6), num(6, 8)
	hour, minute, sec := num(8, 10), num(10, 12), num(12, 14)

	loc := time.UTC
	var z Zone
	if zonePart != "" {
		parsed, err := parseZone(zonePart)
		if err != nil {
			return DateTime{}, convErr(KeyDateTime, text, "invalid zone", err)
		}
		z = parsed
		loc = z.Location()
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, nanos, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day || t.Hour() != hour || t.Minute() != minute || t.Second() != sec {
		return DateTime{}, convErr(KeyDateTime, text, "date out of range", nil)
	}
	return DateTime{Time: t, Precision: p, Zone: z}, nil
}

// parseZone reads "offset[:name]". The offset is signed hours with an
// optional fraction: two digits are minutes (5.30), one digit is tenths of an
// hour (5.5).
func parseZone(s string) (Zone, error) {
	offText, name, _ := strings.Cut(s, ":")
	offText = strings.TrimSpace(offText)
	if offText == "" {
		return Zone{}, fmt.Errorf("missing offset")
	}
	sign := 1
	switch offText[0] {
	case '-':
		sign = -1
		offText = offText[1:]
	case '+':
		offText = offText[1:]
	}
	hoursText, fracText, _ := strings.Cut(offText, ".")
	if !allDigits(hoursText) || hoursText == "" {
		return Zone{}, fmt.Errorf("invalid offset hours %q", hoursText)
	}
	hours, _ := strconv.Atoi(hoursText)
	minutes := 0
	if fracText != "" {
		if !allDigits(fracText) {
			return Zone{}, fmt.Errorf("invalid offset fraction %q", fracText)
		}
		switch len(fracText) {
		case 1:
			tenths, _ := strconv.Atoi(fracText)
			minutes = tenths * 6
		case 2:
			minutes, _ = strconv.Atoi(fracText)
		default:
			return Zone{}, fmt.Errorf("invalid offset fraction %q", fracText)
		}
	}
	if hours > 14 || minutes > 59 {
		return Zone{}, fmt.Errorf("offset out of range")
	}
	return Zone{Known: true, Offset: sign * (hours*3600 + minutes*60), Name: strings.TrimSpace(name)}, nil
}

// FormatDateTime renders d at its recorded precision.
func FormatDateTime(d DateTime) string {
	t := d.Time
	t = t.In(d.Zone.Location())
	var s string
	switch d.Precision {
	case PrecisionDay:
		s = t.Format("20060102")
	case PrecisionMinute:
		s = t.Format("200601021504")
	case PrecisionSecond:
		s = t.Format("20060102150405")
	case PrecisionMillisecond:
		s = t.Format("20060102150405.000")
	case PrecisionMicrosecond:
		s = t.Format("20060102150405.000000")
	default:
		s = t.Format("20060102150405.000000000")
	}
	if d.Zone.Known {
		s += "[" + formatOffset(d.Zone.Offset)
		if d.Zone.Name != "" {
			s += ":" + d.Zone.Name
		}
		s += "]"
	}
	return s
}

func formatOffset(off int) string {
	sign := ""
	if off < 0 {
		sign = "-"
		off = -off
	}
	h, m := off/3600, off%3600/60
	if m == 0 {
		return sign + strconv.Itoa(h)
	}
	return fmt.Sprintf("%s%d.%02d", sign, h, m)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

type dateTimeCodec struct{}

func (dateTimeCodec) Encode(v any) (string, error) {
	switch d := v.(type) {
	case DateTime:
		if d.IsZero() {
			return "", convErr(KeyDateTime, "", "zero date", nil)
		}
		return FormatDateTime(d), nil
	case time.Time:
		return FormatDateTime(NewDateTime(d, PrecisionMillisecond)), nil
	}
	return "", convErr(KeyDateTime, "", fmt.Sprintf("expected codec.DateTime, got %T", v), nil)
}

func (dateTimeCodec) Decode(text string) (any, error) {
	d, err := ParseDateTime(text)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (dateTimeCodec) IsZero(v any) bool {
	switch d := v.(type) {
	case DateTime:
		return d.IsZero()
	case time.Time:
		return d.IsZero()
	}
	return v == nil
}
