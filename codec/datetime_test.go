package codec_test

import (
	"errors"
	"testing"
	"time"

	"github.com/reoring/ofxkit/codec"
)

func TestDateTime_DateOnly_NoFabricatedTime(t *testing.T) {
	d, err := codec.ParseDateTime("20230615")
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if d.Precision != codec.PrecisionDay {
		t.Fatalf("expected day precision, got %v", d.Precision)
	}
	if d.Zone.Known {
		t.Fatalf("expected unknown zone")
	}
	if !d.Time.Equal(time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected time: %v", d.Time)
	}
	if out := codec.FormatDateTime(d); out != "20230615" {
		t.Fatalf("re-encode fabricated components: %q", out)
	}
}

func TestDateTime_OffsetPreserved(t *testing.T) {
	in := "20230615120000.000[-5:EST]"
	d, err := codec.ParseDateTime(in)
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if !d.Zone.Known || d.Zone.Offset != -5*3600 || d.Zone.Name != "EST" {
		t.Fatalf("unexpected zone: %+v", d.Zone)
	}
	if d.Time.UTC().Hour() != 17 {
		t.Fatalf("expected 17:00 UTC, got %v", d.Time.UTC())
	}
	if out := codec.FormatDateTime(d); out != in {
		t.Fatalf("roundtrip mismatch: %s != %s", out, in)
	}
}

func TestDateTime_PrecisionRoundTrips(t *testing.T) {
	cases := []struct {
		in   string
		prec codec.Precision
	}{
		{"202306151204", codec.PrecisionMinute},
		{"20230615120405", codec.PrecisionSecond},
		{"20230615120405.123", codec.PrecisionMillisecond},
		{"20190131120000.000[0:GMT]", codec.PrecisionMillisecond},
		{"20190131120000[-7]", codec.PrecisionSecond},
		{"20230615[5.30:IST]", codec.PrecisionDay},
	}
	for _, tc := range cases {
		d, err := codec.ParseDateTime(tc.in)
		if err != nil {
			t.Fatalf("%s: decode err: %v", tc.in, err)
		}
		if d.Precision != tc.prec {
			t.Fatalf("%s: expected %v, got %v", tc.in, tc.prec, d.Precision)
		}
		if out := codec.FormatDateTime(d); out != tc.in {
			t.Fatalf("%s: re-encoded as %s", tc.in, out)
		}
	}
}

func TestDateTime_FractionalHourOffset(t *testing.T) {
	d, err := codec.ParseDateTime("20230615120000[+5.5:IST]")
	if err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if d.Zone.Offset != 5*3600+30*60 {
		t.Fatalf("unexpected offset: %d", d.Zone.Offset)
	}
	again, err := codec.ParseDateTime(codec.FormatDateTime(d))
	if err != nil {
		t.Fatalf("re-decode err: %v", err)
	}
	if !again.Equal(d) {
		t.Fatalf("value changed across round trip: %+v vs %+v", again, d)
	}
}

func TestDateTime_Invalid(t *testing.T) {
	for _, in := range []string{"", "2023061", "20231315", "20230615[-5:EST", "20230615.123", "2023O615", "20230615120000[x]"} {
		if _, err := codec.ParseDateTime(in); err == nil {
			t.Fatalf("%q: expected error", in)
		} else if !errors.Is(err, codec.ErrConversion) {
			t.Fatalf("%q: expected ErrConversion, got %v", in, err)
		}
	}
}

func TestDateTime_NewDateTime_KeepsZone(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	d := codec.NewDateTime(time.Date(2024, 1, 2, 3, 4, 5, 600_000_000, est), codec.PrecisionSecond)
	if out := d.String(); out != "20240102030405[-5:EST]" {
		t.Fatalf("unexpected wire form: %s", out)
	}
	if out := codec.Date(2024, time.March, 9).String(); out != "20240309" {
		t.Fatalf("unexpected wire form: %s", out)
	}
}

func TestDateTime_SubMillisecondFractions(t *testing.T) {
	cases := []struct {
		in   string
		prec codec.Precision
		ns   int
	}{
		{"20230615120000.123456[-5:EST]", codec.PrecisionMicrosecond, 123_456_000},
		{"20230615120000.1234", codec.PrecisionMicrosecond, 123_400_000},
		{"20230615120000.123456789[0:GMT]", codec.PrecisionNanosecond, 123_456_789},
		{"20230615120000.1234567", codec.PrecisionNanosecond, 123_456_700},
	}
	for _, tc := range cases {
		d, err := codec.ParseDateTime(tc.in)
		if err != nil {
			t.Fatalf("%s: decode err: %v", tc.in, err)
		}
		if d.Precision != tc.prec || d.Time.Nanosecond() != tc.ns {
			t.Fatalf("%s: got %v with %dns", tc.in, d.Precision, d.Time.Nanosecond())
		}
		again, err := codec.ParseDateTime(codec.FormatDateTime(d))
		if err != nil {
			t.Fatalf("%s: re-decode err: %v", tc.in, err)
		}
		if !again.Equal(d) {
			t.Fatalf("%s: value changed across round trip: %s", tc.in, codec.FormatDateTime(d))
		}
	}
	if out := codec.FormatDateTime(mustParse(t, "20230615120000.123456[-5:EST]")); out != "20230615120000.123456[-5:EST]" {
		t.Fatalf("unexpected wire form: %s", out)
	}
	// shorter fractions widen to three digits
	if out := codec.FormatDateTime(mustParse(t, "20230615120000.5")); out != "20230615120000.500" {
		t.Fatalf("unexpected wire form: %s", out)
	}
}

func TestDateTime_NewDateTime_TruncatesToPrecision(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 123_456_789, time.UTC)
	cases := []struct {
		prec codec.Precision
		ns   int
		wire string
	}{
		{codec.PrecisionMillisecond, 123_000_000, "20240102030405.123[0:UTC]"},
		{codec.PrecisionMicrosecond, 123_456_000, "20240102030405.123456[0:UTC]"},
		{codec.PrecisionNanosecond, 123_456_789, "20240102030405.123456789[0:UTC]"},
	}
	for _, tc := range cases {
		d := codec.NewDateTime(at, tc.prec)
		if d.Time.Nanosecond() != tc.ns {
			t.Fatalf("%v: kept %dns", tc.prec, d.Time.Nanosecond())
		}
		if out := d.String(); out != tc.wire {
			t.Fatalf("%v: unexpected wire form %s", tc.prec, out)
		}
		back := mustParse(t, tc.wire)
		if !back.Equal(d) {
			t.Fatalf("%v: value changed across round trip: %+v vs %+v", tc.prec, back, d)
		}
	}
}

func mustParse(t *testing.T, in string) codec.DateTime {
	t.Helper()
	d, err := codec.ParseDateTime(in)
	if err != nil {
		t.Fatalf("%s: decode err: %v", in, err)
	}
	return d
}
