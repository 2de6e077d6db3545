package codec_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/reoring/ofxkit/codec"
)

type stockType string

var stockTypes = codec.Enum("TESTSTOCKTYPE", "COMMON", "PREFERRED", "CONVERTIBLE", "OTHER")

func TestRegistry_BoolYN(t *testing.T) {
	r := codec.NewRegistry()
	for in, want := range map[string]bool{"Y": true, "N": false} {
		v, err := r.Decode(codec.KeyBoolYN, in)
		if err != nil || v != want {
			t.Fatalf("decode %q: v=%v err=%v", in, v, err)
		}
		out, err := r.Encode(codec.KeyBoolYN, want)
		if err != nil || out != in {
			t.Fatalf("encode %v: out=%q err=%v", want, out, err)
		}
	}
	if _, err := r.Decode(codec.KeyBoolYN, "T"); !errors.Is(err, codec.ErrConversion) {
		t.Fatalf("expected conversion error for T, got %v", err)
	}
}

func TestRegistry_Integer(t *testing.T) {
	r := codec.Default()
	v, err := r.Decode(codec.KeyInteger, " 2000 ")
	if err != nil || v != 2000 {
		t.Fatalf("decode: v=%v err=%v", v, err)
	}
	if out, _ := r.Encode(codec.KeyInteger, int32(-7)); out != "-7" {
		t.Fatalf("unexpected encode %q", out)
	}
	if r.IsZero(codec.KeyInteger, 0) {
		t.Fatalf("zero integer must count as present")
	}
}

func TestRegistry_Enum(t *testing.T) {
	r := codec.Default()
	v, err := r.Decode(stockTypes, "PREFERRED")
	if err != nil || v != "PREFERRED" {
		t.Fatalf("decode: v=%v err=%v", v, err)
	}
	v, err = r.Decode(stockTypes, "SPECIAL")
	if err != nil {
		t.Fatalf("unknown literal must not fail: %v", err)
	}
	if !codec.IsUnrecognized(v) {
		t.Fatalf("expected unrecognized sentinel, got %v", v)
	}
	out, err := r.Encode(stockTypes, stockType("COMMON"))
	if err != nil || out != "COMMON" {
		t.Fatalf("encode named string type: out=%q err=%v", out, err)
	}
	if _, err := r.Encode(stockTypes, codec.Unrecognized); err == nil {
		t.Fatalf("expected error encoding the sentinel")
	}
	if got := codec.Literals(stockTypes); len(got) != 4 {
		t.Fatalf("unexpected literals %v", got)
	}
}

func TestRegistry_StringIsZero(t *testing.T) {
	r := codec.Default()
	if !r.IsZero(codec.KeyString, "") || r.IsZero(codec.KeyString, "x") {
		t.Fatalf("unexpected IsZero result")
	}
	if !r.IsZero(codec.KeyDateTime, codec.DateTime{}) {
		t.Fatalf("zero DateTime must be absent")
	}
}

type upperCodec struct{}

func (upperCodec) Encode(v any) (string, error) { return v.(string) + "!", nil }
func (upperCodec) Decode(text string) (any, error) { return text + "?", nil }
func (upperCodec) IsZero(v any) bool { return v == "" }

func TestRegistry_CustomCodecAndUnknownKey(t *testing.T) {
	r := codec.NewRegistry()
	r.Register("SHOUT", upperCodec{})
	if v, _ := r.Decode("SHOUT", "a"); v != "a?" {
		t.Fatalf("custom codec not used: %v", v)
	}
	if _, err := r.Decode("MISSING", "a"); !errors.Is(err, codec.ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if _, ok := codec.Default().Lookup("SHOUT"); ok {
		t.Fatalf("custom registration leaked into default registry")
	}
}

func TestRegistry_ConcurrentUse(t *testing.T) {
	r := codec.NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Register("SHOUT", upperCodec{})
			if _, err := r.Decode(codec.KeyAmount, "1.5"); err != nil {
				t.Errorf("decode err: %v", err)
			}
		}()
	}
	wg.Wait()
}
