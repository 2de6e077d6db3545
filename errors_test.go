package ofxkit_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/reoring/ofxkit"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := ofxkit.Issues{
		{Code: ofxkit.CodeRequired, Path: "/A/B", Severity: ofxkit.Error},
		{Code: ofxkit.CodeUnknownTag, Path: "/A/C", Severity: ofxkit.Error},
		{Code: ofxkit.CodeInvalidFormat, Path: "/A/D", Severity: ofxkit.Error},
		{Code: ofxkit.CodeKindMismatch, Path: "/A/E", Severity: ofxkit.Error},
	}
	msg := iss.Error()
	if !strings.HasPrefix(msg, "required at /A/B; unknown_tag at /A/C") || !strings.Contains(msg, "(total 4)") {
		t.Fatalf("unexpected summary %q", msg)
	}
}

func TestIssues_ClassesAndWrapping(t *testing.T) {
	iss := ofxkit.Issues{
		{Code: ofxkit.CodeInvalidFormat, Path: "/X", Severity: ofxkit.Error},
		{Code: ofxkit.CodeUnknownTag, Path: "/Y", Severity: ofxkit.Warn},
	}
	err := fmt.Errorf("read statement: %w", iss)
	if !errors.Is(err, ofxkit.ErrValueConversion) {
		t.Fatalf("expected value conversion class")
	}
	if errors.Is(err, ofxkit.ErrStructural) {
		t.Fatalf("warnings must not make an error structural")
	}
	got, ok := ofxkit.AsIssues(err)
	if !ok || len(got) != 2 {
		t.Fatalf("AsIssues failed: %v", got)
	}
	if len(got.Fatal()) != 1 || len(got.Warnings()) != 1 || !got.HasFatal() {
		t.Fatalf("unexpected split: %v / %v", got.Fatal(), got.Warnings())
	}
}

func TestPathRef_Chain(t *testing.T) {
	p := ofxkit.RootPath("OFX", "BANKMSGSRSV1").Field("STMTTRNRS").Index(2).Field("TRNUID")
	if p.Pointer() != "/OFX/BANKMSGSRSV1/STMTTRNRS[2]/TRNUID" {
		t.Fatalf("unexpected pointer %s", p.Pointer())
	}
	if p.Tag() != "TRNUID" || p.Parent() != "STMTTRNRS" {
		t.Fatalf("unexpected tag/parent %s %s", p.Tag(), p.Parent())
	}
	it := p.Issue(ofxkit.CodeRequired, "missing", "order", 0)
	if it.Path != p.Pointer() || it.Params["order"] != 0 || !it.Fatal() {
		t.Fatalf("unexpected issue %+v", it)
	}
	if again := ofxkit.ParsePath(p.Pointer()); again.Pointer() != p.Pointer() {
		t.Fatalf("parse mismatch %s", again.Pointer())
	}
}
