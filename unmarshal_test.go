package ofxkit_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/wire"
)

func TestUnmarshal_Statement(t *testing.T) {
	n := stmtNode(
		txnNode("CREDIT", "20230105", "200.00", "T1", leaf("MEMO", "payroll")),
		txnNode("DEBIT", "20230107120000.000[-5:EST]", "-42,50", "T2"),
	)
	v, err := ofxkit.Unmarshal[stmt](n)
	if err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if v.Currency != "USD" || v.Account.BankID != "121000248" || v.Account.AcctID != "000123" {
		t.Fatalf("unexpected header fields: %+v", v)
	}
	if v.Tran == nil || len(v.Tran.Txns) != 2 {
		t.Fatalf("expected 2 transactions, got %+v", v.Tran)
	}
	first, second := v.Tran.Txns[0], v.Tran.Txns[1]
	if first.Type != "CREDIT" || first.Memo == nil || *first.Memo != "payroll" {
		t.Fatalf("unexpected first txn: %+v", first)
	}
	if second.Memo != nil || second.Amount.String() != "-42.5" {
		t.Fatalf("unexpected second txn: %+v", second)
	}
	if second.Posted.Zone.Offset != -5*3600 || second.Posted.Precision != codec.PrecisionMillisecond {
		t.Fatalf("unexpected posted date: %+v", second.Posted)
	}
	if v.Ledger.Amount.String() != "1500.25" {
		t.Fatalf("unexpected ledger: %+v", v.Ledger)
	}
	if v.Extras != nil {
		t.Fatalf("absent optional aggregate must stay nil")
	}
}

func TestUnmarshal_MissingRequired_NoPartialValue(t *testing.T) {
	bad := agg("STMTTRN", leaf("TRNTYPE", "CREDIT"), leaf("DTPOSTED", "20230105"), leaf("TRNAMT", "1.00"))
	v, err := ofxkit.Unmarshal[stmt](stmtNode(txnNode("CREDIT", "20230105", "1.00", "OK"), bad))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !reflect.DeepEqual(v, stmt{}) {
		t.Fatalf("expected zero value, got %+v", v)
	}
	if !errors.Is(err, ofxkit.ErrStructural) {
		t.Fatalf("expected structural error, got %v", err)
	}
	iss, ok := ofxkit.AsIssues(err)
	if !ok || len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	it := iss[0]
	if it.Code != ofxkit.CodeRequired || it.Tag != "FITID" || it.Parent != "STMTTRN" {
		t.Fatalf("unexpected issue: %+v", it)
	}
	if it.Path != "/STMTRS/BANKTRANLIST/STMTTRN[1]/FITID" {
		t.Fatalf("unexpected path: %s", it.Path)
	}
}

func TestUnmarshal_LenientSkipsUnknownLeaf(t *testing.T) {
	plain := txnNode("CREDIT", "20230105", "10.00", "T1", leaf("MEMO", "m"))
	extended := agg("STMTTRN",
		leaf("TRNTYPE", "CREDIT"), leaf("DTPOSTED", "20230105"),
		leaf("X-BANKTAG", "whatever"),
		leaf("TRNAMT", "10.00"), leaf("FITID", "T1"), leaf("MEMO", "m"))

	want, err := ofxkit.Unmarshal[txn](plain)
	if err != nil {
		t.Fatalf("plain err: %v", err)
	}
	dm, err := ofxkit.UnmarshalWithMeta[txn](extended)
	if err != nil {
		t.Fatalf("extended err: %v", err)
	}
	if !reflect.DeepEqual(dm.Value, want) {
		t.Fatalf("values differ:\n%+v\n%+v", dm.Value, want)
	}
	if len(dm.Warnings) != 1 || dm.Warnings[0].Code != ofxkit.CodeUnknownTag || dm.Warnings[0].Severity != ofxkit.Warn {
		t.Fatalf("expected one unknown_tag warning, got %+v", dm.Warnings)
	}
	if !dm.Presence.Has("/STMTTRN/X-BANKTAG", ofxkit.PresenceSkipped) {
		t.Fatalf("expected skipped presence, got %v", dm.Presence)
	}
}

func TestUnmarshal_StrictRejectsUnknownTag(t *testing.T) {
	n := txnNode("CREDIT", "20230105", "10.00", "T1", leaf("X-BANKTAG", "x"))
	_, err := ofxkit.Unmarshal[txn](n, ofxkit.Options{Mode: ofxkit.Strict})
	if err == nil {
		t.Fatalf("expected error in strict mode")
	}
	iss, _ := ofxkit.AsIssues(err)
	if iss[0].Code != ofxkit.CodeUnknownTag || iss[0].Parent != "STMTTRN" {
		t.Fatalf("unexpected issue: %+v", iss[0])
	}
}

func TestUnmarshal_OutOfOrder(t *testing.T) {
	n := agg("STMTTRN",
		leaf("TRNTYPE", "CREDIT"), leaf("DTPOSTED", "20230105"), leaf("TRNAMT", "1"),
		leaf("FITID", "T1"), leaf("DTUSER", "20230104"))
	dm, err := ofxkit.UnmarshalWithMeta[txn](n)
	if err != nil {
		t.Fatalf("lenient err: %v", err)
	}
	if dm.Value.User != nil {
		t.Fatalf("misplaced tag must be skipped")
	}
	if w := dm.Warnings.WithCode(ofxkit.CodeOutOfOrder); len(w) != 1 {
		t.Fatalf("expected out_of_order warning, got %+v", dm.Warnings)
	}
	if _, err := ofxkit.Unmarshal[txn](n, ofxkit.Options{Mode: ofxkit.Strict}); err == nil {
		t.Fatalf("expected strict failure")
	}
}

func TestUnmarshal_OptionalBadValue(t *testing.T) {
	n := agg("STMTTRN",
		leaf("TRNTYPE", "CREDIT"), leaf("DTPOSTED", "20230105"), leaf("DTUSER", "2023-01-04"),
		leaf("TRNAMT", "1"), leaf("FITID", "T1"))

	dm, err := ofxkit.UnmarshalWithMeta[txn](n)
	if err != nil {
		t.Fatalf("lenient err: %v", err)
	}
	if dm.Value.User != nil {
		t.Fatalf("bad optional value must be left absent")
	}
	if w := dm.Warnings.WithCode(ofxkit.CodeInvalidFormat); len(w) != 1 || w[0].Hint != string(codec.KeyDateTime) {
		t.Fatalf("expected invalid_format warning, got %+v", dm.Warnings)
	}

	_, err = ofxkit.Unmarshal[txn](n, ofxkit.Options{Mode: ofxkit.Strict})
	if !errors.Is(err, ofxkit.ErrValueConversion) {
		t.Fatalf("expected value conversion error in strict mode, got %v", err)
	}
	if errors.Is(err, ofxkit.ErrStructural) {
		t.Fatalf("conversion failure must not be classed structural")
	}
}

func TestUnmarshal_RequiredBadValue_Fatal(t *testing.T) {
	_, err := ofxkit.Unmarshal[txn](txnNode("CREDIT", "20230105", "12.3.4", "T1"))
	if !errors.Is(err, ofxkit.ErrValueConversion) {
		t.Fatalf("expected value conversion error, got %v", err)
	}
	iss, _ := ofxkit.AsIssues(err)
	if len(iss.WithCode(ofxkit.CodeRequired)) != 0 {
		t.Fatalf("present-but-invalid member must not also be reported missing: %v", iss)
	}
}

func TestUnmarshal_UnrecognizedEnum(t *testing.T) {
	dm, err := ofxkit.UnmarshalWithMeta[txn](txnNode("DIRECTDEP", "20230105", "1", "T1"))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !codec.IsUnrecognized(dm.Value.Type) {
		t.Fatalf("expected unrecognized sentinel, got %q", dm.Value.Type)
	}
	w := dm.Warnings.WithCode(ofxkit.CodeUnrecognizedEnum)
	if len(w) != 1 || w[0].Hint != "DIRECTDEP" {
		t.Fatalf("expected unrecognized_enum warning, got %+v", dm.Warnings)
	}
}

func TestUnmarshal_VariantsResolvedByTag(t *testing.T) {
	tran := func(id string) *wire.Node {
		return agg("INVTRAN", leaf("FITID", id), leaf("DTTRADE", "20230301"))
	}
	n := agg("INVTRANLIST",
		leaf("DTSTART", "20230301"),
		agg("BUYSTOCK", tran("B1"), leaf("UNITS", "10"), leaf("BUYTYPE", "BUY")),
		agg("INCOME", tran("I1"), leaf("TOTAL", "3.20")),
		agg("SELLSTOCK", leaf("SELLTYPE", "SELL"), tran("S1")),
		agg("BUYSTOCK", tran("B2"), leaf("UNITS", "5"), leaf("BUYTYPE", "BUYTOCOVER")),
	)
	v, err := ofxkit.Unmarshal[invList](n)
	if err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if len(v.Entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(v.Entries))
	}
	b1, ok := v.Entries[0].(buy)
	if !ok || b1.Tran.FITID != "B1" || b1.BuyType != "BUY" {
		t.Fatalf("unexpected first entry: %#v", v.Entries[0])
	}
	if in, ok := v.Entries[1].(income); !ok || in.Total.String() != "3.2" || in.Tran.FITID != "I1" {
		t.Fatalf("unexpected second entry: %#v", v.Entries[1])
	}
	if s, ok := v.Entries[2].(sell); !ok || s.SellType != "SELL" || s.Tran.FITID != "S1" {
		t.Fatalf("unexpected third entry: %#v", v.Entries[2])
	}
	if b2, ok := v.Entries[3].(buy); !ok || b2.Tran.FITID != "B2" {
		t.Fatalf("unexpected fourth entry: %#v", v.Entries[3])
	}
}

func TestUnmarshal_KindMismatch(t *testing.T) {
	n := txnNode("CREDIT", "20230105", "1", "T1")
	n.Children[3] = agg("FITID", leaf("X", "y"))
	_, err := ofxkit.Unmarshal[txn](n)
	iss, ok := ofxkit.AsIssues(err)
	if !ok || iss[0].Code != ofxkit.CodeKindMismatch || iss[0].Tag != "FITID" {
		t.Fatalf("expected kind_mismatch, got %v", err)
	}

	s := stmtNode()
	s.Children[3] = leaf("LEDGERBAL", "100")
	if _, err := ofxkit.Unmarshal[stmt](s); err == nil {
		t.Fatalf("expected kind_mismatch for leaf with text in aggregate position")
	}
}

func TestUnmarshal_EmptyLeafAsEmptyAggregate(t *testing.T) {
	s := stmtNode()
	s.Append(leaf("EXTRAS", ""))
	v, err := ofxkit.Unmarshal[stmt](s)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.Extras == nil || v.Extras.Note != nil || len(v.Extras.Flags) != 0 {
		t.Fatalf("expected empty extras, got %+v", v.Extras)
	}
}

func TestUnmarshal_MaxDepth(t *testing.T) {
	n := stmtNode(txnNode("CREDIT", "20230105", "1", "T1"))
	_, err := ofxkit.Unmarshal[stmt](n, ofxkit.Options{MaxDepth: 2})
	iss, ok := ofxkit.AsIssues(err)
	if !ok || len(iss.WithCode(ofxkit.CodeMaxDepth)) == 0 {
		t.Fatalf("expected max_depth, got %v", err)
	}
}

func TestUnmarshal_FailFastVersusCollect(t *testing.T) {
	n := agg("STMTTRN", leaf("TRNTYPE", "CREDIT"))
	_, err := ofxkit.Unmarshal[txn](n)
	iss, _ := ofxkit.AsIssues(err)
	if len(iss) != 3 {
		t.Fatalf("collect mode: expected 3 issues, got %v", iss)
	}
	_, err = ofxkit.Unmarshal[txn](n, ofxkit.Options{FailFast: true})
	iss, _ = ofxkit.AsIssues(err)
	if len(iss) != 1 {
		t.Fatalf("fail-fast: expected 1 issue, got %v", iss)
	}
}

func TestUnmarshal_WrongRootTag(t *testing.T) {
	_, err := ofxkit.Unmarshal[txn](agg("CCSTMTRS"))
	if !errors.Is(err, ofxkit.ErrStructural) {
		t.Fatalf("expected structural error, got %v", err)
	}
}

func TestUnmarshalInto_LeavesTargetUntouched(t *testing.T) {
	target := txn{FITID: "keep"}
	if _, err := ofxkit.UnmarshalInto(agg("STMTTRN"), &target); err == nil {
		t.Fatalf("expected error")
	}
	if target.FITID != "keep" {
		t.Fatalf("target modified on failure: %+v", target)
	}
	warnings, err := ofxkit.UnmarshalInto(txnNode("FEE", "20230105", "-1", "T9"), &target)
	if err != nil || len(warnings) != 0 {
		t.Fatalf("unexpected result: %v %v", warnings, err)
	}
	if target.FITID != "T9" || target.Type != "FEE" {
		t.Fatalf("target not populated: %+v", target)
	}
	if _, err := ofxkit.UnmarshalInto(txnNode("FEE", "20230105", "-1", "T9"), target); err == nil {
		t.Fatalf("expected error for non-pointer target")
	}
}

func TestUnmarshal_PointerTarget(t *testing.T) {
	v, err := ofxkit.Unmarshal[*txn](txnNode("FEE", "20230105", "-1", "T9"))
	if err != nil || v == nil || v.FITID != "T9" {
		t.Fatalf("unexpected result: %+v %v", v, err)
	}
}

func TestUnmarshal_EmptyLeafForPointerString(t *testing.T) {
	n := txnNode("CREDIT", "20230105", "10.00", "T1", leaf("DTUSER", ""), leaf("MEMO", ""))
	dm, err := ofxkit.UnmarshalWithMeta[txn](n)
	if err != nil {
		t.Fatalf("unmarshal err: %v", err)
	}
	if dm.Value.Memo == nil || *dm.Value.Memo != "" {
		t.Fatalf("expected non-nil empty memo, got %v", dm.Value.Memo)
	}
	// empty text is not a date, so the pointer stays nil
	if dm.Value.User != nil {
		t.Fatalf("expected nil user date, got %v", dm.Value.User)
	}
	if len(dm.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %+v", dm.Warnings)
	}
	if !dm.Presence.Has("/STMTTRN/MEMO", ofxkit.PresenceEmpty) {
		t.Fatalf("expected empty presence, got %v", dm.Presence)
	}
}
