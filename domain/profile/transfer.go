package profile

import (
	"github.com/shopspring/decimal"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/dsl"
	"github.com/reoring/ofxkit/envelope"
)

type DayOfWeek string

const (
	Monday    DayOfWeek = "MONDAY"
	Tuesday   DayOfWeek = "TUESDAY"
	Wednesday DayOfWeek = "WEDNESDAY"
	Thursday  DayOfWeek = "THURSDAY"
	Friday    DayOfWeek = "FRIDAY"
	Saturday  DayOfWeek = "SATURDAY"
	Sunday    DayOfWeek = "SUNDAY"
)

var KeyDayOfWeek = codec.Enum("DAYOFWEEK",
	string(Monday), string(Tuesday), string(Wednesday), string(Thursday),
	string(Friday), string(Saturday), string(Sunday))

// TransferProfile is XFERPROF. EndTime keeps the server's HHMMSS literal.
type TransferProfile struct {
	DaysOff          []DayOfWeek
	EndTime          string
	CanSchedule      bool
	CanRecur         bool
	CanModify        bool
	CanModifyModels  bool
	ModelWindow      int
	DaysWith         int
	DefaultDaysToPay int
}

func (TransferProfile) Describe() *ofxkit.Declaration {
	type t = TransferProfile
	return dsl.Aggregate[t]("XFERPROF",
		dsl.Elements("PROCDAYSOFF", 0, KeyDayOfWeek, func(x *t) *[]DayOfWeek { return &x.DaysOff }),
		dsl.Element("PROCENDTM", 10, codec.KeyString, func(x *t) *string { return &x.EndTime }).Required(),
		dsl.Element("CANSCHED", 20, codec.KeyBoolYN, func(x *t) *bool { return &x.CanSchedule }).Required(),
		dsl.Element("CANRECUR", 30, codec.KeyBoolYN, func(x *t) *bool { return &x.CanRecur }).Required(),
		dsl.Element("CANMODXFERS", 40, codec.KeyBoolYN, func(x *t) *bool { return &x.CanModify }).Required(),
		dsl.Element("CANMODMDLS", 50, codec.KeyBoolYN, func(x *t) *bool { return &x.CanModifyModels }).Required(),
		dsl.Element("MODELWND", 60, codec.KeyInteger, func(x *t) *int { return &x.ModelWindow }).Required(),
		dsl.Element("DAYSWITH", 70, codec.KeyInteger, func(x *t) *int { return &x.DaysWith }).Required(),
		dsl.Element("DFLTDAYSTOPAY", 80, codec.KeyInteger, func(x *t) *int { return &x.DefaultDaysToPay }).Required(),
	).MustBuild()
}

// StopCheckProfile is STPCHKPROF.
type StopCheckProfile struct {
	DaysOff     []DayOfWeek
	EndTime     string
	CanUseRange bool
	CanUseDesc  bool
	Fee         decimal.Decimal
}

func (StopCheckProfile) Describe() *ofxkit.Declaration {
	type t = StopCheckProfile
	return dsl.Aggregate[t]("STPCHKPROF",
		dsl.Elements("PROCDAYSOFF", 0, KeyDayOfWeek, func(x *t) *[]DayOfWeek { return &x.DaysOff }),
		dsl.Element("PROCENDTM", 10, codec.KeyString, func(x *t) *string { return &x.EndTime }).Required(),
		dsl.Element("CANUSERANGE", 20, codec.KeyBoolYN, func(x *t) *bool { return &x.CanUseRange }).Required(),
		dsl.Element("CANUSEDESC", 30, codec.KeyBoolYN, func(x *t) *bool { return &x.CanUseDesc }).Required(),
		dsl.Element("STPCHKFEE", 40, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.Fee }).Required(),
	).MustBuild()
}

type InterbankV1 struct {
	versionBase
	Transfer         TransferProfile
	CanBillPay       bool
	CancelWindow     int
	DomesticFee      decimal.Decimal
	InternationalFee decimal.Decimal
}

func (InterbankV1) Describe() *ofxkit.Declaration {
	type t = InterbankV1
	return dsl.Aggregate[t]("INTERXFERMSGSETV1",
		dsl.Embed(func(v *t) *versionBase { return &v.versionBase }),
		dsl.Child(10, func(v *t) *TransferProfile { return &v.Transfer }).Required(),
		dsl.Element("CANBILLPAY", 20, codec.KeyBoolYN, func(v *t) *bool { return &v.CanBillPay }).Required(),
		dsl.Element("CANCWND", 30, codec.KeyInteger, func(v *t) *int { return &v.CancelWindow }).Required(),
		dsl.Element("DOMXFERFEE", 40, codec.KeyAmount, func(v *t) *decimal.Decimal { return &v.DomesticFee }).Required(),
		dsl.Element("INTLXFERFEE", 50, codec.KeyAmount, func(v *t) *decimal.Decimal { return &v.InternationalFee }).Required(),
	).MustBuild()
}

// InterbankInfoSet is INTERXFERMSGSET.
type InterbankInfoSet struct{ V1 []InterbankV1 }

func (InterbankInfoSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[InterbankInfoSet]("INTERXFERMSGSET",
		dsl.Children(0, func(s *InterbankInfoSet) *[]InterbankV1 { return &s.V1 }).Required(),
	).MustBuild()
}

func (InterbankInfoSet) InfoType() envelope.Type { return envelope.Interbank }

func (s InterbankInfoSet) Versions() []Core {
	return cores(s.V1, func(v InterbankV1) Core { return v.Core })
}
