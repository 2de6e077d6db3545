package profile

import (
	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/dsl"
	"github.com/reoring/ofxkit/envelope"
)

type SyncMode string

const (
	SyncFull SyncMode = "FULL"
	SyncLite SyncMode = "LITE"
)

var KeySyncMode = codec.Enum("SYNCMODE", string(SyncFull), string(SyncLite))

type ApplicationSecurity string

const (
	SecurityNone  ApplicationSecurity = "NONE"
	SecurityType1 ApplicationSecurity = "TYPE1"
)

var KeyApplicationSecurity = codec.Enum("OFXSEC", string(SecurityNone), string(SecurityType1))

// Core is MSGSETCORE, the part every version-specific message set profile
// shares.
type Core struct {
	Version          int
	URL              string
	Security         ApplicationSecurity
	TransportSecured bool
	SignonRealm      string
	Languages        []string
	SyncMode         SyncMode
	RefreshSupported *bool
	RespFileErrors   bool
	ServiceProvider  *string
}

func (Core) Describe() *ofxkit.Declaration {
	type t = Core
	return dsl.Aggregate[t]("MSGSETCORE",
		dsl.Element("VER", 0, codec.KeyInteger, func(x *t) *int { return &x.Version }).Required(),
		dsl.Element("URL", 10, codec.KeyString, func(x *t) *string { return &x.URL }).Required(),
		dsl.Element("OFXSEC", 20, KeyApplicationSecurity, func(x *t) *ApplicationSecurity { return &x.Security }).Required(),
		dsl.Element("TRANSPSEC", 30, codec.KeyBoolYN, func(x *t) *bool { return &x.TransportSecured }).Required(),
		dsl.Element("SIGNONREALM", 40, codec.KeyString, func(x *t) *string { return &x.SignonRealm }).Required(),
		dsl.Elements("LANGUAGE", 50, codec.KeyString, func(x *t) *[]string { return &x.Languages }).Required(),
		dsl.Element("SYNCMODE", 60, KeySyncMode, func(x *t) *SyncMode { return &x.SyncMode }).Required(),
		dsl.Optional("REFRESHSUPT", 70, codec.KeyBoolYN, func(x *t) **bool { return &x.RefreshSupported }),
		dsl.Element("RESPFILEER", 80, codec.KeyBoolYN, func(x *t) *bool { return &x.RespFileErrors }).Required(),
		dsl.Optional("SPNAME", 90, codec.KeyString, func(x *t) **string { return &x.ServiceProvider }),
	).MustBuild()
}

// MessageSetInfo is one entry of MSGSETLIST.
type MessageSetInfo interface {
	ofxkit.Describer
	InfoType() envelope.Type
	Versions() []Core
}

type versionBase struct {
	Core Core
}

func (versionBase) Describe() *ofxkit.Declaration {
	return dsl.Embedded[versionBase](
		dsl.Child(0, func(v *versionBase) *Core { return &v.Core }).Required(),
	).MustBuild()
}

type SignonV1 struct {
	versionBase
}

func (SignonV1) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[SignonV1]("SIGNONMSGSETV1",
		dsl.Embed(func(v *SignonV1) *versionBase { return &v.versionBase }),
	).MustBuild()
}

// EmailProfile is EMAILPROF.
type EmailProfile struct {
	CanEmail  bool
	CanNotify bool
}

func (EmailProfile) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[EmailProfile]("EMAILPROF",
		dsl.Element("CANEMAIL", 0, codec.KeyBoolYN, func(e *EmailProfile) *bool { return &e.CanEmail }).Required(),
		dsl.Element("CANNOTIFY", 10, codec.KeyBoolYN, func(e *EmailProfile) *bool { return &e.CanNotify }).Required(),
	).MustBuild()
}

type BankingV1 struct {
	versionBase
	ClosingAvailable bool
	Transfer         *TransferProfile
	StopCheck        *StopCheckProfile
	Email            EmailProfile
}

func (BankingV1) Describe() *ofxkit.Declaration {
	type t = BankingV1
	return dsl.Aggregate[t]("BANKMSGSETV1",
		dsl.Embed(func(v *t) *versionBase { return &v.versionBase }),
		dsl.Element("CLOSINGAVAIL", 20, codec.KeyBoolYN, func(v *t) *bool { return &v.ClosingAvailable }).Required(),
		dsl.OptionalChild(24, func(v *t) **TransferProfile { return &v.Transfer }),
		dsl.OptionalChild(27, func(v *t) **StopCheckProfile { return &v.StopCheck }),
		dsl.Child(30, func(v *t) *EmailProfile { return &v.Email }).Required(),
	).MustBuild()
}

type CreditCardV1 struct {
	versionBase
	ClosingAvailable bool
}

func (CreditCardV1) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[CreditCardV1]("CREDITCARDMSGSETV1",
		dsl.Embed(func(v *CreditCardV1) *versionBase { return &v.versionBase }),
		dsl.Element("CLOSINGAVAIL", 20, codec.KeyBoolYN, func(v *CreditCardV1) *bool { return &v.ClosingAvailable }).Required(),
	).MustBuild()
}

type InvestmentV1 struct {
	versionBase
	TransactionDownload bool
	OpenOrderDownload   bool
	PositionDownload    bool
	BalanceDownload     bool
	CanEmail            bool
}

func (InvestmentV1) Describe() *ofxkit.Declaration {
	type t = InvestmentV1
	return dsl.Aggregate[t]("INVSTMTMSGSETV1",
		dsl.Embed(func(v *t) *versionBase { return &v.versionBase }),
		dsl.Element("TRANDNLD", 10, codec.KeyBoolYN, func(v *t) *bool { return &v.TransactionDownload }).Required(),
		dsl.Element("OODNLD", 20, codec.KeyBoolYN, func(v *t) *bool { return &v.OpenOrderDownload }).Required(),
		dsl.Element("POSDNLD", 30, codec.KeyBoolYN, func(v *t) *bool { return &v.PositionDownload }).Required(),
		dsl.Element("BALDNLD", 40, codec.KeyBoolYN, func(v *t) *bool { return &v.BalanceDownload }).Required(),
		dsl.Element("CANEMAIL", 50, codec.KeyBoolYN, func(v *t) *bool { return &v.CanEmail }).Required(),
	).MustBuild()
}

type SecurityListV1 struct {
	versionBase
	CanDownload bool
}

func (SecurityListV1) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[SecurityListV1]("SECLISTMSGSETV1",
		dsl.Embed(func(v *SecurityListV1) *versionBase { return &v.versionBase }),
		dsl.Element("SECLISTRQDNLD", 10, codec.KeyBoolYN, func(v *SecurityListV1) *bool { return &v.CanDownload }).Required(),
	).MustBuild()
}

// SignonInfoSet is SIGNONMSGSET.
type SignonInfoSet struct{ V1 []SignonV1 }

func (SignonInfoSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[SignonInfoSet]("SIGNONMSGSET",
		dsl.Children(0, func(s *SignonInfoSet) *[]SignonV1 { return &s.V1 }).Required(),
	).MustBuild()
}

func (SignonInfoSet) InfoType() envelope.Type { return envelope.Signon }

func (s SignonInfoSet) Versions() []Core { return cores(s.V1, func(v SignonV1) Core { return v.Core }) }

// BankingInfoSet is BANKMSGSET.
type BankingInfoSet struct{ V1 []BankingV1 }

func (BankingInfoSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[BankingInfoSet]("BANKMSGSET",
		dsl.Children(0, func(s *BankingInfoSet) *[]BankingV1 { return &s.V1 }).Required(),
	).MustBuild()
}

func (BankingInfoSet) InfoType() envelope.Type { return envelope.Banking }

func (s BankingInfoSet) Versions() []Core { return cores(s.V1, func(v BankingV1) Core { return v.Core }) }

// CreditCardInfoSet is CREDITCARDMSGSET.
type CreditCardInfoSet struct{ V1 []CreditCardV1 }

func (CreditCardInfoSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[CreditCardInfoSet]("CREDITCARDMSGSET",
		dsl.Children(0, func(s *CreditCardInfoSet) *[]CreditCardV1 { return &s.V1 }).Required(),
	).MustBuild()
}

func (CreditCardInfoSet) InfoType() envelope.Type { return envelope.CreditCard }

func (s CreditCardInfoSet) Versions() []Core {
	return cores(s.V1, func(v CreditCardV1) Core { return v.Core })
}

// InvestmentInfoSet is INVSTMTMSGSET.
type InvestmentInfoSet struct{ V1 []InvestmentV1 }

func (InvestmentInfoSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[InvestmentInfoSet]("INVSTMTMSGSET",
		dsl.Children(0, func(s *InvestmentInfoSet) *[]InvestmentV1 { return &s.V1 }).Required(),
	).MustBuild()
}

func (InvestmentInfoSet) InfoType() envelope.Type { return envelope.Investment }

func (s InvestmentInfoSet) Versions() []Core {
	return cores(s.V1, func(v InvestmentV1) Core { return v.Core })
}

// SecurityListInfoSet is SECLISTMSGSET.
type SecurityListInfoSet struct{ V1 []SecurityListV1 }

func (SecurityListInfoSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[SecurityListInfoSet]("SECLISTMSGSET",
		dsl.Children(0, func(s *SecurityListInfoSet) *[]SecurityListV1 { return &s.V1 }).Required(),
	).MustBuild()
}

func (SecurityListInfoSet) InfoType() envelope.Type { return envelope.SecurityList }

func (s SecurityListInfoSet) Versions() []Core {
	return cores(s.V1, func(v SecurityListV1) Core { return v.Core })
}

func cores[V any](vs []V, core func(V) Core) []Core {
	out := make([]Core, 0, len(vs))
	for _, v := range vs {
		out = append(out, core(v))
	}
	return out
}

// MessageSetList is MSGSETLIST.
type MessageSetList struct {
	Sets []MessageSetInfo
}

func (MessageSetList) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[MessageSetList]("MSGSETLIST",
		dsl.Variants(0, func(l *MessageSetList) *[]MessageSetInfo { return &l.Sets },
			dsl.Variant[MessageSetInfo, SignonInfoSet](),
			dsl.Variant[MessageSetInfo, BankingInfoSet](),
			dsl.Variant[MessageSetInfo, CreditCardInfoSet](),
			dsl.Variant[MessageSetInfo, InvestmentInfoSet](),
			dsl.Variant[MessageSetInfo, SecurityListInfoSet](),
			dsl.Variant[MessageSetInfo, InterbankInfoSet](),
		),
	).MustBuild()
}

// Supports reports whether the list advertises message sets of type t.
func (l MessageSetList) Supports(t envelope.Type) bool {
	for _, s := range l.Sets {
		if s.InfoType() == t {
			return true
		}
	}
	return false
}
