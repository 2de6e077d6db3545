// Package seclist declares the SECLISTMSGSRQV1/RSV1 message sets: security
// list requests and the SECLIST of security descriptions that follows the
// response transactions.
package seclist

import (
	"github.com/shopspring/decimal"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/domain/common"
	"github.com/reoring/ofxkit/dsl"
	"github.com/reoring/ofxkit/envelope"
)

type StockType string

const (
	Common      StockType = "COMMON"
	Preferred   StockType = "PREFERRED"
	Convertible StockType = "CONVERTIBLE"
	OtherStock  StockType = "OTHER"
)

var KeyStockType = codec.Enum("STOCKTYPE", string(Common), string(Preferred), string(Convertible), string(OtherStock))

type DebtType string

const (
	Coupon DebtType = "COUPON"
	Zero   DebtType = "ZERO"
)

var KeyDebtType = codec.Enum("DEBTTYPE", string(Coupon), string(Zero))

// SecurityRequest is SECRQ. One of the identifiers is set.
type SecurityRequest struct {
	Security *common.SecurityID
	Ticker   *string
	FIID     *string
}

func (SecurityRequest) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[SecurityRequest]("SECRQ",
		dsl.OptionalChild(0, func(r *SecurityRequest) **common.SecurityID { return &r.Security }),
		dsl.Optional("TICKER", 10, codec.KeyString, func(r *SecurityRequest) **string { return &r.Ticker }),
		dsl.Optional("FIID", 20, codec.KeyString, func(r *SecurityRequest) **string { return &r.FIID }),
	).MustBuild()
}

// ListRequest is SECLISTRQ.
type ListRequest struct {
	Securities []SecurityRequest
}

func (ListRequest) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[ListRequest]("SECLISTRQ",
		dsl.Children(0, func(r *ListRequest) *[]SecurityRequest { return &r.Securities }).Required(),
	).MustBuild()
}

// ListResponse is SECLISTRS. It has no members: the securities themselves
// follow in SECLIST.
type ListResponse struct{}

func (ListResponse) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[ListResponse]("SECLISTRS").MustBuild()
}

// Info is SECINFO.
type Info struct {
	Security  common.SecurityID
	Name      string
	Ticker    *string
	FIID      *string
	Rating    *string
	UnitPrice *decimal.Decimal
	AsOf      *codec.DateTime
	Currency  *common.Currency
	Memo      *string
}

func (Info) Describe() *ofxkit.Declaration {
	type t = Info
	return dsl.Aggregate[t]("SECINFO",
		dsl.Child(0, func(x *t) *common.SecurityID { return &x.Security }).Required(),
		dsl.Element("SECNAME", 10, codec.KeyString, func(x *t) *string { return &x.Name }).Required(),
		dsl.Optional("TICKER", 20, codec.KeyString, func(x *t) **string { return &x.Ticker }),
		dsl.Optional("FIID", 30, codec.KeyString, func(x *t) **string { return &x.FIID }),
		dsl.Optional("RATING", 40, codec.KeyString, func(x *t) **string { return &x.Rating }),
		dsl.Optional("UNITPRICE", 50, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.UnitPrice }),
		dsl.Optional("DTASOF", 60, codec.KeyDateTime, func(x *t) **codec.DateTime { return &x.AsOf }),
		dsl.OptionalChild(70, func(x *t) **common.Currency { return &x.Currency }).Named("CURRENCY"),
		dsl.Optional("MEMO", 80, codec.KeyString, func(x *t) **string { return &x.Memo }),
	).MustBuild()
}

// Security is one entry of SECLIST.
type Security interface {
	ofxkit.Describer
	SecurityInfo() Info
}

type baseSecurity struct {
	Info Info
}

func (baseSecurity) Describe() *ofxkit.Declaration {
	return dsl.Embedded[baseSecurity](
		dsl.Child(0, func(b *baseSecurity) *Info { return &b.Info }).Required(),
	).MustBuild()
}

func (b baseSecurity) SecurityInfo() Info { return b.Info }

// StockInfo is STOCKINFO.
type StockInfo struct {
	baseSecurity
	Type       *StockType
	Yield      *decimal.Decimal
	YieldAsOf  *codec.DateTime
	AssetClass *string
}

func (StockInfo) Describe() *ofxkit.Declaration {
	type t = StockInfo
	return dsl.Aggregate[t]("STOCKINFO",
		dsl.Embed(func(x *t) *baseSecurity { return &x.baseSecurity }),
		dsl.Optional("STOCKTYPE", 10, KeyStockType, func(x *t) **StockType { return &x.Type }),
		dsl.Optional("YIELD", 20, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Yield }),
		dsl.Optional("DTYIELDASOF", 30, codec.KeyDateTime, func(x *t) **codec.DateTime { return &x.YieldAsOf }),
		dsl.Optional("ASSETCLASS", 40, codec.KeyString, func(x *t) **string { return &x.AssetClass }),
	).MustBuild()
}

// DebtInfo is DEBTINFO.
type DebtInfo struct {
	baseSecurity
	ParValue   decimal.Decimal
	Type       DebtType
	CouponRate *decimal.Decimal
	NextCoupon *codec.DateTime
	Maturity   *codec.DateTime
}

func (DebtInfo) Describe() *ofxkit.Declaration {
	type t = DebtInfo
	return dsl.Aggregate[t]("DEBTINFO",
		dsl.Embed(func(x *t) *baseSecurity { return &x.baseSecurity }),
		dsl.Element("PARVALUE", 10, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.ParValue }).Required(),
		dsl.Element("DEBTTYPE", 20, KeyDebtType, func(x *t) *DebtType { return &x.Type }).Required(),
		dsl.Optional("COUPONRT", 30, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.CouponRate }),
		dsl.Optional("DTCOUPON", 40, codec.KeyDateTime, func(x *t) **codec.DateTime { return &x.NextCoupon }),
		dsl.Optional("DTMAT", 50, codec.KeyDateTime, func(x *t) **codec.DateTime { return &x.Maturity }),
	).MustBuild()
}

// OtherInfo is OTHERINFO.
type OtherInfo struct {
	baseSecurity
	TypeDescription *string
	AssetClass      *string
}

func (OtherInfo) Describe() *ofxkit.Declaration {
	type t = OtherInfo
	return dsl.Aggregate[t]("OTHERINFO",
		dsl.Embed(func(x *t) *baseSecurity { return &x.baseSecurity }),
		dsl.Optional("TYPEDESC", 10, codec.KeyString, func(x *t) **string { return &x.TypeDescription }),
		dsl.Optional("ASSETCLASS", 20, codec.KeyString, func(x *t) **string { return &x.AssetClass }),
	).MustBuild()
}

// List is SECLIST.
type List struct {
	Securities []Security
}

func (List) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[List]("SECLIST",
		dsl.Variants(0, func(l *List) *[]Security { return &l.Securities },
			dsl.Variant[Security, StockInfo](),
			dsl.Variant[Security, DebtInfo](),
			dsl.Variant[Security, OtherInfo](),
		),
	).MustBuild()
}

// Lookup returns the security whose SECID unique id matches id.
func (l List) Lookup(id string) (Security, bool) {
	for _, s := range l.Securities {
		if s.SecurityInfo().Security.UniqueID == id {
			return s, true
		}
	}
	return nil, false
}

type ListTransactionRequest struct {
	envelope.RequestWrapper
	Message ListRequest
}

func (ListTransactionRequest) Describe() *ofxkit.Declaration {
	type t = ListTransactionRequest
	return dsl.Aggregate[t]("SECLISTTRNRQ",
		dsl.Embed(func(x *t) *envelope.RequestWrapper { return &x.RequestWrapper }),
		dsl.Child(30, func(x *t) *ListRequest { return &x.Message }).Required(),
	).MustBuild()
}

type ListTransactionResponse struct {
	envelope.ResponseWrapper
	Message ListResponse
}

func (ListTransactionResponse) Describe() *ofxkit.Declaration {
	type t = ListTransactionResponse
	return dsl.Aggregate[t]("SECLISTTRNRS",
		dsl.Embed(func(x *t) *envelope.ResponseWrapper { return &x.ResponseWrapper }),
		dsl.Child(30, func(x *t) *ListResponse { return &x.Message }).Required(),
	).MustBuild()
}

// RequestMessageSet is SECLISTMSGSRQV1.
type RequestMessageSet struct {
	Requests []ListTransactionRequest
}

func (RequestMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[RequestMessageSet]("SECLISTMSGSRQV1",
		dsl.Children(0, func(m *RequestMessageSet) *[]ListTransactionRequest { return &m.Requests }),
	).MustBuild()
}

func (*RequestMessageSet) MessageSetType() envelope.Type { return envelope.SecurityList }

func (m *RequestMessageSet) Transactions() []envelope.Transaction {
	return envelope.Collect(m.Requests)
}

// ResponseMessageSet is SECLISTMSGSRSV1.
type ResponseMessageSet struct {
	Responses []ListTransactionResponse
	List      *List
}

func (ResponseMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[ResponseMessageSet]("SECLISTMSGSRSV1",
		dsl.Children(0, func(m *ResponseMessageSet) *[]ListTransactionResponse { return &m.Responses }),
		dsl.OptionalChild(10, func(m *ResponseMessageSet) **List { return &m.List }),
	).MustBuild()
}

func (*ResponseMessageSet) MessageSetType() envelope.Type { return envelope.SecurityList }

func (m *ResponseMessageSet) Transactions() []envelope.Transaction {
	return envelope.Collect(m.Responses)
}
