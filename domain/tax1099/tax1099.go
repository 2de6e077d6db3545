// Package tax1099 declares the TAX1099MSGSRQV1/RSV1 message sets carrying
// 1099-B brokerage statements.
package tax1099

import (
	"github.com/shopspring/decimal"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/dsl"
	"github.com/reoring/ofxkit/envelope"
)

type Term string

const (
	LongTerm  Term = "LONG"
	ShortTerm Term = "SHORT"
)

var KeyTerm = codec.Enum("LONGSHORT", string(LongTerm), string(ShortTerm))

// Request is TAX1099RQ.
type Request struct {
	Years []string
}

func (Request) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[Request]("TAX1099RQ",
		dsl.Elements("TAXYEAR", 0, codec.KeyString, func(r *Request) *[]string { return &r.Years }).Required(),
	).MustBuild()
}

// PayerAddress is PAYERADDR.
type PayerAddress struct {
	Name1      string
	Name2      *string
	Address1   string
	Address2   *string
	Address3   *string
	City       string
	State      string
	PostalCode string
	Phone      *string
}

func (PayerAddress) Describe() *ofxkit.Declaration {
	type t = PayerAddress
	return dsl.Aggregate[t]("PAYERADDR",
		dsl.Element("PAYERNAME1", 0, codec.KeyString, func(x *t) *string { return &x.Name1 }).Required(),
		dsl.Optional("PAYERNAME2", 10, codec.KeyString, func(x *t) **string { return &x.Name2 }),
		dsl.Element("ADDR1", 20, codec.KeyString, func(x *t) *string { return &x.Address1 }).Required(),
		dsl.Optional("ADDR2", 30, codec.KeyString, func(x *t) **string { return &x.Address2 }),
		dsl.Optional("ADDR3", 40, codec.KeyString, func(x *t) **string { return &x.Address3 }),
		dsl.Element("CITY", 50, codec.KeyString, func(x *t) *string { return &x.City }).Required(),
		dsl.Element("STATE", 60, codec.KeyString, func(x *t) *string { return &x.State }).Required(),
		dsl.Element("POSTALCODE", 70, codec.KeyString, func(x *t) *string { return &x.PostalCode }).Required(),
		dsl.Optional("PHONE", 80, codec.KeyString, func(x *t) **string { return &x.Phone }),
	).MustBuild()
}

// RecipientAddress is RECADDR.
type RecipientAddress struct {
	Name1      string
	Name2      *string
	Address1   string
	Address2   *string
	Address3   *string
	City       string
	State      string
	PostalCode string
	Phone      *string
}

func (RecipientAddress) Describe() *ofxkit.Declaration {
	type t = RecipientAddress
	return dsl.Aggregate[t]("RECADDR",
		dsl.Element("RECNAME1", 0, codec.KeyString, func(x *t) *string { return &x.Name1 }).Required(),
		dsl.Optional("RECNAME2", 10, codec.KeyString, func(x *t) **string { return &x.Name2 }),
		dsl.Element("ADDR1", 20, codec.KeyString, func(x *t) *string { return &x.Address1 }).Required(),
		dsl.Optional("ADDR2", 30, codec.KeyString, func(x *t) **string { return &x.Address2 }),
		dsl.Optional("ADDR3", 40, codec.KeyString, func(x *t) **string { return &x.Address3 }),
		dsl.Element("CITY", 50, codec.KeyString, func(x *t) *string { return &x.City }).Required(),
		dsl.Element("STATE", 60, codec.KeyString, func(x *t) *string { return &x.State }).Required(),
		dsl.Element("POSTALCODE", 70, codec.KeyString, func(x *t) *string { return &x.PostalCode }).Required(),
		dsl.Optional("PHONE", 80, codec.KeyString, func(x *t) **string { return &x.Phone }),
	).MustBuild()
}

// ProceedsDetail is PROCDET_V100, one sale reported on a 1099-B.
type ProceedsDetail struct {
	Acquired    *codec.DateTime
	Sold        codec.DateTime
	Security    string
	Shares      *decimal.Decimal
	CostBasis   decimal.Decimal
	SalePrice   decimal.Decimal
	Term        *Term
	WashSale    *bool
	Noncovered  *bool
	BasisNotSet *bool
}

func (ProceedsDetail) Describe() *ofxkit.Declaration {
	type t = ProceedsDetail
	return dsl.Aggregate[t]("PROCDET_V100",
		dsl.Optional("DTAQD", 0, codec.KeyDateTime, func(x *t) **codec.DateTime { return &x.Acquired }),
		dsl.Element("DTSALE", 10, codec.KeyDateTime, func(x *t) *codec.DateTime { return &x.Sold }).Required(),
		dsl.Element("SECNAME", 20, codec.KeyString, func(x *t) *string { return &x.Security }).Required(),
		dsl.Optional("NUMSHRS", 30, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Shares }),
		dsl.Element("COSTBASIS", 40, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.CostBasis }).Required(),
		dsl.Element("SALESPR", 50, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.SalePrice }).Required(),
		dsl.Optional("LONGSHORT", 60, KeyTerm, func(x *t) **Term { return &x.Term }),
		dsl.Optional("WASHSALE", 70, codec.KeyBoolYN, func(x *t) **bool { return &x.WashSale }),
		dsl.Optional("NONCOVEREDSECURITY", 80, codec.KeyBoolYN, func(x *t) **bool { return &x.Noncovered }),
		dsl.Optional("BASISNOTSHOWN", 90, codec.KeyBoolYN, func(x *t) **bool { return &x.BasisNotSet }),
	).MustBuild()
}

// ExtendedInfo is EXTDBINFO_V100.
type ExtendedInfo struct {
	Details []ProceedsDetail
}

func (ExtendedInfo) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[ExtendedInfo]("EXTDBINFO_V100",
		dsl.Children(0, func(e *ExtendedInfo) *[]ProceedsDetail { return &e.Details }),
	).MustBuild()
}

// Form1099B is TAX1099B_V100.
type Form1099B struct {
	ServerID         string
	Year             string
	Extended         ExtendedInfo
	Payer            PayerAddress
	PayerID          string
	Recipient        RecipientAddress
	RecipientID      string
	RecipientAccount string
}

func (Form1099B) Describe() *ofxkit.Declaration {
	type t = Form1099B
	return dsl.Aggregate[t]("TAX1099B_V100",
		dsl.Element("SRVRTID", 0, codec.KeyString, func(x *t) *string { return &x.ServerID }).Required(),
		dsl.Element("TAXYEAR", 1, codec.KeyString, func(x *t) *string { return &x.Year }).Required(),
		dsl.Child(2, func(x *t) *ExtendedInfo { return &x.Extended }).Required(),
		dsl.Child(3, func(x *t) *PayerAddress { return &x.Payer }).Required(),
		dsl.Element("PAYERID", 4, codec.KeyString, func(x *t) *string { return &x.PayerID }).Required(),
		dsl.Child(5, func(x *t) *RecipientAddress { return &x.Recipient }).Required(),
		dsl.Element("RECID", 6, codec.KeyString, func(x *t) *string { return &x.RecipientID }).Required(),
		dsl.Element("RECACCT", 7, codec.KeyString, func(x *t) *string { return &x.RecipientAccount }).Required(),
	).MustBuild()
}

// Response is TAX1099RS.
type Response struct {
	Forms []Form1099B
}

func (Response) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[Response]("TAX1099RS",
		dsl.Children(0, func(r *Response) *[]Form1099B { return &r.Forms }),
	).MustBuild()
}

type TransactionRequest struct {
	envelope.RequestWrapper
	Message Request
}

func (TransactionRequest) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[TransactionRequest]("TAX1099TRNRQ",
		dsl.Embed(func(x *TransactionRequest) *envelope.RequestWrapper { return &x.RequestWrapper }),
		dsl.Child(30, func(x *TransactionRequest) *Request { return &x.Message }).Required(),
	).MustBuild()
}

type TransactionResponse struct {
	envelope.ResponseWrapper
	Message *Response
}

func (TransactionResponse) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[TransactionResponse]("TAX1099TRNRS",
		dsl.Embed(func(x *TransactionResponse) *envelope.ResponseWrapper { return &x.ResponseWrapper }),
		dsl.OptionalChild(30, func(x *TransactionResponse) **Response { return &x.Message }),
	).MustBuild()
}

// RequestMessageSet is TAX1099MSGSRQV1.
type RequestMessageSet struct {
	Requests []TransactionRequest
}

func (RequestMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[RequestMessageSet]("TAX1099MSGSRQV1",
		dsl.Children(0, func(m *RequestMessageSet) *[]TransactionRequest { return &m.Requests }),
	).MustBuild()
}

func (*RequestMessageSet) MessageSetType() envelope.Type { return envelope.Tax1099 }

func (m *RequestMessageSet) Transactions() []envelope.Transaction {
	return envelope.Collect(m.Requests)
}

// ResponseMessageSet is TAX1099MSGSRSV1.
type ResponseMessageSet struct {
	Responses []TransactionResponse
}

func (ResponseMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[ResponseMessageSet]("TAX1099MSGSRSV1",
		dsl.Children(0, func(m *ResponseMessageSet) *[]TransactionResponse { return &m.Responses }),
	).MustBuild()
}

func (*ResponseMessageSet) MessageSetType() envelope.Type { return envelope.Tax1099 }

func (m *ResponseMessageSet) Transactions() []envelope.Transaction {
	return envelope.Collect(m.Responses)
}
