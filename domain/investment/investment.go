// Package investment declares the INVSTMTMSGSRQV1/RSV1 message sets:
// investment statements with their trade list, positions and balances.
package investment

import (
	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/domain/common"
	"github.com/reoring/ofxkit/dsl"
	"github.com/reoring/ofxkit/envelope"
)

// PositionRange is INCPOS.
type PositionRange struct {
	AsOf    *codec.DateTime
	Include bool
}

func (PositionRange) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[PositionRange]("INCPOS",
		dsl.Optional("DTASOF", 0, codec.KeyDateTime, func(r *PositionRange) **codec.DateTime { return &r.AsOf }),
		dsl.Element("INCLUDE", 10, codec.KeyBoolYN, func(r *PositionRange) *bool { return &r.Include }).Required(),
	).MustBuild()
}

// StatementRequest is INVSTMTRQ.
type StatementRequest struct {
	Account          common.InvestmentAccount
	Range            *common.StatementRange
	IncludeOpenOrder bool
	Positions        PositionRange
	IncludeBalance   bool
}

func (StatementRequest) Describe() *ofxkit.Declaration {
	type t = StatementRequest
	return dsl.Aggregate[t]("INVSTMTRQ",
		dsl.NamedChild("INVACCTFROM", 0, func(x *t) *common.InvestmentAccount { return &x.Account }).Required(),
		dsl.OptionalChild(10, func(x *t) **common.StatementRange { return &x.Range }),
		dsl.Element("INCOO", 20, codec.KeyBoolYN, func(x *t) *bool { return &x.IncludeOpenOrder }).Required(),
		dsl.Child(30, func(x *t) *PositionRange { return &x.Positions }).Required(),
		dsl.Element("INCBAL", 40, codec.KeyBoolYN, func(x *t) *bool { return &x.IncludeBalance }).Required(),
	).MustBuild()
}

// StatementResponse is INVSTMTRS.
type StatementResponse struct {
	AsOf         codec.DateTime
	CurrencyCode string
	Account      common.InvestmentAccount
	Transactions *TransactionList
	Positions    *PositionList
	Balance      *Balance
}

func (StatementResponse) Describe() *ofxkit.Declaration {
	type t = StatementResponse
	return dsl.Aggregate[t]("INVSTMTRS",
		dsl.Element("DTASOF", 0, codec.KeyDateTime, func(x *t) *codec.DateTime { return &x.AsOf }).Required(),
		dsl.Element("CURDEF", 10, codec.KeyString, func(x *t) *string { return &x.CurrencyCode }).Required(),
		dsl.NamedChild("INVACCTFROM", 20, func(x *t) *common.InvestmentAccount { return &x.Account }).Required(),
		dsl.OptionalChild(30, func(x *t) **TransactionList { return &x.Transactions }),
		dsl.OptionalChild(40, func(x *t) **PositionList { return &x.Positions }),
		dsl.OptionalChild(50, func(x *t) **Balance { return &x.Balance }),
	).MustBuild()
}

type StatementTransactionRequest struct {
	envelope.RequestWrapper
	Message StatementRequest
}

func (StatementTransactionRequest) Describe() *ofxkit.Declaration {
	type t = StatementTransactionRequest
	return dsl.Aggregate[t]("INVSTMTTRNRQ",
		dsl.Embed(func(x *t) *envelope.RequestWrapper { return &x.RequestWrapper }),
		dsl.Child(30, func(x *t) *StatementRequest { return &x.Message }).Required(),
	).MustBuild()
}

type StatementTransactionResponse struct {
	envelope.ResponseWrapper
	Message *StatementResponse
}

func (StatementTransactionResponse) Describe() *ofxkit.Declaration {
	type t = StatementTransactionResponse
	return dsl.Aggregate[t]("INVSTMTTRNRS",
		dsl.Embed(func(x *t) *envelope.ResponseWrapper { return &x.ResponseWrapper }),
		dsl.OptionalChild(30, func(x *t) **StatementResponse { return &x.Message }),
	).MustBuild()
}

// RequestMessageSet is INVSTMTMSGSRQV1.
type RequestMessageSet struct {
	Statements []StatementTransactionRequest
}

func (RequestMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[RequestMessageSet]("INVSTMTMSGSRQV1",
		dsl.Children(0, func(m *RequestMessageSet) *[]StatementTransactionRequest { return &m.Statements }),
	).MustBuild()
}

func (*RequestMessageSet) MessageSetType() envelope.Type { return envelope.Investment }

func (m *RequestMessageSet) Transactions() []envelope.Transaction {
	return envelope.Collect(m.Statements)
}

// ResponseMessageSet is INVSTMTMSGSRSV1.
type ResponseMessageSet struct {
	Statements []StatementTransactionResponse
}

func (ResponseMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[ResponseMessageSet]("INVSTMTMSGSRSV1",
		dsl.Children(0, func(m *ResponseMessageSet) *[]StatementTransactionResponse { return &m.Statements }),
	).MustBuild()
}

func (*ResponseMessageSet) MessageSetType() envelope.Type { return envelope.Investment }

func (m *ResponseMessageSet) Transactions() []envelope.Transaction {
	return envelope.Collect(m.Statements)
}
