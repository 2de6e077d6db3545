// Package creditcard declares the CREDITCARDMSGSRQV1/RSV1 message sets.
package creditcard

import (
	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/domain/common"
	"github.com/reoring/ofxkit/dsl"
	"github.com/reoring/ofxkit/envelope"
)

// StatementRequest is CCSTMTRQ.
type StatementRequest struct {
	Account common.CreditCardAccount
	Range   *common.StatementRange
}

func (StatementRequest) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[StatementRequest]("CCSTMTRQ",
		dsl.NamedChild("CCACCTFROM", 0, func(r *StatementRequest) *common.CreditCardAccount { return &r.Account }).Required(),
		dsl.OptionalChild(10, func(r *StatementRequest) **common.StatementRange { return &r.Range }),
	).MustBuild()
}

// StatementResponse is CCSTMTRS.
type StatementResponse struct {
	CurrencyCode string
	Account      common.CreditCardAccount
	Transactions *common.TransactionList
	Ledger       common.Balance
	Available    *common.Balance
}

func (StatementResponse) Describe() *ofxkit.Declaration {
	type s = StatementResponse
	return dsl.Aggregate[s]("CCSTMTRS",
		dsl.Element("CURDEF", 0, codec.KeyString, func(r *s) *string { return &r.CurrencyCode }).Required(),
		dsl.NamedChild("CCACCTFROM", 10, func(r *s) *common.CreditCardAccount { return &r.Account }).Required(),
		dsl.OptionalChild(20, func(r *s) **common.TransactionList { return &r.Transactions }),
		dsl.NamedChild("LEDGERBAL", 30, func(r *s) *common.Balance { return &r.Ledger }).Required(),
		dsl.OptionalChild(40, func(r *s) **common.Balance { return &r.Available }).Named("AVAILBAL"),
	).MustBuild()
}

type StatementTransactionRequest struct {
	envelope.RequestWrapper
	Message StatementRequest
}

func (StatementTransactionRequest) Describe() *ofxkit.Declaration {
	type t = StatementTransactionRequest
	return dsl.Aggregate[t]("CCSTMTTRNRQ",
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
	return dsl.Aggregate[t]("CCSTMTTRNRS",
		dsl.Embed(func(x *t) *envelope.ResponseWrapper { return &x.ResponseWrapper }),
		dsl.OptionalChild(30, func(x *t) **StatementResponse { return &x.Message }),
	).MustBuild()
}

// RequestMessageSet is CREDITCARDMSGSRQV1.
type RequestMessageSet struct {
	Statements []StatementTransactionRequest
}

func (RequestMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[RequestMessageSet]("CREDITCARDMSGSRQV1",
		dsl.Children(0, func(m *RequestMessageSet) *[]StatementTransactionRequest { return &m.Statements }),
	).MustBuild()
}

func (*RequestMessageSet) MessageSetType() envelope.Type { return envelope.CreditCard }

func (m *RequestMessageSet) Transactions() []envelope.Transaction {
	return envelope.Collect(m.Statements)
}

// ResponseMessageSet is CREDITCARDMSGSRSV1.
type ResponseMessageSet struct {
	Statements []StatementTransactionResponse
}

func (ResponseMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[ResponseMessageSet]("CREDITCARDMSGSRSV1",
		dsl.Children(0, func(m *ResponseMessageSet) *[]StatementTransactionResponse { return &m.Statements }),
	).MustBuild()
}

func (*ResponseMessageSet) MessageSetType() envelope.Type { return envelope.CreditCard }

func (m *ResponseMessageSet) Transactions() []envelope.Transaction {
	return envelope.Collect(m.Statements)
}
