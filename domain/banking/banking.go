// Package banking declares the BANKMSGSRQV1/RSV1 statement message sets.
package banking

import (
	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/domain/common"
	"github.com/reoring/ofxkit/dsl"
	"github.com/reoring/ofxkit/envelope"
)

// StatementRequest is STMTRQ.
type StatementRequest struct {
	Account common.BankAccount
	Range   *common.StatementRange
}

func (StatementRequest) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[StatementRequest]("STMTRQ",
		dsl.NamedChild("BANKACCTFROM", 0, func(r *StatementRequest) *common.BankAccount { return &r.Account }).Required(),
		dsl.OptionalChild(10, func(r *StatementRequest) **common.StatementRange { return &r.Range }),
	).MustBuild()
}

// StatementResponse is STMTRS.
type StatementResponse struct {
	CurrencyCode  string
	Account       common.BankAccount
	Transactions  *common.TransactionList
	Ledger        common.Balance
	Available     *common.Balance
	MarketingInfo *string
}

func (StatementResponse) Describe() *ofxkit.Declaration {
	type s = StatementResponse
	return dsl.Aggregate[s]("STMTRS",
		dsl.Element("CURDEF", 0, codec.KeyString, func(r *s) *string { return &r.CurrencyCode }).Required(),
		dsl.NamedChild("BANKACCTFROM", 10, func(r *s) *common.BankAccount { return &r.Account }).Required(),
		dsl.OptionalChild(20, func(r *s) **common.TransactionList { return &r.Transactions }),
		dsl.NamedChild("LEDGERBAL", 30, func(r *s) *common.Balance { return &r.Ledger }).Required(),
		dsl.OptionalChild(40, func(r *s) **common.Balance { return &r.Available }).Named("AVAILBAL"),
		dsl.Optional("MKTGINFO", 50, codec.KeyString, func(r *s) **string { return &r.MarketingInfo }),
	).MustBuild()
}

// StatementTransactionRequest is STMTTRNRQ.
type StatementTransactionRequest struct {
	envelope.RequestWrapper
	Message StatementRequest
}

func (StatementTransactionRequest) Describe() *ofxkit.Declaration {
	type t = StatementTransactionRequest
	return dsl.Aggregate[t]("STMTTRNRQ",
		dsl.Embed(func(x *t) *envelope.RequestWrapper { return &x.RequestWrapper }),
		dsl.Child(30, func(x *t) *StatementRequest { return &x.Message }).Required(),
	).MustBuild()
}

// StatementTransactionResponse is STMTTRNRS. Message is nil when the server
// rejected the request.
type StatementTransactionResponse struct {
	envelope.ResponseWrapper
	Message *StatementResponse
}

func (StatementTransactionResponse) Describe() *ofxkit.Declaration {
	type t = StatementTransactionResponse
	return dsl.Aggregate[t]("STMTTRNRS",
		dsl.Embed(func(x *t) *envelope.ResponseWrapper { return &x.ResponseWrapper }),
		dsl.OptionalChild(30, func(x *t) **StatementResponse { return &x.Message }),
	).MustBuild()
}

// RequestMessageSet is BANKMSGSRQV1.
type RequestMessageSet struct {
	Statements []StatementTransactionRequest
}

func (RequestMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[RequestMessageSet]("BANKMSGSRQV1",
		dsl.Children(0, func(m *RequestMessageSet) *[]StatementTransactionRequest { return &m.Statements }),
	).MustBuild()
}

func (*RequestMessageSet) MessageSetType() envelope.Type { return envelope.Banking }

func (m *RequestMessageSet) Transactions() []envelope.Transaction {
	return envelope.Collect(m.Statements)
}

// ResponseMessageSet is BANKMSGSRSV1.
type ResponseMessageSet struct {
	Statements []StatementTransactionResponse
}

func (ResponseMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[ResponseMessageSet]("BANKMSGSRSV1",
		dsl.Children(0, func(m *ResponseMessageSet) *[]StatementTransactionResponse { return &m.Statements }),
	).MustBuild()
}

func (*ResponseMessageSet) MessageSetType() envelope.Type { return envelope.Banking }

func (m *ResponseMessageSet) Transactions() []envelope.Transaction {
	return envelope.Collect(m.Statements)
}

// Statement returns the first successful statement response, or nil.
func (m *ResponseMessageSet) Statement() *StatementResponse {
	for i := range m.Statements {
		if m.Statements[i].Message != nil {
			return m.Statements[i].Message
		}
	}
	return nil
}
