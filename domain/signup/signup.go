// Package signup declares the SIGNUPMSGSRQV1/RSV1 message sets used to
// enumerate the accounts a user holds at an FI.
package signup

import (
	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/domain/common"
	"github.com/reoring/ofxkit/dsl"
	"github.com/reoring/ofxkit/envelope"
)

type ServiceStatus string

const (
	Available ServiceStatus = "AVAIL"
	Pending   ServiceStatus = "PEND"
	Active    ServiceStatus = "ACTIVE"
)

var KeyServiceStatus = codec.Enum("SVCSTATUS", string(Available), string(Pending), string(Active))

// AccountInfoRequest is ACCTINFORQ.
type AccountInfoRequest struct {
	LastUpdated codec.DateTime
}

func (AccountInfoRequest) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[AccountInfoRequest]("ACCTINFORQ",
		dsl.Element("DTACCTUP", 0, codec.KeyDateTime, func(r *AccountInfoRequest) *codec.DateTime { return &r.LastUpdated }).Required(),
	).MustBuild()
}

// BankAccountInfo is BANKACCTINFO.
type BankAccountInfo struct {
	Account          common.BankAccount
	SupportsDownload bool
	TransferSource   bool
	TransferDest     bool
	Status           ServiceStatus
}

func (BankAccountInfo) Describe() *ofxkit.Declaration {
	type t = BankAccountInfo
	return dsl.Aggregate[t]("BANKACCTINFO",
		dsl.NamedChild("BANKACCTFROM", 0, func(x *t) *common.BankAccount { return &x.Account }).Required(),
		dsl.Element("SUPTXDL", 10, codec.KeyBoolYN, func(x *t) *bool { return &x.SupportsDownload }).Required(),
		dsl.Element("XFERSRC", 20, codec.KeyBoolYN, func(x *t) *bool { return &x.TransferSource }).Required(),
		dsl.Element("XFERDEST", 30, codec.KeyBoolYN, func(x *t) *bool { return &x.TransferDest }).Required(),
		dsl.Element("SVCSTATUS", 40, KeyServiceStatus, func(x *t) *ServiceStatus { return &x.Status }).Required(),
	).MustBuild()
}

// CreditCardAccountInfo is CCACCTINFO.
type CreditCardAccountInfo struct {
	Account          common.CreditCardAccount
	SupportsDownload bool
	TransferSource   bool
	TransferDest     bool
	Status           ServiceStatus
}

func (CreditCardAccountInfo) Describe() *ofxkit.Declaration {
	type t = CreditCardAccountInfo
	return dsl.Aggregate[t]("CCACCTINFO",
		dsl.NamedChild("CCACCTFROM", 0, func(x *t) *common.CreditCardAccount { return &x.Account }).Required(),
		dsl.Element("SUPTXDL", 10, codec.KeyBoolYN, func(x *t) *bool { return &x.SupportsDownload }).Required(),
		dsl.Element("XFERSRC", 20, codec.KeyBoolYN, func(x *t) *bool { return &x.TransferSource }).Required(),
		dsl.Element("XFERDEST", 30, codec.KeyBoolYN, func(x *t) *bool { return &x.TransferDest }).Required(),
		dsl.Element("SVCSTATUS", 40, KeyServiceStatus, func(x *t) *ServiceStatus { return &x.Status }).Required(),
	).MustBuild()
}

// InvestmentAccountInfo is INVACCTINFO.
type InvestmentAccountInfo struct {
	Account     common.InvestmentAccount
	ProductType *string
	Checking    bool
	Status      ServiceStatus
}

func (InvestmentAccountInfo) Describe() *ofxkit.Declaration {
	type t = InvestmentAccountInfo
	return dsl.Aggregate[t]("INVACCTINFO",
		dsl.NamedChild("INVACCTFROM", 0, func(x *t) *common.InvestmentAccount { return &x.Account }).Required(),
		dsl.Optional("USPRODUCTTYPE", 10, codec.KeyString, func(x *t) **string { return &x.ProductType }),
		dsl.Element("CHECKING", 20, codec.KeyBoolYN, func(x *t) *bool { return &x.Checking }).Required(),
		dsl.Element("SVCSTATUS", 30, KeyServiceStatus, func(x *t) *ServiceStatus { return &x.Status }).Required(),
	).MustBuild()
}

// AccountInfo is ACCTINFO. Exactly one of the three account kinds is set.
type AccountInfo struct {
	Description *string
	Phone       *string
	Bank        *BankAccountInfo
	CreditCard  *CreditCardAccountInfo
	Investment  *InvestmentAccountInfo
}

func (AccountInfo) Describe() *ofxkit.Declaration {
	type t = AccountInfo
	return dsl.Aggregate[t]("ACCTINFO",
		dsl.Optional("DESC", 0, codec.KeyString, func(x *t) **string { return &x.Description }),
		dsl.Optional("PHONE", 10, codec.KeyString, func(x *t) **string { return &x.Phone }),
		dsl.OptionalChild(20, func(x *t) **BankAccountInfo { return &x.Bank }),
		dsl.OptionalChild(30, func(x *t) **CreditCardAccountInfo { return &x.CreditCard }),
		dsl.OptionalChild(40, func(x *t) **InvestmentAccountInfo { return &x.Investment }),
	).MustBuild()
}

// AccountInfoResponse is ACCTINFORS.
type AccountInfoResponse struct {
	LastUpdated codec.DateTime
	Accounts    []AccountInfo
}

func (AccountInfoResponse) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[AccountInfoResponse]("ACCTINFORS",
		dsl.Element("DTACCTUP", 0, codec.KeyDateTime, func(r *AccountInfoResponse) *codec.DateTime { return &r.LastUpdated }).Required(),
		dsl.Children(10, func(r *AccountInfoResponse) *[]AccountInfo { return &r.Accounts }),
	).MustBuild()
}

type AccountInfoTransactionRequest struct {
	envelope.RequestWrapper
	Message AccountInfoRequest
}

func (AccountInfoTransactionRequest) Describe() *ofxkit.Declaration {
	type t = AccountInfoTransactionRequest
	return dsl.Aggregate[t]("ACCTINFOTRNRQ",
		dsl.Embed(func(x *t) *envelope.RequestWrapper { return &x.RequestWrapper }),
		dsl.Child(30, func(x *t) *AccountInfoRequest { return &x.Message }).Required(),
	).MustBuild()
}

type AccountInfoTransactionResponse struct {
	envelope.ResponseWrapper
	Message *AccountInfoResponse
}

func (AccountInfoTransactionResponse) Describe() *ofxkit.Declaration {
	type t = AccountInfoTransactionResponse
	return dsl.Aggregate[t]("ACCTINFOTRNRS",
		dsl.Embed(func(x *t) *envelope.ResponseWrapper { return &x.ResponseWrapper }),
		dsl.OptionalChild(30, func(x *t) **AccountInfoResponse { return &x.Message }),
	).MustBuild()
}

// RequestMessageSet is SIGNUPMSGSRQV1.
type RequestMessageSet struct {
	AccountInfo *AccountInfoTransactionRequest
}

func (RequestMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[RequestMessageSet]("SIGNUPMSGSRQV1",
		dsl.OptionalChild(0, func(m *RequestMessageSet) **AccountInfoTransactionRequest { return &m.AccountInfo }),
	).MustBuild()
}

func (*RequestMessageSet) MessageSetType() envelope.Type { return envelope.Signup }

func (m *RequestMessageSet) Transactions() []envelope.Transaction {
	if m.AccountInfo == nil {
		return nil
	}
	return []envelope.Transaction{m.AccountInfo}
}

// ResponseMessageSet is SIGNUPMSGSRSV1.
type ResponseMessageSet struct {
	AccountInfo *AccountInfoTransactionResponse
}

func (ResponseMessageSet) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[ResponseMessageSet]("SIGNUPMSGSRSV1",
		dsl.OptionalChild(0, func(m *ResponseMessageSet) **AccountInfoTransactionResponse { return &m.AccountInfo }),
	).MustBuild()
}

func (*ResponseMessageSet) MessageSetType() envelope.Type { return envelope.Signup }

func (m *ResponseMessageSet) Transactions() []envelope.Transaction {
	if m.AccountInfo == nil {
		return nil
	}
	return []envelope.Transaction{m.AccountInfo}
}
