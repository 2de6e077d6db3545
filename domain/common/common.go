// Package common holds aggregates shared by several message sets: account
// identifiers, bank transactions and their lists, balances and currencies.
package common

import (
	"github.com/shopspring/decimal"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/dsl"
)

// AccountType is the ACCTTYPE of a bank account.
type AccountType string

const (
	Checking   AccountType = "CHECKING"
	Savings    AccountType = "SAVINGS"
	MoneyMrkt  AccountType = "MONEYMRKT"
	CreditLine AccountType = "CREDITLINE"
	CD         AccountType = "CD"
)

var KeyAccountType = codec.Enum("ACCTTYPE",
	string(Checking), string(Savings), string(MoneyMrkt), string(CreditLine), string(CD))

// TransactionType is the TRNTYPE of a bank transaction.
type TransactionType string

const (
	Credit      TransactionType = "CREDIT"
	Debit       TransactionType = "DEBIT"
	Interest    TransactionType = "INT"
	Dividend    TransactionType = "DIV"
	Fee         TransactionType = "FEE"
	ServiceChg  TransactionType = "SRVCHG"
	Deposit     TransactionType = "DEP"
	ATM         TransactionType = "ATM"
	POS         TransactionType = "POS"
	Transfer    TransactionType = "XFER"
	Check       TransactionType = "CHECK"
	Payment     TransactionType = "PAYMENT"
	Cash        TransactionType = "CASH"
	DirectDep   TransactionType = "DIRECTDEP"
	DirectDebit TransactionType = "DIRECTDEBIT"
	RepeatPmt   TransactionType = "REPEATPMT"
	Hold        TransactionType = "HOLD"
	Other       TransactionType = "OTHER"
)

var KeyTransactionType = codec.Enum("TRNTYPE",
	string(Credit), string(Debit), string(Interest), string(Dividend), string(Fee), string(ServiceChg),
	string(Deposit), string(ATM), string(POS), string(Transfer), string(Check), string(Payment),
	string(Cash), string(DirectDep), string(DirectDebit), string(RepeatPmt), string(Hold), string(Other))

// BankAccount identifies a bank account. It has no tag of its own: it
// appears as BANKACCTFROM or BANKACCTTO.
type BankAccount struct {
	BankID   string
	BranchID *string
	AcctID   string
	Type     AccountType
	AcctKey  *string
}

func (BankAccount) Describe() *ofxkit.Declaration {
	return dsl.Embedded[BankAccount](
		dsl.Element("BANKID", 0, codec.KeyString, func(a *BankAccount) *string { return &a.BankID }).Required(),
		dsl.Optional("BRANCHID", 10, codec.KeyString, func(a *BankAccount) **string { return &a.BranchID }),
		dsl.Element("ACCTID", 20, codec.KeyString, func(a *BankAccount) *string { return &a.AcctID }).Required(),
		dsl.Element("ACCTTYPE", 30, KeyAccountType, func(a *BankAccount) *AccountType { return &a.Type }).Required(),
		dsl.Optional("ACCTKEY", 40, codec.KeyString, func(a *BankAccount) **string { return &a.AcctKey }),
	).MustBuild()
}

// CreditCardAccount appears as CCACCTFROM or CCACCTTO.
type CreditCardAccount struct {
	AcctID  string
	AcctKey *string
}

func (CreditCardAccount) Describe() *ofxkit.Declaration {
	return dsl.Embedded[CreditCardAccount](
		dsl.Element("ACCTID", 0, codec.KeyString, func(a *CreditCardAccount) *string { return &a.AcctID }).Required(),
		dsl.Optional("ACCTKEY", 10, codec.KeyString, func(a *CreditCardAccount) **string { return &a.AcctKey }),
	).MustBuild()
}

// InvestmentAccount appears as INVACCTFROM.
type InvestmentAccount struct {
	BrokerID string
	AcctID   string
}

func (InvestmentAccount) Describe() *ofxkit.Declaration {
	return dsl.Embedded[InvestmentAccount](
		dsl.Element("BROKERID", 0, codec.KeyString, func(a *InvestmentAccount) *string { return &a.BrokerID }).Required(),
		dsl.Element("ACCTID", 10, codec.KeyString, func(a *InvestmentAccount) *string { return &a.AcctID }).Required(),
	).MustBuild()
}

// StatementRange selects the transactions a statement request asks for.
type StatementRange struct {
	Start   *codec.DateTime
	End     *codec.DateTime
	Include bool
}

func (StatementRange) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[StatementRange]("INCTRAN",
		dsl.Optional("DTSTART", 0, codec.KeyDateTime, func(r *StatementRange) **codec.DateTime { return &r.Start }),
		dsl.Optional("DTEND", 10, codec.KeyDateTime, func(r *StatementRange) **codec.DateTime { return &r.End }),
		dsl.Element("INCLUDE", 20, codec.KeyBoolYN, func(r *StatementRange) *bool { return &r.Include }).Required(),
	).MustBuild()
}

// Currency is a rate/symbol pair, used as CURRENCY or ORIGCURRENCY.
type Currency struct {
	Rate   decimal.Decimal
	Symbol string
}

func (Currency) Describe() *ofxkit.Declaration {
	return dsl.Embedded[Currency](
		dsl.Element("CURRATE", 0, codec.KeyAmount, func(c *Currency) *decimal.Decimal { return &c.Rate }).Required(),
		dsl.Element("CURSYM", 10, codec.KeyString, func(c *Currency) *string { return &c.Symbol }).Required(),
	).MustBuild()
}

// Balance appears as LEDGERBAL or AVAILBAL.
type Balance struct {
	Amount decimal.Decimal
	AsOf   codec.DateTime
}

func (Balance) Describe() *ofxkit.Declaration {
	return dsl.Embedded[Balance](
		dsl.Element("BALAMT", 0, codec.KeyAmount, func(b *Balance) *decimal.Decimal { return &b.Amount }).Required(),
		dsl.Element("DTASOF", 10, codec.KeyDateTime, func(b *Balance) *codec.DateTime { return &b.AsOf }).Required(),
	).MustBuild()
}

// Payee is the structured alternative to NAME on a transaction.
type Payee struct {
	Name       string
	Addr1      string
	Addr2      *string
	City       string
	State      string
	PostalCode string
	Phone      string
}

func (Payee) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[Payee]("PAYEE",
		dsl.Element("NAME", 0, codec.KeyString, func(p *Payee) *string { return &p.Name }).Required(),
		dsl.Element("ADDR1", 10, codec.KeyString, func(p *Payee) *string { return &p.Addr1 }).Required(),
		dsl.Optional("ADDR2", 20, codec.KeyString, func(p *Payee) **string { return &p.Addr2 }),
		dsl.Element("CITY", 40, codec.KeyString, func(p *Payee) *string { return &p.City }).Required(),
		dsl.Element("STATE", 50, codec.KeyString, func(p *Payee) *string { return &p.State }).Required(),
		dsl.Element("POSTALCODE", 60, codec.KeyString, func(p *Payee) *string { return &p.PostalCode }).Required(),
		dsl.Element("PHONE", 80, codec.KeyString, func(p *Payee) *string { return &p.Phone }).Required(),
	).MustBuild()
}

// StatementTransaction is one STMTTRN entry.
type StatementTransaction struct {
	Type          TransactionType
	Posted        codec.DateTime
	User          *codec.DateTime
	Available     *codec.DateTime
	Amount        decimal.Decimal
	FITID         string
	CorrectFITID  *string
	ServerID      *string
	CheckNumber   *string
	ReferenceNum  *string
	PayeeID       *string
	Name          *string
	Payee         *Payee
	ToBankAccount *BankAccount
	ToCreditCard  *CreditCardAccount
	Memo          *string
	Currency      *Currency
	OrigCurrency  *Currency
}

func (StatementTransaction) Describe() *ofxkit.Declaration {
	type t = StatementTransaction
	return dsl.Aggregate[t]("STMTTRN",
		dsl.Element("TRNTYPE", 0, KeyTransactionType, func(s *t) *TransactionType { return &s.Type }).Required(),
		dsl.Element("DTPOSTED", 10, codec.KeyDateTime, func(s *t) *codec.DateTime { return &s.Posted }).Required(),
		dsl.Optional("DTUSER", 20, codec.KeyDateTime, func(s *t) **codec.DateTime { return &s.User }),
		dsl.Optional("DTAVAIL", 30, codec.KeyDateTime, func(s *t) **codec.DateTime { return &s.Available }),
		dsl.Element("TRNAMT", 40, codec.KeyAmount, func(s *t) *decimal.Decimal { return &s.Amount }).Required(),
		dsl.Element("FITID", 50, codec.KeyString, func(s *t) *string { return &s.FITID }).Required(),
		dsl.Optional("CORRECTFITID", 60, codec.KeyString, func(s *t) **string { return &s.CorrectFITID }),
		dsl.Optional("SRVRTID", 70, codec.KeyString, func(s *t) **string { return &s.ServerID }),
		dsl.Optional("CHECKNUM", 80, codec.KeyString, func(s *t) **string { return &s.CheckNumber }),
		dsl.Optional("REFNUM", 90, codec.KeyString, func(s *t) **string { return &s.ReferenceNum }),
		dsl.Optional("PAYEEID", 100, codec.KeyString, func(s *t) **string { return &s.PayeeID }),
		dsl.Optional("NAME", 110, codec.KeyString, func(s *t) **string { return &s.Name }),
		dsl.OptionalChild(120, func(s *t) **Payee { return &s.Payee }),
		dsl.OptionalChild(130, func(s *t) **BankAccount { return &s.ToBankAccount }).Named("BANKACCTTO"),
		dsl.OptionalChild(140, func(s *t) **CreditCardAccount { return &s.ToCreditCard }).Named("CCACCTTO"),
		dsl.Optional("MEMO", 150, codec.KeyString, func(s *t) **string { return &s.Memo }),
		dsl.OptionalChild(160, func(s *t) **Currency { return &s.Currency }).Named("CURRENCY"),
		dsl.OptionalChild(170, func(s *t) **Currency { return &s.OrigCurrency }).Named("ORIGCURRENCY"),
	).MustBuild()
}

// TransactionList is BANKTRANLIST.
type TransactionList struct {
	Start        codec.DateTime
	End          codec.DateTime
	Transactions []StatementTransaction
}

func (TransactionList) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[TransactionList]("BANKTRANLIST",
		dsl.Element("DTSTART", 0, codec.KeyDateTime, func(l *TransactionList) *codec.DateTime { return &l.Start }).Required(),
		dsl.Element("DTEND", 10, codec.KeyDateTime, func(l *TransactionList) *codec.DateTime { return &l.End }).Required(),
		dsl.Children(20, func(l *TransactionList) *[]StatementTransaction { return &l.Transactions }),
	).MustBuild()
}

// SecurityID is SECID, shared by investment statements and security lists.
type SecurityID struct {
	UniqueID     string
	UniqueIDType string
}

func (SecurityID) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[SecurityID]("SECID",
		dsl.Element("UNIQUEID", 0, codec.KeyString, func(s *SecurityID) *string { return &s.UniqueID }).Required(),
		dsl.Element("UNIQUEIDTYPE", 10, codec.KeyString, func(s *SecurityID) *string { return &s.UniqueIDType }).Required(),
	).MustBuild()
}

// SubAccountType qualifies where a holding or cash movement sits.
type SubAccountType string

const (
	SubAcctCash   SubAccountType = "CASH"
	SubAcctMargin SubAccountType = "MARGIN"
	SubAcctShort  SubAccountType = "SHORT"
	SubAcctOther  SubAccountType = "OTHER"
)

var KeySubAccountType = codec.Enum("SUBACCTTYPE",
	string(SubAcctCash), string(SubAcctMargin), string(SubAcctShort), string(SubAcctOther))

// Ptr returns a pointer to v, for optional fields.
func Ptr[V any](v V) *V { return &v }
