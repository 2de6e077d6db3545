package investment

import (
	"github.com/shopspring/decimal"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/domain/common"
	"github.com/reoring/ofxkit/dsl"
)

type BuyType string

const (
	Buy        BuyType = "BUY"
	BuyToCover BuyType = "BUYTOCOVER"
)

var KeyBuyType = codec.Enum("BUYTYPE", string(Buy), string(BuyToCover))

type SellType string

const (
	Sell      SellType = "SELL"
	SellShort SellType = "SELLSHORT"
)

var KeySellType = codec.Enum("SELLTYPE", string(Sell), string(SellShort))

// IncomeType classifies an INCOME transaction.
type IncomeType string

const (
	CapitalGainLong  IncomeType = "CGLONG"
	CapitalGainShort IncomeType = "CGSHORT"
	DividendIncome   IncomeType = "DIV"
	InterestIncome   IncomeType = "INTEREST"
	MiscIncome       IncomeType = "MISC"
)

var KeyIncomeType = codec.Enum("INCOMETYPE",
	string(CapitalGainLong), string(CapitalGainShort), string(DividendIncome), string(InterestIncome), string(MiscIncome))

// Transaction is one entry of INVTRANLIST: a trade, an income event or a
// cash movement.
type Transaction interface {
	ofxkit.Describer
	// TransactionID returns the FITID of the entry.
	TransactionID() string
}

// TransactionInfo is INVTRAN, the header of every trade and income entry.
type TransactionInfo struct {
	FITID         string
	ServerID      *string
	Traded        codec.DateTime
	Settled       *codec.DateTime
	ReversalFITID *string
	Memo          *string
}

func (TransactionInfo) Describe() *ofxkit.Declaration {
	type t = TransactionInfo
	return dsl.Aggregate[t]("INVTRAN",
		dsl.Element("FITID", 0, codec.KeyString, func(x *t) *string { return &x.FITID }).Required(),
		dsl.Optional("SRVRTID", 10, codec.KeyString, func(x *t) **string { return &x.ServerID }),
		dsl.Element("DTTRADE", 20, codec.KeyDateTime, func(x *t) *codec.DateTime { return &x.Traded }).Required(),
		dsl.Optional("DTSETTLE", 30, codec.KeyDateTime, func(x *t) **codec.DateTime { return &x.Settled }),
		dsl.Optional("REVERSALFITID", 40, codec.KeyString, func(x *t) **string { return &x.ReversalFITID }),
		dsl.Optional("MEMO", 50, codec.KeyString, func(x *t) **string { return &x.Memo }),
	).MustBuild()
}

// BuyInfo is INVBUY.
type BuyInfo struct {
	Info         TransactionInfo
	Security     common.SecurityID
	Units        decimal.Decimal
	UnitPrice    decimal.Decimal
	Markup       *decimal.Decimal
	Commission   *decimal.Decimal
	Taxes        *decimal.Decimal
	Fees         *decimal.Decimal
	Load         *decimal.Decimal
	Total        decimal.Decimal
	Currency     *common.Currency
	OrigCurrency *common.Currency
	SubAcctSec   *common.SubAccountType
	SubAcctFund  *common.SubAccountType
}

func (BuyInfo) Describe() *ofxkit.Declaration {
	type t = BuyInfo
	return dsl.Aggregate[t]("INVBUY",
		dsl.Child(10, func(x *t) *TransactionInfo { return &x.Info }).Required(),
		dsl.Child(20, func(x *t) *common.SecurityID { return &x.Security }).Required(),
		dsl.Element("UNITS", 30, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.Units }).Required(),
		dsl.Element("UNITPRICE", 40, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.UnitPrice }).Required(),
		dsl.Optional("MARKUP", 50, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Markup }),
		dsl.Optional("COMMISSION", 60, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Commission }),
		dsl.Optional("TAXES", 70, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Taxes }),
		dsl.Optional("FEES", 80, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Fees }),
		dsl.Optional("LOAD", 90, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Load }),
		dsl.Element("TOTAL", 100, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.Total }).Required(),
		dsl.OptionalChild(110, func(x *t) **common.Currency { return &x.Currency }).Named("CURRENCY"),
		dsl.OptionalChild(120, func(x *t) **common.Currency { return &x.OrigCurrency }).Named("ORIGCURRENCY"),
		dsl.Optional("SUBACCTSEC", 130, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.SubAcctSec }),
		dsl.Optional("SUBACCTFUND", 140, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.SubAcctFund }),
	).MustBuild()
}

// SellInfo is INVSELL.
type SellInfo struct {
	Info         TransactionInfo
	Security     common.SecurityID
	Units        decimal.Decimal
	UnitPrice    decimal.Decimal
	Markdown     *decimal.Decimal
	Commission   *decimal.Decimal
	Taxes        *decimal.Decimal
	Fees         *decimal.Decimal
	Load         *decimal.Decimal
	Withholding  *decimal.Decimal
	TaxExempt    *bool
	Total        decimal.Decimal
	Gain         *decimal.Decimal
	Currency     *common.Currency
	OrigCurrency *common.Currency
	SubAcctSec   *common.SubAccountType
	SubAcctFund  *common.SubAccountType
}

func (SellInfo) Describe() *ofxkit.Declaration {
	type t = SellInfo
	return dsl.Aggregate[t]("INVSELL",
		dsl.Child(10, func(x *t) *TransactionInfo { return &x.Info }).Required(),
		dsl.Child(20, func(x *t) *common.SecurityID { return &x.Security }).Required(),
		dsl.Element("UNITS", 30, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.Units }).Required(),
		dsl.Element("UNITPRICE", 40, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.UnitPrice }).Required(),
		dsl.Optional("MARKDOWN", 50, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Markdown }),
		dsl.Optional("COMMISSION", 60, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Commission }),
		dsl.Optional("TAXES", 70, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Taxes }),
		dsl.Optional("FEES", 80, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Fees }),
		dsl.Optional("LOAD", 90, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Load }),
		dsl.Optional("WITHHOLDING", 93, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Withholding }),
		dsl.Optional("TAXEXEMPT", 97, codec.KeyBoolYN, func(x *t) **bool { return &x.TaxExempt }),
		dsl.Element("TOTAL", 100, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.Total }).Required(),
		dsl.Optional("GAIN", 105, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Gain }),
		dsl.OptionalChild(110, func(x *t) **common.Currency { return &x.Currency }).Named("CURRENCY"),
		dsl.OptionalChild(120, func(x *t) **common.Currency { return &x.OrigCurrency }).Named("ORIGCURRENCY"),
		dsl.Optional("SUBACCTSEC", 130, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.SubAcctSec }),
		dsl.Optional("SUBACCTFUND", 140, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.SubAcctFund }),
	).MustBuild()
}

// baseBuy carries INVBUY for every buy transaction.
type baseBuy struct {
	Buy BuyInfo
}

func (baseBuy) Describe() *ofxkit.Declaration {
	return dsl.Embedded[baseBuy](
		dsl.Child(10, func(b *baseBuy) *BuyInfo { return &b.Buy }).Required(),
	).MustBuild()
}

func (b baseBuy) TransactionID() string { return b.Buy.Info.FITID }

type baseSell struct {
	Sell SellInfo
}

func (baseSell) Describe() *ofxkit.Declaration {
	return dsl.Embedded[baseSell](
		dsl.Child(10, func(b *baseSell) *SellInfo { return &b.Sell }).Required(),
	).MustBuild()
}

func (b baseSell) TransactionID() string { return b.Sell.Info.FITID }

// baseOther carries INVTRAN directly, for entries that are neither buys nor
// sells.
type baseOther struct {
	Info TransactionInfo
}

func (baseOther) Describe() *ofxkit.Declaration {
	return dsl.Embedded[baseOther](
		dsl.Child(10, func(b *baseOther) *TransactionInfo { return &b.Info }).Required(),
	).MustBuild()
}

func (b baseOther) TransactionID() string { return b.Info.FITID }

// BuyStock is BUYSTOCK.
type BuyStock struct {
	baseBuy
	Type BuyType
}

func (BuyStock) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[BuyStock]("BUYSTOCK",
		dsl.Embed(func(s *BuyStock) *baseBuy { return &s.baseBuy }),
		dsl.Element("BUYTYPE", 20, KeyBuyType, func(s *BuyStock) *BuyType { return &s.Type }).Required(),
	).MustBuild()
}

// SellStock is SELLSTOCK.
type SellStock struct {
	baseSell
	Type SellType
}

func (SellStock) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[SellStock]("SELLSTOCK",
		dsl.Embed(func(s *SellStock) *baseSell { return &s.baseSell }),
		dsl.Element("SELLTYPE", 20, KeySellType, func(s *SellStock) *SellType { return &s.Type }).Required(),
	).MustBuild()
}

// Income is INCOME: dividends, interest and capital gain distributions.
type Income struct {
	baseOther
	Security     common.SecurityID
	Type         IncomeType
	Total        decimal.Decimal
	SubAcctSec   *common.SubAccountType
	SubAcctFund  *common.SubAccountType
	TaxExempt    *bool
	Withholding  *decimal.Decimal
	Currency     *common.Currency
	OrigCurrency *common.Currency
}

func (Income) Describe() *ofxkit.Declaration {
	type t = Income
	return dsl.Aggregate[t]("INCOME",
		dsl.Embed(func(x *t) *baseOther { return &x.baseOther }),
		dsl.Child(20, func(x *t) *common.SecurityID { return &x.Security }).Required(),
		dsl.Element("INCOMETYPE", 30, KeyIncomeType, func(x *t) *IncomeType { return &x.Type }).Required(),
		dsl.Element("TOTAL", 40, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.Total }).Required(),
		dsl.Optional("SUBACCTSEC", 50, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.SubAcctSec }),
		dsl.Optional("SUBACCTFUND", 60, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.SubAcctFund }),
		dsl.Optional("TAXEXEMPT", 70, codec.KeyBoolYN, func(x *t) **bool { return &x.TaxExempt }),
		dsl.Optional("WITHHOLDING", 80, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Withholding }),
		dsl.OptionalChild(90, func(x *t) **common.Currency { return &x.Currency }).Named("CURRENCY"),
		dsl.OptionalChild(100, func(x *t) **common.Currency { return &x.OrigCurrency }).Named("ORIGCURRENCY"),
	).MustBuild()
}

// BankTransaction is INVBANKTRAN, a cash movement inside the investment
// account.
type BankTransaction struct {
	Transaction common.StatementTransaction
	SubAcctFund common.SubAccountType
}

func (BankTransaction) Describe() *ofxkit.Declaration {
	type t = BankTransaction
	return dsl.Aggregate[t]("INVBANKTRAN",
		dsl.Child(10, func(x *t) *common.StatementTransaction { return &x.Transaction }).Required(),
		dsl.Element("SUBACCTFUND", 20, common.KeySubAccountType, func(x *t) *common.SubAccountType { return &x.SubAcctFund }).Required(),
	).MustBuild()
}

func (b BankTransaction) TransactionID() string { return b.Transaction.FITID }

// TransactionList is INVTRANLIST.
type TransactionList struct {
	Start        codec.DateTime
	End          codec.DateTime
	Transactions []Transaction
}

func (TransactionList) Describe() *ofxkit.Declaration {
	type t = TransactionList
	return dsl.Aggregate[t]("INVTRANLIST",
		dsl.Element("DTSTART", 0, codec.KeyDateTime, func(x *t) *codec.DateTime { return &x.Start }).Required(),
		dsl.Element("DTEND", 10, codec.KeyDateTime, func(x *t) *codec.DateTime { return &x.End }).Required(),
		dsl.Variants(20, func(x *t) *[]Transaction { return &x.Transactions },
			dsl.Variant[Transaction, BuyStock](),
			dsl.Variant[Transaction, SellStock](),
			dsl.Variant[Transaction, BuyMutualFund](),
			dsl.Variant[Transaction, SellMutualFund](),
			dsl.Variant[Transaction, BuyDebt](),
			dsl.Variant[Transaction, SellDebt](),
			dsl.Variant[Transaction, BuyOption](),
			dsl.Variant[Transaction, SellOption](),
			dsl.Variant[Transaction, BuyOther](),
			dsl.Variant[Transaction, Income](),
			dsl.Variant[Transaction, Reinvest](),
			dsl.Variant[Transaction, CloseOption](),
			dsl.Variant[Transaction, JournalFund](),
			dsl.Variant[Transaction, JournalSecurity](),
			dsl.Variant[Transaction, MarginInterest](),
			dsl.Variant[Transaction, ReturnOfCapital](),
			dsl.Variant[Transaction, Expense](),
			dsl.Variant[Transaction, BankTransaction](),
		),
	).MustBuild()
}
