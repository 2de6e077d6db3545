package investment

import (
	"github.com/shopspring/decimal"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/domain/common"
	"github.com/reoring/ofxkit/dsl"
)

type OptionBuyType string

const (
	BuyToOpen  OptionBuyType = "BUYTOOPEN"
	BuyToClose OptionBuyType = "BUYTOCLOSE"
)

var KeyOptionBuyType = codec.Enum("OPTBUYTYPE", string(BuyToOpen), string(BuyToClose))

type OptionSellType string

const (
	SellToClose OptionSellType = "SELLTOCLOSE"
	SellToOpen  OptionSellType = "SELLTOOPEN"
)

var KeyOptionSellType = codec.Enum("OPTSELLTYPE", string(SellToClose), string(SellToOpen))

// RelatedOptionType links an option sale to another trade.
type RelatedOptionType string

const (
	Spread       RelatedOptionType = "SPREAD"
	Straddle     RelatedOptionType = "STRADDLE"
	NoRelation   RelatedOptionType = "NONE"
	OtherRelated RelatedOptionType = "OTHER"
)

var KeyRelatedOptionType = codec.Enum("RELTYPE",
	string(Spread), string(Straddle), string(NoRelation), string(OtherRelated))

type OptionSecured string

const (
	Naked   OptionSecured = "NAKED"
	Covered OptionSecured = "COVERED"
)

var KeyOptionSecured = codec.Enum("SECURED", string(Naked), string(Covered))

// OptionAction is how an option position was closed.
type OptionAction string

const (
	Exercise OptionAction = "EXERCISE"
	Assign   OptionAction = "ASSIGN"
	Expire   OptionAction = "EXPIRE"
)

var KeyOptionAction = codec.Enum("OPTACTION", string(Exercise), string(Assign), string(Expire))

type SellDebtReason string

const (
	DebtCalled   SellDebtReason = "CALL"
	DebtSold     SellDebtReason = "SELL"
	DebtMaturity SellDebtReason = "MATURITY"
)

var KeySellDebtReason = codec.Enum("SELLREASON", string(DebtCalled), string(DebtSold), string(DebtMaturity))

// RetirementSource is the 401(k) money source an entry is attributed to.
type RetirementSource string

const (
	PreTax         RetirementSource = "PRETAX"
	AfterTax       RetirementSource = "AFTERTAX"
	Match          RetirementSource = "MATCH"
	ProfitSharing  RetirementSource = "PROFITSHARING"
	Rollover       RetirementSource = "ROLLOVER"
	OtherVested    RetirementSource = "OTHERVEST"
	OtherNonVested RetirementSource = "OTHERNONVEST"
)

var KeyRetirementSource = codec.Enum("INV401KSOURCE",
	string(PreTax), string(AfterTax), string(Match), string(ProfitSharing),
	string(Rollover), string(OtherVested), string(OtherNonVested))

// BuyMutualFund is BUYMF.
type BuyMutualFund struct {
	baseBuy
	Type         BuyType
	RelatedFITID *string
}

func (BuyMutualFund) Describe() *ofxkit.Declaration {
	type t = BuyMutualFund
	return dsl.Aggregate[t]("BUYMF",
		dsl.Embed(func(x *t) *baseBuy { return &x.baseBuy }),
		dsl.Element("BUYTYPE", 20, KeyBuyType, func(x *t) *BuyType { return &x.Type }).Required(),
		dsl.Optional("RELFITID", 30, codec.KeyString, func(x *t) **string { return &x.RelatedFITID }),
	).MustBuild()
}

// SellMutualFund is SELLMF.
type SellMutualFund struct {
	baseSell
	Type         *SellType
	AvgCostBasis *decimal.Decimal
	RelatedFITID *string
}

func (SellMutualFund) Describe() *ofxkit.Declaration {
	type t = SellMutualFund
	return dsl.Aggregate[t]("SELLMF",
		dsl.Embed(func(x *t) *baseSell { return &x.baseSell }),
		dsl.Optional("SELLTYPE", 20, KeySellType, func(x *t) **SellType { return &x.Type }),
		dsl.Optional("AVGCOSTBASIS", 30, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.AvgCostBasis }),
		dsl.Optional("RELFITID", 40, codec.KeyString, func(x *t) **string { return &x.RelatedFITID }),
	).MustBuild()
}

// BuyDebt is BUYDEBT.
type BuyDebt struct {
	baseBuy
	AccruedInterest *decimal.Decimal
}

func (BuyDebt) Describe() *ofxkit.Declaration {
	type t = BuyDebt
	return dsl.Aggregate[t]("BUYDEBT",
		dsl.Embed(func(x *t) *baseBuy { return &x.baseBuy }),
		dsl.Optional("ACCRDINT", 20, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.AccruedInterest }),
	).MustBuild()
}

// SellDebt is SELLDEBT.
type SellDebt struct {
	baseSell
	Reason          *SellDebtReason
	AccruedInterest *decimal.Decimal
}

func (SellDebt) Describe() *ofxkit.Declaration {
	type t = SellDebt
	return dsl.Aggregate[t]("SELLDEBT",
		dsl.Embed(func(x *t) *baseSell { return &x.baseSell }),
		dsl.Optional("SELLREASON", 30, KeySellDebtReason, func(x *t) **SellDebtReason { return &x.Reason }),
		dsl.Optional("ACCRDINT", 40, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.AccruedInterest }),
	).MustBuild()
}

// BuyOption is BUYOPT.
type BuyOption struct {
	baseBuy
	Type              OptionBuyType
	SharesPerContract int
}

func (BuyOption) Describe() *ofxkit.Declaration {
	type t = BuyOption
	return dsl.Aggregate[t]("BUYOPT",
		dsl.Embed(func(x *t) *baseBuy { return &x.baseBuy }),
		dsl.Element("OPTBUYTYPE", 20, KeyOptionBuyType, func(x *t) *OptionBuyType { return &x.Type }).Required(),
		dsl.Element("SHPERCTRCT", 30, codec.KeyInteger, func(x *t) *int { return &x.SharesPerContract }).Required(),
	).MustBuild()
}

// SellOption is SELLOPT.
type SellOption struct {
	baseSell
	Type              OptionSellType
	SharesPerContract int
	RelatedFITID      *string
	Relation          *RelatedOptionType
	Secured           *OptionSecured
}

func (SellOption) Describe() *ofxkit.Declaration {
	type t = SellOption
	return dsl.Aggregate[t]("SELLOPT",
		dsl.Embed(func(x *t) *baseSell { return &x.baseSell }),
		dsl.Element("OPTSELLTYPE", 20, KeyOptionSellType, func(x *t) *OptionSellType { return &x.Type }).Required(),
		dsl.Element("SHPERCTRCT", 30, codec.KeyInteger, func(x *t) *int { return &x.SharesPerContract }).Required(),
		dsl.Optional("RELFITID", 40, codec.KeyString, func(x *t) **string { return &x.RelatedFITID }),
		dsl.Optional("RELTYPE", 50, KeyRelatedOptionType, func(x *t) **RelatedOptionType { return &x.Relation }),
		dsl.Optional("SECURED", 60, KeyOptionSecured, func(x *t) **OptionSecured { return &x.Secured }),
	).MustBuild()
}

// BuyOther is BUYOTHER, a purchase of a security with no dedicated
// aggregate.
type BuyOther struct {
	baseBuy
}

func (BuyOther) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[BuyOther]("BUYOTHER",
		dsl.Embed(func(x *BuyOther) *baseBuy { return &x.baseBuy }),
	).MustBuild()
}

// Reinvest is REINVEST: income paid out as additional units.
type Reinvest struct {
	baseOther
	Security     common.SecurityID
	Type         IncomeType
	Total        decimal.Decimal
	SubAcctSec   *common.SubAccountType
	Units        decimal.Decimal
	UnitPrice    decimal.Decimal
	Commission   *decimal.Decimal
	Taxes        *decimal.Decimal
	Fees         *decimal.Decimal
	Load         *decimal.Decimal
	TaxExempt    *bool
	Currency     *common.Currency
	OrigCurrency *common.Currency
	Source       *RetirementSource
}

func (Reinvest) Describe() *ofxkit.Declaration {
	type t = Reinvest
	return dsl.Aggregate[t]("REINVEST",
		dsl.Embed(func(x *t) *baseOther { return &x.baseOther }),
		dsl.Child(20, func(x *t) *common.SecurityID { return &x.Security }).Required(),
		dsl.Element("INCOMETYPE", 30, KeyIncomeType, func(x *t) *IncomeType { return &x.Type }).Required(),
		dsl.Element("TOTAL", 40, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.Total }).Required(),
		dsl.Optional("SUBACCTSEC", 50, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.SubAcctSec }),
		dsl.Element("UNITS", 60, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.Units }).Required(),
		dsl.Element("UNITPRICE", 70, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.UnitPrice }).Required(),
		dsl.Optional("COMMISSION", 80, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Commission }),
		dsl.Optional("TAXES", 90, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Taxes }),
		dsl.Optional("FEES", 100, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Fees }),
		dsl.Optional("LOAD", 110, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Load }),
		dsl.Optional("TAXEXEMPT", 120, codec.KeyBoolYN, func(x *t) **bool { return &x.TaxExempt }),
		dsl.OptionalChild(130, func(x *t) **common.Currency { return &x.Currency }).Named("CURRENCY"),
		dsl.OptionalChild(140, func(x *t) **common.Currency { return &x.OrigCurrency }).Named("ORIGCURRENCY"),
		dsl.Optional("INV401KSOURCE", 150, KeyRetirementSource, func(x *t) **RetirementSource { return &x.Source }),
	).MustBuild()
}

// CloseOption is CLOSUREOPT: an option exercised, assigned or expired.
type CloseOption struct {
	baseOther
	Security          *common.SecurityID
	Action            OptionAction
	Units             decimal.Decimal
	SharesPerContract int
	SubAcctSec        common.SubAccountType
	RelatedFITID      *string
	Gain              *decimal.Decimal
}

func (CloseOption) Describe() *ofxkit.Declaration {
	type t = CloseOption
	return dsl.Aggregate[t]("CLOSUREOPT",
		dsl.Embed(func(x *t) *baseOther { return &x.baseOther }),
		dsl.OptionalChild(20, func(x *t) **common.SecurityID { return &x.Security }),
		dsl.Element("OPTACTION", 30, KeyOptionAction, func(x *t) *OptionAction { return &x.Action }).Required(),
		dsl.Element("UNITS", 40, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.Units }).Required(),
		dsl.Element("SHPERCTRCT", 50, codec.KeyInteger, func(x *t) *int { return &x.SharesPerContract }).Required(),
		dsl.Element("SUBACCTSEC", 60, common.KeySubAccountType, func(x *t) *common.SubAccountType { return &x.SubAcctSec }).Required(),
		dsl.Optional("RELFITID", 70, codec.KeyString, func(x *t) **string { return &x.RelatedFITID }),
		dsl.Optional("GAIN", 80, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Gain }),
	).MustBuild()
}

// JournalFund is JRNLFUND, cash moved between sub-accounts.
type JournalFund struct {
	baseOther
	From  *common.SubAccountType
	To    *common.SubAccountType
	Total *decimal.Decimal
}

func (JournalFund) Describe() *ofxkit.Declaration {
	type t = JournalFund
	return dsl.Aggregate[t]("JRNLFUND",
		dsl.Embed(func(x *t) *baseOther { return &x.baseOther }),
		dsl.Optional("SUBACCTFROM", 20, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.From }),
		dsl.Optional("SUBACCTTO", 30, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.To }),
		dsl.Optional("TOTAL", 40, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Total }),
	).MustBuild()
}

// JournalSecurity is JRNLSEC, units of a security moved between
// sub-accounts. Some servers send TOTAL after UNITS, so both are accepted.
type JournalSecurity struct {
	baseOther
	Security common.SecurityID
	From     *common.SubAccountType
	To       *common.SubAccountType
	Units    *decimal.Decimal
	Total    *decimal.Decimal
}

func (JournalSecurity) Describe() *ofxkit.Declaration {
	type t = JournalSecurity
	return dsl.Aggregate[t]("JRNLSEC",
		dsl.Embed(func(x *t) *baseOther { return &x.baseOther }),
		dsl.Child(20, func(x *t) *common.SecurityID { return &x.Security }).Required(),
		dsl.Optional("SUBACCTFROM", 30, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.From }),
		dsl.Optional("SUBACCTTO", 40, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.To }),
		dsl.Optional("UNITS", 50, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Units }),
		dsl.Optional("TOTAL", 60, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Total }),
	).MustBuild()
}

// MarginInterest is MARGININTEREST.
type MarginInterest struct {
	baseOther
	SubAcctFund  *common.SubAccountType
	Total        *decimal.Decimal
	Currency     *common.Currency
	OrigCurrency *common.Currency
}

func (MarginInterest) Describe() *ofxkit.Declaration {
	type t = MarginInterest
	return dsl.Aggregate[t]("MARGININTEREST",
		dsl.Embed(func(x *t) *baseOther { return &x.baseOther }),
		dsl.Optional("SUBACCTFUND", 30, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.SubAcctFund }),
		dsl.Optional("TOTAL", 40, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.Total }),
		dsl.OptionalChild(110, func(x *t) **common.Currency { return &x.Currency }).Named("CURRENCY"),
		dsl.OptionalChild(120, func(x *t) **common.Currency { return &x.OrigCurrency }).Named("ORIGCURRENCY"),
	).MustBuild()
}

// ReturnOfCapital is RETOFCAP.
type ReturnOfCapital struct {
	baseOther
	Security     common.SecurityID
	Total        decimal.Decimal
	SubAcctSec   *common.SubAccountType
	SubAcctFund  *common.SubAccountType
	Currency     *common.Currency
	OrigCurrency *common.Currency
	Source       *RetirementSource
}

func (ReturnOfCapital) Describe() *ofxkit.Declaration {
	type t = ReturnOfCapital
	return dsl.Aggregate[t]("RETOFCAP",
		dsl.Embed(func(x *t) *baseOther { return &x.baseOther }),
		dsl.Child(20, func(x *t) *common.SecurityID { return &x.Security }).Required(),
		dsl.Element("TOTAL", 40, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.Total }).Required(),
		dsl.Optional("SUBACCTSEC", 50, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.SubAcctSec }),
		dsl.Optional("SUBACCTFUND", 60, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.SubAcctFund }),
		dsl.OptionalChild(110, func(x *t) **common.Currency { return &x.Currency }).Named("CURRENCY"),
		dsl.OptionalChild(120, func(x *t) **common.Currency { return &x.OrigCurrency }).Named("ORIGCURRENCY"),
		dsl.Optional("INV401KSOURCE", 180, KeyRetirementSource, func(x *t) **RetirementSource { return &x.Source }),
	).MustBuild()
}

// Expense is INVEXPENSE.
type Expense struct {
	baseOther
	Security     common.SecurityID
	Total        decimal.Decimal
	SubAcctSec   *common.SubAccountType
	SubAcctFund  *common.SubAccountType
	Currency     *common.Currency
	OrigCurrency *common.Currency
	Source       *RetirementSource
}

func (Expense) Describe() *ofxkit.Declaration {
	type t = Expense
	return dsl.Aggregate[t]("INVEXPENSE",
		dsl.Embed(func(x *t) *baseOther { return &x.baseOther }),
		dsl.Child(20, func(x *t) *common.SecurityID { return &x.Security }).Required(),
		dsl.Element("TOTAL", 30, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.Total }).Required(),
		dsl.Optional("SUBACCTSEC", 40, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.SubAcctSec }),
		dsl.Optional("SUBACCTFUND", 50, common.KeySubAccountType, func(x *t) **common.SubAccountType { return &x.SubAcctFund }),
		dsl.OptionalChild(60, func(x *t) **common.Currency { return &x.Currency }).Named("CURRENCY"),
		dsl.OptionalChild(70, func(x *t) **common.Currency { return &x.OrigCurrency }).Named("ORIGCURRENCY"),
		dsl.Optional("INV401KSOURCE", 180, KeyRetirementSource, func(x *t) **RetirementSource { return &x.Source }),
	).MustBuild()
}
