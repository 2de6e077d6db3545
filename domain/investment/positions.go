package investment

import (
	"github.com/shopspring/decimal"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/domain/common"
	"github.com/reoring/ofxkit/dsl"
)

type PositionType string

const (
	Long  PositionType = "LONG"
	Short PositionType = "SHORT"
)

var KeyPositionType = codec.Enum("POSTYPE", string(Long), string(Short))

// Position is one entry of INVPOSLIST.
type Position interface {
	ofxkit.Describer
	Info() PositionInfo
}

// PositionInfo is INVPOS.
type PositionInfo struct {
	Security    common.SecurityID
	HeldIn      common.SubAccountType
	Type        PositionType
	Units       decimal.Decimal
	UnitPrice   decimal.Decimal
	MarketValue decimal.Decimal
	PriceAsOf   codec.DateTime
	Currency    *common.Currency
	Memo        *string
}

func (PositionInfo) Describe() *ofxkit.Declaration {
	type t = PositionInfo
	return dsl.Aggregate[t]("INVPOS",
		dsl.Child(10, func(x *t) *common.SecurityID { return &x.Security }).Required(),
		dsl.Element("HELDINACCT", 20, common.KeySubAccountType, func(x *t) *common.SubAccountType { return &x.HeldIn }).Required(),
		dsl.Element("POSTYPE", 30, KeyPositionType, func(x *t) *PositionType { return &x.Type }).Required(),
		dsl.Element("UNITS", 40, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.Units }).Required(),
		dsl.Element("UNITPRICE", 50, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.UnitPrice }).Required(),
		dsl.Element("MKTVAL", 60, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.MarketValue }).Required(),
		dsl.Element("DTPRICEASOF", 70, codec.KeyDateTime, func(x *t) *codec.DateTime { return &x.PriceAsOf }).Required(),
		dsl.OptionalChild(80, func(x *t) **common.Currency { return &x.Currency }).Named("CURRENCY"),
		dsl.Optional("MEMO", 90, codec.KeyString, func(x *t) **string { return &x.Memo }),
	).MustBuild()
}

type basePosition struct {
	Position PositionInfo
}

func (basePosition) Describe() *ofxkit.Declaration {
	return dsl.Embedded[basePosition](
		dsl.Child(10, func(b *basePosition) *PositionInfo { return &b.Position }).Required(),
	).MustBuild()
}

func (b basePosition) Info() PositionInfo { return b.Position }

// StockPosition is POSSTOCK.
type StockPosition struct {
	basePosition
	UnitsStreet  *decimal.Decimal
	UnitsUser    *decimal.Decimal
	ReinvestDivs *bool
}

func (StockPosition) Describe() *ofxkit.Declaration {
	type t = StockPosition
	return dsl.Aggregate[t]("POSSTOCK",
		dsl.Embed(func(x *t) *basePosition { return &x.basePosition }),
		dsl.Optional("UNITSSTREET", 20, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.UnitsStreet }),
		dsl.Optional("UNITSUSER", 30, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.UnitsUser }),
		dsl.Optional("REINVDIV", 40, codec.KeyBoolYN, func(x *t) **bool { return &x.ReinvestDivs }),
	).MustBuild()
}

// DebtPosition is POSDEBT.
type DebtPosition struct {
	basePosition
}

func (DebtPosition) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[DebtPosition]("POSDEBT",
		dsl.Embed(func(x *DebtPosition) *basePosition { return &x.basePosition }),
	).MustBuild()
}

// OtherPosition is POSOTHER.
type OtherPosition struct {
	basePosition
}

func (OtherPosition) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[OtherPosition]("POSOTHER",
		dsl.Embed(func(x *OtherPosition) *basePosition { return &x.basePosition }),
	).MustBuild()
}

// PositionList is INVPOSLIST.
type PositionList struct {
	Positions []Position
}

func (PositionList) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[PositionList]("INVPOSLIST",
		dsl.Variants(0, func(l *PositionList) *[]Position { return &l.Positions },
			dsl.Variant[Position, StockPosition](),
			dsl.Variant[Position, DebtPosition](),
			dsl.Variant[Position, OtherPosition](),
		),
	).MustBuild()
}

// Balance is INVBAL.
type Balance struct {
	AvailableCash decimal.Decimal
	MarginBalance decimal.Decimal
	ShortBalance  decimal.Decimal
	BuyingPower   *decimal.Decimal
}

func (Balance) Describe() *ofxkit.Declaration {
	type t = Balance
	return dsl.Aggregate[t]("INVBAL",
		dsl.Element("AVAILCASH", 0, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.AvailableCash }).Required(),
		dsl.Element("MARGINBALANCE", 10, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.MarginBalance }).Required(),
		dsl.Element("SHORTBALANCE", 20, codec.KeyAmount, func(x *t) *decimal.Decimal { return &x.ShortBalance }).Required(),
		dsl.Optional("BUYPOWER", 30, codec.KeyAmount, func(x *t) **decimal.Decimal { return &x.BuyingPower }),
	).MustBuild()
}
