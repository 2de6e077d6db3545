package ofxkit_test

import (
	"github.com/shopspring/decimal"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/dsl"
	"github.com/reoring/ofxkit/wire"
)

type txnType string

var txnTypes = codec.Enum("FIXTURETRNTYPE", "CREDIT", "DEBIT", "FEE")

type txn struct {
	Type   txnType
	Posted codec.DateTime
	User   *codec.DateTime
	Amount decimal.Decimal
	FITID  string
	Memo   *string
}

func (txn) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[txn]("STMTTRN",
		dsl.Element("TRNTYPE", 0, txnTypes, func(t *txn) *txnType { return &t.Type }).Required(),
		dsl.Element("DTPOSTED", 10, codec.KeyDateTime, func(t *txn) *codec.DateTime { return &t.Posted }).Required(),
		dsl.Optional("DTUSER", 20, codec.KeyDateTime, func(t *txn) **codec.DateTime { return &t.User }),
		dsl.Element("TRNAMT", 30, codec.KeyAmount, func(t *txn) *decimal.Decimal { return &t.Amount }).Required(),
		dsl.Element("FITID", 40, codec.KeyString, func(t *txn) *string { return &t.FITID }).Required(),
		dsl.Optional("MEMO", 80, codec.KeyString, func(t *txn) **string { return &t.Memo }),
	).MustBuild()
}

type tranList struct {
	Start codec.DateTime
	End   codec.DateTime
	Txns  []txn
}

func (tranList) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[tranList]("BANKTRANLIST",
		dsl.Element("DTSTART", 0, codec.KeyDateTime, func(l *tranList) *codec.DateTime { return &l.Start }).Required(),
		dsl.Element("DTEND", 10, codec.KeyDateTime, func(l *tranList) *codec.DateTime { return &l.End }).Required(),
		dsl.Children(20, func(l *tranList) *[]txn { return &l.Txns }),
	).MustBuild()
}

type account struct {
	BankID string
	AcctID string
}

func (account) Describe() *ofxkit.Declaration {
	return dsl.Embedded[account](
		dsl.Element("BANKID", 0, codec.KeyString, func(a *account) *string { return &a.BankID }).Required(),
		dsl.Element("ACCTID", 20, codec.KeyString, func(a *account) *string { return &a.AcctID }).Required(),
	).MustBuild()
}

type balance struct {
	Amount decimal.Decimal
	AsOf   codec.DateTime
}

func (balance) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[balance]("LEDGERBAL",
		dsl.Element("BALAMT", 0, codec.KeyAmount, func(b *balance) *decimal.Decimal { return &b.Amount }).Required(),
		dsl.Element("DTASOF", 10, codec.KeyDateTime, func(b *balance) *codec.DateTime { return &b.AsOf }).Required(),
	).MustBuild()
}

type extras struct {
	Note  *string
	Flags []string
}

func (extras) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[extras]("EXTRAS",
		dsl.Optional("NOTE", 0, codec.KeyString, func(e *extras) **string { return &e.Note }),
		dsl.Elements("FLAG", 10, codec.KeyString, func(e *extras) *[]string { return &e.Flags }),
	).MustBuild()
}

type stmt struct {
	Currency string
	Account  account
	Tran     *tranList
	Ledger   balance
	Extras   *extras
}

func (stmt) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[stmt]("STMTRS",
		dsl.Element("CURDEF", 0, codec.KeyString, func(s *stmt) *string { return &s.Currency }).Required(),
		dsl.NamedChild("BANKACCTFROM", 10, func(s *stmt) *account { return &s.Account }).Required(),
		dsl.OptionalChild(20, func(s *stmt) **tranList { return &s.Tran }),
		dsl.Child(30, func(s *stmt) *balance { return &s.Ledger }).Required(),
		dsl.OptionalChild(40, func(s *stmt) **extras { return &s.Extras }),
	).MustBuild()
}

// investment-style fixtures: embedded base plus tag-resolved variants

type invTran struct {
	FITID string
	Trade codec.DateTime
	Memo  *string
}

func (invTran) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[invTran]("INVTRAN",
		dsl.Element("FITID", 0, codec.KeyString, func(t *invTran) *string { return &t.FITID }).Required(),
		dsl.Element("DTTRADE", 20, codec.KeyDateTime, func(t *invTran) *codec.DateTime { return &t.Trade }).Required(),
		dsl.Optional("MEMO", 50, codec.KeyString, func(t *invTran) **string { return &t.Memo }),
	).MustBuild()
}

type baseTxn struct {
	Tran invTran
}

func (baseTxn) Describe() *ofxkit.Declaration {
	return dsl.Embedded[baseTxn](
		dsl.Child(10, func(b *baseTxn) *invTran { return &b.Tran }).Required(),
	).MustBuild()
}

type invEntry interface{ entryTag() string }

type buy struct {
	baseTxn
	Units   decimal.Decimal
	BuyType string
}

func (buy) entryTag() string { return "BUYSTOCK" }

func (buy) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[buy]("BUYSTOCK",
		dsl.Embed(func(b *buy) *baseTxn { return &b.baseTxn }),
		dsl.Element("UNITS", 20, codec.KeyAmount, func(b *buy) *decimal.Decimal { return &b.Units }).Required(),
		dsl.Element("BUYTYPE", 30, codec.KeyString, func(b *buy) *string { return &b.BuyType }).Required(),
	).MustBuild()
}

type income struct {
	baseTxn
	Total decimal.Decimal
}

func (income) entryTag() string { return "INCOME" }

func (income) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[income]("INCOME",
		dsl.Embed(func(i *income) *baseTxn { return &i.baseTxn }),
		dsl.Element("TOTAL", 20, codec.KeyAmount, func(i *income) *decimal.Decimal { return &i.Total }).Required(),
	).MustBuild()
}

// sell declares an own member ahead of the inherited INVTRAN.
type sell struct {
	baseTxn
	SellType string
}

func (sell) entryTag() string { return "SELLSTOCK" }

func (sell) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[sell]("SELLSTOCK",
		dsl.Embed(func(s *sell) *baseTxn { return &s.baseTxn }),
		dsl.Element("SELLTYPE", 5, codec.KeyString, func(s *sell) *string { return &s.SellType }).Required(),
	).MustBuild()
}

// unregistered implements invEntry but is not a choice of invList.
type unregistered struct{}

func (unregistered) entryTag() string { return "OTHER" }

type invList struct {
	Start   codec.DateTime
	Entries []invEntry
}

func (invList) Describe() *ofxkit.Declaration {
	return dsl.Aggregate[invList]("INVTRANLIST",
		dsl.Element("DTSTART", 0, codec.KeyDateTime, func(l *invList) *codec.DateTime { return &l.Start }).Required(),
		dsl.Variants(10, func(l *invList) *[]invEntry { return &l.Entries },
			dsl.Variant[invEntry, buy](),
			dsl.Variant[invEntry, income](),
			dsl.Variant[invEntry, sell](),
		),
	).MustBuild()
}

// helpers

func leaf(tag, text string) *wire.Node { return wire.Leaf(tag, text) }

func agg(tag string, children ...*wire.Node) *wire.Node { return wire.Aggregate(tag, children...) }

func txnNode(typ, posted, amt, fitid string, extra ...*wire.Node) *wire.Node {
	n := agg("STMTTRN", leaf("TRNTYPE", typ), leaf("DTPOSTED", posted), leaf("TRNAMT", amt), leaf("FITID", fitid))
	return n.Append(extra...)
}

func stmtNode(txns ...*wire.Node) *wire.Node {
	list := agg("BANKTRANLIST", leaf("DTSTART", "20230101"), leaf("DTEND", "20230131"))
	list.Append(txns...)
	return agg("STMTRS",
		leaf("CURDEF", "USD"),
		agg("BANKACCTFROM", leaf("BANKID", "121000248"), leaf("ACCTID", "000123")),
		list,
		agg("LEDGERBAL", leaf("BALAMT", "1500.25"), leaf("DTASOF", "20230131120000")),
	)
}

func strp(s string) *string { return &s }
