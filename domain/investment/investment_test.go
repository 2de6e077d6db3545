package investment_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/catalog"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/dialect"
	"github.com/reoring/ofxkit/domain/common"
	"github.com/reoring/ofxkit/domain/investment"
	"github.com/reoring/ofxkit/envelope"
	"github.com/reoring/ofxkit/wire"
)

func amt(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var (
	acme = common.SecurityID{UniqueID: "000000001", UniqueIDType: "CUSIP"}
	bond = common.SecurityID{UniqueID: "000000002", UniqueIDType: "CUSIP"}
)

func statementSet() *investment.ResponseMessageSet {
	buy := investment.BuyStock{Type: investment.Buy}
	buy.Buy = investment.BuyInfo{
		Info:       investment.TransactionInfo{FITID: "B-1", Traded: codec.Date(2024, 3, 1)},
		Security:   acme,
		Units:      amt("100"),
		UnitPrice:  amt("12.3400"),
		Commission: common.Ptr(amt("4.95")),
		Total:      amt("-1238.95"),
		SubAcctSec: common.Ptr(common.SubAcctCash),
	}

	sell := investment.SellStock{Type: investment.SellShort}
	sell.Sell = investment.SellInfo{
		Info:      investment.TransactionInfo{FITID: "S-1", Traded: codec.Date(2024, 3, 4), Memo: common.Ptr("short sale")},
		Security:  acme,
		Units:     amt("-20"),
		UnitPrice: amt("13.00"),
		TaxExempt: common.Ptr(false),
		Total:     amt("260.00"),
	}

	income := investment.Income{Security: acme, Type: investment.DividendIncome, Total: amt("8.10")}
	income.Info = investment.TransactionInfo{FITID: "I-1", Traded: codec.Date(2024, 3, 15)}

	cash := investment.BankTransaction{
		Transaction: common.StatementTransaction{
			Type: common.Interest, Posted: codec.Date(2024, 3, 31), Amount: amt("0.42"), FITID: "C-1",
		},
		SubAcctFund: common.SubAcctCash,
	}

	stock := investment.StockPosition{ReinvestDivs: common.Ptr(true)}
	stock.Position = investment.PositionInfo{
		Security: acme, HeldIn: common.SubAcctCash, Type: investment.Long,
		Units: amt("80"), UnitPrice: amt("13.10"), MarketValue: amt("1048.00"),
		PriceAsOf: codec.Date(2024, 3, 31),
	}
	debt := investment.DebtPosition{}
	debt.Position = investment.PositionInfo{
		Security: bond, HeldIn: common.SubAcctMargin, Type: investment.Long,
		Units: amt("5"), UnitPrice: amt("98.5"), MarketValue: amt("492.50"),
		PriceAsOf: codec.Date(2024, 3, 31),
	}

	return &investment.ResponseMessageSet{Statements: []investment.StatementTransactionResponse{{
		ResponseWrapper: envelope.ResponseWrapper{
			UID:    "inv-1",
			Status: envelope.Status{Code: envelope.CodeSuccess, Severity: envelope.SeverityInfo},
		},
		Message: &investment.StatementResponse{
			AsOf:         codec.Date(2024, 3, 31),
			CurrencyCode: "USD",
			Account:      common.InvestmentAccount{BrokerID: "broker.example.com", AcctID: "X-9"},
			Transactions: &investment.TransactionList{
				Start:        codec.Date(2024, 3, 1),
				End:          codec.Date(2024, 3, 31),
				Transactions: []investment.Transaction{buy, sell, income, cash},
			},
			Positions: &investment.PositionList{Positions: []investment.Position{stock, debt}},
			Balance:   &investment.Balance{
				AvailableCash: amt("500.00"), MarginBalance: amt("0.00"), ShortBalance: amt("-260.00"),
			},
		},
	}}}
}

func TestRoundTrip_BothDialects(t *testing.T) {
	reg := catalog.Registry()
	env := (&envelope.Envelope{}).Add(statementSet())
	want, err := envelope.Encode(env, reg)
	require.NoError(t, err)

	for _, name := range []string{dialect.SGML, dialect.XML} {
		t.Run(name, func(t *testing.T) {
			d, err := dialect.Lookup(name)
			require.NoError(t, err)
			var buf bytes.Buffer
			require.NoError(t, envelope.Write(&buf, env, d, reg))

			got, err := envelope.Read(&buf, reg)
			require.NoError(t, err)
			assert.Empty(t, got.Warnings)

			have, err := envelope.Encode(got, reg)
			require.NoError(t, err)
			assert.Equal(t, want, have)

			st := got.MessageSets[0].(*investment.ResponseMessageSet).Statements[0].Message
			require.NotNil(t, st)

			var ids []string
			for _, tx := range st.Transactions.Transactions {
				ids = append(ids, tx.TransactionID())
			}
			assert.Equal(t, []string{"B-1", "S-1", "I-1", "C-1"}, ids)

			buy, ok := st.Transactions.Transactions[0].(investment.BuyStock)
			require.True(t, ok)
			assert.Equal(t, investment.Buy, buy.Type)
			assert.Equal(t, "12.34", buy.Buy.UnitPrice.String())
			assert.Equal(t, common.SubAcctCash, *buy.Buy.SubAcctSec)

			sell, ok := st.Transactions.Transactions[1].(investment.SellStock)
			require.True(t, ok)
			assert.False(t, *sell.Sell.TaxExempt)

			_, ok = st.Positions.Positions[1].(investment.DebtPosition)
			assert.True(t, ok)
			assert.Equal(t, bond, st.Positions.Positions[1].Info().Security)
		})
	}
}

func TestMarshal_BuyStockFlattensBase(t *testing.T) {
	buy := investment.BuyStock{Type: investment.BuyToCover}
	buy.Buy = investment.BuyInfo{
		Info:      investment.TransactionInfo{FITID: "B-2", Traded: codec.Date(2024, 5, 1)},
		Security:  acme,
		Units:     amt("10"),
		UnitPrice: amt("1.5"),
		Total:     amt("-15.0"),
	}
	n, err := ofxkit.Marshal(buy)
	require.NoError(t, err)

	var tags []string
	for _, c := range n.Children {
		tags = append(tags, c.Tag)
	}
	assert.Equal(t, []string{"INVBUY", "BUYTYPE"}, tags)

	inv, ok := n.Child("INVBUY")
	require.True(t, ok)
	var inner []string
	for _, c := range inv.Children {
		inner = append(inner, c.Tag)
	}
	assert.Equal(t, []string{"INVTRAN", "SECID", "UNITS", "UNITPRICE", "TOTAL"}, inner)
}

func TestUnmarshal_UnrecognizedIncomeType(t *testing.T) {
	n := wire.Aggregate("INCOME",
		wire.Aggregate("INVTRAN", wire.Leaf("FITID", "I-9"), wire.Leaf("DTTRADE", "20240102")),
		wire.Aggregate("SECID", wire.Leaf("UNIQUEID", "1"), wire.Leaf("UNIQUEIDTYPE", "CUSIP")),
		wire.Leaf("INCOMETYPE", "BONUS"),
		wire.Leaf("TOTAL", "1.00"),
	)
	dm, err := ofxkit.UnmarshalWithMeta[investment.Income](n)
	require.NoError(t, err)
	assert.Equal(t, investment.IncomeType(codec.Unrecognized), dm.Value.Type)
	require.Len(t, dm.Warnings, 1)
	assert.Equal(t, ofxkit.CodeUnrecognizedEnum, dm.Warnings[0].Code)
	assert.Equal(t, "BONUS", dm.Warnings[0].Hint)

	_, err = ofxkit.Marshal(dm.Value)
	require.Error(t, err)
	assert.ErrorIs(t, err, ofxkit.ErrValueConversion)
}

func TestUnmarshal_MissingSubAccountFund(t *testing.T) {
	n := wire.Aggregate("INVBANKTRAN",
		wire.Aggregate("STMTTRN",
			wire.Leaf("TRNTYPE", "INT"), wire.Leaf("DTPOSTED", "20240102"),
			wire.Leaf("TRNAMT", "1"), wire.Leaf("FITID", "x"),
		),
	)
	_, err := ofxkit.Unmarshal[investment.BankTransaction](n)
	iss, ok := ofxkit.AsIssues(err)
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, ofxkit.CodeRequired, iss[0].Code)
	assert.Equal(t, "/INVBANKTRAN/SUBACCTFUND", iss[0].Path)
}
