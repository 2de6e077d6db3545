package tax1099_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/codec"
	"github.com/reoring/ofxkit/domain/common"
	"github.com/reoring/ofxkit/domain/tax1099"
)

func form() tax1099.Form1099B {
	term := tax1099.LongTerm
	return tax1099.Form1099B{
		ServerID: "srv-1",
		Year:     "2023",
		Extended: tax1099.ExtendedInfo{Details: []tax1099.ProceedsDetail{{
			Acquired:  common.Ptr(codec.Date(2020, 6, 1)),
			Sold:      codec.Date(2023, 9, 12),
			Security:  "ACME CORP",
			Shares:    common.Ptr(decimal.RequireFromString("10")),
			CostBasis: decimal.RequireFromString("1000.00"),
			SalePrice: decimal.RequireFromString("1450.25"),
			Term:      &term,
			WashSale:  common.Ptr(false),
		}}},
		Payer: tax1099.PayerAddress{
			Name1: "Example Brokerage", Address1: "1 Wall St", City: "New York", State: "NY", PostalCode: "10005",
		},
		PayerID:   "12-3456789",
		Recipient: tax1099.RecipientAddress{
			Name1: "Jane Doe", Address1: "2 Elm St", City: "Springfield", State: "IL", PostalCode: "62701",
		},
		RecipientID:      "***-**-1234",
		RecipientAccount: "X-9",
	}
}

func TestMarshal_FormOrder(t *testing.T) {
	n, err := ofxkit.Marshal(form())
	require.NoError(t, err)

	var tags []string
	for _, c := range n.Children {
		tags = append(tags, c.Tag)
	}
	assert.Equal(t, []string{"SRVRTID", "TAXYEAR", "EXTDBINFO_V100", "PAYERADDR", "PAYERID", "RECADDR", "RECID", "RECACCT"}, tags)

	ext, ok := n.Child("EXTDBINFO_V100")
	require.True(t, ok)
	det, ok := ext.Child("PROCDET_V100")
	require.True(t, ok)
	wash, ok := det.Child("WASHSALE")
	require.True(t, ok)
	assert.Equal(t, "N", wash.Value())
	term, ok := det.Child("LONGSHORT")
	require.True(t, ok)
	assert.Equal(t, "LONG", term.Value())
}

func TestRoundTrip_Form(t *testing.T) {
	n, err := ofxkit.Marshal(form())
	require.NoError(t, err)
	got, err := ofxkit.Unmarshal[tax1099.Form1099B](n)
	require.NoError(t, err)

	require.Len(t, got.Extended.Details, 1)
	d := got.Extended.Details[0]
	assert.True(t, d.SalePrice.Equal(decimal.RequireFromString("1450.25")))
	assert.Equal(t, tax1099.LongTerm, *d.Term)
	assert.False(t, *d.WashSale)
	assert.Nil(t, d.Noncovered)
	assert.Equal(t, "Jane Doe", got.Recipient.Name1)

	again, err := ofxkit.Marshal(got)
	require.NoError(t, err)
	assert.Equal(t, n, again)
}

func TestUnmarshal_RequestNeedsYear(t *testing.T) {
	n, err := ofxkit.Marshal(tax1099.Request{Years: []string{"2022", "2023"}})
	require.NoError(t, err)
	require.Len(t, n.Children, 2)

	_, err = ofxkit.Marshal(tax1099.Request{})
	iss, ok := ofxkit.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, ofxkit.CodeIncompleteAggregate, iss[0].Code)
}
