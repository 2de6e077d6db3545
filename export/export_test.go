package export_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ofxkit/domain/banking"
	"github.com/reoring/ofxkit/domain/common"
	"github.com/reoring/ofxkit/export"
	"github.com/reoring/ofxkit/wire"
)

func tree() *wire.Node {
	return wire.Aggregate("OFX",
		wire.Aggregate("SIGNONMSGSRSV1",
			wire.Aggregate("SONRS",
				wire.Aggregate("STATUS", wire.Leaf("CODE", "0"), wire.Leaf("SEVERITY", "INFO")),
				wire.Leaf("DTSERVER", "20240105"),
				wire.Leaf("LANGUAGE", "ENG"),
			),
		),
		wire.Aggregate("SECLISTRS"),
		wire.Leaf("MEMO", ""),
	)
}

func TestRoundTrip_AllFormats(t *testing.T) {
	for _, format := range []string{export.JSON, export.YAML, export.CBOR} {
		t.Run(format, func(t *testing.T) {
			data, err := export.Encode(tree(), format)
			require.NoError(t, err)
			got, err := export.Decode(data, format)
			require.NoError(t, err)
			assert.Equal(t, tree(), got)

			memo, ok := got.Child("MEMO")
			require.True(t, ok)
			assert.True(t, memo.IsLeaf(), "empty leaf keeps its text")
			empty, ok := got.Child("SECLISTRS")
			require.True(t, ok)
			assert.False(t, empty.IsLeaf(), "empty aggregate stays an aggregate")
		})
	}
}

func TestEncodeJSON_Shape(t *testing.T) {
	data, err := export.EncodeJSON(wire.Aggregate("STATUS", wire.Leaf("CODE", "0")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"tag":"STATUS","children":[{"tag":"CODE","text":"0"}]}`, string(data))
}

func TestDecode_RejectsLeafWithChildren(t *testing.T) {
	_, err := export.DecodeJSON([]byte(`{"tag":"A","text":"x","children":[{"tag":"B"}]}`))
	require.ErrorIs(t, err, wire.ErrLeafWithChildren)

	_, err = export.Encode(&wire.Node{}, export.JSON)
	require.ErrorIs(t, err, wire.ErrEmptyTag)

	_, err = export.Encode(tree(), "toml")
	require.Error(t, err)
}

func TestOutlineOf_StatementResponse(t *testing.T) {
	o, err := export.OutlineOf(banking.StatementResponse{})
	require.NoError(t, err)
	assert.Equal(t, "STMTRS", o.Tag)

	var names []string
	for _, m := range o.Members {
		names = append(names, m.Name)
	}
	assert.Equal(t, "CURDEF", names[0])
	assert.Contains(t, names, "BANKACCTFROM")
	assert.Contains(t, names, "LEDGERBAL")

	acct := o.Members[1]
	require.NotNil(t, acct.Nested)
	assert.True(t, acct.Required)
	for _, m := range acct.Nested.Members {
		if m.Name == "ACCTTYPE" {
			assert.Contains(t, m.Literals, string(common.Checking))
		}
	}

	data, err := export.EncodeOutline(o, export.YAML)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "tag: STMTRS\n"))

	_, err = export.EncodeOutline(o, export.CBOR)
	require.Error(t, err)
}
