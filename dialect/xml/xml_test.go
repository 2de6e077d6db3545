package xml_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ofxkit/dialect"
	ofxxml "github.com/reoring/ofxkit/dialect/xml"
	"github.com/reoring/ofxkit/wire"
)

const profile = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<?OFX OFXHEADER="200" VERSION="220" SECURITY="NONE" OLDFILEUID="NONE" NEWFILEUID="NONE"?>
<OFX>
  <SIGNONMSGSRSV1>
    <SONRS>
      <STATUS>
        <CODE>0</CODE>
        <SEVERITY>INFO</SEVERITY>
        <MESSAGE></MESSAGE>
      </STATUS>
      <DTSERVER>20230115120000.000[-5:EST]</DTSERVER>
      <LANGUAGE>ENG</LANGUAGE>
    </SONRS>
  </SIGNONMSGSRSV1>
  <!-- trailing comment -->
  <BANKMSGSRSV1>
    <STMTTRNRS>
      <MEMO>A &amp; B</MEMO>
    </STMTTRNRS>
  </BANKMSGSRSV1>
</OFX>
`

func TestRead_Document(t *testing.T) {
	h, root, err := ofxxml.Dialect{}.Read(strings.NewReader(profile))
	require.NoError(t, err)

	assert.Equal(t, []string{"OFXHEADER", "VERSION", "SECURITY", "OLDFILEUID", "NEWFILEUID"}, h.Keys())
	assert.Equal(t, "220", h.Value(wire.HeaderVersion))

	require.Len(t, root.Children, 2)
	sonrs := root.Children[0].Children[0]
	status, ok := sonrs.Child("STATUS")
	require.True(t, ok)
	msg, ok := status.Child("MESSAGE")
	require.True(t, ok)
	assert.True(t, msg.IsLeaf(), "element without children is a leaf")
	assert.Equal(t, "", msg.Value())

	dt, _ := sonrs.Child("DTSERVER")
	assert.Equal(t, "20230115120000.000[-5:EST]", dt.Value())

	memo, _ := root.Children[1].Children[0].Child("MEMO")
	assert.Equal(t, "A & B", memo.Value())
}

func TestRead_ByteOrderMark(t *testing.T) {
	in := "\xef\xbb\xbf" + profile

	d, r, err := dialect.Sniff(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, dialect.XML, d.Name())
	h, root, err := d.Read(r)
	require.NoError(t, err)
	assert.Equal(t, "220", h.Value(wire.HeaderVersion))
	assert.Equal(t, "OFX", root.Tag)
	require.Len(t, root.Children, 2)

	_, root, err = ofxxml.Dialect{}.Read(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "OFX", root.Tag)
}

func TestRead_Errors(t *testing.T) {
	_, _, err := ofxxml.Dialect{}.Read(strings.NewReader(`<?xml version="1.0"?><OFX><A>1</A></OFX>`))
	assert.ErrorIs(t, err, dialect.ErrMalformedHeader)

	_, _, err = ofxxml.Dialect{}.Read(strings.NewReader(`<?OFX OFXHEADER=200 ?><OFX></OFX>`))
	assert.ErrorIs(t, err, dialect.ErrMalformedHeader)

	_, _, err = ofxxml.Dialect{}.Read(strings.NewReader(`<?OFX OFXHEADER="200"?><OFX><CODE>0<SEVERITY>INFO</SEVERITY></OFX>`))
	assert.ErrorIs(t, err, dialect.ErrSyntax)

	_, _, err = ofxxml.Dialect{}.Read(strings.NewReader(`<?OFX OFXHEADER="200"?><OFX><A><B>1</B></A></OFX>`), dialect.ReadOptions{MaxDepth: 2})
	assert.ErrorIs(t, err, dialect.ErrMaxDepth)
}

func TestRead_Latin1Charset(t *testing.T) {
	doc := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><?OFX OFXHEADER=\"200\"?><OFX><NAME>Caf\xe9</NAME></OFX>")
	_, root, err := ofxxml.Dialect{}.Read(bytes.NewReader(doc))
	require.NoError(t, err)
	name, _ := root.Child("NAME")
	assert.Equal(t, "Café", name.Value())
}

func TestWrite_RoundTrip(t *testing.T) {
	root := wire.Aggregate("OFX",
		wire.Aggregate("STATUS", wire.Leaf("CODE", "0"), wire.Leaf("SEVERITY", "INFO")),
		wire.Leaf("MEMO", "x < y & z"),
		wire.Leaf("NAME", "Café"),
	)
	sgmlHeader := wire.NewHeader(wire.HeaderOFX, "100", wire.HeaderData, "OFXSGML", wire.HeaderVersion, "211", wire.HeaderCharset, "1252")

	var buf bytes.Buffer
	require.NoError(t, ofxxml.Dialect{}.Write(&buf, sgmlHeader, root))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`+"\n"+
		`<?OFX OFXHEADER="200" VERSION="211" SECURITY="NONE" OLDFILEUID="NONE" NEWFILEUID="NONE"?>`+"\n<OFX>"), out)
	assert.Contains(t, out, "\n    <CODE>0</CODE>\n")
	assert.Contains(t, out, "x &lt; y &amp; z")

	h, back, err := ofxxml.Dialect{}.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, "211", h.Value(wire.HeaderVersion))
	assert.Equal(t, root.String(), back.String())
}
