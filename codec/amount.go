package codec

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount reads a locale-invariant decimal. Looser producers write a
// comma as the fractional separator; a single comma with no point is
// accepted. Mixed separators are ambiguous and rejected.
func ParseAmount(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Decimal{}, convErr(KeyAmount, text, "empty amount", nil)
	}
	commas := strings.Count(s, ",")
	if commas > 0 {
		if commas > 1 || strings.Contains(s, ".") {
			return decimal.Decimal{}, convErr(KeyAmount, text, "ambiguous decimal separator", nil)
		}
		s = strings.Replace(s, ",", ".", 1)
	}
	s = strings.TrimPrefix(s, "+")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, convErr(KeyAmount, text, "invalid decimal", err)
	}
	return d, nil
}

// FormatAmount renders d with '.' and keeps its scale, so 315.50 stays 315.50.
func FormatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

type amountCodec struct{}

func (amountCodec) Encode(v any) (string, error) {
	switch d := v.(type) {
	case decimal.Decimal:
		return FormatAmount(d), nil
	case float64:
		return FormatAmount(decimal.NewFromFloat(d)), nil
	case int:
		return FormatAmount(decimal.NewFromInt(int64(d))), nil
	}
	return "", convErr(KeyAmount, "", fmt.Sprintf("expected decimal.Decimal, got %T", v), nil)
}

func (amountCodec) Decode(text string) (any, error) {
	d, err := ParseAmount(text)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// IsZero is always false: a zero balance is a value, optional amounts use
// pointer fields.
func (amountCodec) IsZero(v any) bool { return false }
