// Package currency converts and formats estimated watch values using static
// USD-based exchange rates.
package currency

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnknownCurrency is returned for codes without an exchange rate.
var ErrUnknownCurrency = errors.New("unknown currency")

type currencyInfo struct {
	code   string
	rate   decimal.Decimal // units per USD
	symbol string
}

var currencies = []currencyInfo{
	{"USD", decimal.RequireFromString("1.0"), "$"},
	{"EUR", decimal.RequireFromString("0.92"), "€"},
	{"GBP", decimal.RequireFromString("0.79"), "£"},
	{"JPY", decimal.RequireFromString("149.50"), "¥"},
	{"CHF", decimal.RequireFromString("0.88"), "CHF"},
	{"AUD", decimal.RequireFromString("1.52"), "A$"},
	{"CAD", decimal.RequireFromString("1.36"), "C$"},
	{"CNY", decimal.RequireFromString("7.24"), "¥"},
	{"HKD", decimal.RequireFromString("7.83"), "HK$"},
}

func lookup(code string) (currencyInfo, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range currencies {
		if c.code == code {
			return c, nil
		}
	}
	return currencyInfo{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
}

// Codes returns the supported currency codes.
func Codes() []string {
	codes := make([]string, len(currencies))
	for i, c := range currencies {
		codes[i] = c.code
	}
	return codes
}

// Normalize returns the canonical form of a supported code.
func Normalize(code string) (string, error) {
	c, err := lookup(code)
	if err != nil {
		return "", err
	}
	return c.code, nil
}

// Symbol returns the display symbol of a supported code.
func Symbol(code string) (string, error) {
	c, err := lookup(code)
	if err != nil {
		return "", err
	}
	return c.symbol, nil
}

// Convert converts amount between currencies through USD and rounds to whole
// units.
func Convert(amount float64, from, to string) (float64, error) {
	src, err := lookup(from)
	if err != nil {
		return 0, err
	}
	dst, err := lookup(to)
	if err != nil {
		return 0, err
	}
	if src.code == dst.code {
		return amount, nil
	}

	usd := decimal.NewFromFloat(amount).Div(src.rate)
	return usd.Mul(dst.rate).Round(0).InexactFloat64(), nil
}

// Format renders amount with the currency symbol and digit grouping, for
// example "$45,000" or "HK$352,350".
func Format(amount float64, code string) string {
	return FormatIn(language.English, amount, code)
}

// FormatIn is Format with the grouping conventions of tag.
func FormatIn(tag language.Tag, amount float64, code string) string {
	p := message.NewPrinter(tag)
	whole := decimal.NewFromFloat(amount).Round(0).IntPart()

	c, err := lookup(code)
	if err != nil {
		return p.Sprintf("%d %s", whole, strings.ToUpper(strings.TrimSpace(code)))
	}
	return c.symbol + p.Sprintf("%d", whole)
}
