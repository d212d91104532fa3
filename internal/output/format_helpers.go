package output

import (
	"strconv"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// CurrencyFormatter renders local-currency amounts for one currency and
// locale. Amounts are shown without fractional digits.
type CurrencyFormatter struct {
	printer *message.Printer
	symbol  string
}

// NewCurrencyFormatter builds a formatter for an ISO 4217 code and a BCP 47
// locale. An unknown code is shown as a prefix; an unparsable locale falls
// back to root formatting rules.
func NewCurrencyFormatter(code, locale string) CurrencyFormatter {
	if code == "" {
		code = domain.DefaultCurrency
	}
	if locale == "" {
		locale = domain.DefaultLocale
	}
	tag := language.Make(locale)
	p := message.NewPrinter(tag)

	symbol := code + " "
	if unit, err := currency.ParseISO(code); err == nil {
		symbol = p.Sprint(currency.NarrowSymbol(unit))
	}
	return CurrencyFormatter{printer: p, symbol: symbol}
}

// Format renders amount rounded to a whole unit with locale grouping.
func (cf CurrencyFormatter) Format(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	return sign + cf.symbol + cf.Number(rounded, 0)
}

// Number renders d with locale grouping and at most places fractional digits.
func (cf CurrencyFormatter) Number(d decimal.Decimal, places int) string {
	return cf.printer.Sprint(number.Decimal(d.Round(int32(places)).InexactFloat64(),
		number.MaxFractionDigits(places), number.MinFractionDigits(0)))
}

// FormatCurrency formats amount in the default currency and locale.
func FormatCurrency(amount decimal.Decimal) string {
	return NewCurrencyFormatter(domain.DefaultCurrency, domain.DefaultLocale).Format(amount)
}

// FormatBTC formats a BTC quantity with 4 decimals.
func FormatBTC(amount decimal.Decimal) string { return amount.StringFixed(4) + " BTC" }

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
