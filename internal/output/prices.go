package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
)

// PriceTable is a projected price series ready for display.
type PriceTable struct {
	Model        domain.PriceModelVariant  `json:"model"`
	ExchangeRate decimal.Decimal           `json:"exchange_rate"`
	Currency     string                    `json:"currency"`
	Locale       string                    `json:"-"`
	Prices       []domain.YearlyPricePoint `json:"prices"`
}

// RenderPrices writes the series as a console table, CSV or JSON.
func RenderPrices(w io.Writer, pt PriceTable, format string) error {
	var (
		data []byte
		err  error
	)
	switch NormalizeFormatName(format) {
	case "console", "summary":
		data = consolePrices(pt)
	case "csv", "csv-summary":
		data, err = csvPrices(pt)
	case "json":
		data, err = json.MarshalIndent(pt, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("%w: %q (prices support console, csv and json)", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func consolePrices(pt PriceTable) []byte {
	cf := NewCurrencyFormatter(pt.Currency, pt.Locale)
	usd := NewCurrencyFormatter("USD", pt.Locale)

	t := table{
		Title:   fmt.Sprintf("%s, 1 USD = %s %s", pt.Model.Label(), pt.ExchangeRate.String(), pt.Currency),
		Headers: []string{"Year", "Price (USD)", "Price (" + pt.Currency + ")"},
	}
	values := make([]float64, len(pt.Prices))
	for i, p := range pt.Prices {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(p.Year),
			usd.Format(p.Price),
			cf.Format(p.Price.Mul(pt.ExchangeRate)),
		})
		values[i] = p.Price.InexactFloat64()
	}

	var buf bytes.Buffer
	buf.WriteString(renderTitle("BTC POWER LAW PRICES"))
	buf.WriteString("\n\n")
	buf.WriteString(renderTable(t))
	if len(values) > 1 {
		buf.WriteString(labeledSparkline("Price", btcStyle, values))
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

func csvPrices(pt PriceTable) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"Year", "PriceUSD", "PriceLocal", "Model"}); err != nil {
		return nil, err
	}
	for _, p := range pt.Prices {
		record := []string{
			strconv.Itoa(p.Year),
			p.Price.StringFixed(2),
			p.Price.Mul(pt.ExchangeRate).StringFixed(0),
			pt.Model.String(),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
