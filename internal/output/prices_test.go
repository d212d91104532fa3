package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fineflow77/btcpowerlawsimulator/internal/calculation"
	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPriceTable(t *testing.T) PriceTable {
	t.Helper()
	points, err := calculation.YearlyPrices(2024, 2026, domain.Standard)
	require.NoError(t, err)
	return PriceTable{
		Model:        domain.Standard,
		ExchangeRate: decimal.NewFromInt(150),
		Currency:     "JPY",
		Locale:       "en-US",
		Prices:       points,
	}
}

func TestRenderPricesConsole(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPrices(&buf, testPriceTable(t), "console"))

	out := buf.String()
	assert.Contains(t, out, "BTC POWER LAW PRICES")
	assert.Contains(t, out, "1 USD = 150 JPY")
	assert.Contains(t, out, "$96,891", "2024 year-end standard price")
	assert.Contains(t, out, "14,533,712", "local price is price times rate")
	assert.Contains(t, out, "Price")
}

func TestRenderPricesCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPrices(&buf, testPriceTable(t), "csv"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Year,PriceUSD,PriceLocal,Model", lines[0])
	assert.Equal(t, "2024,96891.41,14533712,standard", lines[1])
}

func TestRenderPricesJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderPrices(&buf, testPriceTable(t), "json-pretty"))

	var decoded struct {
		Model  string `json:"model"`
		Prices []struct {
			Year int `json:"year"`
		} `json:"prices"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "standard", decoded.Model)
	require.Len(t, decoded.Prices, 3)
	assert.Equal(t, 2026, decoded.Prices[2].Year)
}

func TestRenderPricesUnsupported(t *testing.T) {
	err := RenderPrices(&bytes.Buffer{}, testPriceTable(t), "html")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
