package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesPathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	assert.Equal(t, filepath.Join(dir, "btcsim"), PreferencesDir())
	assert.Equal(t, filepath.Join(dir, "btcsim", "config.toml"), PreferencesPath())
}

func TestLoadPreferencesMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	prefs, err := LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, DefaultPreferences(), prefs)
	assert.False(t, PreferencesExist())
}

func TestSaveAndLoadPreferences(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	rate := 155.0
	tax := 0.0
	prefs := DefaultPreferences()
	prefs.Assumptions.ExchangeRate = &rate
	prefs.Assumptions.TaxRatePercent = &tax
	prefs.Assumptions.PriceModel = "conservative"
	prefs.Output.Format = "html"

	require.NoError(t, SavePreferences(prefs))
	assert.True(t, PreferencesExist())

	loaded, err := LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, "html", loaded.Output.Format)
	require.NotNil(t, loaded.Assumptions.ExchangeRate)
	assert.Equal(t, 155.0, *loaded.Assumptions.ExchangeRate)

	g, err := loaded.GlobalAssumptions()
	require.NoError(t, err)
	assert.True(t, g.ExchangeRate.Equal(decimal.NewFromInt(155)))
	assert.True(t, g.TaxRatePercent.IsZero())
	assert.Equal(t, domain.Conservative, g.PriceModel)
}

func TestLoadPreferencesPartialFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "btcsim"), 0o755))
	require.NoError(t, os.WriteFile(PreferencesPath(), []byte("[assumptions]\nlocale = \"en-US\"\ncurrency = \"USD\"\n"), 0o600))

	prefs, err := LoadPreferences()
	require.NoError(t, err)
	assert.Equal(t, "console", prefs.Output.Format, "unset sections keep defaults")
	assert.Equal(t, ":8080", prefs.Server.Addr)

	g, err := prefs.GlobalAssumptions()
	require.NoError(t, err)
	assert.Equal(t, "USD", g.Currency)
	assert.Equal(t, "en-US", g.Locale)
	assert.True(t, g.ExchangeRate.Equal(domain.DefaultExchangeRate))
}

func TestLoadPreferencesRejectsBadValues(t *testing.T) {
	testCases := map[string]string{
		"malformed":     "[assumptions\n",
		"unknown model": "[assumptions]\nprice_model = \"hyper\"\n",
		"negative rate": "[assumptions]\nexchange_rate = -1.0\n",
	}

	for name, content := range testCases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("XDG_CONFIG_HOME", dir)
			require.NoError(t, os.MkdirAll(filepath.Join(dir, "btcsim"), 0o755))
			require.NoError(t, os.WriteFile(PreferencesPath(), []byte(content), 0o600))

			_, err := LoadPreferences()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parsing preferences")
		})
	}
}
