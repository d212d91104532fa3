package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fineflow77/btcpowerlawsimulator/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()

	_, err := parser.LoadFromFile(exampleConfig)
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("withdrawal:\n  - initial_btc: 1\n    amount: 1\n    tax_rate_percent: 100\n"), 0o644))
	_, err = parser.LoadFromFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestExampleConfigurationRoundTrip(t *testing.T) {
	parser := config.NewInputParser()
	path := filepath.Join(t.TempDir(), "example.yaml")

	require.NoError(t, parser.SaveConfiguration(parser.CreateExampleConfiguration(), path, false))
	cfg, err := parser.LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Accumulation, 2)
	assert.Len(t, cfg.Withdrawal, 2)
}
