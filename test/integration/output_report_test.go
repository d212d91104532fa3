package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fineflow77/btcpowerlawsimulator/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputGeneration(t *testing.T) {
	report := loadAndRun(t)

	for _, format := range []string{"console", "summary", "csv", "csv-summary", "html", "json"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, output.Render(&buf, report, format))
			assert.NotEmpty(t, buf.String())
			assert.Contains(t, buf.String(), "Fixed 10M")
		})
	}
}

func TestGenerateAllReports(t *testing.T) {
	report := loadAndRun(t)
	dir := t.TempDir()

	written, err := output.GenerateReport(report, "all", dir)
	require.NoError(t, err)
	require.Len(t, written, 6)

	for _, name := range written {
		info, err := os.Stat(name)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
		assert.Equal(t, dir, filepath.Dir(name))
		assert.True(t, strings.HasPrefix(filepath.Base(name), "btcsim_"))
	}
}

func TestFormatters(t *testing.T) {
	report := loadAndRun(t)
	var buf bytes.Buffer
	require.NoError(t, output.Render(&buf, report, "html"))

	html := buf.String()
	assert.Contains(t, html, "Key Assumptions")
	assert.Contains(t, html, "Depleted in 2026")
	assert.Contains(t, html, "<svg")
}
