package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fineflow77/btcpowerlawsimulator/internal/domain"
)

// Render writes a single format to w. "all" is not accepted here since the
// formats cannot share one stream.
func Render(w io.Writer, report *domain.SimulationReport, format string) error {
	if report == nil {
		return fmt.Errorf("%w: report is required", domain.ErrInvalidInput)
	}
	f := GetFormatterByName(format)
	if f == nil {
		return unsupportedFormat(format)
	}
	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	_, err = w.Write(data)
	return err
}

// GenerateReport writes the report to timestamped files in dir and returns
// their paths. "all" writes one file per registered formatter.
func GenerateReport(report *domain.SimulationReport, format, dir string) ([]string, error) {
	if report == nil {
		return nil, fmt.Errorf("%w: report is required", domain.ErrInvalidInput)
	}

	if strings.EqualFold(strings.TrimSpace(format), "all") {
		var written []string
		for _, f := range builtInFormatters {
			name, err := WriteFormatted(f, report, dir)
			if err != nil {
				return written, err
			}
			written = append(written, name)
		}
		return written, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, unsupportedFormat(format)
	}
	name, err := WriteFormatted(f, report, dir)
	if err != nil {
		return nil, err
	}
	return []string{name}, nil
}
