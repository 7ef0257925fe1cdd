package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/fincity/investing-engine/internal/domain"
)

// CSVFormatter renders the monthly path as a CSV table, one row per month.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.SimulationResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"month", "total", "stocks", "bonds", "cash"}
	if err := writer.Write(header); err != nil {
		return nil, err
	}

	for _, snap := range result.Path {
		row := []string{
			strconv.Itoa(snap.Month),
			snap.Total.StringFixed(2),
			snap.Stocks.StringFixed(2),
			snap.Bonds.StringFixed(2),
			snap.Cash.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
