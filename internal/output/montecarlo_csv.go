package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fincity/investing-engine/internal/domain"
)

// MonteCarloCSVReport generates CSV exports for Monte Carlo results.
type MonteCarloCSVReport struct {
	Result *domain.MonteCarloResult
}

// GenerateSummaryCSV writes aggregate statistics as metric/value rows.
func (m *MonteCarloCSVReport) GenerateSummaryCSV(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"Metric", "Value"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	final := m.Result.Bands[len(m.Result.Bands)-1]
	rows := [][]string{
		{"Runs", strconv.Itoa(m.Result.Runs)},
		{"Profile", m.Result.Profile},
		{"Seed", strconv.FormatInt(m.Result.Seed, 10)},
		{"Median End Value", FormatCurrency(final.P50)},
		{"10th Percentile End Value", FormatCurrency(final.P10)},
		{"90th Percentile End Value", FormatCurrency(final.P90)},
	}
	if m.Result.SuccessProb != nil {
		rows = append(rows, []string{"Success Probability", FormatPercentage(*m.Result.SuccessProb)})
	}

	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return nil
}

// GenerateBandsCSV writes the percentile bands, one row per month.
func (m *MonteCarloCSVReport) GenerateBandsCSV(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"month", "p10", "p25", "p50", "p75", "p90"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, band := range m.Result.Bands {
		row := []string{
			strconv.Itoa(band.Month),
			band.P10.StringFixed(2),
			band.P25.StringFixed(2),
			band.P50.StringFixed(2),
			band.P75.StringFixed(2),
			band.P90.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return nil
}

// GenerateAllCSVReports writes the summary and bands CSVs into outputDir.
func (m *MonteCarloCSVReport) GenerateAllCSVReports(outputDir string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := m.GenerateSummaryCSV(filepath.Join(outputDir, "montecarlo_summary.csv")); err != nil {
		return err
	}
	return m.GenerateBandsCSV(filepath.Join(outputDir, "montecarlo_bands.csv"))
}
