package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincity/investing-engine/internal/domain"
)

func sampleResult(months int) *domain.SimulationResult {
	path := make([]domain.PortfolioSnapshot, 0, months)
	for m := 1; m <= months; m++ {
		total := decimal.NewFromInt(int64(10000 + m*10))
		path = append(path, domain.PortfolioSnapshot{
			Month:  m,
			Total:  total,
			Stocks: total.Mul(decimal.NewFromFloat(0.60)),
			Bonds:  total.Mul(decimal.NewFromFloat(0.30)),
			Cash:   total.Mul(decimal.NewFromFloat(0.10)),
		})
	}
	return &domain.SimulationResult{
		Path: path,
		Stats: domain.SimulationStats{
			EndValue:    path[len(path)-1].Total,
			CAGR:        decimal.NewFromFloat(0.0712),
			Volatility:  decimal.NewFromFloat(0.0321),
			MaxDrawdown: decimal.NewFromFloat(0.1550),
			FeeTotal:    decimal.NewFromFloat(42.50),
		},
		Profile: "balanced",
		Mix:     domain.NewAssetMix(0.60, 0.30, 0.10),
		Seed:    12345,
	}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantName string
		wantErr  bool
	}{
		{"console", "console", "console", false},
		{"json", "json", "json", false},
		{"csv", "csv", "csv", false},
		{"uppercase", "JSON", "json", false},
		{"alias text", "text", "console", false},
		{"alias table", "table", "console", false},
		{"alias json-pretty", "json-pretty", "json", false},
		{"whitespace", "  csv  ", "csv", false},
		{"unknown", "yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := GetFormatterByName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, f.Name())
		})
	}
}

func TestNormalizeFormatName(t *testing.T) {
	assert.Equal(t, "console", NormalizeFormatName("TEXT"))
	assert.Equal(t, "csv", NormalizeFormatName("csv-simple"))
	assert.Equal(t, "custom", NormalizeFormatName(" Custom "))
}

func TestAvailableFormatterNames(t *testing.T) {
	names := AvailableFormatterNames()
	assert.Equal(t, []string{"console", "csv", "json"}, names)
}

func TestFormatterFunc(t *testing.T) {
	ff := FormatterFunc{
		ID: "noop",
		F: func(result *domain.SimulationResult) ([]byte, error) {
			return []byte(result.Profile), nil
		},
	}
	assert.Equal(t, "noop", ff.Name())
	out, err := ff.Format(sampleResult(1))
	require.NoError(t, err)
	assert.Equal(t, "balanced", string(out))
}

func TestConsoleFormatter(t *testing.T) {
	result := sampleResult(24)
	out, err := ConsoleFormatter{}.Format(result)
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "PORTFOLIO SIMULATION")
	assert.Contains(t, text, "Profile: balanced")
	assert.Contains(t, text, "Seed:    12345")
	assert.Contains(t, text, "CAGR:          7.12%")
	assert.Contains(t, text, "Max drawdown:  15.50%")
	assert.Contains(t, text, "Fees paid:     $42.50")
	assert.Contains(t, text, "Year  1:")
	assert.Contains(t, text, "Year  2:")
	assert.Contains(t, text, domain.Disclaimer)
}

func TestJSONFormatterRoundTrip(t *testing.T) {
	result := sampleResult(3)
	out, err := JSONFormatter{}.Format(result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "balanced", decoded["profile"])
	path, ok := decoded["path"].([]any)
	require.True(t, ok)
	assert.Len(t, path, 3)
}

func TestCSVFormatter(t *testing.T) {
	result := sampleResult(6)
	out, err := CSVFormatter{}.Format(result)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)
	assert.Equal(t, []string{"month", "total", "stocks", "bonds", "cash"}, records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "10010.00", records[1][1])
}

func TestMonteCarloCSVReport(t *testing.T) {
	prob := decimal.NewFromFloat(0.73)
	report := &MonteCarloCSVReport{
		Result: &domain.MonteCarloResult{
			Bands: []domain.MonteCarloBand{
				{Month: 1,
					P10: decimal.NewFromInt(9000), P25: decimal.NewFromInt(9500),
					P50: decimal.NewFromInt(10000), P75: decimal.NewFromInt(10500),
					P90: decimal.NewFromInt(11000)},
				{Month: 2,
					P10: decimal.NewFromInt(9100), P25: decimal.NewFromInt(9600),
					P50: decimal.NewFromInt(10100), P75: decimal.NewFromInt(10600),
					P90: decimal.NewFromInt(11100)},
			},
			SuccessProb: &prob,
			Runs:        100,
			Profile:     "aggressive",
			Seed:        7,
		},
	}

	dir := t.TempDir()
	require.NoError(t, report.GenerateAllCSVReports(dir))

	summary, err := os.ReadFile(filepath.Join(dir, "montecarlo_summary.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(summary), "Runs,100")
	assert.Contains(t, string(summary), "Success Probability,73.00%")

	bandsData, err := os.ReadFile(filepath.Join(dir, "montecarlo_bands.csv"))
	require.NoError(t, err)
	records, err := csv.NewReader(bytes.NewReader(bandsData)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"month", "p10", "p25", "p50", "p75", "p90"}, records[0])
	assert.Equal(t, "10000.00", records[1][3])
}
