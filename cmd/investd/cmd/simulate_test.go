package cmd

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincity/investing-engine/internal/domain"
	"github.com/fincity/investing-engine/internal/simulation"
)

func TestParseMix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "0.90,0.08,0.02", false},
		{"valid with spaces", "0.6, 0.3, 0.1", false},
		{"two parts", "0.5,0.5", true},
		{"four parts", "0.4,0.3,0.2,0.1", true},
		{"not a number", "a,b,c", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mix, err := parseMix(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mix.Validate())
		})
	}
}

func TestParseSeedFlag(t *testing.T) {
	assert.Equal(t, int64(42), parseSeedFlag("42"))
	assert.Equal(t, int64(-7), parseSeedFlag("-7"))
	assert.Equal(t, simulation.SeedFromString("test1"), parseSeedFlag("test1"))

	simulation.SetSeedFunc(func() int64 { return 99 })
	defer simulation.SetSeedFunc(func() int64 { return time.Now().UnixNano() })
	assert.Equal(t, int64(99), parseSeedFlag(""))
}

func TestBuildSimParams(t *testing.T) {
	simProfile = "aggressive"
	simGlideStart = ""
	simGlideEnd = ""
	simStartValue = 5000
	simYears = 5
	simContrib = 100
	simFeesBps = 25
	simRebalance = "annual"
	simThresholdPct = -1
	simPreset = "normal"
	simCrashMonth = 30
	simCrashPct = 30
	simSeed = "test1"

	params, err := buildSimParams()
	require.NoError(t, err)
	require.NoError(t, params.Validate())

	assert.Equal(t, "aggressive", params.Profile)
	assert.True(t, params.StartValue.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 60, params.Months())
	assert.Equal(t, domain.RebalanceAnnual, params.Rebalance)
	require.NotNil(t, params.Shock)
	assert.Equal(t, 30, params.Shock.CrashAtMonth)
	assert.True(t, params.Shock.Severity.Equal(decimal.NewFromFloat(0.3)))
	assert.Equal(t, simulation.SeedFromString("test1"), params.Seed)
}

func TestBuildSimParamsGlide(t *testing.T) {
	simProfile = "balanced"
	simGlideStart = "0.90,0.08,0.02"
	simGlideEnd = "0.30,0.50,0.20"
	simStartValue = 10000
	simYears = 30
	simContrib = 0
	simFeesBps = 0
	simRebalance = "none"
	simThresholdPct = -1
	simPreset = "normal"
	simCrashMonth = 0
	simSeed = "1"

	params, err := buildSimParams()
	require.NoError(t, err)
	require.NoError(t, params.Validate())

	assert.Empty(t, params.Profile)
	require.NotNil(t, params.GlidePath)
	assert.True(t, params.GlidePath.Start.Fraction(domain.ClassStocks).Equal(decimal.NewFromFloat(0.90)))
	assert.True(t, params.GlidePath.End.Fraction(domain.ClassCash).Equal(decimal.NewFromFloat(0.20)))
}

func TestBuildSimParamsGlideHalfSet(t *testing.T) {
	simGlideStart = "0.90,0.08,0.02"
	simGlideEnd = ""
	defer func() { simGlideStart = "" }()

	_, err := buildSimParams()
	require.Error(t, err)
}

func TestBuildSimParamsThreshold(t *testing.T) {
	simProfile = "balanced"
	simGlideStart = ""
	simGlideEnd = ""
	simStartValue = 10000
	simYears = 10
	simContrib = 0
	simFeesBps = 0
	simRebalance = "threshold"
	simThresholdPct = 2.5
	simPreset = "normal"
	simCrashMonth = 0
	simSeed = "1"

	params, err := buildSimParams()
	require.NoError(t, err)
	assert.True(t, params.RebalanceThreshold().Equal(decimal.NewFromFloat(0.025)))
}
