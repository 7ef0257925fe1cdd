// Package models defines the JSON request and response shapes of the API.
package models

import "encoding/json"

// MixDTO is an asset allocation on the wire.
type MixDTO struct {
	Stocks float64 `json:"stocks"`
	Bonds  float64 `json:"bonds"`
	Cash   float64 `json:"cash"`
}

// GlidePathDTO shifts the allocation from Start to End over the horizon.
type GlidePathDTO struct {
	Start MixDTO `json:"start"`
	End   MixDTO `json:"end"`
}

// ShockDTO injects a one-time stock crash of CrashPct percent.
type ShockDTO struct {
	CrashAtMonth int     `json:"crashAtMonth"`
	CrashPct     float64 `json:"crashPct"`
}

// SimulateRequest is the body of POST /api/investing/simulate.
// Seed accepts either a number or a string label.
type SimulateRequest struct {
	Profile        string          `json:"profile,omitempty"`
	GlidePath      *GlidePathDTO   `json:"glidePath,omitempty"`
	StartValue     float64         `json:"startValue"`
	Years          int             `json:"years"`
	ContribMonthly float64         `json:"contribMonthly"`
	FeesBps        int             `json:"feesBps"`
	Rebalance      string          `json:"rebalance,omitempty"`
	ThresholdPct   float64         `json:"thresholdPct,omitempty"`
	SequencePreset string          `json:"sequencePreset,omitempty"`
	Shock          *ShockDTO       `json:"shock,omitempty"`
	Seed           json.RawMessage `json:"seed,omitempty"`
}

// MonteCarloRequest is the body of POST /api/investing/montecarlo.
type MonteCarloRequest struct {
	SimulateRequest
	Runs         int      `json:"runs"`
	TargetAmount *float64 `json:"targetAmount,omitempty"`
}

// CoachRequest is the body of POST /api/coach.
type CoachRequest struct {
	Question string `json:"question"`
	Context  string `json:"context,omitempty"`
}

// SnapshotDTO is one end-of-month portfolio state.
type SnapshotDTO struct {
	Month  int     `json:"month"`
	Total  float64 `json:"total"`
	Stocks float64 `json:"stocks"`
	Bonds  float64 `json:"bonds"`
	Cash   float64 `json:"cash"`
}

// TradeDTO is one rebalancing flow.
type TradeDTO struct {
	Month  int     `json:"month"`
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// StatsDTO summarizes a simulated path.
type StatsDTO struct {
	EndValue    float64 `json:"endValue"`
	CAGR        float64 `json:"cagr"`
	Volatility  float64 `json:"volatility"`
	MaxDrawdown float64 `json:"maxDrawdown"`
	FeeTotal    float64 `json:"feeTotal"`
}

// MetaDTO echoes the resolved inputs so clients can replay a simulation.
type MetaDTO struct {
	Profile    string `json:"profile"`
	Mix        MixDTO `json:"mix"`
	Seed       int64  `json:"seed"`
	Disclaimer string `json:"disclaimer"`
}

// SimulateResponse is the body of a successful simulate call.
type SimulateResponse struct {
	Success bool          `json:"success"`
	Stats   StatsDTO      `json:"stats"`
	Path    []SnapshotDTO `json:"path"`
	Trades  []TradeDTO    `json:"trades"`
	Meta    MetaDTO       `json:"meta"`
}

// BandDTO is one month of the Monte Carlo percentile fan.
type BandDTO struct {
	Month int     `json:"month"`
	P10   float64 `json:"p10"`
	P25   float64 `json:"p25"`
	P50   float64 `json:"p50"`
	P75   float64 `json:"p75"`
	P90   float64 `json:"p90"`
}

// MonteCarloResponse is the body of a successful montecarlo call.
// SuccessProb is omitted when no target amount was requested.
type MonteCarloResponse struct {
	Success     bool      `json:"success"`
	Runs        int       `json:"runs"`
	SuccessProb *float64  `json:"successProb,omitempty"`
	Bands       []BandDTO `json:"bands"`
	Meta        MetaDTO   `json:"meta"`
}

// CoachResponse is the body of a successful coach call.
type CoachResponse struct {
	Success    bool   `json:"success"`
	Reply      string `json:"reply"`
	Source     string `json:"source"`
	Disclaimer string `json:"disclaimer"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
