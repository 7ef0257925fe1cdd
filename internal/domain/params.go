package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RebalancePolicy selects how the simulator restores the target mix.
type RebalancePolicy string

const (
	RebalanceNone      RebalancePolicy = "none"
	RebalanceAnnual    RebalancePolicy = "annual"
	RebalanceThreshold RebalancePolicy = "threshold"
)

// SequencePreset shapes the early part of the return stream for
// sequence-of-returns-risk education.
type SequencePreset string

const (
	PresetNormal         SequencePreset = "normal"
	PresetBadFirstYears  SequencePreset = "badFirstYears"
	PresetGoodFirstYears SequencePreset = "goodFirstYears"
)

// Horizon and fee bounds enforced on every request.
const (
	MinYears  = 1
	MaxYears  = 40
	MaxFeeBps = 10000
)

// defaultThreshold is the drift fraction used by the threshold policy when
// the caller does not supply one (5%).
var defaultThreshold = decimal.NewFromFloat(0.05)

// GlidePath shifts the target allocation linearly from Start to End over the
// simulation horizon.
type GlidePath struct {
	Start AssetMix `json:"start"`
	End   AssetMix `json:"end"`
}

// ShockSpec injects a one-time stock-class crash: at CrashAtMonth the stock
// return is replaced with -Severity. Only one shock per simulation.
type ShockSpec struct {
	CrashAtMonth int             `json:"crashAtMonth"`
	Severity     decimal.Decimal `json:"severity"`
}

// SimulationParams is the validated input aggregate for one simulation.
// It is constructed once per request, never mutated, and passed by value.
type SimulationParams struct {
	Profile        string          `json:"profile,omitempty"`
	GlidePath      *GlidePath      `json:"glidePath,omitempty"`
	StartValue     decimal.Decimal `json:"startValue"`
	Years          int             `json:"years"`
	ContribMonthly decimal.Decimal `json:"contribMonthly"`
	FeesBps        int             `json:"feesBps"`
	Rebalance      RebalancePolicy `json:"rebalance"`
	Threshold      decimal.Decimal `json:"threshold,omitempty"`
	Preset         SequencePreset  `json:"sequencePreset"`
	Shock          *ShockSpec      `json:"shock,omitempty"`
	Seed           int64           `json:"seed"`
}

// Months returns the simulation horizon in months.
func (p SimulationParams) Months() int { return p.Years * 12 }

// RebalanceThreshold returns the drift threshold for the threshold policy,
// falling back to the 5% default when unset.
func (p SimulationParams) RebalanceThreshold() decimal.Decimal {
	if p.Threshold.IsZero() {
		return defaultThreshold
	}
	return p.Threshold
}

// ReturnProfile resolves the risk profile that supplies return distribution
// parameters. Glide-path requests without a named profile draw with the
// balanced profile's class parameters.
func (p SimulationParams) ReturnProfile() RiskProfile {
	if rp, ok := ProfileByName(p.Profile); ok {
		return rp
	}
	rp, _ := ProfileByName(ProfileBalanced)
	return rp
}

// ProfileLabel names the resolved allocation source for response metadata.
func (p SimulationParams) ProfileLabel() string {
	if p.GlidePath != nil {
		return "custom"
	}
	return p.Profile
}

// Validate rejects out-of-range or missing input before any simulation work
// begins. All violations are *InvalidParamsError.
func (p SimulationParams) Validate() error {
	if p.Profile == "" && p.GlidePath == nil {
		return &InvalidParamsError{Field: "profile", Reason: "profile or glidePath is required"}
	}
	if p.Profile != "" {
		if _, ok := ProfileByName(p.Profile); !ok {
			return &InvalidParamsError{Field: "profile", Reason: fmt.Sprintf("unknown profile %q, want one of %v", p.Profile, ProfileNames())}
		}
	}
	if p.GlidePath != nil {
		if err := p.GlidePath.Start.Validate(); err != nil {
			return &InvalidParamsError{Field: "glidePath.start", Reason: err.Error()}
		}
		if err := p.GlidePath.End.Validate(); err != nil {
			return &InvalidParamsError{Field: "glidePath.end", Reason: err.Error()}
		}
	}
	if p.Years < MinYears || p.Years > MaxYears {
		return &InvalidParamsError{Field: "years", Reason: fmt.Sprintf("must be between %d and %d, got %d", MinYears, MaxYears, p.Years)}
	}
	if !p.StartValue.IsPositive() {
		return &InvalidParamsError{Field: "startValue", Reason: "must be positive"}
	}
	if p.ContribMonthly.IsNegative() {
		return &InvalidParamsError{Field: "contribMonthly", Reason: "cannot be negative"}
	}
	if p.FeesBps < 0 || p.FeesBps > MaxFeeBps {
		return &InvalidParamsError{Field: "feesBps", Reason: fmt.Sprintf("must be between 0 and %d, got %d", MaxFeeBps, p.FeesBps)}
	}
	switch p.Rebalance {
	case RebalanceNone, RebalanceAnnual, RebalanceThreshold:
	default:
		return &InvalidParamsError{Field: "rebalance", Reason: fmt.Sprintf("must be %q, %q or %q", RebalanceNone, RebalanceAnnual, RebalanceThreshold)}
	}
	if p.Threshold.IsNegative() || p.Threshold.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return &InvalidParamsError{Field: "threshold", Reason: "must be a fraction in [0, 1)"}
	}
	switch p.Preset {
	case PresetNormal, PresetBadFirstYears, PresetGoodFirstYears:
	default:
		return &InvalidParamsError{Field: "sequencePreset", Reason: fmt.Sprintf("must be %q, %q or %q", PresetNormal, PresetBadFirstYears, PresetGoodFirstYears)}
	}
	if p.Shock != nil {
		if p.Shock.CrashAtMonth < 1 || p.Shock.CrashAtMonth > p.Months() {
			return &InvalidParamsError{Field: "shock.crashAtMonth", Reason: fmt.Sprintf("must be between 1 and %d, got %d", p.Months(), p.Shock.CrashAtMonth)}
		}
		if !p.Shock.Severity.IsPositive() || p.Shock.Severity.GreaterThan(decimal.NewFromInt(1)) {
			return &InvalidParamsError{Field: "shock.crashPct", Reason: "severity must be in (0, 1]"}
		}
	}
	return nil
}
