package domain

// ClassParams holds the monthly return distribution for one asset class:
// expected monthly return and monthly volatility, both as plain fractions.
type ClassParams struct {
	Mean float64 `json:"mean"`
	Vol  float64 `json:"vol"`
}

// RiskProfile binds a named profile to its canonical asset mix and the
// per-class return distribution parameters used when drawing returns.
// The table is fixed; it is not user-editable.
type RiskProfile struct {
	Name   string      `json:"name"`
	Mix    AssetMix    `json:"mix"`
	Stocks ClassParams `json:"stocks"`
	Bonds  ClassParams `json:"bonds"`
	Cash   ClassParams `json:"cash"`
}

// ClassParams returns the distribution parameters for a class.
func (rp RiskProfile) ClassParams(c Class) ClassParams {
	switch c {
	case ClassStocks:
		return rp.Stocks
	case ClassBonds:
		return rp.Bonds
	case ClassCash:
		return rp.Cash
	}
	return ClassParams{}
}

const (
	ProfileConservative = "conservative"
	ProfileBalanced     = "balanced"
	ProfileAggressive   = "aggressive"
)

var riskProfiles = map[string]RiskProfile{
	ProfileConservative: {
		Name:   ProfileConservative,
		Mix:    NewAssetMix(0.30, 0.50, 0.20),
		Stocks: ClassParams{Mean: 0.0060, Vol: 0.0350},
		Bonds:  ClassParams{Mean: 0.0030, Vol: 0.0120},
		Cash:   ClassParams{Mean: 0.0015, Vol: 0.0010},
	},
	ProfileBalanced: {
		Name:   ProfileBalanced,
		Mix:    NewAssetMix(0.60, 0.30, 0.10),
		Stocks: ClassParams{Mean: 0.0070, Vol: 0.0400},
		Bonds:  ClassParams{Mean: 0.0030, Vol: 0.0120},
		Cash:   ClassParams{Mean: 0.0015, Vol: 0.0010},
	},
	ProfileAggressive: {
		Name:   ProfileAggressive,
		Mix:    NewAssetMix(0.85, 0.10, 0.05),
		Stocks: ClassParams{Mean: 0.0080, Vol: 0.0450},
		Bonds:  ClassParams{Mean: 0.0025, Vol: 0.0130},
		Cash:   ClassParams{Mean: 0.0015, Vol: 0.0010},
	},
}

// ProfileByName looks up a risk profile by its name.
func ProfileByName(name string) (RiskProfile, bool) {
	rp, ok := riskProfiles[name]
	return rp, ok
}

// ProfileNames returns the valid profile names in increasing-risk order.
func ProfileNames() []string {
	return []string{ProfileConservative, ProfileBalanced, ProfileAggressive}
}
