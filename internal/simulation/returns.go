package simulation

import (
	"github.com/shopspring/decimal"

	"github.com/fincity/investing-engine/internal/domain"
)

// presetWindowMonths is how long sequence presets keep biasing returns.
const presetWindowMonths = 24

// Preset bias multipliers applied to gross returns inside the window.
var (
	badYearsMultiplier  = 0.985
	goodYearsMultiplier = 1.015
)

// MonthReturns holds one month of per-class returns.
type MonthReturns struct {
	Stocks decimal.Decimal
	Bonds  decimal.Decimal
	Cash   decimal.Decimal
}

// ForClass returns the month's return for one asset class.
func (r MonthReturns) ForClass(c domain.Class) decimal.Decimal {
	switch c {
	case domain.ClassStocks:
		return r.Stocks
	case domain.ClassBonds:
		return r.Bonds
	case domain.ClassCash:
		return r.Cash
	}
	return decimal.Zero
}

// presetMultiplier returns the gross-return multiplier for a month.
func presetMultiplier(preset domain.SequencePreset, month int) float64 {
	if month > presetWindowMonths {
		return 1
	}
	switch preset {
	case domain.PresetBadFirstYears:
		return badYearsMultiplier
	case domain.PresetGoodFirstYears:
		return goodYearsMultiplier
	default:
		return 1
	}
}

// DrawMonthReturns draws one normal return per asset class in canonical
// order (stocks, bonds, cash) via Box-Muller and applies the preset bias.
// Exactly two uniforms per class are consumed, so the cursor position after
// month k is a pure function of (seed, k) and paths replay bit for bit.
func DrawMonthReturns(profile domain.RiskProfile, preset domain.SequencePreset, month int, cur Cursor) (MonthReturns, Cursor) {
	m := presetMultiplier(preset, month)
	var out MonthReturns
	for _, class := range domain.Classes() {
		params := profile.ClassParams(class)
		z, next := cur.NextNorm()
		cur = next

		r := params.Mean + params.Vol*z
		if m != 1 {
			r = (1+r)*m - 1
		}
		d := decimal.NewFromFloat(r)

		switch class {
		case domain.ClassStocks:
			out.Stocks = d
		case domain.ClassBonds:
			out.Bonds = d
		case domain.ClassCash:
			out.Cash = d
		}
	}
	return out, cur
}

// ApplyShock replaces the stock return with -Severity at the crash month.
// Other classes keep their drawn returns and the cursor is not consumed, so
// a shocked path diverges from its unshocked twin only from the crash month
// onward.
func ApplyShock(r MonthReturns, shock *domain.ShockSpec, month int) MonthReturns {
	if shock == nil || month != shock.CrashAtMonth {
		return r
	}
	r.Stocks = shock.Severity.Neg()
	return r
}
