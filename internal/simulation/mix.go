package simulation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fincity/investing-engine/internal/domain"
)

// ResolveMix returns the target allocation for one month. Named profiles are
// static. Glide paths interpolate linearly from Start to End with
// t = month/totalMonths, so month 0 resolves to exactly Start and the final
// month to exactly End. Interpolation drift is renormalized; a mix that
// cannot be repaired is reported as *domain.InvalidMixError.
func ResolveMix(params domain.SimulationParams, month int) (domain.AssetMix, error) {
	if params.GlidePath == nil {
		profile, ok := domain.ProfileByName(params.Profile)
		if !ok {
			return domain.AssetMix{}, &domain.InvalidMixError{Month: month, Reason: fmt.Sprintf("unknown profile %q", params.Profile)}
		}
		return profile.Mix, nil
	}

	t := decimal.NewFromInt(int64(month)).Div(decimal.NewFromInt(int64(params.Months())))
	start, end := params.GlidePath.Start, params.GlidePath.End
	mix := domain.AssetMix{
		Stocks: lerp(start.Stocks, end.Stocks, t),
		Bonds:  lerp(start.Bonds, end.Bonds, t),
		Cash:   lerp(start.Cash, end.Cash, t),
	}

	if err := mix.Validate(); err == nil {
		return mix, nil
	}
	for _, class := range domain.Classes() {
		if mix.Fraction(class).IsNegative() {
			return domain.AssetMix{}, &domain.InvalidMixError{Month: month, Reason: fmt.Sprintf("%s weight %s is negative", class, mix.Fraction(class))}
		}
	}
	repaired, err := mix.Renormalize()
	if err != nil {
		return domain.AssetMix{}, &domain.InvalidMixError{Month: month, Reason: err.Error()}
	}
	return repaired, nil
}

func lerp(a, b, t decimal.Decimal) decimal.Decimal {
	return a.Add(b.Sub(a).Mul(t))
}
