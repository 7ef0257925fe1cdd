package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Class identifies one of the three asset classes a portfolio is split across.
type Class string

const (
	ClassStocks Class = "stocks"
	ClassBonds  Class = "bonds"
	ClassCash   Class = "cash"
)

// Classes returns the asset classes in canonical order. Every per-class loop
// in the engine iterates in this order so draw sequences stay reproducible.
func Classes() []Class {
	return []Class{ClassStocks, ClassBonds, ClassCash}
}

// MixTolerance is the maximum allowed deviation of an AssetMix sum from 1.0.
var MixTolerance = decimal.NewFromFloat(1e-6)

// AssetMix is an immutable allocation across the three asset classes.
// Fractions are non-negative and sum to 1.0 within MixTolerance.
type AssetMix struct {
	Stocks decimal.Decimal `json:"stocks"`
	Bonds  decimal.Decimal `json:"bonds"`
	Cash   decimal.Decimal `json:"cash"`
}

// NewAssetMix builds a mix from float fractions.
func NewAssetMix(stocks, bonds, cash float64) AssetMix {
	return AssetMix{
		Stocks: decimal.NewFromFloat(stocks),
		Bonds:  decimal.NewFromFloat(bonds),
		Cash:   decimal.NewFromFloat(cash),
	}
}

// Fraction returns the mix fraction for a class.
func (m AssetMix) Fraction(c Class) decimal.Decimal {
	switch c {
	case ClassStocks:
		return m.Stocks
	case ClassBonds:
		return m.Bonds
	case ClassCash:
		return m.Cash
	}
	return decimal.Zero
}

// Sum returns the total of all fractions.
func (m AssetMix) Sum() decimal.Decimal {
	return m.Stocks.Add(m.Bonds).Add(m.Cash)
}

// Validate checks the sum-to-one and non-negativity invariants.
func (m AssetMix) Validate() error {
	for _, c := range Classes() {
		if m.Fraction(c).IsNegative() {
			return fmt.Errorf("%s fraction is negative (%s)", c, m.Fraction(c))
		}
	}
	if drift := m.Sum().Sub(decimal.NewFromInt(1)).Abs(); drift.GreaterThan(MixTolerance) {
		return fmt.Errorf("fractions sum to %s, want 1.0 within %s", m.Sum(), MixTolerance)
	}
	return nil
}

// Renormalize scales the fractions so they sum to exactly 1.0, absorbing
// floating-point drift from interpolation. Fails when the sum is not positive.
func (m AssetMix) Renormalize() (AssetMix, error) {
	sum := m.Sum()
	if !sum.IsPositive() {
		return AssetMix{}, fmt.Errorf("cannot renormalize mix with sum %s", sum)
	}
	return AssetMix{
		Stocks: m.Stocks.Div(sum),
		Bonds:  m.Bonds.Div(sum),
		Cash:   m.Cash.Div(sum),
	}, nil
}
