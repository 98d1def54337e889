// Package emi computes monthly installment estimates for vehicle loans and
// implements the snapping/clamping rules the showroom's interactive sliders
// rely on. Everything here is pure; callers recompute from their current
// inputs on every change.
package emi

import (
	"fmt"
	"math"
)

// TenureUnit selects how the tenure value is expressed.
type TenureUnit string

const (
	UnitMonths TenureUnit = "months"
	UnitYears  TenureUnit = "years"
)

// Valid reports whether u is a known tenure unit.
func (u TenureUnit) Valid() bool {
	return u == UnitMonths || u == UnitYears
}

// Bounds describes one interactive input: its range and the step the value
// snaps to.
type Bounds struct {
	Min  float64
	Max  float64
	Step float64
}

// Slider ranges as shipped on the product pages.
var (
	RateBounds         = Bounds{Min: 5, Max: 20, Step: 0.1}
	TenureMonthsBounds = Bounds{Min: 6, Max: 60, Step: 1}
	TenureYearsBounds  = Bounds{Min: 1, Max: 5, Step: 1}
)

// DownPaymentBounds returns the down payment range for a given vehicle
// price: zero up to the full price, in steps of 1000.
func DownPaymentBounds(vehiclePrice float64) Bounds {
	return Bounds{Min: 0, Max: vehiclePrice, Step: 1000}
}

// TenureBounds returns the tenure range for the given unit.
func TenureBounds(unit TenureUnit) Bounds {
	if unit == UnitYears {
		return TenureYearsBounds
	}
	return TenureMonthsBounds
}

// Input is the full set of calculator inputs.
type Input struct {
	VehiclePrice float64    `json:"vehicle_price"`
	DownPayment  float64    `json:"down_payment"`
	AnnualRate   float64    `json:"annual_rate"`
	TenureValue  float64    `json:"tenure_value"`
	TenureUnit   TenureUnit `json:"tenure_unit"`
}

// CacheKey derives a stable cache key from the inputs.
func (in Input) CacheKey() string {
	return fmt.Sprintf("emi:%g:%g:%g:%g:%s",
		in.VehiclePrice, in.DownPayment, in.AnnualRate, in.TenureValue, in.TenureUnit)
}

// LoanQuote is the derived, never-persisted result of one computation.
type LoanQuote struct {
	VehiclePrice  float64 `json:"vehicle_price"`
	DownPayment   float64 `json:"down_payment"`
	LoanAmount    float64 `json:"loan_amount"`
	AnnualRate    float64 `json:"annual_rate"`
	MonthlyTenure int     `json:"monthly_tenure"`
	EMI           int     `json:"emi"`
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
}

// MonthlyTenure converts a tenure value to months.
func MonthlyTenure(value float64, unit TenureUnit) int {
	if unit == UnitYears {
		return int(math.Round(value * 12))
	}
	return int(math.Round(value))
}

// Compute returns the monthly installment rounded to the nearest integer
// currency unit. A non-positive loan amount, rate or tenure yields 0; that
// is a degenerate input, not an error.
func Compute(vehiclePrice, downPayment, annualRatePercent, tenureValue float64, unit TenureUnit) int {
	loanAmount := vehiclePrice - downPayment
	n := float64(MonthlyTenure(tenureValue, unit))
	r := annualRatePercent / 12 / 100

	if loanAmount <= 0 || r <= 0 || n <= 0 {
		return 0
	}

	factor := math.Pow(1+r, n)
	return int(math.Round(loanAmount * r * factor / (factor - 1)))
}

// Quote computes the installment plus the totals derived from it.
func Quote(in Input) LoanQuote {
	q := LoanQuote{
		VehiclePrice:  in.VehiclePrice,
		DownPayment:   in.DownPayment,
		LoanAmount:    in.VehiclePrice - in.DownPayment,
		AnnualRate:    in.AnnualRate,
		MonthlyTenure: MonthlyTenure(in.TenureValue, in.TenureUnit),
	}
	q.EMI = Compute(in.VehiclePrice, in.DownPayment, in.AnnualRate, in.TenureValue, in.TenureUnit)
	if q.EMI > 0 {
		q.TotalPayment = float64(q.EMI) * float64(q.MonthlyTenure)
		q.TotalInterest = q.TotalPayment - q.LoanAmount
	}
	return q
}

// Clamp forces v into [b.Min, b.Max].
func Clamp(v float64, b Bounds) float64 {
	return math.Max(b.Min, math.Min(b.Max, v))
}

// Snap rounds v to the nearest multiple of the step and clamps the result.
// Snapping can overshoot the bound by less than one step, so the clamp
// after snapping is mandatory.
func Snap(v float64, b Bounds) float64 {
	if b.Step > 0 {
		v = math.Round(v/b.Step) * b.Step
	}
	return Clamp(v, b)
}

// SliderValue maps a pointer position, expressed as a fraction of the
// slider's width, onto the input's range: linear interpolation, then snap,
// then clamp.
func SliderValue(fraction float64, b Bounds) float64 {
	fraction = math.Max(0, math.Min(1, fraction))
	raw := b.Min + fraction*(b.Max-b.Min)
	return Snap(raw, b)
}

// SwitchTenureUnit converts an in-range tenure value to the other unit and
// re-clamps it into that unit's range, so toggling the unit never leaves the
// value silently out of bounds.
func SwitchTenureUnit(value float64, from, to TenureUnit) float64 {
	if from == to {
		return Clamp(value, TenureBounds(to))
	}
	var converted float64
	if from == UnitMonths && to == UnitYears {
		converted = math.Round(value / 12)
	} else {
		converted = value * 12
	}
	return Snap(converted, TenureBounds(to))
}
