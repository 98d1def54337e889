package emi

import (
	"math"
	"testing"
)

func TestCompute_MatchesAmortizationFormula(t *testing.T) {
	// Activa 125 example: loan=78269, r=0.0075, n=24
	got := Compute(87234, 8965, 9, 24, UnitMonths)

	loan := 87234.0 - 8965.0
	r := 9.0 / 12 / 100
	n := 24.0
	want := int(math.Round(loan * r * math.Pow(1+r, n) / (math.Pow(1+r, n) - 1)))

	if got != want {
		t.Fatalf("expected EMI %d, got %d", want, got)
	}
	if got <= 0 {
		t.Fatalf("expected positive EMI, got %d", got)
	}
}

func TestCompute_YearsUnit(t *testing.T) {
	months := Compute(87234, 8965, 9, 24, UnitMonths)
	years := Compute(87234, 8965, 9, 2, UnitYears)
	if months != years {
		t.Errorf("24 months and 2 years should agree: %d vs %d", months, years)
	}
}

func TestCompute_DegenerateInputs(t *testing.T) {
	cases := []struct {
		name   string
		price  float64
		down   float64
		rate   float64
		tenure float64
		unit   TenureUnit
	}{
		{"down payment equals price", 87234, 87234, 9, 24, UnitMonths},
		{"down payment exceeds price", 87234, 90000, 12, 36, UnitMonths},
		{"zero rate", 87234, 8965, 0, 24, UnitMonths},
		{"zero tenure", 87234, 8965, 9, 0, UnitMonths},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Compute(tc.price, tc.down, tc.rate, tc.tenure, tc.unit); got != 0 {
				t.Errorf("expected 0, got %d", got)
			}
		})
	}
}

func TestCompute_FullDownPaymentAnyRateAndTenure(t *testing.T) {
	for rate := 5.0; rate <= 20.0; rate += 2.5 {
		for tenure := 6; tenure <= 60; tenure += 6 {
			if got := Compute(87234, 87234, rate, float64(tenure), UnitMonths); got != 0 {
				t.Fatalf("rate=%.1f tenure=%d: expected 0, got %d", rate, tenure, got)
			}
		}
	}
}

func TestCompute_MonotonicInDownPayment(t *testing.T) {
	prev := math.MaxInt
	for down := 0.0; down <= 87234; down += 1000 {
		got := Compute(87234, down, 9, 24, UnitMonths)
		if got > prev {
			t.Fatalf("EMI rose from %d to %d when down payment increased to %.0f", prev, got, down)
		}
		prev = got
	}
}

func TestQuote_Totals(t *testing.T) {
	q := Quote(Input{
		VehiclePrice: 87234,
		DownPayment:  8965,
		AnnualRate:   9,
		TenureValue:  24,
		TenureUnit:   UnitMonths,
	})
	if q.LoanAmount != 78269 {
		t.Errorf("expected loan amount 78269, got %.0f", q.LoanAmount)
	}
	if q.MonthlyTenure != 24 {
		t.Errorf("expected 24 monthly installments, got %d", q.MonthlyTenure)
	}
	if q.TotalPayment != float64(q.EMI)*24 {
		t.Errorf("total payment %.0f does not equal EMI x tenure", q.TotalPayment)
	}
	if q.TotalInterest != q.TotalPayment-q.LoanAmount {
		t.Errorf("total interest %.0f inconsistent with total payment", q.TotalInterest)
	}
}

func TestQuote_DegenerateHasZeroTotals(t *testing.T) {
	q := Quote(Input{VehiclePrice: 87234, DownPayment: 87234, AnnualRate: 9, TenureValue: 24, TenureUnit: UnitMonths})
	if q.EMI != 0 || q.TotalPayment != 0 || q.TotalInterest != 0 {
		t.Errorf("expected zeroed quote, got %+v", q)
	}
}

func TestSnap_OvershootIsClamped(t *testing.T) {
	b := Bounds{Min: 0, Max: 87234, Step: 1000}
	// 86900 snaps to 87000, fine; 87200 snaps to 87000 too; but a raw value
	// near the max can snap past it.
	if got := Snap(87234, b); got != 87000 {
		t.Errorf("expected 87234 to snap to 87000, got %g", got)
	}
	if got := Snap(87600, b); got != 87234 {
		t.Errorf("expected overshoot to clamp to 87234, got %g", got)
	}
	if got := Snap(-400, b); got != 0 {
		t.Errorf("expected snap below range to clamp to 0, got %g", got)
	}
}

func TestSliderValue_LinearMapSnapThenClamp(t *testing.T) {
	if got := SliderValue(0, RateBounds); got != 5 {
		t.Errorf("expected fraction 0 to map to min, got %g", got)
	}
	if got := SliderValue(1, RateBounds); got != 20 {
		t.Errorf("expected fraction 1 to map to max, got %g", got)
	}
	if got := SliderValue(1.7, RateBounds); got != 20 {
		t.Errorf("expected out-of-range fraction to clamp, got %g", got)
	}
	got := SliderValue(0.5, RateBounds)
	if got < 12.4 || got > 12.6 {
		t.Errorf("expected midpoint near 12.5, got %g", got)
	}
	// value must sit on a step multiple
	steps := got / RateBounds.Step
	if math.Abs(steps-math.Round(steps)) > 1e-9 {
		t.Errorf("value %g is not aligned to step %g", got, RateBounds.Step)
	}
}

func TestSwitchTenureUnit_ReclampsIntoRange(t *testing.T) {
	// 36 months converts to 3 years, inside [1,5]
	if got := SwitchTenureUnit(36, UnitMonths, UnitYears); got != 3 {
		t.Errorf("expected 36 months -> 3 years, got %g", got)
	}
	// 5 years converts to 60 months, the months maximum
	if got := SwitchTenureUnit(5, UnitYears, UnitMonths); got != 60 {
		t.Errorf("expected 5 years -> 60 months, got %g", got)
	}
	// 6 months rounds to the years minimum rather than falling below it
	if got := SwitchTenureUnit(6, UnitMonths, UnitYears); got != 1 {
		t.Errorf("expected 6 months -> 1 year, got %g", got)
	}
	// switch results always land inside the target bounds
	for v := 6.0; v <= 60; v++ {
		got := SwitchTenureUnit(v, UnitMonths, UnitYears)
		if got < TenureYearsBounds.Min || got > TenureYearsBounds.Max {
			t.Fatalf("%g months converted to %g years, outside [%g,%g]",
				v, got, TenureYearsBounds.Min, TenureYearsBounds.Max)
		}
	}
}
