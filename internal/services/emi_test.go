package services

import (
	"context"
	"testing"

	"github.com/omshinde26/honda-digital-showroom/internal/emi"
	"github.com/omshinde26/honda-digital-showroom/internal/store"
	apperrors "github.com/omshinde26/honda-digital-showroom/pkg/errors"
)

func defaultQuoteInput() emi.Input {
	return emi.Input{
		VehiclePrice: 87234,
		DownPayment:  8965,
		AnnualRate:   9,
		TenureValue:  24,
		TenureUnit:   emi.UnitMonths,
	}
}

func TestQuote_ComputesWithoutCache(t *testing.T) {
	svc := NewEMIService(nil)

	quote, err := svc.Quote(context.Background(), defaultQuoteInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.EMI <= 0 {
		t.Errorf("expected a positive EMI, got %d", quote.EMI)
	}
	if quote.TotalPayment != float64(quote.EMI)*float64(quote.MonthlyTenure) {
		t.Errorf("total payment %v is not EMI x tenure", quote.TotalPayment)
	}
}

func TestQuote_RepeatedInputsHitTheCache(t *testing.T) {
	cache := store.NewMemoryCache()
	svc := NewEMIService(cache)
	ctx := context.Background()

	first, err := svc.Quote(ctx, defaultQuoteInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.Get(ctx, defaultQuoteInput().CacheKey()); !ok {
		t.Fatal("expected the quote to be cached after the first call")
	}

	second, err := svc.Quote(ctx, defaultQuoteInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *first != *second {
		t.Errorf("cached quote %+v differs from computed quote %+v", second, first)
	}
}

func TestQuote_ValidationRejectsOutOfRangeInputs(t *testing.T) {
	svc := NewEMIService(nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*emi.Input)
		field  string
	}{
		{"zero price", func(in *emi.Input) { in.VehiclePrice = 0 }, "vehicle_price"},
		{"negative down payment", func(in *emi.Input) { in.DownPayment = -100 }, "down_payment"},
		{"down payment above price", func(in *emi.Input) { in.DownPayment = in.VehiclePrice + 1 }, "down_payment"},
		{"rate below floor", func(in *emi.Input) { in.AnnualRate = 4.9 }, "annual_rate"},
		{"rate above ceiling", func(in *emi.Input) { in.AnnualRate = 20.1 }, "annual_rate"},
		{"tenure too short", func(in *emi.Input) { in.TenureValue = 5 }, "tenure_value"},
		{"tenure too long", func(in *emi.Input) { in.TenureValue = 61 }, "tenure_value"},
		{"bad unit", func(in *emi.Input) { in.TenureUnit = "weeks" }, "tenure_unit"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := defaultQuoteInput()
			tc.mutate(&in)
			_, err := svc.Quote(ctx, in)
			ve, ok := apperrors.AsValidation(err)
			if !ok {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			found := false
			for _, f := range ve.Fields {
				if f.Field == tc.field {
					found = true
				}
			}
			if !found {
				t.Errorf("expected an error on %s, got %v", tc.field, ve.Fields)
			}
		})
	}
}

func TestQuote_YearTenureBoundsApply(t *testing.T) {
	svc := NewEMIService(nil)

	in := defaultQuoteInput()
	in.TenureUnit = emi.UnitYears
	in.TenureValue = 5
	quote, err := svc.Quote(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.MonthlyTenure != 60 {
		t.Errorf("expected 60 months for 5 years, got %d", quote.MonthlyTenure)
	}

	in.TenureValue = 6
	if _, err := svc.Quote(context.Background(), in); err == nil {
		t.Error("expected 6 years to be rejected")
	}
}
