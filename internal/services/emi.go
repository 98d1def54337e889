package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/omshinde26/honda-digital-showroom/internal/emi"
	"github.com/omshinde26/honda-digital-showroom/internal/metrics"
	"github.com/omshinde26/honda-digital-showroom/internal/store"
	apperrors "github.com/omshinde26/honda-digital-showroom/pkg/errors"
)

const quoteCacheTTL = 24 * time.Hour

// EMIService wraps the pure calculator with input validation and an
// optional quote cache. Cache failures are logged and never fail the
// computation.
type EMIService struct {
	cache store.QuoteCache
}

// NewEMIService creates a new EMI service; cache may be nil
func NewEMIService(cache store.QuoteCache) *EMIService {
	return &EMIService{cache: cache}
}

// Quote validates the inputs and returns the loan quote, serving repeated
// inputs from the cache when one is configured.
func (s *EMIService) Quote(ctx context.Context, in emi.Input) (*emi.LoanQuote, error) {
	if err := validateQuoteInput(in); err != nil {
		log.Printf("[EMI] Quote failed: validation error: %v", err)
		return nil, err
	}

	if s.cache != nil {
		if raw, ok := s.cache.Get(ctx, in.CacheKey()); ok {
			var quote emi.LoanQuote
			if err := json.Unmarshal([]byte(raw), &quote); err == nil {
				metrics.RecordEMIQuote(true)
				return &quote, nil
			}
			log.Printf("[EMI] Warning: discarding unreadable cached quote for %s", in.CacheKey())
		}
	}

	quote := emi.Quote(in)
	metrics.RecordEMIQuote(false)

	if s.cache != nil {
		if raw, err := json.Marshal(quote); err == nil {
			if err := s.cache.Set(ctx, in.CacheKey(), string(raw), quoteCacheTTL); err != nil {
				log.Printf("[EMI] Warning: failed to cache quote: %v", err)
			}
		}
	}

	return &quote, nil
}

func validateQuoteInput(in emi.Input) error {
	var fields []apperrors.FieldError

	if in.VehiclePrice <= 0 {
		fields = append(fields, apperrors.FieldError{
			Field:  "vehicle_price",
			Reason: "vehicle price must be greater than 0",
		})
	}
	if in.DownPayment < 0 || in.DownPayment > in.VehiclePrice {
		fields = append(fields, apperrors.FieldError{
			Field:  "down_payment",
			Reason: "down payment must be between 0 and the vehicle price",
		})
	}
	if !in.TenureUnit.Valid() {
		fields = append(fields, apperrors.FieldError{
			Field:  "tenure_unit",
			Reason: "tenure unit must be months or years",
		})
	} else {
		bounds := emi.TenureBounds(in.TenureUnit)
		if in.TenureValue < bounds.Min || in.TenureValue > bounds.Max {
			fields = append(fields, apperrors.FieldError{
				Field:  "tenure_value",
				Reason: "tenure is out of range for the selected unit",
			})
		}
	}
	if in.AnnualRate < emi.RateBounds.Min || in.AnnualRate > emi.RateBounds.Max {
		fields = append(fields, apperrors.FieldError{
			Field:  "annual_rate",
			Reason: "interest rate must be between 5 and 20 percent",
		})
	}

	if len(fields) > 0 {
		return apperrors.NewValidation(fields...)
	}
	return nil
}
