package pricing

import (
	"fmt"
	"math"
	"time"
)

// Flat per-rental and per-day surcharge rates. These are company-wide, not
// per-vehicle, so they live here rather than in the tariff tables.
const (
	extraDriverPerDay        = 8.0
	extraDriverUnder25PerDay = 10.0
	homeDeliveryFee          = 30.0
	homePickupFee            = 30.0
)

// Config is the rental configuration a quote is computed from. It is never
// persisted on its own; bookings snapshot it together with the price.
type Config struct {
	StartDate    time.Time
	EndDate      time.Time
	Package      PackageType
	KmPlan       KmPlan
	Coverage     Coverage
	ExtraDriver  ExtraDriverOption
	HomeDelivery bool
	HomePickup   bool
}

// Breakdown itemizes a quote. All amounts are already rounded to 2 decimals
// and non-negative.
type Breakdown struct {
	BaseWithDiscount float64
	Insurance        float64
	ExtraDriver      float64
	Delivery         float64
}

// Quote is the computed, ephemeral pricing result.
type Quote struct {
	Total          float64
	DaysCount      int
	Breakdown      Breakdown
	DiscountAmount float64
	DiscountPct    float64
}

// Round2 rounds to the nearest currency sub-unit.
func Round2(n float64) float64 {
	return math.Round(n*100) / 100
}

// Compute turns a vehicle tariff and a rental configuration into a price
// breakdown. It is a pure function: no I/O, no hidden state.
//
// Multi-day pricing amortizes the nearest lower anchor's total price into an
// effective daily rate and scales it to the requested day count; it is not a
// linear interpolation between anchors. The discount shown to the customer is
// the difference against the plain 24h daily rate for the same km plan.
func (c *Catalog) Compute(slug string, vtype VehicleType, cfg Config) (*Quote, error) {
	days, err := DaysInclusive(cfg.StartDate, cfg.EndDate)
	if err != nil {
		return nil, err
	}

	reduction := cfg.Package.Reduction()
	if reduction != ReductionNone {
		if vtype != VehicleVan {
			return nil, &ValidationError{Msg: "hourly packages are available for vans only"}
		}
		if days != 1 {
			return nil, &ValidationError{Msg: "hourly packages apply to single-day rentals only"}
		}
	}

	tariff, err := c.Lookup(slug)
	if err != nil {
		return nil, err
	}

	var basePrice float64
	if days == 1 {
		m, ok := tariff.SameDay[reduction][cfg.KmPlan]
		if !ok {
			return nil, &RateNotDefinedError{
				Slug:   slug,
				Detail: fmt.Sprintf("same-day rate %s / %s", reduction, cfg.KmPlan),
			}
		}
		basePrice = Round2(tariff.BasePriceDay * m)
	} else {
		anchors := tariff.MultiDay[cfg.KmPlan]
		if len(anchors) == 0 {
			return nil, &RateNotDefinedError{
				Slug:   slug,
				Detail: fmt.Sprintf("no multi-day anchors for %s", cfg.KmPlan),
			}
		}
		anchor := ResolveAnchor(days, anchors)
		anchorPrice := tariff.BasePriceDay * anchors[anchor]
		dailyRate := anchorPrice / float64(anchor)
		basePrice = Round2(dailyRate * float64(days))
	}

	// Undiscounted reference total at the plain 24h rate, used only to show
	// the customer what they saved.
	uplift, ok := tariff.SameDay[ReductionNone][cfg.KmPlan]
	if !ok {
		return nil, &RateNotDefinedError{
			Slug:   slug,
			Detail: fmt.Sprintf("24h reference rate for %s", cfg.KmPlan),
		}
	}
	rawBase := Round2(tariff.BasePriceDay * uplift * float64(days))

	discount := math.Max(0, Round2(rawBase-basePrice))
	var discountPct float64
	if rawBase > 0 {
		discountPct = Round2(discount / rawBase * 100)
	}

	// Surcharges are never discounted.
	var insurance float64
	if cfg.Coverage == CoveragePartial {
		insurance = Round2(tariff.InsuranceCost(days, reduction))
	}

	var extraDriver float64
	switch cfg.ExtraDriver {
	case ExtraDriverStandard:
		extraDriver = extraDriverPerDay * float64(days)
	case ExtraDriverUnder25:
		extraDriver = extraDriverUnder25PerDay * float64(days)
	}

	var delivery float64
	if cfg.HomeDelivery {
		delivery += homeDeliveryFee
	}
	if cfg.HomePickup {
		delivery += homePickupFee
	}

	return &Quote{
		Total:     Round2(basePrice + insurance + extraDriver + delivery),
		DaysCount: days,
		Breakdown: Breakdown{
			BaseWithDiscount: basePrice,
			Insurance:        insurance,
			ExtraDriver:      extraDriver,
			Delivery:         delivery,
		},
		DiscountAmount: discount,
		DiscountPct:    discountPct,
	}, nil
}
