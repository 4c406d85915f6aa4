package pricing

// VehicleType distinguishes the two fleets; hourly packages exist only for vans.
type VehicleType string

const (
	VehicleCar VehicleType = "CAR"
	VehicleVan VehicleType = "VAN"
)

// KmPlan is the daily distance allowance tier.
type KmPlan string

const (
	Km100       KmPlan = "KM_100"
	Km200       KmPlan = "KM_200"
	KmUnlimited KmPlan = "UNLIMITED"
)

// Coverage is the insurance tier. PARTIAL carries a per-day surcharge.
type Coverage string

const (
	CoverageBase    Coverage = "BASE"
	CoveragePartial Coverage = "PARTIAL"
)

// Reduction is the same-day duration class: a full 24h rental or one of the
// shorter fixed-hour windows offered for vans.
type Reduction string

const (
	ReductionNone Reduction = "NONE"
	Reduction4H   Reduction = "4H"
	Reduction10H  Reduction = "10H"
)

// PackageType selects the rental duration class on the wire.
type PackageType string

const (
	PackageStandard24H PackageType = "STANDARD_24H"
	PackageVan4H       PackageType = "VAN_4H"
	PackageVan10H      PackageType = "VAN_10H"
)

// Reduction maps a package type to its same-day rate class.
func (p PackageType) Reduction() Reduction {
	switch p {
	case PackageVan4H:
		return Reduction4H
	case PackageVan10H:
		return Reduction10H
	default:
		return ReductionNone
	}
}

// ExtraDriverOption collapses the two wire flags into one value so "both set"
// cannot exist internally. Under-25 replaces the standard surcharge.
type ExtraDriverOption int

const (
	ExtraDriverNone ExtraDriverOption = iota
	ExtraDriverStandard
	ExtraDriverUnder25
)

// ExtraDriverFromFlags maps the two request booleans to a single option,
// with under-25 taking precedence when both are set.
func ExtraDriverFromFlags(extraDriver, under25 bool) ExtraDriverOption {
	switch {
	case under25:
		return ExtraDriverUnder25
	case extraDriver:
		return ExtraDriverStandard
	default:
		return ExtraDriverNone
	}
}

// InsuranceFunc is a vehicle-specific step function for the partial coverage
// surcharge over a rental of the given length.
type InsuranceFunc func(days int, r Reduction) float64

// Tariff is one vehicle's static pricing table.
//
// SameDay multipliers apply to BasePriceDay for 1-day rentals. MultiDay maps a
// km plan to a sparse set of anchor day-counts; the multiplier at an anchor is
// the total price for that many days, expressed in units of BasePriceDay.
type Tariff struct {
	BasePriceDay  float64
	SameDay       map[Reduction]map[KmPlan]float64
	MultiDay      map[KmPlan]map[int]float64
	InsuranceCost InsuranceFunc
}

// Catalog is the immutable set of tariffs keyed by vehicle slug, loaded once
// at startup and injected where pricing happens.
type Catalog struct {
	tariffs map[string]*Tariff
}

func NewCatalog(tariffs map[string]*Tariff) *Catalog {
	return &Catalog{tariffs: tariffs}
}

// Lookup returns the tariff for a vehicle slug.
func (c *Catalog) Lookup(slug string) (*Tariff, error) {
	t, ok := c.tariffs[slug]
	if !ok {
		return nil, &TariffNotFoundError{Slug: slug}
	}
	return t, nil
}

// carInsurance: long rentals get the reduced per-day premium.
func carInsurance(days int, _ Reduction) float64 {
	if days >= 30 {
		return float64(days) * 8
	}
	return float64(days) * 15
}

func vanInsurance(days int, r Reduction) float64 {
	if days == 1 {
		if r == Reduction4H {
			return 10
		}
		return 20
	}
	switch {
	case days <= 3:
		return float64(days) * 20
	case days <= 7:
		return float64(days) * 15
	default:
		return float64(days) * 10
	}
}

// vanTariff is shared by the Crafter and the Boxer.
func vanTariff() *Tariff {
	return &Tariff{
		BasePriceDay: 80,
		SameDay: map[Reduction]map[KmPlan]float64{
			Reduction4H: {Km100: 50.0 / 80},
			Reduction10H: {
				Km100:       65.0 / 80,
				Km200:       85.0 / 80,
				KmUnlimited: 100.0 / 80,
			},
			ReductionNone: {
				Km100:       1.0,
				Km200:       100.0 / 80,
				KmUnlimited: 110.0 / 80,
			},
		},
		MultiDay: map[KmPlan]map[int]float64{
			Km100: {
				2: 150.0 / 80, 3: 225.0 / 80, 4: 280.0 / 80,
				5: 340.0 / 80, 6: 390.0 / 80, 7: 450.0 / 80, 30: 1600.0 / 80,
			},
			KmUnlimited: {
				2: 210.0 / 80, 3: 315.0 / 80, 4: 390.0 / 80,
				5: 475.0 / 80, 6: 540.0 / 80, 7: 620.0 / 80, 30: 2000.0 / 80,
			},
			Km200: {},
		},
		InsuranceCost: vanInsurance,
	}
}

// DefaultCatalog returns the production tariff tables.
func DefaultCatalog() *Catalog {
	polo := &Tariff{
		BasePriceDay: 60,
		SameDay: map[Reduction]map[KmPlan]float64{
			ReductionNone: {Km100: 1.0, KmUnlimited: 65.0 / 60},
			Reduction4H:   {},
			Reduction10H:  {},
		},
		MultiDay: map[KmPlan]map[int]float64{
			Km100: {2: 110.0 / 60, 3: 120.0 / 60},
			KmUnlimited: {
				2: 120.0 / 60, 3: 130.0 / 60, 4: 140.0 / 60,
				5: 175.0 / 60, 6: 205.0 / 60, 7: 210.0 / 60, 30: 950.0 / 60,
			},
			Km200: {},
		},
		InsuranceCost: carInsurance,
	}

	return NewCatalog(map[string]*Tariff{
		"volkswagen-polo":    polo,
		"volkswagen-crafter": vanTariff(),
		"peugeot-boxer-iii":  vanTariff(),
	})
}
