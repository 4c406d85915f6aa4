package pricing

import (
	"fmt"
	"time"
)

// TariffNotFoundError means no pricing table is configured for a vehicle.
// This is a catalog configuration defect, not a caller mistake.
type TariffNotFoundError struct {
	Slug string
}

func (e *TariffNotFoundError) Error() string {
	return fmt.Sprintf("no tariff configured for vehicle %q", e.Slug)
}

// RateNotDefinedError means the tariff exists but is missing an entry for the
// requested combination (reduction × km plan, or an empty anchor set).
type RateNotDefinedError struct {
	Slug   string
	Detail string
}

func (e *RateNotDefinedError) Error() string {
	return fmt.Sprintf("rate not defined for vehicle %q: %s", e.Slug, e.Detail)
}

// InvalidRangeError is returned when the end date precedes the start date.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: end %s before start %s",
		e.End.Format("2006-01-02"), e.Start.Format("2006-01-02"))
}

// ValidationError rejects a configuration before any tariff lookup.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}
