package entities

// QuoteRequest carries a rental configuration from the client. Dates are ISO
// (yyyy-mm-dd) strings. The two extra-driver flags are collapsed server-side;
// under-25 replaces the standard surcharge when both are set.
type QuoteRequest struct {
	VehicleID          string `json:"vehicle_id"`
	StartDate          string `json:"start_date"`
	EndDate            string `json:"end_date"`
	PackageType        string `json:"package_type"`
	KmPlan             string `json:"km_plan"`
	Coverage           string `json:"coverage"`
	ExtraDriver        bool   `json:"extra_driver"`
	ExtraDriverUnder25 bool   `json:"extra_driver_under25"`
	HomeDelivery       bool   `json:"home_delivery"`
	HomePickup         bool   `json:"home_pickup"`
}

type QuoteBreakdown struct {
	BaseWithDiscount float64 `json:"base_with_discount"`
	Insurance        float64 `json:"insurance"`
	ExtraDriver      float64 `json:"extra_driver"`
	Delivery         float64 `json:"delivery"`
}

type QuoteResponse struct {
	Total          float64        `json:"total"`
	DaysCount      int            `json:"days_count"`
	Breakdown      QuoteBreakdown `json:"breakdown"`
	DiscountAmount float64        `json:"discount_amount"`
	DiscountPct    float64        `json:"discount_pct"`
}
