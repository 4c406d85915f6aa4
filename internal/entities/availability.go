package entities

// AvailabilityResponse reports remaining capacity for a vehicle over a date
// range. This is a count, not a per-unit assignment.
type AvailabilityResponse struct {
	VehicleID         string   `json:"vehicle_id"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	AvailableQuantity int      `json:"available_quantity"`
	BlackoutDates     []string `json:"blackout_dates"`
}
