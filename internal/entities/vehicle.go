package entities

// VehicleRequest is the admin create/update payload. AvailableQuantity is
// clamped to Quantity server-side.
type VehicleRequest struct {
	Name              string   `json:"name"`
	Slug              string   `json:"slug"`
	Type              string   `json:"type"`
	BasePriceDay      float64  `json:"base_price_day"`
	Quantity          int      `json:"quantity"`
	AvailableQuantity int      `json:"available_quantity"`
	ColorOptions      []string `json:"color_options"`
	Seats             int      `json:"seats"`
	Transmission      string   `json:"transmission"`
	FuelType          string   `json:"fuel_type"`
	ImageURL          string   `json:"image_url,omitempty"`
}
