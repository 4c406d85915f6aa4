package entities

// BookingEmailData feeds the confirmation email template.
type BookingEmailData struct {
	CustomerName string
	BookingCode  string
	VehicleName  string
	StartDate    string
	EndDate      string
	DaysCount    int
	TotalPrice   string
	CurrentYear  int
}
