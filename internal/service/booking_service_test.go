package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cicorent/internal/db"
	"cicorent/internal/entities"
	"cicorent/internal/pricing"
	"cicorent/internal/repository"
)

type fakeBookingStore struct {
	bookings    []db.Booking
	overlap     int
	createErr   error
	created     *db.Booking
	updated     *db.Booking
	nextID      string
	overlapSeen struct {
		vehicleID  string
		start, end time.Time
	}
}

func (f *fakeBookingStore) ListBookings() ([]db.Booking, error) { return f.bookings, nil }

func (f *fakeBookingStore) GetBooking(id string) (*db.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (f *fakeBookingStore) GetBookingByCode(code, email string) (*db.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].BookingCode == code && f.bookings[i].CustomerEmail == email {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, repository.ErrBookingNotFound
}

func (f *fakeBookingStore) CountOverlapping(vehicleID string, start, end time.Time) (int, error) {
	f.overlapSeen.vehicleID = vehicleID
	f.overlapSeen.start = start
	f.overlapSeen.end = end
	return f.overlap, nil
}

func (f *fakeBookingStore) CreateWithAvailability(b *db.Booking) error {
	if f.createErr != nil {
		return f.createErr
	}
	b.ID = f.nextID
	b.BookingCode = "080001"
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	f.created = b
	return nil
}

func (f *fakeBookingStore) UpdateBooking(b *db.Booking) error {
	f.updated = b
	return nil
}

func (f *fakeBookingStore) DeleteBooking(id string) error { return nil }

type fakeVehicleStore struct {
	vehicles map[string]*db.Vehicle
}

func (f *fakeVehicleStore) ListVehicles() ([]db.Vehicle, error) {
	out := make([]db.Vehicle, 0, len(f.vehicles))
	for _, v := range f.vehicles {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeVehicleStore) GetVehicle(id string) (*db.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, repository.ErrVehicleNotFound
	}
	return v, nil
}

type fakeBlackoutStore struct {
	dates []db.BlackoutDate
}

func (f *fakeBlackoutStore) ListBlackoutDatesInRange(vehicleID string, start, end time.Time) ([]db.BlackoutDate, error) {
	return f.dates, nil
}

type fakeNotifier struct {
	sent []*entities.BookingResponse
}

func (f *fakeNotifier) SendBookingCreated(b *entities.BookingResponse) {
	f.sent = append(f.sent, b)
}

func crafterFixture() *db.Vehicle {
	return &db.Vehicle{
		ID:       "veh-1",
		Name:     "Volkswagen Crafter L3H3",
		Slug:     "volkswagen-crafter",
		Type:     "VAN",
		Quantity: 2,
	}
}

func newTestService(store *fakeBookingStore, vehicles *fakeVehicleStore, blackouts *fakeBlackoutStore, notifier *fakeNotifier) *BookingService {
	return NewBookingService(store, vehicles, blackouts, pricing.DefaultCatalog(), notifier)
}

func validBookingRequest() *entities.BookingRequest {
	return &entities.BookingRequest{
		QuoteRequest: entities.QuoteRequest{
			VehicleID: "veh-1",
			StartDate: "2026-06-01",
			EndDate:   "2026-06-05",
			KmPlan:    "KM_100",
		},
		CustomerFirstName: "Mario",
		CustomerLastName:  "Rossi",
		CustomerBirthDate: "1990-04-15",
		CustomerPhone:     "+39333123456",
		CustomerEmail:     "mario@example.com",
		DriverLicenseNo:   "RM1234567",
	}
}

func TestQuoteDefaultsAndBreakdown(t *testing.T) {
	svc := newTestService(
		&fakeBookingStore{},
		&fakeVehicleStore{vehicles: map[string]*db.Vehicle{"veh-1": crafterFixture()}},
		&fakeBlackoutStore{},
		&fakeNotifier{},
	)

	// Package and coverage are omitted and default to STANDARD_24H / BASE.
	quote, err := svc.Quote(entities.QuoteRequest{
		VehicleID: "veh-1",
		StartDate: "2026-06-01",
		EndDate:   "2026-06-05",
		KmPlan:    "KM_100",
	})
	require.NoError(t, err)

	assert.Equal(t, 5, quote.DaysCount)
	assert.Equal(t, 340.0, quote.Total)
	assert.Equal(t, 60.0, quote.DiscountAmount)
	assert.Equal(t, 15.0, quote.DiscountPct)
}

func TestQuoteRejectsBadEnums(t *testing.T) {
	svc := newTestService(
		&fakeBookingStore{},
		&fakeVehicleStore{vehicles: map[string]*db.Vehicle{"veh-1": crafterFixture()}},
		&fakeBlackoutStore{},
		&fakeNotifier{},
	)

	cases := []entities.QuoteRequest{
		{VehicleID: "veh-1", StartDate: "2026-06-01", EndDate: "2026-06-05", KmPlan: "KM_500"},
		{VehicleID: "veh-1", StartDate: "2026-06-01", EndDate: "2026-06-05", PackageType: "WEEKEND"},
		{VehicleID: "veh-1", StartDate: "2026-06-01", EndDate: "2026-06-05", Coverage: "FULL"},
		{VehicleID: "veh-1", StartDate: "not-a-date", EndDate: "2026-06-05"},
	}
	for _, req := range cases {
		_, err := svc.Quote(req)
		var vErr *pricing.ValidationError
		assert.ErrorAs(t, err, &vErr, "%+v", req)
	}
}

func TestCreateBookingRecomputesPrice(t *testing.T) {
	store := &fakeBookingStore{nextID: "book-1"}
	notifier := &fakeNotifier{}
	svc := newTestService(
		store,
		&fakeVehicleStore{vehicles: map[string]*db.Vehicle{"veh-1": crafterFixture()}},
		&fakeBlackoutStore{},
		notifier,
	)

	resp, err := svc.CreateBooking(validBookingRequest())
	require.NoError(t, err)

	require.NotNil(t, store.created)
	assert.Equal(t, "340.00", store.created.TotalPrice)
	assert.Equal(t, "60.00", store.created.DiscountAmount)
	assert.Equal(t, "15.00", store.created.DiscountPct)
	assert.Equal(t, 5, store.created.DaysCount)
	assert.Equal(t, db.StatusPending, store.created.Status)

	assert.Equal(t, "080001", resp.BookingCode)
	assert.Equal(t, "Volkswagen Crafter L3H3", resp.VehicleName)

	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "080001", notifier.sent[0].BookingCode)
}

func TestCreateBookingCapacityRejected(t *testing.T) {
	store := &fakeBookingStore{createErr: repository.ErrNoAvailability}
	notifier := &fakeNotifier{}
	svc := newTestService(
		store,
		&fakeVehicleStore{vehicles: map[string]*db.Vehicle{"veh-1": crafterFixture()}},
		&fakeBlackoutStore{},
		notifier,
	)

	_, err := svc.CreateBooking(validBookingRequest())
	assert.ErrorIs(t, err, repository.ErrNoAvailability)
	assert.Empty(t, notifier.sent)
}

func TestCreateBookingRequiresCustomerFields(t *testing.T) {
	svc := newTestService(
		&fakeBookingStore{},
		&fakeVehicleStore{vehicles: map[string]*db.Vehicle{"veh-1": crafterFixture()}},
		&fakeBlackoutStore{},
		&fakeNotifier{},
	)

	req := validBookingRequest()
	req.CustomerEmail = ""
	_, err := svc.CreateBooking(req)
	var vErr *pricing.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Contains(t, vErr.Msg, "customer_email")
}

func TestCheckAvailability(t *testing.T) {
	blocked := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)
	store := &fakeBookingStore{overlap: 1}
	svc := newTestService(
		store,
		&fakeVehicleStore{vehicles: map[string]*db.Vehicle{"veh-1": crafterFixture()}},
		&fakeBlackoutStore{dates: []db.BlackoutDate{{VehicleID: "veh-1", Date: blocked}}},
		&fakeNotifier{},
	)

	avail, err := svc.CheckAvailability("veh-1", "2026-06-01", "2026-06-05")
	require.NoError(t, err)
	assert.Equal(t, 1, avail.AvailableQuantity)
	assert.Equal(t, []string{"2026-06-03"}, avail.BlackoutDates)
	assert.Equal(t, "veh-1", store.overlapSeen.vehicleID)

	t.Run("clamps negative availability to zero", func(t *testing.T) {
		store.overlap = 5
		avail, err := svc.CheckAvailability("veh-1", "2026-06-01", "2026-06-05")
		require.NoError(t, err)
		assert.Zero(t, avail.AvailableQuantity)
	})
}

func TestUpdateBookingStatusGuard(t *testing.T) {
	confirmed := db.Booking{
		ID:        "book-1",
		VehicleID: "veh-1",
		StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC),
		Status:    db.StatusConfirmed,
	}
	svc := newTestService(
		&fakeBookingStore{bookings: []db.Booking{confirmed}},
		&fakeVehicleStore{vehicles: map[string]*db.Vehicle{"veh-1": crafterFixture()}},
		&fakeBlackoutStore{},
		&fakeNotifier{},
	)

	cancelled := db.StatusCancelled
	_, err := svc.UpdateBooking("book-1", &entities.BookingUpdate{Status: &cancelled})
	var vErr *pricing.ValidationError
	require.ErrorAs(t, err, &vErr)
}

func TestUpdateBookingRepricesOnConfigChange(t *testing.T) {
	pending := db.Booking{
		ID:             "book-1",
		VehicleID:      "veh-1",
		StartDate:      time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC),
		DaysCount:      5,
		PackageType:    "STANDARD_24H",
		KmPlan:         "KM_100",
		Coverage:       "BASE",
		TotalPrice:     "340.00",
		DiscountAmount: "60.00",
		DiscountPct:    "15.00",
		Status:         db.StatusPending,
	}
	store := &fakeBookingStore{bookings: []db.Booking{pending}}
	svc := newTestService(
		store,
		&fakeVehicleStore{vehicles: map[string]*db.Vehicle{"veh-1": crafterFixture()}},
		&fakeBlackoutStore{},
		&fakeNotifier{},
	)

	unlimited := "UNLIMITED"
	resp, err := svc.UpdateBooking("book-1", &entities.BookingUpdate{KmPlan: &unlimited})
	require.NoError(t, err)

	// 5-day UNLIMITED anchor on the van tariff totals 475.
	assert.Equal(t, "475.00", resp.TotalPrice)
	require.NotNil(t, store.updated)
	assert.Equal(t, "475.00", store.updated.TotalPrice)
	assert.Equal(t, "UNLIMITED", store.updated.KmPlan)
}

func TestUpdateBookingWithoutPricingChangeKeepsPrice(t *testing.T) {
	pending := db.Booking{
		ID:          "book-1",
		VehicleID:   "veh-1",
		StartDate:   time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC),
		DaysCount:   5,
		PackageType: "STANDARD_24H",
		KmPlan:      "KM_100",
		Coverage:    "BASE",
		TotalPrice:  "340.00",
		Status:      db.StatusPending,
	}
	store := &fakeBookingStore{bookings: []db.Booking{pending}}
	svc := newTestService(
		store,
		&fakeVehicleStore{vehicles: map[string]*db.Vehicle{"veh-1": crafterFixture()}},
		&fakeBlackoutStore{},
		&fakeNotifier{},
	)

	note := "customer will arrive late"
	resp, err := svc.UpdateBooking("book-1", &entities.BookingUpdate{Notes: &note})
	require.NoError(t, err)
	assert.Equal(t, "340.00", resp.TotalPrice)
	assert.Equal(t, note, resp.Notes)
}
