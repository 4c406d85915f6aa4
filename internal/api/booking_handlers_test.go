package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cicorent/internal/db"
	"cicorent/internal/entities"
	"cicorent/internal/pricing"
	"cicorent/internal/repository"
	"cicorent/internal/service"
)

type stubBookingStore struct {
	createErr error
}

func (s *stubBookingStore) ListBookings() ([]db.Booking, error)         { return nil, nil }
func (s *stubBookingStore) GetBooking(string) (*db.Booking, error)      { return nil, repository.ErrBookingNotFound }
func (s *stubBookingStore) GetBookingByCode(string, string) (*db.Booking, error) {
	return nil, repository.ErrBookingNotFound
}
func (s *stubBookingStore) CountOverlapping(string, time.Time, time.Time) (int, error) {
	return 0, nil
}
func (s *stubBookingStore) CreateWithAvailability(b *db.Booking) error {
	if s.createErr != nil {
		return s.createErr
	}
	b.ID = "book-1"
	b.BookingCode = "080001"
	return nil
}
func (s *stubBookingStore) UpdateBooking(*db.Booking) error { return nil }
func (s *stubBookingStore) DeleteBooking(string) error      { return nil }

type stubVehicleStore struct{}

func (s *stubVehicleStore) ListVehicles() ([]db.Vehicle, error) { return nil, nil }
func (s *stubVehicleStore) GetVehicle(id string) (*db.Vehicle, error) {
	if id != "veh-1" {
		return nil, repository.ErrVehicleNotFound
	}
	return &db.Vehicle{ID: "veh-1", Name: "Volkswagen Polo", Slug: "volkswagen-polo", Type: "CAR", Quantity: 2}, nil
}

type stubBlackoutStore struct{}

func (s *stubBlackoutStore) ListBlackoutDatesInRange(string, time.Time, time.Time) ([]db.BlackoutDate, error) {
	return nil, nil
}

type stubNotifier struct{}

func (s *stubNotifier) SendBookingCreated(*entities.BookingResponse) {}

func newTestRouter(store *stubBookingStore) *mux.Router {
	svc := service.NewBookingService(store, &stubVehicleStore{}, &stubBlackoutStore{}, pricing.DefaultCatalog(), &stubNotifier{})
	handler := NewBookingHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/api/quote", handler.Quote).Methods("POST")
	r.HandleFunc("/api/vehicles/{id}/availability", handler.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/bookings", handler.CreateBooking).Methods("POST")
	return r
}

func TestQuoteEndpoint(t *testing.T) {
	router := newTestRouter(&stubBookingStore{})

	t.Run("returns a priced breakdown", func(t *testing.T) {
		body := `{"vehicle_id":"veh-1","start_date":"2026-06-01","end_date":"2026-06-03","km_plan":"KM_100"}`
		req := httptest.NewRequest("POST", "/api/quote", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var quote entities.QuoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &quote))
		assert.Equal(t, 3, quote.DaysCount)
		assert.Equal(t, 120.0, quote.Total)
	})

	t.Run("bad dates are a 400", func(t *testing.T) {
		body := `{"vehicle_id":"veh-1","start_date":"01/06/2026","end_date":"2026-06-03"}`
		req := httptest.NewRequest("POST", "/api/quote", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown vehicle is a 404", func(t *testing.T) {
		body := `{"vehicle_id":"veh-9","start_date":"2026-06-01","end_date":"2026-06-03"}`
		req := httptest.NewRequest("POST", "/api/quote", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCreateBookingEndpoint(t *testing.T) {
	validBody := `{
		"vehicle_id": "veh-1",
		"start_date": "2026-06-01",
		"end_date": "2026-06-03",
		"km_plan": "KM_100",
		"customer_first_name": "Mario",
		"customer_last_name": "Rossi",
		"customer_birth_date": "1990-04-15",
		"customer_phone": "+39333123456",
		"customer_email": "mario@example.com",
		"driver_license_no": "RM1234567"
	}`

	t.Run("created bookings carry their code", func(t *testing.T) {
		router := newTestRouter(&stubBookingStore{})
		req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp entities.BookingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "080001", resp.BookingCode)
		assert.Equal(t, "120.00", resp.TotalPrice)
	})

	t.Run("capacity conflicts are a 400", func(t *testing.T) {
		router := newTestRouter(&stubBookingStore{createErr: repository.ErrNoAvailability})
		req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("blackout conflicts report the dates", func(t *testing.T) {
		blocked := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)
		router := newTestRouter(&stubBookingStore{
			createErr: &repository.BlackoutConflictError{Dates: []time.Time{blocked}},
		})
		req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(validBody))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var resp struct {
			BlackoutDates []string `json:"blackout_dates"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, []string{"2026-06-02"}, resp.BlackoutDates)
	})

	t.Run("missing customer fields are a 400", func(t *testing.T) {
		router := newTestRouter(&stubBookingStore{})
		body := `{"vehicle_id":"veh-1","start_date":"2026-06-01","end_date":"2026-06-03"}`
		req := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAvailabilityEndpoint(t *testing.T) {
	router := newTestRouter(&stubBookingStore{})

	req := httptest.NewRequest("GET", "/api/vehicles/veh-1/availability?from=2026-06-01&to=2026-06-05", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp entities.AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.AvailableQuantity)
}
