package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"cicorent/internal/api"
	"cicorent/internal/auth"
	"cicorent/internal/pricing"
	"cicorent/internal/repository"
	"cicorent/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	database, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := database.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	vehicleRepo := repository.NewVehicleRepository(database)
	bookingRepo := repository.NewBookingRepository(database)
	blackoutRepo := repository.NewBlackoutRepository(database)
	employeeRepo := repository.NewEmployeeRepository(database)
	jobRepo := repository.NewJobRepository(database)

	catalog := pricing.DefaultCatalog()
	sender := service.NewSenderService()
	bookingSvc := service.NewBookingService(bookingRepo, vehicleRepo, blackoutRepo, catalog, sender)
	vehicleSvc := service.NewVehicleService(vehicleRepo, bookingRepo, blackoutRepo)
	authSvc := service.NewAuthService(employeeRepo)
	jobSvc := service.NewJobService(jobRepo)

	vehicleHandler := api.NewVehicleHandler(vehicleSvc)
	bookingHandler := api.NewBookingHandler(bookingSvc)
	adminBookingHandler := api.NewAdminBookingHandler(bookingSvc, authSvc)
	adminAuthHandler := api.NewAdminAuthHandler(authSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/vehicles", vehicleHandler.ListVehicles).Methods("GET")
	r.HandleFunc("/api/vehicles/{slug}", vehicleHandler.GetVehicleBySlug).Methods("GET")
	r.HandleFunc("/api/vehicles/{id}/availability", bookingHandler.CheckAvailability).Methods("GET")
	r.HandleFunc("/api/vehicles/{id}/fully-booked", vehicleHandler.GetFullyBookedDates).Methods("GET")
	r.HandleFunc("/api/blackout-dates/{id}", vehicleHandler.ListBlackoutDates).Methods("GET")
	r.HandleFunc("/api/quote", bookingHandler.Quote).Methods("POST")
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings/{code}", bookingHandler.GetBooking).Methods("POST")

	r.HandleFunc("/api/admin/login", adminAuthHandler.Login).Methods("POST")

	// Staff endpoints (any authenticated employee)
	staff := r.PathPrefix("/api/admin").Subrouter()
	staff.Use(auth.EmployeeAuthMiddleware)
	staff.HandleFunc("/me", adminAuthHandler.Me).Methods("GET")
	staff.HandleFunc("/bookings", adminBookingHandler.ListBookings).Methods("GET")
	staff.HandleFunc("/bookings/{id}", adminBookingHandler.UpdateBooking).Methods("PATCH")
	staff.HandleFunc("/vehicles", vehicleHandler.AdminListVehicles).Methods("GET")
	staff.HandleFunc("/vehicles/{id}/blackout-dates", vehicleHandler.ListBlackoutDates).Methods("GET")

	// Admin-only endpoints
	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(auth.EmployeeAuthMiddleware, auth.RequireAdmin)
	admin.HandleFunc("/bookings/{id}", adminBookingHandler.DeleteBooking).Methods("DELETE")
	admin.HandleFunc("/vehicles", vehicleHandler.AdminCreateVehicle).Methods("POST")
	admin.HandleFunc("/vehicles/{id}", vehicleHandler.AdminUpdateVehicle).Methods("PATCH")
	admin.HandleFunc("/vehicles/{id}/blackout-dates", vehicleHandler.AdminCreateBlackoutDate).Methods("POST")
	admin.HandleFunc("/blackout-dates/{blackoutID}", vehicleHandler.AdminDeleteBlackoutDate).Methods("DELETE")
	admin.HandleFunc("/employees", adminBookingHandler.CreateEmployee).Methods("POST")

	scheduler := cron.New()
	if _, err := scheduler.AddFunc("0 3 * * *", jobSvc.CancelStalePendingBookings); err != nil {
		log.Fatalf("Failed to schedule stale booking sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
