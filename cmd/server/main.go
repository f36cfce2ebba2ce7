package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"carhire/internal/api"
	"carhire/internal/config"
	"carhire/internal/repository"
	"carhire/internal/service"
	"carhire/internal/session"
)

func main() {
	godotenv.Load()
	cfg := config.New()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	carRepo := repository.NewCarRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	drafts := session.NewDraftStore(cfg.DraftTTL)
	notifier := service.NewNotifyService()
	svc := service.NewBookingService(carRepo, customerRepo, bookingRepo, notifier, drafts)

	carHandler := api.NewCarHandler(svc)
	customerHandler := api.NewCustomerHandler(svc)
	bookingHandler := api.NewBookingHandler(svc)
	draftHandler := api.NewDraftHandler(svc)

	r := mux.NewRouter()

	// Catalog and availability
	r.HandleFunc("/api/cars", carHandler.ListCars).Methods("GET")
	r.HandleFunc("/api/cars/available", carHandler.AvailableCars).Methods("GET")
	r.HandleFunc("/api/options", carHandler.ListOptions).Methods("GET")

	// Pricing
	r.HandleFunc("/api/quote", bookingHandler.Quote).Methods("POST")

	// Draft sessions
	r.HandleFunc("/api/drafts", draftHandler.CreateDraft).Methods("POST")
	r.HandleFunc("/api/drafts/{id}", draftHandler.GetDraft).Methods("GET")
	r.HandleFunc("/api/drafts/{id}", draftHandler.UpdateDraft).Methods("PUT")
	r.HandleFunc("/api/drafts/{id}/customer", draftHandler.IdentifyCustomer).Methods("POST")

	// Customers
	r.HandleFunc("/api/customers", customerHandler.CreateCustomer).Methods("POST")
	r.HandleFunc("/api/customers/{id}", customerHandler.GetCustomer).Methods("GET")

	// Bookings
	r.HandleFunc("/api/bookings", bookingHandler.CreateBooking).Methods("POST")
	r.HandleFunc("/api/bookings/{ref}", bookingHandler.GetBooking).Methods("GET")
	r.HandleFunc("/api/bookings/{ref}", bookingHandler.CancelBooking).Methods("DELETE")

	jobs := service.NewJobService(drafts)
	c := cron.New()
	if _, err := c.AddFunc("@every 15m", jobs.PurgeExpiredDrafts); err != nil {
		log.Fatalf("Failed to schedule draft purge: %v", err)
	}
	c.Start()
	defer c.Stop()

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	zap.S().Infow("carhire server running", "port", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, corsHandler(handlers.CombinedLoggingHandler(logWriter{}, r))))
}

// logWriter routes gorilla's access log lines through zap.
type logWriter struct{}

func (logWriter) Write(p []byte) (int, error) {
	zap.S().Info(string(p))
	return len(p), nil
}
