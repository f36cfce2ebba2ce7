package api

import (
	"net/http"

	"carhire/internal/service"
)

type CarHandler struct {
	Service *service.BookingService
}

func NewCarHandler(svc *service.BookingService) *CarHandler {
	return &CarHandler{Service: svc}
}

// ListCars returns the full vehicle catalog.
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Service.ListCars()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

// AvailableCars returns the vehicles free over the requested date range.
// Both pickup_date and drop_date query parameters are required.
func (h *CarHandler) AvailableCars(w http.ResponseWriter, r *http.Request) {
	pickupDate := r.URL.Query().Get("pickup_date")
	dropDate := r.URL.Query().Get("drop_date")

	cars, err := h.Service.CheckAvailability(pickupDate, dropDate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cars)
}

// ListOptions returns the extras catalog.
func (h *CarHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.Service.ListOptions()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}
