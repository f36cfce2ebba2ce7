package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"carhire/internal/entities"
	apierrors "carhire/internal/errors"
	"carhire/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// Quote prices a rental without persisting anything; safe to call on every
// option change.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req entities.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.Validation("Invalid request"))
		return
	}

	resp, err := h.Service.Quote(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateBooking persists a booking with a guaranteed-unique reference and
// kicks off the confirmation notification.
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.Validation("Invalid request"))
		return
	}

	resp, err := h.Service.CreateBooking(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	booking, err := h.Service.GetBookingByRef(ref)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

// CancelBooking deletes the booking for a valid reference. Cancelling an
// unknown reference reports not found.
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ref := mux.Vars(r)["ref"]

	if err := h.Service.CancelBooking(ref); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Booking cancelled successfully"})
}
