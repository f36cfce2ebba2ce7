package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"carhire/internal/entities"
	apierrors "carhire/internal/errors"
	"carhire/internal/service"
)

type DraftHandler struct {
	Service *service.BookingService
}

func NewDraftHandler(svc *service.BookingService) *DraftHandler {
	return &DraftHandler{Service: svc}
}

// CreateDraft opens a draft session, optionally seeded with dates from the
// landing-page search.
func (h *DraftHandler) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req entities.DraftRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, apierrors.Validation("Invalid request"))
			return
		}
	}

	draft, err := h.Service.StartDraft(req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, draft)
}

func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.Service.GetDraft(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// UpdateDraft applies date/car/option changes and returns the draft with its
// recomputed price summary.
func (h *DraftHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	var req entities.DraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.Validation("Invalid request"))
		return
	}

	draft, err := h.Service.UpdateDraft(mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// IdentifyCustomer attaches customer details to the draft, creating or
// resolving the customer record by email.
func (h *DraftHandler) IdentifyCustomer(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.Validation("Invalid request"))
		return
	}

	draft, _, err := h.Service.IdentifyDraftCustomer(mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}
