package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"carhire/internal/entities"
	apierrors "carhire/internal/errors"
	"carhire/internal/service"
)

type CustomerHandler struct {
	Service *service.BookingService
}

func NewCustomerHandler(svc *service.BookingService) *CustomerHandler {
	return &CustomerHandler{Service: svc}
}

// CreateCustomer creates a customer, or resolves the existing one when the
// email is already registered. 201 on create, 200 with existed on resolve.
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req entities.CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apierrors.Validation("Invalid request"))
		return
	}

	resp, err := h.Service.IdentifyCustomer(req)
	if err != nil {
		writeError(w, err)
		return
	}
	status := http.StatusCreated
	if resp.Existed {
		status = http.StatusOK
	}
	writeJSON(w, status, resp)
}

func (h *CustomerHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, apierrors.Validation("Invalid customer id"))
		return
	}

	customer, err := h.Service.GetCustomer(id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}
