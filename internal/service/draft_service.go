package service

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"carhire/internal/booking"
	"carhire/internal/entities"
	apierrors "carhire/internal/errors"
	"carhire/internal/pricing"
	"carhire/internal/repository"
	"carhire/internal/session"
)

// StartDraft opens a new draft session, optionally seeded with dates.
func (s *BookingService) StartDraft(req entities.DraftRequest) (*entities.DraftResponse, error) {
	d := s.Drafts.Create()
	if isEmptyDraftRequest(req) {
		resp := toDraftResponse(*d)
		return &resp, nil
	}
	return s.UpdateDraft(d.ID, req)
}

func (s *BookingService) GetDraft(id string) (*entities.DraftResponse, error) {
	d, ok := s.Drafts.Get(id)
	if !ok {
		return nil, apierrors.NotFound("Draft not found")
	}
	resp := toDraftResponse(d)
	return &resp, nil
}

// UpdateDraft applies date/car/option changes and recomputes the running
// price summary. Identified drafts fall back to Drafting when their
// selections change, matching the retry-from-draft contract.
func (s *BookingService) UpdateDraft(id string, req entities.DraftRequest) (*entities.DraftResponse, error) {
	var pickup, drop time.Time
	if req.PickupDate != "" || req.DropDate != "" {
		var err error
		pickup, drop, err = parseDates(req.PickupDate, req.DropDate)
		if err != nil {
			return nil, err
		}
	}
	if err := validateOptions(req.Options); err != nil {
		return nil, err
	}

	existing, ok := s.Drafts.Get(id)
	if !ok {
		return nil, apierrors.NotFound("Draft not found")
	}

	carID := existing.CarID
	if req.CarID > 0 {
		carID = req.CarID
	}
	var dailyPrice float64
	if carID > 0 {
		c, err := s.Cars.GetCar(carID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, apierrors.Validation("Unknown car")
			}
			zap.S().Errorw("car lookup failed", "car_id", carID, "error", err)
			return nil, apierrors.Dependency("Internal Server Error")
		}
		dailyPrice = c.DailyPrice
	}

	updated, ok, err := s.Drafts.Update(id, func(d *session.Draft) error {
		if d.State != booking.StateDrafting {
			next, terr := booking.Advance(d.State, booking.StateDrafting)
			if terr != nil {
				return apierrors.Conflict("Draft can no longer be edited")
			}
			d.State = next
			d.CustomerID = 0
		}
		if !pickup.IsZero() {
			d.PickupDate = pickup
			d.DropDate = drop
		}
		if req.PickupTime != "" {
			d.PickupTime = req.PickupTime
		}
		if req.DropTime != "" {
			d.DropTime = req.DropTime
		}
		if req.PickupPlace != "" {
			d.PickupPlace = req.PickupPlace
		}
		if req.DropPlace != "" {
			d.DropPlace = req.DropPlace
		}
		if req.CarID > 0 {
			d.CarID = req.CarID
		}
		if req.Options != nil {
			d.Options = req.Options
		}
		if d.CarID > 0 && !d.PickupDate.IsZero() {
			summary := pricing.Quote(dailyPrice, d.PickupDate, d.DropDate, d.Options)
			d.Summary = &summary
		}
		return nil
	})
	if !ok {
		return nil, apierrors.NotFound("Draft not found")
	}
	if err != nil {
		var httpErr *apierrors.HTTPError
		if errors.As(err, &httpErr) {
			return nil, httpErr
		}
		return nil, apierrors.Dependency("Internal Server Error")
	}
	resp := toDraftResponse(updated)
	return &resp, nil
}

// IdentifyDraftCustomer advances Drafting -> CustomerIdentified: it resolves
// or creates the customer by email and pins the id on the draft.
func (s *BookingService) IdentifyDraftCustomer(id string, req entities.CreateCustomerRequest) (*entities.DraftResponse, *entities.CreateCustomerResponse, error) {
	if _, ok := s.Drafts.Get(id); !ok {
		return nil, nil, apierrors.NotFound("Draft not found")
	}

	customer, err := s.IdentifyCustomer(req)
	if err != nil {
		return nil, nil, err
	}

	updated, ok, err := s.Drafts.Update(id, func(d *session.Draft) error {
		next, terr := booking.Advance(d.State, booking.StateCustomerIdentified)
		if terr != nil {
			return apierrors.Conflict("Draft is not in a state that accepts customer details")
		}
		d.State = next
		d.CustomerID = customer.ID
		return nil
	})
	if !ok {
		return nil, nil, apierrors.NotFound("Draft not found")
	}
	if err != nil {
		var httpErr *apierrors.HTTPError
		if errors.As(err, &httpErr) {
			return nil, nil, httpErr
		}
		return nil, nil, apierrors.Dependency("Internal Server Error")
	}

	resp := toDraftResponse(updated)
	return &resp, customer, nil
}

func isEmptyDraftRequest(req entities.DraftRequest) bool {
	return req.PickupDate == "" && req.DropDate == "" && req.PickupTime == "" &&
		req.DropTime == "" && req.PickupPlace == "" && req.DropPlace == "" &&
		req.CarID == 0 && req.Options == nil
}

func toDraftResponse(d session.Draft) entities.DraftResponse {
	resp := entities.DraftResponse{
		ID:          d.ID,
		State:       string(d.State),
		PickupTime:  d.PickupTime,
		DropTime:    d.DropTime,
		PickupPlace: d.PickupPlace,
		DropPlace:   d.DropPlace,
		CarID:       d.CarID,
		CustomerID:  d.CustomerID,
		Options:     d.Options,
		Summary:     d.Summary,
	}
	if !d.PickupDate.IsZero() {
		resp.PickupDate = d.PickupDate.Format(dateLayout)
	}
	if !d.DropDate.IsZero() {
		resp.DropDate = d.DropDate.Format(dateLayout)
	}
	return resp
}
