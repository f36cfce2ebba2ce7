package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"carhire/internal/entities"
)

// notifyTimeout bounds each outbound notification so a slow channel can
// never delay or fail a booking response.
const notifyTimeout = 10 * time.Second

// NotifyService composes and dispatches booking emails and SMS. All sends
// run asynchronously; failures are logged, never returned to the booking
// flow.
type NotifyService struct {
}

func NewNotifyService() *NotifyService {
	return &NotifyService{}
}

func (s *NotifyService) SendBookingConfirmation(view entities.BookingResponse) {
	customerName := fmt.Sprintf("%s %s", view.FirstName, view.LastName)
	subject := "Booking Confirmation"
	plainBody := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Thank you for choosing Spring Car Hire. Your booking has been successfully confirmed.\n\n"+
			"Booking Reference: %s\n\n"+
			"--- Check Your Booking ---\n"+
			"You can view your current booking status and details anytime in the \"My Booking\" section "+
			"of our website by entering your booking reference code (%s).\n\n"+
			"--- Cancellation & Refund ---\n"+
			"If you need to cancel your booking, please go to the \"My Booking\" section, enter your "+
			"booking reference code, and select \"Cancel Booking\".\n"+
			"We'll process your refund within 2 business days from the date of cancellation.\n\n"+
			"Thank you once again for choosing us. We look forward to serving you!\n\n"+
			"Best regards,\nSpring Car Hire Team",
		customerName, view.BookingRef, view.BookingRef,
	)
	s.dispatchEmail(view, customerName, subject, plainBody)

	if view.Phone != "" {
		sms := fmt.Sprintf("Spring Car Hire: booking %s confirmed!\nPickup: %s.\nMore details in your email.",
			view.BookingRef, view.PickupDate)
		s.dispatchSMS(view.Phone, view.BookingRef, sms)
	}
}

func (s *NotifyService) SendBookingCancellation(view entities.BookingResponse) {
	customerName := fmt.Sprintf("%s %s", view.FirstName, view.LastName)
	subject := fmt.Sprintf("Booking %s Cancelled", view.BookingRef)
	plainBody := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your booking %s has been cancelled.\n\n"+
			"We'll process your refund within 2 business days from the date of cancellation.\n\n"+
			"Best regards,\nSpring Car Hire Team",
		customerName, view.BookingRef,
	)
	s.dispatchEmail(view, customerName, subject, plainBody)

	if view.Phone != "" {
		sms := fmt.Sprintf("Spring Car Hire: booking %s has been cancelled. Refund within 2 business days.",
			view.BookingRef)
		s.dispatchSMS(view.Phone, view.BookingRef, sms)
	}
}

func (s *NotifyService) dispatchEmail(view entities.BookingResponse, customerName, subject, plainBody string) {
	emailData := entities.BookingEmailData{
		CustomerName:        customerName,
		BookingRef:          view.BookingRef,
		CarMake:             view.Make,
		CarModel:            view.Model,
		PickupDateFormatted: view.PickupDate,
		DropDateFormatted:   view.DropDate,
		TotalAmount:         view.TotalAmount,
		DepositAmount:       view.DepositAmount,
		CurrentYear:         time.Now().Year(),
	}

	var htmlBody string
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		zap.S().Warnw("parsing booking email template failed, sending plain text only", "path", tmplPath, "error", err)
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, emailData); err != nil {
			zap.S().Warnw("executing booking email template failed", "ref", view.BookingRef, "error", err)
		} else {
			htmlBody = buf.String()
		}
	}
	if htmlBody == "" {
		htmlBody = "<pre>" + template.HTMLEscapeString(plainBody) + "</pre>"
	}

	go func(toEmail, toName, subject, plainBody, htmlBody, ref string) {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := SendEmailWithSendGrid(ctx, toEmail, toName, subject, plainBody, htmlBody); err != nil {
			zap.S().Errorw("booking email failed", "ref", ref, "to", toEmail, "error", err)
		}
	}(view.Email, customerName, subject, plainBody, htmlBody, view.BookingRef)
}

func (s *NotifyService) dispatchSMS(toNumber, ref, body string) {
	go func() {
		done := make(chan error, 1)
		go func() { done <- SendSMS(toNumber, body) }()
		select {
		case err := <-done:
			if err != nil {
				zap.S().Errorw("booking SMS failed", "ref", ref, "to", toNumber, "error", err)
			}
		case <-time.After(notifyTimeout):
			zap.S().Errorw("booking SMS timed out", "ref", ref, "to", toNumber)
		}
	}()
}
