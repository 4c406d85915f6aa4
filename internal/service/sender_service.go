package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"cicorent/internal/entities"
)

// SenderService sends booking notifications. Every send runs in its own
// goroutine and failures are only logged: a lost email or SMS must never
// surface as a booking failure.
type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendBookingCreated(booking *entities.BookingResponse) {
	s.sendCustomerEmail(booking)
	s.sendAdminEmail(booking)
	s.sendCustomerSMS(booking)
}

func (s *SenderService) sendCustomerEmail(booking *entities.BookingResponse) {
	data := entities.BookingEmailData{
		CustomerName: booking.CustomerFirstName + " " + booking.CustomerLastName,
		BookingCode:  booking.BookingCode,
		VehicleName:  booking.VehicleName,
		StartDate:    booking.StartDate,
		EndDate:      booking.EndDate,
		DaysCount:    booking.DaysCount,
		TotalPrice:   booking.TotalPrice,
		CurrentYear:  time.Now().Year(),
	}

	subject := fmt.Sprintf("CICO Rent - Booking %s received", data.BookingCode)
	plainTextBody := fmt.Sprintf(
		"Dear %s,\n\nYour booking has been received. One of our operators will call you today to confirm.\n\n"+
			"Booking details:\n"+
			"Code: %s\n"+
			"Vehicle: %s\n"+
			"Period: %s to %s (%d days)\n"+
			"Total: EUR %s (VAT included)\n"+
			"Pickup: Via Cristoforo Colombo 1778, 00127 Roma\n\n"+
			"Thank you for choosing CICO Rent.",
		data.CustomerName, data.BookingCode, data.VehicleName,
		data.StartDate, data.EndDate, data.DaysCount, data.TotalPrice,
	)

	htmlBody := plainTextBody
	tmplPath := filepath.Join("internal", "templates", "booking_email.html")
	tmpl, err := template.ParseFiles(tmplPath)
	if err != nil {
		log.Printf("WARNING: could not parse booking email template (%s): %v", tmplPath, err)
	} else {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			log.Printf("WARNING: could not render booking email template for %s: %v", data.BookingCode, err)
		} else {
			htmlBody = buf.String()
		}
	}

	go func(toEmail, toName, subject, plainBody, htmlBody string) {
		if err := SendEmailWithSendGrid(toEmail, toName, subject, plainBody, htmlBody); err != nil {
			log.Printf("WARNING (async): email for booking %s failed: %v", data.BookingCode, err)
		}
	}(booking.CustomerEmail, data.CustomerName, subject, plainTextBody, htmlBody)
}

func (s *SenderService) sendAdminEmail(booking *entities.BookingResponse) {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		log.Println("WARNING: ADMIN_EMAIL not set, skipping admin notification")
		return
	}

	subject := fmt.Sprintf("New booking %s", booking.BookingCode)
	body := fmt.Sprintf(
		"New booking received.\n\n"+
			"Code: %s\n"+
			"Vehicle: %s\n"+
			"Period: %s to %s (%d days)\n"+
			"Customer: %s %s (%s, %s)\n"+
			"Total: EUR %s",
		booking.BookingCode, booking.VehicleName,
		booking.StartDate, booking.EndDate, booking.DaysCount,
		booking.CustomerFirstName, booking.CustomerLastName,
		booking.CustomerPhone, booking.CustomerEmail,
		booking.TotalPrice,
	)

	go func() {
		if err := SendEmailWithSendGrid(adminEmail, "CICO Rent", subject, body, body); err != nil {
			log.Printf("WARNING (async): admin notification for booking %s failed: %v", booking.BookingCode, err)
		}
	}()
}

func (s *SenderService) sendCustomerSMS(booking *entities.BookingResponse) {
	message := fmt.Sprintf(
		"CICO Rent: booking %s received!\nPickup: %s.\nMore details in your email.",
		booking.BookingCode, booking.StartDate,
	)

	go func() {
		if err := SendSMS(booking.CustomerPhone, message); err != nil {
			log.Printf("WARNING: booking %s was created but the confirmation SMS to %s failed: %v",
				booking.BookingCode, booking.CustomerPhone, err)
		}
	}()
}
