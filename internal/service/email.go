package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey   string
	from     string
	fromName string
}

// NewEmailService returns the SendGrid-backed email sender. With an empty
// API key every send becomes a no-op, which keeps local development and
// tests off the network.
func NewEmailService(apiKey, from, fromName string) EmailService {
	return &emailService{
		apiKey:   apiKey,
		from:     from,
		fromName: fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	if s.apiKey == "" {
		return nil
	}

	from := mail.NewEmail(s.fromName, s.from)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendRaw(ctx context.Context, email, subject, body string) error {
	return s.send(email, "", subject, body)
}

func (s *emailService) SendBookingApprovedNotification(ctx context.Context, email, name, propertyTitle string) error {
	subject := "Your booking was approved"
	body := fmt.Sprintf("Hello %s,\n\nYour booking for %s has been approved by the owner. You can now proceed with payment.\n\nThe UniStay Team", name, propertyTitle)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendBookingRejectedNotification(ctx context.Context, email, name, propertyTitle, reason string) error {
	subject := "Your booking was rejected"
	body := fmt.Sprintf("Hello %s,\n\nYour booking for %s has been rejected.\n\nReason: %s\n\nThe UniStay Team", name, propertyTitle, reason)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendPaymentConfirmedNotification(ctx context.Context, email, name string, bookingID int32, amountCents int64) error {
	subject := "Payment confirmed"
	body := fmt.Sprintf("Hello %s,\n\nYour payment of %s for booking #%d has been confirmed. Welcome home!\n\nThe UniStay Team", name, formatAmount(amountCents), bookingID)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendPaymentRejectedNotification(ctx context.Context, email, name string, bookingID int32, reason string) error {
	subject := "Payment rejected"
	body := fmt.Sprintf("Hello %s,\n\nYour payment for booking #%d was rejected.\n\nReason: %s\n\nPlease try again or contact the owner.\n\nThe UniStay Team", name, bookingID, reason)
	return s.send(email, name, subject, body)
}
