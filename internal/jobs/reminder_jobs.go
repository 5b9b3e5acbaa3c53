package jobs

import (
	"context"
	"fmt"

	"unistay-backend/internal/logger"
)

// SendPaymentReminders emails students whose approved bookings still have no
// completed payment.
func (jr *JobRunner) SendPaymentReminders() {
	jr.runWithRecovery("SendPaymentReminders", func() {
		ctx := context.Background()

		query := `
			SELECT b.id, b.deposit_cents,
			       u.email, u.name AS student_name,
			       p.title AS property_title
			FROM bookings b
			JOIN users u ON b.user_id = u.id
			JOIN property p ON b.property_id = p.id
			WHERE b.status = 'confirmed'
			  AND NOT EXISTS (
			      SELECT 1 FROM payments pay
			      WHERE pay.booking_id = b.id AND pay.status = 'completed'
			  )
		`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("Failed to query bookings awaiting payment", "error", err)
			return
		}
		defer rows.Close()

		count := 0
		for rows.Next() {
			var (
				bookingID     int32
				depositCents  int64
				email         string
				studentName   string
				propertyTitle string
			)
			if err := rows.Scan(&bookingID, &depositCents, &email, &studentName, &propertyTitle); err != nil {
				logger.Error("Failed to scan booking awaiting payment", "error", err)
				continue
			}

			subject := "Reminder: Payment Due"
			body := fmt.Sprintf(`Dear %s,

Your booking for "%s" (Booking ID: %d) has been approved but we have not
received your deposit payment of $%.2f yet.

Please submit your payment so the owner can confirm your stay.

Thank you,
The UniStay Team`, studentName, propertyTitle, bookingID, float64(depositCents)/100)

			if err := jr.services.Email.SendRaw(ctx, email, subject, body); err != nil {
				logger.Error("Failed to send payment reminder",
					"booking_id", bookingID, "email", email, "error", err)
				continue
			}
			count++
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating bookings awaiting payment", "error", err)
			return
		}

		logger.Info("Sent payment reminders", "count", count)
	})
}
