package jobs

import (
	"context"
	"fmt"
	"time"

	"unistay-backend/internal/domain"
	"unistay-backend/internal/logger"
)

// ExpireStaleBookings cancels pending bookings that the owner never acted on
// within the configured window, releases the held property and notifies the
// student.
func (jr *JobRunner) ExpireStaleBookings() {
	jr.runWithRecovery("ExpireStaleBookings", func() {
		ctx := context.Background()

		cutoff := time.Now().AddDate(0, 0, -jr.config.Scheduler.StaleBookingDays)

		query := `
			UPDATE bookings
			SET status = 'cancelled',
			    admin_notes = 'Expired: no owner response',
			    updated_on = NOW()
			WHERE status = 'pending'
			  AND created_on < $1
			RETURNING id, user_id, property_id
		`

		rows, err := jr.db.QueryContext(ctx, query, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale bookings", "error", err)
			return
		}
		defer rows.Close()

		type expired struct {
			ID         int32
			StudentID  int32
			PropertyID int32
		}

		var expiredBookings []expired
		for rows.Next() {
			var e expired
			if err := rows.Scan(&e.ID, &e.StudentID, &e.PropertyID); err != nil {
				logger.Error("Failed to scan expired booking", "error", err)
				continue
			}
			expiredBookings = append(expiredBookings, e)
		}
		if err := rows.Err(); err != nil {
			logger.Error("Error iterating expired bookings", "error", err)
			return
		}

		logger.Info("Expired stale bookings", "count", len(expiredBookings))

		for _, e := range expiredBookings {
			if err := jr.store.Properties.SetStatus(ctx, e.PropertyID, domain.PropertyStatusAvailable); err != nil {
				logger.Error("Failed to release property for expired booking",
					"booking_id", e.ID, "property_id", e.PropertyID, "error", err)
			}

			_, err := jr.db.ExecContext(ctx, `
				INSERT INTO notifications (user_id, type, message, entity_type, entity_id, is_read, created_on)
				VALUES ($1, 'booking', $2, 'booking', $3, FALSE, NOW())
			`, e.StudentID, fmt.Sprintf("Your booking request #%d expired without a response from the owner", e.ID), e.ID)
			if err != nil {
				logger.Error("Failed to notify student of expired booking",
					"booking_id", e.ID, "student_id", e.StudentID, "error", err)
			}
		}
	})
}
