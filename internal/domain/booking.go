package domain

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusPaid      BookingStatus = "paid"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// BookingAction is the generic status-change verb accepted by the booking
// detail endpoint.
type BookingAction string

const (
	BookingActionConfirm  BookingAction = "confirm"
	BookingActionCancel   BookingAction = "cancel"
	BookingActionMarkPaid BookingAction = "mark_paid"
)

// Fixed choices offered on the rejection form. "Other" substitutes the
// accompanying free-text reason.
const (
	RejectReasonOther = "Other"
)

var BookingRejectReasons = []string{
	"Property no longer available",
	"Dates not available",
	"Special requests cannot be accommodated",
	RejectReasonOther,
}

type Booking struct {
	ID              int32         `json:"id"`
	PropertyID      int32         `json:"property_id"`
	UserID          int32         `json:"user_id"`
	StartDate       string        `json:"start_date"`
	EndDate         string        `json:"end_date"`
	Status          BookingStatus `json:"status"`
	DepositCents    int64         `json:"deposit_cents"`
	AdminNotes      string        `json:"admin_notes"`
	RejectionReason string        `json:"rejection_reason"`
	CreatedOn       string        `json:"created_on"`
	UpdatedOn       string        `json:"updated_on"`
}

// BookingDetail is a booking joined with the ownership chain it belongs to,
// as returned by scoped lookups.
type BookingDetail struct {
	Booking
	PropertyTitle string `json:"property_title"`
	PropertyOwner int32  `json:"property_owner_id"`
	StudentName   string `json:"student_name"`
	StudentEmail  string `json:"student_email"`
}
