package domain

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

type Payment struct {
	ID              int32         `json:"id"`
	BookingID       int32         `json:"booking_id"`
	AmountCents     int64         `json:"amount_cents"`
	Status          PaymentStatus `json:"status"`
	TransactionID   string        `json:"transaction_id"`
	PaymentMethodID *int32        `json:"payment_method_id,omitempty"`
	Notes           string        `json:"notes"`
	FailureReason   string        `json:"failure_reason"`
	CreatedOn       string        `json:"created_on"`
	UpdatedOn       string        `json:"updated_on"`
}

// PaymentDetail carries the payment together with the booking, property and
// student it settles, as resolved by the owner-scoped lookup.
type PaymentDetail struct {
	Payment
	BookingStatus BookingStatus `json:"booking_status"`
	PropertyID    int32         `json:"property_id"`
	PropertyOwner int32         `json:"property_owner_id"`
	StudentID     int32         `json:"student_id"`
	StudentName   string        `json:"student_name"`
	StudentEmail  string        `json:"student_email"`
}

type PaymentMethod struct {
	ID        int32  `json:"id"`
	UserID    int32  `json:"user_id"`
	Label     string `json:"label"`
	Kind      string `json:"kind"` // "card", "bank", "mobile_money"
	IsDefault bool   `json:"is_default"`
	CreatedOn string `json:"created_on"`
}
