package domain

const (
	ActionConfirmPayment = "confirm_payment"
	ActionRejectPayment  = "reject_payment"
	ActionApproveBooking = "approve_booking"
	ActionRejectBooking  = "reject_booking"
	ActionUpdateBooking  = "update_booking_status"
)

type ActivityLog struct {
	ID         int32  `json:"id"`
	UserID     int32  `json:"user_id"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   int32  `json:"entity_id"`
	IPAddress  string `json:"ip_address"`
	CreatedOn  string `json:"created_on"`
}
