package domain

type NotificationType string

const (
	NotificationTypeBooking NotificationType = "booking"
	NotificationTypePayment NotificationType = "payment"
	NotificationTypeSystem  NotificationType = "system"
)

type Notification struct {
	ID         int32            `json:"id"`
	UserID     int32            `json:"user_id"`
	Type       NotificationType `json:"type"`
	Message    string           `json:"message"`
	EntityType string           `json:"entity_type,omitempty"`
	EntityID   *int32           `json:"entity_id,omitempty"`
	IsRead     bool             `json:"is_read"`
	CreatedOn  string           `json:"created_on"`
}
