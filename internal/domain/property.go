package domain

type PropertyStatus string

const (
	PropertyStatusAvailable PropertyStatus = "available"
	PropertyStatusBooked    PropertyStatus = "booked"
	PropertyStatusPaid      PropertyStatus = "paid"
	PropertyStatusReported  PropertyStatus = "reported"
	PropertyStatusUnlisted  PropertyStatus = "unlisted"
)

type Property struct {
	ID               int32          `json:"id"`
	OwnerID          int32          `json:"owner_id"`
	Title            string         `json:"title"`
	Address          string         `json:"address"`
	MonthlyRentCents int64          `json:"monthly_rent_cents"`
	Status           PropertyStatus `json:"status"`
	CreatedOn        string         `json:"created_on"`
	UpdatedOn        string         `json:"updated_on"`
}
