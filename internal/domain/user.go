package domain

type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleOwner   UserRole = "property_owner"
	UserRoleAdmin   UserRole = "admin"
)

const (
	// Credit scores are clamped to [CreditScoreMin, CreditScoreMax].
	CreditScoreMin     int32 = 0
	CreditScoreMax     int32 = 100
	CreditScoreDefault int32 = 50
)

type User struct {
	ID           int32    `json:"id"`
	Role         UserRole `json:"role"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PhoneNumber  string   `json:"phone_number"`
	PasswordHash string   `json:"-"`
	// Current trust signal. Mutated only by the payment confirm path,
	// never recomputed from credit_score_history.
	CreditScore int32  `json:"credit_score"`
	IsActive    bool   `json:"is_active"`
	CreatedOn   string `json:"created_on"`
	UpdatedOn   string `json:"updated_on"`
}

// CanManage reports whether a caller may act on a resource owned by
// resourceOwnerID. Admins may act on anything.
func CanManage(resourceOwnerID, callerID int32, callerRole UserRole) bool {
	return callerRole == UserRoleAdmin || callerID == resourceOwnerID
}
