package domain

// CreditScoreEntry is one append-only ledger row behind a user's credit
// score. users.credit_score is the authoritative current value; this table
// is an audit trail and is never replayed.
type CreditScoreEntry struct {
	ID          int32  `json:"id"`
	UserID      int32  `json:"user_id"`
	ScoreChange int32  `json:"score_change"`
	NewScore    int32  `json:"new_score"`
	Reason      string `json:"reason"`
	CreatedOn   string `json:"created_on"`
}

// OnTimePaymentBonus is the fixed reward applied when an owner confirms a
// payment. Rejection applies no penalty.
const OnTimePaymentBonus int32 = 5
