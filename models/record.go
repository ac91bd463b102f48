package models

import "time"

// ============================================================================
// RECORD MODEL
// ============================================================================

type RecordType string

const (
	RecordTypeIncome    RecordType = "income"
	RecordTypeExpense   RecordType = "expense"
	RecordTypeChallenge RecordType = "challenge"
	RecordTypeGroup     RecordType = "group"
)

func (t RecordType) Valid() bool {
	switch t {
	case RecordTypeIncome, RecordTypeExpense, RecordTypeChallenge, RecordTypeGroup:
		return true
	}
	return false
}

// Record is a single monetary transaction. Immutable once created except by
// deletion; CreatedAt marks the contribution-counting position relative to a
// goal's epoch, RecordDate is the user-facing booking date.
type Record struct {
	ID         string     `json:"id"`
	MemberID   string     `json:"member_id"`
	RecordType RecordType `json:"record_type"`
	RecordDate time.Time  `json:"record_date"`
	Memo       string     `json:"memo"`
	Amount     int        `json:"amount"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ============================================================================
// RECORD REQUESTS / RESPONSES
// ============================================================================

type RecordRequest struct {
	RecordType RecordType `json:"record_type" binding:"required"`
	RecordDate time.Time  `json:"record_date" binding:"required"`
	Memo       string     `json:"memo"`
	Amount     int        `json:"amount" binding:"required"`
}

type RecordResponse struct {
	Record     Record `json:"record"`
	IsComplete bool   `json:"is_complete"`
}

type DayRecordDTO struct {
	ID         string     `json:"id"`
	RecordType RecordType `json:"record_type"`
	RecordDate time.Time  `json:"record_date"`
	Memo       string     `json:"memo"`
	Amount     int        `json:"amount"`
}

type DayListResponse struct {
	Records         []DayRecordDTO `json:"records"`
	IncomeAmount    int            `json:"income_amount"`
	ExpenseAmount   int            `json:"expense_amount"`
	ChallengeAmount int            `json:"challenge_amount"`
	GroupAmount     int            `json:"group_amount"`
}
