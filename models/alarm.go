package models

import "time"

// ============================================================================
// ALARM MODEL
// ============================================================================

type AlarmType string

const (
	AlarmChallenge AlarmType = "CHALLENGE"
	AlarmGroup     AlarmType = "GROUP"
)

type AlarmDetailType string

const (
	AlarmDetailInvite  AlarmDetailType = "invite"
	AlarmDetailAccept  AlarmDetailType = "accept"
	AlarmDetailCreate  AlarmDetailType = "create"
	AlarmDetailSuccess AlarmDetailType = "success"
	AlarmDetailBoom    AlarmDetailType = "boom"  // goal dissolved/refused
	AlarmDetailExit    AlarmDetailType = "talju" // member left a running goal
	AlarmDetailRecord  AlarmDetailType = "record"
)

// Alarm is a persisted lifecycle notification. Write-once, deleted once
// consumed or superseded.
type Alarm struct {
	ID            string          `json:"id"`
	AlarmType     AlarmType       `json:"alarm_type"`
	DetailType    AlarmDetailType `json:"detail_type"`
	GoalName      string          `json:"goal_name"`
	GoalAmount    int             `json:"goal_amount"`
	WaitingGoalID *string         `json:"waiting_goal_id,omitempty"`
	FromNickname  string          `json:"from_nickname"`
	MemberID      string          `json:"member_id"` // recipient
	CreatedAt     time.Time       `json:"created_at"`
}
