package models

import "time"

// ============================================================================
// GOAL TYPES
// ============================================================================

type GoalType string

const (
	GoalTypeChallenge GoalType = "CHALLENGE"
	GoalTypeGroup     GoalType = "GROUP"
)

// ChallengeGoal is a shareable savings target where each member races toward
// the target with their own contributions.
type ChallengeGoal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    int       `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupGoal is a pooled savings target counting every member's contributions
// toward one shared sum. Goals are created accepted; a pending proposal lives
// as a WaitingGoal, never as an unaccepted row here.
type GroupGoal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    int       `json:"amount"`
	Accepted  bool      `json:"accepted"`
	CreatedAt time.Time `json:"created_at"`
}

// WaitingGoal is a proposed goal pending unanimous invitee acceptance. The
// proposer holds no acceptance row; their agreement is implied.
type WaitingGoal struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Amount     int       `json:"amount"`
	GoalType   GoalType  `json:"goal_type"`
	ProposerID string    `json:"proposer_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// MemberWaitingGoal is the per-invitee acceptance ledger of a WaitingGoal.
type MemberWaitingGoal struct {
	ID            string `json:"id"`
	MemberID      string `json:"member_id"`
	WaitingGoalID string `json:"waiting_goal_id"`
	Accepted      bool   `json:"accepted"`
	// Populated by joins for alarm fan-out and goal assembly.
	MemberNickname string `json:"member_nickname,omitempty"`
}

// DoneGoal is the archival record of a completed goal. Write-once.
type DoneGoal struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	Name      string    `json:"name"`
	Amount    int       `json:"amount"`
	GoalType  GoalType  `json:"goal_type"`
	CreatedAt time.Time `json:"created_at"`
}

// ============================================================================
// GOAL REQUESTS
// ============================================================================

// GoalProposalRequest creates a goal outright (no invitees) or opens a
// WaitingGoal round when friend nicknames are present.
type GoalProposalRequest struct {
	GoalName        string   `json:"goal_name" binding:"required"`
	GoalAmount      int      `json:"goal_amount" binding:"required"`
	FriendNicknames []string `json:"friend_nicknames,omitempty"`
}

// ============================================================================
// GOAL RESPONSES
// ============================================================================

// GoalStatus values returned by the goal-info views.
const (
	GoalStatusActive  = "goal"
	GoalStatusWaiting = "waiting"
	GoalStatusNone    = "noGoal"
)

type ChallengeMemberDTO struct {
	Nickname   string `json:"nickname"`
	Hero       string `json:"hero,omitempty"`
	LeftAmount int    `json:"left_amount"`
	NowPercent int    `json:"now_percent"`
}

type ChallengeRecordDTO struct {
	RecordDate time.Time `json:"record_date"`
	Memo       string    `json:"memo"`
	Amount     int       `json:"amount"`
}

type WaitingGoalDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ChallengeInfoResponse struct {
	GoalStatus   string               `json:"goal_status"`
	Members      []ChallengeMemberDTO `json:"members,omitempty"`
	Name         string               `json:"name,omitempty"`
	GoalAmount   int                  `json:"goal_amount,omitempty"`
	DoneGoals    []string             `json:"done_goals"`
	Records      []ChallengeRecordDTO `json:"records,omitempty"`
	WaitingGoals []WaitingGoalDTO     `json:"waiting_goals,omitempty"`
}

type GroupMemberDTO struct {
	Nickname string `json:"nickname"`
	Hero     string `json:"hero,omitempty"`
}

type GroupRecordDTO struct {
	RecordDate time.Time `json:"record_date"`
	Hero       string    `json:"hero,omitempty"`
	Nickname   string    `json:"nickname"`
	Memo       string    `json:"memo"`
	Amount     int       `json:"amount"`
}

type GroupInfoResponse struct {
	GoalStatus   string           `json:"goal_status"`
	Members      []GroupMemberDTO `json:"members,omitempty"`
	Name         string           `json:"name,omitempty"`
	LeftAmount   int              `json:"left_amount"`
	NowPercent   int              `json:"now_percent"`
	DoneGoals    []string         `json:"done_goals"`
	Records      []GroupRecordDTO `json:"records,omitempty"`
	WaitingGoals []WaitingGoalDTO `json:"waiting_goals,omitempty"`
}
