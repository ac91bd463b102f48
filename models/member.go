package models

import "time"

// ============================================================================
// MEMBER MODEL
// ============================================================================

type Member struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Nickname        string    `json:"nickname"`
	Hero            string    `json:"hero,omitempty"` // avatar character
	PasswordHash    string    `json:"-"`              // Never expose in JSON
	TOTPSecret      string    `json:"-"`              // Never expose in JSON
	TOTPEnabled     bool      `json:"totp_enabled"`
	ChallengeGoalID *string   `json:"challenge_goal_id,omitempty"`
	GroupGoalID     *string   `json:"group_goal_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ============================================================================
// AUTHENTICATION REQUESTS
// ============================================================================

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Nickname string `json:"nickname" binding:"required,min=2,max=20"`
	Hero     string `json:"hero,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	TOTPCode string `json:"totp_code,omitempty"`
}

type AuthResponse struct {
	Token  string `json:"token"`
	Member Member `json:"member"`
}

// ============================================================================
// PASSWORD & 2FA
// ============================================================================

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

type TOTPSetupResponse struct {
	Secret string `json:"secret"`
	QRCode string `json:"qr_code"`
}

type VerifyTOTPRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}
