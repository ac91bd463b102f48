package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/cagnotte-api/middleware"
	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/utils"
)

type MemberHandler struct {
	DB *sql.DB
}

func (h *MemberHandler) GetProfile(c *gin.Context) {
	memberID := middleware.GetMemberID(c)

	var member models.Member
	err := h.DB.QueryRow(`
		SELECT id, email, nickname, COALESCE(hero, ''), totp_enabled, created_at, updated_at
		FROM members
		WHERE id = $1
	`, memberID).Scan(&member.ID, &member.Email, &member.Nickname, &member.Hero,
		&member.TOTPEnabled, &member.CreatedAt, &member.UpdatedAt)

	if err == sql.ErrNoRows {
		c.JSON(http.StatusNotFound, gin.H{"error": "Member not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, member)
}

func (h *MemberHandler) ChangePassword(c *gin.Context) {
	memberID := middleware.GetMemberID(c)

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var currentHash string
	err := h.DB.QueryRow("SELECT password_hash FROM members WHERE id = $1", memberID).Scan(&currentHash)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if !utils.CheckPassword(req.CurrentPassword, currentHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	_, err = h.DB.Exec("UPDATE members SET password_hash = $1, updated_at = NOW() WHERE id = $2", newHash, memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

func (h *MemberHandler) SetupTOTP(c *gin.Context) {
	memberID := middleware.GetMemberID(c)

	var email string
	err := h.DB.QueryRow("SELECT email FROM members WHERE id = $1", memberID).Scan(&email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	secret, url, err := utils.GenerateTOTPSecret(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate TOTP secret"})
		return
	}

	// Stored disabled until the member confirms a valid code.
	_, err = h.DB.Exec("UPDATE members SET totp_secret = $1, totp_enabled = FALSE WHERE id = $2", secret, memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store TOTP secret"})
		return
	}

	c.JSON(http.StatusOK, models.TOTPSetupResponse{Secret: secret, QRCode: url})
}

func (h *MemberHandler) VerifyTOTP(c *gin.Context) {
	memberID := middleware.GetMemberID(c)

	var req models.VerifyTOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var secret sql.NullString
	err := h.DB.QueryRow("SELECT totp_secret FROM members WHERE id = $1", memberID).Scan(&secret)
	if err != nil || !secret.Valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "TOTP not set up"})
		return
	}

	valid, _ := utils.VerifyTOTP(secret.String, req.Code)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid TOTP code"})
		return
	}

	_, err = h.DB.Exec("UPDATE members SET totp_enabled = TRUE WHERE id = $1", memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enable TOTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "TOTP enabled successfully"})
}
