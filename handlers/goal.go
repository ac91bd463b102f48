package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/cagnotte-api/middleware"
	"github.com/LovationAdmin/cagnotte-api/models"
	"github.com/LovationAdmin/cagnotte-api/services"
)

// GoalHandler exposes the challenge and group goal lifecycle: status views,
// proposals, invitation responses, and exits.
type GoalHandler struct {
	Goals   *services.GoalService
	Waiting *services.WaitingGoalService
}

func NewGoalHandler(goals *services.GoalService, waiting *services.WaitingGoalService) *GoalHandler {
	return &GoalHandler{Goals: goals, Waiting: waiting}
}

// ============================================================================
// CHALLENGE
// ============================================================================

func (h *GoalHandler) GetChallenge(c *gin.Context) {
	info, err := h.Goals.ChallengeInfo(c.Request.Context(), middleware.GetMemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *GoalHandler) PostChallenge(c *gin.Context) {
	var req models.GoalProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.Waiting.Propose(c.Request.Context(), middleware.GetMemberID(c), models.GoalTypeChallenge, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Challenge proposed"})
}

func (h *GoalHandler) AcceptChallenge(c *gin.Context) {
	err := h.Waiting.Accept(c.Request.Context(), middleware.GetMemberID(c), c.Param("alarm_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Challenge accepted"})
}

func (h *GoalHandler) RefuseChallenge(c *gin.Context) {
	err := h.Waiting.Refuse(c.Request.Context(), middleware.GetMemberID(c), c.Param("alarm_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Challenge refused"})
}

func (h *GoalHandler) ExitChallenge(c *gin.Context) {
	err := h.Goals.ExitChallenge(c.Request.Context(), middleware.GetMemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Challenge exited"})
}

func (h *GoalHandler) WithdrawChallenge(c *gin.Context) {
	err := h.Waiting.Withdraw(c.Request.Context(), middleware.GetMemberID(c), c.Param("waiting_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation withdrawn"})
}

// ============================================================================
// GROUP
// ============================================================================

func (h *GoalHandler) GetGroup(c *gin.Context) {
	info, err := h.Goals.GroupInfo(c.Request.Context(), middleware.GetMemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *GoalHandler) PostGroup(c *gin.Context) {
	var req models.GoalProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.Waiting.Propose(c.Request.Context(), middleware.GetMemberID(c), models.GoalTypeGroup, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group goal proposed"})
}

func (h *GoalHandler) AcceptGroup(c *gin.Context) {
	err := h.Waiting.Accept(c.Request.Context(), middleware.GetMemberID(c), c.Param("alarm_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group goal accepted"})
}

func (h *GoalHandler) RefuseGroup(c *gin.Context) {
	err := h.Waiting.Refuse(c.Request.Context(), middleware.GetMemberID(c), c.Param("alarm_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group goal refused"})
}

func (h *GoalHandler) ExitGroup(c *gin.Context) {
	err := h.Goals.ExitGroup(c.Request.Context(), middleware.GetMemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Group goal exited"})
}

func (h *GoalHandler) WithdrawGroup(c *gin.Context) {
	err := h.Waiting.Withdraw(c.Request.Context(), middleware.GetMemberID(c), c.Param("waiting_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Invitation withdrawn"})
}
