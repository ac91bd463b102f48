package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/cagnotte-api/middleware"
	"github.com/LovationAdmin/cagnotte-api/services"
)

type AlarmHandler struct {
	Alarms *services.AlarmService
}

func NewAlarmHandler(alarms *services.AlarmService) *AlarmHandler {
	return &AlarmHandler{Alarms: alarms}
}

func (h *AlarmHandler) ListAlarms(c *gin.Context) {
	alarms, err := h.Alarms.List(c.Request.Context(), middleware.GetMemberID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"alarms": alarms})
}

func (h *AlarmHandler) DismissAlarm(c *gin.Context) {
	err := h.Alarms.Dismiss(c.Request.Context(), middleware.GetMemberID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Alarm dismissed"})
}
