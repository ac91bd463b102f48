package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/LovationAdmin/cagnotte-api/utils"
)

// WSHandler pushes a lightweight signal to a member's open sessions whenever
// a new alarm lands for them; clients refetch their alarm list on receipt.
// Implements services.Notifier.
type WSHandler struct {
	M *melody.Melody
}

func NewWSHandler() *WSHandler {
	m := melody.New()

	m.Config.MaxMessageSize = 1024
	// Keep-Alive Configuration (Critical for Render.com/Cloud hosting)
	m.Config.PingPeriod = 30 * time.Second
	m.Config.PongWait = 60 * time.Second

	m.HandleDisconnect(func(s *melody.Session) {
		memberID, _ := s.Get("member_id")
		log.Printf("🔌 Client disconnected: %v", memberID)
	})

	m.HandleError(func(s *melody.Session, err error) {
		log.Printf("❌ WebSocket Error: %v", err)
	})

	return &WSHandler{M: m}
}

// HandleWS upgrades the request. The browser WebSocket API cannot set an
// Authorization header, so the token travels as a query parameter.
func (h *WSHandler) HandleWS(c *gin.Context) {
	claims, err := utils.ParseAccessToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return
	}

	memberID := claims.MemberID
	log.Printf("✅ Client connected: %s", memberID)

	keys := map[string]interface{}{"member_id": memberID}
	if err := h.M.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		log.Printf("❌ Failed to upgrade websocket: %v", err)
	}
}

// NotifyAlarm signals every session of the member that a new alarm exists.
func (h *WSHandler) NotifyAlarm(memberID string) {
	msg := []byte(`{"type": "alarm"}`)

	err := h.M.BroadcastFilter(msg, func(q *melody.Session) bool {
		id, exists := q.Get("member_id")
		return exists && id == memberID
	})

	if err != nil {
		log.Printf("⚠️ Error broadcasting to member %s: %v", memberID, err)
	}
}
