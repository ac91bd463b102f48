package routes

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/cagnotte-api/handlers"
	"github.com/LovationAdmin/cagnotte-api/services"
	"github.com/LovationAdmin/cagnotte-api/storage/postgres"
)

// SetupAuthRoutes sets up public authentication routes.
func SetupAuthRoutes(rg *gin.RouterGroup, db *sql.DB) {
	authHandler := &handlers.AuthHandler{DB: db}

	rg.POST("/auth/signup", authHandler.Signup)
	rg.POST("/auth/login", authHandler.Login)
}

// SetupMemberRoutes sets up protected member profile routes.
func SetupMemberRoutes(rg *gin.RouterGroup, db *sql.DB) {
	memberHandler := &handlers.MemberHandler{DB: db}

	rg.GET("/member/profile", memberHandler.GetProfile)
	rg.POST("/member/password", memberHandler.ChangePassword)
	rg.POST("/member/2fa/setup", memberHandler.SetupTOTP)
	rg.POST("/member/2fa/verify", memberHandler.VerifyTOTP)
}

// SetupGoalRoutes sets up the goal lifecycle routes.
func SetupGoalRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	store := postgres.New(db)
	goalService := services.NewGoalService(store, ws)
	waitingService := services.NewWaitingGoalService(store, ws)

	h := handlers.NewGoalHandler(goalService, waitingService)

	rg.GET("/challenge", h.GetChallenge)
	rg.POST("/challenge", h.PostChallenge)
	rg.POST("/challenge/accept/:alarm_id", h.AcceptChallenge)
	rg.POST("/challenge/refuse/:alarm_id", h.RefuseChallenge)
	rg.DELETE("/challenge/exit", h.ExitChallenge)
	rg.DELETE("/challenge/waiting/:waiting_id", h.WithdrawChallenge)

	rg.GET("/group", h.GetGroup)
	rg.POST("/group", h.PostGroup)
	rg.POST("/group/accept/:alarm_id", h.AcceptGroup)
	rg.POST("/group/refuse/:alarm_id", h.RefuseGroup)
	rg.DELETE("/group/exit", h.ExitGroup)
	rg.DELETE("/group/waiting/:waiting_id", h.WithdrawGroup)
}

// SetupAlarmRoutes sets up the notification inbox routes.
func SetupAlarmRoutes(rg *gin.RouterGroup, db *sql.DB) {
	store := postgres.New(db)
	alarmService := services.NewAlarmService(store)

	h := handlers.NewAlarmHandler(alarmService)

	rg.GET("/alarms", h.ListAlarms)
	rg.DELETE("/alarms/:id", h.DismissAlarm)
}

// SetupRecordRoutes sets up the money record routes.
func SetupRecordRoutes(rg *gin.RouterGroup, db *sql.DB, ws *handlers.WSHandler) {
	store := postgres.New(db)
	recordService := services.NewRecordService(store, ws)

	h := handlers.NewRecordHandler(recordService)

	rg.POST("/records", h.CreateRecord)
	rg.GET("/records/day", h.GetDayList)
	rg.DELETE("/records/:id", h.DeleteRecord)
}
