package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"placement-portal-backend/internal/config"
	handler "placement-portal-backend/internal/handlers"
	"placement-portal-backend/internal/middleware"
	"placement-portal-backend/internal/repository"
	"placement-portal-backend/internal/services/auth"
	"placement-portal-backend/internal/services/lifecycle"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	fileRepo := repository.NewRosterFileRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	placementRepo := repository.NewPlacementRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	lifecycleService := lifecycle.NewService(
		fileRepo,
		candidateRepo,
		placementRepo,
		notificationRepo,
	)
	secret := config.JWTSecret()
	authService := auth.NewService(db, secret)

	adminHandler := handler.NewAdminHandler(lifecycleService, authService)
	placementHandler := handler.NewPlacementHandler(lifecycleService, authService)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Admin routes
	admin := api.Group("/admin")
	admin.POST("/login", adminHandler.Login)

	adminAuth := admin.Group("", middleware.RequireRole(secret, "admin"))
	adminAuth.GET("/placements/:id/files", adminHandler.ListFiles)
	adminAuth.GET("/placements/:id/files/:fileId/data", adminHandler.GetFileData)
	adminAuth.POST("/placements/:id/files/:fileId/approve", adminHandler.ApproveFile)
	adminAuth.PUT("/placements/:id/files/:fileId/reject", adminHandler.RejectFile)
	adminAuth.POST("/placements/:id/files/:fileId/process", adminHandler.ProcessFile)
	adminAuth.PUT("/placements/:id/files/:fileId/credits", adminHandler.UpdateFileCredits)
	adminAuth.PUT("/placements/:id/bulk-credits", adminHandler.BulkUpdateCredits)
	adminAuth.GET("/notifications", adminHandler.ListNotifications)

	// Placement officer routes
	placement := api.Group("/placement")
	placement.POST("/register", placementHandler.Register)
	placement.POST("/login", placementHandler.Login)

	placementAuth := placement.Group("", middleware.RequireRole(secret, "placement"))
	placementAuth.POST("/files", placementHandler.UploadFile)
	placementAuth.POST("/files/:fileId/resubmit", placementHandler.ResubmitFile)
	placementAuth.GET("/files", placementHandler.ListMyFiles)
	placementAuth.GET("/candidates", placementHandler.ListMyCandidates)
}
