package main

import (
	"log"
	"os"
	"time"

	"placement-portal-backend/internal/config"
	"placement-portal-backend/internal/logger"
	"placement-portal-backend/internal/models"
	"placement-portal-backend/internal/routes"
	"placement-portal-backend/internal/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on system env")
	}

	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	db := config.InitDB()

	db.AutoMigrate(
		&models.Admin{},
		&models.Placement{},
		&models.RosterFile{},
		&models.Candidate{},
		&models.Notification{},
	)

	// Seed the default admin account
	authService := auth.NewService(db, config.JWTSecret())
	if err := authService.EnsureAdmin(config.AdminEmail(), config.AdminPassword()); err != nil {
		log.Fatal("failed to seed admin account: ", err)
	}

	r := gin.Default()
	// CORS config
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db)

	r.Run(":" + config.ServerPort())
}
