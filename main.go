package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"citypulse-be/config"
	"citypulse-be/models"
	"citypulse-be/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	log.Println("MongoDB connection established successfully!")

	if err := models.EnsureIssueIndexes(config.GetCollection("issues")); err != nil {
		log.Printf("Failed to ensure issue indexes: %v", err)
	}
	if err := models.EnsureStatusHistoryIndex(config.GetCollection("statushistories")); err != nil {
		log.Printf("Failed to ensure status history index: %v", err)
	}

	config.ConnectRedis()

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ORIGIN"); origins != "" {
		corsConfig.AllowOrigins = strings.Split(origins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173"}
	}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	r.Use(cors.New(corsConfig))

	routes.CitizenRoutes(r)
	routes.AdminRoutes(r)
	routes.IssueRoutes(r)
	routes.NotificationRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
