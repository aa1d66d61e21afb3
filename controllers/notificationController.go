package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"citypulse-be/config"
	"citypulse-be/models"
	authUtils "citypulse-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateNotification persists a broadcast notification and kicks off the
// email fan-out in the background. The response returns as soon as the
// record is stored; delivery failures never surface to the caller.
func CreateNotification(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}
	adminID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	var input struct {
		Title   string `json:"title" binding:"required"`
		Message string `json:"message" binding:"required"`
		Type    string `json:"type" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields"})
		return
	}

	notifType := models.NotificationType(input.Type)
	if !notifType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid notification type"})
		return
	}

	notification := models.Notification{
		ID:        primitive.NewObjectID(),
		Title:     input.Title,
		Message:   input.Message,
		Type:      notifType,
		CreatedBy: adminID,
		CreatedAt: time.Now(),
	}

	notificationCollection := config.GetCollection("notifications")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := notificationCollection.InsertOne(ctx, notification); err != nil {
		log.Println("Error creating notification:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	// Fan out to all citizens off the request path
	go broadcastToCitizens(adminID, notification.Title, notification.Message)

	c.JSON(http.StatusCreated, gin.H{"success": true, "notification": notification})
}

// broadcastToCitizens emails every registered citizen from the creating
// admin's department identity. Runs detached from the request; every failure
// is logged and swallowed.
func broadcastToCitizens(adminID primitive.ObjectID, title, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	department := "Main"
	var admin models.Admin
	if err := config.GetCollection("admins").FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin); err == nil && admin.Department != "" {
		department = admin.Department
	}

	findOptions := options.Find().SetProjection(bson.M{"email": 1})
	cursor, err := config.GetCollection("citizens").Find(ctx, bson.M{}, findOptions)
	if err != nil {
		log.Println("Error fetching citizen emails:", err)
		return
	}
	defer cursor.Close(ctx)

	var citizens []models.Citizen
	if err := cursor.All(ctx, &citizens); err != nil {
		log.Println("Error decoding citizen emails:", err)
		return
	}

	emails := make([]string, 0, len(citizens))
	for _, citizen := range citizens {
		if citizen.Email != "" {
			emails = append(emails, citizen.Email)
		}
	}

	if err := authUtils.BroadcastEmail(department, title, message, emails); err != nil {
		log.Println("Error sending emails:", err)
	}
}

// GetNotifications returns the latest 50 notifications, newest first
func GetNotifications(c *gin.Context) {
	notificationCollection := config.GetCollection("notifications")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(50)

	cursor, err := notificationCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		log.Println("Error fetching notifications:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	defer cursor.Close(ctx)

	notifications := make([]models.Notification, 0)
	if err := cursor.All(ctx, &notifications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notifications})
}
