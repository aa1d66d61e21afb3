package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"citypulse-be/config"
	"citypulse-be/models"
	authUtils "citypulse-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateIssue handles the creation of a new issue by a citizen.
// No status history record is written here: history begins with the first
// administrator transition, not with the report itself.
func CreateIssue(c *gin.Context) {
	// Extract citizen ID from context (set by auth middleware)
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	citizenID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var input struct {
		Title       string  `json:"title" binding:"required,min=5,max=100"`
		Description string  `json:"description" binding:"required,max=1000"`
		Category    string  `json:"category" binding:"required"`
		Status      *string `json:"status,omitempty"`
		Location    struct {
			Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
			Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
			Address   string   `json:"address,omitempty"`
		} `json:"location" binding:"required"`
		Media *string `json:"media,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category := models.IssueCategory(input.Category)
	if !category.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
		return
	}

	// Issues start out Reported unless an explicit valid status is supplied
	status := models.Reported
	if input.Status != nil {
		status = models.IssueStatus(*input.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
	}

	var mediaID *primitive.ObjectID
	if input.Media != nil {
		id, err := primitive.ObjectIDFromHex(*input.Media)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid media ID"})
			return
		}
		mediaID = &id
	}

	issueCollection := config.GetCollection("issues")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Title uniqueness is also enforced by the unique index; checking first
	// gives a clean conflict response instead of a raw duplicate-key error
	count, err := issueCollection.CountDocuments(ctx, bson.M{"title": input.Title})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "An issue with this title already exists"})
		return
	}

	issue := models.Issue{
		ID:          primitive.NewObjectID(),
		CitizenID:   citizenID,
		Category:    category,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Location: models.Location{
			Latitude:  *input.Location.Latitude,
			Longitude: *input.Location.Longitude,
			Address:   input.Location.Address,
		},
		MediaID:   mediaID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := issueCollection.InsertOne(ctx, issue); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "An issue with this title already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// GetIssuesByCitizen retrieves all issues reported by the authenticated citizen
func GetIssuesByCitizen(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	citizenID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	issueCollection := config.GetCollection("issues")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := issueCollection.Find(ctx, bson.M{"citizenId": citizenID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	issues := make([]models.Issue, 0)
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}

// GetIssue retrieves a single issue by its ID
func GetIssue(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	issueCollection := config.GetCollection("issues")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	c.JSON(http.StatusOK, issue)
}

// DeleteIssueByCitizen allows the reporter of an issue to delete it
func DeleteIssueByCitizen(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	citizenID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	issueCollection := config.GetCollection("issues")
	historyCollection := config.GetCollection("statushistories")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var issue models.Issue
	err = issueCollection.FindOne(ctx, bson.M{"_id": issueID}).Decode(&issue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if issue.CitizenID != citizenID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to delete this issue"})
		return
	}

	if _, err := issueCollection.DeleteOne(ctx, bson.M{"_id": issueID}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}

	// Cascade the status history so no orphaned records remain
	_, _ = historyCollection.DeleteMany(ctx, bson.M{"issueID": issueID})

	c.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}

// GetIssuesForAdmin lists issues visible to the authenticated administrator.
// Visibility is department scoped and fail-closed: an admin whose department
// maps to no categories gets an empty list, not everything.
func GetIssuesForAdmin(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	adminID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	adminCollection := config.GetCollection("admins")
	var admin models.Admin
	if err := adminCollection.FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}

	allowed := authUtils.CategoriesForDepartment(admin.Department)
	if len(allowed) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"issues":      []models.Issue{},
			"totalIssues": 0,
			"totalPages":  0,
			"currentPage": 1,
		})
		return
	}

	// Parse query parameters
	status := c.Query("status")
	search := c.Query("search")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := bson.M{"category": bson.M{"$in": allowed}}

	if status != "" && status != "all" {
		filter["status"] = status
	}

	if search != "" {
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": search, "$options": "i"}},
			{"description": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	issueCollection := config.GetCollection("issues")

	totalCount, err := issueCollection.CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count issues"})
		return
	}

	skip := (page - 1) * limit
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := issueCollection.Find(ctx, filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}
	defer cursor.Close(ctx)

	issues := make([]models.Issue, 0)
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode issues"})
		return
	}

	totalPages := int((totalCount + int64(limit) - 1) / int64(limit))

	c.JSON(http.StatusOK, gin.H{
		"issues":      issues,
		"totalIssues": totalCount,
		"totalPages":  totalPages,
		"currentPage": page,
	})
}

// RecentIssues returns the most recent issues for the public map view
func RecentIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	limit := 19

	projection := bson.M{
		"_id":       1,
		"title":     1,
		"location":  1,
		"category":  1,
		"status":    1,
		"createdAt": 1,
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(projection)

	issueCollection := config.GetCollection("issues")
	cursor, err := issueCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent issues"})
		return
	}
	defer cursor.Close(ctx)

	type issueProjection struct {
		ID        primitive.ObjectID   `bson:"_id" json:"id"`
		Title     string               `bson:"title" json:"title"`
		Location  models.Location      `bson:"location" json:"location"`
		Category  models.IssueCategory `bson:"category" json:"category"`
		Status    models.IssueStatus   `bson:"status" json:"status"`
		CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	}

	issues := make([]issueProjection, 0)
	if err := cursor.All(ctx, &issues); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode recent issues"})
		return
	}

	c.JSON(http.StatusOK, issues)
}
