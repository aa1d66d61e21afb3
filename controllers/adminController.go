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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetAdminProfile retrieves an admin's own profile
func GetAdminProfile(c *gin.Context) {
	idParam := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	if idParam != userID.(string) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorised access"})
		return
	}

	adminID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admin ID"})
		return
	}

	adminCollection := config.GetCollection("admins")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var admin models.Admin
	if err := adminCollection.FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}

	c.JSON(http.StatusOK, admin)
}

// UpdateAdminProfile updates an admin's own profile fields
func UpdateAdminProfile(c *gin.Context) {
	idParam := c.Param("id")
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	if idParam != userID.(string) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorised access"})
		return
	}

	adminID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid admin ID"})
		return
	}

	var input struct {
		FullName    string `json:"fullName" binding:"required,max=50"`
		Email       string `json:"email" binding:"required,email"`
		Phonenumber string `json:"phonenumber" binding:"required,max=20"`
		Department  string `json:"department" binding:"required,max=50"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	adminCollection := config.GetCollection("admins")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"fullName":    input.FullName,
		"email":       input.Email,
		"phonenumber": input.Phonenumber,
		"department":  input.Department,
		"updatedAt":   time.Now(),
	}}

	var updated models.Admin
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = adminCollection.FindOneAndUpdate(ctx, bson.M{"_id": adminID}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": updated})
}

// UpdateIssueStatus overwrites an issue's status and appends a history
// record. Any status may move to any other status, including itself; no
// department check applies on the write side. The issue update lands first
// and a history append failure is logged but never rolled back.
func UpdateIssueStatus(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID"})
		return
	}

	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	status := models.IssueStatus(input.Status)
	if !status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status value"})
		return
	}

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

	issueCollection := config.GetCollection("issues")
	historyCollection := config.GetCollection("statushistories")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}}

	var updatedIssue models.Issue
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = issueCollection.FindOneAndUpdate(ctx, bson.M{"_id": issueID}, update, opts).Decode(&updatedIssue)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		}
		return
	}

	history := models.StatusHistory{
		ID:        primitive.NewObjectID(),
		IssueID:   issueID,
		Status:    status,
		HandledBy: adminID,
		ChangedBy: adminID,
		ChangedAt: time.Now(),
	}
	if _, err := historyCollection.InsertOne(ctx, history); err != nil {
		// Best-effort audit trail: the status change already landed
		log.Printf("Failed to append status history for issue %s: %v", issueID.Hex(), err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Issue updated successfully", "issue": updatedIssue})
}

// handledRecord is one row of the handled-issues aggregation after the
// lookup/unwind stages.
type handledRecord struct {
	Status       models.IssueStatus `bson:"status"`
	HandledBy    primitive.ObjectID `bson:"handledBy"`
	LastStatus   models.IssueStatus `bson:"lastStatus"`
	LastUpdated  time.Time          `bson:"lastUpdated"`
	IssueDetails models.Issue       `bson:"issueDetails"`
}

func handledIssueResponse(rec handledRecord) gin.H {
	issue := rec.IssueDetails
	return gin.H{
		"id":          issue.ID,
		"citizenId":   issue.CitizenID,
		"category":    issue.Category,
		"title":       issue.Title,
		"description": issue.Description,
		"location":    issue.Location,
		"createdAt":   issue.CreatedAt,
		"updatedAt":   issue.UpdatedAt,
		"status":      rec.Status,
		"handledBy":   rec.HandledBy,
		"lastStatus":  rec.LastStatus,
		"lastUpdated": rec.LastUpdated,
		"isRejected":  rec.LastStatus == models.Rejected,
	}
}

// GetHandledIssuesByAdmin lists the issues the authenticated admin has acted
// on, each at most once, carrying the latest handled status. Records whose
// status is Reported don't count: an issue nobody acted on isn't handled.
func GetHandledIssuesByAdmin(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
		return
	}
	adminID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	pipeline := []bson.M{
		{"$match": bson.M{
			"handledBy": adminID,
			"status":    bson.M{"$in": []models.IssueStatus{models.InProgress, models.Resolved, models.Pending, models.Rejected}},
		}},
		{"$sort": bson.M{"changedAt": -1}},
		{"$group": bson.M{
			"_id":          "$issueID",
			"latestRecord": bson.M{"$first": "$$ROOT"},
		}},
		{"$replaceRoot": bson.M{"newRoot": "$latestRecord"}},
		{"$lookup": bson.M{
			"from":         "issues",
			"localField":   "issueID",
			"foreignField": "_id",
			"as":           "issueDetails",
		}},
		{"$unwind": "$issueDetails"},
		{"$project": bson.M{
			"status":       1,
			"handledBy":    1,
			"lastStatus":   "$status",
			"lastUpdated":  "$changedAt",
			"issueDetails": 1,
		}},
	}

	historyCollection := config.GetCollection("statushistories")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := historyCollection.Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}
	defer cursor.Close(ctx)

	var records []handledRecord
	if err := cursor.All(ctx, &records); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	issues := make([]gin.H, 0, len(records))
	for _, rec := range records {
		issues = append(issues, handledIssueResponse(rec))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "issues": issues})
}

// DeleteIssueByAdmin removes an issue and cascades its status history.
// Any authenticated admin may delete any issue.
func DeleteIssueByAdmin(c *gin.Context) {
	idParam := c.Param("id")
	issueID, err := primitive.ObjectIDFromHex(idParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue ID format"})
		return
	}

	issueCollection := config.GetCollection("issues")
	historyCollection := config.GetCollection("statushistories")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := issueCollection.DeleteOne(ctx, bson.M{"_id": issueID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}

	// Cascade the audit trail with the issue
	_, _ = historyCollection.DeleteMany(ctx, bson.M{"issueID": issueID})

	c.JSON(http.StatusOK, gin.H{"message": "Deleted Successfully!"})
}

// categoryMatchStage builds the $match stage scoping an analytics pipeline
// to a department's categories. Empty category sets produce no stage at all:
// analytics deliberately fail open to city-wide numbers.
func categoryMatchStage(categories []models.IssueCategory) bson.M {
	if len(categories) == 0 {
		return nil
	}
	return bson.M{"$match": bson.M{"category": bson.M{"$in": categories}}}
}

// scopedPipeline prepends the optional department match stage
func scopedPipeline(match bson.M, stages ...bson.M) []bson.M {
	pipeline := make([]bson.M, 0, len(stages)+1)
	if match != nil {
		pipeline = append(pipeline, match)
	}
	return append(pipeline, stages...)
}

// GetAnalytics returns dashboard rollups: total issue count, counts grouped
// by status and by category, and the top ten address hotspots. All four run
// over the same department-scoped set of issues.
func GetAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var match bson.M
	if userID, exists := c.Get("user_id"); exists {
		if adminID, err := primitive.ObjectIDFromHex(userID.(string)); err == nil {
			adminCollection := config.GetCollection("admins")
			var admin models.Admin
			if err := adminCollection.FindOne(ctx, bson.M{"_id": adminID}).Decode(&admin); err == nil {
				match = categoryMatchStage(authUtils.CategoriesForDepartment(admin.Department))
			}
		}
	}

	issueCollection := config.GetCollection("issues")

	aggregate := func(pipeline []bson.M) ([]bson.M, error) {
		cursor, err := issueCollection.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		results := make([]bson.M, 0)
		if err := cursor.All(ctx, &results); err != nil {
			return nil, err
		}
		return results, nil
	}

	totalRows, err := aggregate(scopedPipeline(match, bson.M{"$count": "total"}))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}
	totalIssues := int64(0)
	if len(totalRows) > 0 {
		switch total := totalRows[0]["total"].(type) {
		case int32:
			totalIssues = int64(total)
		case int64:
			totalIssues = total
		}
	}

	byStatus, err := aggregate(scopedPipeline(match,
		bson.M{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}},
	))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	byCategory, err := aggregate(scopedPipeline(match,
		bson.M{"$group": bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}},
	))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	hotspots, err := aggregate(scopedPipeline(match,
		bson.M{"$group": bson.M{"_id": "$location.address", "count": bson.M{"$sum": 1}}},
		bson.M{"$sort": bson.M{"count": -1}},
		bson.M{"$limit": 10},
	))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"totalIssues": totalIssues,
			"byStatus":    byStatus,
			"byCategory":  byCategory,
			"hotspots":    hotspots,
		},
	})
}
