package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"citypulse-be/models"
	authUtils "citypulse-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func actorContext(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", "admin")
	}
}

func TestUpdateIssueStatusInvalidIssueID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/issues/:id/status", actorContext(primitive.NewObjectID().Hex()), UpdateIssueStatus)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/issues/not-a-hex-id/status", strings.NewReader(`{"status":"Resolved"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateIssueStatusRejectsUnknownStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/issues/:id/status", actorContext(primitive.NewObjectID().Hex()), UpdateIssueStatus)

	for _, body := range []string{`{"status":"Foo"}`, `{"status":""}`, `{}`} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/issues/"+primitive.NewObjectID().Hex()+"/status", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "body %s should be rejected", body)
	}
}

func TestHandledIssueResponse(t *testing.T) {
	issueID := primitive.NewObjectID()
	adminID := primitive.NewObjectID()
	changedAt := time.Now()

	rec := handledRecord{
		Status:      models.Resolved,
		HandledBy:   adminID,
		LastStatus:  models.Resolved,
		LastUpdated: changedAt,
		IssueDetails: models.Issue{
			ID:       issueID,
			Title:    "Pothole on Elm Street",
			Category: models.Potholes,
			Status:   models.Resolved,
		},
	}

	resp := handledIssueResponse(rec)
	assert.Equal(t, issueID, resp["id"])
	assert.Equal(t, adminID, resp["handledBy"])
	assert.Equal(t, models.Resolved, resp["lastStatus"])
	assert.Equal(t, changedAt, resp["lastUpdated"])
	assert.Equal(t, false, resp["isRejected"])
}

func TestHandledIssueResponseRejected(t *testing.T) {
	rec := handledRecord{
		Status:     models.Rejected,
		LastStatus: models.Rejected,
		IssueDetails: models.Issue{
			ID:    primitive.NewObjectID(),
			Title: "Broken streetlight",
		},
	}

	resp := handledIssueResponse(rec)
	assert.Equal(t, true, resp["isRejected"])
}

func TestCategoryMatchStage(t *testing.T) {
	assert.Nil(t, categoryMatchStage(nil))
	assert.Nil(t, categoryMatchStage([]models.IssueCategory{}))

	roads := authUtils.CategoriesForDepartment("Roads")
	stage := categoryMatchStage(roads)
	require.NotNil(t, stage)

	match, ok := stage["$match"].(bson.M)
	require.True(t, ok)
	in, ok := match["category"].(bson.M)
	require.True(t, ok)
	assert.ElementsMatch(t, roads, in["$in"])
}

func TestScopedPipeline(t *testing.T) {
	group := bson.M{"$group": bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}

	unscoped := scopedPipeline(nil, group)
	require.Len(t, unscoped, 1)
	assert.Equal(t, group, unscoped[0])

	match := categoryMatchStage([]models.IssueCategory{models.Potholes})
	scoped := scopedPipeline(match, group)
	require.Len(t, scoped, 2)
	assert.Equal(t, match, scoped[0])
	assert.Equal(t, group, scoped[1])
}

func TestScopedPipelineDoesNotShareBacking(t *testing.T) {
	match := categoryMatchStage([]models.IssueCategory{models.Potholes})
	first := scopedPipeline(match, bson.M{"$count": "total"})
	second := scopedPipeline(match, bson.M{"$group": bson.M{"_id": "$category", "count": bson.M{"$sum": 1}}})

	assert.Equal(t, bson.M{"$count": "total"}, first[1])
	assert.NotEqual(t, first[1], second[1])
}
