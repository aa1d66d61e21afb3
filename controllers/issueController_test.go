package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCreateIssueTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/issues", actorContext(primitive.NewObjectID().Hex()), CreateIssue)
	return r
}

func postIssue(r *gin.Engine, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/issues", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateIssueValidation(t *testing.T) {
	r := newCreateIssueTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{
			"title too short",
			`{"title":"Bad","description":"d","category":"Potholes","location":{"latitude":10,"longitude":20}}`,
		},
		{
			"missing description",
			`{"title":"A real pothole","category":"Potholes","location":{"latitude":10,"longitude":20}}`,
		},
		{
			"unknown category",
			`{"title":"A real pothole","description":"d","category":"Road","location":{"latitude":10,"longitude":20}}`,
		},
		{
			"unknown status",
			`{"title":"A real pothole","description":"d","category":"Potholes","status":"Foo","location":{"latitude":10,"longitude":20}}`,
		},
		{
			"latitude out of range",
			`{"title":"A real pothole","description":"d","category":"Potholes","location":{"latitude":91,"longitude":20}}`,
		},
		{
			"longitude out of range",
			`{"title":"A real pothole","description":"d","category":"Potholes","location":{"latitude":10,"longitude":-181}}`,
		},
		{
			"missing location",
			`{"title":"A real pothole","description":"d","category":"Potholes"}`,
		},
		{
			"invalid media id",
			`{"title":"A real pothole","description":"d","category":"Potholes","location":{"latitude":10,"longitude":20},"media":"nope"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postIssue(r, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateIssueRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/issues", CreateIssue)

	w := postIssue(r, `{"title":"A real pothole","description":"d","category":"Potholes","location":{"latitude":10,"longitude":20}}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDeleteIssueByCitizenInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.DELETE("/issues/:id", actorContext(primitive.NewObjectID().Hex()), DeleteIssueByCitizen)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/issues/not-a-hex-id", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
