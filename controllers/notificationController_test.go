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

func newNotificationTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/notifications", actorContext(primitive.NewObjectID().Hex()), CreateNotification)
	return r
}

func TestCreateNotificationMissingFields(t *testing.T) {
	r := newNotificationTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"message":"msg","type":"Other"}`},
		{"empty title", `{"title":"","message":"msg","type":"Other"}`},
		{"missing message", `{"title":"Title","type":"Other"}`},
		{"missing type", `{"title":"Title","message":"msg"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/notifications", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestCreateNotificationInvalidType(t *testing.T) {
	r := newNotificationTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/notifications", strings.NewReader(`{"title":"Title","message":"msg","type":"Earthquake"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateNotificationUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/notifications", CreateNotification)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/notifications", strings.NewReader(`{"title":"Title","message":"msg","type":"Other"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
