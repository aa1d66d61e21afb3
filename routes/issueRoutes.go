package routes

import (
	"citypulse-be/controllers"
	"citypulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// IssueRoutes sets up the shared issue routes
func IssueRoutes(r *gin.Engine) {
	issue := r.Group("/api/issues")
	{
		issue.GET("/recent", controllers.RecentIssues)
		issue.GET("/:id", middlewares.AuthMiddleware(""), controllers.GetIssue)
	}
}
