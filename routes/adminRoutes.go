package routes

import (
	"citypulse-be/controllers"
	"citypulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// AdminRoutes sets up the department administrator routes
func AdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin")
	{
		admin.POST("/signup", controllers.RegisterAdmin)
		admin.POST("/signin", controllers.LoginAdmin)
		admin.GET("/profile/:id", middlewares.AuthMiddleware("admin"), controllers.GetAdminProfile)
		admin.PUT("/profile/:id", middlewares.AuthMiddleware("admin"), controllers.UpdateAdminProfile)
		admin.GET("/issues", middlewares.AuthMiddleware("admin"), controllers.GetIssuesForAdmin)
		admin.GET("/issues/handled", middlewares.AuthMiddleware("admin"), controllers.GetHandledIssuesByAdmin)
		admin.PUT("/issues/:id/status", middlewares.AuthMiddleware("admin"), controllers.UpdateIssueStatus)
		admin.DELETE("/issues/:id", middlewares.AuthMiddleware("admin"), controllers.DeleteIssueByAdmin)
		admin.GET("/analytics", middlewares.AuthMiddleware("admin"), controllers.GetAnalytics)
	}
}
