package routes

import (
	"citypulse-be/controllers"
	"citypulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// CitizenRoutes sets up the citizen-facing routes
func CitizenRoutes(r *gin.Engine) {
	citizen := r.Group("/api/citizen")
	{
		citizen.POST("/signup", controllers.RegisterCitizen)
		citizen.POST("/signin", controllers.LoginCitizen)
		citizen.GET("/profile", middlewares.AuthMiddleware("citizen"), controllers.GetCitizenProfile)
		citizen.PUT("/profile", middlewares.AuthMiddleware("citizen"), controllers.UpdateCitizenProfile)
		citizen.POST("/issues", middlewares.AuthMiddleware("citizen"), middlewares.IssueRateLimiter(5), controllers.CreateIssue)
		citizen.GET("/issues", middlewares.AuthMiddleware("citizen"), controllers.GetIssuesByCitizen)
		citizen.DELETE("/issues/:id", middlewares.AuthMiddleware("citizen"), controllers.DeleteIssueByCitizen)
		citizen.GET("/notifications", middlewares.AuthMiddleware("citizen"), controllers.GetNotifications)
	}
}
