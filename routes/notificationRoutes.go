package routes

import (
	"citypulse-be/controllers"
	"citypulse-be/middlewares"

	"github.com/gin-gonic/gin"
)

// NotificationRoutes sets up the broadcast notification routes
func NotificationRoutes(r *gin.Engine) {
	notification := r.Group("/api/notifications")
	{
		notification.GET("", controllers.GetNotifications)
		notification.POST("", middlewares.AuthMiddleware("admin"), controllers.CreateNotification)
	}
}
