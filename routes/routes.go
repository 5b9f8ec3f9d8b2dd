package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vonvha/Nutri-Smart/controllers"
	"github.com/vonvha/Nutri-Smart/middlewares"
	"github.com/vonvha/Nutri-Smart/services"
)

// Deps carries everything the router hands to its controllers.
type Deps struct {
	Log      zerolog.Logger
	Identity services.IdentityResolver

	Auth          *controllers.AuthController
	Profile       *controllers.ProfileController
	Dashboard     *controllers.DashboardController
	Food          *controllers.FoodController
	Vision        *controllers.VisionController
	Notifications *controllers.NotificationController
	Devices       *controllers.DeviceController
	Realtime      *controllers.RealtimeController
	Appointments  *controllers.AppointmentController
	Plan          *controllers.PlanController
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.Recovery(d.Log), middlewares.RequestLogger(d.Log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", d.Auth.Register)
		auth.POST("/login", d.Auth.Login)
	}

	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware(d.Identity))
	{
		api.GET("/profile", d.Profile.Get)
		api.POST("/profile", d.Profile.Save)

		api.GET("/dashboard", d.Dashboard.Get)
		api.GET("/history", d.Dashboard.History)

		food := api.Group("/food")
		food.POST("/log", d.Food.Log)
		food.GET("/recent", d.Food.Recent)
		food.GET("/search", d.Food.Search)

		api.POST("/vision/analyze-food", d.Vision.AnalyzeFood)

		notifications := api.Group("/notifications")
		notifications.GET("", d.Notifications.List)
		notifications.POST("/:id/read", d.Notifications.MarkRead)
		notifications.POST("/toggle", d.Notifications.Toggle)

		api.POST("/devices", d.Devices.Register)
		api.GET("/ws/notifications", d.Realtime.NotificationsWS)

		api.GET("/appointments", d.Appointments.Latest)
		api.POST("/appointments", d.Appointments.Schedule)

		api.GET("/plan", d.Plan.Get)
	}

	return r
}
