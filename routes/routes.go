package routes

import (
	"time"

	"taskhive/handlers"
	"taskhive/middleware"
	"taskhive/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// RegisterUserRoutes registers identity endpoints.
func RegisterUserRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	users := api.Group("/users")
	{
		users.POST("", hb.User.RegisterUserHandler)
		users.POST("/tasker", hb.User.RegisterTaskerHandler)
		users.POST("/login", hb.User.LoginHandler)

		protected := users.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		protected.GET("/me", hb.User.MeHandler)
		protected.PUT("/update-profile", hb.User.UpdateProfileHandler)
		protected.PUT("/change-password", hb.User.ChangePasswordHandler)
		protected.PUT("/fcm-token", hb.User.UpdateFCMTokenHandler)
		protected.POST("/logout", hb.User.LogoutHandler)
	}
}

// RegisterTaskerRoutes registers the tasker's own profile endpoints.
func RegisterTaskerRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	taskers := api.Group("/taskers")
	{
		taskers.Use(middleware.JWTAuthMiddleware(hb.Auth, false), middleware.RequireRoles(models.RoleTasker))
		taskers.GET("/profile", hb.Tasker.GetProfileHandler)
		taskers.POST("/profile", hb.Tasker.CreateProfileHandler)
		taskers.PUT("/profile", hb.Tasker.UpdateProfileHandler)
		taskers.GET("/profile/check", hb.Tasker.CheckProfileHandler)
	}
}

// RegisterServiceRoutes registers catalogue endpoints. Ownership is checked
// in the catalogue service.
func RegisterServiceRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	services := api.Group("/services")
	{
		services.GET("/public", hb.Service.PublicServicesHandler)
		services.GET("/profile/:id", hb.Service.GetServiceHandler)
		services.GET("/categories", hb.Service.CategoriesHandler)

		owner := services.Group("")
		owner.Use(middleware.JWTAuthMiddleware(hb.Auth, false), middleware.RequireRoles(models.RoleTasker, models.RoleAdmin))
		owner.GET("/tasker/:taskerId", hb.Service.TaskerServicesHandler)
		owner.POST("/tasker/:taskerId", hb.Service.CreateServiceHandler)
		owner.GET("/tasker/:taskerId/stats", hb.Service.TaskerStatsHandler)
		owner.PUT("/:serviceId", hb.Service.UpdateServiceHandler)
		owner.PATCH("/:serviceId", hb.Service.ToggleServiceHandler)
		owner.DELETE("/:serviceId", hb.Service.DeleteServiceHandler)

		admin := services.Group("/admin")
		admin.Use(middleware.JWTAuthMiddleware(hb.Auth, false), middleware.RequireRoles(models.RoleAdmin))
		admin.GET("/all", hb.Service.AdminServicesHandler)
		admin.GET("/pending", hb.Service.PendingServicesHandler)
		admin.PUT("/:serviceId/review", hb.Service.ReviewServiceHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookings := api.Group("/bookings")
	{
		bookings.POST("", middleware.JWTAuthMiddleware(hb.Auth, true), hb.Booking.CreateBookingHandler)

		protected := bookings.Group("")
		protected.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		protected.GET("/tasker/:id", hb.Booking.TaskerBookingsHandler)
		protected.GET("/customer/:identifier", hb.Booking.CustomerBookingsHandler)
		protected.GET("/:id", hb.Booking.GetBookingHandler)
		protected.PUT("/:id/status", middleware.RequireRoles(models.RoleTasker, models.RoleAdmin), hb.Booking.UpdateStatusHandler)
		protected.POST("/:id/feedback", hb.Booking.FeedbackHandler)
		protected.POST("/:id/payment-intent", hb.Booking.PaymentIntentHandler)

		admin := bookings.Group("")
		admin.Use(middleware.JWTAuthMiddleware(hb.Auth, false), middleware.RequireRoles(models.RoleAdmin))
		admin.GET("", hb.Booking.ListBookingsHandler)
		admin.GET("/admin/statistics", hb.Booking.StatisticsHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	adminGroup := api.Group("/admin")
	{
		adminGroup.Use(middleware.JWTAuthMiddleware(hb.Auth, false), middleware.RequireRoles(models.RoleAdmin))
		adminGroup.GET("/dashboard", hb.Admin.DashboardHandler)
		adminGroup.GET("/users", hb.Admin.UsersHandler)
		adminGroup.PUT("/users/:id/suspend", hb.Admin.SuspendUserHandler)
		adminGroup.PUT("/users/:id/activate", hb.Admin.ActivateUserHandler)
		adminGroup.DELETE("/users/:id", hb.Admin.DeleteUserHandler)
		adminGroup.GET("/taskers", hb.Admin.TaskersHandler)
		adminGroup.GET("/approval", hb.Admin.ApprovalQueueHandler)
		adminGroup.PUT("/approval/:id/approve", hb.Admin.ApproveTaskerHandler)
		adminGroup.PUT("/approval/:id/reject", hb.Admin.RejectTaskerHandler)
	}
}

// RegisterUploadRoutes registers media upload endpoints.
func RegisterUploadRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	uploads := api.Group("/uploads")
	{
		uploads.Use(middleware.JWTAuthMiddleware(hb.Auth, false))
		uploads.POST("/image", hb.Storage.UploadImageHandler)
	}
}

// CORSConfig builds the CORS policy for the given origins; "*" allows any.
func CORSConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", handlers.IdempotencyKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// RegisterRoutes centralizes registration of all endpoints under /api.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	binding.EnableDecoderDisallowUnknownFields = true
	r.Use(cors.New(CORSConfig(allowedOrigins)))

	r.GET("/health", handlers.HealthHandler(hb.Health))

	api := r.Group("/api")
	RegisterUserRoutes(api, hb)
	RegisterTaskerRoutes(api, hb)
	RegisterServiceRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterAdminRoutes(api, hb)
	RegisterUploadRoutes(api, hb)
}
