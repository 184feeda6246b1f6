package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"festivo/handlers"
	"festivo/middleware"
)

// HandlerBundle gathers all handlers for route registration.
type HandlerBundle struct {
	Auth          *handlers.AuthHandler
	Catalog       *handlers.CatalogHandler
	Booking       *handlers.BookingHandler
	Review        *handlers.ReviewHandler
	Notification  *handlers.NotificationHandler
	Payment       *handlers.PaymentHandler
	AuthCache     *redis.Client
}

// RegisterAuthRoutes registers registration and signin endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/customer/register", hb.Auth.RegisterCustomer)
		api.POST("/customer/login", hb.Auth.LoginCustomer)
		api.POST("/vendor/register", hb.Auth.RegisterVendor)
		api.POST("/vendor/login", hb.Auth.LoginVendor)
	}
}

// RegisterCatalogRoutes registers listing endpoints for every service variant.
// Browsing is public; mutations require the owning vendor.
func RegisterCatalogRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/:type")
	{
		api.GET("", hb.Catalog.List)
		api.GET("/:id", hb.Catalog.Get)

		protected := api.Group("")
		protected.Use(middleware.VendorAuth(hb.AuthCache))
		protected.POST("/create", hb.Catalog.Create)
		protected.PUT("/:id", hb.Catalog.Update)
		protected.DELETE("/:id", hb.Catalog.Delete)
	}

	vendor := r.Group("/api/vendor")
	{
		vendor.Use(middleware.VendorAuth(hb.AuthCache))
		vendor.GET("/services", hb.Catalog.ListForVendor)
		vendor.GET("/bookings", hb.Booking.ListForVendor)
	}
}

// RegisterBookingRoutes sets up the availability pre-check and the booking
// lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/booking")
	{
		api.POST("/availability", hb.Booking.CheckAvailability)

		customer := api.Group("")
		customer.Use(middleware.CustomerAuth(hb.AuthCache))
		customer.POST("/create", hb.Booking.Create)
		customer.GET("/mine", hb.Booking.ListForCustomer)

		either := api.Group("")
		either.Use(middleware.EitherAuth(hb.AuthCache))
		either.GET("/:id", hb.Booking.Get)
		either.PUT("/:id/status", hb.Booking.UpdateStatus)
	}
}

// RegisterReviewRoutes sets up review CRUD; mutations go through the rating
// aggregator.
func RegisterReviewRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/review/:type")
	{
		api.GET("/service/:serviceId", hb.Review.ListByService)

		protected := api.Group("")
		protected.Use(middleware.CustomerAuth(hb.AuthCache))
		protected.POST("/create", hb.Review.Create)
		protected.PUT("/:id", hb.Review.Update)
		protected.DELETE("/:id", hb.Review.Delete)
	}
}

// RegisterNotificationRoutes sets up in-app notification endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.Use(middleware.EitherAuth(hb.AuthCache))
		api.GET("", hb.Notification.List)
		api.PUT("/:id/read", hb.Notification.MarkRead)
	}
}

// RegisterPaymentRoutes sets up payment endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/payment")
	{
		api.Use(middleware.CustomerAuth(hb.AuthCache))
		api.POST("/intent", hb.Payment.CreateIntent)
		api.POST("/confirm", hb.Payment.Confirm)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Festivo"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterReviewRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterPaymentRoutes(r, hb)
	RegisterCatalogRoutes(r, hb)
}
