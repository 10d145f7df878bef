package routes

import (
	"time"

	"concierge/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterDecisionRoutes registers the venue decision endpoint.
func RegisterDecisionRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.POST("/decide", hb.Decide)
}

// RegisterBookingRoutes sets up the endpoints for the booking orchestrator.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	bookingGroup := api.Group("/book")
	{
		bookingGroup.POST("", hb.Book)
		bookingGroup.POST("/batch", hb.BookBatch)
	}
	api.GET("/availability", hb.CheckAvailability)
}

// RegisterVenueRoutes registers venue search.
func RegisterVenueRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	api.GET("/venues", hb.SearchVenues)
}

// RegisterOpsRoutes registers health and metrics endpoints.
func RegisterOpsRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
	if hb.Metrics != nil {
		r.GET("/metrics", hb.Metrics)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	api := r.Group("/api")
	RegisterDecisionRoutes(api, hb)
	RegisterBookingRoutes(api, hb)
	RegisterVenueRoutes(api, hb)
	RegisterOpsRoutes(r, hb)
}
