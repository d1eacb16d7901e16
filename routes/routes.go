package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"poppi/handlers"
	"poppi/middleware"
)

// RegisterAvailabilityRoutes registers the calendar lookup endpoint.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/availability", hb.GetAvailability)
}

// RegisterCheckoutRoutes registers payment session endpoints.
func RegisterCheckoutRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/create-checkout-session", hb.CreateCheckoutSession)
		api.GET("/checkout-session/:id", hb.GetCheckoutSession)
	}
}

// RegisterChatRoutes registers the hosted scheduling assistant.
func RegisterChatRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	chatGroup := r.Group("/api/chat/sessions")
	{
		chatGroup.POST("", hb.StartChatSession)
		chatGroup.POST("/:id/messages", hb.SendChatMessage)
		chatGroup.DELETE("/:id", hb.EndChatSession)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	RegisterAvailabilityRoutes(r, hb)
	RegisterCheckoutRoutes(r, hb)
	RegisterChatRoutes(r, hb)
	RegisterHealthRoute(r, hb)
}
