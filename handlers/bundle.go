package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Availability endpoints
	GetAvailability gin.HandlerFunc

	// Checkout endpoints
	CreateCheckoutSession gin.HandlerFunc
	GetCheckoutSession    gin.HandlerFunc

	// Chat endpoints
	StartChatSession gin.HandlerFunc
	SendChatMessage  gin.HandlerFunc
	EndChatSession   gin.HandlerFunc

	Health gin.HandlerFunc
}
