package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"poppi/handlers"
)

func TestRegisterRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mark := func(name string) gin.HandlerFunc {
		return func(c *gin.Context) { c.String(http.StatusOK, name) }
	}
	hb := &handlers.HandlerBundle{
		GetAvailability:       mark("availability"),
		CreateCheckoutSession: mark("create-checkout"),
		GetCheckoutSession:    mark("checkout-status"),
		StartChatSession:      mark("chat-start"),
		SendChatMessage:       mark("chat-send"),
		EndChatSession:        mark("chat-end"),
		Health:                mark("health"),
	}
	r := gin.New()
	RegisterRoutes(r, hb)

	tests := []struct {
		method, path, want string
	}{
		{http.MethodGet, "/api/availability?day=2025-06-02", "availability"},
		{http.MethodGet, "/api/create-checkout-session?email=a@b.com", "create-checkout"},
		{http.MethodGet, "/api/checkout-session/cs_1", "checkout-status"},
		{http.MethodPost, "/api/chat/sessions", "chat-start"},
		{http.MethodPost, "/api/chat/sessions/abc/messages", "chat-send"},
		{http.MethodDelete, "/api/chat/sessions/abc", "chat-end"},
		{http.MethodGet, "/health", "health"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", "https://poppi.example")
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
			assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
