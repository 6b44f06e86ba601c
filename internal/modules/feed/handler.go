package feed

import "github.com/gin-gonic/gin"

type Handler struct {
	hub *Hub
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings/feed", h.Stream)
}

func (h *Handler) Stream(c *gin.Context) {
	h.hub.ServeWS(c.Writer, c.Request)
}
