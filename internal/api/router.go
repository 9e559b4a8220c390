package api

import (
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine of the JSON API
func NewRouter(h *Handler, hub *SSEHub) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	RegisterRoutes(r, h, hub)
	return r
}

// RegisterRoutes mounts the API on any gin router
func RegisterRoutes(r gin.IRouter, h *Handler, hub *SSEHub) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/distributions", h.ListDistributions)
	api.GET("/distributions/:kind", h.GetDistribution)

	api.GET("/instances", h.ListInstances)
	api.POST("/instances", h.CreateInstance)
	api.GET("/instances/:id", h.GetInstance)
	api.DELETE("/instances/:id", h.DeleteInstance)
	api.PUT("/instances/:id/params/:name", h.SetParam)
	api.POST("/instances/:id/reset", h.ResetParams)
	api.PUT("/instances/:id/container", h.ResizeContainer)
	api.PUT("/instances/:id/surface", h.SetSurface)
	api.GET("/instances/:id/chart", h.GetChart)
	api.POST("/instances/:id/export", h.ExportChart)
	api.GET("/instances/:id/series", h.GetSeries)

	if hub != nil {
		api.GET("/events", hub.HandleSSE)
	}
}
