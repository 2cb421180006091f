package handlers

import (
	"net/http"

	"github.com/epeers/scenarios/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts every API route on router
func RegisterRoutes(router gin.IRouter, fh *ForecastHandler, sh *ScenarioHandler, ah *AssistantHandler) {
	router.Use(middleware.ExtractSession())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Forecast and preset routes
	router.GET("/presets", fh.ListPresets)
	router.GET("/presets/:id", fh.GetPreset)
	router.GET("/presets/:id/forecast", fh.ForecastPreset)
	router.POST("/forecast", fh.Forecast)
	router.POST("/forecast/cashflows.csv", fh.CashFlowsCSV)
	router.POST("/assumptions/apply", fh.Apply)

	// Session routes
	router.POST("/sessions", sh.StartSession)
	router.DELETE("/sessions", middleware.RequireSession(), sh.EndSession)

	// Scenario routes
	scenarios := router.Group("/scenarios", middleware.RequireSession())
	scenarios.GET("", sh.List)
	scenarios.POST("", sh.Save)
	scenarios.POST("/import", sh.Import)
	scenarios.POST("/compare", sh.Compare)
	scenarios.GET("/:id", sh.Get)
	scenarios.DELETE("/:id", sh.Delete)

	// Assistant routes
	router.GET("/assistant/context", ah.Context)
	router.GET("/assistant/suggestions", ah.Suggestions)
	router.POST("/assistant/messages", ah.Send)
}
