package recordings

import (
	"github.com/gin-gonic/gin"
	"github.com/medscribe/medscribe/internal/stores/recording"
)

// RegisterRoutes registers the routes for the recordings module
func RegisterRoutes(g *gin.RouterGroup, store recording.Store) {
	controller := &Controller{store: store}

	group := g.Group("/recordings")
	group.GET("", controller.listRecordings)       // List all recordings
	group.GET("/:id", controller.getRecording)     // Get a recording by ID
	group.POST("", controller.saveRecording)       // Save a completed recording
	group.DELETE("/:id", controller.deleteRecording) // Delete a recording by ID
}
