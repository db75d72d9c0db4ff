package transcribe

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the transcribe module
func RegisterRoutes(g *gin.RouterGroup, transcriber Transcriber) {
	controller := &Controller{transcriber: transcriber}
	g.POST("/transcribe", controller.postTranscribe)
}
