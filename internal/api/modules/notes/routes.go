package notes

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the routes for the notes module
func RegisterRoutes(g *gin.RouterGroup, generator Generator) {
	controller := &Controller{generator: generator}
	g.POST("/generate-notes", controller.postGenerateNotes)
}
