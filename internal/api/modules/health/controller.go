package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/medscribe/medscribe/pkg/sdk"
)

// Return status of the API. Used by clients as a boolean reachability
// probe before attempting the processing pipeline.
func getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, sdk.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
