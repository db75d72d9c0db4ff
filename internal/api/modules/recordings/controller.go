// Package recordings exposes the stored consultation records over HTTP,
// the read/write path for remotely backed session stores.
package recordings

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medscribe/medscribe/internal/stores/recording"
	"github.com/medscribe/medscribe/pkg/consult"
	"github.com/medscribe/medscribe/pkg/sdk"
)

type Controller struct {
	store recording.Store
}

// listRecordings handles GET /api/recordings
func (ct *Controller) listRecordings(c *gin.Context) {
	sessions, err := ct.store.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to list recordings"})
		return
	}

	if sessions == nil {
		sessions = []*consult.Session{}
	}
	c.JSON(http.StatusOK, sdk.ListRecordingsResponse{
		Status:     "success",
		Recordings: sessions,
	})
}

// getRecording handles GET /api/recordings/:id
func (ct *Controller) getRecording(c *gin.Context) {
	id := c.Param("id")

	session, err := ct.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, consult.ErrNotFound) {
			c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Recording not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to get recording"})
		return
	}

	c.JSON(http.StatusOK, sdk.GetRecordingResponse{
		Status:    "success",
		Recording: session,
	})
}

// saveRecording handles POST /api/recordings
func (ct *Controller) saveRecording(c *gin.Context) {
	var session consult.Session
	if err := c.ShouldBindJSON(&session); err != nil {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Error: "Could not parse recording"})
		return
	}
	if session.ID == "" {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Error: "Recording id is required"})
		return
	}

	if err := ct.store.Put(c.Request.Context(), &session); err != nil {
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to save recording"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// deleteRecording handles DELETE /api/recordings/:id
func (ct *Controller) deleteRecording(c *gin.Context) {
	id := c.Param("id")

	if err := ct.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, consult.ErrNotFound) {
			c.JSON(http.StatusNotFound, sdk.ErrorResponse{Error: "Recording not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to delete recording"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
