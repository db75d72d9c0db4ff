// Package transcribe relays uploaded consultation audio to a
// Whisper-compatible transcription service.
package transcribe

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medscribe/medscribe/pkg/consult"
	"github.com/medscribe/medscribe/pkg/sdk"
)

// Transcriber turns audio into text with time-aligned segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (*consult.TranscriptionResult, error)
}

type Controller struct {
	transcriber Transcriber
}

// postTranscribe handles POST /api/transcribe with a multipart audio payload
func (ct *Controller) postTranscribe(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Error: "No audio file provided"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Error: "Could not read audio file"})
		return
	}
	defer file.Close()

	result, err := ct.transcriber.Transcribe(c.Request.Context(), file, fileHeader.Filename)
	if err != nil {
		log.Printf("[API]: transcription failed: %v", err)
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Transcription failed"})
		return
	}

	segments := result.Segments
	if segments == nil {
		segments = []consult.Segment{}
	}

	c.JSON(http.StatusOK, sdk.TranscribeResponse{
		Transcription: result.Text,
		Segments:      segments,
	})
}
