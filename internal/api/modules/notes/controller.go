// Package notes relays a consultation transcription to a local LLM and
// returns structured clinical notes plus a patient-friendly summary.
package notes

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medscribe/medscribe/pkg/consult"
	"github.com/medscribe/medscribe/pkg/sdk"
)

// Generator produces both note variants from a transcription.
type Generator interface {
	Generate(ctx context.Context, transcription string) (*consult.NotesResult, error)
}

type Controller struct {
	generator Generator
}

// postGenerateNotes handles POST /api/generate-notes
func (ct *Controller) postGenerateNotes(c *gin.Context) {
	var req sdk.GenerateNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, sdk.ErrorResponse{Error: "No transcription provided"})
		return
	}

	result, err := ct.generator.Generate(c.Request.Context(), req.Transcription)
	if err != nil {
		log.Printf("[API]: note generation failed: %v", err)
		c.JSON(http.StatusInternalServerError, sdk.ErrorResponse{Error: "Failed to generate notes"})
		return
	}

	c.JSON(http.StatusOK, sdk.GenerateNotesResponse{
		DoctorNotes:    result.DoctorNotes,
		PatientSummary: result.PatientSummary,
	})
}
