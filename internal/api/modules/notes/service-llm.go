package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"github.com/medscribe/medscribe/pkg/consult"
	"github.com/medscribe/medscribe/pkg/utils"
)

// LLMService generates notes with a local LLM through its OpenAI-compatible
// chat endpoint (Ollama by default).
type LLMService struct {
	client  openai.Client
	model   string
	prompts Prompts
}

func NewLLMService(cfg *utils.Config) *LLMService {
	baseURL := cfg.GetWithDefault("OLLAMA_BASE_URL", "http://localhost:11434/v1")
	model := cfg.GetWithDefault("OLLAMA_MODEL", "llama3.2")

	prompts := DefaultPrompts()
	if path := cfg.Get("NOTES_PROMPTS_FILE"); path != "" {
		loaded, err := LoadPrompts(path)
		if err != nil {
			log.Printf("[API]: could not load prompt overrides, using defaults: %v", err)
		} else {
			prompts = loaded
		}
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		// Ollama ignores the key but the client requires one
		option.WithAPIKey(cfg.GetWithDefault("OLLAMA_API_KEY", "ollama")),
	)

	return &LLMService{
		client:  client,
		model:   model,
		prompts: prompts,
	}
}

// Generate runs both prompts against the LLM and parses the results. When
// the model does not return valid JSON the original placeholder notes are
// substituted so the endpoint never fails on a sloppy model.
func (s *LLMService) Generate(ctx context.Context, transcription string) (*consult.NotesResult, error) {
	doctorRaw, err := s.completion(ctx, fmt.Sprintf(s.prompts.Doctor, transcription))
	if err != nil {
		return nil, fmt.Errorf("generating doctor notes: %w", err)
	}

	patientRaw, err := s.completion(ctx, fmt.Sprintf(s.prompts.Patient, transcription))
	if err != nil {
		return nil, fmt.Errorf("generating patient summary: %w", err)
	}

	doctorNotes, patientSummary := parseGenerated(doctorRaw, patientRaw)
	return &consult.NotesResult{
		DoctorNotes:    doctorNotes,
		PatientSummary: patientSummary,
	}, nil
}

// completion sends one prompt and returns the model's text.
func (s *LLMService) completion(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// parseGenerated decodes both LLM outputs, substituting the fixed
// placeholder notes when a model response is not usable JSON.
func parseGenerated(doctorRaw, patientRaw string) (consult.ClinicalNotes, *consult.PatientSummary) {
	var doctorNotes consult.ClinicalNotes
	if err := json.Unmarshal([]byte(extractJSON(doctorRaw)), &doctorNotes); err != nil {
		log.Printf("[API]: doctor notes were not valid JSON, using placeholders: %v", err)
		doctorNotes = placeholderClinicalNotes()
	}

	var patientSummary consult.PatientSummary
	if err := json.Unmarshal([]byte(extractJSON(patientRaw)), &patientSummary); err != nil {
		log.Printf("[API]: patient summary was not valid JSON, using placeholders: %v", err)
		patientSummary = placeholderPatientSummary()
	}

	return doctorNotes, &patientSummary
}

// extractJSON trims any prose the model wrapped around the JSON object.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return s
	}
	return s[start : end+1]
}

func placeholderClinicalNotes() consult.ClinicalNotes {
	return consult.ClinicalNotes{
		Subjective:  "Patient reports symptoms as transcribed",
		Objective:   "Physical examination findings noted",
		Assessment:  "Clinical assessment pending review",
		Plan:        "Treatment plan to be determined",
		Medications: []string{},
		FollowUp:    "Follow-up as needed",
	}
}

func placeholderPatientSummary() consult.PatientSummary {
	return consult.PatientSummary{
		Summary:     "Please refer to your clinical notes for details",
		KeyPoints:   []string{"Consultation completed"},
		NextSteps:   []string{"Follow up with your healthcare provider"},
		Medications: []string{},
	}
}
