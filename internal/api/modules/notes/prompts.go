package notes

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Prompts holds the two generation prompt templates. The transcription is
// substituted for %s.
type Prompts struct {
	Doctor  string `yaml:"doctor"`
	Patient string `yaml:"patient"`
}

const defaultDoctorPrompt = `You are a medical AI assistant. Based on the following medical consultation transcription, generate a structured clinical note in SOAP format:

Transcription:
%s

Please provide:
1. Subjective: Patient's reported symptoms and concerns
2. Objective: Physical findings and observations
3. Assessment: Medical diagnosis or impression
4. Plan: Treatment plan and follow-up instructions

Format as JSON with keys: subjective, objective, assessment, plan, medications (array), followUp`

const defaultPatientPrompt = `Based on this medical consultation, create a simple, patient-friendly summary in plain language:

Transcription:
%s

Provide:
1. A brief summary of what was discussed
2. Key points the patient should remember
3. Next steps in simple terms
4. Any medications in plain language

Avoid medical jargon. Make it easy to understand for a general audience.
Format as JSON with keys: summary, keyPoints (array), nextSteps (array), medications (array)`

// DefaultPrompts returns the built-in prompt templates.
func DefaultPrompts() Prompts {
	return Prompts{
		Doctor:  defaultDoctorPrompt,
		Patient: defaultPatientPrompt,
	}
}

// LoadPrompts reads prompt overrides from a YAML file. Empty fields keep
// their defaults, so a file may override just one template.
func LoadPrompts(path string) (Prompts, error) {
	prompts := DefaultPrompts()

	data, err := os.ReadFile(path)
	if err != nil {
		return prompts, fmt.Errorf("reading prompts file: %w", err)
	}

	var overrides Prompts
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return prompts, fmt.Errorf("parsing prompts file: %w", err)
	}

	if overrides.Doctor != "" {
		prompts.Doctor = overrides.Doctor
	}
	if overrides.Patient != "" {
		prompts.Patient = overrides.Patient
	}
	return prompts, nil
}
