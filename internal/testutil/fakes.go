// Package testutil provides shared fakes for the capture device and the
// processing client so session behavior can be tested without hardware or
// network.
package testutil

import (
	"context"
	"fmt"

	"github.com/medscribe/medscribe/internal/capture"
	"github.com/medscribe/medscribe/pkg/consult"
)

// FakeDevice is a scripted capture device. AcquireErrs is consumed one
// error per Acquire call, letting tests deny permission once and grant it
// on retry.
type FakeDevice struct {
	AcquireErrs []error
	ClipData    []byte

	Acquired     bool
	Capturing    bool
	AcquireCalls int
	ReleaseCalls int
	captureSeq   int
}

func (d *FakeDevice) Acquire(_ context.Context) error {
	d.AcquireCalls++
	if len(d.AcquireErrs) > 0 {
		err := d.AcquireErrs[0]
		d.AcquireErrs = d.AcquireErrs[1:]
		if err != nil {
			return err
		}
	}
	d.Acquired = true
	return nil
}

func (d *FakeDevice) BeginCapture() error {
	if !d.Acquired {
		return fmt.Errorf("%w: device not acquired", consult.ErrDeviceUnavailable)
	}
	if d.Capturing {
		return fmt.Errorf("capture already active")
	}
	d.Capturing = true
	return nil
}

func (d *FakeDevice) EndCapture() (*capture.Clip, error) {
	if !d.Capturing {
		return nil, fmt.Errorf("no capture active")
	}
	d.Capturing = false
	d.captureSeq++

	data := d.ClipData
	if data == nil {
		// Distinct bytes per take so tests can detect residue
		data = []byte(fmt.Sprintf("take-%d", d.captureSeq))
	}
	return &capture.Clip{Data: data, Format: "wav", MIMEType: "audio/wav"}, nil
}

func (d *FakeDevice) Release() {
	d.ReleaseCalls++
	d.Acquired = false
	d.Capturing = false
}

// FakeProcessor is a scripted processing client that counts calls.
type FakeProcessor struct {
	HealthErr    error
	TranscribeFn func(audio []byte, format string) (*consult.TranscriptionResult, error)
	NotesFn      func(transcription string) (*consult.NotesResult, error)

	HealthCalls     int
	TranscribeCalls int
	NotesCalls      int
}

func (p *FakeProcessor) Health(_ context.Context) error {
	p.HealthCalls++
	return p.HealthErr
}

func (p *FakeProcessor) Transcribe(_ context.Context, audio []byte, format string) (*consult.TranscriptionResult, error) {
	p.TranscribeCalls++
	if p.TranscribeFn != nil {
		return p.TranscribeFn(audio, format)
	}
	return &consult.TranscriptionResult{
		Text: "Patient reports mild headaches for the past week.",
		Segments: []consult.Segment{
			{Start: 0, End: 4.2, Text: "Patient reports mild headaches"},
			{Start: 4.2, End: 6.0, Text: "for the past week."},
		},
	}, nil
}

func (p *FakeProcessor) GenerateNotes(_ context.Context, transcription string) (*consult.NotesResult, error) {
	p.NotesCalls++
	if p.NotesFn != nil {
		return p.NotesFn(transcription)
	}
	return &consult.NotesResult{
		DoctorNotes: consult.ClinicalNotes{
			Subjective:  "Mild headaches, one week",
			Objective:   "No acute distress",
			Assessment:  "Tension-type headache",
			Plan:        "Hydration and rest",
			Medications: []string{"ibuprofen 400mg"},
			FollowUp:    "Two weeks",
		},
		PatientSummary: &consult.PatientSummary{
			Summary:     "We discussed your headaches.",
			KeyPoints:   []string{"Likely tension-related"},
			NextSteps:   []string{"Rest and hydrate"},
			Medications: []string{"ibuprofen"},
		},
	}, nil
}
