// Package session implements the recording session state machine: one
// consultation's path from consent through capture and the two-stage
// processing pipeline to a stored record.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/medscribe/medscribe/internal/capture"
	"github.com/medscribe/medscribe/internal/stores/recording"
	"github.com/medscribe/medscribe/pkg/consult"
)

// State is the machine's position in the session lifecycle.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateStopped
	StateProcessing
	StateCompleted
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateStopped:
		return "stopped"
	case StateProcessing:
		return "processing"
	case StateCompleted:
		return "completed"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Processor executes the remote pipeline: a health probe, transcription,
// and note generation. Implemented by sdk.Client.
type Processor interface {
	Health(ctx context.Context) error
	Transcribe(ctx context.Context, audio []byte, format string) (*consult.TranscriptionResult, error)
	GenerateNotes(ctx context.Context, transcription string) (*consult.NotesResult, error)
}

// ConsentSource hands out the one-shot consent record when a session
// starts. Implemented by the consent store.
type ConsentSource interface {
	Consume(sessionID string) (*consult.ConsentRecord, error)
}

// Config wires a machine's collaborators.
type Config struct {
	SessionID string
	Device    capture.Device
	Processor Processor
	Consents  ConsentSource
	Store     recording.Store

	// Clock overrides the timer's time source. Nil means time.Now.
	Clock func() time.Time
}

// Machine coordinates capture, timing, and processing for one session.
// Transitions are serialized by one mutex; the pipeline runs outside the
// lock and its result is discarded if the machine was closed meanwhile.
type Machine struct {
	mu sync.Mutex

	id        string
	device    capture.Device
	processor Processor
	consents  ConsentSource
	store     recording.Store
	timer     *Timer

	state   State
	consent *consult.ConsentRecord
	clip    *capture.Clip
	dur     int

	// remoteHealthy is the advisory probe result captured once at mount.
	// It may be stale: the pipeline still handles unreachable mid-call.
	remoteHealthy bool

	record  *consult.Session
	lastErr error
	errMsg  string
	closed  bool
}

// NewMachine builds a machine for the given session and probes the
// processing service once. The probe is advisory only.
func NewMachine(ctx context.Context, cfg Config) *Machine {
	timer := NewTimer()
	if cfg.Clock != nil {
		timer.now = cfg.Clock
	}

	m := &Machine{
		id:        cfg.SessionID,
		device:    cfg.Device,
		processor: cfg.Processor,
		consents:  cfg.Consents,
		store:     cfg.Store,
		timer:     timer,
		state:     StateIdle,
	}

	if err := m.processor.Health(ctx); err != nil {
		log.Printf("[SESSION]: processing service unavailable, will use fallback content: %v", err)
	} else {
		m.remoteHealthy = true
	}

	return m
}

// State returns the current lifecycle state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Err returns the error behind the current Error state and its
// human-readable message.
func (m *Machine) Err() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errMsg, m.lastErr
}

// Elapsed returns the recording duration signal in whole seconds.
func (m *Machine) Elapsed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.timer.Elapsed()
}

// HasAudio reports whether a finished capture buffer is held.
func (m *Machine) HasAudio() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clip != nil
}

// RemoteHealthy reports the mount-time probe result.
func (m *Machine) RemoteHealthy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.remoteHealthy
}

// Record returns the completed session record, or nil before completion.
func (m *Machine) Record() *consult.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.record == nil {
		return nil
	}
	copied := *m.record
	return &copied
}

// Start acquires the capture device and begins recording. The consent
// record is consumed on the first start; a missing record means the caller
// must run the consent step first. Allowed from Idle and from a device
// Error with no audio held.
func (m *Machine) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateIdle && !(m.state == StateError && m.clip == nil) {
		return fmt.Errorf("cannot start recording from state %s", m.state)
	}

	if m.consent == nil {
		record, err := m.consents.Consume(m.id)
		if err != nil {
			return err
		}
		m.consent = record
	}

	if err := m.device.Acquire(ctx); err != nil {
		m.toError("Could not access the recording device. Check microphone permissions and try again.", err)
		return err
	}

	if err := m.device.BeginCapture(); err != nil {
		m.device.Release()
		m.toError("Recording could not be started on this device.", err)
		return err
	}

	m.lastErr = nil
	m.errMsg = ""
	m.timer.Start()
	m.state = StateRecording
	return nil
}

// Stop finalizes the audio buffer, freezes the duration, and releases the
// device.
func (m *Machine) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateRecording {
		return fmt.Errorf("cannot stop recording from state %s", m.state)
	}

	m.dur = m.timer.Stop()

	clip, err := m.device.EndCapture()
	m.device.Release()
	if err != nil {
		m.toError("Recording could not be finalized.", err)
		return err
	}

	m.clip = clip
	m.state = StateStopped
	return nil
}

// Reset discards the captured audio and returns to Idle. No partial state
// survives: a following take is independent of the discarded one. Allowed
// from Stopped and from Error.
func (m *Machine) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case StateStopped, StateError:
	default:
		return fmt.Errorf("cannot reset from state %s", m.state)
	}

	m.clip = nil
	m.dur = 0
	m.timer.Reset()
	m.lastErr = nil
	m.errMsg = ""
	m.state = StateIdle
	return nil
}

// Retry re-arms processing after a pipeline failure: Error with audio held
// goes back to Stopped so Process can run again without re-recording.
func (m *Machine) Retry() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateError || m.clip == nil {
		return fmt.Errorf("nothing to retry from state %s", m.state)
	}

	m.lastErr = nil
	m.errMsg = ""
	m.state = StateStopped
	return nil
}

// Process runs the two-stage pipeline and stores the completed record. The
// transition is guarded on state: invoking it while already processing is
// ignored, so the pipeline's side effects cannot double up. When the
// service is unreachable the session completes with labeled fallback
// content instead of failing.
func (m *Machine) Process(ctx context.Context) error {
	m.mu.Lock()
	if m.state == StateProcessing {
		// Already in flight; ignore.
		m.mu.Unlock()
		return nil
	}
	if m.state != StateStopped {
		m.mu.Unlock()
		return fmt.Errorf("cannot process from state %s", m.state)
	}
	if m.clip == nil {
		m.mu.Unlock()
		return fmt.Errorf("no audio captured")
	}

	m.state = StateProcessing
	clip := m.clip
	consentFlags := m.consent.Flags
	record := &consult.Session{
		ID:          m.id,
		PatientName: m.consent.PatientName,
		DoctorName:  m.consent.DoctorName,
		Date:        time.Now(),
		Duration:    m.dur,
		Status:      consult.StatusProcessing,
	}
	healthy := m.remoteHealthy
	m.mu.Unlock()

	if !healthy {
		applyFallback(record, consentFlags)
		return m.complete(ctx, record)
	}

	transcription, err := m.processor.Transcribe(ctx, clip.Data, clip.Format)
	if errors.Is(err, consult.ErrUnreachable) {
		applyFallback(record, consentFlags)
		return m.complete(ctx, record)
	}
	if err != nil {
		m.failPipeline("Transcription failed. You can retry without re-recording.", err)
		return err
	}

	notes, err := m.processor.GenerateNotes(ctx, transcription.Text)
	if errors.Is(err, consult.ErrUnreachable) {
		applyFallback(record, consentFlags)
		return m.complete(ctx, record)
	}
	if err != nil {
		m.failPipeline("Note generation failed. You can retry without re-recording.", err)
		return err
	}

	record.Transcription = transcription.Text
	record.ClinicalNotes = &notes.DoctorNotes
	if consentFlags.SummaryConsent {
		record.PatientSummary = notes.PatientSummary
	}

	return m.complete(ctx, record)
}

// Close abandons the session: the device is released and any pipeline
// result that lands afterwards is discarded.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.closed = true
	m.device.Release()
	m.clip = nil
}

// complete writes the finished record and moves to Completed. A machine
// closed while the pipeline was in flight discards the result instead.
func (m *Machine) complete(ctx context.Context, record *consult.Session) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	record.Status = consult.StatusCompleted
	if err := m.store.Put(ctx, record); err != nil {
		m.failPipeline("Saving the consultation record failed. You can retry without re-recording.", err)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil
	}
	// The audio buffer is only held for one processing pass.
	m.clip = nil
	m.record = record
	m.state = StateCompleted
	return nil
}

// failPipeline moves to Error while retaining the audio buffer, so the
// operator can retry processing without re-recording.
func (m *Machine) failPipeline(msg string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.state = StateError
	m.errMsg = msg
	m.lastErr = err
}

func (m *Machine) toError(msg string, err error) {
	m.state = StateError
	m.errMsg = msg
	m.lastErr = err
}

// applyFallback fills the record with clearly labeled placeholder content
// so the demo completes even when the processing service is down. The
// Fallback flag marks the record as non-authentic.
func applyFallback(record *consult.Session, flags consult.ConsentFlags) {
	record.Fallback = true
	record.Transcription = fallbackTranscription
	record.ClinicalNotes = fallbackClinicalNotes()
	if flags.SummaryConsent {
		record.PatientSummary = fallbackPatientSummary()
	}
}

const fallbackTranscription = "[Demo fallback] The transcription service was unreachable, so no " +
	"real transcription was produced for this consultation."

func fallbackClinicalNotes() *consult.ClinicalNotes {
	return &consult.ClinicalNotes{
		Subjective:  "[Demo fallback] Patient reports symptoms as recorded in the consultation audio.",
		Objective:   "[Demo fallback] Physical examination findings were not transcribed.",
		Assessment:  "[Demo fallback] Clinical assessment pending review of the recording.",
		Plan:        "[Demo fallback] Treatment plan to be determined after review.",
		Medications: []string{},
		FollowUp:    "[Demo fallback] Follow up as needed.",
	}
}

func fallbackPatientSummary() *consult.PatientSummary {
	return &consult.PatientSummary{
		Summary:     "[Demo fallback] The summary service was unavailable, so this is placeholder content.",
		KeyPoints:   []string{"[Demo fallback] Consultation was recorded"},
		NextSteps:   []string{"[Demo fallback] Follow up with your healthcare provider"},
		Medications: []string{},
	}
}
