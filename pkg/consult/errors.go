package consult

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceUnavailable indicates the capture device could not be
	// acquired (permission denied or no input device present). The attempt
	// can be retried from idle.
	ErrDeviceUnavailable = errors.New("capture device unavailable")

	// ErrUnreachable indicates the processing service could not be reached
	// at all (connection-level failure). Callers degrade to fallback
	// content rather than failing the session.
	ErrUnreachable = errors.New("processing service unreachable")

	// ErrNotFound indicates a store lookup miss.
	ErrNotFound = errors.New("recording not found")

	// ErrConsentRequired indicates a session was started without a consent
	// record. The caller should redirect to the consent step.
	ErrConsentRequired = errors.New("consent record required before recording")
)

// RemoteError indicates the processing service was reachable but rejected
// the request or returned a malformed response. Timed-out calls are also
// classified as RemoteError: the service was reached, it was just too slow.
type RemoteError struct {
	Op         string // operation that failed, e.g. "transcribe"
	StatusCode int    // HTTP status, 0 when the failure was not an HTTP rejection
	Message    string
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s failed: remote returned %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s failed: %s", e.Op, e.Message)
}
