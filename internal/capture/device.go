// Package capture wraps the platform audio input source. A Device hands out
// one capture at a time: Acquire -> BeginCapture -> EndCapture -> Release.
// Overlapping captures on one device are prevented by the session state
// machine, not here.
package capture

import "context"

// Clip is the immutable audio buffer produced when a capture ends. Format
// records the encoding that was chosen so downstream consumers know how to
// interpret the bytes.
type Clip struct {
	Data     []byte
	Format   string
	MIMEType string
}

// Device abstracts an audio input source.
type Device interface {
	// Acquire claims the device. Returns an error wrapping
	// consult.ErrDeviceUnavailable when no usable input exists.
	Acquire(ctx context.Context) error

	// BeginCapture starts recording on an acquired device.
	BeginCapture() error

	// EndCapture stops recording and returns the finished clip.
	EndCapture() (*Clip, error)

	// Release frees the device. Safe to call on every exit path; a release
	// during an active capture discards it.
	Release()
}
