package capture

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/medscribe/medscribe/pkg/consult"
)

// FFmpegDevice records from the default microphone by shelling out to
// ffmpeg, mono 16kHz, in the best encoding the local build supports.
type FFmpegDevice struct {
	acquired bool
	format   Format

	cmd      *exec.Cmd
	tempPath string
}

func NewFFmpegDevice() *FFmpegDevice {
	return &FFmpegDevice{}
}

// Acquire verifies ffmpeg is installed and selects the capture encoding.
func (d *FFmpegDevice) Acquire(ctx context.Context) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("%w: ffmpeg not found in PATH", consult.ErrDeviceUnavailable)
	}

	out, err := exec.CommandContext(ctx, "ffmpeg", "-hide_banner", "-encoders").Output()
	if err != nil {
		// Encoder listing failed; record in the platform default.
		d.format = defaultFormat
	} else {
		d.format = chooseFormat(string(out))
	}

	d.acquired = true
	return nil
}

// BeginCapture starts an ffmpeg process writing to a temp file.
func (d *FFmpegDevice) BeginCapture() error {
	if !d.acquired {
		return fmt.Errorf("%w: device not acquired", consult.ErrDeviceUnavailable)
	}
	if d.cmd != nil {
		return fmt.Errorf("capture already active")
	}

	d.tempPath = filepath.Join(os.TempDir(), fmt.Sprintf("medscribe-%d.%s", os.Getpid(), d.format.Ext))

	backend, input := inputSource()
	cmd := exec.Command("ffmpeg",
		"-f", backend,
		"-i", input,
		"-ac", "1",
		"-ar", "16000",
		"-acodec", d.format.Encoder,
		"-y",
		d.tempPath,
	)

	// Log stderr for diagnostics
	logPath := d.tempPath + ".ffmpeg.log"
	if logFile, err := os.Create(logPath); err == nil {
		cmd.Stderr = logFile
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: could not start capture: %v", consult.ErrDeviceUnavailable, err)
	}

	d.cmd = cmd
	return nil
}

// EndCapture stops the ffmpeg process and returns the recorded clip.
func (d *FFmpegDevice) EndCapture() (*Clip, error) {
	if d.cmd == nil {
		return nil, fmt.Errorf("no capture active")
	}

	// Interrupt lets ffmpeg flush and close the container cleanly.
	if err := d.cmd.Process.Signal(os.Interrupt); err != nil {
		d.cmd.Process.Kill()
	}
	// ffmpeg exits non-zero when interrupted; the output file is still valid.
	d.cmd.Wait()
	d.cmd = nil

	data, err := os.ReadFile(d.tempPath)
	if err != nil {
		return nil, fmt.Errorf("reading captured audio: %w", err)
	}
	d.cleanup()

	return &Clip{
		Data:     data,
		Format:   d.format.Name,
		MIMEType: d.format.MIME,
	}, nil
}

// Release frees the device, killing any capture still running.
func (d *FFmpegDevice) Release() {
	if d.cmd != nil {
		if err := d.cmd.Process.Kill(); err != nil {
			log.Printf("[CAPTURE]: failed to kill ffmpeg: %v", err)
		}
		d.cmd.Wait()
		d.cmd = nil
	}
	d.cleanup()
	d.acquired = false
}

func (d *FFmpegDevice) cleanup() {
	if d.tempPath != "" {
		os.Remove(d.tempPath)
		os.Remove(d.tempPath + ".ffmpeg.log")
		d.tempPath = ""
	}
}

// inputSource returns the ffmpeg capture backend and input name for the
// default microphone on this platform.
func inputSource() (backend, input string) {
	switch runtime.GOOS {
	case "darwin":
		return "avfoundation", ":default"
	case "windows":
		return "dshow", "audio=default"
	default:
		return "alsa", "default"
	}
}
