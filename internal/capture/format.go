package capture

import "strings"

// Format describes one supported audio encoding.
type Format struct {
	Name    string // short name recorded on the clip
	Encoder string // ffmpeg encoder that produces it
	Ext     string // container file extension
	MIME    string
}

// preferredFormats is checked in order; the first one whose encoder is
// available wins. defaultFormat is the platform fallback when none match.
var preferredFormats = []Format{
	{Name: "opus", Encoder: "libopus", Ext: "ogg", MIME: "audio/ogg"},
	{Name: "mp3", Encoder: "libmp3lame", Ext: "mp3", MIME: "audio/mpeg"},
}

// defaultFormat is plain PCM WAV, which every ffmpeg build can produce.
var defaultFormat = Format{Name: "wav", Encoder: "pcm_s16le", Ext: "wav", MIME: "audio/wav"}

// chooseFormat picks the first preferred format whose encoder appears in the
// `ffmpeg -encoders` listing, falling back to the default.
func chooseFormat(encoderList string) Format {
	for _, f := range preferredFormats {
		if strings.Contains(encoderList, f.Encoder) {
			return f
		}
	}
	return defaultFormat
}
