// Package media normalizes downloaded audio/video into the canonical
// waveform the speech engine expects.
package media

import (
	"fmt"
	"os/exec"
	"strings"
)

// ConversionError reports that ffmpeg could not decode the source media.
// The ffmpeg output is kept for the logs only; end users get a generic
// failure message.
type ConversionError struct {
	Path   string
	Output string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("converting %s: %v: %s", e.Path, e.Err, e.Output)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// WavPath returns the sibling waveform path for a source file: the same base
// name with a .wav extension, in the same directory.
func WavPath(inputPath string) string {
	if i := strings.LastIndex(inputPath, "."); i >= 0 {
		return inputPath[:i] + ".wav"
	}
	return inputPath + ".wav"
}

// ToWav converts the source media into a 16 kHz mono PCM WAV next to the
// input. Every accepted format goes through this step, so downstream code
// never branches on container type. The input file is left in place.
func ToWav(inputPath string) (string, error) {
	wavPath := WavPath(inputPath)
	cmd := exec.Command("ffmpeg", "-i", inputPath, "-y",
		"-acodec", "pcm_s16le", "-ar", "16000", "-ac", "1", wavPath)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", &ConversionError{Path: inputPath, Output: string(output), Err: err}
	}
	return wavPath, nil
}
