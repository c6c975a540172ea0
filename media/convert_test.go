package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWavPath(t *testing.T) {
	assert.Equal(t, "downloads/abc_clip.wav", WavPath("downloads/abc_clip.mp4"))
	assert.Equal(t, "downloads/song.wav", WavPath("downloads/song.mp3"))
	assert.Equal(t, "downloads/raw.wav", WavPath("downloads/raw"))
}

func TestWavPath_Deterministic(t *testing.T) {
	// A retry over the same input must target the same sibling name, so a
	// failed conversion can never strand an artifact under a colliding name.
	assert.Equal(t, WavPath("downloads/id1_a.mp4"), WavPath("downloads/id1_a.mp4"))
	assert.NotEqual(t, WavPath("downloads/id1_a.mp4"), WavPath("downloads/id2_a.mp4"))
}

func TestConversionError_Unwrap(t *testing.T) {
	inner := assert.AnError
	err := &ConversionError{Path: "x.mp4", Output: "boom", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "x.mp4")
	assert.Contains(t, err.Error(), "boom")
}
