// turjubaan/interfaces/stt.go
package interfaces

import "context"

// SpeechToText is the interface for the speech-to-text module. An empty
// transcript with a nil error means the engine found no speech; that is a
// successful outcome, not a failure.
type SpeechToText interface {
	Transcribe(ctx context.Context, audioData []byte, languageCode string) (string, error)
	Close()
}
