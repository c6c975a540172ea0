// turjubaan/stt/stt.go
package stt

import (
	"context"
	"fmt"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
)

// STT is the speech-to-text client
type STT struct {
	speechClient *speech.Client
}

// New creates a new Google Cloud Speech client.
// It relies on Application Default Credentials for authentication.
func New(ctx context.Context) (*STT, error) {
	speechClient, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}
	return &STT{speechClient: speechClient}, nil
}

// Close cleans up the speech client connection.
func (s *STT) Close() {
	if s.speechClient != nil {
		s.speechClient.Close()
	}
}

// Transcribe sends the whole waveform to the engine as one recognition unit.
// Inputs are capped by the intake size ceiling, so no chunking is needed.
// An empty transcript with a nil error means no speech was detected; any
// engine or transport error is returned for the caller to report generically.
func (s *STT) Transcribe(ctx context.Context, audioData []byte, languageCode string) (string, error) {
	resp, err := s.speechClient.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:        speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz: 16000,
			LanguageCode:    languageCode,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audioData},
		},
	})
	if err != nil {
		return "", fmt.Errorf("recognize request failed: %w", err)
	}
	return JoinResults(resp), nil
}

// JoinResults concatenates the top alternative of each recognition result.
// No results means the engine found no speech.
func JoinResults(resp *speechpb.RecognizeResponse) string {
	var transcript strings.Builder
	for _, result := range resp.GetResults() {
		if len(result.GetAlternatives()) == 0 {
			continue
		}
		if transcript.Len() > 0 {
			transcript.WriteString(" ")
		}
		transcript.WriteString(result.GetAlternatives()[0].GetTranscript())
	}
	return strings.TrimSpace(transcript.String())
}
