package stt

import (
	"testing"

	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/stretchr/testify/assert"
)

func alt(text string) *speechpb.SpeechRecognitionResult {
	return &speechpb.SpeechRecognitionResult{
		Alternatives: []*speechpb.SpeechRecognitionAlternative{{Transcript: text}},
	}
}

func TestJoinResults_NoResultsMeansNoSpeech(t *testing.T) {
	assert.Equal(t, "", JoinResults(&speechpb.RecognizeResponse{}))
}

func TestJoinResults_SingleResult(t *testing.T) {
	resp := &speechpb.RecognizeResponse{Results: []*speechpb.SpeechRecognitionResult{alt("hello world")}}
	assert.Equal(t, "hello world", JoinResults(resp))
}

func TestJoinResults_JoinsTopAlternatives(t *testing.T) {
	resp := &speechpb.RecognizeResponse{Results: []*speechpb.SpeechRecognitionResult{
		alt("first part"),
		{}, // a result with no alternatives is skipped
		alt("second part"),
	}}
	assert.Equal(t, "first part second part", JoinResults(resp))
}
