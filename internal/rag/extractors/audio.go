package extractors

import (
	"context"
	"fmt"
	"os"

	"mentora/internal/rag/interfaces"
)

// AudioExtractor handles audio and video media. The transcription backend
// needs a file handle, so the blob is written to a scoped temporary file
// that is removed on every exit path.
type AudioExtractor struct {
	transcriber interfaces.Transcriber
}

// NewAudioExtractor creates an AudioExtractor backed by the given
// transcriber.
func NewAudioExtractor(transcriber interfaces.Transcriber) *AudioExtractor {
	return &AudioExtractor{transcriber: transcriber}
}

// Extract persists the blob to a temporary file, transcribes it and
// returns the transcript text.
func (e *AudioExtractor) Extract(ctx context.Context, data []byte, mediaType string) (string, error) {
	tmp, err := os.CreateTemp("", "mentora-audio-*"+suffixFor(mediaType))
	if err != nil {
		return "", fmt.Errorf("cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("cannot write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("cannot close temp file: %w", err)
	}

	transcript, err := e.transcriber.Transcribe(ctx, tmp.Name())
	if err != nil {
		return "", fmt.Errorf("audio extraction failed: %w", err)
	}
	return transcript, nil
}

// suffixFor picks a file extension the transcription API recognizes.
func suffixFor(mediaType string) string {
	switch mediaType {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav":
		return ".wav"
	case "audio/ogg":
		return ".ogg"
	case "video/webm", "audio/webm":
		return ".webm"
	default:
		return ".mp4"
	}
}

var _ interfaces.Extractor = (*AudioExtractor)(nil)
