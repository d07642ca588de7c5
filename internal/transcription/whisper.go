package transcription

import (
	"context"
	"fmt"

	openai "github.com/meguminnnnnnnnn/go-openai"
)

// Whisper is a speech-to-text client for the OpenAI audio API.
type Whisper struct {
	client *openai.Client
	model  string
}

// NewWhisper creates a transcription client with a fixed model.
func NewWhisper(apiKey, model string) (*Whisper, error) {
	config := openai.DefaultConfig(apiKey)
	client := openai.NewClientWithConfig(config)
	return &Whisper{client: client, model: model}, nil
}

// Transcribe sends the audio file at path to the model and returns the
// transcript text. The API requires a file handle, which is why callers
// hand over a path rather than bytes.
func (w *Whisper) Transcribe(ctx context.Context, path string) (string, error) {
	resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    w.model,
		FilePath: path,
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return resp.Text, nil
}
