package voice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Transcriber converts an audio stream into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error)
}

// HTTPTranscriber calls a whisper-style speech-to-text HTTP service
// with a multipart upload.
type HTTPTranscriber struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

type transcriptionResponse struct {
	Text  string `json:"text"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewHTTPTranscriber(endpoint, apiKey string, timeout time.Duration) *HTTPTranscriber {
	return &HTTPTranscriber{
		endpoint: endpoint,
		apiKey:   apiKey,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (t *HTTPTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename, language string) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, audio); err != nil {
			pw.CloseWithError(err)
			return
		}
		if err := mw.WriteField("model", "whisper-1"); err != nil {
			pw.CloseWithError(err)
			return
		}
		if language != "" {
			if err := mw.WriteField("language", language); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, "POST", t.endpoint, pr)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription service returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed transcriptionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("transcription service error: %s", parsed.Error.Message)
	}

	return parsed.Text, nil
}

// SimulatedTranscriber returns canned transcriptions keyed off the
// audio filename. It stands in for the external service in development
// and tests; the output is deterministic for a given filename.
type SimulatedTranscriber struct{}

func NewSimulatedTranscriber() *SimulatedTranscriber {
	return &SimulatedTranscriber{}
}

func (t *SimulatedTranscriber) Transcribe(_ context.Context, _ io.Reader, filename, _ string) (string, error) {
	name := strings.ToLower(filename)

	switch {
	case strings.Contains(name, "presentation"):
		return "Create a presentation about digital marketing strategies focused on social media for 2025. Include recent statistics and emerging trends.", nil
	case strings.Contains(name, "report"):
		return "Generate a presentation for the quarterly sales report with comparative charts across the last three quarters.", nil
	default:
		return "Create a 10 slide presentation about artificial intelligence and its impact on modern business.", nil
	}
}
