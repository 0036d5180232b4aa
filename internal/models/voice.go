package models

import (
	"time"
)

// VoiceStatus tracks a voice input through its lifecycle. Transitions
// are strictly PENDING -> PROCESSING -> {COMPLETED, FAILED}; terminal
// states are final, a re-submission is a new VoiceInput.
type VoiceStatus string

const (
	VoicePending    VoiceStatus = "PENDING"
	VoiceProcessing VoiceStatus = "PROCESSING"
	VoiceCompleted  VoiceStatus = "COMPLETED"
	VoiceFailed     VoiceStatus = "FAILED"
)

// VoiceInput is a transcribable voice clip owned by a user.
type VoiceInput struct {
	ID            string      `json:"id" db:"id"`
	UserID        string      `json:"userId" db:"user_id"`
	AudioKey      string      `json:"audioKey" db:"audio_key"`
	AudioName     string      `json:"audioName" db:"audio_name"`
	Language      string      `json:"language" db:"language"`
	Status        VoiceStatus `json:"status" db:"status"`
	Transcription *string     `json:"transcription" db:"transcription"`
	ErrorMessage  *string     `json:"errorMessage" db:"error_message"`
	CreatedAt     time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time   `json:"updatedAt" db:"updated_at"`
}

// PromptSource tags how a prompt entered the system.
type PromptSource string

const (
	PromptSourceText  PromptSource = "TEXT"
	PromptSourceVoice PromptSource = "VOICE"
)

// AIPrompt is an immutable generation prompt. VOICE-sourced prompts
// link back to the voice input that produced them.
type AIPrompt struct {
	ID           string       `json:"id" db:"id"`
	UserID       string       `json:"userId" db:"user_id"`
	Text         string       `json:"text" db:"text"`
	Source       PromptSource `json:"source" db:"source"`
	VoiceInputID *string      `json:"voiceInputId" db:"voice_input_id"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
}

// GenerationStatus tracks an AI generation request.
type GenerationStatus string

const (
	GenerationPending   GenerationStatus = "PENDING"
	GenerationFailed    GenerationStatus = "FAILED"
	GenerationCompleted GenerationStatus = "COMPLETED"
)

// GenerationRequest asks the (not yet implemented) presentation
// generator to build slides from a prompt.
type GenerationRequest struct {
	ID           string           `json:"id" db:"id"`
	UserID       string           `json:"userId" db:"user_id"`
	PromptID     string           `json:"promptId" db:"prompt_id"`
	Status       GenerationStatus `json:"status" db:"status"`
	ErrorMessage *string          `json:"errorMessage" db:"error_message"`
	CreatedAt    time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time        `json:"updatedAt" db:"updated_at"`
}
