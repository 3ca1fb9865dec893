package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserProfile is supplied by the caller and interpolated verbatim into the
// system prompt. Fields are free text and are not validated.
type UserProfile struct {
	CareerStage      string `json:"career_stage"`
	Genre            string `json:"genre"`
	ProjectType      string `json:"project_type"`
	ProjectBudget    string `json:"project_budget"`
	StreamingNumbers string `json:"streaming_numbers,omitempty"`
	PreviousGrants   string `json:"previous_grants,omitempty"`
}

type AskRequest struct {
	Message     string       `json:"message"`
	UserProfile *UserProfile `json:"user_profile,omitempty"`
}

// DocumentSourceDTO is the user-facing citation attached to an answer.
type DocumentSourceDTO struct {
	Id      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Snippet string    `json:"snippet"`
}

// AskResponse carries the generated answer. Sources is null when no document
// informed the answer.
type AskResponse struct {
	Response string              `json:"response"`
	Sources  []DocumentSourceDTO `json:"sources"`
}

type GetChatHistoryResponse struct {
	Id                uuid.UUID           `json:"id"`
	UserMessage       string              `json:"user_message"`
	AssistantResponse string              `json:"assistant_response"`
	Sources           []DocumentSourceDTO `json:"sources,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
}
