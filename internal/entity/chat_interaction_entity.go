package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DocumentSource is one citation attached to a persisted interaction.
type DocumentSource struct {
	Id      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Snippet string    `json:"snippet"`
}

// ChatInteraction is one entry of the append-only conversation log. Rows are
// never mutated or deleted.
type ChatInteraction struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId            uuid.UUID `gorm:"type:uuid;index"`
	UserMessage       string
	AssistantResponse string
	UserProfile       json.RawMessage  // snapshot; empty object when absent
	DocumentSources   []DocumentSource // nil when the answer cited nothing
	CreatedAt         time.Time
}
