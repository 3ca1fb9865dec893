package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChatInteraction rows form an append-only log, so there is no soft delete.
type ChatInteraction struct {
	Id                uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId            uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserMessage       string          `gorm:"type:text;not null"`
	AssistantResponse string          `gorm:"type:text;not null"`
	UserProfile       datatypes.JSON  `gorm:"type:jsonb"`
	DocumentSources   *datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt         time.Time       `gorm:"autoCreateTime"`
}

func (ChatInteraction) TableName() string {
	return "chat_interactions"
}
