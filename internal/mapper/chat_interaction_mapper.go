package mapper

import (
	"encoding/json"

	"grant-assist-be/internal/entity"
	"grant-assist-be/internal/model"

	"gorm.io/datatypes"
)

type ChatInteractionMapper struct{}

func NewChatInteractionMapper() *ChatInteractionMapper {
	return &ChatInteractionMapper{}
}

func (m *ChatInteractionMapper) ToEntity(c *model.ChatInteraction) *entity.ChatInteraction {
	if c == nil {
		return nil
	}

	var sources []entity.DocumentSource
	if c.DocumentSources != nil && len(*c.DocumentSources) > 0 {
		// Sources column is NULL when the answer cited nothing
		_ = json.Unmarshal(*c.DocumentSources, &sources)
	}

	return &entity.ChatInteraction{
		Id:                c.Id,
		UserId:            c.UserId,
		UserMessage:       c.UserMessage,
		AssistantResponse: c.AssistantResponse,
		UserProfile:       json.RawMessage(c.UserProfile),
		DocumentSources:   sources,
		CreatedAt:         c.CreatedAt,
	}
}

func (m *ChatInteractionMapper) ToModel(c *entity.ChatInteraction) *model.ChatInteraction {
	if c == nil {
		return nil
	}

	profile := c.UserProfile
	if len(profile) == 0 {
		profile = json.RawMessage(`{}`)
	}

	var sources *datatypes.JSON
	if len(c.DocumentSources) > 0 {
		if raw, err := json.Marshal(c.DocumentSources); err == nil {
			j := datatypes.JSON(raw)
			sources = &j
		}
	}

	return &model.ChatInteraction{
		Id:                c.Id,
		UserId:            c.UserId,
		UserMessage:       c.UserMessage,
		AssistantResponse: c.AssistantResponse,
		UserProfile:       datatypes.JSON(profile),
		DocumentSources:   sources,
		CreatedAt:         c.CreatedAt,
	}
}

func (m *ChatInteractionMapper) ToEntities(rows []*model.ChatInteraction) []*entity.ChatInteraction {
	entities := make([]*entity.ChatInteraction, len(rows))
	for i, c := range rows {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
