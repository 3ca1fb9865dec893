package service

import (
	"context"
	"encoding/json"
	"time"

	"grant-assist-be/internal/constant"
	"grant-assist-be/internal/dto"
	"grant-assist-be/internal/entity"
	"grant-assist-be/internal/pkg/logger"
	"grant-assist-be/internal/repository/specification"
	"grant-assist-be/internal/repository/unitofwork"
	"grant-assist-be/pkg/llm"
	"grant-assist-be/pkg/rag/prompt"
	"grant-assist-be/pkg/rag/ranker"
	"grant-assist-be/pkg/rag/snippet"

	"github.com/google/uuid"
)

const (
	// candidateLimit bounds the number of processed documents considered per
	// question; the most recent uploads win.
	candidateLimit = 5
	// maxSources bounds how many documents feed the prompt and the citation
	// list of one answer.
	maxSources = 3
)

type IChatService interface {
	Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error)
	GetHistory(ctx context.Context, userId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
}

type chatService struct {
	uowFactory  unitofwork.RepositoryFactory
	llmProvider llm.LLMProvider
	sysLogger   logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	sysLogger logger.ILogger,
) IChatService {
	return &chatService{
		uowFactory:  uowFactory,
		llmProvider: llmProvider,
		sysLogger:   sysLogger,
	}
}

// Ask answers a question grounded on the caller's processed documents. The
// generated answer is returned even when persisting the interaction fails;
// document retrieval failures degrade to an ungrounded answer.
func (cs *chatService) Ask(ctx context.Context, userId uuid.UUID, req *dto.AskRequest) (*dto.AskResponse, error) {
	if req.Message == "" {
		return nil, dto.ErrMissingMessage
	}

	builder := prompt.NewBuilder().WithProfile(req.UserProfile)

	var sources []dto.DocumentSourceDTO
	for _, r := range cs.rankCandidates(ctx, userId, req.Message) {
		excerpt := snippet.Extract(r.Content, req.Message, snippet.PromptMaxLength)
		builder.AddDocument(r.FileName, excerpt)
		sources = append(sources, dto.DocumentSourceDTO{
			Id:      r.ID,
			Name:    r.FileName,
			Snippet: snippet.Preview(excerpt, snippet.PreviewLength),
		})
	}

	answer, err := cs.llmProvider.Chat(ctx, []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: builder.Build()},
		{Role: constant.ChatMessageRoleUser, Content: req.Message},
	})
	if err != nil {
		return nil, err
	}

	cs.persistInteraction(ctx, userId, req, answer, sources)

	return &dto.AskResponse{Response: answer, Sources: sources}, nil
}

func (cs *chatService) GetHistory(ctx context.Context, userId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	interactions, err := uow.ChatInteractionRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetChatHistoryResponse, 0, len(interactions))
	for _, it := range interactions {
		entry := &dto.GetChatHistoryResponse{
			Id:                it.Id,
			UserMessage:       it.UserMessage,
			AssistantResponse: it.AssistantResponse,
			CreatedAt:         it.CreatedAt,
		}
		for _, s := range it.DocumentSources {
			entry.Sources = append(entry.Sources, dto.DocumentSourceDTO{
				Id:      s.Id,
				Name:    s.Name,
				Snippet: s.Snippet,
			})
		}
		result = append(result, entry)
	}
	return result, nil
}

// rankCandidates loads the caller's most recent processed documents and ranks
// them against the question. A retrieval failure is logged and yields no
// candidates; the question still reaches the model ungrounded.
func (cs *chatService) rankCandidates(ctx context.Context, userId uuid.UUID, message string) []ranker.Result {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.WithContent{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: candidateLimit},
	)
	if err != nil {
		cs.sysLogger.Warn("chat", "Candidate retrieval failed", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
		return nil
	}

	candidates := make([]ranker.Candidate, 0, len(docs))
	for _, d := range docs {
		c := ranker.Candidate{
			ID:       d.Id,
			FileName: d.FileName,
		}
		if d.Content != nil {
			c.Content = *d.Content
		}
		if d.Metadata != nil {
			c.Category = d.Metadata.Category
			c.Tags = d.Metadata.Tags
		}
		candidates = append(candidates, c)
	}

	return ranker.Rank(message, candidates, maxSources)
}

// persistInteraction appends the exchange to the conversation log. Failures
// are logged and swallowed so the caller still gets the answer.
func (cs *chatService) persistInteraction(ctx context.Context, userId uuid.UUID, req *dto.AskRequest, answer string, sources []dto.DocumentSourceDTO) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	profile := json.RawMessage("{}")
	if req.UserProfile != nil {
		if raw, err := json.Marshal(req.UserProfile); err == nil {
			profile = raw
		}
	}

	interaction := &entity.ChatInteraction{
		Id:                uuid.New(),
		UserId:            userId,
		UserMessage:       req.Message,
		AssistantResponse: answer,
		UserProfile:       profile,
		CreatedAt:         time.Now(),
	}
	for _, s := range sources {
		interaction.DocumentSources = append(interaction.DocumentSources, entity.DocumentSource{
			Id:      s.Id,
			Name:    s.Name,
			Snippet: s.Snippet,
		})
	}

	if err := uow.ChatInteractionRepository().Create(ctx, interaction); err != nil {
		cs.sysLogger.Error("chat", "Failed to persist interaction", map[string]interface{}{
			"user_id": userId.String(),
			"error":   err.Error(),
		})
	}
}
