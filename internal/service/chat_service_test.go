package service

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"grant-assist-be/internal/constant"
	"grant-assist-be/internal/dto"
	"grant-assist-be/internal/entity"
	"grant-assist-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatFixture(answer string) (IChatService, *fakeUnitOfWork, *fakeLLM) {
	uow := &fakeUnitOfWork{docRepo: newFakeDocumentRepo(), chatRepo: &fakeChatRepo{}}
	provider := &fakeLLM{answer: answer}
	svc := NewChatService(&fakeFactory{uow: uow}, provider, nopLogger{})
	return svc, uow, provider
}

func processedDoc(userId uuid.UUID, name, content string, tags []string, category string, createdAt time.Time) *entity.Document {
	return &entity.Document{
		Id:        uuid.New(),
		UserId:    userId,
		FileName:  name,
		FileType:  "text/plain",
		Content:   &content,
		Metadata:  &entity.DocumentMetadata{Tags: tags, Category: category},
		CreatedAt: createdAt,
	}
}

func TestAskRejectsEmptyMessage(t *testing.T) {
	svc, uow, provider := newChatFixture("unused")
	userId := uuid.New()

	_, err := svc.Ask(context.Background(), userId, &dto.AskRequest{Message: ""})

	assert.ErrorIs(t, err, dto.ErrMissingMessage)
	assert.Zero(t, provider.calls, "the model must not be called")
	assert.Empty(t, uow.chatRepo.interactions, "nothing may be persisted")
}

func TestAskGroundsAnswerOnDocuments(t *testing.T) {
	svc, uow, provider := newChatFixture("Apply before May 30.")
	userId := uuid.New()

	doc := processedDoc(userId, "factor-guide.txt",
		"The application deadline is May 30 and submissions close at midnight.",
		[]string{"factor", "deadline"}, "Application Guidelines", time.Now())
	uow.docRepo.docs[doc.Id] = doc

	res, err := svc.Ask(context.Background(), userId, &dto.AskRequest{Message: "When is the application deadline?"})
	require.NoError(t, err)

	assert.Equal(t, "Apply before May 30.", res.Response)
	require.Len(t, res.Sources, 1)
	assert.Equal(t, doc.Id, res.Sources[0].Id)
	assert.Equal(t, "factor-guide.txt", res.Sources[0].Name)
	assert.NotEmpty(t, res.Sources[0].Snippet)

	// The excerpt reaches the model through the system message.
	require.Len(t, provider.history, 2)
	assert.Equal(t, constant.ChatMessageRoleSystem, provider.history[0].Role)
	assert.Contains(t, provider.history[0].Content, `From document "factor-guide.txt"`)
	assert.Equal(t, constant.ChatMessageRoleUser, provider.history[1].Role)
	assert.Equal(t, "When is the application deadline?", provider.history[1].Content)

	// The exchange is persisted with its sources.
	require.Len(t, uow.chatRepo.interactions, 1)
	it := uow.chatRepo.interactions[0]
	assert.Equal(t, userId, it.UserId)
	assert.Equal(t, "Apply before May 30.", it.AssistantResponse)
	require.Len(t, it.DocumentSources, 1)
	assert.Equal(t, doc.Id, it.DocumentSources[0].Id)
}

func TestAskWithoutDocuments(t *testing.T) {
	svc, uow, provider := newChatFixture("General advice about grants.")
	userId := uuid.New()

	res, err := svc.Ask(context.Background(), userId, &dto.AskRequest{Message: "Which grants fit an emerging artist?"})
	require.NoError(t, err)

	assert.Nil(t, res.Sources, "sources must be null when nothing is cited")
	assert.NotContains(t, provider.history[0].Content, "From document")

	require.Len(t, uow.chatRepo.interactions, 1)
	assert.Nil(t, uow.chatRepo.interactions[0].DocumentSources)
}

func TestAskIgnoresIrrelevantDocuments(t *testing.T) {
	svc, uow, _ := newChatFixture("answer")
	userId := uuid.New()

	doc := processedDoc(userId, "notes.txt", "completely unrelated meeting notes",
		nil, "General Information", time.Now())
	uow.docRepo.docs[doc.Id] = doc

	res, err := svc.Ask(context.Background(), userId, &dto.AskRequest{Message: "touring showcase funding"})
	require.NoError(t, err)

	assert.Nil(t, res.Sources)
}

func TestAskSkipsUnprocessedDocuments(t *testing.T) {
	svc, uow, _ := newChatFixture("answer")
	userId := uuid.New()

	unprocessed := &entity.Document{
		Id:        uuid.New(),
		UserId:    userId,
		FileName:  "pending.txt",
		FileType:  "text/plain",
		CreatedAt: time.Now(),
	}
	uow.docRepo.docs[unprocessed.Id] = unprocessed

	res, err := svc.Ask(context.Background(), userId, &dto.AskRequest{Message: "pending deadline"})
	require.NoError(t, err)
	assert.Nil(t, res.Sources)
}

func TestAskUpstreamFailurePersistsNothing(t *testing.T) {
	svc, uow, provider := newChatFixture("")
	provider.err = &llm.UpstreamError{Status: http.StatusInternalServerError, Body: "boom"}
	userId := uuid.New()

	_, err := svc.Ask(context.Background(), userId, &dto.AskRequest{Message: "Anything"})

	var upstreamErr *llm.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.Status)
	assert.Empty(t, uow.chatRepo.interactions)
}

func TestAskSurvivesPersistFailure(t *testing.T) {
	svc, uow, _ := newChatFixture("still delivered")
	uow.chatRepo.createErr = assert.AnError
	userId := uuid.New()

	res, err := svc.Ask(context.Background(), userId, &dto.AskRequest{Message: "Anything"})

	require.NoError(t, err, "the answer outlives a persistence failure")
	assert.Equal(t, "still delivered", res.Response)
}

func TestAskSurvivesRetrievalFailure(t *testing.T) {
	svc, uow, provider := newChatFixture("ungrounded answer")
	uow.docRepo.findAllErr = assert.AnError
	userId := uuid.New()

	res, err := svc.Ask(context.Background(), userId, &dto.AskRequest{Message: "deadline question"})

	require.NoError(t, err, "retrieval failure degrades to an ungrounded answer")
	assert.Nil(t, res.Sources)
	assert.Equal(t, 1, provider.calls)
}

func TestAskCapsSourcesAtThree(t *testing.T) {
	svc, uow, _ := newChatFixture("answer")
	userId := uuid.New()

	for i := 0; i < 5; i++ {
		doc := processedDoc(userId, "doc.txt", "funding deadline details for artists",
			nil, "General Information", time.Now().Add(-time.Duration(i)*time.Minute))
		uow.docRepo.docs[doc.Id] = doc
	}

	res, err := svc.Ask(context.Background(), userId, &dto.AskRequest{Message: "funding deadline"})
	require.NoError(t, err)
	assert.Len(t, res.Sources, 3)
}

func TestAskIncludesProfileInPrompt(t *testing.T) {
	svc, _, provider := newChatFixture("answer")
	userId := uuid.New()

	req := &dto.AskRequest{
		Message: "What should I apply for?",
		UserProfile: &dto.UserProfile{
			CareerStage:   "emerging",
			Genre:         "folk",
			ProjectType:   "album",
			ProjectBudget: "$15,000",
		},
	}

	_, err := svc.Ask(context.Background(), userId, req)
	require.NoError(t, err)

	system := provider.history[0].Content
	assert.Contains(t, system, "career stage: emerging")
	assert.Contains(t, system, "genre: folk")
}

func TestAskSnippetIsBounded(t *testing.T) {
	svc, uow, _ := newChatFixture("answer")
	userId := uuid.New()

	long := "The deadline details. " + strings.Repeat("More deadline context here. ", 50)
	doc := processedDoc(userId, "long.txt", long, nil, "General Information", time.Now())
	uow.docRepo.docs[doc.Id] = doc

	res, err := svc.Ask(context.Background(), userId, &dto.AskRequest{Message: "deadline"})
	require.NoError(t, err)

	require.Len(t, res.Sources, 1)
	assert.LessOrEqual(t, len(res.Sources[0].Snippet), 153)
}

func TestGetHistory(t *testing.T) {
	svc, uow, _ := newChatFixture("answer")
	userId := uuid.New()
	otherUser := uuid.New()

	uow.chatRepo.interactions = []*entity.ChatInteraction{
		{
			Id:                uuid.New(),
			UserId:            userId,
			UserMessage:       "q1",
			AssistantResponse: "a1",
			DocumentSources:   []entity.DocumentSource{{Id: uuid.New(), Name: "d.txt", Snippet: "s"}},
			CreatedAt:         time.Now(),
		},
		{
			Id:                uuid.New(),
			UserId:            otherUser,
			UserMessage:       "other user's question",
			AssistantResponse: "a2",
			CreatedAt:         time.Now(),
		},
	}

	history, err := svc.GetHistory(context.Background(), userId)
	require.NoError(t, err)

	require.Len(t, history, 1)
	assert.Equal(t, "q1", history[0].UserMessage)
	assert.Equal(t, "a1", history[0].AssistantResponse)
	require.Len(t, history[0].Sources, 1)
	assert.Equal(t, "d.txt", history[0].Sources[0].Name)
}
