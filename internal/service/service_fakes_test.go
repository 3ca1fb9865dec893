package service

import (
	"context"
	"sort"

	"grant-assist-be/internal/entity"
	"grant-assist-be/internal/repository/contract"
	"grant-assist-be/internal/repository/specification"
	"grant-assist-be/internal/repository/unitofwork"
	"grant-assist-be/pkg/llm"

	"github.com/google/uuid"
)

// In-memory doubles for the repository and provider contracts. They interpret
// the specification values the services actually pass.

type fakeDocumentRepo struct {
	docs         map[uuid.UUID]*entity.Document
	findAllCalls int
	findAllErr   error
	updateErr    error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[uuid.UUID]*entity.Document)}
}

func (r *fakeDocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	cp := *d
	r.docs[d.Id] = &cp
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, d *entity.Document) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	cp := *d
	r.docs[d.Id] = &cp
	return nil
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.docs, id)
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	for _, d := range r.docs {
		if matchesDocument(d, specs) {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.findAllCalls++
	if r.findAllErr != nil {
		return nil, r.findAllErr
	}

	var result []*entity.Document
	for _, d := range r.docs {
		if matchesDocument(d, specs) {
			cp := *d
			result = append(result, &cp)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	for _, s := range specs {
		if p, ok := s.(specification.Pagination); ok && p.Limit > 0 && len(result) > p.Limit {
			result = result[:p.Limit]
		}
	}
	return result, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	docs, _ := r.FindAll(ctx, specs...)
	return int64(len(docs)), nil
}

func matchesDocument(d *entity.Document, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if d.Id != sp.ID {
				return false
			}
		case specification.UserOwnedBy:
			if d.UserId != sp.UserID {
				return false
			}
		case specification.WithContent:
			if d.Content == nil {
				return false
			}
		}
	}
	return true
}

type fakeChatRepo struct {
	interactions []*entity.ChatInteraction
	createErr    error
}

func (r *fakeChatRepo) Create(ctx context.Context, it *entity.ChatInteraction) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *it
	r.interactions = append(r.interactions, &cp)
	return nil
}

func (r *fakeChatRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatInteraction, error) {
	var result []*entity.ChatInteraction
	for _, it := range r.interactions {
		match := true
		for _, s := range specs {
			if sp, ok := s.(specification.UserOwnedBy); ok && it.UserId != sp.UserID {
				match = false
			}
		}
		if match {
			cp := *it
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (r *fakeChatRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.interactions)), nil
}

type fakeUnitOfWork struct {
	docRepo  *fakeDocumentRepo
	chatRepo *fakeChatRepo
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository { return u.docRepo }
func (u *fakeUnitOfWork) ChatInteractionRepository() contract.ChatInteractionRepository {
	return u.chatRepo
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// fakeLLM records the last history it received.
type fakeLLM struct {
	answer  string
	err     error
	calls   int
	history []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	f.history = history
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type fakePublisher struct {
	published []uuid.UUID
	err       error
}

func (f *fakePublisher) PublishProcessDocument(ctx context.Context, documentId uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, documentId)
	return nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
