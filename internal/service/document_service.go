package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"grant-assist-be/internal/dto"
	"grant-assist-be/internal/entity"
	"grant-assist-be/internal/pkg/logger"
	"grant-assist-be/internal/repository/specification"
	"grant-assist-be/internal/repository/unitofwork"
	"grant-assist-be/pkg/docproc"
	"grant-assist-be/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	statsCacheTTL = 1 * time.Minute
	maxTotalTags  = 5
)

type IDocumentService interface {
	Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.DocumentResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error)
	Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error)
	AddTag(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.AddTagRequest) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	Process(ctx context.Context, documentId uuid.UUID) error
	Reprocess(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error)
	Stats(ctx context.Context, userId uuid.UUID) (*dto.DocumentStatsResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	blobStore        storage.BlobStore
	publisherService IPublisherService
	statsCache       *gocache.Cache
	sysLogger        logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	blobStore storage.BlobStore,
	publisherService IPublisherService,
	sysLogger logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		blobStore:        blobStore,
		publisherService: publisherService,
		statsCache:       gocache.New(statsCacheTTL, 5*time.Minute),
		sysLogger:        sysLogger,
	}
}

// Upload stores the raw file, creates the unprocessed document row, and
// publishes the processing trigger. Extraction happens out-of-band.
func (ds *documentService) Upload(ctx context.Context, userId uuid.UUID, req *dto.UploadDocumentRequest) (*dto.DocumentResponse, error) {
	if !docproc.IsSupportedFileType(req.FileType) {
		return nil, dto.ErrUnsupportedFileType
	}

	uow := ds.uowFactory.NewUnitOfWork(ctx)

	doc := &entity.Document{
		Id:        uuid.New(),
		UserId:    userId,
		FileName:  req.FileName,
		FileType:  req.FileType,
		CreatedAt: time.Now(),
	}
	doc.FilePath = fmt.Sprintf("%s/%s%s", userId, doc.Id, filepath.Ext(req.FileName))

	if err := ds.blobStore.Save(ctx, doc.FilePath, req.Data); err != nil {
		return nil, fmt.Errorf("save blob: %w", err)
	}

	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		// Row creation failed, the blob would be orphaned
		if delErr := ds.blobStore.Delete(ctx, doc.FilePath); delErr != nil {
			ds.sysLogger.Warn("document", "Failed to clean up blob after create failure", map[string]interface{}{
				"file_path": doc.FilePath,
				"error":     delErr.Error(),
			})
		}
		return nil, err
	}

	if err := ds.publisherService.PublishProcessDocument(ctx, doc.Id); err != nil {
		ds.sysLogger.Warn("document", "Failed to publish processing trigger", map[string]interface{}{
			"document_id": doc.Id.String(),
			"error":       err.Error(),
		})
	}

	return ds.toResponse(doc), nil
}

func (ds *documentService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.DocumentResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		result = append(result, ds.toResponse(d))
	}
	return result, nil
}

func (ds *documentService) Show(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error) {
	doc, err := ds.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return ds.toResponse(doc), nil
}

// AddTag appends one manual tag. This is the only mutation a document
// receives after processing.
func (ds *documentService) AddTag(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.AddTagRequest) (*dto.DocumentResponse, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, dto.ErrDocumentNotFound
	}

	if doc.Metadata == nil {
		doc.Metadata = &entity.DocumentMetadata{Tags: []string{}, Category: docproc.CategoryGeneral}
	}
	for _, t := range doc.Metadata.Tags {
		if t == req.Tag {
			return ds.toResponse(doc), nil
		}
	}
	if len(doc.Metadata.Tags) >= maxTotalTags {
		return nil, fiber.NewError(fiber.StatusBadRequest, "tag limit reached")
	}
	doc.Metadata.Tags = append(doc.Metadata.Tags, req.Tag)

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return nil, err
	}

	return ds.toResponse(doc), nil
}

// Delete removes the row and cascades to the blob.
func (ds *documentService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	doc, err := ds.findOwned(ctx, userId, id)
	if err != nil {
		return err
	}

	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	if err := ds.blobStore.Delete(ctx, doc.FilePath); err != nil {
		ds.sysLogger.Warn("document", "Failed to delete blob", map[string]interface{}{
			"file_path": doc.FilePath,
			"error":     err.Error(),
		})
	}

	return nil
}

// Process turns a stored file into searchable text plus derived metadata.
// It is idempotent: reprocessing the same bytes yields the same content and
// metadata (excluding the processing date). The final update is a single
// write; content is never partially written.
func (ds *documentService) Process(ctx context.Context, documentId uuid.UUID) error {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return err
	}
	if doc == nil {
		return dto.ErrDocumentNotFound
	}

	if !docproc.IsSupportedFileType(doc.FileType) {
		return dto.ErrUnsupportedFileType
	}

	raw, err := ds.blobStore.Download(ctx, doc.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto.ErrFileNotFound
		}
		return err
	}

	content := docproc.ExtractText(raw)
	wordCount := docproc.WordCount(content)
	chunks := docproc.SplitChunks(content, docproc.DefaultChunkSize)

	metadata := &entity.DocumentMetadata{
		Tags:           docproc.ExtractTags(content),
		Category:       docproc.DetectCategory(content),
		Size:           int64(len(raw)),
		ChunkCount:     len(chunks),
		ProcessingDate: time.Now(),
	}
	if doc.FileType == docproc.FileTypePDF {
		pages := docproc.PageCount(wordCount)
		metadata.PageCount = &pages
	} else {
		wc := wordCount
		metadata.WordCount = &wc
	}

	// Preserve metadata keys the processor does not own
	if doc.Metadata != nil {
		metadata.Extra = doc.Metadata.Extra
	}

	doc.Content = &content
	doc.Metadata = metadata

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		return fmt.Errorf("%w: %v", dto.ErrPersistFailure, err)
	}

	ds.sysLogger.Info("document", "Document processed", map[string]interface{}{
		"document_id": doc.Id.String(),
		"category":    metadata.Category,
		"chunk_count": metadata.ChunkCount,
	})

	return nil
}

// Reprocess runs extraction synchronously for a document the caller owns.
// Processing is idempotent, so re-running over the same bytes is safe.
func (ds *documentService) Reprocess(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*dto.DocumentResponse, error) {
	if _, err := ds.findOwned(ctx, userId, id); err != nil {
		return nil, err
	}

	if err := ds.Process(ctx, id); err != nil {
		return nil, err
	}

	doc, err := ds.findOwned(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	return ds.toResponse(doc), nil
}

func (ds *documentService) Stats(ctx context.Context, userId uuid.UUID) (*dto.DocumentStatsResponse, error) {
	cacheKey := "stats:" + userId.String()
	if cached, found := ds.statsCache.Get(cacheKey); found {
		return cached.(*dto.DocumentStatsResponse), nil
	}

	uow := ds.uowFactory.NewUnitOfWork(ctx)
	docs, err := uow.DocumentRepository().FindAll(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	stats := &dto.DocumentStatsResponse{
		Total:      len(docs),
		Categories: make(map[string]int),
	}
	for _, d := range docs {
		if d.Processed() {
			stats.Processed++
		}
		if d.Metadata != nil && d.Metadata.Category != "" {
			stats.Categories[d.Metadata.Category]++
		}
	}

	ds.statsCache.Set(cacheKey, stats, statsCacheTTL)
	return stats, nil
}

func (ds *documentService) findOwned(ctx context.Context, userId uuid.UUID, id uuid.UUID) (*entity.Document, error) {
	uow := ds.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, dto.ErrDocumentNotFound
	}
	return doc, nil
}

func (ds *documentService) toResponse(d *entity.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		Id:        d.Id,
		FileName:  d.FileName,
		FileType:  d.FileType,
		FilePath:  d.FilePath,
		Processed: d.Processed(),
		CreatedAt: d.CreatedAt,
	}
	if d.Metadata != nil {
		m := d.Metadata
		processingDate := m.ProcessingDate
		resp.Metadata = &dto.DocumentMetadataDTO{
			Tags:       m.Tags,
			Category:   m.Category,
			Size:       m.Size,
			WordCount:  m.WordCount,
			PageCount:  m.PageCount,
			ChunkCount: m.ChunkCount,
		}
		if !processingDate.IsZero() {
			resp.Metadata.ProcessingDate = &processingDate
		}
	}
	return resp
}
