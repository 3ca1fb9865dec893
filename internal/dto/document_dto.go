package dto

import (
	"time"

	"github.com/google/uuid"
)

// UploadDocumentRequest is assembled by the controller from the multipart
// form before handing off to the service.
type UploadDocumentRequest struct {
	FileName string `validate:"required,max=255"`
	FileType string `validate:"required,max=100"`
	Data     []byte `validate:"required"`
}

type DocumentMetadataDTO struct {
	Tags           []string   `json:"tags"`
	Category       string     `json:"category"`
	Size           int64      `json:"size"`
	WordCount      *int       `json:"word_count,omitempty"`
	PageCount      *int       `json:"page_count,omitempty"`
	ChunkCount     int        `json:"chunk_count"`
	ProcessingDate *time.Time `json:"processing_date,omitempty"`
}

type DocumentResponse struct {
	Id        uuid.UUID            `json:"id"`
	FileName  string               `json:"file_name"`
	FileType  string               `json:"file_type"`
	FilePath  string               `json:"file_path"`
	Processed bool                 `json:"processed"`
	Metadata  *DocumentMetadataDTO `json:"metadata,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
}

type AddTagRequest struct {
	Tag string `json:"tag" validate:"required,max=50"`
}

type DocumentStatsResponse struct {
	Total      int            `json:"total"`
	Processed  int            `json:"processed"`
	Categories map[string]int `json:"categories"`
}
