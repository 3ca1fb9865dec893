package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DocumentMetadata is the derived metadata block stored as JSON on the
// document row. Unknown keys survive a read-modify-write cycle via Extra, so
// reprocessing preserves anything the processor does not own.
type DocumentMetadata struct {
	Tags           []string  `json:"tags"`
	Category       string    `json:"category"`
	Size           int64     `json:"size"`
	WordCount      *int      `json:"word_count,omitempty"`
	PageCount      *int      `json:"page_count,omitempty"`
	ChunkCount     int       `json:"chunk_count"`
	ProcessingDate time.Time `json:"processing_date"`

	Extra map[string]json.RawMessage `json:"-"`
}

var metadataKnownKeys = []string{
	"tags", "category", "size", "word_count", "page_count",
	"chunk_count", "processing_date",
}

func (m *DocumentMetadata) UnmarshalJSON(data []byte) error {
	type alias DocumentMetadata
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range metadataKnownKeys {
		delete(raw, k)
	}
	if len(raw) > 0 {
		a.Extra = raw
	}

	*m = DocumentMetadata(a)
	return nil
}

func (m DocumentMetadata) MarshalJSON() ([]byte, error) {
	type alias DocumentMetadata
	base, err := json.Marshal(alias(m))
	if err != nil {
		return nil, err
	}

	if len(m.Extra) == 0 {
		return base, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range m.Extra {
		if _, owned := merged[k]; !owned {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

type Document struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserId    uuid.UUID `gorm:"type:uuid;index"`
	FileName  string
	FileType  string
	FilePath  string
	Content   *string
	Metadata  *DocumentMetadata
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}

// Processed reports whether extraction has completed. Content is never
// partially written.
func (d *Document) Processed() bool {
	return d.Content != nil
}
