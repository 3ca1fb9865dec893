package dto

import "github.com/google/uuid"

// PublishProcessDocumentMessage is the payload published after an upload to
// trigger out-of-band document processing.
type PublishProcessDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
