package entity

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// PolicyChunk is a bounded span of policy document text with its provenance.
// Page is nil when the source document carries no usable pagination.
type PolicyChunk struct {
	Text   string
	Source string
	Page   *int
}

// RetrievedChunk is a PolicyChunk returned by similarity search.
type RetrievedChunk struct {
	Text   string
	Source string
	Page   *int
	Score  float64
}

// PageLabel renders the page metadata the way prompts reference it.
func (c *RetrievedChunk) PageLabel() string {
	if c.Page == nil {
		return "?"
	}
	return strconv.Itoa(*c.Page)
}

// IngestionRecord is the audit-trail row written after a document has been
// chunked and stored.
type IngestionRecord struct {
	Id        uuid.UUID
	Source    string
	Chunks    int
	CreatedAt time.Time
}
