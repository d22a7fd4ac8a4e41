package domain

import (
	"time"

	"github.com/google/uuid"
)

// ImportLogEntry records one import-time event for audit purposes. Entries
// with a RowIndex describe a skipped row; entries without one are file-level
// messages such as the final summary.
type ImportLogEntry struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"fileName"`
	RowIndex  *int      `json:"rowIndex,omitempty"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
