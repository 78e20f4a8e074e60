package ops

import (
	"database/sql"

	"github.com/ecagle/herald/internal/content"
	"github.com/ecagle/herald/internal/db"
	"github.com/ecagle/herald/internal/errors"
)

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit  int // default: 20, max: 100
	Offset int // default: 0
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items      []db.EditionSummary `json:"items"`
	Pagination Pagination          `json:"pagination"`
	Sort       string              `json:"sort"`
}

// List retrieves edition summaries newest-first with pagination.
func List(database *sql.DB, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset := max(input.Offset, 0)

	summaries, total, err := db.ListEditions(database, limit, offset)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []db.EditionSummary{}
	}

	return &ListOutput{
		Items: summaries,
		Pagination: Pagination{
			Limit:   limit,
			Offset:  offset,
			HasMore: offset+len(summaries) < total,
			Total:   total,
		},
		Sort: "created_at_desc",
	}, nil
}

// GetEdition retrieves a full edition record by id.
func GetEdition(database *sql.DB, id string) (*content.Edition, error) {
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	return db.GetEditionByID(database, id)
}
