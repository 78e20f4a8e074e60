package ops

import (
	"database/sql"
	"fmt"

	"github.com/ecagle/herald/internal/content"
	"github.com/ecagle/herald/internal/db"
	"github.com/ecagle/herald/internal/errors"
)

// ApproveInput contains parameters for the Approve operation.
type ApproveInput struct {
	ID     string // required
	ListID string // required, mailing platform list the edition targets
}

// ApproveOutput contains the result of the Approve operation.
type ApproveOutput struct {
	ID            string                `json:"id"`
	Status        content.EditionStatus `json:"status"`
	SendfoxListID string                `json:"sendfox_list_id"`
	UpdatedAt     int64                 `json:"updated_at"`
}

// Approve moves a draft edition to approved and records the target list.
// The status check and update share a WHERE status = 'draft' guard, so a
// concurrent approve loses cleanly with a conflict. An edition with no
// rendered content stays draft.
func Approve(database *sql.DB, input ApproveInput) (*ApproveOutput, error) {
	if input.ID == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}
	if input.ListID == "" {
		return nil, errors.NewInvalidRequest("list_id is required")
	}

	edition, err := db.GetEditionByID(database, input.ID)
	if err != nil {
		return nil, err
	}
	if edition.Status != content.StatusDraft {
		return nil, errors.NewConflict(fmt.Sprintf("edition %s is already %s", input.ID, edition.Status))
	}
	if edition.HTMLContent == "" {
		return nil, errors.NewEmptyContent(input.ID)
	}

	if err := db.MarkApproved(database, input.ID, input.ListID); err != nil {
		// The guarded update matches zero rows both for a vanished id and
		// for a draft approved underneath us. Re-read to tell them apart.
		if errors.Is(err, errors.ErrNotFound) {
			if current, readErr := db.GetEditionByID(database, input.ID); readErr == nil {
				return nil, errors.NewConflict(fmt.Sprintf("edition %s is already %s", input.ID, current.Status))
			}
		}
		return nil, err
	}

	updated, err := db.GetEditionByID(database, input.ID)
	if err != nil {
		return nil, err
	}

	out := &ApproveOutput{
		ID:        updated.ID,
		Status:    updated.Status,
		UpdatedAt: updated.UpdatedAt,
	}
	if updated.SendfoxListID != nil {
		out.SendfoxListID = *updated.SendfoxListID
	}
	return out, nil
}
