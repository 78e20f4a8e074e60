// Package ops implements herald's operations: generating newsletter
// editions, the approve lifecycle step, exports, listing, and JSONL
// content import. Operations take a *sql.DB plus typed Input structs and
// return typed Output structs; terminal failures are HeraldError values.
package ops

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}
