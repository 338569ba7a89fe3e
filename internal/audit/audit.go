// Package audit keeps an append-only trail of mutating operations. Entries
// are written best-effort: a failed audit insert is logged and swallowed so
// bookkeeping never blocks on its own paper trail.
package audit

import (
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionMerge   Action = "merge"
	ActionPost    Action = "post"
	ActionVoid    Action = "void"
	ActionPayment Action = "payment"
)

type Entry struct {
	ID           uuid.UUID
	CompanyID    uuid.UUID
	UserID       uuid.UUID
	Action       Action
	ResourceType string
	ResourceID   string
	Detail       string
	CreatedAt    time.Time
}
