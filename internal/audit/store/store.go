// Package store persists audit entries in Postgres. The table is insert-only.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/audit"
	"github.com/finchbooks/finch/internal/pagination"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, e *audit.Entry) error {
	query := `
		INSERT INTO audit_logs (company_id, user_id, action, resource_type, resource_id, detail)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.CompanyID, e.UserID, string(e.Action), e.ResourceType, e.ResourceID, e.Detail,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	return nil
}

var sortColumns = map[string]string{
	"created_at": "created_at",
	"action":     "action",
}

func (s *Store) List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*audit.Entry, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM audit_logs WHERE company_id = $1`, companyID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting audit entries: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, company_id, user_id, action, resource_type, resource_id, detail, created_at
		FROM audit_logs
		WHERE company_id = $1
		ORDER BY %s LIMIT $2 OFFSET $3`,
		page.OrderBy(sortColumns, "created_at"))

	rows, err := s.db.QueryContext(ctx, query, companyID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listing audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*audit.Entry

	for rows.Next() {
		var (
			e      audit.Entry
			action string
		)

		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.UserID, &action, &e.ResourceType, &e.ResourceID, &e.Detail, &e.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scanning audit entry: %w", err)
		}

		e.Action = audit.Action(action)

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating audit entries: %w", err)
	}

	return entries, total, nil
}
