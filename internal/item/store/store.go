// Package store persists items in Postgres.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/finchbooks/finch/internal/errs"
	"github.com/finchbooks/finch/internal/item"
	"github.com/finchbooks/finch/internal/ledger"
	"github.com/finchbooks/finch/internal/pagination"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const itemColumns = `
	id, company_id, item_name, item_type, description, sales_price,
	purchase_cost, quantity_on_hand, reorder_point, manufacturer,
	version, created_at, updated_at
`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*item.Item, error) {
	var (
		i       item.Item
		typeStr string
	)

	if err := s.Scan(
		&i.ID, &i.CompanyID, &i.ItemName, &typeStr, &i.Description, &i.SalesPrice,
		&i.PurchaseCost, &i.QuantityOnHand, &i.ReorderPoint, &i.Manufacturer,
		&i.Version, &i.CreatedAt, &i.UpdatedAt,
	); err != nil {
		return nil, err
	}

	i.ItemType = item.Type(typeStr)

	return &i, nil
}

func (s *Store) Create(ctx context.Context, i *item.Item) error {
	query := `
		INSERT INTO items (
			company_id, item_name, item_type, description, sales_price,
			purchase_cost, quantity_on_hand, reorder_point, manufacturer
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, version, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		i.CompanyID, i.ItemName, string(i.ItemType), i.Description,
		ledger.RoundMoney(i.SalesPrice), ledger.RoundMoney(i.PurchaseCost),
		i.QuantityOnHand, i.ReorderPoint, i.Manufacturer,
	).Scan(&i.ID, &i.Version, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, companyID, id uuid.UUID) (*item.Item, error) {
	query := `SELECT ` + itemColumns + `
		FROM items
		WHERE id = $1 AND company_id = $2 AND status = 'active'`

	i, err := scanItem(s.db.QueryRowContext(ctx, query, id, companyID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errs.NotFound("item", id.String())
		}

		return nil, fmt.Errorf("getting item: %w", err)
	}

	return i, nil
}

var sortColumns = map[string]string{
	"item_name":        "item_name",
	"item_type":        "item_type",
	"quantity_on_hand": "quantity_on_hand",
	"created_at":       "created_at",
}

func (s *Store) List(ctx context.Context, companyID uuid.UUID, page pagination.Params) ([]*item.Item, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE company_id = $1 AND status = 'active'`, companyID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting items: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM items
		WHERE company_id = $1 AND status = 'active'
		ORDER BY %s LIMIT $2 OFFSET $3`,
		itemColumns, page.OrderBy(sortColumns, "item_name"))

	rows, err := s.db.QueryContext(ctx, query, companyID, page.PageSize, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items, err := collect(rows)
	if err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// ListLowStock returns inventory items at or below their reorder point.
func (s *Store) ListLowStock(ctx context.Context, companyID uuid.UUID) ([]*item.Item, error) {
	query := `SELECT ` + itemColumns + `
		FROM items
		WHERE company_id = $1 AND status = 'active'
			AND item_type = 'inventory'
			AND quantity_on_hand <= reorder_point
		ORDER BY item_name ASC`

	rows, err := s.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("listing low stock items: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

func collect(rows *sql.Rows) ([]*item.Item, error) {
	var items []*item.Item

	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}

		items = append(items, i)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	return items, nil
}

func (s *Store) Update(ctx context.Context, i *item.Item) error {
	query := `
		UPDATE items
		SET item_name = $1, description = $2, sales_price = $3, purchase_cost = $4,
			quantity_on_hand = $5, reorder_point = $6, manufacturer = $7,
			version = version + 1, updated_at = NOW()
		WHERE id = $8 AND company_id = $9 AND version = $10 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query,
		i.ItemName, i.Description,
		ledger.RoundMoney(i.SalesPrice), ledger.RoundMoney(i.PurchaseCost),
		i.QuantityOnHand, i.ReorderPoint, i.Manufacturer,
		i.ID, i.CompanyID, i.Version)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}

	if affected == 0 {
		return errs.Conflict("item was modified concurrently")
	}

	i.Version++

	return nil
}

func (s *Store) SoftDelete(ctx context.Context, companyID, id, deletedBy uuid.UUID) error {
	query := `
		UPDATE items
		SET status = 'deleted', deleted_at = NOW(), deleted_by = $1, version = version + 1
		WHERE id = $2 AND company_id = $3 AND status = 'active'
	`

	res, err := s.db.ExecContext(ctx, query, deletedBy, id, companyID)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}

	if affected == 0 {
		return errs.NotFound("item", id.String())
	}

	return nil
}
