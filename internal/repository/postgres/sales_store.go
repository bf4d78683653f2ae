package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/salesight/salesight/internal/domain"
)

// SalesStore persists per-user record sets in the sales_records table.
type SalesStore struct {
	db *DB
}

func NewSalesStore(db *DB) *SalesStore {
	return &SalesStore{db: db}
}

const salesColumns = `id, date, product_name, product_id, category, quantity,
	unit_price, revenue, cost_price, profit, profitability, discount, vat,
	margin, customer_type, region, sales_channel, shipping_status, year`

func (s *SalesStore) Load(ctx context.Context, userID string) ([]domain.SalesRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM sales_records WHERE user_id = $1 ORDER BY created_at, id`, salesColumns)

	var records []domain.SalesRecord
	if err := s.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("failed to load sales records: %w", err)
	}
	return records, nil
}

// SaveAll replaces the user's record set atomically.
func (s *SalesStore) SaveAll(ctx context.Context, userID string, records []domain.SalesRecord) error {
	return s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM sales_records WHERE user_id = $1`, userID); err != nil {
			return fmt.Errorf("failed to clear previous records: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO sales_records (
				user_id, id, date, product_name, product_id, category, quantity,
				unit_price, revenue, cost_price, profit, profitability, discount,
				vat, margin, customer_type, region, sales_channel, shipping_status, year
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, r := range records {
			if _, err := stmt.ExecContext(ctx,
				userID, r.ID, r.Date, r.ProductName, r.ProductID, r.Category,
				r.Quantity, r.UnitPrice, r.Revenue, r.CostPrice, r.Profit,
				r.Profitability, r.Discount, r.VAT, r.Margin, r.CustomerType,
				r.Region, r.SalesChannel, r.ShippingStatus, r.Year,
			); err != nil {
				return fmt.Errorf("failed to insert record %s: %w", r.ID, err)
			}
		}
		return nil
	})
}

func (s *SalesStore) DeleteAll(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sales_records WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete sales records: %w", err)
	}
	return nil
}
