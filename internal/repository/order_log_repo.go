package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aryant0/mithila-bazaar/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// OrderLogNamespace is the namespace every storefront order is appended under.
const OrderLogNamespace = "mithilaBazaarOrders"

// DBTX is the subset of *pgxpool.Pool the order log needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type OrderLogRepository struct {
	DB        DBTX
	Namespace string
}

func NewOrderLogRepository(db DBTX) *OrderLogRepository {
	return &OrderLogRepository{DB: db, Namespace: OrderLogNamespace}
}

// Append stores the order record as a JSONB payload.
func (r *OrderLogRepository) Append(ctx context.Context, order *model.OrderRecord) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}

	query := `INSERT INTO order_log (namespace, order_id, payload, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := r.DB.Exec(ctx, query, r.Namespace, order.ID, payload, time.Now()); err != nil {
		return fmt.Errorf("append order log: %w", err)
	}
	return nil
}

// Recent returns up to limit orders, newest first.
func (r *OrderLogRepository) Recent(ctx context.Context, limit int) ([]model.OrderRecord, error) {
	query := `SELECT payload FROM order_log WHERE namespace=$1 ORDER BY created_at DESC LIMIT $2`
	rows, err := r.DB.Query(ctx, query, r.Namespace, limit)
	if err != nil {
		return nil, fmt.Errorf("query order log: %w", err)
	}
	defer rows.Close()

	out := []model.OrderRecord{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var o model.OrderRecord
		if err := json.Unmarshal(payload, &o); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
