package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niveshlabs/nivesh-backend/internal/models"
)

type PortfolioRepo struct {
	pool *pgxpool.Pool
}

func NewPortfolioRepo(pool *pgxpool.Pool) *PortfolioRepo {
	return &PortfolioRepo{pool: pool}
}

func (r *PortfolioRepo) List(ctx context.Context) ([]models.Holding, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, symbol, quantity, avg_price, updated_at FROM holdings ORDER BY symbol ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectHoldings(rows)
}

// Upsert records a buy: an existing holding gets its quantity increased and
// its average price recomputed over the combined position.
func (r *PortfolioRepo) Upsert(ctx context.Context, symbol string, quantity, price float64) (*models.Holding, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO holdings (symbol, quantity, avg_price)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (symbol) DO UPDATE SET
			avg_price = (holdings.quantity * holdings.avg_price + EXCLUDED.quantity * EXCLUDED.avg_price)
				/ (holdings.quantity + EXCLUDED.quantity),
			quantity = holdings.quantity + EXCLUDED.quantity,
			updated_at = NOW()
		 RETURNING id, symbol, quantity, avg_price, updated_at`,
		symbol, quantity, price,
	)
	return scanHolding(row)
}

// Remove deletes a holding entirely. Returns false when absent.
func (r *PortfolioRepo) Remove(ctx context.Context, symbol string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM holdings WHERE symbol = $1`, symbol)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PortfolioRepo) Get(ctx context.Context, symbol string) (*models.Holding, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, symbol, quantity, avg_price, updated_at FROM holdings WHERE symbol = $1`, symbol,
	)
	h, err := scanHolding(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return h, nil
}

// --- scan helpers ---

type scannable interface {
	Scan(dest ...any) error
}

func scanHolding(row scannable) (*models.Holding, error) {
	var h models.Holding
	err := row.Scan(&h.ID, &h.Symbol, &h.Quantity, &h.AvgPrice, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

type rowsIter interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectHoldings(rows rowsIter) ([]models.Holding, error) {
	var out []models.Holding
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.ID, &h.Symbol, &h.Quantity, &h.AvgPrice, &h.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}
