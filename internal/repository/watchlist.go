package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/niveshlabs/nivesh-backend/internal/models"
)

type WatchlistRepo struct {
	pool *pgxpool.Pool
}

func NewWatchlistRepo(pool *pgxpool.Pool) *WatchlistRepo {
	return &WatchlistRepo{pool: pool}
}

func (r *WatchlistRepo) List(ctx context.Context) ([]models.WatchlistItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, symbol, name, added_at FROM watchlist ORDER BY added_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.WatchlistItem
	for rows.Next() {
		var item models.WatchlistItem
		if err := rows.Scan(&item.ID, &item.Symbol, &item.Name, &item.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// Add inserts a symbol, updating the stored name if it is already present.
func (r *WatchlistRepo) Add(ctx context.Context, symbol, name string) (*models.WatchlistItem, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO watchlist (symbol, name)
		 VALUES ($1, $2)
		 ON CONFLICT (symbol) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id, symbol, name, added_at`,
		symbol, name,
	)
	var item models.WatchlistItem
	if err := row.Scan(&item.ID, &item.Symbol, &item.Name, &item.AddedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

// Remove deletes a symbol. Returns false when the symbol was not present.
func (r *WatchlistRepo) Remove(ctx context.Context, symbol string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM watchlist WHERE symbol = $1`, symbol)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *WatchlistRepo) Get(ctx context.Context, symbol string) (*models.WatchlistItem, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT id, symbol, name, added_at FROM watchlist WHERE symbol = $1`, symbol,
	)
	var item models.WatchlistItem
	if err := row.Scan(&item.ID, &item.Symbol, &item.Name, &item.AddedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}
