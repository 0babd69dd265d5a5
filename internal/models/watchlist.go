package models

import "time"

type WatchlistItem struct {
	ID      int64     `json:"id"`
	Symbol  string    `json:"symbol"`
	Name    string    `json:"name"`
	AddedAt time.Time `json:"addedAt"`
}
