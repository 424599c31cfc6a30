// Package dto defines data transfer objects for the watchlist feature's HTTP transport layer.
package dto

import "time"

// StockResponse is the instrument snapshot embedded in a watchlist entry.
// The values are read through from the instrument store at request time,
// so they always reflect the latest resolved price.
type StockResponse struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"companyName"`
	Price       float64 `json:"price"`
}

// WatchlistItemResponse is one watchlist entry in a list response.
type WatchlistItemResponse struct {
	ID        uint          `json:"id"`
	CreatedAt time.Time     `json:"createdAt"`
	Username  string        `json:"username"`
	Stock     StockResponse `json:"stock"`
}

// WatchlistItemCreatedResponse is the response body for a successful add.
type WatchlistItemCreatedResponse struct {
	ID        uint      `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Username  string    `json:"username"`
	Symbol    string    `json:"symbol"`
}

// MembershipResponse reports whether a symbol is on the user's watchlist.
type MembershipResponse struct {
	Symbol string `json:"symbol"`
	Member bool   `json:"member"`
}
