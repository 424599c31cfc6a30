// Package entity defines the domain models for the watchlist feature.
package entity

import (
	"time"

	quotesentity "stock_watchlist/internal/feature/quotes/domain/entity"
)

// WatchlistItem represents one user's membership of one instrument in
// their watchlist. The composite unique index on (username, symbol) is the
// authoritative guard for the at-most-one-membership invariant: concurrent
// inserts for the same pair collapse to a single row at the store level.
type WatchlistItem struct {
	// ID is the synthetic identifier of the entry.
	ID uint `gorm:"primaryKey"`

	// CreatedAt is the timestamp the entry was added.
	CreatedAt time.Time `gorm:"autoCreateTime"`

	// Username identifies the owning user. It is a plain value, not a
	// foreign object reference, so watchlist storage stays decoupled from
	// user storage.
	Username string `gorm:"size:255;not null;uniqueIndex:idx_watchlist_user_symbol,priority:1"`

	// Symbol references the watched instrument by its key.
	Symbol string `gorm:"size:20;not null;uniqueIndex:idx_watchlist_user_symbol,priority:2"`

	// Instrument carries the referenced instrument when loaded with a
	// read-through join; list responses always reflect its current price.
	Instrument quotesentity.Instrument `gorm:"foreignKey:Symbol;references:Symbol"`
}
