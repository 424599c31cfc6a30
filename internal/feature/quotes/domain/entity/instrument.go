// Package entity defines the domain models for the quotes feature.
package entity

import "time"

// Instrument represents a priced, tradable security keyed by its ticker
// symbol. The price always holds the latest value seen from the quote
// provider; no history is retained.
type Instrument struct {
	// Symbol is the ticker symbol as issued by the provider (case-sensitive).
	Symbol string `gorm:"primaryKey;size:20"`

	// CompanyName is the display name of the issuing company.
	CompanyName string `gorm:"size:255;not null"`

	// Price is the last known market price. A stored price is always
	// positive: zero-priced provider results mean "no market data" and are
	// never persisted.
	Price float64 `gorm:"not null"`

	// UpdatedAt is the timestamp of the last upsert.
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
