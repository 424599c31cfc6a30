// Package usecase はwatchlistフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrBlankArgument is returned when symbol or username is blank.
	ErrBlankArgument = errors.New("symbol and username must not be blank")

	// ErrInstrumentNotFound is returned when the referenced instrument has
	// never been resolved into the store.
	ErrInstrumentNotFound = errors.New("instrument not found")

	// ErrUserNotFound is returned when the username is unknown.
	ErrUserNotFound = errors.New("user not found")

	// ErrAlreadyInWatchlist is returned when a live entry already exists
	// for the (username, symbol) pair.
	ErrAlreadyInWatchlist = errors.New("instrument already in watchlist")

	// ErrItemNotFound is returned on removal when no live entry exists for
	// the (username, symbol) pair.
	ErrItemNotFound = errors.New("watchlist item not found")
)
