// Package usecase はquotesフィーチャーのビジネスロジックを実装します。
package usecase

import "errors"

var (
	// ErrEmptyQuery is returned when a search query is blank after trimming.
	ErrEmptyQuery = errors.New("search query must not be blank")

	// ErrZeroPrice is returned when an upsert is attempted with a
	// non-positive price. The resolver discards such quotes before they
	// reach the store, so seeing this error indicates a caller bug.
	ErrZeroPrice = errors.New("instrument price must be positive")
)
