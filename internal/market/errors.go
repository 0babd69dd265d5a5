package market

import "errors"

var (
	// ErrAllSymbolsFailed means every symbol in a batch failed; callers must
	// surface this as a failure, never as an empty success.
	ErrAllSymbolsFailed = errors.New("all symbol fetches failed")

	// ErrUnusableQuote means the provider answered but the record is missing
	// a required field (symbol or current price).
	ErrUnusableQuote = errors.New("quote missing required fields")
)
