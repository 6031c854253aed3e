package calculator

import "errors"

var (
	// ErrInsufficientHistory means the ratio table has fewer fiscal years than required.
	ErrInsufficientHistory = errors.New("insufficient history")
	// ErrNonPositiveBase means the CAGR base value is zero or negative.
	ErrNonPositiveBase = errors.New("non-positive base value")
	// ErrNegativeEnd means the CAGR end value is negative, so no real rate exists.
	ErrNegativeEnd = errors.New("negative end value")
	// ErrZeroRevenue means a margin was requested for a year with zero revenue.
	ErrZeroRevenue = errors.New("zero revenue")
	// ErrMissingQuoteField means a quote metadata field needed for valuation is absent.
	ErrMissingQuoteField = errors.New("missing quote field")
)
