package optimizer

import "errors"

var (
	// ErrInvalidCount is returned for a negative voluntary holiday count.
	ErrInvalidCount = errors.New("voluntary holiday count must be >= 0")

	// ErrInvalidYear is returned for years outside MinYear..MaxYear.
	ErrInvalidYear = errors.New("year out of range")

	// ErrUnknownAlgorithm is returned for an algorithm other than greedy or exhaustive.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrSearchTooLarge is returned when an exhaustive search exceeds the combination limit.
	ErrSearchTooLarge = errors.New("exhaustive search too large")
)
