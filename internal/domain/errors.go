package domain

import "errors"

var (
	// ErrStoreUnavailable is returned when the catalog store cannot be reached or a query fails
	ErrStoreUnavailable = errors.New("catalog store unavailable")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)

// ErrorKind classifies a failure for the delivery layer
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindStoreUnavailable
	KindInvalidRequest
)

func (k ErrorKind) String() string {
	switch k {
	case KindStoreUnavailable:
		return "store_unavailable"
	case KindInvalidRequest:
		return "invalid_request"
	default:
		return "internal"
	}
}

// KindOf maps an error returned by the usecase layer onto its ErrorKind
func KindOf(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	default:
		return KindInternal
	}
}
