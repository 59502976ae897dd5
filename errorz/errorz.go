// Package errorz defines the error kinds the question bank can report.
// Callers wrap the sentinels with context and use KindOf at the transport
// boundary to pick a status code.
package errorz

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrPaginationInvalid = errors.New("invalid query parameter values")
	ErrUnprocessable     = errors.New("payload unprocessable")
	ErrNoPayload         = errors.New("missing payload")
	ErrExists            = errors.New("already exists")
)

// Kind classifies an error returned by the services.
type Kind int

const (
	// KindStore covers every failure that is not one of the sentinels,
	// usually an error bubbling up from the database.
	KindStore Kind = iota
	KindNotFound
	KindPaginationInvalid
	KindUnprocessable
	KindNoPayload
	KindExists
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindPaginationInvalid:
		return "pagination_invalid"
	case KindUnprocessable:
		return "unprocessable"
	case KindNoPayload:
		return "no_payload"
	case KindExists:
		return "exists"
	default:
		return "store"
	}
}

// KindOf reports the kind of err. A nil error has no meaningful kind and
// reports KindStore.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrPaginationInvalid):
		return KindPaginationInvalid
	case errors.Is(err, ErrUnprocessable):
		return KindUnprocessable
	case errors.Is(err, ErrNoPayload):
		return KindNoPayload
	case errors.Is(err, ErrExists):
		return KindExists
	default:
		return KindStore
	}
}
