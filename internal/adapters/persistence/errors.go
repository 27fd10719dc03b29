package persistence

import "fmt"

// PersistenceErrorKind enumerates spec.md §4.2's PersistenceError variants:
// every call may fail with a transport or constraint failure.
type PersistenceErrorKind int

const (
	Transport PersistenceErrorKind = iota
	Constraint
	NotFound
)

// PersistenceError is the typed error surface of the PersistenceGateway,
// grounded in shape on the HttpGateway's ClientError.
type PersistenceError struct {
	Kind    PersistenceErrorKind
	Message string
	err     error
}

func (e *PersistenceError) Error() string {
	switch e.Kind {
	case Constraint:
		return fmt.Sprintf("persistence: constraint violation: %s", e.Message)
	case NotFound:
		return fmt.Sprintf("persistence: not found: %s", e.Message)
	default:
		return fmt.Sprintf("persistence: transport error: %s", e.Message)
	}
}

func (e *PersistenceError) Unwrap() error { return e.err }

func NewTransportError(message string, err error) *PersistenceError {
	return &PersistenceError{Kind: Transport, Message: message, err: err}
}

func NewConstraintError(message string, err error) *PersistenceError {
	return &PersistenceError{Kind: Constraint, Message: message, err: err}
}

func NewNotFoundError(message string) *PersistenceError {
	return &PersistenceError{Kind: NotFound, Message: message}
}
