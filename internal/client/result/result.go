// Package result is the outcome type returned by the client stores:
// either Success with a payload or Failure with a kind and a user-facing
// message.
package result

import "errors"

type Kind int

const (
	KindNone Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindTransport
	KindStructuralImport
	KindWrongPassword
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindTransport:
		return "transport"
	case KindStructuralImport:
		return "structural_import"
	case KindWrongPassword:
		return "wrong_password"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// Sentinels for errors.Is against Result.Err().
var (
	ErrKindValidation       = errors.New("validation")
	ErrKindNotFound         = errors.New("not found")
	ErrKindConflict         = errors.New("conflict")
	ErrKindTransport        = errors.New("transport")
	ErrKindStructuralImport = errors.New("structural import")
	ErrKindWrongPassword    = errors.New("wrong password")
	ErrKindInternal         = errors.New("internal")
)

var kindErrors = map[Kind]error{
	KindValidation:       ErrKindValidation,
	KindNotFound:         ErrKindNotFound,
	KindConflict:         ErrKindConflict,
	KindTransport:        ErrKindTransport,
	KindStructuralImport: ErrKindStructuralImport,
	KindWrongPassword:    ErrKindWrongPassword,
	KindInternal:         ErrKindInternal,
}

// Error is the error form of a failed Result.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Is(target error) bool {
	return kindErrors[e.Kind] == target
}

// Result is Success(value) or Failure(kind, message). The zero value is
// neither and reports Ok() == false with KindNone.
type Result[T any] struct {
	ok      bool
	value   T
	kind    Kind
	message string
}

func Success[T any](v T) Result[T] {
	return Result[T]{ok: true, value: v}
}

func Failure[T any](kind Kind, msg string) Result[T] {
	return Result[T]{kind: kind, message: msg}
}

func (r Result[T]) Ok() bool        { return r.ok }
func (r Result[T]) Value() T        { return r.value }
func (r Result[T]) Kind() Kind      { return r.kind }
func (r Result[T]) Message() string { return r.message }

// Err returns nil on success and an *Error otherwise.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return &Error{Kind: r.kind, Message: r.message}
}

// Empty is the payload of operations that return nothing.
type Empty struct{}
