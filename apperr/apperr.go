package apperr

import "errors"

// Kind classifies a domain failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindEmptyID
	KindNotFound
	KindFound
)

func (k Kind) String() string {
	switch k {
	case KindEmptyID:
		return "empty_id"
	case KindNotFound:
		return "not_found"
	case KindFound:
		return "found"
	default:
		return "unknown"
	}
}

// Error is a domain failure the HTTP layer maps to a status code.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return "apperr: " + e.Kind.String()
}

// EmptyID reports a missing or zero identifier.
func EmptyID(msg string) *Error { return &Error{Kind: KindEmptyID, Message: msg} }

// NotFound reports that a referenced row does not exist.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Found reports that a row exists but is referenced elsewhere.
func Found(msg string) *Error { return &Error{Kind: KindFound, Message: msg} }

// KindOf returns the Kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) && ae != nil {
		return ae.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
