package errors

import (
	// Go Internal Packages
	stderrors "errors"
	"sort"
	"strings"
)

// Kind classifies an error so callers can react without matching on messages.
type Kind uint8

const (
	Other         Kind = iota // Unclassified error.
	Invalid                   // Invalid configuration, flag or value that cannot be encoded.
	IO                        // Underlying stream read or write failure, including truncation.
	Malformed                 // Text record that cannot be parsed.
	InvalidBinary             // Binary record with bad framing or out-of-range content.
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case IO:
		return "I/O error"
	case Malformed:
		return "parse error"
	case InvalidBinary:
		return "invalid binary format"
	}
	return ""
}

// Error is the error type returned by every package of this module.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if s := e.Kind.String(); s != "" {
		parts = append(parts, s)
	}
	if e.Msg != "" {
		parts = append(parts, e.Msg)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// E builds an *Error of the given kind. msg and err are both optional.
func E(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain, or Other.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Other
}

// Is reports whether err carries the given kind.
func Is(kind Kind, err error) bool {
	return err != nil && KindOf(err) == kind
}

// ValidationErrors collects per-field problems and reports them together.
type ValidationErrors struct {
	fields map[string][]string
}

func ValidationErrs() *ValidationErrors {
	return &ValidationErrors{fields: make(map[string][]string)}
}

// Add records msg against field.
func (v *ValidationErrors) Add(field, msg string) {
	v.fields[field] = append(v.fields[field], msg)
}

// Err returns nil when nothing was added, otherwise the collector itself.
func (v *ValidationErrors) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return v
}

func (v *ValidationErrors) Error() string {
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+strings.Join(v.fields[k], ", "))
	}
	return strings.Join(parts, "; ")
}
