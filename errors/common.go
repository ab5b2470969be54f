package errors

import "fmt"

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

// IOErr wraps a failure of the underlying reader or writer
func IOErr(err error) error {
	return E(IO, "", err)
}

// MalformedErr wraps a token error that already names the offending value
func MalformedErr(err error) error {
	return E(Malformed, "", err)
}

// FieldErr reports a text field whose value could not be parsed. line is 1-based, 0 when unknown.
func FieldErr(line int, field string, err error) error {
	if line > 0 {
		return E(Malformed, fmt.Sprintf("line %d: invalid %s", line, field), err)
	}
	return E(Malformed, fmt.Sprintf("invalid %s", field), err)
}

// MissingFieldErr reports a required key absent from a text record
func MissingFieldErr(key string) error {
	return E(Malformed, "missing field: "+key, nil)
}

// InvalidBinaryErr reports a binary record that decoded but failed validation
func InvalidBinaryErr(format string, args ...any) error {
	return E(InvalidBinary, fmt.Sprintf(format, args...), nil)
}

// UnrepresentableErr reports a transaction a format cannot encode
func UnrepresentableErr(format string, args ...any) error {
	return E(Invalid, fmt.Sprintf(format, args...), nil)
}
