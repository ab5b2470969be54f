// Package formats reads and writes transaction sets in the three on-disk
// representations: length-framed binary, CSV and key-value text blocks.
package formats

import (
	// Go Internal Packages
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	// Local Packages
	errors "ypbank/errors"
	models "ypbank/models"
)

// Format reads and writes a whole set of transactions in one representation.
//
// ReadAll consumes r to the end and returns the records in source order. It
// stops at the first malformed record and never returns records alongside an
// error. An empty stream yields an empty, non-nil slice.
//
// WriteAll writes each record with a single call to w, so a failure never
// leaves half a record behind; records already written are not rolled back.
//
// Neither method closes the stream.
type Format interface {
	ReadAll(r io.Reader) ([]models.Transaction, error)
	WriteAll(w io.Writer, txs []models.Transaction) error
}

// errNotUTF8 is the cause of a description that is not valid UTF-8. Every
// reader rejects such a description and every writer refuses to emit one.
var errNotUTF8 = stderrors.New("not valid UTF-8")

type Name string

const (
	Binary Name = "binary"
	CSV    Name = "csv"
	Text   Name = "txt"
)

// Names lists every accepted spelling, for CLI enums and help text.
func Names() []string {
	return []string{"bin", "binary", "csv", "text", "txt"}
}

// ParseName resolves a format name, accepting the short aliases.
func ParseName(s string) (Name, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bin", "binary":
		return Binary, nil
	case "csv":
		return CSV, nil
	case "txt", "text":
		return Text, nil
	}
	return "", errors.E(errors.Invalid, fmt.Sprintf("unknown format %q", s), nil)
}

// Options tunes codec behaviour that is not fixed by the wire formats.
type Options struct {
	// StrictRecordSize makes the binary reader reject records whose declared
	// size differs from the bytes the record actually occupies.
	StrictRecordSize bool
}

// New builds the codec for name.
func New(name Name, opts Options) (Format, error) {
	switch name {
	case Binary:
		return &BinaryFormat{StrictRecordSize: opts.StrictRecordSize}, nil
	case CSV:
		return &CSVFormat{}, nil
	case Text:
		return &TextFormat{}, nil
	}
	return nil, errors.E(errors.Invalid, fmt.Sprintf("unknown format %q", string(name)), nil)
}
