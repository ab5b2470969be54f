package formats

import (
	// Go Internal Packages
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	// Local Packages
	errors "ypbank/errors"
	models "ypbank/models"
)

const (
	keyTxID        = "TX_ID"
	keyTxType      = "TX_TYPE"
	keyFromUserID  = "FROM_USER_ID"
	keyToUserID    = "TO_USER_ID"
	keyAmount      = "AMOUNT"
	keyTimestamp   = "TIMESTAMP"
	keyStatus      = "STATUS"
	keyDescription = "DESCRIPTION"
)

// TextKeys are the required keys of a text block, in the order they are written.
var TextKeys = []string{
	keyTxID, keyTxType, keyFromUserID, keyToUserID,
	keyAmount, keyTimestamp, keyStatus, keyDescription,
}

// TextFormat is a sequence of "KEY: value" blocks, each opened by a "#"
// comment line. Blank lines and lines without a colon are ignored.
type TextFormat struct{}

func (f *TextFormat) ReadAll(r io.Reader) ([]models.Transaction, error) {
	br := bufio.NewReader(r)
	txs := make([]models.Transaction, 0)
	fields := make(map[string]string)

	flush := func() error {
		if len(fields) == 0 {
			return nil
		}
		tx, err := parseTextBlock(fields)
		if err != nil {
			return err
		}
		txs = append(txs, tx)
		fields = make(map[string]string)
		return nil
	}

	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, errors.IOErr(readErr)
		}

		line := strings.TrimSpace(raw)
		if strings.HasPrefix(line, "#") {
			if err := flush(); err != nil {
				return nil, err
			}
		} else if key, value, ok := strings.Cut(line, ":"); ok {
			fields[strings.TrimSpace(key)] = unquote(strings.TrimSpace(value))
		}

		if readErr == io.EOF {
			break
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return txs, nil
}

// unquote strips one pair of surrounding double quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func parseTextBlock(fields map[string]string) (models.Transaction, error) {
	var tx models.Transaction
	for _, key := range TextKeys {
		if _, ok := fields[key]; !ok {
			return tx, errors.MissingFieldErr(key)
		}
	}

	var err error
	if tx.ID, err = strconv.ParseUint(fields[keyTxID], 10, 64); err != nil {
		return tx, errors.FieldErr(0, keyTxID, err)
	}
	if tx.Kind, err = models.ParseTxKind(fields[keyTxType]); err != nil {
		return tx, errors.MalformedErr(err)
	}
	if tx.FromAccount, err = strconv.ParseInt(fields[keyFromUserID], 10, 64); err != nil {
		return tx, errors.FieldErr(0, keyFromUserID, err)
	}
	if tx.ToAccount, err = strconv.ParseInt(fields[keyToUserID], 10, 64); err != nil {
		return tx, errors.FieldErr(0, keyToUserID, err)
	}
	if tx.Amount, err = strconv.ParseInt(fields[keyAmount], 10, 64); err != nil {
		return tx, errors.FieldErr(0, keyAmount, err)
	}
	if tx.Timestamp, err = strconv.ParseInt(fields[keyTimestamp], 10, 64); err != nil {
		return tx, errors.FieldErr(0, keyTimestamp, err)
	}
	if tx.Status, err = models.ParseStatus(fields[keyStatus]); err != nil {
		return tx, errors.MalformedErr(err)
	}
	if !utf8.ValidString(fields[keyDescription]) {
		return tx, errors.FieldErr(0, keyDescription, errNotUTF8)
	}
	tx.Description = fields[keyDescription]
	return tx, nil
}

func (f *TextFormat) WriteAll(w io.Writer, txs []models.Transaction) error {
	var buf bytes.Buffer
	for i, tx := range txs {
		if _, err := tx.Kind.MarshalText(); err != nil {
			return errors.UnrepresentableErr("transaction %d: %v", tx.ID, err)
		}
		if _, err := tx.Status.MarshalText(); err != nil {
			return errors.UnrepresentableErr("transaction %d: %v", tx.ID, err)
		}
		if !utf8.ValidString(tx.Description) {
			return errors.UnrepresentableErr("transaction %d: description is %v", tx.ID, errNotUTF8)
		}
		if strings.ContainsAny(tx.Description, "\r\n") {
			return errors.UnrepresentableErr("transaction %d: description contains a line break", tx.ID)
		}

		buf.Reset()
		fmt.Fprintf(&buf, "# Record %d (%s)\n", i+1, tx.Kind)
		fmt.Fprintf(&buf, "%s: %d\n", keyTxID, tx.ID)
		fmt.Fprintf(&buf, "%s: %s\n", keyTxType, tx.Kind)
		fmt.Fprintf(&buf, "%s: %d\n", keyFromUserID, tx.FromAccount)
		fmt.Fprintf(&buf, "%s: %d\n", keyToUserID, tx.ToAccount)
		fmt.Fprintf(&buf, "%s: %d\n", keyAmount, tx.Amount)
		fmt.Fprintf(&buf, "%s: %d\n", keyTimestamp, tx.Timestamp)
		fmt.Fprintf(&buf, "%s: %s\n", keyStatus, tx.Status)
		fmt.Fprintf(&buf, "%s: \"%s\"\n\n", keyDescription, tx.Description)

		if _, err := w.Write(buf.Bytes()); err != nil {
			return errors.IOErr(err)
		}
	}
	return nil
}
