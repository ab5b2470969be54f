package formats

import (
	// Go Internal Packages
	"encoding/csv"
	stderrors "errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	// Local Packages
	errors "ypbank/errors"
	models "ypbank/models"
)

// CSVHeader is written before any row and skipped on read.
var CSVHeader = []string{"id", "kind", "fromAccount", "toAccount", "amount", "timestamp", "status", "description"}

// CSVFormat is comma-separated text with a header row and standard quoting.
// The header row is mandatory: the first row is never decoded as data, only
// its column count is checked.
type CSVFormat struct{}

func (f *CSVFormat) ReadAll(r io.Reader) ([]models.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(CSVHeader)

	txs := make([]models.Transaction, 0)
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return txs, nil
		}
		return nil, csvReadErr(err)
	}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			return txs, nil
		}
		if err != nil {
			return nil, csvReadErr(err)
		}
		line, _ := cr.FieldPos(0)
		tx, err := parseCSVRow(line, row)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
}

// csvReadErr separates syntax problems in the data from failures of the reader.
func csvReadErr(err error) error {
	var pe *csv.ParseError
	if stderrors.As(err, &pe) {
		return errors.MalformedErr(err)
	}
	return errors.IOErr(err)
}

func parseCSVRow(line int, row []string) (models.Transaction, error) {
	var (
		tx  models.Transaction
		err error
	)
	if tx.ID, err = strconv.ParseUint(row[0], 10, 64); err != nil {
		return tx, errors.FieldErr(line, CSVHeader[0], err)
	}
	if tx.Kind, err = models.ParseTxKind(row[1]); err != nil {
		return tx, errors.MalformedErr(err)
	}
	if tx.FromAccount, err = strconv.ParseInt(row[2], 10, 64); err != nil {
		return tx, errors.FieldErr(line, CSVHeader[2], err)
	}
	if tx.ToAccount, err = strconv.ParseInt(row[3], 10, 64); err != nil {
		return tx, errors.FieldErr(line, CSVHeader[3], err)
	}
	if tx.Amount, err = strconv.ParseInt(row[4], 10, 64); err != nil {
		return tx, errors.FieldErr(line, CSVHeader[4], err)
	}
	if tx.Timestamp, err = strconv.ParseInt(row[5], 10, 64); err != nil {
		return tx, errors.FieldErr(line, CSVHeader[5], err)
	}
	if tx.Status, err = models.ParseStatus(row[6]); err != nil {
		return tx, errors.MalformedErr(err)
	}
	if !utf8.ValidString(row[7]) {
		return tx, errors.FieldErr(line, CSVHeader[7], errNotUTF8)
	}
	tx.Description = row[7]
	return tx, nil
}

func (f *CSVFormat) WriteAll(w io.Writer, txs []models.Transaction) error {
	cw := csv.NewWriter(w)
	if err := writeCSVRow(cw, CSVHeader); err != nil {
		return err
	}
	for _, tx := range txs {
		if _, err := tx.Kind.MarshalText(); err != nil {
			return errors.UnrepresentableErr("transaction %d: %v", tx.ID, err)
		}
		if _, err := tx.Status.MarshalText(); err != nil {
			return errors.UnrepresentableErr("transaction %d: %v", tx.ID, err)
		}
		if !utf8.ValidString(tx.Description) {
			return errors.UnrepresentableErr("transaction %d: description is %v", tx.ID, errNotUTF8)
		}
		// encoding/csv reads a quoted \r\n back as \n.
		if strings.Contains(tx.Description, "\r\n") {
			return errors.UnrepresentableErr("transaction %d: description contains a CRLF line break", tx.ID)
		}
		row := []string{
			strconv.FormatUint(tx.ID, 10),
			tx.Kind.String(),
			strconv.FormatInt(tx.FromAccount, 10),
			strconv.FormatInt(tx.ToAccount, 10),
			strconv.FormatInt(tx.Amount, 10),
			strconv.FormatInt(tx.Timestamp, 10),
			tx.Status.String(),
			tx.Description,
		}
		if err := writeCSVRow(cw, row); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVRow flushes after every row so each row reaches w in one write.
func writeCSVRow(cw *csv.Writer, row []string) error {
	if err := cw.Write(row); err != nil {
		return errors.IOErr(err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.IOErr(err)
	}
	return nil
}
