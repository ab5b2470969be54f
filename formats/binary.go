package formats

import (
	// Go Internal Packages
	"bufio"
	"encoding/binary"
	"io"
	"unicode/utf8"

	// Local Packages
	errors "ypbank/errors"
	models "ypbank/models"
)

// Magic opens every binary record ("YPBN").
var Magic = [4]byte{0x59, 0x50, 0x42, 0x4E}

const (
	// MinRecordSize is the body length of a record with an empty description:
	// id(8) kind(1) from(8) to(8) amount(8) timestamp(8) status(1) descLen(4).
	MinRecordSize = 46
	// MaxDescriptionLen caps the description of a single record, in bytes.
	MaxDescriptionLen = 4096
)

// BinaryFormat is the self-framing big-endian record format. Each record is
// the magic, a u32 body size and the fixed body followed by the description.
type BinaryFormat struct {
	// StrictRecordSize rejects records whose declared size is not
	// MinRecordSize plus the description length. Off by default: the size is
	// only checked against MinRecordSize and otherwise ignored.
	StrictRecordSize bool
}

func (f *BinaryFormat) ReadAll(r io.Reader) ([]models.Transaction, error) {
	br := bufio.NewReader(r)
	txs := make([]models.Transaction, 0)
	for {
		tx, err := f.readRecord(br)
		if err == io.EOF {
			return txs, nil
		}
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
}

// readRecord returns io.EOF only when the stream ends exactly at a record
// boundary. Any other short read is an I/O error.
func (f *BinaryFormat) readRecord(r io.Reader) (models.Transaction, error) {
	var tx models.Transaction

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		if err == io.EOF {
			return tx, io.EOF
		}
		return tx, errors.IOErr(err)
	}
	if magic != Magic {
		return tx, errors.InvalidBinaryErr("invalid magic: % X", magic[:])
	}

	// Size and kind are checked as soon as their bytes are in.
	var head [4 + MinRecordSize]byte
	if err := readFull(r, head[:4]); err != nil {
		return tx, err
	}
	recordSize := binary.BigEndian.Uint32(head[0:4])
	if recordSize < MinRecordSize {
		return tx, errors.InvalidBinaryErr("record size %d is too small, minimum is %d bytes", recordSize, MinRecordSize)
	}

	body := head[4:]
	if err := readFull(r, body[:9]); err != nil {
		return tx, err
	}
	kind, err := models.TxKindFromByte(body[8])
	if err != nil {
		return tx, errors.InvalidBinaryErr("%v", err)
	}
	if err := readFull(r, body[9:]); err != nil {
		return tx, err
	}
	status, err := models.StatusFromByte(body[41])
	if err != nil {
		return tx, errors.InvalidBinaryErr("%v", err)
	}

	descLen := binary.BigEndian.Uint32(body[42:46])
	if descLen > MaxDescriptionLen {
		return tx, errors.InvalidBinaryErr("description length %d exceeds maximum allowed %d", descLen, MaxDescriptionLen)
	}
	if f.StrictRecordSize && uint64(recordSize) != uint64(MinRecordSize)+uint64(descLen) {
		return tx, errors.InvalidBinaryErr("record size %d does not match encoded length %d", recordSize, MinRecordSize+descLen)
	}

	desc := make([]byte, descLen)
	if err := readFull(r, desc); err != nil {
		return tx, err
	}
	if !utf8.Valid(desc) {
		return tx, errors.InvalidBinaryErr("description is not valid UTF-8")
	}

	tx = models.Transaction{
		ID:          binary.BigEndian.Uint64(body[0:8]),
		Kind:        kind,
		FromAccount: int64(binary.BigEndian.Uint64(body[9:17])),
		ToAccount:   int64(binary.BigEndian.Uint64(body[17:25])),
		Amount:      int64(binary.BigEndian.Uint64(body[25:33])),
		Timestamp:   int64(binary.BigEndian.Uint64(body[33:41])),
		Status:      status,
		Description: string(desc),
	}
	return tx, nil
}

// readFull reads inside a record, where running out of input is never a clean end.
func readFull(r io.Reader, buf []byte) error {
	_, err := io.ReadFull(r, buf)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return errors.IOErr(err)
	}
	return nil
}

func (f *BinaryFormat) WriteAll(w io.Writer, txs []models.Transaction) error {
	var buf []byte
	for _, tx := range txs {
		var err error
		buf, err = appendRecord(buf[:0], tx)
		if err != nil {
			return err
		}
		if _, err := w.Write(buf); err != nil {
			return errors.IOErr(err)
		}
	}
	return nil
}

func appendRecord(buf []byte, tx models.Transaction) ([]byte, error) {
	if len(tx.Description) > MaxDescriptionLen {
		return nil, errors.UnrepresentableErr("transaction %d: description length %d exceeds maximum allowed %d",
			tx.ID, len(tx.Description), MaxDescriptionLen)
	}
	if !utf8.ValidString(tx.Description) {
		return nil, errors.UnrepresentableErr("transaction %d: description is not valid UTF-8", tx.ID)
	}
	if _, err := tx.Kind.MarshalText(); err != nil {
		return nil, errors.UnrepresentableErr("transaction %d: %v", tx.ID, err)
	}
	if _, err := tx.Status.MarshalText(); err != nil {
		return nil, errors.UnrepresentableErr("transaction %d: %v", tx.ID, err)
	}

	descLen := uint32(len(tx.Description))
	buf = append(buf, Magic[:]...)
	buf = binary.BigEndian.AppendUint32(buf, MinRecordSize+descLen)
	buf = binary.BigEndian.AppendUint64(buf, tx.ID)
	buf = append(buf, byte(tx.Kind))
	buf = binary.BigEndian.AppendUint64(buf, uint64(tx.FromAccount))
	buf = binary.BigEndian.AppendUint64(buf, uint64(tx.ToAccount))
	buf = binary.BigEndian.AppendUint64(buf, uint64(tx.Amount))
	buf = binary.BigEndian.AppendUint64(buf, uint64(tx.Timestamp))
	buf = append(buf, byte(tx.Status))
	buf = binary.BigEndian.AppendUint32(buf, descLen)
	buf = append(buf, tx.Description...)
	return buf, nil
}
