package models

import (
	// Go Internal Packages
	"fmt"
	"time"
)

// TxID uniquely identifies a transaction within one record set.
type TxID = uint64

type TxKind uint8

const (
	TxDeposit TxKind = iota
	TxTransfer
	TxWithdrawal
)

type Status uint8

const (
	StatusSuccess Status = iota
	StatusFailure
	StatusPending
)

// Transaction is one ledger event. It is a plain comparable value: two
// transactions are equal when all eight fields are equal.
type Transaction struct {
	ID          TxID   `json:"tx_id"`
	Kind        TxKind `json:"tx_type"`
	FromAccount int64  `json:"from_user_id"` // 0 for system deposits
	ToAccount   int64  `json:"to_user_id"`   // 0 for system withdrawals
	Amount      int64  `json:"amount"`       // smallest currency unit
	Timestamp   int64  `json:"timestamp"`    // milliseconds since epoch
	Status      Status `json:"status"`
	Description string `json:"description"`
}

// Time returns the timestamp as a UTC time.
func (t Transaction) Time() time.Time {
	return time.UnixMilli(t.Timestamp).UTC()
}

func (k TxKind) String() string {
	switch k {
	case TxDeposit:
		return "DEPOSIT"
	case TxTransfer:
		return "TRANSFER"
	case TxWithdrawal:
		return "WITHDRAWAL"
	}
	return fmt.Sprintf("TxKind(%d)", uint8(k))
}

// ParseTxKind maps a canonical token to a kind. Tokens are case-sensitive.
func ParseTxKind(s string) (TxKind, error) {
	switch s {
	case "DEPOSIT":
		return TxDeposit, nil
	case "TRANSFER":
		return TxTransfer, nil
	case "WITHDRAWAL":
		return TxWithdrawal, nil
	}
	return 0, fmt.Errorf("unknown tx_type: %s", s)
}

// TxKindFromByte maps a wire byte code to a kind.
func TxKindFromByte(b byte) (TxKind, error) {
	if b > byte(TxWithdrawal) {
		return 0, fmt.Errorf("unknown tx_type byte: %d", b)
	}
	return TxKind(b), nil
}

func (k TxKind) MarshalText() ([]byte, error) {
	if k > TxWithdrawal {
		return nil, fmt.Errorf("unknown tx_type byte: %d", uint8(k))
	}
	return []byte(k.String()), nil
}

func (k *TxKind) UnmarshalText(text []byte) error {
	v, err := ParseTxKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusFailure:
		return "FAILURE"
	case StatusPending:
		return "PENDING"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// ParseStatus maps a canonical token to a status. Tokens are case-sensitive.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "SUCCESS":
		return StatusSuccess, nil
	case "FAILURE":
		return StatusFailure, nil
	case "PENDING":
		return StatusPending, nil
	}
	return 0, fmt.Errorf("unknown status: %s", s)
}

// StatusFromByte maps a wire byte code to a status.
func StatusFromByte(b byte) (Status, error) {
	if b > byte(StatusPending) {
		return 0, fmt.Errorf("unknown status byte: %d", b)
	}
	return Status(b), nil
}

func (s Status) MarshalText() ([]byte, error) {
	if s > StatusPending {
		return nil, fmt.Errorf("unknown status byte: %d", uint8(s))
	}
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Diff returns the JSON names of the fields that differ between a and b, in
// declaration order. It is empty when a == b.
func Diff(a, b Transaction) []string {
	var fields []string
	if a.ID != b.ID {
		fields = append(fields, "tx_id")
	}
	if a.Kind != b.Kind {
		fields = append(fields, "tx_type")
	}
	if a.FromAccount != b.FromAccount {
		fields = append(fields, "from_user_id")
	}
	if a.ToAccount != b.ToAccount {
		fields = append(fields, "to_user_id")
	}
	if a.Amount != b.Amount {
		fields = append(fields, "amount")
	}
	if a.Timestamp != b.Timestamp {
		fields = append(fields, "timestamp")
	}
	if a.Status != b.Status {
		fields = append(fields, "status")
	}
	if a.Description != b.Description {
		fields = append(fields, "description")
	}
	return fields
}
