package report_test

import (
	// Go Internal Packages
	"bytes"
	"testing"

	// Local Packages
	models "ypbank/models"
	report "ypbank/report"
	txsvc "ypbank/services/transactions"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintIdentical(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.NewPrinter(&buf, 2).Print(&txsvc.CompareResult{}, "a.csv", "b.bin"))
	assert.Equal(t, "The transaction records in 'a.csv' and 'b.bin' are identical.\n", buf.String())
}

func TestPrintMismatch(t *testing.T) {
	a := models.Transaction{ID: 1, Kind: models.TxDeposit, ToAccount: 42, Amount: 1000, Timestamp: 1234567890, Status: models.StatusSuccess, Description: "test"}
	b := a
	b.Amount = 9999

	res := &txsvc.CompareResult{
		MissingInA: []models.TxID{4},
		MissingInB: []models.TxID{2, 3},
		Differing:  []txsvc.Difference{{ID: 1, A: a, B: b}},
	}

	var buf bytes.Buffer
	require.NoError(t, report.NewPrinter(&buf, 2).Print(res, "a.csv", "b.txt"))

	want := "Transaction 4 is missing in 'a.csv'\n" +
		"Transaction 2 is missing in 'b.txt'\n" +
		"Transaction 3 is missing in 'b.txt'\n" +
		"Transaction 1 differs between 'a.csv' and 'b.txt':\n" +
		"  fields: amount\n" +
		"  a.csv: {tx_id: 1, tx_type: DEPOSIT, from_user_id: 0, to_user_id: 42, amount: 10.00, timestamp: 1970-01-15T06:56:07.89Z, status: SUCCESS, description: \"test\"}\n" +
		"  b.txt: {tx_id: 1, tx_type: DEPOSIT, from_user_id: 0, to_user_id: 42, amount: 99.99, timestamp: 1970-01-15T06:56:07.89Z, status: SUCCESS, description: \"test\"}\n" +
		"Summary: 1 missing in 'a.csv', 2 missing in 'b.txt', 1 differing\n"
	assert.Equal(t, want, buf.String())
}

func TestAmount(t *testing.T) {
	cases := []struct {
		minor int64
		units int32
		want  string
	}{
		{1000, 2, "10.00"},
		{-75, 2, "-0.75"},
		{5, 0, "5"},
		{123456, 3, "123.456"},
		{-9223372036854775808, 2, "-92233720368547758.08"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, report.NewPrinter(nil, c.units).Amount(c.minor))
	}
}
