package models_test

import (
	// Go Internal Packages
	"encoding/json"
	"testing"

	// Local Packages
	models "ypbank/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxKindTokens(t *testing.T) {
	for code, token := range []string{"DEPOSIT", "TRANSFER", "WITHDRAWAL"} {
		kind, err := models.ParseTxKind(token)
		require.NoError(t, err)
		assert.Equal(t, token, kind.String())

		fromByte, err := models.TxKindFromByte(byte(code))
		require.NoError(t, err)
		assert.Equal(t, kind, fromByte)
	}
}

func TestStatusTokens(t *testing.T) {
	for code, token := range []string{"SUCCESS", "FAILURE", "PENDING"} {
		status, err := models.ParseStatus(token)
		require.NoError(t, err)
		assert.Equal(t, token, status.String())

		fromByte, err := models.StatusFromByte(byte(code))
		require.NoError(t, err)
		assert.Equal(t, status, fromByte)
	}
}

func TestUnknownTokensAreRejected(t *testing.T) {
	_, err := models.ParseTxKind("deposit")
	assert.EqualError(t, err, "unknown tx_type: deposit")

	_, err = models.ParseTxKind("")
	assert.EqualError(t, err, "unknown tx_type: ")

	_, err = models.ParseStatus("DONE")
	assert.EqualError(t, err, "unknown status: DONE")

	_, err = models.TxKindFromByte(3)
	assert.EqualError(t, err, "unknown tx_type byte: 3")

	_, err = models.StatusFromByte(255)
	assert.EqualError(t, err, "unknown status byte: 255")
}

func TestTransactionJSON(t *testing.T) {
	tx := models.Transaction{
		ID:          7,
		Kind:        models.TxWithdrawal,
		FromAccount: 12,
		Amount:      250,
		Timestamp:   1700000000000,
		Status:      models.StatusPending,
		Description: "atm",
	}

	data, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tx_id":7,"tx_type":"WITHDRAWAL","from_user_id":12,"to_user_id":0,
		"amount":250,"timestamp":1700000000000,"status":"PENDING","description":"atm"}`, string(data))

	var back models.Transaction
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, tx, back)

	assert.Error(t, json.Unmarshal([]byte(`{"tx_type":"REFUND"}`), &back))
}

func TestTime(t *testing.T) {
	tx := models.Transaction{Timestamp: 1234567890}
	assert.Equal(t, "1970-01-15T06:56:07.89Z", tx.Time().Format("2006-01-02T15:04:05.999Z07:00"))
}

func TestDiff(t *testing.T) {
	a := models.Transaction{ID: 1, Kind: models.TxDeposit, ToAccount: 42, Amount: 1000, Description: "test"}

	assert.Empty(t, models.Diff(a, a))

	b := a
	b.Amount = 9999
	b.Description = "other"
	assert.Equal(t, []string{"amount", "description"}, models.Diff(a, b))
}
