package formats_test

import (
	// Go Internal Packages
	"bytes"
	"strings"
	"testing"

	// Local Packages
	errors "ypbank/errors"
	formats "ypbank/formats"
	models "ypbank/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeaderLine = "id,kind,fromAccount,toAccount,amount,timestamp,status,description\n"

func TestCSVExample(t *testing.T) {
	var buf bytes.Buffer
	f := &formats.CSVFormat{}
	require.NoError(t, f.WriteAll(&buf, []models.Transaction{exampleTx()}))

	want := csvHeaderLine + "1,DEPOSIT,0,42,1000,1234567890,SUCCESS,test\n"
	assert.Equal(t, want, buf.String())

	got, err := f.ReadAll(strings.NewReader(want))
	require.NoError(t, err)
	assert.Equal(t, []models.Transaction{exampleTx()}, got)
}

func TestCSVHeaderNamesAreNotInterpreted(t *testing.T) {
	in := "tx_id,tx_type,from_user_id,to_user_id,amount,timestamp,status,description\n" +
		"1,DEPOSIT,0,42,1000,1234567890,SUCCESS,test\n"

	got, err := (&formats.CSVFormat{}).ReadAll(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []models.Transaction{exampleTx()}, got)
}

func TestCSVHeaderOnly(t *testing.T) {
	got, err := (&formats.CSVFormat{}).ReadAll(strings.NewReader(csvHeaderLine))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCSVQuotedDescription(t *testing.T) {
	tx := exampleTx()
	tx.Description = "a, \"b\"\nc"

	var buf bytes.Buffer
	f := &formats.CSVFormat{}
	require.NoError(t, f.WriteAll(&buf, []models.Transaction{tx}))
	assert.Contains(t, buf.String(), `"a, ""b""`)

	got, err := f.ReadAll(&buf)
	require.NoError(t, err)
	assert.Equal(t, []models.Transaction{tx}, got)
}

func TestCSVMalformedRows(t *testing.T) {
	cases := []struct {
		name string
		row  string
		want string
	}{
		{"bad id", "x,DEPOSIT,0,42,1000,1234567890,SUCCESS,test", "line 2: invalid id"},
		{"negative id", "-1,DEPOSIT,0,42,1000,1234567890,SUCCESS,test", "invalid id"},
		{"unknown kind", "1,REFUND,0,42,1000,1234567890,SUCCESS,test", "unknown tx_type: REFUND"},
		{"lowercase kind", "1,deposit,0,42,1000,1234567890,SUCCESS,test", "unknown tx_type: deposit"},
		{"bad from", "1,DEPOSIT,a,42,1000,1234567890,SUCCESS,test", "invalid fromAccount"},
		{"bad to", "1,DEPOSIT,0,b,1000,1234567890,SUCCESS,test", "invalid toAccount"},
		{"bad amount", "1,DEPOSIT,0,42,10.5,1234567890,SUCCESS,test", "invalid amount"},
		{"bad timestamp", "1,DEPOSIT,0,42,1000,now,SUCCESS,test", "invalid timestamp"},
		{"unknown status", "1,DEPOSIT,0,42,1000,1234567890,DONE,test", "unknown status: DONE"},
		{"too few columns", "1,DEPOSIT,0,42,1000,1234567890,SUCCESS", "wrong number of fields"},
		{"too many columns", "1,DEPOSIT,0,42,1000,1234567890,SUCCESS,test,extra", "wrong number of fields"},
		{"description not utf-8", "1,DEPOSIT,0,42,1000,1234567890,SUCCESS,bad\xff", "line 2: invalid description: not valid UTF-8"},
		{"bare quote", `1,DEPOSIT,0,42,1000,1234567890,SUCCESS,te"st`, "bare \""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := (&formats.CSVFormat{}).ReadAll(strings.NewReader(csvHeaderLine + c.row + "\n"))
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errors.Is(errors.Malformed, err), "got %v", err)
			assert.Contains(t, err.Error(), c.want)
		})
	}
}

func TestCSVStopsAtFirstBadRow(t *testing.T) {
	in := csvHeaderLine +
		"1,DEPOSIT,0,42,1000,1234567890,SUCCESS,test\n" +
		"2,TRANSFER,10,20,x,1234567891,PENDING,second\n" +
		"3,TRANSFER,10,20,y,1234567891,PENDING,third\n"

	_, err := (&formats.CSVFormat{}).ReadAll(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3: invalid amount")
}

func TestCSVReaderFailureIsIOError(t *testing.T) {
	_, err := (&formats.CSVFormat{}).ReadAll(&failingReader{data: []byte(csvHeaderLine)})
	assert.True(t, errors.Is(errors.IO, err), "got %v", err)
}

func TestCSVEncodeRejectsCRLF(t *testing.T) {
	tx := exampleTx()
	tx.Description = "a\r\nb"

	err := (&formats.CSVFormat{}).WriteAll(&bytes.Buffer{}, []models.Transaction{tx})
	assert.True(t, errors.Is(errors.Invalid, err))
}

// failingReader returns data once, then fails.
type failingReader struct {
	data []byte
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, assert.AnError
	}
	r.done = true
	return copy(p, r.data), nil
}
