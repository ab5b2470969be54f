// Package report renders comparison results for people.
package report

import (
	// Go Internal Packages
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	// Local Packages
	models "ypbank/models"
	txsvc "ypbank/services/transactions"

	// External Packages
	"github.com/shopspring/decimal"
)

// Printer writes a CompareResult as plain text. Amounts are shown in major
// units using MinorUnits decimal places.
type Printer struct {
	W          io.Writer
	MinorUnits int32
}

func NewPrinter(w io.Writer, minorUnits int32) *Printer {
	return &Printer{W: w, MinorUnits: minorUnits}
}

// Print writes one line per finding, or a single line when the sides are
// identical. nameA and nameB label the two sides. res should be sorted.
func (p *Printer) Print(res *txsvc.CompareResult, nameA, nameB string) error {
	var b strings.Builder
	if res.Identical() {
		fmt.Fprintf(&b, "The transaction records in '%s' and '%s' are identical.\n", nameA, nameB)
		_, err := io.WriteString(p.W, b.String())
		return err
	}

	for _, id := range res.MissingInA {
		fmt.Fprintf(&b, "Transaction %d is missing in '%s'\n", id, nameA)
	}
	for _, id := range res.MissingInB {
		fmt.Fprintf(&b, "Transaction %d is missing in '%s'\n", id, nameB)
	}
	for _, d := range res.Differing {
		fmt.Fprintf(&b, "Transaction %d differs between '%s' and '%s':\n", d.ID, nameA, nameB)
		fmt.Fprintf(&b, "  fields: %s\n", strings.Join(models.Diff(d.A, d.B), ", "))
		fmt.Fprintf(&b, "  %s: %s\n", nameA, p.Format(d.A))
		fmt.Fprintf(&b, "  %s: %s\n", nameB, p.Format(d.B))
	}
	fmt.Fprintf(&b, "Summary: %d missing in '%s', %d missing in '%s', %d differing\n",
		len(res.MissingInA), nameA, len(res.MissingInB), nameB, len(res.Differing))

	_, err := io.WriteString(p.W, b.String())
	return err
}

// Format renders a transaction on one line.
func (p *Printer) Format(tx models.Transaction) string {
	return fmt.Sprintf("{tx_id: %d, tx_type: %s, from_user_id: %d, to_user_id: %d, amount: %s, timestamp: %s, status: %s, description: %s}",
		tx.ID, tx.Kind, tx.FromAccount, tx.ToAccount,
		p.Amount(tx.Amount),
		tx.Time().Format(time.RFC3339Nano),
		tx.Status,
		strconv.Quote(tx.Description))
}

// Amount converts minor units to a fixed-point major-unit string.
func (p *Printer) Amount(minor int64) string {
	return decimal.New(minor, -p.MinorUnits).StringFixed(p.MinorUnits)
}
