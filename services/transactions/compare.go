package transactions

import (
	// Go Internal Packages
	"io"
	"slices"

	// Local Packages
	formats "ypbank/formats"
	models "ypbank/models"
)

// Difference is an id present on both sides with unequal records.
type Difference struct {
	ID models.TxID
	A  models.Transaction
	B  models.Transaction
}

// CompareResult lists every discrepancy between side A and side B. The order
// of each slice is unspecified until Sort is called.
type CompareResult struct {
	MissingInA []models.TxID // present in B only
	MissingInB []models.TxID // present in A only
	Differing  []Difference
}

// Identical reports whether the two sides hold the same records.
func (r *CompareResult) Identical() bool {
	return len(r.MissingInA) == 0 && len(r.MissingInB) == 0 && len(r.Differing) == 0
}

// Sort orders every collection by id.
func (r *CompareResult) Sort() {
	slices.Sort(r.MissingInA)
	slices.Sort(r.MissingInB)
	slices.SortFunc(r.Differing, func(x, y Difference) int {
		switch {
		case x.ID < y.ID:
			return -1
		case x.ID > y.ID:
			return 1
		}
		return 0
	})
}

// Compare reads both sides in full, A first, and reconciles them. The two
// formats may differ.
func Compare(fa formats.Format, ra io.Reader, fb formats.Format, rb io.Reader) (*CompareResult, error) {
	a, err := fa.ReadAll(ra)
	if err != nil {
		return nil, err
	}
	b, err := fb.ReadAll(rb)
	if err != nil {
		return nil, err
	}
	return Reconcile(a, b), nil
}

// Reconcile matches a and b by id. When an id repeats within one side the
// last record wins.
func Reconcile(a, b []models.Transaction) *CompareResult {
	byIDA := index(a)
	byIDB := index(b)

	res := &CompareResult{}
	for id, txA := range byIDA {
		txB, ok := byIDB[id]
		if !ok {
			res.MissingInB = append(res.MissingInB, id)
			continue
		}
		if txA != txB {
			res.Differing = append(res.Differing, Difference{ID: id, A: txA, B: txB})
		}
	}
	for id := range byIDB {
		if _, ok := byIDA[id]; !ok {
			res.MissingInA = append(res.MissingInA, id)
		}
	}
	return res
}

func index(txs []models.Transaction) map[models.TxID]models.Transaction {
	m := make(map[models.TxID]models.Transaction, len(txs))
	for _, tx := range txs {
		m[tx.ID] = tx
	}
	return m
}

// Duplicates returns, in first-seen order, the ids that occur more than once
// in txs. Reconcile keeps only the last of them.
func Duplicates(txs []models.Transaction) []models.TxID {
	seen := make(map[models.TxID]int, len(txs))
	var dups []models.TxID
	for _, tx := range txs {
		seen[tx.ID]++
		if seen[tx.ID] == 2 {
			dups = append(dups, tx.ID)
		}
	}
	return dups
}
