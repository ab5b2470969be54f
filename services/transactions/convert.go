// Package transactions holds the format-agnostic operations over transaction
// sets: transcoding between formats and reconciling two sets by id.
package transactions

import (
	// Go Internal Packages
	"io"

	// Local Packages
	formats "ypbank/formats"
)

// Convert reads every record from r with from, then writes them unchanged and
// in the same order to w with to. Nothing is written if reading fails.
func Convert(from formats.Format, r io.Reader, to formats.Format, w io.Writer) error {
	txs, err := from.ReadAll(r)
	if err != nil {
		return err
	}
	return to.WriteAll(w, txs)
}
