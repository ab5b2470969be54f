package processors

import (
	// Go Internal Packages
	"fmt"
	"io"
	"time"

	// Local Packages
	errors "ypbank/errors"
	formats "ypbank/formats"
	metrics "ypbank/metrics"
	models "ypbank/models"
	txsvc "ypbank/services/transactions"
	utils "ypbank/utils"

	// External Packages
	"go.uber.org/zap"
)

// maxLoggedIDs bounds how many ids a single log line carries.
const maxLoggedIDs = 20

// Source is one side of an operation: a stream and the format it is in.
// Label names the stream in logs, usually the file path.
type Source struct {
	Label  string
	Format formats.Name
	Reader io.Reader
}

// Sink is the destination of a conversion.
type Sink struct {
	Label  string
	Format formats.Name
	Writer io.Writer
}

func (s Source) validate() error {
	if s.Format == "" {
		return errors.EmptyParamErr("format")
	}
	if s.Reader == nil {
		return errors.EmptyParamErr("reader")
	}
	return nil
}

func (s Sink) validate() error {
	if s.Format == "" {
		return errors.EmptyParamErr("format")
	}
	if s.Writer == nil {
		return errors.EmptyParamErr("writer")
	}
	return nil
}

// TxProcessor runs conversions and comparisons with logging and metrics
// around the format-agnostic core.
type TxProcessor struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Options formats.Options
}

func NewTxProcessor(logger *zap.Logger, m *metrics.Metrics, opts formats.Options) *TxProcessor {
	return &TxProcessor{Logger: logger, Metrics: m, Options: opts}
}

// Convert transcodes src into dst.
func (p *TxProcessor) Convert(src Source, dst Sink) error {
	if err := src.validate(); err != nil {
		return err
	}
	if err := dst.validate(); err != nil {
		return err
	}

	from, err := p.format(src.Format, src.Label)
	if err != nil {
		return err
	}
	to, err := p.format(dst.Format, dst.Label)
	if err != nil {
		return err
	}

	start := time.Now()
	p.Logger.Info("converting transactions",
		zap.String("input", src.Label), zap.String("from", string(src.Format)),
		zap.String("output", dst.Label), zap.String("to", string(dst.Format)))

	if err := txsvc.Convert(from, src.Reader, to, dst.Writer); err != nil {
		return fmt.Errorf("converting %s: %w", src.Label, err)
	}

	p.Logger.Info("conversion finished", zap.Duration("duration", time.Since(start)))
	return nil
}

// Compare reconciles a against b. The result is sorted by id.
func (p *TxProcessor) Compare(a, b Source) (*txsvc.CompareResult, error) {
	for _, src := range []Source{a, b} {
		if err := src.validate(); err != nil {
			return nil, err
		}
	}

	fa, err := p.format(a.Format, a.Label)
	if err != nil {
		return nil, err
	}
	fb, err := p.format(b.Format, b.Label)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	p.Logger.Info("comparing transactions",
		zap.String("file_a", a.Label), zap.String("format_a", string(a.Format)),
		zap.String("file_b", b.Label), zap.String("format_b", string(b.Format)))

	// Reading through the core keeps its fail-fast order: A is read before B.
	res, err := txsvc.Compare(fa, a.Reader, fb, b.Reader)
	if err != nil {
		return nil, fmt.Errorf("comparing %s with %s: %w", a.Label, b.Label, err)
	}
	res.Sort()

	if res.Identical() {
		p.Metrics.Comparisons.WithLabelValues("identical").Inc()
		p.Logger.Info("transaction sets are identical", zap.Duration("duration", time.Since(start)))
		return res, nil
	}

	p.Metrics.Comparisons.WithLabelValues("mismatch").Inc()
	p.Metrics.Discrepancies.WithLabelValues("missing_in_a").Add(float64(len(res.MissingInA)))
	p.Metrics.Discrepancies.WithLabelValues("missing_in_b").Add(float64(len(res.MissingInB)))
	p.Metrics.Discrepancies.WithLabelValues("differing").Add(float64(len(res.Differing)))

	differing := make([]models.TxID, 0, len(res.Differing))
	for _, d := range res.Differing {
		differing = append(differing, d.ID)
	}
	p.Logger.Warn("transaction sets differ",
		zap.Int("missing_in_a", len(res.MissingInA)),
		zap.Int("missing_in_b", len(res.MissingInB)),
		zap.Int("differing", len(res.Differing)),
		zap.String("missing_in_a_ids", utils.JoinUint64Slice(res.MissingInA, maxLoggedIDs)),
		zap.String("missing_in_b_ids", utils.JoinUint64Slice(res.MissingInB, maxLoggedIDs)),
		zap.String("differing_ids", utils.JoinUint64Slice(differing, maxLoggedIDs)),
		zap.Duration("duration", time.Since(start)))
	return res, nil
}

func (p *TxProcessor) format(name formats.Name, label string) (formats.Format, error) {
	f, err := formats.New(name, p.Options)
	if err != nil {
		return nil, err
	}
	return &instrumentedFormat{Format: f, name: name, label: label, p: p}, nil
}

// instrumentedFormat records metrics and logs for every ReadAll and WriteAll.
type instrumentedFormat struct {
	formats.Format
	name  formats.Name
	label string
	p     *TxProcessor
}

func (f *instrumentedFormat) ReadAll(r io.Reader) ([]models.Transaction, error) {
	start := time.Now()
	txs, err := f.Format.ReadAll(r)
	f.observe("read", start, len(txs), err)
	if err != nil {
		return nil, err
	}

	f.p.Metrics.RecordsRead.WithLabelValues(string(f.name)).Add(float64(len(txs)))
	if dups := txsvc.Duplicates(txs); len(dups) > 0 {
		f.p.Metrics.DuplicateIDs.WithLabelValues(f.label).Add(float64(len(dups)))
		f.p.Logger.Warn("duplicate transaction ids, the last record of each wins",
			zap.String("file", f.label),
			zap.Int("count", len(dups)),
			zap.String("ids", utils.JoinUint64Slice(dups, maxLoggedIDs)))
	}
	return txs, nil
}

func (f *instrumentedFormat) WriteAll(w io.Writer, txs []models.Transaction) error {
	start := time.Now()
	err := f.Format.WriteAll(w, txs)
	f.observe("write", start, len(txs), err)
	if err != nil {
		return err
	}

	f.p.Metrics.RecordsWritten.WithLabelValues(string(f.name)).Add(float64(len(txs)))
	return nil
}

func (f *instrumentedFormat) observe(op string, start time.Time, records int, err error) {
	f.p.Metrics.CodecDuration.WithLabelValues(string(f.name), op).Observe(time.Since(start).Seconds())
	if err != nil {
		kind := errors.KindOf(err).String()
		if kind == "" {
			kind = "other"
		}
		f.p.Metrics.CodecErrors.WithLabelValues(string(f.name), op, kind).Inc()
		f.p.Logger.Error("codec failed",
			zap.String("file", f.label), zap.String("format", string(f.name)),
			zap.String("op", op), zap.Error(err))
		return
	}
	f.p.Logger.Debug("codec done",
		zap.String("file", f.label), zap.String("format", string(f.name)),
		zap.String("op", op), zap.Int("records", records))
}
