package main

import (
	// Go Internal Packages
	"bufio"
	"log"
	"os"

	// Local Packages
	config "ypbank/config"
	formats "ypbank/formats"
	helpers "ypbank/helpers"
	metrics "ypbank/metrics"
	report "ypbank/report"
	txpsr "ypbank/services/processors"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
)

var (
	configPath     = kingpin.Flag("config", "Path to the application config file").Short('c').Default("config.yml").String()
	file1          = kingpin.Flag("file1", "First transaction file").Required().ExistingFile()
	format1        = kingpin.Flag("format1", "Format of the first file").Required().Enum(formats.Names()...)
	file2          = kingpin.Flag("file2", "Second transaction file").Required().ExistingFile()
	format2        = kingpin.Flag("format2", "Format of the second file").Required().Enum(formats.Names()...)
	failOnMismatch = kingpin.Flag("fail-on-mismatch", "Exit with status 1 when the files differ").Bool()
)

// LoadConfig parses the flags, then loads the defaults overridden by the config
// file specified by the path defined in the config flag and the environment
func LoadConfig() config.Config {
	kingpin.CommandLine.Name = "ypbank-comparer"
	kingpin.CommandLine.Help = "Reconcile two bank transaction files, possibly in different formats."
	kingpin.Parse()

	k, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	appKonf, err := config.Parse(k)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return appKonf
}

// openSource opens path for reading in the named format.
func openSource(path, format string) (txpsr.Source, *os.File, error) {
	name, err := formats.ParseName(format)
	if err != nil {
		return txpsr.Source{}, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return txpsr.Source{}, nil, err
	}
	return txpsr.Source{Label: path, Format: name, Reader: bufio.NewReader(f)}, f, nil
}

func main() {
	appKonf := LoadConfig()

	logger, err := helpers.NewLogger(appKonf.Logger.Level, appKonf.Application+"-comparer")
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if !appKonf.IsProdMode {
		helpers.PrintStruct(os.Stderr, appKonf)
	}

	srcA, fileA, err := openSource(*file1, *format1)
	if err != nil {
		logger.Fatal("cannot open first file", zap.String("path", *file1), zap.Error(err))
	}
	defer fileA.Close()

	srcB, fileB, err := openSource(*file2, *format2)
	if err != nil {
		logger.Fatal("cannot open second file", zap.String("path", *file2), zap.Error(err))
	}
	defer fileB.Close()

	m := metrics.NewMetrics(appKonf.Metrics.Namespace)
	opts := formats.Options{StrictRecordSize: appKonf.Formats.Binary.StrictRecordSize}
	txProcessor := txpsr.NewTxProcessor(logger, m, opts)

	res, err := txProcessor.Compare(srcA, srcB)

	if path := appKonf.Metrics.Textfile; path != "" {
		if mErr := m.WriteToTextfile(path); mErr != nil {
			logger.Error("cannot write metrics", zap.String("path", path), zap.Error(mErr))
		}
	}
	if err != nil {
		logger.Fatal("comparison failed", zap.Error(err))
	}

	printer := report.NewPrinter(os.Stdout, appKonf.Report.MinorUnits)
	if err := printer.Print(res, *file1, *file2); err != nil {
		logger.Fatal("cannot print report", zap.Error(err))
	}

	if *failOnMismatch && !res.Identical() {
		_ = logger.Sync()
		os.Exit(1)
	}
}
