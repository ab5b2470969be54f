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
	txpsr "ypbank/services/processors"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"
)

var (
	configPath   = kingpin.Flag("config", "Path to the application config file").Short('c').Default("config.yml").String()
	inputPath    = kingpin.Flag("input", "Transaction file to convert").Short('i').Required().ExistingFile()
	inputFormat  = kingpin.Flag("input-format", "Format of the input file").Required().Enum(formats.Names()...)
	outputFormat = kingpin.Flag("output-format", "Format to write").Required().Enum(formats.Names()...)
	outputPath   = kingpin.Flag("output", "Output file, stdout when empty").Short('o').String()
)

// LoadConfig parses the flags, then loads the defaults overridden by the config
// file specified by the path defined in the config flag and the environment
func LoadConfig() config.Config {
	kingpin.CommandLine.Name = "ypbank-converter"
	kingpin.CommandLine.Help = "Convert bank transaction records between csv, txt and binary formats."
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

func main() {
	appKonf := LoadConfig()

	logger, err := helpers.NewLogger(appKonf.Logger.Level, appKonf.Application+"-converter")
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if !appKonf.IsProdMode {
		helpers.PrintStruct(os.Stderr, appKonf)
	}

	from, err := formats.ParseName(*inputFormat)
	if err != nil {
		logger.Fatal("invalid input format", zap.Error(err))
	}
	to, err := formats.ParseName(*outputFormat)
	if err != nil {
		logger.Fatal("invalid output format", zap.Error(err))
	}
	if from == to {
		logger.Fatal("input and output formats can not be the same", zap.String("format", string(from)))
	}

	input, err := os.Open(*inputPath)
	if err != nil {
		logger.Fatal("cannot open input", zap.String("path", *inputPath), zap.Error(err))
	}
	defer input.Close()

	outLabel := "stdout"
	out := os.Stdout
	if *outputPath != "" {
		outLabel = *outputPath
		out, err = os.Create(*outputPath)
		if err != nil {
			logger.Fatal("cannot create output", zap.String("path", *outputPath), zap.Error(err))
		}
	}
	bw := bufio.NewWriter(out)

	m := metrics.NewMetrics(appKonf.Metrics.Namespace)
	opts := formats.Options{StrictRecordSize: appKonf.Formats.Binary.StrictRecordSize}
	txProcessor := txpsr.NewTxProcessor(logger, m, opts)

	err = txProcessor.Convert(
		txpsr.Source{Label: *inputPath, Format: from, Reader: bufio.NewReader(input)},
		txpsr.Sink{Label: outLabel, Format: to, Writer: bw},
	)
	if err == nil {
		err = bw.Flush()
	}
	if out != os.Stdout {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}

	if path := appKonf.Metrics.Textfile; path != "" {
		if mErr := m.WriteToTextfile(path); mErr != nil {
			logger.Error("cannot write metrics", zap.String("path", path), zap.Error(mErr))
		}
	}

	if err != nil {
		logger.Fatal("conversion failed", zap.Error(err))
	}
}
