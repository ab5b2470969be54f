package helpers

import (
	// Go Internal Packages
	"encoding/json"
	"fmt"
	"io"
	"os"

	// External Packages
	"github.com/google/uuid"
	_ "github.com/jsternberg/zap-logfmt"
	"go.uber.org/zap"
)

// PrintStruct prints a givens struct in pretty format with indent
func PrintStruct(w io.Writer, v any) {
	res, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(res))
}

// NewLogger builds the logfmt production logger. It writes to stderr so that
// stdout stays free for converted data and reports.
func NewLogger(level, service string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = service
	cfg.InitialFields["run_id"] = uuid.NewString()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
