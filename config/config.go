package config

import (
	// Go Internal Packages
	"os"
	"strings"

	// Local Packages
	errors "ypbank/errors"

	// External Packages
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix marks environment overrides, e.g. YPBANK_LOGGER__LEVEL=debug.
const EnvPrefix = "YPBANK_"

var DefaultConfig = []byte(`
application: "ypbank"

logger:
  level: "info"

is_prod_mode: false

formats:
  binary:
    strict_record_size: false

report:
  minor_units: 2

metrics:
  namespace: "ypbank"
  textfile: ""
`)

type Config struct {
	Application string  `koanf:"application"`
	Logger      Logger  `koanf:"logger"`
	IsProdMode  bool    `koanf:"is_prod_mode"`
	Formats     Formats `koanf:"formats"`
	Report      Report  `koanf:"report"`
	Metrics     Metrics `koanf:"metrics"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Formats struct {
	Binary Binary `koanf:"binary"`
}

type Binary struct {
	StrictRecordSize bool `koanf:"strict_record_size"`
}

type Report struct {
	MinorUnits int32 `koanf:"minor_units"`
}

type Metrics struct {
	Namespace string `koanf:"namespace"`
	Textfile  string `koanf:"textfile"`
}

// Load layers the defaults, the config file at path (skipped when empty or
// missing) and YPBANK_ environment variables, in that order.
func Load(path string) (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(DefaultConfig), yaml.Parser()); err != nil {
		return nil, err
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.E(errors.Invalid, "loading config file "+path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, errors.E(errors.Invalid, "loading config file "+path, err)
		}
	}

	envKey := func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, err
	}
	return k, nil
}

// Parse unmarshals k and validates the result.
func Parse(k *koanf.Koanf) (Config, error) {
	var c Config
	if err := k.Unmarshal("", &c); err != nil {
		return c, errors.E(errors.Invalid, "decoding config", err)
	}
	if err := c.Validate(); err != nil {
		return c, errors.ValidationFailedErr(err)
	}
	return c, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	} else if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		ve.Add("logger.level", "unknown level "+c.Logger.Level)
	}
	if c.Report.MinorUnits < 0 || c.Report.MinorUnits > 18 {
		ve.Add("report.minor_units", "must be between 0 and 18")
	}
	if c.Metrics.Namespace == "" {
		ve.Add("metrics.namespace", "cannot be empty")
	}

	return ve.Err()
}
