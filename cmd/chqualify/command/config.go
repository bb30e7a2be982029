package command

import (
	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrReadConfig is returned when the configuration file cannot be
	// decoded.
	ErrReadConfig = errors.NewKind("cannot read config file %s")
	// ErrUnknownConfigKey is returned for keys the configuration does not
	// define.
	ErrUnknownConfigKey = errors.NewKind("unknown key %q in config file %s")
	// ErrLogLevel is returned for log levels logrus does not know.
	ErrLogLevel = errors.NewKind("cannot parse log level %q")
	// ErrOutput is returned for an output format the command cannot
	// produce.
	ErrOutput = errors.NewKind("unknown output format %q for %s")
)

// Config is the content of the optional TOML configuration file. Command
// line flags and environment variables take precedence over it.
type Config struct {
	// Database is the default database used for unqualified names.
	Database string `toml:"database"`
	// Strict rejects an empty default database.
	Strict bool `toml:"strict"`
	// LogLevel is one of the logrus level names.
	LogLevel string `toml:"log-level"`
	// Output selects how statements are written.
	Output string `toml:"output"`
}

// LoadConfig decodes the TOML file at path. An empty path yields an empty
// Config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, ErrReadConfig.Wrap(err, path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, ErrUnknownConfigKey.New(undecoded[0].String(), path)
	}
	return cfg, nil
}

// setLogLevel applies level to log. An empty level keeps the current one.
func setLogLevel(log *logrus.Logger, level string) error {
	if level == "" {
		return nil
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return ErrLogLevel.Wrap(err, level)
	}
	log.SetLevel(lvl)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
