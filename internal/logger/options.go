package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SectionName is the configuration section holding the logging options.
const SectionName = "Logging"

// Output targets understood by [Options.Output]. Any other value is a file
// path opened in append mode.
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// Output formats understood by [Options.Format].
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Settings is the read side of the merged configuration that the logger
// needs. config.Store satisfies it.
type Settings interface {
	Unmarshal(path string, out any) error
}

// Options describes the application logger.
//
//	"Logging": { "Level": "debug", "Format": "console", "Output": "stderr" }
type Options struct {
	// Level is a zerolog level name.
	Level string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	// Format is either json or console.
	Format string `koanf:"format" validate:"omitempty,oneof=json console"`
	// Output is stdout, stderr or a file path.
	Output string `koanf:"output"`
}

// Override adjusts the decoded options before [New] builds the logger.
type Override func(*Options)

// WithLevel forces the log level regardless of the configuration.
func WithLevel(level string) Override {
	return func(o *Options) {
		o.Level = level
	}
}

// WithFormat forces the output format regardless of the configuration.
func WithFormat(format string) Override {
	return func(o *Options) {
		o.Format = format
	}
}

var defaultOptions = Options{
	Level:  zerolog.LevelInfoValue,
	Format: FormatJSON,
	Output: OutputStdout,
}

var validate = validator.New()

// DefaultOptions returns the options used when the configuration has no
// logging section.
func DefaultOptions() Options {
	return defaultOptions
}

// OptionsFrom decodes the [SectionName] section of settings, fills the
// unset fields with [DefaultOptions] and validates the result.
func OptionsFrom(settings Settings) (Options, error) {
	var opts Options
	if err := settings.Unmarshal(SectionName, &opts); err != nil {
		return Options{}, fmt.Errorf("error reading logging options: %w", err)
	}

	return opts.normalize()
}

func (o Options) normalize() (Options, error) {
	o.Level = strings.ToLower(strings.TrimSpace(o.Level))
	o.Format = strings.ToLower(strings.TrimSpace(o.Format))
	o.Output = strings.TrimSpace(o.Output)

	if err := mergo.Merge(&o, defaultOptions); err != nil {
		return Options{}, fmt.Errorf("error applying default logging options: %w", err)
	}

	if err := validate.Struct(o); err != nil {
		return Options{}, fmt.Errorf("invalid logging options: %w", err)
	}

	return o, nil
}

// writer returns the destination described by o and, for a file output,
// the file to close once logging is done.
func (o Options) writer() (io.Writer, io.Closer, error) {
	var (
		w      io.Writer
		closer io.Closer
	)
	switch strings.ToLower(o.Output) {
	case "", OutputStdout:
		w = os.Stdout
	case OutputStderr:
		w = os.Stderr
	default:
		f, err := os.OpenFile(o.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("error opening log output %s: %w", o.Output, err)
		}
		w, closer = f, f
	}

	if o.Format == FormatConsole {
		return zerolog.ConsoleWriter{Out: w, NoColor: true}, closer, nil
	}

	return w, closer, nil
}
