package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/goliatone/go-datefmt"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type option struct {
	Layout      string   `description:"specify the date layout (defaults to the locale's layout)" long:"layout" short:"l" env:"DATEFMT_LAYOUT"`
	Locale      string   `description:"specify the locale used for day and month names" long:"locale" env:"DATEFMT_LOCALE" default:"en"`
	Type        string   `description:"specify the output type (date/iso/string); defaults to the widget options" long:"type" env:"DATEFMT_TYPE" choice:"date" choice:"iso" choice:"string"`
	Time        bool     `description:"treat values as times of day (H:MM[:SS][ am|pm])" long:"time"`
	Render      bool     `description:"read ISO-8601 timestamps and render them with the layout" long:"render"`
	LocaleFiles []string `description:"specify a JSON or YAML locale table file (repeatable)" long:"locale-file"`
	Options     string   `description:"specify a JSON or YAML widget options file" long:"options" env:"DATEFMT_OPTIONS"`
	LogLevel    LogLevel `description:"specify the log level (debug/info/warn/error)" long:"log-level" env:"DATEFMT_LOG_LEVEL" default:"error"`
	LogFormat   string   `description:"specify the log format (console/json)" long:"log-format" default:"console" choice:"console" choice:"json"`
	Version     bool     `description:"print version" long:"version" short:"v"`
}

type exitCode int

const (
	exitOK      exitCode = 0
	exitError   exitCode = 1
	exitInvalid exitCode = 2
)

var (
	version  string
	revision string
)

func main() {
	os.Exit(int(run()))
}

func run() exitCode {
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "[datefmt] %v\n", err)
		return exitError
	}

	args, opt, err := parseOpt()
	if err != nil {
		flagsErr, ok := err.(*flags.Error)
		if !ok {
			fmt.Fprintf(os.Stderr, "[datefmt] unknown parsed option error: %[1]T %[1]v\n", err)
			return exitError
		}
		if flagsErr.Type == flags.ErrHelp {
			return exitOK
		}
		return exitError
	}

	if opt.Version {
		fmt.Fprintf(os.Stdout, "version: %s (%s)\n", version, revision)
		return exitOK
	}

	code, err := convert(os.Stdout, args, opt)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitError
	}
	return code
}

// loadEnvFile reads DATEFMT_ENV_FILE, or ./.env when present.
func loadEnvFile() error {
	path := os.Getenv("DATEFMT_ENV_FILE")
	if path == "" {
		path = ".env"
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil
		}
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func parseOpt() ([]string, option, error) {
	var opt option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Usage = "[OPTIONS] VALUE..."
	args, err := parser.Parse()
	return args, opt, err
}

func convert(w io.Writer, args []string, opt option) (exitCode, error) {
	if len(args) == 0 {
		return exitError, errors.New("at least one value is required")
	}

	logger, err := newLogger(opt.LogLevel, opt.LogFormat)
	if err != nil {
		return exitError, err
	}
	defer logger.Sync()

	cfg, err := datefmt.NewConfig(
		datefmt.WithLocaleFiles(opt.LocaleFiles...),
		datefmt.WithLogger(logger),
	)
	if err != nil {
		return exitError, err
	}

	widgets := datefmt.DefaultOptions()
	if opt.Options != "" {
		if widgets, err = datefmt.LoadOptionsFile(opt.Options); err != nil {
			return exitError, err
		}
	}

	if opt.Time {
		return convertTimes(w, args, cfg, widgets.Timepicker, opt)
	}
	return convertDates(w, args, cfg, widgets.Datepicker, opt)
}

func convertDates(w io.Writer, args []string, cfg *datefmt.Config, picker datefmt.DatepickerOptions, opt option) (exitCode, error) {
	picker.Language = opt.Locale
	if opt.Type != "" {
		picker.Type = datefmt.OutputType(opt.Type)
	}
	if opt.Layout != "" {
		picker.Format = opt.Layout
	}

	pipeline, err := cfg.DatePipeline(picker)
	if err != nil {
		return exitError, err
	}

	code := exitOK
	for _, arg := range args {
		if opt.Render {
			text, err := pipeline.Render(arg)
			if err != nil {
				fmt.Fprintf(w, "%s\tinvalid: %v\n", arg, err)
				code = exitInvalid
				continue
			}
			fmt.Fprintf(w, "%s\t%s\n", arg, text)
			continue
		}

		value, err := pipeline.Parse(arg)
		if err != nil {
			fmt.Fprintf(w, "%s\tinvalid: %v\n", arg, err)
			code = exitInvalid
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", arg, value.Kind, describe(value))
	}
	return code, nil
}

func convertTimes(w io.Writer, args []string, cfg *datefmt.Config, picker datefmt.TimepickerOptions, opt option) (exitCode, error) {
	switch datefmt.OutputType(opt.Type) {
	case datefmt.OutputDate, datefmt.OutputString:
		picker.Type = datefmt.OutputType(opt.Type)
	case datefmt.OutputISO:
		return exitError, errors.New("time values support the date and string types only")
	}

	pipeline, err := cfg.TimePipeline(picker)
	if err != nil {
		return exitError, err
	}

	code := exitOK
	for _, arg := range args {
		value, err := pipeline.Parse(arg)
		if err != nil {
			fmt.Fprintf(w, "%s\tinvalid: %v\n", arg, err)
			code = exitInvalid
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", arg, value.Kind, pipeline.Format(value))
	}
	return code, nil
}

func describe(value datefmt.Value) string {
	switch value.Kind {
	case datefmt.KindEmpty:
		return ""
	case datefmt.KindISO, datefmt.KindString:
		return value.Text
	default:
		return value.Time.Format(time.DateOnly)
	}
}

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

func newLogger(level LogLevel, format string) (*zap.Logger, error) {
	cfg := zap.Config{
		Development:       false,
		Encoding:          "console",
		DisableStacktrace: true,
		EncoderConfig:     zap.NewDevelopmentEncoderConfig(),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}

	switch level {
	case LogLevelDebug:
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case LogLevelInfo:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case LogLevelWarn:
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case LogLevelError:
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return nil, fmt.Errorf("unexpected log level %s", level)
	}

	switch format {
	case "console":
	case "json":
		cfg.Encoding = "json"
		cfg.EncoderConfig = zap.NewProductionEncoderConfig()
	default:
		return nil, fmt.Errorf("unexpected log format %s", format)
	}

	return cfg.Build()
}
