package datefmt

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"golang.org/x/text/language"
)

// DefaultLayout is used when neither the options nor the locale table set a layout.
const DefaultLayout = "mm/dd/yyyy"

// ViewMode is a datepicker calendar view.
type ViewMode string

const (
	ViewDays   ViewMode = "days"
	ViewMonth  ViewMode = "month"
	ViewMonths ViewMode = "months"
	ViewYear   ViewMode = "year"
	ViewYears  ViewMode = "years"
	ViewDecade ViewMode = "decade"
)

// TodayButton controls the "Today" button: hidden, shown, or shown and
// selecting the current date.
type TodayButton string

const (
	TodayButtonOff    TodayButton = "false"
	TodayButtonOn     TodayButton = "true"
	TodayButtonLinked TodayButton = "linked"
)

// DatepickerOptions configures a datepicker field.
type DatepickerOptions struct {
	// Type selects the model representation. Default: date.
	Type OutputType `json:"type" yaml:"type" validate:"oneof=date iso string"`
	// Format is the layout, e.g. mm/dd/yyyy. Default: the locale's format, then mm/dd/yyyy.
	Format string `json:"format,omitempty" yaml:"format,omitempty" validate:"omitempty,layout"`
	// Language is a BCP 47 code used for names. Default: en.
	Language string `json:"language" yaml:"language" validate:"required,locale"`
	// WeekStart is the first day of the week, 0 for Sunday. Default: 0.
	WeekStart     int  `json:"weekStart" yaml:"weekStart" validate:"gte=0,lte=6"`
	CalendarWeeks bool `json:"calendarWeeks" yaml:"calendarWeeks"`
	// StartDate and EndDate bound the selectable range; they are written in
	// Format or as yyyy-mm-dd. Empty means unbounded.
	StartDate          string      `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate            string      `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	DaysOfWeekDisabled []int       `json:"daysOfWeekDisabled,omitempty" yaml:"daysOfWeekDisabled,omitempty" validate:"dive,gte=0,lte=6"`
	Autoclose          bool        `json:"autoclose" yaml:"autoclose"`
	StartView          ViewMode    `json:"startView" yaml:"startView" validate:"oneof=month year decade"`
	MinViewMode        ViewMode    `json:"minViewMode" yaml:"minViewMode" validate:"oneof=days months years"`
	TodayBtn           TodayButton `json:"todayBtn" yaml:"todayBtn" validate:"oneof=false true linked"`
	TodayHighlight     bool        `json:"todayHighlight" yaml:"todayHighlight"`
	KeyboardNavigation bool        `json:"keyboardNavigation" yaml:"keyboardNavigation"`
	ForceParse         bool        `json:"forceParse" yaml:"forceParse"`
}

// DefaultDatepickerOptions returns the documented defaults.
func DefaultDatepickerOptions() DatepickerOptions {
	return DatepickerOptions{
		Type:        OutputDate,
		Language:    DefaultLocale,
		Autoclose:   true,
		StartView:   ViewMonth,
		MinViewMode: ViewDays,
		TodayBtn:    TodayButtonOff,
		ForceParse:  true,
	}
}

// TimepickerOptions configures a timepicker field.
type TimepickerOptions struct {
	// Type is string ("HH:MM") or date. Default: string.
	Type OutputType `json:"type" yaml:"type" validate:"oneof=date string"`
	// Template is dropdown, modal or false. Default: dropdown.
	Template     string      `json:"template" yaml:"template" validate:"oneof=dropdown modal false"`
	MinuteStep   int         `json:"minuteStep" yaml:"minuteStep" validate:"gte=1,lte=60"`
	ShowSeconds  bool        `json:"showSeconds" yaml:"showSeconds"`
	SecondStep   int         `json:"secondStep" yaml:"secondStep" validate:"gte=1,lte=60"`
	DefaultTime  DefaultTime `json:"defaultTime" yaml:"defaultTime"`
	ShowMeridian bool        `json:"showMeridian" yaml:"showMeridian"`
	ShowInputs   bool        `json:"showInputs" yaml:"showInputs"`
	DisableFocus bool        `json:"disableFocus" yaml:"disableFocus"`
	// ModalBackdrop only applies to the modal template.
	ModalBackdrop bool `json:"modalBackdrop" yaml:"modalBackdrop"`
	OpenOnFocus   bool `json:"openOnFocus" yaml:"openOnFocus"`
}

// DefaultTimepickerOptions returns the documented defaults.
func DefaultTimepickerOptions() TimepickerOptions {
	return TimepickerOptions{
		Type:         OutputString,
		Template:     "dropdown",
		MinuteStep:   15,
		SecondStep:   15,
		DefaultTime:  DefaultTime{Mode: DefaultTimeCurrent},
		ShowMeridian: true,
		ShowInputs:   true,
	}
}

// Options groups widget options, as found in an options file.
type Options struct {
	Datepicker DatepickerOptions `json:"datepicker" yaml:"datepicker"`
	Timepicker TimepickerOptions `json:"timepicker" yaml:"timepicker"`
}

func DefaultOptions() Options {
	return Options{
		Datepicker: DefaultDatepickerOptions(),
		Timepicker: DefaultTimepickerOptions(),
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func optionsValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		if err := RegisterValidations(validate); err != nil {
			panic(err)
		}
	})
	return validate
}

func layoutValidation(fl validator.FieldLevel) bool {
	_, err := ParsePattern(fl.Field().String())
	return err == nil
}

func localeValidation(fl validator.FieldLevel) bool {
	_, err := language.Parse(normalizeLocale(fl.Field().String()))
	return err == nil
}

// RegisterValidations adds the "layout" and "locale" tags to v.
func RegisterValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("layout", layoutValidation); err != nil {
		return fmt.Errorf("datefmt: register layout validation: %w", err)
	}
	if err := v.RegisterValidation("locale", localeValidation); err != nil {
		return fmt.Errorf("datefmt: register locale validation: %w", err)
	}
	return nil
}

func (o DatepickerOptions) Validate() error {
	return optionsValidator().Struct(o)
}

func (o TimepickerOptions) Validate() error {
	return optionsValidator().Struct(o)
}

func (o Options) Validate() error {
	return optionsValidator().Struct(o)
}

// LoadOptionsFile decodes a YAML or JSON options file over the defaults.
func LoadOptionsFile(path string) (Options, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("datefmt: read options %s: %w", path, err)
	}
	return DecodeOptions(filepath.Ext(path), content)
}

// DecodeOptions decodes content in the format named by ext (".yaml",
// ".yml" or ".json") over the defaults and validates the result.
func DecodeOptions(ext string, content []byte) (Options, error) {
	opts := DefaultOptions()

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(
			bytes.NewBuffer(content),
			yaml.Validator(optionsValidator()),
			yaml.Strict(),
		)
		if err := dec.Decode(&opts); err != nil {
			return Options{}, errors.New(yaml.FormatError(err, false, true))
		}
	case ".json":
		if err := json.Unmarshal(content, &opts); err != nil {
			return Options{}, fmt.Errorf("datefmt: decode options: %w", err)
		}
	default:
		return Options{}, fmt.Errorf("datefmt: unsupported options extension %q", ext)
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Layout returns the layout the datepicker uses for names.
func (o DatepickerOptions) Layout(names LocaleNames) string {
	if o.Format != "" {
		return o.Format
	}
	if names.Format != "" {
		return names.Format
	}
	return DefaultLayout
}

// NewDatePipelineFromOptions compiles the datepicker's layout and applies
// its type, range and disabled weekdays.
func NewDatePipelineFromOptions(c *Compiler, o DatepickerOptions, extra ...PipelineOption) (*DatePipeline, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if c == nil {
		c = defaultCompiler
	}

	names, _, err := c.Names(o.Language)
	if err != nil {
		return nil, err
	}
	mp, err := c.Compile(o.Layout(names), o.Language)
	if err != nil {
		return nil, err
	}

	opts := []PipelineOption{WithOutput(o.Type)}
	if len(o.DaysOfWeekDisabled) > 0 {
		days := make([]time.Weekday, len(o.DaysOfWeekDisabled))
		for i, d := range o.DaysOfWeekDisabled {
			days[i] = time.Weekday(d)
		}
		opts = append(opts, WithDisabledWeekdays(days...))
	}
	opts = append(opts, extra...)

	// Bounds are parsed in the final location so they compare by calendar day.
	probe, err := NewDatePipeline(mp, opts...)
	if err != nil {
		return nil, err
	}
	start, err := parseBound(o.StartDate, mp, probe.location)
	if err != nil {
		return nil, fmt.Errorf("datefmt: start date: %w", err)
	}
	end, err := parseBound(o.EndDate, mp, probe.location)
	if err != nil {
		return nil, fmt.Errorf("datefmt: end date: %w", err)
	}
	if start.IsZero() && end.IsZero() {
		return probe, nil
	}
	return NewDatePipeline(mp, append(opts, WithDateRange(start, end))...)
}

func parseBound(text string, mp *MatchingPattern, loc *time.Location) (time.Time, error) {
	if text == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, text, loc); err == nil {
		return t, nil
	}
	value, err := parseDate(text, mp, parseSettings{output: OutputDate, location: loc})
	if err != nil {
		return time.Time{}, err
	}
	return value.Time, nil
}

// NewTimePipelineFromOptions builds a time pipeline from timepicker options.
func NewTimePipelineFromOptions(o TimepickerOptions, extra ...TimeOption) (*TimePipeline, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	opts := []TimeOption{
		WithTimeOutput(o.Type),
		WithShowSeconds(o.ShowSeconds),
		WithShowMeridian(o.ShowMeridian),
		WithDefaultTime(o.DefaultTime),
	}
	return NewTimePipeline(append(opts, extra...)...)
}
