package datefmt

import (
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// timeExpression is the fixed H:MM[:SS][ am|pm] shape accepted by timepickers.
var timeExpression = regexp2.MustCompile(
	`^(?<hour>[0-1][0-9]|2[0-3]|[0-9]):(?<minute>[0-5][0-9])(?::(?<second>[0-5][0-9]))?(?:\s?(?<meridian>am|pm))?\z`,
	regexp2.IgnoreCase)

// Clock is a time of day.
type Clock struct {
	Hour       int
	Minute     int
	Second     int
	HasSeconds bool
}

// ClockOf extracts the time of day from t.
func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(), HasSeconds: t.Second() != 0}
}

// On returns the clock placed on the calendar day of day.
func (c Clock) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, c.Second, 0, day.Location())
}

// String renders 24h HH:MM, with :SS when seconds are present.
func (c Clock) String() string {
	if c.HasSeconds {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
	}
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Meridian renders 12h h:MM AM, with :SS when seconds are present.
func (c Clock) Meridian() string {
	suffix := "AM"
	if c.Hour >= 12 {
		suffix = "PM"
	}
	hour := c.Hour % 12
	if hour == 0 {
		hour = 12
	}
	if c.HasSeconds {
		return fmt.Sprintf("%d:%02d:%02d %s", hour, c.Minute, c.Second, suffix)
	}
	return fmt.Sprintf("%d:%02d %s", hour, c.Minute, suffix)
}

// ParseClock parses text of the form H:MM[:SS][ am|pm].
func ParseClock(text string) (Clock, error) {
	match, err := timeExpression.FindStringMatch(text)
	if err != nil {
		return Clock{}, invalidFormat(text, "H:MM", err.Error())
	}
	if match == nil {
		return Clock{}, invalidFormat(text, "H:MM", "text does not match time shape")
	}

	clock := Clock{
		Hour:   atoi(match.GroupByName("hour").String()),
		Minute: atoi(match.GroupByName("minute").String()),
	}
	if second := match.GroupByName("second").String(); second != "" {
		clock.Second = atoi(second)
		clock.HasSeconds = true
	}

	if meridian := strings.ToLower(match.GroupByName("meridian").String()); meridian != "" {
		if clock.Hour < 1 || clock.Hour > 12 {
			return Clock{}, invalidFormat(text, "H:MM", "hour out of range for 12-hour clock")
		}
		switch {
		case meridian == "am" && clock.Hour == 12:
			clock.Hour = 0
		case meridian == "pm" && clock.Hour < 12:
			clock.Hour += 12
		}
	}

	return clock, nil
}

// DefaultTimeMode selects what a timepicker shows when the model is empty.
type DefaultTimeMode string

const (
	DefaultTimeNone    DefaultTimeMode = "none"
	DefaultTimeCurrent DefaultTimeMode = "current"
	DefaultTimeLiteral DefaultTimeMode = "literal"
)

// DefaultTime is the explicit three-way default value policy. In text form
// "current" and "none"/"false" select those modes; anything else is a literal.
type DefaultTime struct {
	Mode  DefaultTimeMode `json:"mode" yaml:"mode" validate:"oneof=none current literal"`
	Value string          `json:"value,omitempty" yaml:"value,omitempty" validate:"required_if=Mode literal"`
}

func (d DefaultTime) MarshalText() ([]byte, error) {
	switch d.Mode {
	case DefaultTimeLiteral:
		return []byte(d.Value), nil
	case DefaultTimeCurrent:
		return []byte(DefaultTimeCurrent), nil
	default:
		return []byte("false"), nil
	}
}

func (d *DefaultTime) UnmarshalText(text []byte) error {
	value := strings.TrimSpace(string(text))
	switch strings.ToLower(value) {
	case "", "false", string(DefaultTimeNone):
		*d = DefaultTime{Mode: DefaultTimeNone}
	case string(DefaultTimeCurrent):
		*d = DefaultTime{Mode: DefaultTimeCurrent}
	default:
		if _, err := ParseClock(value); err != nil {
			return err
		}
		*d = DefaultTime{Mode: DefaultTimeLiteral, Value: value}
	}
	return nil
}

// TimePipeline parses and renders timepicker values.
type TimePipeline struct {
	output       OutputType
	showSeconds  bool
	showMeridian bool
	defaultTime  DefaultTime
	location     *time.Location
	now          func() time.Time
	hooks        []ParseHook
}

// TimeOption mutates a TimePipeline during construction
type TimeOption func(*TimePipeline)

func WithTimeOutput(output OutputType) TimeOption {
	return func(p *TimePipeline) {
		if output != "" {
			p.output = output
		}
	}
}

func WithShowSeconds(show bool) TimeOption {
	return func(p *TimePipeline) {
		p.showSeconds = show
	}
}

func WithShowMeridian(show bool) TimeOption {
	return func(p *TimePipeline) {
		p.showMeridian = show
	}
}

func WithDefaultTime(def DefaultTime) TimeOption {
	return func(p *TimePipeline) {
		p.defaultTime = def
	}
}

func WithTimeLocation(loc *time.Location) TimeOption {
	return func(p *TimePipeline) {
		if loc != nil {
			p.location = loc
		}
	}
}

func WithTimeClock(now func() time.Time) TimeOption {
	return func(p *TimePipeline) {
		if now != nil {
			p.now = now
		}
	}
}

func WithTimeHooks(hooks ...ParseHook) TimeOption {
	return func(p *TimePipeline) {
		p.hooks = append(p.hooks, filterHooks(hooks)...)
	}
}

// NewTimePipeline builds a pipeline producing "HH:MM" strings unless
// another output is requested. Only string and date outputs are valid.
func NewTimePipeline(opts ...TimeOption) (*TimePipeline, error) {
	p := &TimePipeline{
		output:      OutputString,
		defaultTime: DefaultTime{Mode: DefaultTimeNone},
		location:    time.Local,
		now:         time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	if p.output != OutputString && p.output != OutputDate {
		return nil, fmt.Errorf("datefmt: unsupported time output type %q", p.output)
	}
	switch p.defaultTime.Mode {
	case DefaultTimeNone, DefaultTimeCurrent:
	case DefaultTimeLiteral:
		if _, err := ParseClock(p.defaultTime.Value); err != nil {
			return nil, fmt.Errorf("datefmt: default time: %w", err)
		}
	default:
		return nil, fmt.Errorf("datefmt: unknown default time mode %q", p.defaultTime.Mode)
	}
	return p, nil
}

func (p *TimePipeline) Output() OutputType {
	return p.output
}

// Parse converts view text into a model value. Empty text yields an empty
// value; use Default to apply the default-value policy.
func (p *TimePipeline) Parse(text string) (Value, error) {
	ctx := &ParseHookContext{
		Layout: "H:MM",
		Output: p.output,
		Input:  text,
	}
	for _, hook := range p.hooks {
		hook.BeforeParse(ctx)
	}

	ctx.Value, ctx.Error = p.parse(ctx.Input)

	for _, hook := range p.hooks {
		hook.AfterParse(ctx)
	}
	return ctx.Value, ctx.Error
}

func (p *TimePipeline) parse(text string) (Value, error) {
	if text == "" {
		return Value{}, nil
	}
	clock, err := ParseClock(text)
	if err != nil {
		return Value{}, err
	}
	return p.value(clock), nil
}

func (p *TimePipeline) value(clock Clock) Value {
	if !p.showSeconds {
		clock.Second, clock.HasSeconds = 0, false
	}
	t := clock.On(p.now().In(p.location))
	if p.output == OutputDate {
		return DateValue(t)
	}
	return Value{Kind: KindString, Time: t, Text: clock.String()}
}

// Default applies the default-value policy for an empty model.
func (p *TimePipeline) Default() (Value, error) {
	switch p.defaultTime.Mode {
	case DefaultTimeCurrent:
		return p.value(ClockOf(p.now().In(p.location))), nil
	case DefaultTimeLiteral:
		clock, err := ParseClock(p.defaultTime.Value)
		if err != nil {
			return Value{}, err
		}
		return p.value(clock), nil
	default:
		return Value{}, nil
	}
}

// Format renders v for display, in 12h form when the meridian is shown.
func (p *TimePipeline) Format(v Value) string {
	if v.IsEmpty() {
		return ""
	}
	clock := ClockOf(v.Time.In(p.location))
	if v.Kind == KindString && v.Time.IsZero() {
		parsed, err := ParseClock(v.Text)
		if err != nil {
			return v.Text
		}
		clock = parsed
	}
	if !p.showSeconds {
		clock.Second, clock.HasSeconds = 0, false
	} else {
		clock.HasSeconds = true
	}
	if p.showMeridian {
		return clock.Meridian()
	}
	return clock.String()
}

// Model converts a model (Value, time.Time, time text or ISO timestamp)
// into a Value without applying the default policy. Time text keeps its
// original spelling for string output.
func (p *TimePipeline) Model(model any) (Value, error) {
	switch m := model.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return m, nil
	case time.Time:
		if m.IsZero() {
			return Value{}, nil
		}
		return DateValue(m), nil
	case string:
		if m == "" {
			return Value{}, nil
		}
		if IsISOTimestamp(m) {
			t, err := time.Parse(time.RFC3339Nano, m)
			if err != nil {
				return Value{}, invalidFormat(m, "", "malformed ISO-8601 timestamp")
			}
			return DateValue(t), nil
		}
		value, err := p.parse(m)
		if err != nil {
			return Value{}, err
		}
		if value.Kind == KindString {
			value.Text = m
		}
		return value, nil
	default:
		return Value{}, fmt.Errorf("datefmt: unsupported model type %T", model)
	}
}

// Render turns a model into view text, applying the default policy when
// the model is empty.
func (p *TimePipeline) Render(model any) (string, error) {
	value, err := p.Model(model)
	if err != nil {
		return "", err
	}
	if value.IsEmpty() {
		if value, err = p.Default(); err != nil {
			return "", err
		}
	}
	return p.Format(value), nil
}
