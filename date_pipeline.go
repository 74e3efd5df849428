package datefmt

import (
	"fmt"
	"time"
)

// DatePipeline binds a compiled pattern to an output type, a clock and the
// selection constraints of a datepicker.
type DatePipeline struct {
	pattern  *MatchingPattern
	output   OutputType
	location *time.Location
	now      func() time.Time
	start    time.Time
	end      time.Time
	disabled map[time.Weekday]struct{}
	hooks    []ParseHook
}

// PipelineOption mutates a DatePipeline during construction
type PipelineOption func(*DatePipeline)

func WithOutput(output OutputType) PipelineOption {
	return func(p *DatePipeline) {
		if output != "" {
			p.output = output
		}
	}
}

func WithLocation(loc *time.Location) PipelineOption {
	return func(p *DatePipeline) {
		if loc != nil {
			p.location = loc
		}
	}
}

func WithClock(now func() time.Time) PipelineOption {
	return func(p *DatePipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithDateRange limits accepted dates to [start, end]; a zero bound is open.
func WithDateRange(start, end time.Time) PipelineOption {
	return func(p *DatePipeline) {
		p.start = start
		p.end = end
	}
}

func WithDisabledWeekdays(days ...time.Weekday) PipelineOption {
	return func(p *DatePipeline) {
		for _, day := range days {
			if p.disabled == nil {
				p.disabled = make(map[time.Weekday]struct{}, len(days))
			}
			p.disabled[day] = struct{}{}
		}
	}
}

func WithParseHooks(hooks ...ParseHook) PipelineOption {
	return func(p *DatePipeline) {
		p.hooks = append(p.hooks, filterHooks(hooks)...)
	}
}

// NewDatePipeline builds a pipeline over mp. Output defaults to date and
// location to UTC.
func NewDatePipeline(mp *MatchingPattern, opts ...PipelineOption) (*DatePipeline, error) {
	if mp == nil {
		return nil, fmt.Errorf("%w: nil pattern", ErrInvalidLayout)
	}

	p := &DatePipeline{
		pattern:  mp,
		output:   OutputDate,
		location: time.UTC,
		now:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	if !p.output.valid() {
		return nil, fmt.Errorf("datefmt: unknown output type %q", p.output)
	}
	if !p.start.IsZero() && !p.end.IsZero() && p.end.Before(p.start) {
		return nil, fmt.Errorf("datefmt: end date %s before start date %s", p.end.Format(time.DateOnly), p.start.Format(time.DateOnly))
	}
	return p, nil
}

func (p *DatePipeline) Pattern() *MatchingPattern {
	return p.pattern
}

func (p *DatePipeline) Output() OutputType {
	return p.output
}

// Parse converts view text into a model value.
func (p *DatePipeline) Parse(text string) (Value, error) {
	ctx := &ParseHookContext{
		Layout: p.pattern.Pattern.Layout,
		Locale: p.pattern.Resolved,
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

func (p *DatePipeline) parse(text string) (Value, error) {
	value, err := parseDate(text, p.pattern, parseSettings{
		output:   p.output,
		location: p.location,
		now:      p.now,
	})
	if err != nil || value.IsEmpty() {
		return value, err
	}
	if err := p.checkConstraints(text, value.Time.In(p.location)); err != nil {
		return Value{}, err
	}
	return value, nil
}

func (p *DatePipeline) checkConstraints(text string, t time.Time) error {
	day := dateOnly(t, p.location)
	if !p.start.IsZero() && day.Before(dateOnly(p.start, p.location)) {
		return invalidFormat(text, p.pattern.Pattern.Layout, "before start date")
	}
	if !p.end.IsZero() && day.After(dateOnly(p.end, p.location)) {
		return invalidFormat(text, p.pattern.Pattern.Layout, "after end date")
	}
	if _, off := p.disabled[t.Weekday()]; off {
		return invalidFormat(text, p.pattern.Pattern.Layout, "weekday disabled")
	}
	return nil
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Format renders a model value as view text in the pipeline's location.
func (p *DatePipeline) Format(v Value) (string, error) {
	if v.Kind == KindDate || v.Kind == KindISO {
		v.Time = v.Time.In(p.location)
	}
	return Format(v, p.pattern)
}

// Model converts a model of any supported shape into a Value without a
// trip through view text: Value, time.Time and *time.Time are wrapped as
// they are, ISO-8601 strings keep their text, and other strings are parsed
// with the layout.
func (p *DatePipeline) Model(model any) (Value, error) {
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
	case *time.Time:
		if m == nil || m.IsZero() {
			return Value{}, nil
		}
		return DateValue(*m), nil
	case string:
		if m == "" {
			return Value{}, nil
		}
		if IsISOTimestamp(m) {
			t, err := time.Parse(time.RFC3339Nano, m)
			if err != nil {
				return Value{}, invalidFormat(m, "", "malformed ISO-8601 timestamp")
			}
			return Value{Kind: KindISO, Time: t, Text: m}, nil
		}
		return parseDate(m, p.pattern, parseSettings{output: p.output, location: p.location, now: p.now})
	default:
		return Value{}, fmt.Errorf("datefmt: unsupported model type %T", model)
	}
}

// Render turns a model value of any supported shape into view text:
// Value, time.Time, *time.Time, ISO-8601 strings and layout strings.
func (p *DatePipeline) Render(model any) (string, error) {
	value, err := p.Model(model)
	if err != nil {
		return "", err
	}
	return p.Format(value)
}
