package datefmt

import (
	"strings"
	"time"
)

// LocaleNames holds the day and month names used to compile and render
// name tokens for one locale.
type LocaleNames struct {
	Days        []string `json:"days" yaml:"days" validate:"min=7,dive,required"`
	DaysShort   []string `json:"daysShort" yaml:"daysShort" validate:"min=7,dive,required"`
	DaysMin     []string `json:"daysMin,omitempty" yaml:"daysMin,omitempty" validate:"omitempty,min=7,dive,required"`
	Months      []string `json:"months" yaml:"months" validate:"len=12,dive,required"`
	MonthsShort []string `json:"monthsShort" yaml:"monthsShort" validate:"len=12,dive,required"`
	Today       string   `json:"today,omitempty" yaml:"today,omitempty"`
	// Format is the layout used when a datepicker does not set one.
	Format    string `json:"format,omitempty" yaml:"format,omitempty"`
	WeekStart int    `json:"weekStart,omitempty" yaml:"weekStart,omitempty" validate:"gte=0,lte=6"`
}

// Clone returns a deep copy so stores can hand out snapshots.
func (n LocaleNames) Clone() LocaleNames {
	out := n
	out.Days = append([]string(nil), n.Days...)
	out.DaysShort = append([]string(nil), n.DaysShort...)
	out.DaysMin = append([]string(nil), n.DaysMin...)
	out.Months = append([]string(nil), n.Months...)
	out.MonthsShort = append([]string(nil), n.MonthsShort...)
	return out
}

// monthIndex resolves a month name (long or short) to 1..12.
func (n LocaleNames) monthIndex(name string, short bool) (time.Month, bool) {
	list := n.Months
	if short {
		list = n.MonthsShort
	}
	for i, candidate := range list {
		if strings.EqualFold(candidate, name) {
			return time.Month(i + 1), true
		}
	}
	return 0, false
}

func (n LocaleNames) weekdayIndex(name string, short bool) (time.Weekday, bool) {
	list := n.Days
	if short {
		list = n.DaysShort
	}
	for i, candidate := range list {
		if i > 6 {
			break
		}
		if strings.EqualFold(candidate, name) {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// OutputType selects the representation produced by Parse.
type OutputType string

const (
	OutputDate   OutputType = "date"
	OutputISO    OutputType = "iso"
	OutputString OutputType = "string"
)

func (o OutputType) valid() bool {
	switch o {
	case OutputDate, OutputISO, OutputString:
		return true
	}
	return false
}

// ValueKind tags the representation held by a Value.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindDate
	KindISO
	KindString
)

func (k ValueKind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindISO:
		return "iso"
	case KindString:
		return "string"
	default:
		return "empty"
	}
}

// Value is a parsed date. Time is set for every kind except KindEmpty;
// Text carries the ISO-8601 rendering for KindISO and the raw input for
// KindString.
type Value struct {
	Kind ValueKind
	Time time.Time
	Text string
}

// IsEmpty reports whether the value stands for "no date".
func (v Value) IsEmpty() bool {
	return v.Kind == KindEmpty
}

// DateValue wraps t as a KindDate value.
func DateValue(t time.Time) Value {
	return Value{Kind: KindDate, Time: t}
}

// ISOValue wraps t as a KindISO value with its canonical text.
func ISOValue(t time.Time) Value {
	return Value{Kind: KindISO, Time: t, Text: formatISO(t)}
}

// isoLayout mirrors the millisecond UTC form emitted by browsers.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

func formatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}
