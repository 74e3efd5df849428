package datefmt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// isoExpression accepts the millisecond timestamps browsers produce.
var isoExpression = regexp2.MustCompile(
	`^[0-9]{4}-[01][0-9]-[0-3][0-9]T[0-2][0-9]:[0-5][0-9]:[0-5][0-9]\.[0-9]+(?:[+-][0-2][0-9]:[0-5][0-9]|Z)\z`,
	regexp2.None)

// IsISOTimestamp reports whether text has the ISO-8601 timestamp shape.
func IsISOTimestamp(text string) bool {
	ok, err := isoExpression.MatchString(text)
	return err == nil && ok
}

// Parse converts text into a Value using the compiled pattern. Empty text
// yields an empty Value and no error.
func Parse(text string, mp *MatchingPattern, output OutputType) (Value, error) {
	return parseDate(text, mp, parseSettings{output: output})
}

// Format renders v with the compiled pattern's layout and locale names.
func Format(v Value, mp *MatchingPattern) (string, error) {
	if mp == nil {
		return "", fmt.Errorf("%w: nil pattern", ErrInvalidLayout)
	}
	switch v.Kind {
	case KindEmpty:
		return "", nil
	case KindString:
		if v.Text != "" && mp.MatchString(v.Text) {
			return v.Text, nil
		}
		if v.Time.IsZero() {
			return "", invalidFormat(v.Text, mp.Pattern.Layout, "text does not match layout")
		}
	}
	if year := v.Time.Year(); year < minYear || year > maxYear {
		return "", invalidFormat(v.Time.Format(time.RFC3339), mp.Pattern.Layout, "year outside 0000-9999")
	}
	return FormatTime(v.Time, mp.Pattern, mp.Names), nil
}

// Years render as at most four digits so formatted text always parses back.
const (
	minYear = 0
	maxYear = 9999
)

// FormatTime renders t token by token. Numeric tokens are padded to their
// declared width and name tokens come from names.
func FormatTime(t time.Time, pattern Pattern, names LocaleNames) string {
	var b strings.Builder
	for _, token := range pattern.Tokens {
		switch token.Kind {
		case TokenLiteral, TokenSeparator:
			b.WriteString(token.Text)
		case TokenDay:
			b.WriteString(strconv.Itoa(t.Day()))
		case TokenDayPadded:
			fmt.Fprintf(&b, "%02d", t.Day())
		case TokenMonth:
			b.WriteString(strconv.Itoa(int(t.Month())))
		case TokenMonthPadded:
			fmt.Fprintf(&b, "%02d", int(t.Month()))
		case TokenYearShort:
			fmt.Fprintf(&b, "%02d", t.Year()%100)
		case TokenYear:
			fmt.Fprintf(&b, "%04d", t.Year())
		case TokenDayName:
			b.WriteString(nameAt(names.Days, int(t.Weekday())))
		case TokenDayNameShort:
			b.WriteString(nameAt(names.DaysShort, int(t.Weekday())))
		case TokenMonthName:
			b.WriteString(nameAt(names.Months, int(t.Month())-1))
		case TokenMonthNameShort:
			b.WriteString(nameAt(names.MonthsShort, int(t.Month())-1))
		}
	}
	return b.String()
}

func nameAt(list []string, idx int) string {
	if idx < 0 || idx >= len(list) {
		return ""
	}
	return list[idx]
}

type parseSettings struct {
	output   OutputType
	location *time.Location
	now      func() time.Time
}

func (s parseSettings) withDefaults() parseSettings {
	if s.output == "" {
		s.output = OutputDate
	}
	if s.location == nil {
		s.location = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func parseDate(text string, mp *MatchingPattern, settings parseSettings) (Value, error) {
	settings = settings.withDefaults()
	if !settings.output.valid() {
		return Value{}, fmt.Errorf("datefmt: unknown output type %q", settings.output)
	}
	if text == "" {
		return Value{}, nil
	}

	if settings.output == OutputISO && IsISOTimestamp(text) {
		t, err := time.Parse(time.RFC3339Nano, text)
		if err != nil {
			return Value{}, invalidFormat(text, "", "malformed ISO-8601 timestamp")
		}
		return ISOValue(t), nil
	}

	if mp == nil {
		return Value{}, fmt.Errorf("%w: nil pattern", ErrInvalidLayout)
	}

	layout := mp.Pattern.Layout
	submatches, err := mp.Submatches(text)
	if err != nil {
		return Value{}, invalidFormat(text, layout, err.Error())
	}
	if submatches == nil {
		return Value{}, invalidFormat(text, layout, "text does not match layout")
	}

	t, err := assembleDate(text, mp, submatches, settings)
	if err != nil {
		return Value{}, err
	}

	switch settings.output {
	case OutputISO:
		return ISOValue(t), nil
	case OutputString:
		return Value{Kind: KindString, Time: t, Text: text}, nil
	default:
		return DateValue(t), nil
	}
}

type dateParts struct {
	year, month, day          int
	hasYear, hasMonth, hasDay bool
	weekday                   time.Weekday
	hasWeekday                bool
}

func assign(field *int, has *bool, value int, what string) string {
	if *has && *field != value {
		return "conflicting " + what + " fields"
	}
	*field = value
	*has = true
	return ""
}

func assembleDate(text string, mp *MatchingPattern, submatches []string, settings parseSettings) (time.Time, error) {
	layout := mp.Pattern.Layout
	var parts dateParts

	for i, token := range mp.Pattern.Fields() {
		raw := submatches[i]
		var reason string

		switch token.Kind {
		case TokenDay, TokenDayPadded:
			reason = assign(&parts.day, &parts.hasDay, atoi(raw), "day")
		case TokenMonth, TokenMonthPadded:
			reason = assign(&parts.month, &parts.hasMonth, atoi(raw), "month")
		case TokenMonthName, TokenMonthNameShort:
			month, ok := mp.Names.monthIndex(raw, token.Kind == TokenMonthNameShort)
			if !ok {
				reason = "unknown month name " + strconv.Quote(raw)
				break
			}
			reason = assign(&parts.month, &parts.hasMonth, int(month), "month")
		case TokenYearShort:
			reason = assign(&parts.year, &parts.hasYear, 2000+atoi(raw), "year")
		case TokenYear:
			reason = assign(&parts.year, &parts.hasYear, atoi(raw), "year")
		case TokenDayName, TokenDayNameShort:
			weekday, ok := mp.Names.weekdayIndex(raw, token.Kind == TokenDayNameShort)
			if !ok {
				reason = "unknown day name " + strconv.Quote(raw)
				break
			}
			if parts.hasWeekday && parts.weekday != weekday {
				reason = "conflicting day name fields"
				break
			}
			parts.weekday, parts.hasWeekday = weekday, true
		}

		if reason != "" {
			return time.Time{}, invalidFormat(text, layout, reason)
		}
	}

	if !parts.hasYear {
		parts.year = settings.now().In(settings.location).Year()
	}
	if !parts.hasMonth {
		parts.month = 1
	}
	if !parts.hasDay {
		parts.day = 1
	}

	if parts.month < 1 || parts.month > 12 {
		return time.Time{}, invalidFormat(text, layout, "month out of range")
	}
	t := time.Date(parts.year, time.Month(parts.month), parts.day, 0, 0, 0, 0, settings.location)
	if t.Day() != parts.day || int(t.Month()) != parts.month {
		return time.Time{}, invalidFormat(text, layout, "day out of range")
	}
	if parts.hasWeekday && t.Weekday() != parts.weekday {
		return time.Time{}, invalidFormat(text, layout, "day name does not match date")
	}

	return t, nil
}

// atoi is only fed digit runs captured by the compiled expression.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
