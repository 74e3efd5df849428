package datefmt

import (
	"errors"
	"testing"
	"time"
)

func TestParseLeapDay(t *testing.T) {
	mp := mustCompile(t, "mm/dd/yyyy", "en")

	value, err := Parse("02/29/2024", mp, OutputDate)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if value.Kind != KindDate {
		t.Fatalf("Kind = %s, want date", value.Kind)
	}
	if y, m, d := value.Time.Date(); y != 2024 || m != time.February || d != 29 {
		t.Fatalf("date = %d-%d-%d, want 2024-2-29", y, m, d)
	}

	text, err := Format(value, mp)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if text != "02/29/2024" {
		t.Fatalf("Format = %q, want 02/29/2024", text)
	}
}

func TestParseRejectsInvalidDates(t *testing.T) {
	tests := []struct {
		layout string
		text   string
	}{
		{"mm/dd/yyyy", "02/30/2024"},
		{"mm/dd/yyyy", "02/29/2023"},
		{"mm/dd/yyyy", "13/45/2020"},
		{"mm/dd/yyyy", "04/31/2024"},
		{"mm/dd/yyyy", "not a date"},
		{"dd MM yyyy", "29 Febuary 2024"},
		{"yy yyyy", "24 2023"},
		{"DD mm/dd/yyyy", "Monday 02/29/2024"},
	}

	for _, tt := range tests {
		for _, output := range []OutputType{OutputDate, OutputISO, OutputString} {
			t.Run(tt.text+"/"+string(output), func(t *testing.T) {
				mp := mustCompile(t, tt.layout, "en")
				_, err := Parse(tt.text, mp, output)
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("error = %v, want ErrInvalidFormat", err)
				}
				var formatErr *InvalidFormatError
				if !errors.As(err, &formatErr) || formatErr.Input != tt.text {
					t.Fatalf("error %v does not carry input %q", err, tt.text)
				}
			})
		}
	}
}

func TestParseEmptyInput(t *testing.T) {
	layouts := []string{"mm/dd/yyyy", "yyyymmdd", "MM", "DD, d M yy", "dd 'de' MM 'de' yyyy"}
	locales := []string{"en", "de", "pt-BR", "zz"}

	for _, layout := range layouts {
		for _, locale := range locales {
			mp := mustCompile(t, layout, locale)
			for _, output := range []OutputType{OutputDate, OutputISO, OutputString} {
				value, err := Parse("", mp, output)
				if err != nil {
					t.Fatalf("Parse(%q, %s, %s): %v", layout, locale, output, err)
				}
				if !value.IsEmpty() {
					t.Fatalf("Parse(%q, %s, %s) = %+v, want empty", layout, locale, output, value)
				}
			}

			text, err := Format(Value{}, mp)
			if err != nil || text != "" {
				t.Fatalf("Format(empty) with %q/%s = %q, %v", layout, locale, text, err)
			}
		}
	}
}

func TestParseOutputs(t *testing.T) {
	mp := mustCompile(t, "mm/dd/yyyy", "en")

	iso, err := Parse("02/29/2024", mp, OutputISO)
	if err != nil {
		t.Fatalf("Parse iso: %v", err)
	}
	if iso.Kind != KindISO || iso.Text != "2024-02-29T00:00:00.000Z" {
		t.Fatalf("iso value = %+v", iso)
	}

	str, err := Parse("2/29/2024", mp, OutputString)
	if err != nil {
		t.Fatalf("Parse string: %v", err)
	}
	if str.Kind != KindString || str.Text != "2/29/2024" {
		t.Fatalf("string value = %+v", str)
	}
	text, err := Format(str, mp)
	if err != nil || text != "2/29/2024" {
		t.Fatalf("Format(string) = %q, %v", text, err)
	}

	if _, err := Parse("02/29/2024", mp, OutputType("epoch")); err == nil {
		t.Fatalf("expected unknown output type error")
	}
}

func TestParseISOTimestamp(t *testing.T) {
	mp := mustCompile(t, "mm/dd/yyyy", "en")

	value, err := Parse("2024-02-29T10:30:00.000Z", mp, OutputISO)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if value.Kind != KindISO || value.Text != "2024-02-29T10:30:00.000Z" {
		t.Fatalf("value = %+v", value)
	}
	if value.Time.Hour() != 10 || value.Time.Minute() != 30 {
		t.Fatalf("time = %s", value.Time)
	}

	offset, err := Parse("2024-02-29T10:30:00.000+02:00", mp, OutputISO)
	if err != nil {
		t.Fatalf("Parse offset: %v", err)
	}
	if offset.Text != "2024-02-29T08:30:00.000Z" {
		t.Fatalf("offset text = %q", offset.Text)
	}

	// ISO text is only special for iso output.
	if _, err := Parse("2024-02-29T10:30:00.000Z", mp, OutputDate); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("date output error = %v, want ErrInvalidFormat", err)
	}
}

func TestIsISOTimestamp(t *testing.T) {
	tests := map[string]bool{
		"2024-02-29T10:30:00.000Z":      true,
		"2024-02-29T10:30:00.5-05:00":   true,
		"2024-02-29T10:30:00Z":          false,
		"2024-02-29":                    false,
		"x2024-02-29T10:30:00.000Z":     false,
		"2024-02-29T10:30:00.000Z\n":    false,
		"2024-02-29 10:30:00.000+00:00": false,
	}
	for text, want := range tests {
		if got := IsISOTimestamp(text); got != want {
			t.Errorf("IsISOTimestamp(%q) = %v, want %v", text, got, want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	leapDay := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		layout    string
		locale    string
		want      string
		shortYear bool
	}{
		{"mm/dd/yyyy", "en", "02/29/2024", false},
		{"m/d/yy", "en", "2/29/24", true},
		{"dd.mm.yyyy", "de", "29.02.2024", false},
		{"yyyy-mm-dd", "en", "2024-02-29", false},
		{"yyyymmdd", "en", "20240229", false},
		{"yymmdd", "en", "240229", true},
		{"dd MM yyyy", "de", "29 Februar 2024", false},
		{"d M yyyy", "es", "29 feb 2024", false},
		{"DD, MM d, yyyy", "en", "Thursday, February 29, 2024", false},
		{"D dd/mm/yyyy", "fr", "jeu. 29/02/2024", false},
		{"dd MM yyyy", "pt-BR", "29 fevereiro 2024", false},
		{"dd 'de' MM 'de' yyyy", "es", "29 de febrero de 2024", false},
	}

	fullYears := []time.Time{
		time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(999, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1000, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC),
		time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC),
		leapDay,
		time.Date(2999, time.December, 31, 0, 0, 0, 0, time.UTC),
		time.Date(3000, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
	// yy expands to 20yy, so only this century round-trips.
	shortYears := []time.Time{
		time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC),
		leapDay,
		time.Date(2099, time.December, 31, 0, 0, 0, 0, time.UTC),
	}

	for _, tt := range tests {
		t.Run(tt.layout+"/"+tt.locale, func(t *testing.T) {
			mp := mustCompile(t, tt.layout, tt.locale)

			text, err := Format(DateValue(leapDay), mp)
			if err != nil {
				t.Fatalf("Format: %v", err)
			}
			if text != tt.want {
				t.Fatalf("Format = %q, want %q", text, tt.want)
			}

			days := fullYears
			if tt.shortYear {
				days = shortYears
			}
			for _, day := range days {
				text, err := Format(DateValue(day), mp)
				if err != nil {
					t.Fatalf("Format(%s): %v", day.Format(time.DateOnly), err)
				}
				value, err := Parse(text, mp, OutputDate)
				if err != nil {
					t.Fatalf("Parse(%q): %v", text, err)
				}
				if !value.Time.Equal(day) {
					t.Fatalf("Parse(%q) = %s, want %s", text, value.Time, day)
				}
			}
		})
	}
}

func TestFormatRejectsUnrepresentableYears(t *testing.T) {
	mp := mustCompile(t, "mm/dd/yyyy", "en")
	for _, year := range []int{-1, 10000} {
		_, err := Format(DateValue(time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC)), mp)
		if !errors.Is(err, ErrInvalidFormat) {
			t.Errorf("Format(year %d) error = %v, want ErrInvalidFormat", year, err)
		}
	}
}

func TestParseMissingFieldsUseDefaults(t *testing.T) {
	mp := mustCompile(t, "mm/dd", "en")
	now := func() time.Time { return time.Date(2023, time.June, 1, 12, 0, 0, 0, time.UTC) }

	value, err := parseDate("03/15", mp, parseSettings{now: now})
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	want := time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC)
	if !value.Time.Equal(want) {
		t.Fatalf("parseDate = %s, want %s", value.Time, want)
	}

	if _, err := parseDate("02/29", mp, parseSettings{now: now}); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("expected leap day to be rejected in 2023, got %v", err)
	}

	month := mustCompile(t, "MM yyyy", "en")
	value, err = Parse("July 2024", month, OutputDate)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if value.Time.Day() != 1 || value.Time.Month() != time.July {
		t.Fatalf("Parse(July 2024) = %s", value.Time)
	}
}

func TestParseRepeatedFields(t *testing.T) {
	mp := mustCompile(t, "yy yyyy", "en")
	value, err := Parse("24 2024", mp, OutputDate)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if value.Time.Year() != 2024 {
		t.Fatalf("year = %d", value.Time.Year())
	}
}

func TestFormatStringValueMismatch(t *testing.T) {
	mp := mustCompile(t, "mm/dd/yyyy", "en")
	_, err := Format(Value{Kind: KindString, Text: "2024-02-29"}, mp)
	if !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("error = %v, want ErrInvalidFormat", err)
	}
}
