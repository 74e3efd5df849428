package datefmt

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		text    string
		want    Clock
		wantErr bool
	}{
		{text: "09:05 am", want: Clock{Hour: 9, Minute: 5}},
		{text: "9:05PM", want: Clock{Hour: 21, Minute: 5}},
		{text: "12:00 am", want: Clock{Hour: 0}},
		{text: "12:15 pm", want: Clock{Hour: 12, Minute: 15}},
		{text: "7:30", want: Clock{Hour: 7, Minute: 30}},
		{text: "23:59:59", want: Clock{Hour: 23, Minute: 59, Second: 59, HasSeconds: true}},
		{text: "10:00:30 pm", want: Clock{Hour: 22, Second: 30, HasSeconds: true}},
		{text: "9:5", wantErr: true},
		{text: "24:00", wantErr: true},
		{text: "13:00 pm", wantErr: true},
		{text: "0:30 am", wantErr: true},
		{text: "10:60", wantErr: true},
		{text: "10:30 xm", wantErr: true},
		{text: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseClock(tt.text)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFormat) {
					t.Fatalf("error = %v, want ErrInvalidFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("clock mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClockRendering(t *testing.T) {
	tests := []struct {
		clock    Clock
		plain    string
		meridian string
	}{
		{Clock{Hour: 9, Minute: 5}, "09:05", "9:05 AM"},
		{Clock{Hour: 0, Minute: 0}, "00:00", "12:00 AM"},
		{Clock{Hour: 12, Minute: 30}, "12:30", "12:30 PM"},
		{Clock{Hour: 21, Minute: 5, Second: 7, HasSeconds: true}, "21:05:07", "9:05:07 PM"},
	}
	for _, tt := range tests {
		if got := tt.clock.String(); got != tt.plain {
			t.Errorf("String() = %q, want %q", got, tt.plain)
		}
		if got := tt.clock.Meridian(); got != tt.meridian {
			t.Errorf("Meridian() = %q, want %q", got, tt.meridian)
		}
	}
}

func TestDefaultTimeText(t *testing.T) {
	tests := []struct {
		text string
		want DefaultTime
	}{
		{"", DefaultTime{Mode: DefaultTimeNone}},
		{"false", DefaultTime{Mode: DefaultTimeNone}},
		{"none", DefaultTime{Mode: DefaultTimeNone}},
		{"current", DefaultTime{Mode: DefaultTimeCurrent}},
		{"Current", DefaultTime{Mode: DefaultTimeCurrent}},
		{"8:30 pm", DefaultTime{Mode: DefaultTimeLiteral, Value: "8:30 pm"}},
	}
	for _, tt := range tests {
		var got DefaultTime
		if err := got.UnmarshalText([]byte(tt.text)); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", tt.text, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("UnmarshalText(%q) mismatch (-want +got):\n%s", tt.text, diff)
		}

		text, err := got.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText: %v", err)
		}
		var again DefaultTime
		if err := again.UnmarshalText(text); err != nil || again != got {
			t.Fatalf("text %q did not round trip: %+v, %v", text, again, err)
		}
	}

	var bad DefaultTime
	if err := bad.UnmarshalText([]byte("noon")); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("UnmarshalText(noon) error = %v", err)
	}
}

func fixedNow() time.Time {
	return time.Date(2024, time.February, 29, 15, 4, 5, 0, time.UTC)
}

func newTestTimePipeline(t *testing.T, opts ...TimeOption) *TimePipeline {
	t.Helper()
	base := []TimeOption{WithTimeClock(fixedNow), WithTimeLocation(time.UTC)}
	p, err := NewTimePipeline(append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewTimePipeline: %v", err)
	}
	return p
}

func TestTimePipelineParse(t *testing.T) {
	p := newTestTimePipeline(t)

	value, err := p.Parse("09:05 am")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if value.Kind != KindString || value.Text != "09:05" {
		t.Fatalf("value = %+v", value)
	}
	want := time.Date(2024, time.February, 29, 9, 5, 0, 0, time.UTC)
	if !value.Time.Equal(want) {
		t.Fatalf("time = %s, want %s", value.Time, want)
	}

	if _, err := p.Parse("9:5"); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Parse(9:5) error = %v", err)
	}

	empty, err := p.Parse("")
	if err != nil || !empty.IsEmpty() {
		t.Fatalf("Parse(empty) = %+v, %v", empty, err)
	}

	seconds := newTestTimePipeline(t, WithShowSeconds(true), WithTimeOutput(OutputDate))
	value, err = seconds.Parse("21:05:07")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if value.Kind != KindDate || value.Time.Second() != 7 || value.Time.Hour() != 21 {
		t.Fatalf("value = %+v", value)
	}
}

func TestTimePipelineDefaults(t *testing.T) {
	tests := []struct {
		name string
		def  DefaultTime
		want string
	}{
		{"none", DefaultTime{Mode: DefaultTimeNone}, ""},
		{"current", DefaultTime{Mode: DefaultTimeCurrent}, "15:04"},
		{"literal", DefaultTime{Mode: DefaultTimeLiteral, Value: "8:30 pm"}, "20:30"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestTimePipeline(t, WithDefaultTime(tt.def))
			value, err := p.Default()
			if err != nil {
				t.Fatalf("Default: %v", err)
			}
			if value.Text != tt.want {
				t.Fatalf("Default = %+v, want text %q", value, tt.want)
			}
			rendered, err := p.Render(nil)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if rendered != tt.want {
				t.Fatalf("Render(nil) = %q, want %q", rendered, tt.want)
			}
		})
	}
}

func TestTimePipelineRender(t *testing.T) {
	p := newTestTimePipeline(t, WithShowMeridian(true))

	tests := []struct {
		model any
		want  string
	}{
		{"09:05", "9:05 AM"},
		{"21:05", "9:05 PM"},
		{Value{Kind: KindString, Text: "13:45"}, "1:45 PM"},
		{time.Date(2024, time.March, 1, 10, 30, 0, 0, time.UTC), "10:30 AM"},
		{"2024-02-29T10:30:00.000Z", "10:30 AM"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := p.Render(tt.model)
		if err != nil {
			t.Fatalf("Render(%v): %v", tt.model, err)
		}
		if got != tt.want {
			t.Fatalf("Render(%v) = %q, want %q", tt.model, got, tt.want)
		}
	}

	if _, err := p.Render("25:00"); !errors.Is(err, ErrInvalidFormat) {
		t.Fatalf("Render(25:00) error = %v", err)
	}
	if _, err := p.Render(3.5); err == nil {
		t.Fatalf("expected unsupported model error")
	}
}

func TestNewTimePipelineValidation(t *testing.T) {
	if _, err := NewTimePipeline(WithTimeOutput(OutputISO)); err == nil {
		t.Fatalf("expected iso output to be rejected")
	}
	if _, err := NewTimePipeline(WithDefaultTime(DefaultTime{Mode: DefaultTimeLiteral, Value: "noon"})); err == nil {
		t.Fatalf("expected invalid literal default to be rejected")
	}
	if _, err := NewTimePipeline(WithDefaultTime(DefaultTime{Mode: "sometimes"})); err == nil {
		t.Fatalf("expected unknown default mode to be rejected")
	}
}
