package main

import (
	"strings"
	"testing"
)

func TestLocaleFlag(t *testing.T) {
	var f localeFlag
	if err := f.Set("en, pt_BR"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := f.Set("de"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := f.String(); got != "en,pt-BR,de" {
		t.Fatalf("String() = %q", got)
	}
}

func TestLookupDefault(t *testing.T) {
	if got := lookupDefault(defaultLayouts, "pt-BR", "pt"); got != "dd/mm/yyyy" {
		t.Fatalf("lookupDefault = %q", got)
	}
	if got := lookupDefault(defaultLayouts, "ja", "ja"); got != "" {
		t.Fatalf("lookupDefault = %q, want empty", got)
	}
}

func TestRenderSource(t *testing.T) {
	table := localeTable{
		Locale:      "en",
		Days:        []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
		DaysShort:   []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
		Months:      []string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		MonthsShort: []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
		Today:       "Today",
		Format:      "mm/dd/yyyy",
	}

	src, err := renderSource("datefmt", []localeTable{table})
	if err != nil {
		t.Fatalf("renderSource: %v", err)
	}

	out := string(src)
	for _, want := range []string{
		"// Code generated by datefmt-locales. DO NOT EDIT.",
		"package datefmt",
		`"en": {`,
		`"mm/dd/yyyy",`,
		"func GeneratedLocales() []string {",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("generated source missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "DaysMin") {
		t.Errorf("empty DaysMin should be omitted")
	}
}
