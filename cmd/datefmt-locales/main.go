package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"

	cldr "golang.org/x/text/unicode/cldr"
)

type generatorConfig struct {
	pkg      string
	out      string
	cldrPath string
	locales  []string
}

type localeTable struct {
	Locale      string
	Days        []string
	DaysShort   []string
	DaysMin     []string
	Months      []string
	MonthsShort []string
	Today       string
	Format      string
	WeekStart   int
}

var dayTypes = []string{"sun", "mon", "tue", "wed", "thu", "fri", "sat"}

// Layouts, "today" labels and week starts are not derived from CLDR
// patterns; these tables cover the bundled locales.
var defaultLayouts = map[string]string{
	"en": "mm/dd/yyyy",
	"de": "dd.mm.yyyy",
	"es": "dd/mm/yyyy",
	"fr": "dd/mm/yyyy",
	"pt": "dd/mm/yyyy",
}

var todayLabels = map[string]string{
	"en": "Today",
	"de": "Heute",
	"es": "Hoy",
	"fr": "Aujourd’hui",
	"pt": "Hoje",
}

var weekStarts = map[string]int{
	"de": 1,
	"es": 1,
	"fr": 1,
}

type localeFlag struct {
	items []string
}

func (f *localeFlag) String() string {
	return strings.Join(f.items, ",")
}

func (f *localeFlag) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			f.items = append(f.items, strings.ReplaceAll(part, "_", "-"))
		}
	}
	return nil
}

func main() {
	cfg, err := parseFlags()
	if err != nil {
		reportError(err)
	}

	if err := run(cfg); err != nil {
		reportError(err)
	}
}

func reportError(err error) {
	fmt.Fprintf(os.Stderr, "datefmt-locales: %v\n", err)
	os.Exit(1)
}

func parseFlags() (generatorConfig, error) {
	var cfg generatorConfig
	var localeList localeFlag

	flag.StringVar(&cfg.pkg, "pkg", "datefmt", "package name for generated file")
	flag.StringVar(&cfg.out, "out", "locale_tables_data.go", "path to generated Go file")
	flag.StringVar(&cfg.cldrPath, "cldr", "", "path to CLDR core data directory (expects a main/ subdirectory)")
	flag.Var(&localeList, "locale", "locale to generate. Repeat flag or separate with commas to add more.")

	flag.Parse()

	if len(localeList.items) == 0 {
		return generatorConfig{}, errors.New("at least one -locale value is required")
	}
	cfg.locales = localeList.items

	if cfg.cldrPath == "" {
		cfg.cldrPath = os.Getenv("CLDR_CORE_DIR")
	}
	if cfg.cldrPath == "" {
		return generatorConfig{}, errors.New("missing CLDR data directory (set -cldr or CLDR_CORE_DIR)")
	}

	return cfg, nil
}

func run(cfg generatorConfig) error {
	data, err := loadCLDR(cfg.cldrPath)
	if err != nil {
		return err
	}

	tables := make([]localeTable, 0, len(cfg.locales))
	for _, locale := range cfg.locales {
		table, err := buildTable(data, locale)
		if err != nil {
			return fmt.Errorf("build table for %s: %w", locale, err)
		}
		tables = append(tables, table)
	}

	sort.Slice(tables, func(i, j int) bool {
		return tables[i].Locale < tables[j].Locale
	})

	source, err := renderSource(cfg.pkg, tables)
	if err != nil {
		return err
	}

	if err := ensureDir(cfg.out); err != nil {
		return err
	}
	return os.WriteFile(cfg.out, source, 0o644)
}

func loadCLDR(path string) (*cldr.CLDR, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat CLDR directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("CLDR path %q is not a directory", path)
	}

	var decoder cldr.Decoder
	decoder.SetSectionFilter("main")

	data, err := decoder.DecodePath(path)
	if err != nil {
		return nil, fmt.Errorf("decode CLDR data: %w", err)
	}
	return data, nil
}

func buildTable(data *cldr.CLDR, locale string) (localeTable, error) {
	table := localeTable{Locale: locale}

	calendar := gregorian(findLDML(data, locale))
	if calendar == nil {
		return table, errors.New("missing gregorian calendar")
	}

	table.Days = dayNames(calendar, "wide")
	table.DaysShort = dayNames(calendar, "abbreviated")
	table.DaysMin = dayNames(calendar, "short")
	table.Months = monthNames(calendar, "wide")
	table.MonthsShort = monthNames(calendar, "abbreviated")

	if len(table.Days) != 7 || len(table.DaysShort) != 7 {
		return table, fmt.Errorf("incomplete day names (%d wide, %d abbreviated)", len(table.Days), len(table.DaysShort))
	}
	if len(table.Months) != 12 || len(table.MonthsShort) != 12 {
		return table, fmt.Errorf("incomplete month names (%d wide, %d abbreviated)", len(table.Months), len(table.MonthsShort))
	}
	if len(table.DaysMin) != 7 {
		table.DaysMin = nil
	}

	base := strings.SplitN(locale, "-", 2)[0]
	table.Format = lookupDefault(defaultLayouts, locale, base)
	table.Today = lookupDefault(todayLabels, locale, base)
	if start, ok := weekStarts[locale]; ok {
		table.WeekStart = start
	} else {
		table.WeekStart = weekStarts[base]
	}

	return table, nil
}

func lookupDefault(values map[string]string, locale, base string) string {
	if v, ok := values[locale]; ok {
		return v
	}
	return values[base]
}

func findLDML(data *cldr.CLDR, locale string) *cldr.LDML {
	if data == nil {
		return nil
	}
	candidate := strings.ReplaceAll(locale, "-", "_")
	for candidate != "" {
		if ldml, err := data.LDML(candidate); err == nil && ldml != nil {
			return ldml
		}
		idx := strings.LastIndex(candidate, "_")
		if idx < 0 {
			break
		}
		candidate = candidate[:idx]
	}
	return data.RawLDML("root")
}

func gregorian(ldml *cldr.LDML) *cldr.Calendar {
	if ldml == nil || ldml.Dates == nil || ldml.Dates.Calendars == nil {
		return nil
	}
	for _, calendar := range ldml.Dates.Calendars.Calendar {
		if calendar != nil && calendar.Type == "gregorian" {
			return calendar
		}
	}
	return nil
}

// dayNames prefers the format context and falls back to stand-alone.
func dayNames(calendar *cldr.Calendar, width string) []string {
	if calendar.Days == nil {
		return nil
	}
	for _, context := range []string{"format", "stand-alone"} {
		for _, ctx := range calendar.Days.DayContext {
			if ctx == nil || ctx.Type != context {
				continue
			}
			for _, w := range ctx.DayWidth {
				if w == nil || w.Type != width {
					continue
				}
				byType := make(map[string]string, len(w.Day))
				for _, day := range w.Day {
					if day != nil {
						byType[day.Type] = day.Data()
					}
				}
				names := make([]string, 0, len(dayTypes))
				for _, key := range dayTypes {
					if name, ok := byType[key]; ok {
						names = append(names, name)
					}
				}
				if len(names) == len(dayTypes) {
					return names
				}
			}
		}
	}
	return nil
}

func monthNames(calendar *cldr.Calendar, width string) []string {
	if calendar.Months == nil {
		return nil
	}
	for _, context := range []string{"format", "stand-alone"} {
		for _, ctx := range calendar.Months.MonthContext {
			if ctx == nil || ctx.Type != context {
				continue
			}
			for _, w := range ctx.MonthWidth {
				if w == nil || w.Type != width {
					continue
				}
				names := make([]string, 12)
				found := 0
				for _, month := range w.Month {
					if month == nil || month.Yeartype != "" {
						continue
					}
					var idx int
					if _, err := fmt.Sscanf(month.Type, "%d", &idx); err != nil || idx < 1 || idx > 12 {
						continue
					}
					if names[idx-1] == "" {
						found++
					}
					names[idx-1] = month.Data()
				}
				if found == 12 {
					return names
				}
			}
		}
	}
	return nil
}

func renderSource(pkg string, tables []localeTable) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("// Code generated by datefmt-locales. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)

	buf.WriteString("var builtinTables = Tables{\n")
	for _, table := range tables {
		fmt.Fprintf(&buf, "\t%q: {\n", table.Locale)
		writeList(&buf, "Days", table.Days)
		writeList(&buf, "DaysShort", table.DaysShort)
		if len(table.DaysMin) > 0 {
			writeList(&buf, "DaysMin", table.DaysMin)
		}
		writeList(&buf, "Months", table.Months)
		writeList(&buf, "MonthsShort", table.MonthsShort)
		fmt.Fprintf(&buf, "\t\tToday: %q,\n", table.Today)
		fmt.Fprintf(&buf, "\t\tFormat: %q,\n", table.Format)
		fmt.Fprintf(&buf, "\t\tWeekStart: %d,\n", table.WeekStart)
		buf.WriteString("\t},\n")
	}
	buf.WriteString("}\n\n")

	buf.WriteString("var generatedLocales = []string{\n")
	for _, table := range tables {
		fmt.Fprintf(&buf, "\t%q,\n", table.Locale)
	}
	buf.WriteString("}\n\n")

	buf.WriteString("// GeneratedLocales lists the locales bundled with the package.\n")
	buf.WriteString("func GeneratedLocales() []string {\n")
	buf.WriteString("\treturn append([]string{}, generatedLocales...)\n")
	buf.WriteString("}\n")

	return format.Source(buf.Bytes())
}

func writeList(buf *bytes.Buffer, field string, values []string) {
	fmt.Fprintf(buf, "\t\t%s: []string{", field)
	for i, v := range values {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(buf, "%q", v)
	}
	buf.WriteString("},\n")
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
