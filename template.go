package datefmt

import (
	"reflect"
	"time"
)

// HelperConfig configures template helper exports
type HelperConfig struct {
	// LocaleKey names the field or map key holding the locale in template data.
	LocaleKey string
	// Layout is used by helpers called without an explicit layout.
	Layout string
}

// TemplateHelpers exposes date helpers for text/template and html/template.
// The first helper argument is either a locale string or the template data.
func TemplateHelpers(cache *Cache, cfg HelperConfig) map[string]any {
	if cache == nil {
		cache = NewCache(nil)
	}
	if cfg.Layout == "" {
		cfg.Layout = DefaultLayout
	}

	return map[string]any{
		"current_locale": func(data any) string {
			return extractLocale(data, cfg.LocaleKey)
		},
		"format_date": func(data any, value time.Time, layout ...string) (string, error) {
			mp, err := cache.Get(pickLayout(cfg.Layout, layout), extractLocale(data, cfg.LocaleKey))
			if err != nil {
				return "", err
			}
			return Format(DateValue(value), mp)
		},
		"parse_date": func(data any, text string, layout ...string) (time.Time, error) {
			mp, err := cache.Get(pickLayout(cfg.Layout, layout), extractLocale(data, cfg.LocaleKey))
			if err != nil {
				return time.Time{}, err
			}
			value, err := Parse(text, mp, OutputDate)
			if err != nil {
				return time.Time{}, err
			}
			return value.Time, nil
		},
		"format_time": func(value time.Time, meridian bool) string {
			clock := ClockOf(value)
			clock.HasSeconds = false
			if meridian {
				return clock.Meridian()
			}
			return clock.String()
		},
	}
}

func pickLayout(fallback string, layouts []string) string {
	if len(layouts) > 0 && layouts[0] != "" {
		return layouts[0]
	}
	return fallback
}

// extractLocale reads the locale from template data: a string, a map or a
// struct field named by localeKey.
func extractLocale(data any, localeKey string) string {
	if data == nil {
		return DefaultLocale
	}

	if localeKey == "" {
		localeKey = "Locale"
	}

	switch d := data.(type) {
	case string:
		return d
	case map[string]any:
		if v, ok := d[localeKey]; ok {
			if str, ok := v.(string); ok {
				return str
			}
		}
	case map[string]string:
		if v, ok := d[localeKey]; ok {
			return v
		}
	}

	value := reflect.ValueOf(data)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return DefaultLocale
		}
		value = value.Elem()
	}

	if value.Kind() == reflect.Struct {
		field := value.FieldByName(localeKey)
		if field.IsValid() && field.Kind() == reflect.String {
			return field.String()
		}
	}

	return DefaultLocale
}
