package datefmt

import (
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is the last entry of every resolution chain.
const DefaultLocale = "en"

func localeParentTag(locale string) string {
	if locale == "" {
		return ""
	}

	if tag, err := language.Parse(locale); err == nil {
		parent := tag.Parent()
		if parent == language.Und {
			return ""
		}
		if value := parent.String(); value != "" && value != "und" {
			return value
		}
		return ""
	}

	if idx := strings.LastIndex(locale, "-"); idx > 0 {
		return locale[:idx]
	}
	return ""
}

// localeParentChain walks CLDR parents, then plain subtag truncation, so
// "pt-BR" yields "pt" and "zh-Hant-TW" yields "zh-Hant", "zh".
func localeParentChain(locale string) []string {
	if locale == "" {
		return nil
	}

	var chain []string
	seen := map[string]struct{}{locale: {}}

	add := func(value string) bool {
		if value == "" || value == "und" {
			return false
		}
		if _, exists := seen[value]; exists {
			return false
		}
		seen[value] = struct{}{}
		chain = append(chain, value)
		return true
	}

	for current := localeParentTag(locale); current != ""; current = localeParentTag(current) {
		if !add(current) {
			break
		}
	}

	for current := locale; ; {
		idx := strings.LastIndex(current, "-")
		if idx <= 0 {
			break
		}
		current = current[:idx]
		add(current)
	}

	return chain
}

// normalizeLocale replaces underscores with hyphens and trims whitespace.
func normalizeLocale(locale string) string {
	return strings.ReplaceAll(strings.TrimSpace(locale), "_", "-")
}

// resolutionChain lists the locale codes tried for locale, in order:
// the locale itself, its parents, explicit fallbacks (with their parents)
// and finally the default locale.
func resolutionChain(locale, defaultLocale string, resolver FallbackResolver) []string {
	seen := make(map[string]struct{}, 6)
	chain := make([]string, 0, 6)

	add := func(value string) {
		if value == "" {
			return
		}
		if _, ok := seen[value]; ok {
			return
		}
		seen[value] = struct{}{}
		chain = append(chain, value)
	}

	locale = normalizeLocale(locale)
	add(locale)
	if tag, err := language.Parse(locale); err == nil && locale != "" {
		add(tag.String())
	}
	for _, parent := range localeParentChain(locale) {
		add(parent)
	}

	if resolver != nil && locale != "" {
		for _, fallback := range resolver.Resolve(locale) {
			add(fallback)
			for _, parent := range localeParentChain(fallback) {
				add(parent)
			}
		}
	}

	if defaultLocale = normalizeLocale(defaultLocale); defaultLocale == "" {
		defaultLocale = DefaultLocale
	}
	add(defaultLocale)
	for _, parent := range localeParentChain(defaultLocale) {
		add(parent)
	}

	return chain
}
