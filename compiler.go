package datefmt

import (
	"sort"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"go.uber.org/zap"
)

// Compiler turns layouts into MatchingPatterns using a locale Store.
type Compiler struct {
	store         Store
	resolver      FallbackResolver
	defaultLocale string
	logger        *zap.Logger
	matchTimeout  time.Duration
}

// CompilerOption mutates a Compiler during construction
type CompilerOption func(*Compiler)

func WithCompilerResolver(resolver FallbackResolver) CompilerOption {
	return func(c *Compiler) {
		c.resolver = resolver
	}
}

func WithCompilerDefaultLocale(locale string) CompilerOption {
	return func(c *Compiler) {
		if locale = normalizeLocale(locale); locale != "" {
			c.defaultLocale = locale
		}
	}
}

func WithCompilerLogger(logger *zap.Logger) CompilerOption {
	return func(c *Compiler) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMatchTimeout bounds a single match attempt; zero disables the limit.
func WithMatchTimeout(timeout time.Duration) CompilerOption {
	return func(c *Compiler) {
		c.matchTimeout = timeout
	}
}

// NewCompiler builds a compiler over store. A nil store uses the bundled
// tables.
func NewCompiler(store Store, opts ...CompilerOption) (*Compiler, error) {
	if err := validateVocabulary(vocabulary); err != nil {
		return nil, err
	}

	if store == nil {
		store = NewDefaultStore()
	}

	c := &Compiler{
		store:         store,
		defaultLocale: DefaultLocale,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

var defaultCompiler = mustCompiler()

func mustCompiler() *Compiler {
	c, err := NewCompiler(nil)
	if err != nil {
		panic(err)
	}
	return c
}

// Compile compiles layout for locale against the bundled tables.
func Compile(layout, locale string) (*MatchingPattern, error) {
	return defaultCompiler.Compile(layout, locale)
}

// Names resolves the locale table for locale, following the fallback chain.
// It returns the code of the table that was used.
func (c *Compiler) Names(locale string) (LocaleNames, string, error) {
	chain := resolutionChain(locale, c.defaultLocale, c.resolver)
	for _, candidate := range chain {
		if names, ok := c.store.Lookup(candidate); ok {
			if candidate != normalizeLocale(locale) {
				c.logger.Debug("locale fallback",
					zap.String("requested", locale),
					zap.String("resolved", candidate))
			}
			return names, candidate, nil
		}
	}
	return LocaleNames{}, "", &ConfigurationError{Locale: locale, Tried: chain}
}

// Compile compiles layout for locale.
func (c *Compiler) Compile(layout, locale string) (*MatchingPattern, error) {
	pattern, err := ParsePattern(layout)
	if err != nil {
		return nil, err
	}

	names, resolved, err := c.Names(locale)
	if err != nil {
		return nil, err
	}

	source := buildExpression(pattern, names)
	re, err := regexp2.Compile(source, regexp2.IgnoreCase)
	if err != nil {
		return nil, err
	}
	if c.matchTimeout > 0 {
		re.MatchTimeout = c.matchTimeout
	}

	c.logger.Debug("compiled layout",
		zap.String("layout", layout),
		zap.String("locale", resolved),
		zap.String("expression", source))

	return &MatchingPattern{
		Pattern:  pattern,
		Locale:   locale,
		Resolved: resolved,
		Names:    names,
		source:   source,
		re:       re,
	}, nil
}

// MatchingPattern is a compiled, anchored, case-insensitive expression for
// a layout and locale. Capture group n holds Pattern.Fields()[n-1].
type MatchingPattern struct {
	Pattern  Pattern
	Locale   string
	Resolved string
	Names    LocaleNames

	source string
	re     *regexp2.Regexp
}

// String returns the compiled expression.
func (m *MatchingPattern) String() string {
	if m == nil {
		return ""
	}
	return m.source
}

// MatchString reports whether text fully matches the layout.
func (m *MatchingPattern) MatchString(text string) bool {
	fields, err := m.Submatches(text)
	return err == nil && fields != nil
}

// Submatches returns the text of each field token, or nil when text does
// not match. A non-nil error is only returned when matching timed out.
func (m *MatchingPattern) Submatches(text string) ([]string, error) {
	if m == nil || m.re == nil {
		return nil, nil
	}
	match, err := m.re.FindStringMatch(text)
	if err != nil || match == nil {
		return nil, err
	}

	count := len(m.Pattern.Fields())
	out := make([]string, count)
	for i := 0; i < count; i++ {
		group := match.GroupByNumber(i + 1)
		if group == nil {
			return nil, nil
		}
		out[i] = group.String()
	}
	return out, nil
}

const (
	dayLoose     = `(?:[0-2]?[0-9]|3[01])`
	dayStrict    = `(?:[0-2][0-9]|3[01])`
	monthLoose   = `(?:0?[1-9]|1[012])`
	monthStrict  = `(?:0[1-9]|1[012])`
	yearShort    = `[0-9]{2}`
	yearFull     = `[0-9]{4}`
	noTrailDigit = `(?![0-9])`
)

func buildExpression(pattern Pattern, names LocaleNames) string {
	var b strings.Builder
	b.WriteString("^")

	for i, token := range pattern.Tokens {
		adjacent := numericNeighbour(pattern.Tokens, i)
		switch token.Kind {
		case TokenSeparator:
			b.WriteString(separatorExpression(token.Text))
		case TokenLiteral:
			b.WriteString(regexp2.Escape(token.Text))
		case TokenDay:
			b.WriteString("(" + dayLoose + ")")
		case TokenDayPadded:
			b.WriteString("(" + pick(adjacent, dayStrict, dayLoose) + ")")
		case TokenMonth:
			b.WriteString("(" + monthLoose + ")")
		case TokenMonthPadded:
			b.WriteString("(" + pick(adjacent, monthStrict, monthLoose) + ")")
		case TokenYearShort, TokenYear:
			expr := yearShort
			if token.Kind == TokenYear {
				expr = yearFull
			}
			b.WriteString("(" + expr + ")")
			if !nextIsNumeric(pattern.Tokens, i) {
				b.WriteString(noTrailDigit)
			}
		case TokenDayName:
			b.WriteString(alternation(weekNames(names.Days)))
		case TokenDayNameShort:
			b.WriteString(alternation(weekNames(names.DaysShort)))
		case TokenMonthName:
			b.WriteString(alternation(names.Months))
		case TokenMonthNameShort:
			b.WriteString(alternation(names.MonthsShort))
		}
	}

	b.WriteString(`\z`)
	return b.String()
}

func separatorExpression(sep string) string {
	switch sep {
	case "/":
		return `[\/]`
	case " ":
		return `[\s]`
	default:
		return "[" + regexp2.Escape(sep) + "]"
	}
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

func nextIsNumeric(tokens []Token, i int) bool {
	return i+1 < len(tokens) && tokens[i+1].IsNumeric()
}

func numericNeighbour(tokens []Token, i int) bool {
	if nextIsNumeric(tokens, i) {
		return true
	}
	return i > 0 && tokens[i-1].IsNumeric()
}

// weekNames trims tables that repeat Sunday as an eighth entry.
func weekNames(days []string) []string {
	if len(days) > 7 {
		return days[:7]
	}
	return days
}

// alternation builds a capturing group over names, longest first so a
// short name never wins over a longer one sharing its prefix.
func alternation(names []string) string {
	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if name == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, name)
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return len(unique[i]) > len(unique[j])
	})

	escaped := make([]string, len(unique))
	for i, name := range unique {
		escaped[i] = regexp2.Escape(name)
	}
	return "(" + strings.Join(escaped, "|") + ")"
}
