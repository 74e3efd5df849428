package datefmt

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenKind identifies a layout token.
type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenSeparator
	TokenDay            // d
	TokenDayPadded      // dd
	TokenMonth          // m
	TokenMonthPadded    // mm
	TokenYearShort      // yy
	TokenYear           // yyyy
	TokenDayNameShort   // D
	TokenDayName        // DD
	TokenMonthNameShort // M
	TokenMonthName      // MM
)

var tokenKindNames = map[TokenKind]string{
	TokenLiteral:        "literal",
	TokenSeparator:      "separator",
	TokenDay:            "d",
	TokenDayPadded:      "dd",
	TokenMonth:          "m",
	TokenMonthPadded:    "mm",
	TokenYearShort:      "yy",
	TokenYear:           "yyyy",
	TokenDayNameShort:   "D",
	TokenDayName:        "DD",
	TokenMonthNameShort: "M",
	TokenMonthName:      "MM",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one element of a parsed layout.
type Token struct {
	Kind TokenKind
	Text string
}

// IsField reports whether the token captures a date component.
func (t Token) IsField() bool {
	return t.Kind != TokenLiteral && t.Kind != TokenSeparator
}

// IsNumeric reports whether the token renders as digits.
func (t Token) IsNumeric() bool {
	switch t.Kind {
	case TokenDay, TokenDayPadded, TokenMonth, TokenMonthPadded, TokenYearShort, TokenYear:
		return true
	}
	return false
}

// Pattern is a layout split into tokens, in input order.
type Pattern struct {
	Layout string
	Tokens []Token
}

// Fields returns the field tokens in order; their index is the capture
// group number minus one in the compiled pattern.
func (p Pattern) Fields() []Token {
	out := make([]Token, 0, len(p.Tokens))
	for _, token := range p.Tokens {
		if token.IsField() {
			out = append(out, token)
		}
	}
	return out
}

type vocabularyEntry struct {
	key  string
	kind TokenKind
}

// vocabulary is kept in scan order: longer keys before any key they prefix.
var vocabulary = sortVocabulary([]vocabularyEntry{
	{key: "/", kind: TokenSeparator},
	{key: "-", kind: TokenSeparator},
	{key: ".", kind: TokenSeparator},
	{key: " ", kind: TokenSeparator},
	{key: "dd", kind: TokenDayPadded},
	{key: "d", kind: TokenDay},
	{key: "mm", kind: TokenMonthPadded},
	{key: "m", kind: TokenMonth},
	{key: "DD", kind: TokenDayName},
	{key: "D", kind: TokenDayNameShort},
	{key: "MM", kind: TokenMonthName},
	{key: "M", kind: TokenMonthNameShort},
	{key: "yyyy", kind: TokenYear},
	{key: "yy", kind: TokenYearShort},
})

func sortVocabulary(entries []vocabularyEntry) []vocabularyEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].key) > len(entries[j].key)
	})
	return entries
}

// validateVocabulary rejects an ordering where a key is scanned before a
// longer key that starts with it.
func validateVocabulary(entries []vocabularyEntry) error {
	for i, entry := range entries {
		for _, later := range entries[i+1:] {
			if later.key == entry.key {
				return fmt.Errorf("%w: duplicate key %q", ErrAmbiguousToken, entry.key)
			}
			if len(later.key) > len(entry.key) && strings.HasPrefix(later.key, entry.key) {
				return fmt.Errorf("%w: %q shadows %q", ErrAmbiguousToken, entry.key, later.key)
			}
		}
	}
	return nil
}

// ParsePattern tokenizes layout in a single longest-match-first pass.
// Text outside the vocabulary is kept as literal tokens. Text in single
// quotes is always literal ('' is a quote); an unquoted letter touching a
// field token is rejected, so "dd de MM" must be written "dd 'de' MM".
func ParsePattern(layout string) (Pattern, error) {
	if strings.TrimSpace(layout) == "" {
		return Pattern{}, fmt.Errorf("%w: empty layout", ErrInvalidLayout)
	}

	pattern := Pattern{Layout: layout}
	var literal strings.Builder

	flush := func() {
		if literal.Len() == 0 {
			return
		}
		pattern.Tokens = append(pattern.Tokens, Token{Kind: TokenLiteral, Text: literal.String()})
		literal.Reset()
	}
	touching := func(r rune) error {
		return fmt.Errorf("%w: letter %q touches a field in %q; quote literal text", ErrInvalidLayout, r, layout)
	}

	// afterField: the previous element was a field token.
	// afterLetter: the previous element was an unquoted letter.
	var afterField, afterLetter bool
	var lastLetter rune

	for i := 0; i < len(layout); {
		if layout[i] == '\'' {
			text, n, err := quotedLiteral(layout[i:])
			if err != nil {
				return Pattern{}, fmt.Errorf("%w: %v in %q", ErrInvalidLayout, err, layout)
			}
			literal.WriteString(text)
			i += n
			afterField, afterLetter = false, false
			continue
		}

		entry, ok := matchVocabulary(layout[i:])
		if !ok {
			r, size := utf8.DecodeRuneInString(layout[i:])
			isLetter := unicode.IsLetter(r)
			if isLetter && afterField {
				return Pattern{}, touching(r)
			}
			literal.WriteString(layout[i : i+size])
			i += size
			afterField, afterLetter, lastLetter = false, isLetter, r
			continue
		}

		isField := entry.kind != TokenSeparator
		if isField && afterLetter {
			return Pattern{}, touching(lastLetter)
		}
		flush()
		pattern.Tokens = append(pattern.Tokens, Token{Kind: entry.kind, Text: entry.key})
		i += len(entry.key)
		afterField, afterLetter = isField, false
	}
	flush()

	if len(pattern.Fields()) == 0 {
		return Pattern{}, fmt.Errorf("%w: %q has no date fields", ErrInvalidLayout, layout)
	}

	return pattern, nil
}

// quotedLiteral reads a quoted run starting at s[0] == '\'' and returns its
// text and the number of bytes consumed.
func quotedLiteral(s string) (string, int, error) {
	if strings.HasPrefix(s, "''") {
		return "'", 2, nil
	}
	var b strings.Builder
	for j := 1; j < len(s); j++ {
		if s[j] != '\'' {
			b.WriteByte(s[j])
			continue
		}
		if j+1 < len(s) && s[j+1] == '\'' {
			b.WriteByte('\'')
			j++
			continue
		}
		return b.String(), j + 1, nil
	}
	return "", 0, errors.New("unterminated quote")
}

func matchVocabulary(rest string) (vocabularyEntry, bool) {
	for _, entry := range vocabulary {
		if strings.HasPrefix(rest, entry.key) {
			return entry, true
		}
	}
	return vocabularyEntry{}, false
}
