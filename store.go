package datefmt

import (
	"sort"
)

// Store exposes read only access to locale name tables
type Store interface {
	// Lookup returns the names for an exact locale code and ok=false if missing
	Lookup(locale string) (LocaleNames, bool)
	// Locales returns the list of locales known to the store
	Locales() []string
}

// Tables maps locale codes to their name tables
type Tables map[string]LocaleNames

// Loader retrieves the tables used to seed a Store
type Loader interface {
	Load() (Tables, error)
}

// LoaderFunc adapters allow bare functions to implement Loader interface
type LoaderFunc func() (Tables, error)

// Load implements Loader for LoaderFunc
func (fn LoaderFunc) Load() (Tables, error) {
	return fn()
}

// StaticStore is an in memory store, read only after construction
type StaticStore struct {
	tables  Tables
	locales []string
}

var _ Store = &StaticStore{}

// NewStaticStore builds an immutable snapshot from the given tables.
// Locale keys are normalized so "pt_BR" and "pt-BR" resolve alike.
func NewStaticStore(data Tables) *StaticStore {
	if len(data) == 0 {
		return &StaticStore{tables: make(Tables)}
	}

	tables := make(Tables, len(data))
	locales := make([]string, 0, len(data))

	for locale, names := range data {
		code := normalizeLocale(locale)
		if code == "" {
			continue
		}
		if _, exists := tables[code]; !exists {
			locales = append(locales, code)
		}
		tables[code] = names.Clone()
	}

	sort.Strings(locales)

	return &StaticStore{
		tables:  tables,
		locales: locales,
	}
}

// NewStaticStoreFromLoader hydrates a StaticStore using the provided loader
func NewStaticStoreFromLoader(loader Loader) (*StaticStore, error) {
	if loader == nil {
		return NewStaticStore(nil), nil
	}

	tables, err := loader.Load()
	if err != nil {
		return nil, err
	}

	return NewStaticStore(tables), nil
}

// NewDefaultStore returns a store seeded with the bundled CLDR tables.
func NewDefaultStore() *StaticStore {
	return NewStaticStore(builtinTables)
}

// MergeTables layers the given tables over base; later tables win per locale.
func MergeTables(base Tables, layers ...Tables) Tables {
	out := make(Tables, len(base))
	for locale, names := range base {
		out[normalizeLocale(locale)] = names
	}
	for _, layer := range layers {
		for locale, names := range layer {
			out[normalizeLocale(locale)] = names
		}
	}
	return out
}

func (s *StaticStore) Lookup(locale string) (LocaleNames, bool) {
	if s == nil {
		return LocaleNames{}, false
	}

	names, ok := s.tables[normalizeLocale(locale)]
	if !ok {
		return LocaleNames{}, false
	}
	return names.Clone(), true
}

// Locales returns a slice with all locale codes
func (s *StaticStore) Locales() []string {
	if s == nil || len(s.locales) == 0 {
		return nil
	}
	out := make([]string, len(s.locales))
	copy(out, s.locales)
	return out
}
