package datefmt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// FileLoader reads locale tables from JSON or YAML files keyed by locale.
// Later files override earlier ones per locale.
type FileLoader struct {
	paths       []string
	withBuiltin bool
}

func NewFileLoader(paths ...string) *FileLoader {
	return &FileLoader{paths: append([]string(nil), paths...)}
}

// WithBuiltin layers the files over the bundled tables.
func (l *FileLoader) WithBuiltin() *FileLoader {
	if l == nil {
		return l
	}
	l.withBuiltin = true
	return l
}

func (l *FileLoader) Load() (Tables, error) {
	if l == nil || (len(l.paths) == 0 && !l.withBuiltin) {
		return nil, errors.New("datefmt: no loader paths configured")
	}

	tables := make(Tables)
	if l.withBuiltin {
		tables = MergeTables(builtinTables)
	}

	for _, path := range l.paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("datefmt: read %s: %w", path, err)
		}

		src, err := decodeTablesFile(path, data)
		if err != nil {
			return nil, fmt.Errorf("datefmt: decode %s: %w", path, err)
		}
		tables = MergeTables(tables, src)
	}

	return tables, nil
}

func decodeTablesFile(path string, data []byte) (Tables, error) {
	var raw Tables

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("yaml parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported extension %s", ext)
	}

	if len(raw) == 0 {
		return nil, errors.New("no locale tables defined")
	}

	for locale, names := range raw {
		if normalizeLocale(locale) == "" {
			return nil, fmt.Errorf("empty locale in %s", path)
		}
		if err := optionsValidator().Struct(names); err != nil {
			return nil, fmt.Errorf("%s: %w", locale, err)
		}
	}
	return raw, nil
}
