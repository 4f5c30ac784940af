// Package seed loads the initial book catalog from YAML.
package seed

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Sirpyerre/book-reviews/internal/core/domain"
)

//go:embed books.yaml
var defaultCatalog []byte

type catalogFile struct {
	Books []*domain.Book `yaml:"books"`
}

// Default returns the built-in catalog.
func Default() ([]*domain.Book, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog at path, or the built-in one when path is empty.
func Load(path string) ([]*domain.Book, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses a catalog from r.
func Read(r io.Reader) ([]*domain.Book, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a YAML catalog. Every book needs an ISBN and a
// title, and ISBNs must be unique.
func Parse(raw []byte) ([]*domain.Book, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidSeed, err)
	}

	seen := make(map[string]struct{}, len(file.Books))
	for i, b := range file.Books {
		if b == nil || b.ISBN == "" {
			return nil, fmt.Errorf("%w: book[%d] has no isbn", domain.ErrInvalidSeed, i)
		}
		if b.Title == "" {
			return nil, fmt.Errorf("%w: book %q has no title", domain.ErrInvalidSeed, b.ISBN)
		}
		if _, dup := seen[b.ISBN]; dup {
			return nil, fmt.Errorf("%w: duplicate isbn %q", domain.ErrInvalidSeed, b.ISBN)
		}
		seen[b.ISBN] = struct{}{}
		b.Reviews = b.Reviews.Clone()
	}
	return file.Books, nil
}
