// Package storage persists the book collection as a JSON file.
package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jeanpaul/bookshelf/internal/book"
	"github.com/jeanpaul/bookshelf/internal/schema"
)

var _ book.Persister = (*File)(nil)

// File reads and rewrites the whole collection at a single path.
type File struct {
	path      string
	validator *schema.Validator
}

// NewFile returns a File backed by path.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("storage: data file path is required")
	}
	return &File{path: path, validator: schema.NewValidator()}, nil
}

// Path returns the backing file path.
func (f *File) Path() string { return f.path }

// Load reads the collection. A missing or malformed file yields an empty
// collection.
func (f *File) Load() ([]book.Book, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Debug("data file missing, starting empty", "path", f.path)
			return []book.Book{}, nil
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	if !json.Valid(data) {
		slog.Warn("data file is not valid JSON, starting empty", "path", f.path)
		return []book.Book{}, nil
	}
	if err := f.validator.Validate(schema.Collection, data); err != nil {
		slog.Warn("data file does not hold a book list, starting empty", "path", f.path, "error", err)
		return []book.Book{}, nil
	}

	var books []book.Book
	if err := json.Unmarshal(data, &books); err != nil {
		slog.Warn("data file could not be decoded, starting empty", "path", f.path, "error", err)
		return []book.Book{}, nil
	}
	if books == nil {
		books = []book.Book{}
	}
	return books, nil
}

// Save replaces the file with the full collection.
func (f *File) Save(books []book.Book) error {
	if books == nil {
		books = []book.Book{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(books); err != nil {
		return fmt.Errorf("failed to marshal collection: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	if err := os.WriteFile(f.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write data file: %w", err)
	}
	return nil
}
