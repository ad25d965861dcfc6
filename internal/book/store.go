package book

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// Store keeps the ordered collection in memory and writes it through its
// Persister after every mutation.
type Store struct {
	mu    sync.RWMutex
	books []Book
	p     Persister
}

// Open loads the collection from p.
func Open(p Persister) (*Store, error) {
	books, err := p.Load()
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}
	if books == nil {
		books = []Book{}
	}
	slog.Debug("collection loaded", "books", len(books))
	return &Store{books: books, p: p}, nil
}

// Len returns the number of books.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.books)
}

// Create appends a new unread-progress book and persists the collection.
func (s *Store) Create(title, author, year, genre string, isRead bool) (Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := Book{
		Title:           title,
		Author:          author,
		PublicationYear: year,
		Genre:           genre,
		IsRead:          isRead,
	}
	s.books = append(s.books, b)
	if err := s.save("create"); err != nil {
		return b, err
	}
	slog.Debug("book created", "title", title)
	return b, nil
}

// Delete removes the first book titled exactly title.
func (s *Store) Delete(title string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(title)
	if i < 0 {
		return false, nil
	}
	s.books = append(s.books[:i], s.books[i+1:]...)
	if err := s.save("delete"); err != nil {
		return true, err
	}
	slog.Debug("book deleted", "title", title)
	return true, nil
}

// Get returns the first book titled exactly title.
func (s *Store) Get(title string) (Book, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.index(title)
	if i < 0 {
		return Book{}, false
	}
	return s.books[i], true
}

// Update merges u into the first book titled exactly title. Blank fields keep
// their current value. The returned book is the merged record.
func (s *Store) Update(title string, u Update) (Book, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(title)
	if i < 0 {
		return Book{}, false, nil
	}
	b, err := merge(s.books[i], u)
	if err != nil {
		return s.books[i], true, err
	}
	s.books[i] = b
	if err := s.save("update"); err != nil {
		return b, true, err
	}
	slog.Debug("book updated", "title", title, "progress", b.ReadingProgress)
	return b, true, nil
}

func merge(b Book, u Update) (Book, error) {
	if raw := strings.TrimSpace(u.ReadingProgress); raw != "" {
		p, err := ParseProgress(raw)
		if err != nil {
			return b, err
		}
		b.ReadingProgress = p
	}
	if u.Title != "" {
		b.Title = u.Title
	}
	if u.Author != "" {
		b.Author = u.Author
	}
	if u.PublicationYear != "" {
		b.PublicationYear = u.PublicationYear
	}
	if u.Genre != "" {
		b.Genre = u.Genre
	}
	if u.IsRead != nil {
		b.IsRead = *u.IsRead
	}
	return b, nil
}

// ParseProgress parses a reading progress percentage in the range 0..100.
func ParseProgress(raw string) (int, error) {
	p, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Field: "reading_progress", Value: raw, Reason: "not a whole number"}
	}
	if err := CheckProgress(p); err != nil {
		return 0, err
	}
	return p, nil
}

// CheckProgress rejects percentages outside 0..100.
func CheckProgress(p int) error {
	if p < 0 || p > 100 {
		return &ValidationError{Field: "reading_progress", Value: strconv.Itoa(p), Reason: "must be between 0 and 100"}
	}
	return nil
}

// Search returns the books whose title or author contains text, ignoring
// case, in collection order. The result is never nil.
func (s *Store) Search(mode SearchMode, text string) []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(text)
	found := []Book{}
	for _, b := range s.books {
		var field string
		switch mode {
		case ByTitle:
			field = b.Title
		case ByAuthor:
			field = b.Author
		default:
			continue
		}
		if strings.Contains(strings.ToLower(field), needle) {
			found = append(found, b)
		}
	}
	return found
}

// List returns a copy of the collection in order.
func (s *Store) List() []Book {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Book, len(s.books))
	copy(out, s.books)
	return out
}

// Progress projects the collection to (title, reading progress) pairs.
func (s *Store) Progress() []Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Progress, 0, len(s.books))
	for _, b := range s.books {
		out = append(out, Progress{Title: b.Title, ReadingProgress: b.ReadingProgress})
	}
	return out
}

// Import appends books in order, keeping their progress, with a single write.
func (s *Store) Import(books []Book) (int, error) {
	for _, b := range books {
		if err := CheckProgress(b.ReadingProgress); err != nil {
			return 0, fmt.Errorf("import %q: %w", b.Title, err)
		}
	}
	if len(books) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.books = append(s.books, books...)
	if err := s.save("import"); err != nil {
		return len(books), err
	}
	slog.Debug("books imported", "count", len(books))
	return len(books), nil
}

// Flush writes the current collection.
func (s *Store) Flush() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.save("flush")
}

// index returns the position of the first exact title match or -1.
func (s *Store) index(title string) int {
	for i, b := range s.books {
		if b.Title == title {
			return i
		}
	}
	return -1
}

func (s *Store) save(op string) error {
	snapshot := make([]Book, len(s.books))
	copy(snapshot, s.books)
	if err := s.p.Save(snapshot); err != nil {
		slog.Error("save failed", "op", op, "error", err)
		return &PersistError{Op: op, Err: err}
	}
	return nil
}
