package book

import (
	"fmt"
	"strings"
)

// Book is a single record in the collection.
type Book struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	PublicationYear string `json:"publication_year"`
	Genre           string `json:"genre"`
	IsRead          bool   `json:"is_read"`
	ReadingProgress int    `json:"reading_progress"`
}

// Progress pairs a title with its reading progress percentage.
type Progress struct {
	Title           string
	ReadingProgress int
}

// Update holds the replacement values for a book. Empty strings and a nil
// IsRead keep the current value. ReadingProgress is the raw user input and is
// parsed when non-blank.
type Update struct {
	Title           string
	Author          string
	PublicationYear string
	Genre           string
	IsRead          *bool
	ReadingProgress string
}

// Persister loads and stores the whole collection.
type Persister interface {
	Load() ([]Book, error)
	Save(books []Book) error
}

// SearchMode selects the field compared by Search.
type SearchMode int

const (
	ByTitle SearchMode = iota + 1
	ByAuthor
)

func (m SearchMode) String() string {
	switch m {
	case ByTitle:
		return "title"
	case ByAuthor:
		return "author"
	default:
		return fmt.Sprintf("SearchMode(%d)", int(m))
	}
}

// ParseSearchMode accepts the menu numbers "1" and "2" or the field names.
func ParseSearchMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "title":
		return ByTitle, nil
	case "2", "author":
		return ByAuthor, nil
	}
	return 0, &ValidationError{Field: "search_mode", Value: s, Reason: "must be 1 (title) or 2 (author)"}
}

// ParseYesNo reports whether s is an affirmative answer.
func ParseYesNo(s string) bool {
	return strings.ToLower(strings.TrimSpace(s)) == "yes"
}
