package console

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/bookshelf/internal/book"
	"github.com/jeanpaul/bookshelf/internal/storage"
)

func newStore(t *testing.T) (*book.Store, *storage.File) {
	t.Helper()
	f, err := storage.NewFile(filepath.Join(t.TempDir(), "books.json"))
	require.NoError(t, err)
	s, err := book.Open(f)
	require.NoError(t, err)
	return s, f
}

func run(t *testing.T, s *book.Store, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, Run(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, s))
	return out.String()
}

func TestRun_Scenario(t *testing.T) {
	s, f := newStore(t)

	out := run(t, s,
		"1", "Dune", "Herbert", "1965", "SciFi", "no",
		"5",
		"4", "Dune", "", "", "", "", "", "50",
		"6",
		"7",
	)

	assert.Contains(t, out, "Welcome to the Book 📕 Collection App!")
	assert.Contains(t, out, "The book has been added to the collection.")
	assert.Contains(t, out, "Title: Dune\nAuthor: Herbert\nPublication Year: 1965\nGenre: SciFi\nReading Progress: 0\nIs Read: false\n")
	assert.Contains(t, out, "Enter the new author of the book (Herbert): ")
	assert.Contains(t, out, "The book details have been updated.")
	assert.Contains(t, out, "+Reading Progress: 50")
	assert.Contains(t, out, "Title: Dune\nReading Progress: 50 %")
	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))

	reloaded, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, []book.Book{{Title: "Dune", Author: "Herbert", PublicationYear: "1965", Genre: "SciFi", ReadingProgress: 50}}, reloaded)
}

func TestRun_RemoveAndSearch(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Create("Dune", "Frank Herbert", "1965", "SciFi", true)
	require.NoError(t, err)
	_, err = s.Create("Emma", "Jane Austen", "1815", "Novel", false)
	require.NoError(t, err)

	out := run(t, s,
		"3", "2", "austen",
		"3", "1", "zzz",
		"2", "Ulysses",
		"2", "Dune",
		"5",
		"7",
	)

	assert.Contains(t, out, "Title: Emma\nAuthor: Jane Austen")
	assert.Contains(t, out, "No books found.")
	assert.Contains(t, out, "The book was not found in the collection.")
	assert.Contains(t, out, "The book has been removed from the collection.")
	assert.Equal(t, []book.Book{{Title: "Emma", Author: "Jane Austen", PublicationYear: "1815", Genre: "Novel"}}, s.List())
}

func TestRun_InvalidInputs(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Create("Dune", "Herbert", "1965", "SciFi", false)
	require.NoError(t, err)

	out := run(t, s,
		"9",
		"3", "4", "dune",
		"4", "Dune", "New Title", "", "", "", "yes", "half",
		"7",
	)

	assert.Contains(t, out, "Invalid option. Please try again.")
	assert.Contains(t, out, `Invalid input: invalid search_mode "4"`)
	assert.Contains(t, out, `Invalid input: invalid reading_progress "half"`)
	assert.Contains(t, out, "The book details were not changed.")
	assert.Equal(t, []book.Book{{Title: "Dune", Author: "Herbert", PublicationYear: "1965", Genre: "SciFi"}}, s.List())
}

func TestRun_UpdateNotFound(t *testing.T) {
	s, _ := newStore(t)
	out := run(t, s, "4", "Dune", "7")
	assert.Contains(t, out, "The book was not found in the collection.")
	assert.NotContains(t, out, "Enter the new title")
}

func TestRun_EmptyCollection(t *testing.T) {
	s, _ := newStore(t)
	out := run(t, s, "5", "6", "7")
	assert.Equal(t, 2, strings.Count(out, "The book collection is empty."))
}

func TestRun_EOFExits(t *testing.T) {
	s, f := newStore(t)

	var out bytes.Buffer
	err := Run(strings.NewReader("1\nDune\nHerbert"), &out, s)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Goodbye!")
	assert.Equal(t, 0, s.Len())
	assert.FileExists(t, f.Path())
}

type failingPersister struct{}

func (failingPersister) Load() ([]book.Book, error) { return nil, nil }
func (failingPersister) Save([]book.Book) error     { return errors.New("disk full") }

func TestRun_PersistFailureIsReported(t *testing.T) {
	s, err := book.Open(failingPersister{})
	require.NoError(t, err)

	var out bytes.Buffer
	err = Run(strings.NewReader("1\nDune\nHerbert\n1965\nSciFi\nno\n5\n7\n"), &out, s)
	assert.ErrorIs(t, err, book.ErrNotPersisted)
	assert.Contains(t, out.String(), "Warning: create: collection not saved: disk full")
	assert.Contains(t, out.String(), "Title: Dune")
}

func TestRun_LongLine(t *testing.T) {
	s, f := newStore(t)
	long := strings.Repeat("x", 70000)

	out := run(t, s,
		"1", "Dune", "Herbert", "1965", "SciFi", "no",
		"1", long, "Anon", "", "", "no",
		"7",
	)

	assert.True(t, strings.HasSuffix(out, "Goodbye!\n"))
	require.Equal(t, 2, s.Len())
	assert.Equal(t, long, s.List()[1].Title)

	reloaded, err := f.Load()
	require.NoError(t, err)
	require.Len(t, reloaded, 2)
	assert.Equal(t, long, reloaded[1].Title)
}

type countingPersister struct{ saves int }

func (p *countingPersister) Load() ([]book.Book, error) { return nil, nil }
func (p *countingPersister) Save([]book.Book) error     { p.saves++; return nil }

func TestRun_ReadErrorStillFlushes(t *testing.T) {
	p := &countingPersister{}
	s, err := book.Open(p)
	require.NoError(t, err)

	in := io.MultiReader(
		strings.NewReader("1\nDune\nHerbert\n1965\nSciFi\nno\n"),
		iotest.ErrReader(errors.New("broken pipe")),
	)
	var out bytes.Buffer
	err = Run(in, &out, s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pipe")
	assert.Equal(t, 2, p.saves)
	assert.Equal(t, 1, s.Len())
}
