package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/bookshelf/internal/book"
)

type memPersister struct {
	books []book.Book
	saves int
}

func (p *memPersister) Load() ([]book.Book, error) { return append([]book.Book(nil), p.books...), nil }

func (p *memPersister) Save(books []book.Book) error {
	p.saves++
	p.books = append([]book.Book(nil), books...)
	return nil
}

func newTestModel(t *testing.T, seed ...book.Book) (Model, *book.Store, *memPersister) {
	t.Helper()
	p := &memPersister{books: seed}
	s, err := book.Open(p)
	require.NoError(t, err)

	m := NewModel(s)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), s, p
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		updated, _ := m.Update(msg)
		m = updated.(Model)
	}
	return m
}

func key(k tea.KeyType) tea.Msg { return tea.KeyMsg{Type: k} }

func typed(s string) tea.Msg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestMenuView(t *testing.T) {
	m, _, _ := newTestModel(t)
	view := m.View()

	assert.Contains(t, view, Banner)
	assert.Contains(t, view, "0 books")
	assert.Contains(t, view, "1. Create a new book")
	assert.Equal(t, screenMenu, m.screen)
}

func TestEnterOpensSelectedForm(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, key(tea.KeyEnter))

	assert.Equal(t, screenForm, m.screen)
	assert.Equal(t, actionCreate, m.form.action)
	assert.Len(t, m.form.fields, 5)
	assert.Contains(t, m.View(), "Create a new book")
}

func TestNumberKeyOpensForm(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, typed("2"))

	assert.Equal(t, screenForm, m.screen)
	assert.Equal(t, actionRemove, m.form.action)
}

func TestEscCancelsForm(t *testing.T) {
	m, _, p := newTestModel(t)
	m = send(t, m, typed("1"), typed("Dune"), key(tea.KeyEsc))

	assert.Equal(t, screenMenu, m.screen)
	assert.Equal(t, "Cancelled.", m.status)
	assert.Equal(t, 0, p.saves)
}

func TestCreateFlow(t *testing.T) {
	m, s, p := newTestModel(t)
	m = send(t, m,
		typed("1"),
		typed("Dune"), key(tea.KeyEnter),
		typed("Herbert"), key(tea.KeyEnter),
		typed("1965"), key(tea.KeyEnter),
		typed("SciFi"), key(tea.KeyEnter),
		typed("yes"), key(tea.KeyEnter),
	)

	assert.Equal(t, screenMenu, m.screen)
	assert.Equal(t, statusInfo, m.statusLevel)
	assert.Contains(t, m.status, `Added "Dune"`)
	assert.Equal(t, []book.Book{{Title: "Dune", Author: "Herbert", PublicationYear: "1965", Genre: "SciFi", IsRead: true}}, s.List())
	assert.Equal(t, 1, p.saves)
	assert.Contains(t, m.View(), "1 books")
}

func TestRemoveNotFound(t *testing.T) {
	m, _, p := newTestModel(t, book.Book{Title: "Dune"})
	m = send(t, m, typed("2"), typed("Emma"), key(tea.KeyEnter))

	assert.Equal(t, statusWarn, m.statusLevel)
	assert.Equal(t, "The book was not found in the collection.", m.status)
	assert.Equal(t, 0, p.saves)
}

func TestRemove(t *testing.T) {
	m, s, _ := newTestModel(t, book.Book{Title: "Dune"}, book.Book{Title: "Emma"})
	m = send(t, m, typed("2"), typed("Dune"), key(tea.KeyEnter))

	assert.Contains(t, m.status, `Removed "Dune"`)
	assert.Equal(t, []book.Book{{Title: "Emma"}}, s.List())
}

func TestUpdateFlow(t *testing.T) {
	m, s, _ := newTestModel(t, book.Book{Title: "Dune", Author: "Herbert", PublicationYear: "1965", Genre: "SciFi"})
	m = send(t, m, typed("4"), typed("Dune"), key(tea.KeyEnter))

	require.Equal(t, screenForm, m.screen)
	require.Equal(t, actionEdit, m.form.action)
	assert.Equal(t, "Herbert", m.form.fields[1].input.Placeholder)

	for i := 0; i < 5; i++ {
		m = send(t, m, key(tea.KeyEnter))
	}
	m = send(t, m, typed("50"), key(tea.KeyEnter))

	assert.Equal(t, screenResult, m.screen)
	assert.Equal(t, "The book details have been updated.", m.status)
	assert.Equal(t, []book.Book{{Title: "Dune", Author: "Herbert", PublicationYear: "1965", Genre: "SciFi", ReadingProgress: 50}}, s.List())

	m = send(t, m, key(tea.KeyEsc))
	assert.Equal(t, screenMenu, m.screen)
}

func TestUpdateInvalidProgressKeepsForm(t *testing.T) {
	orig := book.Book{Title: "Dune", ReadingProgress: 10}
	m, s, p := newTestModel(t, orig)
	m = send(t, m, typed("4"), typed("Dune"), key(tea.KeyEnter))
	for i := 0; i < 5; i++ {
		m = send(t, m, key(tea.KeyEnter))
	}
	m = send(t, m, typed("lots"), key(tea.KeyEnter))

	assert.Equal(t, screenForm, m.screen)
	assert.Equal(t, statusError, m.statusLevel)
	assert.Contains(t, m.status, "reading_progress")
	assert.Equal(t, []book.Book{orig}, s.List())
	assert.Equal(t, 0, p.saves)
}

func TestUpdateNotFound(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, typed("4"), typed("Dune"), key(tea.KeyEnter))

	assert.Equal(t, screenMenu, m.screen)
	assert.Equal(t, "The book was not found in the collection.", m.status)
}

func TestSearchNoResults(t *testing.T) {
	m, _, _ := newTestModel(t, book.Book{Title: "Dune", Author: "Herbert"})
	m = send(t, m, typed("3"), typed("2"), key(tea.KeyEnter), typed("austen"), key(tea.KeyEnter))

	assert.Equal(t, screenMenu, m.screen)
	assert.Equal(t, "No books found.", m.status)
}

func TestSearchBadMode(t *testing.T) {
	m, _, _ := newTestModel(t, book.Book{Title: "Dune"})
	m = send(t, m, typed("3"), typed("9"), key(tea.KeyEnter), typed("dune"), key(tea.KeyEnter))

	assert.Equal(t, statusError, m.statusLevel)
	assert.Contains(t, m.status, "search_mode")
}

func TestSearchShowsResults(t *testing.T) {
	m, _, _ := newTestModel(t, book.Book{Title: "Dune", Author: "Herbert"}, book.Book{Title: "Emma", Author: "Austen"})
	m = send(t, m, typed("3"), key(tea.KeyEnter), typed("dune"), key(tea.KeyEnter))

	assert.Equal(t, screenResult, m.screen)
	view := m.View()
	assert.Contains(t, view, "Dune")
	assert.NotContains(t, view, "Emma")
}

func TestListEmpty(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, typed("5"))
	assert.Equal(t, screenMenu, m.screen)
	assert.Equal(t, emptyCollection, m.status)

	m = send(t, m, typed("6"))
	assert.Equal(t, emptyCollection, m.status)
}

func TestListShowsBooks(t *testing.T) {
	m, _, _ := newTestModel(t, book.Book{Title: "Dune"}, book.Book{Title: "Emma"})
	m = send(t, m, typed("5"))

	assert.Equal(t, screenResult, m.screen)
	view := m.View()
	assert.Contains(t, view, "Dune")
	assert.Contains(t, view, "Emma")
	assert.Less(t, strings.Index(view, "Dune"), strings.Index(view, "Emma"))
}

func TestExitFlushes(t *testing.T) {
	m, _, p := newTestModel(t)
	updated, cmd := m.Update(typed("q"))
	m = updated.(Model)

	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.NoError(t, m.Err())
	assert.Equal(t, 1, p.saves)
	assert.Contains(t, m.View(), "Goodbye!")

	// A second quit does not write again.
	m = send(t, m, key(tea.KeyCtrlC))
	assert.Equal(t, 1, p.saves)
}

func TestLongTitle(t *testing.T) {
	long := strings.Repeat("a", 300)
	m, s, _ := newTestModel(t)
	m = send(t, m,
		typed("1"),
		typed(long), key(tea.KeyEnter),
		typed("Anon"), key(tea.KeyEnter),
		key(tea.KeyEnter),
		key(tea.KeyEnter),
		typed("no"), key(tea.KeyEnter),
	)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, long, s.List()[0].Title)

	m = send(t, m, typed("2"), typed(long), key(tea.KeyEnter))
	assert.Equal(t, statusInfo, m.statusLevel)
	assert.Equal(t, 0, s.Len())
}

func TestNarrowWindow(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = send(t, m, tea.WindowSizeMsg{Width: 2, Height: 3})

	assert.Positive(t, m.viewport.Width)
	assert.Positive(t, m.viewport.Height)
	assert.NotPanics(t, func() { _ = m.View() })
}
