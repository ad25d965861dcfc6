package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/jeanpaul/bookshelf/internal/book"
)

type screen int

const (
	screenMenu screen = iota
	screenForm
	screenResult
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
)

// header, blank line, status and help lines
const chromeHeight = 6

type Model struct {
	width, height int
	screen        screen
	menu          MenuModel
	form          formModel
	viewport      viewport.Model
	renderer      *glamour.TermRenderer

	store   *book.Store
	editing book.Book // record matched by the first step of an update

	status      string
	statusLevel statusLevel
	quitting    bool
	flushErr    error
}

func NewModel(store *book.Store) Model {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)

	return Model{
		menu:     NewMenuModel(),
		viewport: viewport.New(80, 20),
		renderer: r,
		store:    store,
	}
}

// Err returns the error of the flush done on exit.
func (m Model) Err() error {
	return m.flushErr
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		bodyH := msg.Height - chromeHeight
		if bodyH < 5 {
			bodyH = 5
		}
		bodyW := msg.Width - 4
		if bodyW < 10 {
			bodyW = 10
		}
		m.menu.SetSize(bodyW+2, bodyH)
		m.viewport.Width = bodyW
		m.viewport.Height = bodyH
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.exit()
		}
		switch m.screen {
		case screenMenu:
			return m.updateMenu(msg)
		case screenForm:
			return m.updateForm(msg)
		case screenResult:
			return m.updateResult(msg)
		}
	}

	var cmd tea.Cmd
	switch m.screen {
	case screenForm:
		m.form, cmd, _ = m.form.Update(msg)
	case screenResult:
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k := msg.String(); k {
	case "q", "esc":
		return m.exit()
	case "enter":
		return m.start(m.menu.Selected())
	default:
		if a := actionForKey(k); a != actionNone {
			return m.start(a)
		}
	}

	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.screen = screenMenu
		m.setStatus(statusInfo, "Cancelled.")
		return m, nil
	}

	var (
		cmd       tea.Cmd
		submitted bool
	)
	m.form, cmd, submitted = m.form.Update(msg)
	if submitted {
		return m.submit()
	}
	return m, cmd
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter", "backspace":
		m.screen = screenMenu
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) start(a action) (tea.Model, tea.Cmd) {
	m.status = ""
	switch a {
	case actionCreate:
		return m.openForm(newForm(a, "Create a new book",
			[]string{"Title", "Author", "Publication year", "Genre", "Have you read this book? (yes/no)"},
			[]string{"", "", "", "", "no"}))
	case actionRemove:
		return m.openForm(newForm(a, "Remove a book",
			[]string{"Title of the book to remove"}, nil))
	case actionSearch:
		return m.openForm(newForm(a, "Search for a book",
			[]string{"Search by (1 = title, 2 = author)", "Search term"},
			[]string{"1", ""}))
	case actionUpdate:
		return m.openForm(newForm(a, "Update a book",
			[]string{"Title of the book to update"}, nil))
	case actionList:
		books := m.store.List()
		if len(books) == 0 {
			m.setStatus(statusInfo, emptyCollection)
			return m, nil
		}
		return m.showResult(booksMarkdown("All books", books))
	case actionProgress:
		report := m.store.Progress()
		if len(report) == 0 {
			m.setStatus(statusInfo, emptyCollection)
			return m, nil
		}
		return m.showResult(progressMarkdown(report))
	case actionExit:
		return m.exit()
	}
	return m, nil
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	v := m.form.values()
	m.screen = screenMenu

	switch m.form.action {
	case actionCreate:
		b, err := m.store.Create(v[0], v[1], v[2], v[3], book.ParseYesNo(v[4]))
		if err != nil {
			m.reportErr(err)
			return m, nil
		}
		m.setStatus(statusInfo, fmt.Sprintf("Added %q to the collection.", b.Title))

	case actionRemove:
		ok, err := m.store.Delete(v[0])
		switch {
		case err != nil:
			m.reportErr(err)
		case !ok:
			m.setStatus(statusWarn, "The book was not found in the collection.")
		default:
			m.setStatus(statusInfo, fmt.Sprintf("Removed %q from the collection.", v[0]))
		}

	case actionSearch:
		rawMode := v[0]
		if strings.TrimSpace(rawMode) == "" {
			rawMode = "1"
		}
		mode, err := book.ParseSearchMode(rawMode)
		if err != nil {
			m.reportErr(err)
			return m, nil
		}
		found := m.store.Search(mode, v[1])
		if len(found) == 0 {
			m.setStatus(statusInfo, "No books found.")
			return m, nil
		}
		return m.showResult(booksMarkdown(fmt.Sprintf("Books by %s matching %q", mode, v[1]), found))

	case actionUpdate:
		cur, ok := m.store.Get(v[0])
		if !ok {
			m.setStatus(statusWarn, "The book was not found in the collection.")
			return m, nil
		}
		m.editing = cur
		return m.openForm(newForm(actionEdit, "Update "+cur.Title,
			[]string{"Title", "Author", "Publication year", "Genre", "Read (yes/no, blank keeps)", "Reading progress (0-100, blank keeps)"},
			[]string{cur.Title, cur.Author, cur.PublicationYear, cur.Genre, yesNo(cur.IsRead), strconv.Itoa(cur.ReadingProgress)}))

	case actionEdit:
		u := book.Update{
			Title:           v[0],
			Author:          v[1],
			PublicationYear: v[2],
			Genre:           v[3],
			ReadingProgress: v[5],
		}
		if s := strings.TrimSpace(v[4]); s != "" {
			read := book.ParseYesNo(s)
			u.IsRead = &read
		}
		updated, ok, err := m.store.Update(m.editing.Title, u)
		if errors.Is(err, book.ErrValidation) {
			// Keep the form so the input can be corrected.
			m.screen = screenForm
			m.reportErr(err)
			return m, nil
		}
		if !ok {
			m.setStatus(statusWarn, "The book was not found in the collection.")
			return m, nil
		}
		if err != nil {
			m.reportErr(err)
		} else {
			m.setStatus(statusInfo, "The book details have been updated.")
		}
		return m.showResult(diffMarkdown(updated.Title, book.Diff(m.editing, updated)))
	}
	return m, nil
}

func (m Model) openForm(f formModel) (tea.Model, tea.Cmd) {
	m.form = f
	m.screen = screenForm
	return m, textinput.Blink
}

func (m Model) showResult(md string) (tea.Model, tea.Cmd) {
	m.viewport.SetContent(m.render(md))
	m.viewport.GotoTop()
	m.screen = screenResult
	return m, nil
}

func (m Model) exit() (tea.Model, tea.Cmd) {
	if !m.quitting {
		m.flushErr = m.store.Flush()
		m.quitting = true
	}
	return m, tea.Quit
}

func (m *Model) setStatus(level statusLevel, text string) {
	m.statusLevel = level
	m.status = text
}

func (m *Model) reportErr(err error) {
	switch {
	case errors.Is(err, book.ErrValidation):
		m.setStatus(statusError, err.Error())
	case errors.Is(err, book.ErrNotPersisted):
		m.setStatus(statusWarn, "Changed in memory only, "+err.Error())
	default:
		m.setStatus(statusError, err.Error())
	}
}

func (m Model) render(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m Model) View() string {
	if m.quitting {
		if m.flushErr != nil {
			return ErrorStyle.Render("Could not save the collection: "+m.flushErr.Error()) + "\n"
		}
		return "Thank you for using the Book Collection App! Goodbye!\n"
	}

	var b strings.Builder
	b.WriteString(BannerStyle.Render(Banner) + "  " + StatusBarStyle.Render(fmt.Sprintf("%d books", m.store.Len())))
	b.WriteString("\n\n")

	var help string
	switch m.screen {
	case screenMenu:
		b.WriteString(m.menu.View())
		help = "↑/↓: Navigate | Enter or 1-7: Select | q: Save and quit"
	case screenForm:
		b.WriteString(m.form.View())
		help = "Enter: Next/Submit | Tab/↑/↓: Move | Esc: Cancel"
	case screenResult:
		b.WriteString(m.viewport.View())
		help = "↑/↓/PgUp/PgDn: Scroll | Esc/Enter: Back to menu"
	}
	b.WriteString("\n")

	if m.status != "" {
		switch m.statusLevel {
		case statusError:
			b.WriteString(ErrorStyle.Render("✗ "+m.status) + "\n")
		case statusWarn:
			b.WriteString(WarnStyle.Render("! "+m.status) + "\n")
		default:
			b.WriteString(SuccessStyle.Render("✓ "+m.status) + "\n")
		}
	}
	b.WriteString(HelpStyle.Render(help))
	return b.String()
}
