package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type action int

const (
	actionNone action = iota
	actionCreate
	actionRemove
	actionSearch
	actionUpdate
	actionList
	actionProgress
	actionExit

	// actionEdit is the second step of an update, once the title has matched.
	actionEdit
)

type item struct {
	title, desc string
	key         string
	action      action
}

func (i item) Title() string       { return i.key + ". " + i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

var menuItems = []item{
	{title: "Create a new book", desc: "Add a book to the collection", key: "1", action: actionCreate},
	{title: "Remove a book", desc: "Delete the first book with a title", key: "2", action: actionRemove},
	{title: "Search for a book", desc: "Find books by title or author", key: "3", action: actionSearch},
	{title: "Update a book details", desc: "Change fields, blank keeps the old value", key: "4", action: actionUpdate},
	{title: "View all books", desc: "List the collection in order", key: "5", action: actionList},
	{title: "View reading progress", desc: "Progress of every book", key: "6", action: actionProgress},
	{title: "Exit the application", desc: "Save and quit", key: "7", action: actionExit},
}

type MenuModel struct {
	list list.Model
}

func NewMenuModel() MenuModel {
	items := make([]list.Item, len(menuItems))
	for i, it := range menuItems {
		items[i] = it
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = SelectedTitle
	d.Styles.SelectedDesc = SelectedDesc

	l := list.New(items, d, 50, 24)
	l.Title = "Menu"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	l.Styles.Title = BannerStyle.MarginLeft(2)

	return MenuModel{list: l}
}

// Selected returns the highlighted action.
func (m MenuModel) Selected() action {
	if it, ok := m.list.SelectedItem().(item); ok {
		return it.action
	}
	return actionNone
}

// actionForKey maps the menu number keys to actions.
func actionForKey(k string) action {
	for _, it := range menuItems {
		if it.key == k {
			return it.action
		}
	}
	return actionNone
}

func (m *MenuModel) SetSize(w, h int) {
	m.list.SetSize(w, h)
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m MenuModel) View() string {
	return m.list.View()
}
