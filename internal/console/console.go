// Package console runs the numbered-menu loop over plain line input, for
// terminals without full-screen support and for scripting.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jeanpaul/bookshelf/internal/book"
)

const menu = `
Menu:
1. Create a new book
2. Remove a book
3. Search for a book
4. Update a book details
5. View all books
6. View reading progress
7. Exit the application
`

type session struct {
	in    *bufio.Reader
	out   io.Writer
	store *book.Store
}

// errEOF ends the loop when input runs out mid-prompt.
var errEOF = errors.New("end of input")

// Run drives the menu until option 7 or end of input, then flushes the store.
func Run(in io.Reader, out io.Writer, s *book.Store) error {
	c := &session{in: bufio.NewReader(in), out: out, store: s}

	c.println("Welcome to the Book 📕 Collection App!")
	for {
		fmt.Fprint(c.out, menu)
		choice, err := c.ask("Please choose an option(1-7): ")
		if err != nil {
			return c.exit(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = c.create()
		case "2":
			err = c.remove()
		case "3":
			err = c.search()
		case "4":
			err = c.update()
		case "5":
			c.list()
		case "6":
			c.progress()
		case "7":
			return c.exit(nil)
		default:
			c.println("Invalid option. Please try again.\n")
		}
		if err != nil {
			return c.exit(err)
		}
	}
}

// exit flushes the store. A read error is still returned after the flush.
func (c *session) exit(cause error) error {
	if err := c.store.Flush(); err != nil {
		c.println("Error: " + err.Error())
		return errors.Join(ignoreEOF(cause), err)
	}
	if cause = ignoreEOF(cause); cause != nil {
		return cause
	}
	c.println("Thank you for using the Book Collection App! Goodbye!")
	return nil
}

func ignoreEOF(err error) error {
	if errors.Is(err, errEOF) {
		return nil
	}
	return err
}

func (c *session) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *session) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			fmt.Fprintln(c.out)
			return "", fmt.Errorf("read input: %w", err)
		}
		if line == "" {
			fmt.Fprintln(c.out)
			return "", errEOF
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// report prints a store error without ending the loop.
func (c *session) report(err error) {
	switch {
	case errors.Is(err, book.ErrValidation):
		c.println("Invalid input: " + err.Error())
	case errors.Is(err, book.ErrNotPersisted):
		c.println("Warning: " + err.Error())
	default:
		c.println("Error: " + err.Error())
	}
}

func (c *session) create() error {
	var fields [5]string
	prompts := [5]string{
		"Enter the title of the book: ",
		"Enter the author of the book: ",
		"Enter the publication year of the book: ",
		"Enter the genre of the book: ",
		"Have you read this book? (yes/no): ",
	}
	for i, p := range prompts {
		v, err := c.ask(p)
		if err != nil {
			return err
		}
		fields[i] = v
	}

	if _, err := c.store.Create(fields[0], fields[1], fields[2], fields[3], book.ParseYesNo(fields[4])); err != nil {
		c.report(err)
		return nil
	}
	c.println("The book has been added to the collection.")
	return nil
}

func (c *session) remove() error {
	title, err := c.ask("Enter the title of the book you want to remove: ")
	if err != nil {
		return err
	}
	ok, err := c.store.Delete(title)
	if err != nil {
		c.report(err)
		return nil
	}
	if !ok {
		c.println("The book was not found in the collection.")
		return nil
	}
	c.println("The book has been removed from the collection.\n")
	return nil
}

func (c *session) search() error {
	rawMode, err := c.ask("Search by:\n1. Title\n2. Author\nEnter the number of your choice: ")
	if err != nil {
		return err
	}
	mode, perr := book.ParseSearchMode(rawMode)
	text, err := c.ask("Enter search term: ")
	if err != nil {
		return err
	}
	if perr != nil {
		c.report(perr)
		return nil
	}

	found := c.store.Search(mode, text)
	if len(found) == 0 {
		c.println("No books found.")
		return nil
	}
	c.printBooks(found)
	return nil
}

func (c *session) update() error {
	title, err := c.ask("Enter the title of the book you want to update: ")
	if err != nil {
		return err
	}
	current, ok := c.store.Get(title)
	if !ok {
		c.println("The book was not found in the collection.")
		return nil
	}

	var u book.Update
	steps := []struct {
		prompt string
		dst    *string
	}{
		{fmt.Sprintf("Enter the new title of the book (%s): ", current.Title), &u.Title},
		{fmt.Sprintf("Enter the new author of the book (%s): ", current.Author), &u.Author},
		{fmt.Sprintf("Enter the new publication year of the book (%s): ", current.PublicationYear), &u.PublicationYear},
		{fmt.Sprintf("Enter the new genre of the book (%s): ", current.Genre), &u.Genre},
	}
	for _, st := range steps {
		if *st.dst, err = c.ask(st.prompt); err != nil {
			return err
		}
	}

	read, err := c.ask(fmt.Sprintf("Have you read this book? yes/no, blank keeps (%t): ", current.IsRead))
	if err != nil {
		return err
	}
	if strings.TrimSpace(read) != "" {
		v := book.ParseYesNo(read)
		u.IsRead = &v
	}
	if u.ReadingProgress, err = c.ask(fmt.Sprintf("Enter the reading progress of the book (%d): ", current.ReadingProgress)); err != nil {
		return err
	}

	updated, ok, err := c.store.Update(title, u)
	if !ok {
		c.println("The book was not found in the collection.")
		return nil
	}
	if err != nil {
		c.report(err)
		if errors.Is(err, book.ErrValidation) {
			c.println("The book details were not changed.\n")
		}
		return nil
	}
	c.println("The book details have been updated.\n")
	if d := book.Diff(current, updated); d != "" {
		fmt.Fprint(c.out, d)
	}
	return nil
}

func (c *session) printBooks(books []book.Book) {
	for _, b := range books {
		fmt.Fprintln(c.out, book.Describe(b))
	}
}

func (c *session) list() {
	books := c.store.List()
	if len(books) == 0 {
		c.println("The book collection is empty.")
		return
	}
	c.printBooks(books)
}

func (c *session) progress() {
	report := c.store.Progress()
	if len(report) == 0 {
		c.println("The book collection is empty.")
		return
	}
	for _, p := range report {
		fmt.Fprintf(c.out, "Title: %s\nReading Progress: %d %%\n\n", p.Title, p.ReadingProgress)
	}
}
