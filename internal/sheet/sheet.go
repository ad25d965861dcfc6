// Package sheet exchanges the book collection with xlsx workbooks.
package sheet

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/xuri/excelize/v2"

	"github.com/jeanpaul/bookshelf/internal/book"
)

// SheetName is the sheet written by Export and preferred by Import.
const SheetName = "Books"

var columns = []string{"title", "author", "publication_year", "genre", "is_read", "reading_progress"}

// Export writes books to a new workbook at path, one row per book after a
// header row.
func Export(path string, books []book.Book) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, b := range books {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{b.Title, b.Author, b.PublicationYear, b.Genre, b.IsRead, b.ReadingProgress}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// Import reads books from the Books sheet of the workbook at path, or from
// its first sheet. Columns are matched by header name; a title column is
// required.
func Import(path string) ([]book.Book, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	name := sheets[0]
	for _, s := range sheets {
		if s == SheetName {
			name = s
			break
		}
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(rows) == 0 {
		return []book.Book{}, nil
	}

	index := map[string]int{}
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := index["title"]; !ok {
		return nil, fmt.Errorf("%s: sheet %q has no title column", path, name)
	}

	books := []book.Book{}
	for n, row := range rows[1:] {
		if blank(row) {
			continue
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(row) {
				return ""
			}
			return row[i]
		}

		b := book.Book{
			Title:           get("title"),
			Author:          get("author"),
			PublicationYear: get("publication_year"),
			Genre:           get("genre"),
			IsRead:          truthy(get("is_read")),
		}
		if raw := strings.TrimSpace(get("reading_progress")); raw != "" {
			p, err := book.ParseProgress(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d: %w", path, n+2, err)
			}
			b.ReadingProgress = p
		}
		books = append(books, b)
	}
	return books, nil
}

// ImportGlob imports every workbook matching pattern, in lexical path order.
func ImportGlob(pattern string) ([]book.Book, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, errors.New("no files match " + pattern)
	}
	sort.Strings(matches)

	var all []book.Book
	for _, m := range matches {
		books, err := Import(m)
		if err != nil {
			return nil, err
		}
		all = append(all, books...)
	}
	return all, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	}
	return false
}
