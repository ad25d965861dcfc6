package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/jeanpaul/bookshelf/internal/book"
	"github.com/jeanpaul/bookshelf/internal/config"
	"github.com/jeanpaul/bookshelf/internal/console"
	"github.com/jeanpaul/bookshelf/internal/logging"
	"github.com/jeanpaul/bookshelf/internal/sheet"
	"github.com/jeanpaul/bookshelf/internal/storage"
	"github.com/jeanpaul/bookshelf/internal/tui"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	fileFlag := flag.String("file", "", "Data file (overrides data_file from config)")
	configFlag := flag.String("config", "", "Config file path")
	plainFlag := flag.Bool("plain", false, "Use the numbered console menu instead of the full-screen UI")
	debugFlag := flag.Bool("debug", false, "Log at debug level")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("bookshelf %s\n", version)
		os.Exit(0)
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fatal("config error: %s", err)
	}
	if *fileFlag != "" {
		cfg.DataFile = *fileFlag
	}
	if *plainFlag {
		cfg.Plain = true
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fatal("config error: %s", err)
	}
	if *debugFlag {
		level = slog.LevelDebug
	}

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "help":
			showHelp()
			return
		case "init-config":
			path := config.DefaultPath()
			if len(args) > 1 {
				path = args[1]
			}
			cmdInitConfig(path)
			return
		}
	}

	fullScreen := len(args) == 0 && !cfg.Plain &&
		isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())

	var closer io.Closer = io.NopCloser(nil)
	switch {
	case cfg.LogFile != "" || fullScreen:
		var logger *slog.Logger
		logger, closer, err = logging.File(cfg.LogFile, level)
		if err != nil {
			fatal("%s", err)
		}
		slog.SetDefault(logger)
	default:
		slog.SetDefault(logging.Stderr(level))
	}
	defer closer.Close()

	store := openStore(cfg.DataFile)

	if len(args) > 0 {
		if err := runCommand(store, args); err != nil {
			closer.Close()
			fatal("%s", err)
		}
		return
	}

	if fullScreen {
		tui.SetTheme(cfg.Theme)
		err = launchTUI(store)
	} else {
		err = console.Run(os.Stdin, os.Stdout, store)
	}
	if err != nil {
		closer.Close()
		fatal("%s", err)
	}
}

func openStore(path string) *book.Store {
	f, err := storage.NewFile(path)
	if err != nil {
		fatal("%s", err)
	}
	store, err := book.Open(f)
	if err != nil {
		fatal("%s", err)
	}
	slog.Debug("store opened", "path", path, "books", store.Len())
	return store
}

func launchTUI(store *book.Store) error {
	p := tea.NewProgram(tui.NewModel(store), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	if m, ok := final.(tui.Model); ok {
		if err := m.Err(); err != nil {
			return err
		}
	}
	fmt.Println("Thank you for using the Book Collection App! Goodbye!")
	return nil
}

func runCommand(store *book.Store, args []string) error {
	switch args[0] {
	case "list":
		cmdList(os.Stdout, store)
	case "progress":
		cmdProgress(os.Stdout, store)
	case "search":
		if len(args) < 3 {
			return fmt.Errorf("usage: bookshelf search <title|author> <text>")
		}
		return cmdSearch(os.Stdout, store, args[1], strings.Join(args[2:], " "))
	case "export":
		if len(args) < 2 {
			return fmt.Errorf("usage: bookshelf export <file.xlsx>")
		}
		return cmdExport(os.Stdout, store, args[1])
	case "import":
		if len(args) < 2 {
			return fmt.Errorf("usage: bookshelf import <glob>")
		}
		return cmdImport(os.Stdout, store, args[1])
	default:
		return fmt.Errorf("unknown command %q (see bookshelf help)", args[0])
	}
	return nil
}

func cmdList(w io.Writer, store *book.Store) {
	books := store.List()
	if len(books) == 0 {
		fmt.Fprintln(w, "The book collection is empty.")
		return
	}
	for _, b := range books {
		fmt.Fprintln(w, book.Describe(b))
	}
}

func cmdProgress(w io.Writer, store *book.Store) {
	report := store.Progress()
	if len(report) == 0 {
		fmt.Fprintln(w, "The book collection is empty.")
		return
	}
	for _, p := range report {
		fmt.Fprintf(w, "%3d %%  %s\n", p.ReadingProgress, p.Title)
	}
}

func cmdSearch(w io.Writer, store *book.Store, rawMode, text string) error {
	mode, err := book.ParseSearchMode(rawMode)
	if err != nil {
		return err
	}
	found := store.Search(mode, text)
	if len(found) == 0 {
		fmt.Fprintln(w, "No books found.")
		return nil
	}
	for _, b := range found {
		fmt.Fprintln(w, book.Describe(b))
	}
	return nil
}

func cmdExport(w io.Writer, store *book.Store, path string) error {
	books := store.List()
	if err := sheet.Export(path, books); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(w, "Exported %d books to %s\n", len(books), path)
	return nil
}

func cmdImport(w io.Writer, store *book.Store, pattern string) error {
	books, err := sheet.ImportGlob(pattern)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	n, err := store.Import(books)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}
	fmt.Fprintf(w, "Imported %d books.\n", n)
	return nil
}

func cmdInitConfig(path string) {
	if err := config.Write(path, config.DefaultConfig()); err != nil {
		fatal("init-config: %s", err)
	}
	fmt.Printf("Wrote %s\n", path)
}

func showHelp() {
	fmt.Fprint(os.Stderr, `bookshelf - personal book collection manager

Usage:
  bookshelf [flags]                     Open the collection (full-screen UI on a terminal)
  bookshelf [flags] <command> [args]

Commands:
  list                      Print every book
  progress                  Print reading progress
  search <title|author> <text>
                            Case-insensitive substring search
  export <file.xlsx>        Write the collection to a workbook
  import <glob>             Append books from workbooks (supports **)
  init-config [path]        Write a default config file
  help                      Show this help

Flags:
  -file <path>      Data file (default from config, data_file)
  -config <path>    Config file (default ./config.yaml or ~/.config/bookshelf/config.yaml)
  -plain            Numbered console menu instead of the full-screen UI
  -debug            Debug logging
  -version          Print version

Environment:
  BOOKSHELF_DATA_FILE, BOOKSHELF_THEME, BOOKSHELF_LOG_FILE, BOOKSHELF_LOG_LEVEL, BOOKSHELF_PLAIN
`)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
