package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Accent   = lipgloss.Color("#00FF41")
	Bright   = lipgloss.Color("#39FF14")
	Dim      = lipgloss.Color("#008F11")
	Faint    = lipgloss.Color("#003B00")
	Black    = lipgloss.Color("#0D0208")
	White    = lipgloss.Color("#e0e0e0")
	MidGray  = lipgloss.Color("#3a3a4e")
	Red      = lipgloss.Color("#FF4136")
	Gold     = lipgloss.Color("#FFD700")
	Amber    = lipgloss.Color("#FFB000")
	DimAmber = lipgloss.Color("#9E6A00")
)

var (
	BannerStyle    lipgloss.Style
	StatusBarStyle lipgloss.Style
	LabelStyle     lipgloss.Style
	FocusedLabel   lipgloss.Style
	BoxStyle       lipgloss.Style
	SuccessStyle   lipgloss.Style
	ErrorStyle     lipgloss.Style
	WarnStyle      lipgloss.Style
	HelpStyle      lipgloss.Style
	SelectedTitle  lipgloss.Style
	SelectedDesc   lipgloss.Style
)

func init() {
	SetTheme("green")
}

// SetTheme rebuilds the package styles for a named palette: green, amber or
// mono. Unknown names fall back to green.
func SetTheme(name string) {
	accent, bright, dim := Accent, Bright, Dim
	switch name {
	case "amber":
		accent, bright, dim = Amber, Gold, DimAmber
	case "mono":
		accent, bright, dim = White, White, MidGray
	}

	BannerStyle = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
		Background(dim).
		Foreground(Black).
		Bold(true).
		Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
		Foreground(dim)

	FocusedLabel = lipgloss.NewStyle().
		Foreground(bright).
		Bold(true)

	BoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim).
		Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(bright)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	WarnStyle = lipgloss.NewStyle().
		Foreground(Gold)

	HelpStyle = lipgloss.NewStyle().
		Foreground(dim)

	SelectedTitle = lipgloss.NewStyle().
		Foreground(accent).
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(accent).
		PaddingLeft(1)

	SelectedDesc = SelectedTitle.
		Foreground(dim)
}

const Banner = "📕 Bookshelf"
