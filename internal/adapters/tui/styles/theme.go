package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	Link      = lipgloss.Color("#60A5FA") // Blue
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Notebook gutter and text
	Gutter = lipgloss.NewStyle().
		Foreground(Muted)

	GutterCurrent = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Comment = lipgloss.NewStyle().
		Foreground(Muted).
		Italic(true)

	Cursor = lipgloss.NewStyle().
		Reverse(true)

	// Reference tokens such as _calc3
	Reference = lipgloss.NewStyle().
			Foreground(Link).
			Underline(true)

	// Line emphasized after following a reference
	Emphasis = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black)

	// Result column
	Result = lipgloss.NewStyle().
		Foreground(Secondary)

	ResultError = lipgloss.NewStyle().
			Foreground(Error).
			Italic(true)

	ResultSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" │ ")

	NodeSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Picker
	SearchMatch = lipgloss.NewStyle().
			Background(Warning).
			Foreground(Black)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// ResultStyle returns the style for a line's result column
func ResultStyle(isError bool) lipgloss.Style {
	if isError {
		return ResultError
	}
	return Result
}
