package report

import "github.com/charmbracelet/lipgloss"

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorMuted   = lipgloss.Color("#6B7280")
)

// styles renders the text report. With plain set every style is bypassed and the text is
// written as is, lipgloss never sees it.
type styles struct {
	plain   bool
	unit    lipgloss.Style
	ok      lipgloss.Style
	failed  lipgloss.Style
	warning lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(color bool) *styles {
	return &styles{
		plain:   !color,
		unit:    lipgloss.NewStyle().Bold(true),
		ok:      lipgloss.NewStyle().Foreground(colorSuccess),
		failed:  lipgloss.NewStyle().Foreground(colorError).Bold(true),
		warning: lipgloss.NewStyle().Foreground(colorWarning),
		muted:   lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
	}
}

func (s *styles) render(style lipgloss.Style, text string) string {
	if s.plain {
		return text
	}
	return style.Render(text)
}
