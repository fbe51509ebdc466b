package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#C86BFA", "#04B575", "#FF4F4F", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title    lipgloss.Style
	ok       lipgloss.Style
	err      lipgloss.Style
	warn     lipgloss.Style
	help     lipgloss.Style
	tab      lipgloss.Style
	tabOn    lipgloss.Style
	playing  lipgloss.Style
	statusln lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title:    NewBold(t).MarginBottom(1),
		ok:       NewBold(s),
		err:      NewBold(e),
		warn:     NewStyle(w),
		help:     NewEm(h),
		tab:      NewStyle(h).Padding(0, 1),
		tabOn:    NewBold(t).Padding(0, 1).Underline(true),
		playing:  NewBold(s),
		statusln: NewStyle(h).MarginTop(1),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// artistColors tints the artist column of the song list.
var artistColors = map[string]lipgloss.Color{
	"Neuro": lipgloss.Color("#4FC3F7"),
	"Evil":  lipgloss.Color("#FF5C8A"),
	"Duet":  lipgloss.Color("#C86BFA"),
}

func artistStyle(name string) lipgloss.Style {
	if c, ok := artistColors[name]; ok {
		return lipgloss.NewStyle().Foreground(c)
	}
	return styles.help
}
