package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#1DB954", "#FFFFFF", "#626262", "#FF0000", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	focused lipgloss.Style
	blurred lipgloss.Style
	err     lipgloss.Style
	help    lipgloss.Style
}

func NewPalette(t, f, b, e, h string) *Palette {
	return &Palette{
		title:   NewBold(t).MarginBottom(1),
		focused: NewBold(f),
		blurred: NewStyle(b),
		err:     NewBold(e),
		help:    NewEm(h),
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
