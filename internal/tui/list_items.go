package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/bonntanname/figure-checker/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// imageItem is one row in the image index sidebar.
type imageItem struct {
	entry  model.ImageEntry
	choice string // "" when unlabeled
}

func (it imageItem) Title() string {
	if it.choice == "" {
		return "  " + it.entry.Name
	}
	return "✓ " + it.entry.Name + "  " + it.choice
}

func (it imageItem) FilterValue() string { return it.entry.Name }

func newImageList() list.Model {
	l := list.New([]list.Item{}, newImageItemDelegate(), 0, 0)
	// The app renders its own header/footer, so keep list chrome minimal.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.SetShowFilter(false)
	return l
}

type imageItemDelegate struct {
	normal   lipgloss.Style
	labeled  lipgloss.Style
	selected lipgloss.Style
}

func newImageItemDelegate() imageItemDelegate {
	return imageItemDelegate{
		normal:  lipgloss.NewStyle(),
		labeled: lipgloss.NewStyle().Foreground(colorLabeledFg),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d imageItemDelegate) Height() int                             { return 1 }
func (d imageItemDelegate) Spacing() int                            { return 0 }
func (d imageItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d imageItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	it, ok := item.(imageItem)
	if !ok {
		return
	}

	style := d.normal
	if it.choice != "" {
		style = d.labeled
	}
	if index == m.Index() {
		style = d.selected
	}

	line := it.Title()
	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}

	fmt.Fprint(w, style.Render(line))
}
