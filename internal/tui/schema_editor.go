package tui

import (
	"fmt"
	"strings"

	"github.com/bonntanname/figure-checker/internal/model"
	"github.com/bonntanname/figure-checker/internal/schema"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// The schema editor is its own surface, deliberately decoupled from the
// labeling view: it edits a scratch copy and hands the result back as a
// single one-shot schemaAppliedMsg on a successful save. Cancel and invalid
// saves never touch the active schema (no partial apply).

// schemaAppliedMsg is the one "schema replaced" event per successful save.
type schemaAppliedMsg struct {
	schema schema.Schema
}

type editorRow struct {
	key   textinput.Model
	value textinput.Model
}

type schemaEditor struct {
	rows     []editorRow
	focusRow int
	focusCol int // 0 = key, 1 = value
	errMsg   string
}

func newSchemaEditor(sch schema.Schema) *schemaEditor {
	e := &schemaEditor{}
	for _, d := range sch.Defs {
		e.rows = append(e.rows, newEditorRow(d))
	}
	if len(e.rows) == 0 {
		e.rows = append(e.rows, newEditorRow(model.LabelDef{}))
	}
	e.applyFocus()
	return e
}

func newEditorRow(d model.LabelDef) editorRow {
	key := textinput.New()
	key.Placeholder = "key"
	key.CharLimit = 1
	key.Width = 3
	key.SetValue(d.Key)

	value := textinput.New()
	value.Placeholder = "value"
	value.CharLimit = 40
	value.Width = 16
	value.SetValue(d.Value)

	return editorRow{key: key, value: value}
}

func (e *schemaEditor) applyFocus() {
	for i := range e.rows {
		e.rows[i].key.Blur()
		e.rows[i].value.Blur()
	}
	if e.focusRow < 0 {
		e.focusRow = 0
	}
	if e.focusRow >= len(e.rows) {
		e.focusRow = len(e.rows) - 1
	}
	if e.focusCol == 0 {
		e.rows[e.focusRow].key.Focus()
	} else {
		e.rows[e.focusRow].value.Focus()
	}
}

func (e *schemaEditor) defs() []model.LabelDef {
	var out []model.LabelDef
	for _, r := range e.rows {
		out = append(out, model.LabelDef{
			Key:   strings.TrimSpace(r.key.Value()),
			Value: strings.TrimSpace(r.value.Value()),
		})
	}
	return out
}

// Update handles one message. done reports that the editor should close;
// cmd carries the schemaAppliedMsg when the save validated.
func (e *schemaEditor) Update(msg tea.Msg) (cmd tea.Cmd, done bool) {
	key, isKey := msg.(tea.KeyMsg)
	if isKey {
		switch key.String() {
		case "esc":
			return nil, true
		case "enter":
			sch, err := schema.New(e.defs())
			if err != nil {
				// Reject the save and keep the editor open; the previous
				// schema stays active.
				e.errMsg = err.Error()
				return nil, false
			}
			return func() tea.Msg { return schemaAppliedMsg{schema: sch} }, true
		case "tab":
			e.errMsg = ""
			e.focusCol++
			if e.focusCol > 1 {
				e.focusCol = 0
				e.focusRow = (e.focusRow + 1) % len(e.rows)
			}
			e.applyFocus()
			return nil, false
		case "shift+tab":
			e.errMsg = ""
			e.focusCol--
			if e.focusCol < 0 {
				e.focusCol = 1
				e.focusRow = (e.focusRow - 1 + len(e.rows)) % len(e.rows)
			}
			e.applyFocus()
			return nil, false
		case "up":
			e.focusRow = (e.focusRow - 1 + len(e.rows)) % len(e.rows)
			e.applyFocus()
			return nil, false
		case "down":
			e.focusRow = (e.focusRow + 1) % len(e.rows)
			e.applyFocus()
			return nil, false
		case "ctrl+n":
			e.errMsg = ""
			e.rows = append(e.rows, newEditorRow(model.LabelDef{}))
			e.focusRow = len(e.rows) - 1
			e.focusCol = 0
			e.applyFocus()
			return nil, false
		case "ctrl+d":
			if len(e.rows) <= 1 {
				e.errMsg = "at least one label must remain"
				return nil, false
			}
			e.errMsg = ""
			e.rows = append(e.rows[:e.focusRow], e.rows[e.focusRow+1:]...)
			e.applyFocus()
			return nil, false
		}
	}

	// Everything else goes to the focused input.
	var c tea.Cmd
	if e.focusCol == 0 {
		e.rows[e.focusRow].key, c = e.rows[e.focusRow].key.Update(msg)
	} else {
		e.rows[e.focusRow].value, c = e.rows[e.focusRow].value.Update(msg)
	}
	return c, false
}

func (e *schemaEditor) View(width int) string {
	var b strings.Builder
	for i := range e.rows {
		marker := "  "
		if i == e.focusRow {
			marker = lipgloss.NewStyle().Foreground(colorAccent).Render("> ")
		}
		swatch := lipgloss.NewStyle().Foreground(labelColor(i)).Render("■")
		fmt.Fprintf(&b, "%s%s key %s  value %s\n",
			marker, swatch, e.rows[i].key.View(), e.rows[i].value.View())
	}

	if e.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorErrorFg).Render(e.errMsg))
	}

	b.WriteString("\n")
	b.WriteString(styleMuted().Render("tab: next field   ctrl+n: add   ctrl+d: remove   enter: save   esc: cancel"))

	return renderModalBox(width, "Label schema", strings.TrimRight(b.String(), "\n"))
}
