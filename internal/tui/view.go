package tui

import (
	"fmt"
	"strings"

	"github.com/bonntanname/figure-checker/internal/docs"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

func (m appModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if overlay := m.renderModal(); overlay != "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, overlay)
	}

	header := m.renderHeader()
	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.imageList.View(),
		"  ",
		m.renderDetail(),
	)
	footer := m.renderFooter()

	return header + "\n" + body + "\n" + footer
}

func (m appModel) renderModal() string {
	switch m.modal {
	case modalSchemaEditor:
		if m.editor != nil {
			return m.editor.View(m.width)
		}
	case modalConfirmResume:
		body := fmt.Sprintf("Found previous results for this directory.\nLoad choices from %s?", shortPath(m.resumePath, modalBodyWidth(m.width)-4))
		return renderConfirmModal(m.width, "Resume session", body, "Resume", "Start fresh", m.confirmFocus)
	case modalConfirmQuit:
		return renderConfirmModal(m.width, "Quit", "You have unsaved choices.\nQuit without saving?", "Quit", "Keep labeling", m.confirmFocus)
	case modalHelp:
		md, _ := docs.Get("guide")
		return renderModalBox(m.width, "Help", renderMarkdown(md, modalBodyWidth(m.width)-2))
	}
	return ""
}

func (m appModel) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Render("figcheck")

	label := m.sess.Label
	if label == "" {
		label = m.sess.Dir
	}

	progress := fmt.Sprintf("%d/%d labeled", m.sess.LabeledInList(), m.sess.Len())

	parts := []string{title, label, styleMuted().Render(progress)}
	if !m.sess.WriteCapable {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorErrorFg).Render("read-only"))
	}
	if m.dirty {
		parts = append(parts, styleMuted().Render("unsaved"))
	}

	line := strings.Join(parts, "  ")
	if xansi.StringWidth(line) > m.width {
		line = xansi.Cut(line, 0, m.width)
	}
	return line + "\n"
}

func (m appModel) renderDetail() string {
	var b strings.Builder

	cur, ok := m.sess.Current()
	if !ok {
		b.WriteString(styleMuted().Render("No images found."))
		b.WriteString("\n\n")
		b.WriteString(styleMuted().Render("Supported: .jpg .jpeg .png .gif"))
		return b.String()
	}

	name := lipgloss.NewStyle().Bold(true).Render(cur.Name)
	if choice, labeled := m.sess.Choice(cur.Name); labeled {
		name += "  " + lipgloss.NewStyle().Foreground(colorLabeledFg).Render("✓ "+choice)
	}
	b.WriteString(name)
	b.WriteString("\n\n")

	switch {
	case m.previewErr != "":
		b.WriteString(lipgloss.NewStyle().Foreground(colorErrorFg).Render("preview: " + m.previewErr))
	case m.preview == "":
		b.WriteString(styleMuted().Render("loading preview…"))
	default:
		b.WriteString(m.preview)
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderButtons())
	if tally := m.renderTally(); tally != "" {
		b.WriteString("\n")
		b.WriteString(tally)
	}

	return b.String()
}

// renderButtons draws one button per schema entry, colored by slot. Pressing
// the key has the same effect as activating the button.
func (m appModel) renderButtons() string {
	btns := make([]string, 0, m.sch.Len())
	for i, d := range m.sch.Defs {
		st := lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(colorSelectedFg).
			Background(labelColor(i))
		btns = append(btns, st.Render(fmt.Sprintf("[%s] %s", d.Key, d.Value)))
	}
	return strings.Join(btns, " ")
}

func (m appModel) renderTally() string {
	tally := m.sess.Tally()
	if len(tally) == 0 {
		return ""
	}
	parts := make([]string, 0, m.sch.Len())
	for i, d := range m.sch.Defs {
		n := tally[d.Value]
		if n == 0 {
			continue
		}
		st := lipgloss.NewStyle().Foreground(labelColor(i))
		parts = append(parts, st.Render(fmt.Sprintf("%s: %d", d.Value, n)))
	}
	// Values outside the active schema (e.g. resumed from an older schema)
	// still count toward progress but are not broken out here.
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "   ")
}

func (m appModel) renderFooter() string {
	var keys []string
	for _, d := range m.sch.Defs {
		keys = append(keys, d.Key)
	}
	help := fmt.Sprintf("%s: label   ←/→: move   u: next unlabeled   s: save   e: schema   r: rescan   ?: help   q: quit",
		strings.Join(keys, "/"))
	line := styleMuted().Render(help)
	if xansi.StringWidth(line) > m.width {
		line = xansi.Cut(line, 0, m.width)
	}

	status := m.status
	if xansi.StringWidth(status) > m.width {
		status = xansi.Cut(status, 0, m.width)
	}
	return line + "\n" + status
}

// shortPath truncates long paths from the left, keeping the filename visible.
func shortPath(p string, maxW int) string {
	if maxW < 8 {
		maxW = 8
	}
	if xansi.StringWidth(p) <= maxW {
		return p
	}
	runes := []rune(p)
	for len(runes) > 0 && xansi.StringWidth("…"+string(runes)) > maxW {
		runes = runes[1:]
	}
	return "…" + string(runes)
}
