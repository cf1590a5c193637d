package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/bonntanname/figure-checker/internal/model"
	"github.com/bonntanname/figure-checker/internal/results"
	"github.com/bonntanname/figure-checker/internal/schema"
	"github.com/bonntanname/figure-checker/internal/session"
	"github.com/bonntanname/figure-checker/internal/source"
	"github.com/bonntanname/figure-checker/internal/store"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalSchemaEditor
	modalConfirmResume
	modalConfirmQuit
	modalHelp
)

// journalErrMsg surfaces a failed best-effort journal append.
type journalErrMsg struct{ err error }

type appModel struct {
	sess *session.Session
	sch  schema.Schema
	st   store.Store

	width  int
	height int

	imageList list.Model

	modal        modalKind
	confirmFocus confirmModalFocus
	resumePath   string
	editor       *schemaEditor

	// dirty tracks choices recorded since the last save/resume; it gates the
	// quit confirmation so unsaved work is never dropped silently.
	dirty  bool
	status string

	previewSeq     int
	previewForName string
	preview        string
	previewErr     string
}

func newAppModel(sess *session.Session, sch schema.Schema, st store.Store) appModel {
	m := appModel{
		sess: sess,
		sch:  sch,
		st:   st,
	}
	m.imageList = newImageList()
	m.refreshItems()

	// Offer to resume from the most recent results file; otherwise restore
	// the last cursor position for this directory, best-effort.
	if sess.Dir != "" {
		if path, ok := results.Latest(sess.Dir); ok {
			m.modal = modalConfirmResume
			m.confirmFocus = confirmFocusConfirm
			m.resumePath = path
		} else {
			m.restoreCursor()
		}
	}
	return m
}

func (m *appModel) restoreCursor() {
	if saved, ok := m.st.LoadSession(m.sess.Dir); ok {
		m.sess.SetCursor(saved.Cursor)
		m.imageList.Select(m.sess.Cursor())
	}
}

// Init intentionally returns nil: the first WindowSizeMsg arrives before
// anything is drawn and kicks off the initial preview load at the real size.
func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.previewForName = "" // sizes changed; re-render
		return m, m.loadPreview()

	case previewMsg:
		if msg.seq != m.previewSeq {
			return m, nil // stale
		}
		m.previewForName = msg.name
		if msg.err != nil {
			m.preview = ""
			m.previewErr = msg.err.Error()
		} else {
			m.preview = msg.rendered
			m.previewErr = ""
		}
		return m, nil

	case schemaAppliedMsg:
		m.sch = msg.schema
		m.modal = modalNone
		m.editor = nil
		m.persistSchema()
		m.status = fmt.Sprintf("schema updated (%d labels)", m.sch.Len())
		return m, nil

	case journalErrMsg:
		if msg.err != nil {
			m.status = "journal: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalSchemaEditor:
		cmd, done := m.editor.Update(msg)
		if done && cmd == nil {
			m.modal = modalNone
			m.editor = nil
		}
		return m, cmd

	case modalConfirmResume:
		return m.handleConfirmKey(msg, func(m *appModel) tea.Cmd {
			m.applyResume()
			return m.loadPreview()
		}, func(m *appModel) tea.Cmd {
			// Declined: fall back to the saved cursor position.
			m.restoreCursor()
			return m.loadPreview()
		})

	case modalConfirmQuit:
		return m.handleConfirmKey(msg, func(m *appModel) tea.Cmd {
			m.persistCursor()
			return tea.Quit
		}, nil)

	case modalHelp:
		switch msg.String() {
		case "?", "esc", "q":
			m.modal = modalNone
		}
		return m, nil
	}

	k := msg.String()

	// Schema keys take precedence over the built-in bindings: a keystroke is
	// first matched (case-insensitively) against the active label keys, just
	// as a pointer press on the corresponding button would be.
	if def, ok := m.sch.Match(k); ok && len([]rune(k)) == 1 {
		return m.recordChoice(def)
	}

	switch k {
	case "ctrl+c":
		m.persistCursor()
		return m, tea.Quit
	case "q", "esc":
		if m.dirty && m.sess.WriteCapable {
			m.modal = modalConfirmQuit
			m.confirmFocus = confirmFocusConfirm
			return m, nil
		}
		m.persistCursor()
		return m, tea.Quit
	case "right", "down":
		m.sess.Advance()
		m.imageList.Select(m.sess.Cursor())
		return m, m.loadPreview()
	case "left", "up":
		m.sess.Prev()
		m.imageList.Select(m.sess.Cursor())
		return m, m.loadPreview()
	case "u":
		m.sess.JumpToNextUnlabeled()
		m.imageList.Select(m.sess.Cursor())
		return m, m.loadPreview()
	case "s":
		m.saveResults()
		return m, nil
	case "e":
		m.modal = modalSchemaEditor
		m.editor = newSchemaEditor(m.sch)
		return m, nil
	case "r":
		return m.rescan()
	case "?":
		m.modal = modalHelp
		return m, nil
	}

	return m, nil
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg, confirm, cancel func(*appModel) tea.Cmd) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		focus := m.confirmFocus
		m.modal = modalNone
		if focus == confirmFocusConfirm {
			if confirm == nil {
				return m, nil
			}
			return m, confirm(&m)
		}
		if cancel == nil {
			return m, nil
		}
		return m, cancel(&m)
	case "esc":
		m.modal = modalNone
		if cancel == nil {
			return m, nil
		}
		return m, cancel(&m)
	}
	return m, nil
}

func (m appModel) recordChoice(def model.LabelDef) (tea.Model, tea.Cmd) {
	cur, ok := m.sess.Record(def.Value)
	if !ok {
		m.status = "no images to label"
		return m, nil
	}
	m.dirty = true
	m.status = cur.Name + " → " + def.Value
	m.refreshItems()
	return m, tea.Batch(
		m.loadPreview(),
		appendJournalCmd(m.st, m.sess.Dir, cur.Name, def.Value),
	)
}

func appendJournalCmd(st store.Store, dir, image, value string) tea.Cmd {
	return func() tea.Msg {
		rec := model.ChoiceRecord{Directory: dir, Image: image, Choice: value}
		if err := st.AppendChoice(context.Background(), rec); err != nil {
			return journalErrMsg{err: err}
		}
		return nil
	}
}

func (m *appModel) saveResults() {
	if !m.sess.WriteCapable || m.sess.Dir == "" {
		m.status = "read-only source; choices are journaled only"
		return
	}
	path, err := results.Save(m.sess.Dir, m.sess.Choices(), time.Now())
	if err != nil {
		// In-memory choices are untouched; the user can retry.
		m.status = "save failed: " + err.Error()
		return
	}
	m.dirty = false
	m.status = fmt.Sprintf("saved %d choices to %s", m.sess.LabeledCount(), filepath.Base(path))
}

func (m *appModel) applyResume() {
	choices, err := results.Load(m.resumePath)
	if err != nil {
		m.status = "resume failed: " + err.Error()
		return
	}
	m.sess.ReplaceChoices(choices)
	m.dirty = false
	m.refreshItems()
	m.status = fmt.Sprintf("resumed %d choices from %s", m.sess.LabeledCount(), filepath.Base(m.resumePath))
}

func (m appModel) rescan() (tea.Model, tea.Cmd) {
	if m.sess.Dir == "" {
		m.status = "no directory to rescan"
		return m, nil
	}
	listing, err := source.Scan(m.sess.Dir)
	if err != nil {
		m.status = "rescan failed: " + err.Error()
		return m, nil
	}
	// Keep recorded choices across a rescan of the same directory; only
	// opening a different directory starts a fresh session.
	prior := m.sess.Choices()
	m.sess = session.New(listing)
	m.sess.ReplaceChoices(prior)
	m.refreshItems()
	m.previewForName = ""
	m.status = fmt.Sprintf("rescanned: %d images", m.sess.Len())
	return m, m.loadPreview()
}

func (m *appModel) persistSchema() {
	cfg, err := m.st.LoadConfig()
	if err != nil {
		return
	}
	cfg.Schema = m.sch.Defs
	_ = m.st.SaveConfig(cfg)
}

func (m appModel) persistCursor() {
	if m.sess.Dir == "" {
		return
	}
	_ = m.st.SaveSession(m.sess.Dir, store.SavedSession{Cursor: m.sess.Cursor()})
}

func (m *appModel) refreshItems() {
	items := make([]list.Item, 0, m.sess.Len())
	for _, img := range m.sess.Images() {
		choice, _ := m.sess.Choice(img.Name)
		items = append(items, imageItem{entry: img, choice: choice})
	}
	m.imageList.SetItems(items)
	m.imageList.Select(m.sess.Cursor())
}

func (m *appModel) loadPreview() tea.Cmd {
	cur, ok := m.sess.Current()
	if !ok {
		m.preview = ""
		m.previewErr = ""
		return nil
	}
	if cur.Name == m.previewForName {
		return nil
	}
	m.previewSeq++
	w, h := m.previewSize()
	return loadPreviewCmd(m.previewSeq, cur, w, h)
}

func (m appModel) listWidth() int {
	w := m.width / 3
	if w > 36 {
		w = 36
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m appModel) bodyHeight() int {
	h := m.height - 6
	if h < 8 {
		h = 8
	}
	return h
}

func (m appModel) previewSize() (int, int) {
	w := m.width - m.listWidth() - 4
	if w < 16 {
		w = 16
	}
	// Name line, buttons, and tally share the right pane.
	h := m.bodyHeight() - 4
	if h < 4 {
		h = 4
	}
	return w, h
}

func (m *appModel) resize() {
	m.imageList.SetSize(m.listWidth(), m.bodyHeight())
}
