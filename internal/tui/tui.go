// Package tui is the interactive Bubble Tea view over a todo.Store.
package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todo"
	"github.com/Makepad-fr/tada/internal/ui"
)

const (
	cardTitle       = "Todo App"
	cardDescription = "Built with Bubble Tea, Bubbles and Lip Gloss"
	placeholder     = "What needs to be done?"

	defaultWidth  = 60
	defaultHeight = 12
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// listItem adapts model.Item to bubbles/list.Item
type listItem struct{ model.Item }

func (i listItem) FilterValue() string { return i.Text }

// itemDelegate renders each item on a single line.
type itemDelegate struct{}

func (d itemDelegate) Height() int                         { return 1 }
func (d itemDelegate) Spacing() int                        { return 0 }
func (d itemDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = ui.Current().Selected.Render(">") + " "
	}
	fmt.Fprint(w, prefix+ui.Row(it.Item))
}

// Model is the Bubble Tea model. The store is shared and mutated in place;
// the list is rebuilt from a fresh snapshot after every mutation.
type Model struct {
	store *todo.Store
	log   *log.Logger

	list  list.Model
	input textinput.Model
	help  help.Model
	keys  keyMap
	focus focus
}

// New builds a model over s with the input focused.
func New(s *todo.Store, logger *log.Logger) Model {
	l := list.New(nil, itemDelegate{}, defaultWidth, defaultHeight)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowPagination(true)

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.Focus()

	m := Model{
		store: s,
		log:   logger,
		list:  l,
		input: ti,
		help:  help.New(),
		keys:  defaultKeys(),
		focus: focusInput,
	}
	m.refresh()
	return m
}

// Store returns the store the model mutates.
func (m Model) Store() *todo.Store { return m.store }

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		w := msg.Width - 6
		h := msg.Height - 12
		if h < 3 {
			h = 3
		}
		m.list.SetSize(w, h)
		m.input.Width = w - 4
		m.help.Width = w
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.Focus) {
			return m.switchFocus(), nil
		}
		if m.focus == focusInput {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	if m.focus == focusInput {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Add):
		raw := m.input.Value()
		it, ok := m.store.Add(raw)
		if !ok {
			m.log.Debug("ignored", "input", raw)
			return m, nil
		}
		m.log.Debug("added", "id", it.ID, "text", it.Text)
		m.input.SetValue("")
		m.refresh()
		m.list.Select(len(m.list.Items()) - 1)
		return m, nil
	case msg.Type == tea.KeyEsc:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		if it, ok := m.selected(); ok {
			m.store.Toggle(it.ID)
			m.log.Debug("toggled", "id", it.ID)
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.selected(); ok {
			idx := m.list.Index()
			m.store.Remove(it.ID)
			m.log.Debug("removed", "id", it.ID)
			m.refresh()
			if n := len(m.list.Items()); idx >= n && n > 0 {
				m.list.Select(n - 1)
			}
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) switchFocus() Model {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
	return m
}

func (m Model) selected() (model.Item, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Item{}, false
	}
	return it.Item, true
}

// refresh re-reads the store snapshot into the list.
func (m *Model) refresh() {
	snap := m.store.Items()
	items := make([]list.Item, 0, len(snap))
	for _, it := range snap {
		items = append(items, listItem{it})
	}
	m.list.SetItems(items)
}

func (m Model) View() string {
	body := m.input.View() + "\n\n"
	if m.store.Len() == 0 {
		body += ui.Current().Muted.Render(ui.EmptyState)
	} else {
		body += m.list.View()
		body += "\n\n" + ui.Stats(m.store.Remaining(), m.store.CompletedCount())
	}

	bindings := m.keys.inputHelp()
	if m.focus == focusList {
		bindings = m.keys.listHelp()
	}
	body += "\n\n" + m.help.ShortHelpView(bindings)
	return ui.Card(cardTitle, cardDescription, body)
}

// Run starts the interactive session on the alternate screen and returns
// when the user quits.
func Run(s *todo.Store, logger *log.Logger, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(New(s, logger), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	logger.Info("session ended", "items", s.Len(), "remaining", s.Remaining())
	return nil
}
