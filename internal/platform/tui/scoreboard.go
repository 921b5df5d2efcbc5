package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/robotsim/internal/storage"
)

// RunsKeyMap defines the key bindings for the run catalog browser.
type RunsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RunsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RunsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Refresh, k.Quit}}
}

// DefaultRunsKeyMap returns default key bindings.
func DefaultRunsKeyMap() RunsKeyMap {
	return RunsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RunsModel is the Bubble Tea model listing catalogued runs.
type RunsModel struct {
	store  *storage.Store
	limit  int
	runs   []storage.RunRecord
	err    error
	table  table.Model
	help   help.Model
	keys   RunsKeyMap
	width  int
	height int
}

// runColumns are the table headers, shared with the plain listing.
var runColumns = []table.Column{
	{Title: "Run", Width: 5},
	{Title: "Seed", Width: 8},
	{Title: "Map", Width: 8},
	{Title: "Robots", Width: 7},
	{Title: "Turns", Width: 9},
	{Title: "Items", Width: 6},
	{Title: "Saved", Width: 6},
	{Title: "Burnt", Width: 6},
	{Title: "Lost", Width: 5},
	{Title: "Output", Width: 8},
	{Title: "Date", Width: 12},
}

// NewRunsModel creates a browser over the newest limit runs.
func NewRunsModel(store *storage.Store, limit, width, height int) RunsModel {
	h := help.New()
	h.ShowAll = false

	m := RunsModel{
		store:  store,
		limit:  limit,
		keys:   DefaultRunsKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *RunsModel) createTable() table.Model {
	height := m.height - 6
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(runColumns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *RunsModel) load() {
	if m.store == nil {
		m.runs = nil
	} else {
		m.runs, m.err = m.store.ListRuns(m.limit)
	}
	m.table.SetRows(RunRows(m.runs))
	m.table.GotoTop()
}

// RunRows converts runs to table rows.
func RunRows(runs []storage.RunRecord) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		turns := fmt.Sprintf("%d", r.Turns)
		if r.Finished {
			turns = fmt.Sprintf("%d/%d", r.Counters.TurnsPlayed, r.Turns)
		} else {
			turns += " ..."
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.Seed),
			fmt.Sprintf("%dx%d", r.Width, r.Height),
			fmt.Sprintf("%d", r.Robots()),
			turns,
			fmt.Sprintf("%d", r.Counters.ItemsGenerated),
			fmt.Sprintf("%d", r.Counters.ItemsCollected),
			fmt.Sprintf("%d", r.Counters.ItemsDestroyed),
			fmt.Sprintf("%d", r.Counters.RobotsDestroyed),
			r.Format,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// FormatRuns renders runs as a plain, tab-free text table for pipes.
func FormatRuns(runs []storage.RunRecord) string {
	var b strings.Builder
	writeRow := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "%-*s", runColumns[i].Width, c)
		}
		b.WriteString("\n")
	}

	header := make([]string, len(runColumns))
	for i, c := range runColumns {
		header[i] = c.Title
	}
	writeRow(header)
	for _, row := range RunRows(runs) {
		writeRow(row)
	}
	return b.String()
}

// Init initializes the model.
func (m RunsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m RunsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.table.SetRows(RunRows(m.runs))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the catalog.
func (m RunsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("RUNS (%d)", len(m.runs))))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
	case len(m.runs) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No runs recorded yet.\nStart one with: robotsim run")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunRunsBrowser shows the run catalog until the user quits.
func RunRunsBrowser(store *storage.Store, limit, width, height int) error {
	p := tea.NewProgram(
		NewRunsModel(store, limit, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
