package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/robotsim/internal/sim"
)

// ViewerOptions configures the live viewer.
type ViewerOptions struct {
	Turns int  // stop after this many turns
	Speed int  // turns per second, clamped to [MinSpeed, MaxSpeed]
	Plain bool // no colours
}

// Viewer is the Bubble Tea model that animates a running simulation.
type Viewer struct {
	sim        *sim.Simulation
	opts       ViewerOptions
	keys       ViewerKeyMap
	help       help.Model
	width      int
	height     int
	paused     bool
	done       bool
	showLegend bool
	quitting   bool
	err        error
}

// NewViewer creates a viewer for s. The simulation must not be stepped by
// anyone else while the viewer runs.
func NewViewer(s *sim.Simulation, opts ViewerOptions) Viewer {
	opts.Speed = clampSpeed(opts.Speed)
	h := help.New()
	h.ShowAll = false
	return Viewer{
		sim:  s,
		opts: opts,
		keys: DefaultViewerKeyMap(),
		help: h,
		done: opts.Turns <= 0,
	}
}

// Init starts the tick loop.
func (m Viewer) Init() tea.Cmd {
	if m.done {
		return nil
	}
	return tickCmd(m.opts.Speed)
}

// Update handles messages and updates the model state.
func (m Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Viewer) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.advance()
		}
	case key.Matches(msg, m.keys.Faster):
		m.opts.Speed = clampSpeed(m.opts.Speed + 1)
	case key.Matches(msg, m.keys.Slower):
		m.opts.Speed = clampSpeed(m.opts.Speed - 1)
	case key.Matches(msg, m.keys.Legend):
		m.showLegend = !m.showLegend
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleTick plays one turn unless paused. Ticking stops once the run is over.
func (m Viewer) handleTick() (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	if !m.paused {
		m.advance()
	}
	if m.done {
		return m, nil
	}
	return m, tickCmd(m.opts.Speed)
}

func (m *Viewer) advance() {
	if m.done {
		return
	}
	if err := m.sim.Step(); err != nil {
		m.err = err
		m.done = true
		return
	}
	if int(m.sim.Turn()) >= m.opts.Turns {
		m.done = true
	}
}

// Done reports whether the run reached its last turn or failed.
func (m Viewer) Done() bool {
	return m.done
}

// Err returns the error that stopped the run, if any.
func (m Viewer) Err() error {
	return m.err
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the map, the counters and the help bar.
func (m Viewer) View() string {
	if m.quitting {
		return ""
	}

	g := m.sim.Grid()
	if m.width > 0 && (g.W > m.width || g.H+6 > m.height) {
		return fmt.Sprintf("Terminal too small: need %dx%d, have %dx%d.\nPress q to quit.",
			g.W, g.H+6, m.width, m.height)
	}

	var b strings.Builder

	state := fmt.Sprintf("%d/s", m.opts.Speed)
	switch {
	case m.err != nil:
		state = "failed"
	case m.done:
		state = "finished"
	case m.paused:
		state = "paused"
	}
	title := fmt.Sprintf("robotsim  seed %d  turn %d/%d  %s",
		m.sim.Config().Seed, m.sim.Turn(), m.opts.Turns, state)
	b.WriteString(m.style(titleStyle, title))
	b.WriteString("\n\n")

	b.WriteString(RenderGrid(g, m.sim.Robots(), m.opts.Plain))
	b.WriteString("\n\n")

	sum := m.sim.Summary()
	status := fmt.Sprintf("items %d collected, %d destroyed, %d on map of %d  |  robots %d alive (%d beacons), %d lost  |  rate %.0f%%",
		sum.ItemsCollected, sum.ItemsDestroyed, sum.ItemsOnGrid, sum.ItemsGenerated,
		sum.RobotsAlive, sum.Beacons, sum.RobotsDestroyed, sum.CollectionRate()*100)
	b.WriteString(m.style(statusStyle, status))
	b.WriteString("\n")

	if m.showLegend {
		b.WriteString(Legend(m.opts.Plain))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(m.style(errorStyle, "error: "+m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(m.style(helpStyle, m.help.View(m.keys)))
	return b.String()
}

func (m Viewer) style(s lipgloss.Style, text string) string {
	if m.opts.Plain {
		return text
	}
	return s.Render(text)
}

// RunViewer animates s in the alternate screen until the run ends and the
// user quits.
func RunViewer(s *sim.Simulation, opts ViewerOptions) error {
	p := tea.NewProgram(
		NewViewer(s, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if v, ok := final.(Viewer); ok {
		return v.Err()
	}
	return nil
}
