// Package tui provides a live terminal view of the two fields while the
// coupled system is stepped.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/traitsim/internal/mesh"
	"github.com/san-kum/traitsim/internal/sim"
	"github.com/san-kum/traitsim/internal/solver"
	"github.com/san-kum/traitsim/internal/viz"
)

type TickMsg time.Time

// Model steps the coupled solvers one time index per tick and renders the
// current consumer and resource rows.
type Model struct {
	consumer solver.Solver
	resource solver.Solver
	msh      *mesh.Mesh
	scenario string

	step        int
	stepsPerTik int
	running     bool
	err         error
}

func NewModel(consumer, resource solver.Solver, msh *mesh.Mesh, scenario string, stepsPerTick int) Model {
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	return Model{
		consumer:    consumer,
		resource:    resource,
		msh:         msh,
		scenario:    scenario,
		stepsPerTik: stepsPerTick,
		running:     true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case TickMsg:
		if m.running && m.err == nil {
			for i := 0; i < m.stepsPerTik && m.step < m.msh.T; i++ {
				if err := sim.Step(m.consumer, m.resource, m.step); err != nil {
					m.err = err
					break
				}
				m.step++
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(viz.HeaderStyle.Render(fmt.Sprintf("traitsim live — %s", m.scenario)))
	b.WriteString("\n")

	b.WriteString(viz.GraphStyle.Render(viz.PlotRow(m.consumer.Row(m.step), "consumer u(t,x)")))
	b.WriteString("\n")
	b.WriteString(viz.GraphStyle.Render(viz.PlotRow(m.resource.Row(m.step), "resource R(t,y)")))
	b.WriteString("\n\n")

	b.WriteString(viz.LabelStyle.Render("t"))
	b.WriteString(viz.ValueStyle.Render(fmt.Sprintf("%.4f", float64(m.step)*m.msh.Dt)))
	b.WriteString("  ")
	b.WriteString(viz.LabelStyle.Render("step"))
	b.WriteString(viz.ValueStyle.Render(fmt.Sprintf("%d/%d", m.step, m.msh.T)))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(viz.StatusPaused.Render(fmt.Sprintf("error: %v", m.err)))
	case m.step >= m.msh.T:
		b.WriteString(viz.StatusDone.Render("done"))
	case m.running:
		b.WriteString(viz.StatusRunning.Render("running"))
	default:
		b.WriteString(viz.StatusPaused.Render("paused"))
	}

	b.WriteString(viz.HelpStyle.Render("\nspace pause/resume · q quit"))
	return b.String()
}

// Run drives the live view until completion or quit.
func Run(consumer, resource solver.Solver, msh *mesh.Mesh, scenario string, stepsPerTick int) error {
	p := tea.NewProgram(NewModel(consumer, resource, msh, scenario, stepsPerTick))
	_, err := p.Run()
	return err
}
