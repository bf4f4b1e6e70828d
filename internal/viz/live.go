package viz

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/wavesim/internal/engine"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
	stepsPerTick    = 2
	drawThreshold   = 0.05
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(0, 2)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model drives an engine interactively, advancing a few steps per frame
// and rendering the pressure field as a braille picture.
type Model struct {
	eng        *engine.Engine
	canvas     *Canvas
	rmsHistory []float64
	running    bool
	showGraph  bool
	err        error
}

func NewModel(eng *engine.Engine) Model {
	return Model{
		eng:        eng,
		canvas:     NewCanvas(canvasWidth, canvasHeight),
		rmsHistory: make([]float64, 0, historyCapacity),
		running:    true,
	}
}

func (m Model) Init() tea.Cmd {
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
		case "r":
			m.eng.Reset()
			m.rmsHistory = m.rmsHistory[:0]
			m.err = nil
		case "g":
			m.showGraph = !m.showGraph
		}
	case TickMsg:
		if m.running && m.err == nil {
			if _, err := m.eng.Run(context.Background(), stepsPerTick, 0); err != nil {
				m.err = err
				m.running = false
			}
			m.rmsHistory = append(m.rmsHistory, m.eng.RMS())
			if len(m.rmsHistory) > historyCapacity {
				m.rmsHistory = m.rmsHistory[1:]
			}
		}
		m.draw()
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m *Model) draw() {
	g := m.eng.Grid()
	m.canvas.Clear()
	m.canvas.DrawField(m.eng.Field(), g.Rows, g.Cols, drawThreshold)
}

func (m Model) View() string {
	g := m.eng.Grid()

	status := "running"
	if !m.running {
		status = "paused"
	}
	if m.err != nil {
		status = m.err.Error()
	}

	header := headerStyle.Render("wavesim") + "  " +
		labelStyle.Render("grid ") + valueStyle.Render(fmt.Sprintf("%dx%d", g.Rows, g.Cols)) + "  " +
		labelStyle.Render("step ") + valueStyle.Render(fmt.Sprintf("%d", m.eng.StepIndex())) + "  " +
		labelStyle.Render("t ") + valueStyle.Render(fmt.Sprintf("%.4fs", m.eng.Time())) + "  " +
		labelStyle.Render("rms ") + valueStyle.Render(fmt.Sprintf("%.3e", m.eng.RMS())) + "  " +
		valueStyle.Render(status)

	view := header + "\n" + canvasStyle.Render(m.canvas.String())

	if m.showGraph && len(m.rmsHistory) > 1 {
		graph := asciigraph.Plot(m.rmsHistory,
			asciigraph.Height(8),
			asciigraph.Width(canvasWidth),
			asciigraph.Caption("field rms"))
		view += "\n" + graphStyle.Render(graph)
	}

	view += helpStyle.Render("space pause · r reset · g rms graph · q quit")
	return view
}
