// Package tui renders a live terminal view of a running core: power
// and k-effective charts, the tracked inventories, and interactive
// parameter tuning.
package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/reactorsim/internal/reactor"
)

const (
	historyCapacity  = 600
	chartWidth       = 56
	chartHeight      = 7
	defaultStepsTick = 333
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	statsStyle    = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(42)
	chartStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	superStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	subStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// setpointer is satisfied by controllers that track an explicit power
// setpoint.
type setpointer interface {
	Setpoint(t float64) float64
}

type resetter interface{ Reset() }

// Model drives the live view. Each frame advances the core by
// stepsPerTick integration steps, so the default 333 steps at 30
// frames per second tracks wall-clock time.
type Model struct {
	sys   reactor.System
	meter reactor.Metered
	integ reactor.Integrator
	ctrl  reactor.Controller

	name string
	x    reactor.State
	x0   reactor.State
	u    reactor.Control
	t    float64
	dt   float64

	stepsPerTick int
	running      bool
	showHelp     bool

	powerHist []float64
	keffHist  []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int
}

func NewModel(name string, sys reactor.System, integ reactor.Integrator, ctrl reactor.Controller, x0 reactor.State, dt float64) Model {
	params := make(map[string]float64)
	initialParams := make(map[string]float64)
	if c, ok := sys.(reactor.Configurable); ok {
		for k, v := range c.GetParams() {
			params[k] = v
			initialParams[k] = v
		}
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	meter, _ := sys.(reactor.Metered)

	return Model{
		sys:           sys,
		meter:         meter,
		integ:         integ,
		ctrl:          ctrl,
		name:          name,
		x:             x0.Clone(),
		x0:            x0.Clone(),
		u:             make(reactor.Control, sys.ControlDim()),
		dt:            dt,
		stepsPerTick:  defaultStepsTick,
		running:       true,
		powerHist:     make([]float64, 0, historyCapacity),
		keffHist:      make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
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
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1.05)
		case "down", "j":
			m.adjustParam(0.95)
		case "[":
			if m.stepsPerTick > 1 {
				m.stepsPerTick /= 2
			}
		case "]":
			if m.stepsPerTick < 100000 {
				m.stepsPerTick *= 2
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// advance integrates one frame's worth of steps and records one
// history sample.
func (m *Model) advance() {
	for i := 0; i < m.stepsPerTick; i++ {
		power := 0.0
		if m.meter != nil {
			power = m.meter.Power(m.x)
		}
		m.u = m.ctrl.Update(power, m.t)
		next := m.integ.Step(m.sys, m.x, m.u, m.t, m.dt)
		copy(m.x, next)
		m.t += m.dt
	}

	m.powerHist = appendCapped(m.powerHist, m.power())
	m.keffHist = appendCapped(m.keffHist, m.keff())
}

func appendCapped(hist []float64, v float64) []float64 {
	hist = append(hist, v)
	if len(hist) > historyCapacity {
		hist = hist[1:]
	}
	return hist
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	val := m.params[key] * factor
	if c, ok := m.sys.(reactor.Configurable); ok {
		if err := c.SetParam(key, val); err != nil {
			return
		}
	}
	m.params[key] = val
}

func (m *Model) reset() {
	m.t = 0
	copy(m.x, m.x0)
	m.u = make(reactor.Control, m.sys.ControlDim())
	m.powerHist = m.powerHist[:0]
	m.keffHist = m.keffHist[:0]
	if r, ok := m.ctrl.(resetter); ok {
		r.Reset()
	}
	if c, ok := m.sys.(reactor.Configurable); ok {
		for k, v := range m.initialParams {
			m.params[k] = v
			c.SetParam(k, v)
		}
	}
}

func (m *Model) power() float64 {
	if m.meter == nil {
		return 0
	}
	return m.meter.Power(m.x)
}

func (m *Model) keff() float64 {
	if m.meter == nil {
		return 0
	}
	return m.meter.KEff(m.x, m.u)
}

func (m Model) View() string {
	var charts strings.Builder
	if len(m.powerHist) > 1 {
		charts.WriteString(chartStyle.Render(asciigraph.Plot(m.powerHist,
			asciigraph.Height(chartHeight), asciigraph.Width(chartWidth),
			asciigraph.Caption("Power [W]"))) + "\n")
	}
	if len(m.keffHist) > 1 {
		charts.WriteString(chartStyle.Render(asciigraph.Plot(m.keffHist,
			asciigraph.Height(chartHeight), asciigraph.Width(chartWidth),
			asciigraph.Caption("k-effective"))) + "\n")
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	s.WriteString(status + "\n\n")

	keff := m.keff()
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.3f s", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Power") + valueStyle.Render(fmt.Sprintf("%.3e W", m.power())) + "\n")
	if sp, ok := m.ctrl.(setpointer); ok {
		s.WriteString(labelStyle.Render("Setpoint") + valueStyle.Render(fmt.Sprintf("%.3e W", sp.Setpoint(m.t))) + "\n")
	}
	s.WriteString(labelStyle.Render("k-eff") + valueStyle.Render(fmt.Sprintf("%.5f", keff)) + "  " + criticality(keff) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%d steps/frame", m.stepsPerTick)) + "\n")
	s.WriteString("\n")

	s.WriteString(labelStyle.Render("n thermal") + valueStyle.Render(fmt.Sprintf("%.3e", m.x[reactor.IdxNThermal])) + "\n")
	s.WriteString(labelStyle.Render("n fast") + valueStyle.Render(fmt.Sprintf("%.3e", m.x[reactor.IdxNFast])) + "\n")
	s.WriteString(labelStyle.Render("U235") + valueStyle.Render(fmt.Sprintf("%.4e", m.x[reactor.IdxU235])) + "\n")
	s.WriteString(labelStyle.Render("Pu239") + valueStyle.Render(fmt.Sprintf("%.4e", m.x[reactor.IdxPu239])) + "\n")
	s.WriteString(labelStyle.Render("Xe135") + valueStyle.Render(fmt.Sprintf("%.4e", m.x[reactor.IdxXe135])) + "\n")
	s.WriteString(labelStyle.Render("Burnup") + valueStyle.Render(fmt.Sprintf("%.4e J", m.x[reactor.IdxBurnup])) + "\n")
	s.WriteString(labelStyle.Render("Rods th/fa") + valueStyle.Render(fmt.Sprintf("%.2f / %.2f", m.u[reactor.CtrlThermal], m.u[reactor.CtrlFast])) + "\n")
	if ec, ok := m.integ.(reactor.ExcursionCounter); ok {
		s.WriteString(labelStyle.Render("Excursions") + valueStyle.Render(fmt.Sprintf("%d", ec.Excursions())) + "\n")
	}

	s.WriteString("\nPARAMETERS\n")
	if len(m.paramKeys) > 0 {
		for i, k := range m.paramKeys {
			line := fmt.Sprintf("%-14s %.4g", k, m.params[k])
			if i == m.selected {
				s.WriteString(activeStyle.Render("> "+line) + "\n")
			} else {
				s.WriteString("  " + labelStyle.Render(line) + "\n")
			}
		}
	} else {
		s.WriteString(labelStyle.Render("  (none)") + "\n")
	}

	s.WriteString(helpStyle.Render("\n──────────────────────\nSP:Pause R:Reset Q:Quit\nTab/↑↓:Tune [ ]:Speed ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, charts.String(), statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset the run            ║
║  Q        - Quit                     ║
║  Tab      - Cycle parameters         ║
║  Up/K     - Increase parameter (+5%) ║
║  Down/J   - Decrease parameter (-5%) ║
║  [        - Halve steps per frame    ║
║  ]        - Double steps per frame   ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

func criticality(keff float64) string {
	switch {
	case math.IsNaN(keff):
		return labelStyle.Render("NO FLUX")
	case keff > 1.001:
		return superStyle.Render("SUPERCRITICAL")
	case keff < 0.999:
		return subStyle.Render("SUBCRITICAL")
	default:
		return criticalStyle.Render("CRITICAL")
	}
}
