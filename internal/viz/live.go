package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/codebox/generative-city-map/internal/city"
	"github.com/codebox/generative-city-map/internal/experiment"
	"github.com/codebox/generative-city-map/internal/metrics"
	"github.com/codebox/generative-city-map/internal/rng"
)

const (
	canvasCols      = 80
	canvasRows      = 30
	historyCapacity = 600
	maxSpeed        = 16
)

type FrameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return FrameMsg(t) })
}

// Model drives a growing map at frame rate. The model owns tick scheduling:
// each frame advances the forest by the current speed while streets are
// still growing, so pausing the view pauses the city.
type Model struct {
	cfg     experiment.Config
	view    city.Viewport
	city    *city.Model
	mets    []metrics.Metric
	canvas  *Canvas
	history []float64
	seed    int64
	speed   int
	running bool
}

// NewLive builds the live view for one run configuration.
func NewLive(cfg experiment.Config) (Model, error) {
	if cfg.MaxTicks <= 0 {
		cfg.MaxTicks = experiment.DefaultMaxTicks
	}
	view, err := experiment.NewViewport(cfg.Viewport, cfg.Width, cfg.Height)
	if err != nil {
		return Model{}, err
	}
	m := Model{
		cfg:     cfg,
		view:    view,
		canvas:  NewCanvas(canvasCols, canvasRows),
		seed:    cfg.Seed,
		speed:   1,
		running: true,
	}
	m.rebuild()
	return m, nil
}

// rebuild regrows the forest from the current seed.
func (m *Model) rebuild() {
	m.city = city.New(rng.New(uint32(m.seed)), m.view, m.cfg.City)
	m.city.Generate()
	m.mets = experiment.DefaultMetrics(m.cfg.Width, m.cfg.Height)
	for _, met := range m.mets {
		met.Reset()
	}
	m.history = m.history[:0]
	m.history = append(m.history, float64(m.city.ActiveLines()))
}

func (m Model) Init() tea.Cmd {
	return frameTick()
}

// Update handles input events and advances the growth.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.rebuild()
		case "n":
			m.seed++
			m.rebuild()
		case "t":
			names := ThemeNames()
			for i, name := range names {
				if name == CurrentTheme.Name {
					SetTheme(names[(i+1)%len(names)])
					break
				}
			}
		case "+", "=":
			if m.speed < maxSpeed {
				m.speed++
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed--
			}
		}
	case FrameMsg:
		if m.running {
			m.step()
		}
		return m, frameTick()
	}
	return m, nil
}

// step advances the forest by the current speed, one tick at a time so
// metrics observe every tick.
func (m *Model) step() {
	for i := 0; i < m.speed; i++ {
		if !m.city.IsActive() || m.city.Ticks() >= m.cfg.MaxTicks {
			return
		}
		m.city.Grow()
		for _, met := range m.mets {
			met.Observe(m.city, m.city.Ticks())
		}
		m.history = append(m.history, float64(m.city.ActiveLines()))
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	}
}

func (m Model) status() string {
	switch {
	case !m.running:
		return "PAUSED"
	case m.city.IsActive():
		return "GROWING"
	default:
		return "SETTLED"
	}
}

// View renders the map canvas beside the stats sidebar.
func (m Model) View() string {
	theme := CurrentTheme

	canvasStyle := lipgloss.NewStyle().Foreground(theme.Street).Padding(1, 2)
	statsStyle := lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(theme.Muted).Padding(1, 2).Width(40)
	headerStyle := lipgloss.NewStyle().Foreground(theme.Title).Bold(true).MarginBottom(1)
	labelStyle := lipgloss.NewStyle().Foreground(theme.Muted).Width(12)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text)
	graphStyle := lipgloss.NewStyle().Foreground(theme.Accent).Padding(1, 0)
	helpStyle := lipgloss.NewStyle().Foreground(theme.Muted).MarginTop(2)

	statusStyle := lipgloss.NewStyle().Bold(true)
	switch m.status() {
	case "GROWING":
		statusStyle = statusStyle.Foreground(theme.Growing)
	case "PAUSED":
		statusStyle = statusStyle.Foreground(theme.Paused)
	default:
		statusStyle = statusStyle.Foreground(theme.Settled)
	}

	m.canvas.Clear()
	DrawForest(m.canvas, m.city)
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Render(fmt.Sprintf("CITY MAP  SEED %d", m.seed)) + "\n")
	s.WriteString(statusStyle.Render(m.status()) + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Active streets"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Tick") + valueStyle.Render(fmt.Sprintf("%d", m.city.Ticks())) + "\n")
	s.WriteString(labelStyle.Render("Active") + valueStyle.Render(fmt.Sprintf("%d", m.city.ActiveLines())) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%dx", m.speed)) + "\n\n")
	for _, met := range m.mets {
		s.WriteString(labelStyle.Render(met.Name()) + valueStyle.Render(fmt.Sprintf("%.2f", met.Value())) + "\n")
	}
	s.WriteString("\n" + labelStyle.Render("Theme") + valueStyle.Render(theme.Name) + "\n")

	s.WriteString(helpStyle.Render("─────────────────────\nSP:Pause R:Replay N:New Seed\nT:Theme +/-:Speed Q:Quit"))
	statsView := statsStyle.Render(s.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
