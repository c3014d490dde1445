package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/raindrops/internal/config"
	"github.com/san-kum/raindrops/internal/control"
	"github.com/san-kum/raindrops/internal/dynamo"
	"github.com/san-kum/raindrops/internal/physics"
	"github.com/san-kum/raindrops/internal/shape"
	"github.com/san-kum/raindrops/internal/sim"
)

const (
	width           = 72
	height          = 24
	historyCapacity = 240
	fps             = 60
	dropSegments    = 4
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model drives one simulation from the terminal: keyboard tilt through a
// Manual adapter or the mouse through the Pointer fallback, and space to
// shake.
type Model struct {
	cfg     *config.Config
	sim     *sim.Simulator
	manual  *control.Manual
	pointer *control.Pointer

	pointerMode   bool
	running       bool
	showHelp      bool
	width, height int
	canvas        *Canvas
	snap          *dynamo.Snapshot
	countHistory  []float64
	transitions   int
	err           error

	spring            harmonica.Spring
	glow, glowVel     float64
	needle, needleVel [2]float64
}

// NewModel builds a live view for cfg. The simulated canvas keeps the
// configured pixel size and is projected onto the terminal grid.
func NewModel(cfg *config.Config) (Model, error) {
	relaxer, err := physics.NewRelaxer(cfg.Broadphase)
	if err != nil {
		return Model{}, err
	}
	s, err := sim.New(cfg.Params, cfg.Size(), sim.WithSeed(cfg.Seed), sim.WithRelaxer(relaxer))
	if err != nil {
		return Model{}, err
	}

	manual := control.NewManual()
	manual.Set(cfg.GravityVec())

	return Model{
		cfg:          cfg,
		sim:          s,
		manual:       manual,
		pointer:      control.NewPointer(),
		pointerMode:  cfg.Input == config.InputPointer,
		running:      true,
		width:        width,
		height:       height,
		canvas:       NewCanvas(width, height),
		countHistory: make([]float64, 0, historyCapacity),
		spring:       harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Err reports the frame error that stopped the view, if any.
func (m Model) Err() error { return m.err }

func (m Model) input() dynamo.InputAdapter {
	if m.pointerMode {
		return m.pointer
	}
	return m.manual
}

func (m *Model) shake() {
	m.manual.Fire()
	m.pointer.Fire()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.shake()
		case "left", "h":
			m.manual.Nudge(-1, 0)
		case "right", "l":
			m.manual.Nudge(1, 0)
		case "up", "k":
			m.manual.Nudge(0, -1)
		case "down", "j":
			m.manual.Nudge(0, 1)
		case "0":
			m.manual.Zero()
		case "m":
			m.pointerMode = !m.pointerMode
		case "p":
			m.running = !m.running
		case "r":
			m.sim.Reset()
			m.countHistory = m.countHistory[:0]
			m.transitions = 0
		case "t":
			SetTheme(NextTheme())
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		if m.pointerMode {
			// canvasStyle pads by one row and two columns
			x, y := float64(msg.X-2)+0.5, float64(msg.Y-1)+0.5
			m.pointer.Move(x, y, dynamo.Size{W: float64(m.width), H: float64(m.height)})
		}
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.shake()
		}
	case TickMsg:
		if m.running {
			if err := m.step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		m.animate(time.Time(msg))
		m.draw()
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() error {
	if m.snap != nil {
		m.sim.Release(m.snap)
		m.snap = nil
	}
	snap, err := m.sim.Tick(m.input(), m.sim.Canvas())
	if err != nil {
		return err
	}
	m.snap = snap
	m.transitions += len(m.sim.DrainEvents())

	m.countHistory = append(m.countHistory, float64(snap.Count()))
	if len(m.countHistory) > historyCapacity {
		m.countHistory = m.countHistory[1:]
	}
	return nil
}

// animate eases the highlight glow and the gravity needle toward their
// targets so the panel does not jump between frames.
func (m *Model) animate(now time.Time) {
	target := 0.0
	if ev, ok := m.sim.Highlight(); ok {
		ms := float64(now.UnixNano()) / float64(time.Millisecond)
		target = shape.HighlightAlpha(ev, now, m.cfg.Params.HighlightDuration, ms) / 255
	}
	m.glow, m.glowVel = m.spring.Update(m.glow, m.glowVel, target)

	g := m.sim.Gravity()
	for i := range m.needle {
		m.needle[i], m.needleVel[i] = m.spring.Update(m.needle[i], m.needleVel[i], g[i])
	}
}

func (m *Model) draw() {
	m.canvas.Clear()
	if m.snap != nil {
		m.drawDrops(m.snap)
	}
	if ev, ok := m.sim.Highlight(); ok && m.glow > 0.05 {
		m.drawEdge(ev.Edge, m.glow > 0.5)
	}
}

func (m *Model) drawDrops(snap *dynamo.Snapshot) {
	proj := Projection{World: snap.Canvas, DotsW: m.canvas.DotsW(), DotsH: m.canvas.DotsH()}
	drop := shape.NewTeardrop(m.cfg.Params.Radius)
	small := proj.Scale(drop.Height) < 3

	pts := make([][2]int, 0, 2*dropSegments)
	for _, p := range snap.Particles {
		if p.Exiting {
			m.canvas.SetPen(PenExit)
		} else {
			m.canvas.SetPen(PenDrop)
		}
		if small {
			x, y := proj.Point(p.Pos)
			m.canvas.Set(x, y)
			continue
		}
		pts = pts[:0]
		for _, v := range drop.Outline(p.Pos, p.Heading, dropSegments) {
			x, y := proj.Point(v)
			pts = append(pts, [2]int{x, y})
		}
		m.canvas.DrawPolygon(pts)
	}
}

func (m *Model) drawEdge(e dynamo.Edge, thick bool) {
	m.canvas.SetPen(PenGlow)
	w, h := m.canvas.DotsW()-1, m.canvas.DotsH()-1
	lines := 1
	if thick {
		lines = 2
	}
	for i := 0; i < lines; i++ {
		switch e {
		case dynamo.EdgeLeft:
			m.canvas.DrawLine(i, 0, i, h)
		case dynamo.EdgeRight:
			m.canvas.DrawLine(w-i, 0, w-i, h)
		case dynamo.EdgeTop:
			m.canvas.DrawLine(0, i, w, i)
		default:
			m.canvas.DrawLine(0, h-i, w, h-i)
		}
	}
}

// needleArrow picks the arrow closest to the direction of g on a y-down
// screen.
func needleArrow(g [2]float64) string {
	arrows := []string{"→", "↘", "↓", "↙", "←", "↖", "↑", "↗"}
	if math.Hypot(g[0], g[1]) < 0.05 {
		return "·"
	}
	a := math.Atan2(g[1], g[0])
	i := int(math.Round(a/(math.Pi/4))) % 8
	if i < 0 {
		i += 8
	}
	return arrows[i]
}

// View renders the TUI interface.
func (m Model) View() string {
	t := CurrentTheme
	canvasView := canvasStyle.Render(m.canvas.Render(t.PenStyles()))

	var s strings.Builder
	s.WriteString(GradientText("RAINDROPS", t.Primary, t.Secondary) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n")
	}

	if len(m.countHistory) > 1 {
		chart := asciigraph.Plot(m.countHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Drops"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	count, exiting, speed := 0, 0, 0.0
	if m.snap != nil {
		count, exiting, speed = m.snap.Count(), m.snap.ExitingCount(), m.snap.MeanSpeed()
	}
	g := m.sim.Gravity()
	mode := "keyboard"
	if m.pointerMode {
		mode = "pointer"
	}
	row := func(label, value string) {
		s.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", m.sim.Frame()))
	row("Drops", fmt.Sprintf("%d", count))
	row("Exiting", fmt.Sprintf("%d", exiting))
	row("Speed", fmt.Sprintf("%.2f px/f", speed))
	row("Gravity", fmt.Sprintf("%s (%.2f, %.2f)", needleArrow(m.needle), g.X(), g.Y()))
	row("Input", mode)
	row("Shakes", fmt.Sprintf("%d", m.transitions))
	if ev, ok := m.sim.Highlight(); ok {
		row("Edge", fmt.Sprintf("%s %s", ev.Kind, ev.Edge))
	} else {
		row("Edge", "-")
	}
	s.WriteString(MetricLabel.Render("Glow") + ProgressBar(m.glow, 16) + "\n")

	s.WriteString(helpStyle.Render(Separator(30) + "\nSP:Shake P:Pause R:Reset Q:Quit\n←↑↓→:Tilt M:Mouse T:Theme ?:Help"))
	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)

	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Shake (spawn / exit)     ║
║  Arrows   - Tilt gravity             ║
║  0        - Level the device         ║
║  M        - Toggle mouse pointer     ║
║  P        - Pause/Resume             ║
║  R        - Clear all drops          ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// RunLive runs the live view until the user quits.
func RunLive(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
