package viz

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/raindrops/internal/config"
	"github.com/san-kum/raindrops/internal/dynamo"
)

var (
	menuTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuValue   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Bold(true)
	menuIdle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuIdleDim = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey     = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	menuErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

var presetInfo = map[string]string{
	"drizzle":  "a few hundred drops",
	"downpour": "dense, grid broad-phase",
	"mist":     "drifting tilt",
	"storm":    "drift, quick shakes",
}

const (
	stateMenu = iota
	stateConfig
	stateSim
)

// menu picks a preset, lets the user tune its parameters and then hands
// over to the live Model.
type menu struct {
	state, cursor int
	presets       []string
	cfg           *config.Config
	params        map[string]float64
	paramNames    []string
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	live          Model
}

func NewInteractiveApp() *menu {
	return &menu{state: stateMenu, presets: config.ListPresets()}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		if m.state == stateSim {
			next, cmd := m.live.Update(msg)
			m.live = next.(Model)
			return m, cmd
		}
	}
	return m, nil
}

func (m menu) handleKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	switch m.state {
	case stateMenu:
		return m.menuKey(msg)
	case stateConfig:
		return m.configKey(msg)
	case stateSim:
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}
	return m, nil
}

func (m menu) menuKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg = config.GetPreset(m.presets[m.cursor])
		m.params = m.cfg.Params.GetParams()
		m.paramNames = dynamo.ParamNames()
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m menu) configKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	name := m.paramNames[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.params[name] = v
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 {
				c := s[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' {
					m.editBuf += s
				}
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(m.paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, strconv.FormatFloat(m.params[name], 'f', -1, 64)
	case "left", "h":
		m.params[name] -= paramStep(m.params[name])
	case "right", "l":
		m.params[name] += paramStep(m.params[name])
	case "s":
		return m.start()
	}
	return m, nil
}

// paramStep is about a tenth of the current magnitude, at least 0.01.
func paramStep(v float64) float64 {
	switch a := v; {
	case a >= 100 || a <= -100:
		return 10
	case a >= 10 || a <= -10:
		return 1
	case a >= 1 || a <= -1:
		return 0.1
	}
	return 0.01
}

func (m menu) start() (menu, tea.Cmd) {
	cfg := m.cfg.Clone()
	for _, name := range m.paramNames {
		if err := cfg.Params.SetParam(name, m.params[name]); err != nil {
			m.err = err
			return m, nil
		}
	}
	if err := cfg.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	live, err := NewModel(cfg)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live, m.state, m.err = live, stateSim, nil
	return m, m.live.Init()
}

func (m menu) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateSim:
		return m.live.View()
	}
	return ""
}

func keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKey.Render(pairs[i]) + menuIdle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m menu) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("RAINDROPS") + "\n    " + menuSub.Render("tilt, shake, watch them fall") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			fmt.Fprintf(&b, "    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", name)), menuValue.Render(desc))
		} else {
			fmt.Fprintf(&b, "    %s  %s\n", menuIdle.Render(fmt.Sprintf("  %-12s", name)), menuIdleDim.Render(desc))
		}
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m menu) viewConfig() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(m.cfg.Name)) + "\n    " + menuSub.Render(presetInfo[m.cfg.Name]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.paramNames {
		valStr := fmt.Sprintf("%10.3f", m.params[name])
		if m.editing && i == m.paramCursor {
			valStr = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			fmt.Fprintf(&b, "    %s %s %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-22s", name)), menuValue.Render(valStr))
		} else {
			fmt.Fprintf(&b, "    %s %s\n", menuIdle.Render(fmt.Sprintf("  %-22s", name)), menuIdleDim.Render(valStr))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + menuErr.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "select", "h/l", "adjust", "enter", "edit", "s", "start", "esc", "back") + "\n")
	return b.String()
}

// RunInteractive opens the preset menu.
func RunInteractive() error {
	_, err := tea.NewProgram(NewInteractiveApp(), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
