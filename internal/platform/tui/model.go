package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starcatch/internal/config"
	"github.com/vovakirdan/starcatch/internal/core"
	"github.com/vovakirdan/starcatch/internal/games/stars"
	"github.com/vovakirdan/starcatch/internal/platform/snapshot"
	"github.com/vovakirdan/starcatch/internal/session"
)

// Options tune the terminal model.
type Options struct {
	Hold          time.Duration // How long a direction key stays held after a press
	ScreenshotDir string        // Defaults to ~/.starcatch/screenshots
	Logger        *log.Logger
}

// Model is the Bubble Tea model for running a session.
type Model struct {
	host      *session.Host
	screen    *core.Screen
	config    core.RuntimeConfig
	keys      KeyMap
	help      help.Model
	latch     *KeyLatch
	gameState core.GameState
	lastTick  time.Time
	shotDir   string
	status    string
	logger    *log.Logger
	quitting  bool
}

// NewModel creates a new Bubble Tea model around a started host.
func NewModel(host *session.Host, cfg core.RuntimeConfig, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		shotDir = filepath.Join(os.Getenv("HOME"), ".starcatch", "screenshots")
	}

	return Model{
		host:      host,
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-1, 1)),
		config:    cfg,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		latch:     NewKeyLatch(opts.Hold),
		gameState: host.Game().State(),
		shotDir:   shotDir,
		logger:    logger,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.status = m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		m.host.End(session.ReasonQuit)
		return m, tea.Quit
	case core.ActionMute:
		if m.host.ToggleMute() {
			m.status = "sound off"
		} else {
			m.status = "sound on"
		}
	default:
		m.latch.Press(action, time.Now())
	}

	return m, nil
}

// handleResize re-maps rendering only; the world window is fixed for the
// session.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := frameElapsed(m.lastTick, now, m.config.TickRate)
	m.lastTick = now
	frame := m.latch.Frame(now, elapsed)

	if frame.Has(core.ActionRestart) && m.gameState.GameOver {
		cfg := m.host.Runtime()
		cfg.Seed = time.Now().UnixNano()
		if err := m.host.Start(cfg); err != nil {
			m.logger.Error("restart failed", "error", err)
			m.status = "restart failed: " + err.Error()
		} else {
			m.status = ""
		}
		m.latch.Reset()
		m.gameState = m.host.Game().State()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.host.Step(frame)
	m.gameState = result.State

	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current frame as text, plus a PNG when the game
// can produce snapshots. It returns a status line.
func (m *Model) saveScreenshot() string {
	game := m.host.Game()
	game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Error("screenshot failed", "error", err)
		return "screenshot failed"
	}

	base := fmt.Sprintf("%s_%s", game.ID(), time.Now().Format("20060102_150405"))
	txtPath := filepath.Join(m.shotDir, base+".txt")
	if err := os.WriteFile(txtPath, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("screenshot failed", "error", err)
		return "screenshot failed"
	}

	if sg, ok := game.(snapshotter); ok {
		pngPath := filepath.Join(m.shotDir, base+".png")
		if err := snapshot.SavePNG(pngPath, sg.Snapshot(), pngOptions(sg.Config())); err != nil {
			m.logger.Error("png screenshot failed", "error", err)
		}
	}

	m.logger.Info("screenshot saved", "path", txtPath)
	return "saved " + txtPath
}

type snapshotter interface {
	Snapshot() stars.Snapshot
	Config() config.StarsConfig
}

func pngOptions(cfg config.StarsConfig) snapshot.Options {
	opts := snapshot.DefaultOptions()
	opts.PlayerSize = cfg.Player.Size
	opts.EnemySize = cfg.Enemy.Size
	return opts
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.host.Game().Render(m.screen)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = m.status
	}
	return RenderScreen(m.screen) + "\n" + footerStyle.Render(footer)
}

// Run starts the session and the Bubble Tea program.
func Run(host *session.Host, cfg core.RuntimeConfig, opts Options) error {
	if err := host.Start(cfg); err != nil {
		return err
	}
	defer host.End(session.ReasonQuit)

	p := tea.NewProgram(
		NewModel(host, cfg, opts),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
