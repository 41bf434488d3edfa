package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bopdrop/internal/core"
	"github.com/vovakirdan/bopdrop/internal/registry"
	"github.com/vovakirdan/bopdrop/internal/storage"
)

// SessionModel manages the session flow: game -> scoreboard -> game.
// It is the top-level model for local play and for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	log      *log.Logger
	gameID   string
	title    string
	width    int
	height   int
	game     Model
	board    *ScoreboardModel
	quitting bool
}

// NewSessionModel creates a session around one game instance.
func NewSessionModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return SessionModel{
		store:  store,
		log:    logger,
		gameID: game.ID(),
		title:  game.Title(),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		game:   NewModel(game, store, cfg, logger),
	}
}

// Init starts the game.
func (m SessionModel) Init() tea.Cmd {
	return m.game.Init()
}

// Update routes messages to the game or the scoreboard.
// Ticks always reach the game so its tick loop keeps running.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cmd := m.updateGame(msg)
		if m.board != nil {
			return m, tea.Batch(cmd, m.updateBoard(msg))
		}
		return m, cmd
	case TickMsg:
		return m, m.updateGame(msg)
	}

	if m.board != nil {
		cmd := m.updateBoard(msg)
		switch {
		case m.board.IsQuitting():
			m.quitting = true
			return m, tea.Quit
		case m.board.IsGoingBack():
			m.board = nil
		}
		return m, cmd
	}

	cmd := m.updateGame(msg)
	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.game.backToMenu = false
		board := NewScoreboardModel(m.store, m.gameID, m.title, m.width, m.height)
		m.board = &board
	}
	return m, cmd
}

func (m *SessionModel) updateGame(msg tea.Msg) tea.Cmd {
	next, cmd := m.game.Update(msg)
	if gm, ok := next.(Model); ok {
		m.game = gm
	}
	return cmd
}

func (m *SessionModel) updateBoard(msg tea.Msg) tea.Cmd {
	next, cmd := m.board.Update(msg)
	if bm, ok := next.(ScoreboardModel); ok {
		m.board = &bm
	}
	return cmd
}

// InScoreboard reports whether the scoreboard is showing.
func (m SessionModel) InScoreboard() bool {
	return m.board != nil
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.board != nil {
		return m.board.View()
	}
	return m.game.View()
}
