package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-match3/internal/config"
	"github.com/vovakirdan/tui-match3/internal/core"
	"github.com/vovakirdan/tui-match3/internal/games/match3"
	"github.com/vovakirdan/tui-match3/internal/games/match3/levels"
)

// Selection is what the player picked in the menu.
type Selection struct {
	GameID string
	Level  int // 1-based start level
}

// menuEntry is one line of the main menu.
type menuEntry int

const (
	entryContinue menuEntry = iota
	entryEndless
	entryLevels
	entryScores
	entryQuit
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	starStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	menuHelpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuModel is the Bubble Tea model for the main menu and level select.
type MenuModel struct {
	entries       []menuEntry
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	player        Player
	table         *levels.Table
	unlocked      int
	stars         map[int]int
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	quitting      bool
	selected      *Selection
	scoreboard    bool
}

// NewMenuModel creates a new menu model for the player.
func NewMenuModel(player Player, cfg core.RuntimeConfig) MenuModel {
	gameCfg := player.Env.Config
	if gameCfg.Levels == nil && gameCfg.Engine.Palette == 0 {
		gameCfg = config.DefaultMatch3Config()
	}

	m := MenuModel{
		entries:   []menuEntry{entryContinue, entryEndless, entryLevels, entryScores, entryQuit},
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		player:    player,
		table:     levels.NewTable(gameCfg),
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
	m.refresh()
	return m
}

// refresh reloads progress and star ratings.
func (m *MenuModel) refresh() {
	m.unlocked = m.player.Unlocked()
	m.stars = m.player.BestStars()
	m.levelCursor = min(m.levelCursor, m.levelCount()-1)
}

// levelCount is how many levels the level select lists: every authored
// level plus any generated level already unlocked.
func (m MenuModel) levelCount() int {
	return max(m.table.Len(), m.unlocked, 1)
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelKey(action)
		}
		return m.handleMainKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

func (m MenuModel) handleMainKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case MenuActionScoreboard:
		m.scoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch m.entries[m.cursor] {
		case entryContinue:
			m.selected = &Selection{GameID: match3.IDCampaign, Level: m.unlocked}
			return m, tea.Quit
		case entryEndless:
			m.selected = &Selection{GameID: match3.IDEndless, Level: 1}
			return m, tea.Quit
		case entryLevels:
			m.inLevelSelect = true
			m.levelCursor = m.unlocked - 1
			m.levelCursor = min(m.levelCursor, m.levelCount()-1)
		case entryScores:
			m.scoreboard = true
			return m, tea.Quit
		case entryQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < m.levelCount()-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		n := m.levelCursor + 1
		if n > m.unlocked {
			return m, nil
		}
		m.selected = &Selection{GameID: match3.IDCampaign, Level: n}
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}
	return m.viewMain()
}

func (m MenuModel) viewMain() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle, "M A T C H - 3", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Profile: %s  |  Unlocked: level %d", m.player.Profile, m.unlocked), m.width))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		line := m.entryLabel(e)
		if i == m.cursor {
			b.WriteString(centerStyled(cursorStyle, "> "+line, m.width))
		} else {
			b.WriteString(centerText("  "+line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(menuHelpStyle, "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  Q: Quit", m.width))
	b.WriteString("\n")
	return b.String()
}

func (m MenuModel) entryLabel(e menuEntry) string {
	switch e {
	case entryContinue:
		if m.unlocked > 1 {
			return fmt.Sprintf("Continue (level %d)", m.unlocked)
		}
		return "Play"
	case entryEndless:
		return "Endless Mode"
	case entryLevels:
		return "Select Level..."
	case entryScores:
		return "High Scores"
	default:
		return "Quit"
	}
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerStyled(titleStyle, "SELECT LEVEL", m.width))
	b.WriteString("\n\n")

	// Keep the cursor visible on short terminals.
	rows := max(m.height-8, 3)
	first := 0
	if m.levelCursor >= rows {
		first = m.levelCursor - rows + 1
	}
	last := min(first+rows, m.levelCount())

	for i := first; i < last; i++ {
		b.WriteString(m.levelLine(i+1, i == m.levelCursor))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerStyled(menuHelpStyle, "Enter: Play  |  Esc: Back  |  Q: Quit", m.width))
	return b.String()
}

// levelLine describes level n: its board, limits and best rating.
func (m MenuModel) levelLine(n int, current bool) string {
	lvl := m.table.Level(n)
	limit := fmt.Sprintf("%2d moves", lvl.Moves)
	if lvl.Timed() {
		limit += fmt.Sprintf(", %d:%02d", lvl.TimeLimit/60, lvl.TimeLimit%60)
	}
	line := fmt.Sprintf("%2d. %dx%d  target %5d  %s", n, lvl.GridSize, lvl.GridSize, lvl.TargetScore, limit)

	cursor := "  "
	if current {
		cursor = "> "
	}
	if n > m.unlocked {
		return centerStyled(dimStyle, cursor+line+"  locked", m.width)
	}

	got := core.Clamp(m.stars[n], 0, 3)
	rating := strings.Repeat("★", got) + strings.Repeat("☆", 3-got)
	if current {
		return centerText(cursorStyle.Render(cursor+line)+"  "+starStyle.Render(rating), m.width)
	}
	return centerText(cursor+line+"  "+starStyle.Render(rating), m.width)
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Multi-line blocks move as a
// whole so boxes keep their shape.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	pad := strings.Repeat(" ", (width-w)/2)
	return pad + strings.ReplaceAll(text, "\n", "\n"+pad)
}

// centerStyled renders text with style and centers the result.
func centerStyled(style lipgloss.Style, text string, width int) string {
	return centerText(style.Render(text), width)
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       *Selection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(player Player, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(player, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		result.WantsScoreboard = true
	case m.Selected() != nil:
		result.Selection = m.Selected()
	default:
		result.Quit = true
	}
	return result, nil
}
