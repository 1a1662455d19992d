package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taubyte/example-games-tower-blocks/internal/achievements"
	"github.com/taubyte/example-games-tower-blocks/internal/leaderboard"
	"github.com/taubyte/example-games-tower-blocks/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the view list sidebar
	sidebarWidth       = 20  // Width of view list sidebar
	maxScores          = 100 // Max scores to load
	progressBarWidth   = 10
)

// ScoreView is one tab of the scoreboard.
type ScoreView int

const (
	ViewTop ScoreView = iota
	ViewMine
	ViewGlobal
	ViewAchievements
)

var scoreViewTitles = []string{"Top scores", "My scores", "Global", "Achievements"}

func (v ScoreView) String() string {
	if int(v) < len(scoreViewTitles) {
		return scoreViewTitles[v]
	}
	return "unknown"
}

// GlobalBoard fetches the remote leaderboard.
type GlobalBoard interface {
	Top(ctx context.Context) ([]leaderboard.Score, error)
}

// ScoreboardOptions are the data sources of the scoreboard.
type ScoreboardOptions struct {
	Store  *storage.Store
	Player string
	Global GlobalBoard // Optional; the Global tab says when it is missing
}

// globalLoadedMsg carries the result of a leaderboard fetch.
type globalLoadedMsg struct {
	scores []leaderboard.Score
	err    error
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Refresh  key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Refresh, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Refresh, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scores and achievements screen.
type ScoreboardModel struct {
	opts        ScoreboardOptions
	view        ScoreView
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool

	scores       []storage.ScoreEntry
	global       []leaderboard.Score
	globalErr    error
	globalLoaded bool
	achievements []achievements.Status
	loadErr      error
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(opts ScoreboardOptions, width, height int) ScoreboardModel {
	if opts.Player == "" {
		opts.Player = storage.DefaultPlayer
	}
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		opts:        opts,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.loadView()
	return m
}

// columns returns the table columns of the current view.
func (m *ScoreboardModel) columns() []table.Column {
	switch m.view {
	case ViewGlobal:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: 20},
			{Title: "Best", Width: 8},
		}
	case ViewAchievements:
		return []table.Column{
			{Title: "", Width: 2},
			{Title: "Achievement", Width: 18},
			{Title: "Progress", Width: progressBarWidth + 6},
			{Title: "Goal", Width: 30},
		}
	default:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: 12},
			{Title: "Score", Width: 7},
			{Title: "Perfect", Width: 8},
			{Title: "Time", Width: 8},
			{Title: "Date", Width: 13},
		}
	}
}

func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// loadView reads the local data of the current view and rebuilds the table.
func (m *ScoreboardModel) loadView() {
	m.loadErr = nil
	store := m.opts.Store

	switch m.view {
	case ViewTop:
		m.scores = nil
		if store != nil {
			m.scores, m.loadErr = store.TopScores(maxScores)
		}
	case ViewMine:
		m.scores = nil
		if store != nil {
			m.scores, m.loadErr = store.PlayerScores(m.opts.Player, maxScores)
		}
	case ViewAchievements:
		var st achievements.Store
		if store != nil {
			st = store
		}
		sys, err := achievements.New(st, m.opts.Player)
		if err != nil {
			m.loadErr = err
			m.achievements = nil
		} else {
			m.achievements = sys.List()
		}
	}

	m.table = m.createTable()
	m.updateTableRows()
}

// updateTableRows fills the table from the loaded data.
func (m *ScoreboardModel) updateTableRows() {
	var rows []table.Row

	switch m.view {
	case ViewGlobal:
		for i, s := range m.global {
			rows = append(rows, table.Row{fmt.Sprintf("#%d", i+1), s.PlayerName, s.HighestScore})
		}
	case ViewAchievements:
		for _, st := range m.achievements {
			icon := " "
			if st.Unlocked {
				icon = st.Icon
			}
			rows = append(rows, table.Row{icon, st.Title, progressBar(st.Progress), st.Description})
		}
	default:
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				s.Player,
				fmt.Sprintf("%d", s.Score),
				fmt.Sprintf("%d", s.Perfect),
				formatDuration(time.Duration(s.DurationMs) * time.Millisecond),
				s.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}

// fetchGlobal loads the remote leaderboard in the background.
func (m ScoreboardModel) fetchGlobal() tea.Cmd {
	board := m.opts.Global
	if board == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		scores, err := board.Top(ctx)
		return globalLoadedMsg{scores: scores, err: err}
	}
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextView):
			return m.switchView((m.view + 1) % ScoreView(len(scoreViewTitles)))

		case key.Matches(msg, m.keys.PrevView):
			return m.switchView((m.view + ScoreView(len(scoreViewTitles)) - 1) % ScoreView(len(scoreViewTitles)))

		case key.Matches(msg, m.keys.Refresh):
			return m.switchView(m.view)
		}

	case globalLoadedMsg:
		m.global, m.globalErr = msg.scores, msg.err
		m.globalLoaded = true
		if m.view == ViewGlobal {
			m.updateTableRows()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) switchView(v ScoreView) (tea.Model, tea.Cmd) {
	m.view = v
	m.loadView()
	if v == ViewGlobal {
		m.globalLoaded = false
		return m, m.fetchGlobal()
	}
	return m, nil
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("TOWER BLOCKS - %s", strings.ToUpper(m.view.String()))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the view list as a sidebar next to the table.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString(m.opts.Player)
	sidebar.WriteString("\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, name := range scoreViewTitles {
		cursor := "  "
		style := lipgloss.NewStyle()
		if ScoreView(i) == m.view {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ",
		tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders view tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(scoreViewTitles))
	plain := 0
	for i, name := range scoreViewTitles {
		if ScoreView(i) == m.view {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
		plain += len(name) + 3
	}

	tabLine := strings.Join(tabs, " ")
	if plain > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.view)
		plain = len(tabLine)
	}
	b.WriteString(centerStyled(tabLine, plain, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or a status message.
func (m ScoreboardModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load data:\n" + m.loadErr.Error())
	case m.view == ViewGlobal && m.opts.Global == nil:
		return emptyStyle.Render("Global leaderboard is not configured.\nSet leaderboard.base_url or TOWER_API_BASE_URL.")
	case m.view == ViewGlobal && !m.globalLoaded:
		return emptyStyle.Render("Loading global leaderboard...")
	case m.view == ViewGlobal && m.globalErr != nil:
		return emptyStyle.Render("Leaderboard unavailable:\n" + m.globalErr.Error())
	case m.view == ViewGlobal && len(m.global) == 0:
		return emptyStyle.Render("Nobody is on the leaderboard yet.")
	case (m.view == ViewTop || m.view == ViewMine) && len(m.scores) == 0:
		return emptyStyle.Render("No scores recorded yet.\nPlay a round to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// CurrentView returns the selected tab.
func (m ScoreboardModel) CurrentView() ScoreView {
	return m.view
}

// progressBar renders a fraction as a fixed-width bar with a percentage.
func progressBar(p float64) string {
	p = max(0, min(p, 1))
	filled := int(p*progressBarWidth + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled) + fmt.Sprintf(" %3d%%", int(p*100+0.5))
}

// formatDuration renders a round length as m:ss.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(opts ScoreboardOptions, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(opts, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
