// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/typemaster/internal/leaderboard"
	"github.com/verte-zerg/typemaster/internal/model"
	"github.com/verte-zerg/typemaster/internal/session"
	"github.com/verte-zerg/typemaster/internal/stats"
)

// History records finished results and summarizes past ones.
type History interface {
	InsertResult(ctx context.Context, result model.TestResult) (int64, error)
	Summary(ctx context.Context, mode model.Mode, difficulty model.Difficulty) (last, best int, ok bool, err error)
}

// Options configures a typing model.
type Options struct {
	Settings     model.Settings
	Generator    session.TextGenerator
	Board        *leaderboard.Board
	History      History
	Username     string
	Logger       zerolog.Logger
	TickInterval time.Duration
	Now          func() time.Time
}

type screen int

const (
	screenTyping screen = iota
	screenResults
)

// tickMsg carries a ticker event into the update loop. Events whose run id
// differs from the loop the model last started are dropped.
type tickMsg struct {
	event session.TickEvent
}

// Model implements the Bubble Tea typing UI.
type Model struct {
	settings model.Settings
	sess     *session.Session
	ticker   *session.Ticker
	board    *leaderboard.Board
	history  History
	log      zerolog.Logger
	now      func() time.Time
	send     func(tea.Msg)
	run      uint64

	width  int
	height int
	screen screen

	result    model.TestResult
	name      textinput.Model
	submitted bool
	notice    string

	lastNet int
	bestNet int
	hasLast bool
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	noticeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// NewModel constructs a typing TUI model with a fresh session.
func NewModel(opts Options) (*Model, error) {
	sess, err := session.New(opts.Settings, opts.Generator)
	if err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	name := textinput.New()
	name.Prompt = "Name: "
	name.Placeholder = "your name"
	name.CharLimit = 64
	name.SetValue(opts.Username)

	m := &Model{
		settings: opts.Settings,
		sess:     sess,
		board:    opts.Board,
		history:  opts.History,
		log:      opts.Logger,
		now:      now,
		name:     name,
	}
	m.ticker = session.NewTicker(sess, opts.TickInterval, m.deliverTick)
	m.ticker.SetClock(now)
	m.loadSummary()
	return m, nil
}

// Run starts a Bubble Tea program for m and blocks until it exits.
func Run(m *Model, opts ...tea.ProgramOption) error {
	program := tea.NewProgram(m, opts...)
	m.send = program.Send
	defer m.Close()
	_, err := program.Run()
	return err
}

// Close stops the background ticker.
func (m *Model) Close() {
	m.ticker.Stop()
}

// Session exposes the running session.
func (m *Model) Session() *session.Session {
	return m.sess
}

func (m *Model) deliverTick(ev session.TickEvent) {
	if m.send == nil {
		return
	}
	m.send(tickMsg{event: ev})
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.Close()
			return m, tea.Quit
		}
		if m.screen == screenResults {
			return m, m.updateResults(msg)
		}
		return m, m.updateTyping(msg)
	}
	if m.screen == screenResults {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	if m.run == 0 || msg.event.Run != m.run || m.screen != screenTyping {
		return nil
	}
	if msg.event.Result != nil && m.sess.Phase() == session.PhaseComplete {
		return m.finish(*msg.event.Result)
	}
	return nil
}

func (m *Model) updateTyping(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.Close()
		return tea.Quit
	case tea.KeyCtrlR:
		m.restart()
		return nil
	case tea.KeyCtrlP:
		m.togglePause()
		return nil
	case tea.KeyCtrlD:
		if result, ok := m.sess.Finish(m.now()); ok {
			return m.finish(result)
		}
		return nil
	}
	for _, key := range keysFromMsg(msg) {
		result, done := m.sess.HandleKey(key, m.now())
		if done {
			return m.finish(result)
		}
	}
	if m.sess.Phase() == session.PhaseActive && !m.ticker.Running() {
		m.startTicker()
	}
	return nil
}

func (m *Model) togglePause() {
	switch m.sess.Phase() {
	case session.PhaseActive:
		m.sess.Pause(m.now())
		m.stopTicker()
	case session.PhasePaused:
		m.sess.Resume(m.now())
		m.startTicker()
	}
}

func (m *Model) startTicker() {
	m.run = m.ticker.Start()
}

func (m *Model) stopTicker() {
	m.ticker.Stop()
	m.run = 0
}

func (m *Model) restart() {
	m.stopTicker()
	if err := m.sess.Restart(m.settings); err != nil {
		m.log.Error().Err(err).Msg("failed to restart session")
		return
	}
	m.screen = screenTyping
	m.result = model.TestResult{}
	m.submitted = false
	m.notice = ""
	m.name.Blur()
}

func (m *Model) finish(result model.TestResult) tea.Cmd {
	m.stopTicker()
	m.result = result
	m.screen = screenResults
	m.submitted = false
	m.notice = ""
	if m.history != nil {
		if _, err := m.history.InsertResult(context.Background(), result); err != nil {
			m.log.Warn().Err(err).Msg("failed to save result")
		}
	}
	m.loadSummary()
	if m.board == nil {
		return nil
	}
	m.name.Focus()
	return textinput.Blink
}

func (m *Model) updateResults(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.Close()
		return tea.Quit
	case tea.KeyCtrlR:
		m.restart()
		return nil
	case tea.KeyEnter:
		if m.board != nil && !m.submitted {
			m.submit()
		}
		return nil
	}
	if m.submitted || m.board == nil {
		if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
			switch msg.Runes[0] {
			case 'r':
				m.restart()
			case 'q':
				m.Close()
				return tea.Quit
			}
		}
		return nil
	}
	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return cmd
}

func (m *Model) submit() {
	entry, err := m.board.Submit(context.Background(), m.name.Value(), m.result)
	switch {
	case errors.Is(err, leaderboard.ErrUsernameRequired):
		m.notice = "Please enter a name."
	case err != nil:
		m.log.Warn().Err(err).Msg("failed to submit score")
		m.notice = "Could not save score."
	default:
		m.submitted = true
		m.name.Blur()
		m.notice = fmt.Sprintf("Saved as %s.", entry.Username)
	}
}

func (m *Model) loadSummary() {
	if m.history == nil {
		return
	}
	last, best, ok, err := m.history.Summary(context.Background(), m.settings.Mode, m.settings.Difficulty)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to load result summary")
		return
	}
	m.lastNet, m.bestNet, m.hasLast = last, best, ok
}

// keysFromMsg converts a terminal key event into session keystrokes.
func keysFromMsg(msg tea.KeyMsg) []session.Key {
	switch msg.Type {
	case tea.KeyRunes:
		keys := make([]session.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			key := session.RuneKey(r)
			key.Alt = msg.Alt
			keys = append(keys, key)
		}
		return keys
	case tea.KeySpace:
		key := session.RuneKey(' ')
		key.Alt = msg.Alt
		return []session.Key{key}
	case tea.KeyBackspace, tea.KeyDelete:
		key := session.BackspaceKey()
		key.Alt = msg.Alt
		return []session.Key{key}
	}
	if msg.Type >= 0 && msg.Type < 32 {
		return []session.Key{{Kind: session.KeyOther, Ctrl: true}}
	}
	return []session.Key{{Kind: session.KeyOther, Alt: msg.Alt}}
}

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.screen {
	case screenResults:
		content = m.viewResults()
	default:
		content = m.viewTyping()
	}
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewTyping() string {
	state := m.sess.Snapshot()
	if len(state.Characters) == 0 {
		return "Nothing to type. Press ctrl+r for new text or esc to quit."
	}
	cursorIndex := -1
	if !state.IsComplete && state.CurrentIndex < len(state.Characters) {
		cursorIndex = state.CurrentIndex
	}
	styled := buildStyledRunes(state.Characters, cursorIndex)
	contentWidth := 0
	if m.width > 0 {
		contentWidth = max(1, int(float64(m.width)*0.70))
	}
	text := wrapStyledRunes(styled, contentWidth)
	if contentWidth > 0 {
		text = lipgloss.NewStyle().Width(contentWidth).Render(text)
	}

	header := headerStyle.Render(fmt.Sprintf("%s · %s · %s", m.settings.Mode, m.settings.Difficulty, remaining(m.settings, state)))
	live := footerStyle.Render(fmt.Sprintf("%d wpm  %d net  %d%% acc", state.Stats.WPM, state.Stats.NetWPM, state.Stats.Accuracy))
	lines := []string{header, "", text, "", live}
	if m.sess.Phase() == session.PhasePaused {
		lines = append(lines, noticeStyle.Render("Paused. Press ctrl+p to resume."))
	}
	help := "esc quit · ctrl+r restart · ctrl+p pause"
	if m.settings.Mode == model.ModeZen {
		help += " · ctrl+d finish"
	}
	lines = append(lines, footerStyle.Render(help))
	return strings.Join(lines, "\n")
}

func (m *Model) viewResults() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Test complete"))
	b.WriteString("\n\n")
	if err := stats.RenderResult(&b, m.result); err != nil {
		m.log.Warn().Err(err).Msg("failed to render result")
	}
	b.WriteString("\n")
	if m.board != nil && !m.submitted {
		b.WriteString(m.name.View())
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if m.board != nil && !m.submitted {
		b.WriteString(footerStyle.Render("enter save score · ctrl+r retake · esc quit"))
	} else {
		b.WriteString(footerStyle.Render("r retake · q quit"))
	}
	return b.String()
}

// remaining describes how much of the test is left.
func remaining(settings model.Settings, state model.TypingState) string {
	if settings.Mode == model.ModeZen {
		return "zen"
	}
	if settings.TestType == model.TestTypeTime {
		leftMs := int64(settings.TimeLimit)*1000 - state.Stats.TimeElapsed
		if leftMs < 0 {
			leftMs = 0
		}
		return fmt.Sprintf("%ds left", (leftMs+999)/1000)
	}
	left := settings.WordLimit - state.CurrentIndex/5
	if left < 0 {
		left = 0
	}
	return fmt.Sprintf("%d words left", left)
}

func (m *Model) renderFooter() string {
	state := m.sess.Snapshot()
	if len(state.Characters) == 0 {
		return ""
	}
	progress := state.CurrentIndex * 100 / len(state.Characters)
	segments := []string{fmt.Sprintf("Progress %d%%", progress)}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %d WPM", m.lastNet), fmt.Sprintf("Best %d WPM", m.bestNet))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}
