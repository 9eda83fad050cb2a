// Package tui is the terminal catalog browser built on bubbletea.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"playcatalog/browser"
	"playcatalog/youtube"
)

type Options struct {
	Debounce time.Duration
	Clock    browser.Clock
	// Opener is the command that plays trailers, e.g. ["mpv"].
	Opener   []string
	MuteArgs []string
}

type focus int

const (
	focusInput focus = iota
	focusList
)

const maxRenderedReviews = 10

type stateChangedMsg struct{}

type Model struct {
	browser *browser.Browser
	opts    Options
	logger  *log.Entry

	programMu sync.Mutex
	program   *tea.Program

	input    textinput.Model
	results  list.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	focus    focus

	state       browser.State
	attachedFor string

	width           int
	height          int
	glamourRenderer *glamour.TermRenderer
	rendererWidth   int
}

func New(gateway browser.Gateway, opts Options) *Model {
	results := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	results.Title = "› results"
	results.SetShowStatusBar(false)
	results.SetFilteringEnabled(false)
	results.SetShowHelp(false)

	input := textinput.New()
	input.Placeholder = "Search apps..."
	input.Prompt = "⌕ "
	input.Focus()

	m := &Model{
		opts:     opts,
		logger:   log.WithFields(log.Fields{"module": "tui"}),
		input:    input,
		results:  results,
		viewport: viewport.New(0, 0),
		help:     help.New(),
		keys:     newKeyMap(),
	}
	m.browser = browser.New(gateway, browser.Options{
		Debounce: opts.Debounce,
		Clock:    opts.Clock,
		OnChange: m.notify,
	})
	m.state = m.browser.Snapshot()
	return m
}

// notify wakes the program after a browser state change. It never blocks
// because browser callbacks can fire from inside Update.
func (m *Model) notify() {
	m.programMu.Lock()
	p := m.program
	m.programMu.Unlock()
	if p != nil {
		go p.Send(stateChangedMsg{})
	}
}

// Run starts the program and blocks until the user quits or ctx ends.
func (m *Model) Run(ctx context.Context) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.programMu.Lock()
	m.program = p
	m.programMu.Unlock()
	defer m.browser.Close()

	_, err := p.Run()
	return err
}

func (m *Model) getRenderer() (*glamour.TermRenderer, error) {
	wordWrapWidth := min(max(m.width-4, 20), 120)
	if m.glamourRenderer == nil || m.rendererWidth != wordWrapWidth {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wordWrapWidth),
		)
		if err != nil {
			return nil, err
		}
		m.glamourRenderer = r
		m.rendererWidth = wordWrapWidth
	}
	return m.glamourRenderer, nil
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-6, 10)
		m.results.SetSize(msg.Width, max(msg.Height-5, 3))
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-2, 3)
		m.refreshDetail()
		return m, nil

	case stateChangedMsg:
		m.syncState()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.state.Mode == browser.ModeDetail {
			return m, m.handleDetailKey(msg)
		}
		return m, m.handleListKey(msg)
	}

	if m.state.Mode == browser.ModeList && m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleListKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Focus):
		m.toggleFocus()
		return nil
	case key.Matches(msg, m.keys.Back) && m.focus == focusList:
		m.toggleFocus()
		return nil
	case key.Matches(msg, m.keys.Open):
		if m.focus == focusInput {
			if len(m.results.Items()) > 0 {
				m.toggleFocus()
			}
			return nil
		}
		item, ok := m.results.SelectedItem().(appItem)
		if !ok {
			return nil
		}
		appID := item.app.AppID
		return func() tea.Msg {
			m.browser.Select(appID)
			return stateChangedMsg{}
		}
	}

	if m.focus == focusList {
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return cmd
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != before {
		m.browser.SetQuery(strings.TrimSpace(value))
		m.syncState()
	}
	return cmd
}

func (m *Model) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.browser.Back()
		m.attachedFor = ""
		m.syncState()
		return nil
	case key.Matches(msg, m.keys.Expand):
		m.browser.ToggleExpanded(m.state.SelectedID)
		m.syncState()
		return nil
	case key.Matches(msg, m.keys.Play):
		return m.playbackCmd(m.browser.TogglePlay)
	case key.Matches(msg, m.keys.Mute):
		return m.playbackCmd(m.browser.ToggleMute)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// playbackCmd runs a player action off the update loop.
func (m *Model) playbackCmd(action func() error) tea.Cmd {
	return func() tea.Msg {
		if err := action(); err != nil {
			m.logger.WithFields(log.Fields{"function": "playbackCmd"}).Warnf("playback: %v", err)
		}
		return stateChangedMsg{}
	}
}

// syncState pulls a fresh snapshot and updates the widgets from it.
func (m *Model) syncState() {
	prev := m.state
	m.state = m.browser.Snapshot()
	m.keys.detail = m.state.Mode == browser.ModeDetail

	if m.state.Mode == browser.ModeList {
		if !sameResults(prev, m.state) {
			items := make([]list.Item, len(m.state.Results))
			for i, r := range m.state.Results {
				items[i] = appItem{app: r}
			}
			m.results.SetItems(items)
		}
		return
	}

	m.attachTrailer()
	m.refreshDetail()
	if prev.Mode != browser.ModeDetail || prev.SelectedID != m.state.SelectedID {
		m.viewport.GotoTop()
	}
}

func sameResults(a, b browser.State) bool {
	if len(a.Results) != len(b.Results) {
		return false
	}
	for i := range a.Results {
		if a.Results[i].AppID != b.Results[i].AppID {
			return false
		}
	}
	return true
}

// attachTrailer binds a player once the media of the current selection
// resolves to a trailer.
func (m *Model) attachTrailer() {
	if m.state.SelectedID == "" || m.attachedFor == m.state.SelectedID {
		return
	}
	hero := browser.ResolveHero(m.state.Media)
	if hero.Kind != browser.HeroTrailer || len(m.opts.Opener) == 0 {
		return
	}
	target := hero.URL
	if watch := youtube.ParseTrailerURL(hero.URL).WatchURL(); watch != "" {
		target = watch
	}
	m.browser.AttachPlayer(NewExecPlayer(target, m.opts.Opener, m.opts.MuteArgs))
	m.attachedFor = m.state.SelectedID
	m.state = m.browser.Snapshot()
}

func (m *Model) refreshDetail() {
	if m.state.Mode != browser.ModeDetail {
		return
	}
	m.viewport.SetContent(m.detailContent())
}

func (m *Model) detailContent() string {
	s := m.state
	if s.Selected == nil {
		if s.DetailLoading {
			return HintStyle.Render("Loading app...")
		}
		if s.Err != nil {
			return ErrorStyle.Render(fmt.Sprintf("✗ %v", s.Err))
		}
		return ""
	}

	sections := []string{
		renderHeader(s.Selected.SearchResult),
		"",
		heroLine(s.Media, s.Playing, s.Muted),
	}
	if facts := renderFacts(s.Selected); facts != "" {
		sections = append(sections, "", facts)
	}
	sections = append(sections,
		SectionStyle.Render("About"),
		renderDescription(s.Selected.Description, s.Expanded[s.SelectedID]),
	)
	if s.Selected.RecentChanges != "" {
		sections = append(sections,
			SectionStyle.Render("What's new"),
			renderTokens(browser.ParseDescription(s.Selected.RecentChanges)),
		)
	}

	sections = append(sections, SectionStyle.Render("Reviews"))
	switch {
	case s.DetailLoading:
		sections = append(sections, HintStyle.Render("Loading reviews..."))
	default:
		sections = append(sections, m.renderReviews())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderReviews() string {
	reviews := m.state.Reviews
	if len(reviews) > maxRenderedReviews {
		reviews = reviews[:maxRenderedReviews]
	}
	md := reviewsMarkdown(reviews)
	r, err := m.getRenderer()
	if err != nil {
		m.logger.WithFields(log.Fields{"function": "renderReviews"}).Warnf("glamour renderer: %v", err)
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

func (m *Model) View() string {
	var content string
	if m.state.Mode == browser.ModeDetail {
		content = m.viewport.View()
	} else {
		borderColor := MutedColor
		if m.focus == focusInput {
			borderColor = AccentColor
		}
		input := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor).
			Padding(0, 1).
			Render(m.input.View())

		body := m.results.View()
		switch {
		case m.state.Query == "":
			body = HintStyle.Render("Type to search the Play Store.")
		case m.state.Loading && len(m.state.Results) == 0:
			body = HintStyle.Render("Searching...")
		case len(m.state.Results) == 0 && m.state.Err == nil && !m.browser.SearchPending():
			body = HintStyle.Render("No apps found.")
		}
		content = lipgloss.JoinVertical(lipgloss.Left, input, body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, m.statusBar())
}

func (m *Model) statusBar() string {
	if m.state.Err != nil {
		return lipgloss.NewStyle().Padding(0, 1).Render(ErrorStyle.Render(fmt.Sprintf("✗ %v", m.state.Err)))
	}
	status := m.help.View(m.keys)
	if m.state.Loading {
		status = HintStyle.Render("searching… ") + status
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(HelpStyle.Render(status))
}
