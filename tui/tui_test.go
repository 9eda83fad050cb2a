package tui

import (
	"context"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"playcatalog/browser"
	"playcatalog/models"
)

type fakeGateway struct {
	mu       sync.Mutex
	searches []string
}

func (g *fakeGateway) Search(_ context.Context, query string) ([]models.SearchResult, error) {
	g.mu.Lock()
	g.searches = append(g.searches, query)
	g.mu.Unlock()
	return []models.SearchResult{{AppID: "com.example", Title: "Example"}}, nil
}

func (g *fakeGateway) App(_ context.Context, appID string) (*models.AppDetail, error) {
	score := 4.567
	return &models.AppDetail{
		SearchResult: models.SearchResult{AppID: appID, Title: "Example", Developer: "Dev Co", Score: &score, Free: true},
		Description:  `Fun <font color="#ff0000">new</font> game<br>line 2`,
		Genre:        "Puzzle",
	}, nil
}

func (g *fakeGateway) Media(_ context.Context, appID string) (*models.MediaContent, error) {
	return &models.MediaContent{AppID: appID, TrailerURL: "https://www.youtube.com/embed/abc?ps=play"}, nil
}

func (g *fakeGateway) Reviews(_ context.Context, appID string) ([]models.Review, error) {
	return []models.Review{{ID: "r1", UserName: "ana", Score: 4, Text: "Nice"}}, nil
}

func newTestModel(t *testing.T) *Model {
	t.Helper()
	m := New(&fakeGateway{}, Options{Debounce: time.Hour, Opener: []string{"true"}})
	t.Cleanup(m.browser.Close)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func TestTypingSchedulesSearch(t *testing.T) {
	m := newTestModel(t)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("go")})

	if m.state.Query != "go" {
		t.Errorf("query = %q", m.state.Query)
	}
	if !m.browser.SearchPending() {
		t.Error("expected a debounced search")
	}
	if !strings.Contains(m.View(), "⌕") {
		t.Error("search box not rendered")
	}
}

func TestDetailViewAndBack(t *testing.T) {
	m := newTestModel(t)

	m.browser.Select("com.example")
	m.Update(stateChangedMsg{})

	if m.state.Mode != browser.ModeDetail {
		t.Fatalf("mode = %s", m.state.Mode)
	}
	view := m.detailContent()
	for _, want := range []string{"Example", "Dev Co", "4.6", "Free", "Trailer", "watch?v=abc", "Puzzle", "new"} {
		if !strings.Contains(view, want) {
			t.Errorf("detail view missing %q", want)
		}
	}
	if m.attachedFor != "com.example" {
		t.Error("trailer player not attached")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.state.Mode != browser.ModeList || m.state.Selected != nil {
		t.Errorf("back did not reset: %+v", m.state)
	}
	if m.attachedFor != "" {
		t.Error("attachment not cleared")
	}
}

func TestExpandToggle(t *testing.T) {
	m := newTestModel(t)
	m.browser.Select("com.example")
	m.Update(stateChangedMsg{})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	if !m.state.Expanded["com.example"] {
		t.Error("description should be expanded")
	}
}

func TestAppItem(t *testing.T) {
	item := appItem{app: models.SearchResult{Installs: "1,000+"}}
	if item.Title() != "Unnamed App" {
		t.Errorf("Title() = %q", item.Title())
	}
	desc := item.Description()
	for _, want := range []string{"Unknown Developer", "N/A", "Free", "1,000+"} {
		if !strings.Contains(desc, want) {
			t.Errorf("Description() = %q, missing %q", desc, want)
		}
	}
}

func TestReviewsMarkdown(t *testing.T) {
	md := reviewsMarkdown([]models.Review{
		{UserName: "ana", Score: 4, Date: "2024-03-01T10:00:00Z", Text: "Great", ReplyText: "Thanks\nteam"},
		{Score: 9},
	})
	for _, want := range []string{"### ana ★★★★☆", "*2024-03-01*", "Great", "> **Developer reply:** Thanks team", "### Anonymous ★★★★★"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if !strings.Contains(reviewsMarkdown(nil), "No reviews") {
		t.Error("empty reviews should say so")
	}
}

func TestRenderDescriptionCollapse(t *testing.T) {
	raw := strings.Repeat("line<br>", 10)
	if out := renderDescription(raw, false); !strings.Contains(out, "show more") {
		t.Errorf("collapsed description should offer more:\n%s", out)
	}
	if out := renderDescription(raw, true); !strings.Contains(out, "show less") {
		t.Errorf("expanded description should offer less:\n%s", out)
	}
	if out := renderDescription("", false); !strings.Contains(out, "No description") {
		t.Errorf("empty description = %q", out)
	}
}

func TestHeroLine(t *testing.T) {
	tests := []struct {
		name  string
		media *models.MediaContent
		want  string
	}{
		{"trailer", &models.MediaContent{TrailerURL: "https://youtu.be/xyz"}, "youtube.com/watch?v=xyz"},
		{"banner", &models.MediaContent{BannerImage: "https://img/banner"}, "Banner"},
		{"screenshot", &models.MediaContent{Screenshots: []string{"https://img/s1"}}, "Screenshot"},
		{"placeholder", nil, "No media"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := heroLine(tt.media, false, false); !strings.Contains(got, tt.want) {
				t.Errorf("heroLine() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestExecPlayerArgs(t *testing.T) {
	p := NewExecPlayer("https://v", []string{"mpv", "--no-terminal"}, []string{"--mute=yes"})
	if got := p.args(false); !slices.Equal(got, []string{"mpv", "--no-terminal", "https://v"}) {
		t.Errorf("args(false) = %v", got)
	}
	if got := p.args(true); !slices.Equal(got, []string{"mpv", "--mute=yes", "--no-terminal", "https://v"}) {
		t.Errorf("args(true) = %v", got)
	}

	p = NewExecPlayer("https://v", []string{"open", "--url={url}"}, nil)
	if got := p.args(false); !slices.Equal(got, []string{"open", "--url=https://v"}) {
		t.Errorf("placeholder args = %v", got)
	}
}

func collectEvents(p *ExecPlayer) (func() []browser.PlaybackEvent, chan struct{}) {
	var mu sync.Mutex
	var events []browser.PlaybackEvent
	ended := make(chan struct{}, 1)
	p.OnStateChange(func(ev browser.PlaybackEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
		if ev == browser.PlaybackEnded || ev == browser.PlaybackError {
			ended <- struct{}{}
		}
	})
	return func() []browser.PlaybackEvent {
		mu.Lock()
		defer mu.Unlock()
		return slices.Clone(events)
	}, ended
}

func TestExecPlayerRunsToEnd(t *testing.T) {
	p := NewExecPlayer("https://v", []string{"true"}, nil)
	events, ended := collectEvents(p)

	if err := p.Play(); err != nil {
		t.Fatal(err)
	}
	select {
	case <-ended:
	case <-time.After(5 * time.Second):
		t.Fatal("player never reported the end")
	}
	want := []browser.PlaybackEvent{browser.PlaybackPlaying, browser.PlaybackEnded}
	if got := events(); !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestExecPlayerPause(t *testing.T) {
	p := NewExecPlayer("https://v", []string{"sh", "-c", "sleep 5", "{url}"}, nil)
	events, _ := collectEvents(p)

	if err := p.Play(); err != nil {
		t.Fatal(err)
	}
	if err := p.Pause(); err != nil {
		t.Fatal(err)
	}
	want := []browser.PlaybackEvent{browser.PlaybackPlaying, browser.PlaybackPaused}
	if got := events(); !slices.Equal(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestExecPlayerWithoutOpener(t *testing.T) {
	p := NewExecPlayer("https://v", nil, nil)
	if err := p.Play(); err != ErrNoOpener {
		t.Errorf("Play() = %v, want ErrNoOpener", err)
	}
}
