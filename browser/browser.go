// Package browser holds the catalog browser's UI state machine: the search
// box with its debounced trigger, the result list and the detail view.
// It is independent of any rendering toolkit; a UI drives it and re-renders
// whenever the OnChange hook fires.
package browser

import (
	"context"
	"maps"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"playcatalog/models"
)

const DefaultDebounce = 500 * time.Millisecond

type Mode int

const (
	ModeList Mode = iota
	ModeDetail
)

func (m Mode) String() string {
	if m == ModeDetail {
		return "detail"
	}
	return "list"
}

// Gateway is the subset of the query gateway the browser calls.
type Gateway interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
	App(ctx context.Context, appID string) (*models.AppDetail, error)
	Media(ctx context.Context, appID string) (*models.MediaContent, error)
	Reviews(ctx context.Context, appID string) ([]models.Review, error)
}

// State is a snapshot of everything the UI renders.
type State struct {
	Mode     Mode
	Query    string
	Loading  bool
	Results  []models.SearchResult
	Expanded map[string]bool

	SelectedID    string
	Selected      *models.AppDetail
	DetailLoading bool
	Media         *models.MediaContent
	Reviews       []models.Review

	Playing bool
	Muted   bool

	Err error
}

type Options struct {
	Debounce time.Duration
	Clock    Clock
	OnChange func()
}

type Browser struct {
	gateway   Gateway
	debouncer *Debouncer
	onChange  func()
	logger    *log.Entry
	ctx       context.Context
	cancel    context.CancelFunc

	mu        sync.Mutex
	state     State
	searchGen uint64
	detailGen uint64
	inflight  int
	player    Player
}

func New(gateway Gateway, opts Options) *Browser {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Browser{
		gateway:   gateway,
		debouncer: NewDebouncer(opts.Clock, opts.Debounce),
		onChange:  opts.OnChange,
		logger:    log.WithFields(log.Fields{"module": "browser"}),
		ctx:       ctx,
		cancel:    cancel,
		state:     State{Expanded: map[string]bool{}},
	}
}

// Close cancels any pending search and in-flight requests.
func (b *Browser) Close() {
	b.debouncer.Cancel()
	b.cancel()
}

func (b *Browser) notify() {
	if b.onChange != nil {
		b.onChange()
	}
}

// Snapshot returns a copy of the current state.
func (b *Browser) Snapshot() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.state
	s.Expanded = maps.Clone(b.state.Expanded)
	return s
}

// SearchPending reports whether a debounced search is waiting to run.
func (b *Browser) SearchPending() bool {
	return b.debouncer.Pending()
}

// SetQuery records a keystroke. Non-empty queries are searched once typing
// pauses; an empty query clears the results without calling the gateway.
func (b *Browser) SetQuery(query string) {
	b.mu.Lock()
	b.state.Query = query
	if query == "" {
		b.debouncer.Cancel()
		// Late responses for earlier queries must not repopulate the list.
		b.searchGen++
		b.state.Results = nil
		b.state.Err = nil
		b.mu.Unlock()
		b.notify()
		return
	}
	b.mu.Unlock()

	b.debouncer.Schedule(func() { b.runSearch(query) })
	b.notify()
}

func (b *Browser) runSearch(query string) {
	logger := b.logger.WithFields(log.Fields{"function": "runSearch", "query": query})

	b.mu.Lock()
	if b.state.Query != query {
		// The query changed after the debounce fired.
		b.mu.Unlock()
		logger.Trace("query changed before search started, skipping")
		return
	}
	b.searchGen++
	gen := b.searchGen
	b.inflight++
	b.state.Loading = true
	b.mu.Unlock()
	b.notify()

	results, err := b.gateway.Search(b.ctx, query)

	b.mu.Lock()
	b.inflight--
	b.state.Loading = b.inflight > 0
	switch {
	case gen != b.searchGen:
		logger.Tracef("discarding stale response (generation %d, latest %d)", gen, b.searchGen)
	case err != nil:
		logger.Errorf("search failed: %v", err)
		b.state.Err = err
	default:
		b.state.Results = results
		b.state.Err = nil
	}
	b.mu.Unlock()
	b.notify()
}

// ToggleExpanded flips the description expansion flag of an app.
func (b *Browser) ToggleExpanded(appID string) bool {
	b.mu.Lock()
	b.state.Expanded[appID] = !b.state.Expanded[appID]
	expanded := b.state.Expanded[appID]
	b.mu.Unlock()
	b.notify()
	return expanded
}

// Select opens the detail view for appID and loads its detail, media and
// reviews. It blocks until the loads finish; media and reviews are
// best-effort.
func (b *Browser) Select(appID string) {
	logger := b.logger.WithFields(log.Fields{"function": "Select", "app_id": appID})

	b.mu.Lock()
	b.detailGen++
	gen := b.detailGen
	oldPlayer := b.resetDetailLocked()
	b.state.Mode = ModeDetail
	b.state.SelectedID = appID
	for _, r := range b.state.Results {
		if r.AppID == appID {
			b.state.Selected = &models.AppDetail{SearchResult: r}
			break
		}
	}
	b.state.DetailLoading = true
	b.mu.Unlock()
	stopPlayer(oldPlayer)
	b.notify()

	detail, err := b.gateway.App(b.ctx, appID)
	if !b.applyDetail(gen, func() {
		if err != nil {
			logger.Errorf("detail fetch failed: %v", err)
			b.state.Err = err
			return
		}
		b.state.Selected = detail
		b.state.Err = nil
	}) {
		return
	}

	media, err := b.gateway.Media(b.ctx, appID)
	if !b.applyDetail(gen, func() {
		if err != nil {
			logger.Warnf("media fetch failed, rendering without media: %v", err)
			return
		}
		b.state.Media = media
	}) {
		return
	}

	reviews, err := b.gateway.Reviews(b.ctx, appID)
	b.applyDetail(gen, func() {
		b.state.DetailLoading = false
		if err != nil {
			logger.Warnf("reviews fetch failed: %v", err)
			return
		}
		b.state.Reviews = reviews
	})
}

// applyDetail runs f under the lock if gen is still the current selection.
func (b *Browser) applyDetail(gen uint64, f func()) bool {
	b.mu.Lock()
	current := gen == b.detailGen
	if current {
		f()
	} else {
		b.logger.Tracef("discarding stale detail response (generation %d, latest %d)", gen, b.detailGen)
	}
	b.mu.Unlock()
	if current {
		b.notify()
	}
	return current
}

// Back returns to the list, dropping the selection, media and playback state.
func (b *Browser) Back() {
	b.mu.Lock()
	b.detailGen++
	oldPlayer := b.resetDetailLocked()
	b.state.Mode = ModeList
	b.mu.Unlock()
	stopPlayer(oldPlayer)
	b.notify()
}

// resetDetailLocked clears detail state and detaches the player, returning
// it so the caller can stop it outside the lock.
func (b *Browser) resetDetailLocked() Player {
	p := b.player
	if !b.state.Playing {
		p = nil
	}
	b.player = nil
	b.state.SelectedID = ""
	b.state.Selected = nil
	b.state.DetailLoading = false
	b.state.Media = nil
	b.state.Reviews = nil
	b.state.Playing = false
	b.state.Muted = false
	return p
}

func stopPlayer(p Player) {
	if p == nil {
		return
	}
	if err := p.Pause(); err != nil {
		log.WithFields(log.Fields{"module": "browser"}).Debugf("pausing detached player: %v", err)
	}
}

// AttachPlayer binds the trailer player of the current detail view.
func (b *Browser) AttachPlayer(p Player) {
	b.mu.Lock()
	b.player = p
	b.state.Playing = false
	b.state.Muted = false
	b.mu.Unlock()

	p.OnStateChange(func(ev PlaybackEvent) {
		b.handlePlaybackEvent(p, ev)
	})
	b.notify()
}

func (b *Browser) handlePlaybackEvent(p Player, ev PlaybackEvent) {
	b.mu.Lock()
	if b.player != p {
		b.mu.Unlock()
		return
	}
	switch ev {
	case PlaybackPlaying:
		b.state.Playing = true
	case PlaybackPaused, PlaybackEnded, PlaybackError:
		b.state.Playing = false
	case PlaybackMuted:
		b.state.Muted = true
	case PlaybackUnmuted:
		b.state.Muted = false
	}
	b.mu.Unlock()
	b.notify()
}

// TogglePlay plays or pauses the attached trailer.
func (b *Browser) TogglePlay() error {
	b.mu.Lock()
	p, playing := b.player, b.state.Playing
	b.mu.Unlock()
	if p == nil {
		return ErrNoPlayer
	}

	var err error
	if playing {
		err = p.Pause()
	} else {
		err = p.Play()
	}

	b.mu.Lock()
	if b.player == p {
		if err != nil {
			b.state.Playing = false
			b.state.Err = err
		} else {
			b.state.Playing = !playing
		}
	}
	b.mu.Unlock()
	b.notify()
	return err
}

// ToggleMute flips the mute state of the attached trailer.
func (b *Browser) ToggleMute() error {
	b.mu.Lock()
	p, muted := b.player, b.state.Muted
	b.mu.Unlock()
	if p == nil {
		return ErrNoPlayer
	}

	err := p.SetMuted(!muted)

	b.mu.Lock()
	if b.player == p {
		if err != nil {
			b.state.Err = err
		} else {
			b.state.Muted = !muted
		}
	}
	b.mu.Unlock()
	b.notify()
	return err
}
