package tui

import (
	"errors"
	"os"
	"os/exec"
	"slices"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"playcatalog/browser"
)

const urlPlaceholder = "{url}"

var ErrNoOpener = errors.New("no trailer opener configured")

// ExecPlayer plays a trailer by running an external command such as mpv.
// Pausing stops the process; muting restarts it with the mute arguments.
type ExecPlayer struct {
	url      string
	command  []string
	muteArgs []string
	logger   *log.Entry

	mu       sync.Mutex
	cmd      *exec.Cmd
	muted    bool
	listener func(browser.PlaybackEvent)
}

func NewExecPlayer(url string, command, muteArgs []string) *ExecPlayer {
	return &ExecPlayer{
		url:      url,
		command:  command,
		muteArgs: muteArgs,
		logger:   log.WithFields(log.Fields{"module": "tui", "url": url}),
	}
}

func (p *ExecPlayer) OnStateChange(f func(browser.PlaybackEvent)) {
	p.mu.Lock()
	p.listener = f
	p.mu.Unlock()
}

func (p *ExecPlayer) emit(ev browser.PlaybackEvent) {
	p.mu.Lock()
	f := p.listener
	p.mu.Unlock()
	if f != nil {
		f(ev)
	}
}

// args substitutes the URL placeholder, or appends the URL when the
// command has none.
func (p *ExecPlayer) args(muted bool) []string {
	args := slices.Clone(p.command)
	if muted {
		args = append(args[:1:1], append(slices.Clone(p.muteArgs), args[1:]...)...)
	}
	replaced := false
	for i, a := range args {
		if strings.Contains(a, urlPlaceholder) {
			args[i] = strings.ReplaceAll(a, urlPlaceholder, p.url)
			replaced = true
		}
	}
	if !replaced {
		args = append(args, p.url)
	}
	return args
}

func (p *ExecPlayer) Play() error {
	if len(p.command) == 0 {
		return ErrNoOpener
	}
	p.mu.Lock()
	if p.cmd != nil {
		p.mu.Unlock()
		return nil
	}
	err := p.startLocked()
	p.mu.Unlock()
	if err != nil {
		p.emit(browser.PlaybackError)
		return err
	}
	p.emit(browser.PlaybackPlaying)
	return nil
}

func (p *ExecPlayer) startLocked() error {
	args := p.args(p.muted)
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		p.logger.Errorf("starting trailer player: %v", err)
		return err
	}
	p.cmd = cmd
	p.logger.Debugf("trailer player started: %s", strings.Join(args, " "))
	go p.wait(cmd)
	return nil
}

func (p *ExecPlayer) wait(cmd *exec.Cmd) {
	err := cmd.Wait()

	p.mu.Lock()
	current := p.cmd == cmd
	if current {
		p.cmd = nil
	}
	p.mu.Unlock()
	if !current {
		return
	}
	if err != nil {
		p.logger.Warnf("trailer player exited: %v", err)
		p.emit(browser.PlaybackError)
		return
	}
	p.emit(browser.PlaybackEnded)
}

func (p *ExecPlayer) Pause() error {
	p.mu.Lock()
	cmd := p.cmd
	p.cmd = nil
	p.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			return err
		}
	}
	p.emit(browser.PlaybackPaused)
	return nil
}

func (p *ExecPlayer) SetMuted(muted bool) error {
	p.mu.Lock()
	p.muted = muted
	cmd := p.cmd
	var err error
	if cmd != nil && len(p.muteArgs) > 0 {
		p.cmd = nil
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		err = p.startLocked()
	}
	p.mu.Unlock()

	if err != nil {
		p.emit(browser.PlaybackError)
		return err
	}
	if muted {
		p.emit(browser.PlaybackMuted)
	} else {
		p.emit(browser.PlaybackUnmuted)
	}
	return nil
}
