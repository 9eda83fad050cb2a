package browser

import "errors"

type PlaybackEvent string

const (
	PlaybackPlaying PlaybackEvent = "playing"
	PlaybackPaused  PlaybackEvent = "paused"
	PlaybackEnded   PlaybackEvent = "ended"
	PlaybackMuted   PlaybackEvent = "muted"
	PlaybackUnmuted PlaybackEvent = "unmuted"
	PlaybackError   PlaybackEvent = "error"
)

var ErrNoPlayer = errors.New("no trailer player attached")

// Player is the playback capability a UI layer provides for trailers.
// The browser's play and mute flags mirror it on a best-effort basis.
type Player interface {
	Play() error
	Pause() error
	SetMuted(muted bool) error
	OnStateChange(func(PlaybackEvent))
}
