package game

import (
	"context"
	"time"
)

// EventKind enumerates the state changes a session reports
type EventKind int

const (
	EventSessionStarted EventKind = iota
	EventCollision
	EventLevelUp
	EventSessionEnded
	EventBonusLife
	EventNitroEngaged
	EventNitroReleased
	EventPaused
	EventResumed
	EventDayNight
	EventKeepAlive
)

var eventNames = [...]string{
	EventSessionStarted: "session_started",
	EventCollision:      "collision",
	EventLevelUp:        "level_up",
	EventSessionEnded:   "session_ended",
	EventBonusLife:      "bonus_life",
	EventNitroEngaged:   "nitro_engaged",
	EventNitroReleased:  "nitro_released",
	EventPaused:         "paused",
	EventResumed:        "resumed",
	EventDayNight:       "day_night",
	EventKeepAlive:      "keep_alive",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[k]
}

// Event is a discrete state change with the counters at the time it happened
type Event struct {
	Kind  EventKind
	At    time.Time
	Score int
	Level int
	Lives int
	Night bool

	// Outcome is set on EventSessionEnded only
	Outcome *Outcome
}

// Outcome summarises a finished run
type Outcome struct {
	Score     int
	Level     int
	BestScore int // best score after this run was reported
	NewBest   bool
}

// Listener receives session events. Implementations are called on the
// session goroutine and must not block.
type Listener interface {
	OnEvent(ev Event)
}

// ListenerFunc adapts a function to Listener
type ListenerFunc func(ev Event)

func (f ListenerFunc) OnEvent(ev Event) { f(ev) }

// Listeners fans an event out to several listeners in order
type Listeners []Listener

func (ls Listeners) OnEvent(ev Event) {
	for _, l := range ls {
		l.OnEvent(ev)
	}
}

// NopListener drops every event
type NopListener struct{}

func (NopListener) OnEvent(Event) {}

// ScoreKeeper persists best scores
type ScoreKeeper interface {
	// BestScore returns the best score recorded so far
	BestScore() (int, error)
	// ReportScore records a finished run and reports whether it set a new best
	ReportScore(ctx context.Context, score, level int) (bool, error)
}

// NopScoreKeeper remembers nothing; every positive score is a new best
type NopScoreKeeper struct{}

func (NopScoreKeeper) BestScore() (int, error) { return 0, nil }

func (NopScoreKeeper) ReportScore(_ context.Context, score, _ int) (bool, error) {
	return score > 0, nil
}
