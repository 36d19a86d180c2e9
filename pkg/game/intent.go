package game

// Intent is an abstract player action, independent of the input device
type Intent int

const (
	MoveUp Intent = iota
	MoveDown
	MoveLeft
	MoveRight
	Pause
	BoostEngage
	BoostRelease
	Restart
	ToggleDayNight
)

func (i Intent) String() string {
	switch i {
	case MoveUp:
		return "move_up"
	case MoveDown:
		return "move_down"
	case MoveLeft:
		return "move_left"
	case MoveRight:
		return "move_right"
	case Pause:
		return "pause"
	case BoostEngage:
		return "boost_engage"
	case BoostRelease:
		return "boost_release"
	case Restart:
		return "restart"
	case ToggleDayNight:
		return "toggle_day_night"
	}
	return "unknown"
}

// movement reports whether the intent is held rather than fired once
func (i Intent) movement() bool {
	return i >= MoveUp && i <= MoveRight
}

// controls is the set of movement intents currently held
type controls [MoveRight + 1]bool

func (c *controls) set(i Intent, held bool) {
	if i.movement() {
		c[i] = held
	}
}

func (c *controls) clear() {
	*c = controls{}
}
