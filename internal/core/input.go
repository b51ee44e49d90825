package core

import "strings"

// Action is a player intent, independent of the key or swipe that produced it.
type Action int

const (
	ActionNone        Action = iota
	ActionUp                 // W, K, Up arrow, swipe up
	ActionDown               // S, J, Down arrow, swipe down
	ActionLeft               // A, H, Left arrow, swipe left
	ActionRight              // D, L, Right arrow, swipe right
	ActionUndo               // U, Z
	ActionKeepPlaying        // C, Enter after reaching the win tile
	ActionConfirm            // Enter in menus
	ActionBack               // B, Escape
	ActionRestart            // R
	ActionQuit               // Q, Ctrl+C
	ActionPause              // P

	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Left", "Right", "Undo",
	"KeepPlaying", "Confirm", "Back", "Restart", "Quit", "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// IsDirectional reports whether the action is one of the four move actions.
func (a Action) IsDirectional() bool {
	return a >= ActionUp && a <= ActionRight
}

// SwipeAction converts a drag vector into a directional action.
// The dominant axis wins and its magnitude must exceed threshold;
// otherwise ActionNone is returned. Positive dy points down.
func SwipeAction(dx, dy, threshold int) Action {
	ax, ay := Abs(dx), Abs(dy)
	switch {
	case ax > ay && ax > threshold:
		if dx > 0 {
			return ActionRight
		}
		return ActionLeft
	case ay > ax && ay > threshold:
		if dy > 0 {
			return ActionDown
		}
		return ActionUp
	}
	return ActionNone
}

// InputFrame is the set of actions triggered during one tick.
// The zero value is an empty frame and frames copy by value.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered. ActionNone and unknown actions are ignored.
func (f *InputFrame) Set(a Action) {
	if a > ActionNone && a < actionCount {
		f.bits |= 1 << a
	}
}

// Has reports whether a was triggered.
func (f InputFrame) Has(a Action) bool {
	return a > ActionNone && a < actionCount && f.bits&(1<<a) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	f.bits = 0
}

// Clone returns a copy of the frame.
func (f InputFrame) Clone() InputFrame {
	return f
}

// Actions lists the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionNone + 1; a < actionCount; a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// String lists the triggered actions, e.g. "[Up Undo]".
func (f InputFrame) String() string {
	names := make([]string, 0, actionCount)
	for _, a := range f.Actions() {
		names = append(names, a.String())
	}
	return "[" + strings.Join(names, " ") + "]"
}
