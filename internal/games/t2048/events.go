package t2048

// EventKind identifies a discrete game notification.
type EventKind string

const (
	EventMoved     EventKind = "move"
	EventMerged    EventKind = "merge"
	EventSpawned   EventKind = "new_tile"
	EventWon       EventKind = "win"
	EventGameOver  EventKind = "game_over"
	EventUndone    EventKind = "undo"
	EventRestarted EventKind = "restart"
	EventContinued EventKind = "keep_playing"
)

// Event is a notification emitted after the session changed.
// Value carries the merged/spawned tile value, the win value, or the final score.
type Event struct {
	Kind      EventKind
	Direction Direction
	Position  Position
	Value     int
}

func spawnEvent(s SpawnedTile) Event {
	return Event{Kind: EventSpawned, Position: s.Position, Value: s.Tile.Value}
}

// Listener receives game events, e.g. to play sounds or mirror the game elsewhere.
// Listeners are called synchronously after the session has been updated and
// must not block; they never influence the game.
type Listener interface {
	OnEvent(sessionID string, ev Event)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(sessionID string, ev Event)

// OnEvent calls f.
func (f ListenerFunc) OnEvent(sessionID string, ev Event) {
	f(sessionID, ev)
}

// Listeners fans every event out to each listener in order.
type Listeners []Listener

// OnEvent forwards ev to every non-nil listener.
func (ls Listeners) OnEvent(sessionID string, ev Event) {
	for _, l := range ls {
		if l != nil {
			l.OnEvent(sessionID, ev)
		}
	}
}

// NopListener discards all events.
type NopListener struct{}

// OnEvent does nothing.
func (NopListener) OnEvent(string, Event) {}
