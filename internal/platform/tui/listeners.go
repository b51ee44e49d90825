package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
)

// BellListener rings the terminal bell on merges and when a game ends.
type BellListener struct {
	out io.Writer
}

// NewBellListener creates a bell listener writing to out.
func NewBellListener(out io.Writer) *BellListener {
	return &BellListener{out: out}
}

// OnEvent implements t2048.Listener.
func (b *BellListener) OnEvent(_ string, ev t2048.Event) {
	if b.out == nil {
		return
	}
	switch ev.Kind {
	case t2048.EventMerged, t2048.EventWon, t2048.EventGameOver:
		//nolint:errcheck // A missed bell is harmless
		io.WriteString(b.out, "\a")
	}
}

// LogListener writes every game event to a logger at debug level,
// except wins and game overs which are logged at info.
type LogListener struct {
	logger *log.Logger
}

// NewLogListener creates a listener that logs to logger.
func NewLogListener(logger *log.Logger) *LogListener {
	return &LogListener{logger: logger}
}

// OnEvent implements t2048.Listener.
func (l *LogListener) OnEvent(sessionID string, ev t2048.Event) {
	if l.logger == nil {
		return
	}
	switch ev.Kind {
	case t2048.EventWon:
		l.logger.Info("win tile reached", "session", sessionID, "value", ev.Value)
	case t2048.EventGameOver:
		l.logger.Info("game over", "session", sessionID, "score", ev.Value)
	case t2048.EventMoved:
		l.logger.Debug("move", "session", sessionID, "direction", ev.Direction)
	default:
		l.logger.Debug(string(ev.Kind), "session", sessionID,
			"row", ev.Position.Row, "col", ev.Position.Col, "value", ev.Value)
	}
}
