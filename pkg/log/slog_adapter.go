package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes codec events to an slog.Logger.
// Useful for development when you want to see events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level. Error events
// are written at Warn level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Schema != "" {
		attrs = append(attrs, slog.String("schema", event.Schema))
	}
	if event.File != "" {
		attrs = append(attrs, slog.String("file", event.File))
	}

	level := slog.LevelDebug
	switch {
	case event.Frame != nil:
		attrs = append(attrs,
			slog.Int("frame_size", event.Frame.Size),
			slog.Bool("truncated", event.Frame.Truncated),
			slog.Uint64("checksum", uint64(event.Frame.Checksum)),
		)
	case event.Record != nil:
		attrs = append(attrs,
			slog.String("path", event.Record.Path),
			slog.Uint64("type", uint64(event.Record.Type)),
			slog.Uint64("length", uint64(event.Record.Length)),
			slog.Bool("known", event.Record.Known),
		)
	case event.Field != nil:
		attrs = append(attrs,
			slog.String("path", event.Field.Path),
			slog.Uint64("tag", uint64(event.Field.Tag)),
			slog.String("old", event.Field.OldValue),
			slog.String("new", event.Field.NewValue),
			slog.Bool("included", event.Field.Included),
		)
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		level = slog.LevelWarn
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), level, "teds", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
