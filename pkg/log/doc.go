// Package log provides structured event logging for TEDS encoding and editing.
//
// This package defines the Logger interface and Event types for capturing
// events at multiple layers (frame, record, field). It is separate from
// operational logging (slog): the event log is a machine-readable trace of
// what was encoded, decoded and edited.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	logger := log.NewSlogAdapter(slog.Default())
//
//	// For a persistent trace: write to a binary file
//	logger, _ := log.NewFileLogger("session.tlog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
//   - Frame: framed .bin buffers with their checksum (FrameEvent)
//   - Record: TLV records seen during a decode (RecordEvent)
//   - Field: value and inclusion edits (FieldEvent)
//
// Block state changes and errors have dedicated event types.
//
// # File Format
//
// Log files are a concatenation of CBOR-encoded events with the .tlog
// extension. "teds-edit log view" and "teds-edit log stats" read them.
package log
