// Package persistence stores framed TEDS files and the editor's runtime
// state.
//
// TEDS files (.bin) are written atomically through a temporary file. The
// editor state (recently used files with a content fingerprint) is kept as
// JSON so a later session can tell whether a file changed on disk.
package persistence
