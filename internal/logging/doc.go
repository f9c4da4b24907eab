// Package logging configures slog for meshidx.
//
// By default a text handler writes warnings and errors to stderr. With
// --debug, JSON logs go to a size-rotated file under ~/.meshidx/logs/ and
// are mirrored to stderr.
package logging
