// Package logfields holds the canonical slog keys used across go-apirst.
package logfields

import "log/slog"

const (
	KeyPath    = "path"
	KeyModule  = "module"
	KeyFile    = "file"
	KeyCount   = "count"
	KeySource  = "source"
	KeyError   = "error"
	KeyElapsed = "elapsed"
)

func Path(p string) slog.Attr    { return slog.String(KeyPath, p) }
func Module(m string) slog.Attr  { return slog.String(KeyModule, m) }
func File(f string) slog.Attr    { return slog.String(KeyFile, f) }
func Count(n int) slog.Attr      { return slog.Int(KeyCount, n) }
func Source(s string) slog.Attr  { return slog.String(KeySource, s) }
func Elapsed(ms int64) slog.Attr { return slog.Int64(KeyElapsed, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
