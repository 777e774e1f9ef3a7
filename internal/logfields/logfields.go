package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBuildID    = "build_id"
	KeyPath       = "path"
	KeySource     = "source"
	KeyOutput     = "output"
	KeySlug       = "slug"
	KeyLink       = "link"
	KeyTemplate   = "template"
	KeyPhase      = "phase"
	KeyPages      = "pages"
	KeyIndexes    = "indexes"
	KeyAssets     = "assets"
	KeySkipped    = "skipped"
	KeyDurationMS = "duration_ms"
	KeyOp         = "op"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyRemoteAddr = "remote_addr"
	KeyAddr       = "addr"
	KeyClients    = "clients"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func BuildID(id string) slog.Attr     { return slog.String(KeyBuildID, id) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Source(p string) slog.Attr       { return slog.String(KeySource, p) }
func Output(p string) slog.Attr       { return slog.String(KeyOutput, p) }
func Slug(s string) slog.Attr         { return slog.String(KeySlug, s) }
func Link(l string) slog.Attr         { return slog.String(KeyLink, l) }
func Template(name string) slog.Attr  { return slog.String(KeyTemplate, name) }
func Phase(name string) slog.Attr     { return slog.String(KeyPhase, name) }
func Pages(n int) slog.Attr           { return slog.Int(KeyPages, n) }
func Indexes(n int) slog.Attr         { return slog.Int(KeyIndexes, n) }
func Assets(n int) slog.Attr          { return slog.Int(KeyAssets, n) }
func Skipped(n int) slog.Attr         { return slog.Int(KeySkipped, n) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Op(op string) slog.Attr          { return slog.String(KeyOp, op) }
func Method(m string) slog.Attr       { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr       { return slog.Int(KeyStatus, code) }
func RemoteAddr(a string) slog.Attr   { return slog.String(KeyRemoteAddr, a) }
func Addr(a string) slog.Attr         { return slog.String(KeyAddr, a) }
func Clients(n int) slog.Attr         { return slog.Int(KeyClients, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
