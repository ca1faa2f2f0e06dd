package logger

import (
	"log/slog"
	"time"
)

// Error records err under "error". A nil error yields an empty Attr,
// which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Component records the emitting component under "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Query records a SQL statement under "query".
func Query(sql string) slog.Attr {
	return slog.String("query", sql)
}

// RowCount records a number of rows under "rows".
func RowCount(n int) slog.Attr {
	return slog.Int("rows", n)
}

// Duration records an elapsed time under "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// SessionID records a session identifier under "session_id".
func SessionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("session_id", id)
}

// Method and Path record the request line of an HTTP request.
func Method(m string) slog.Attr { return slog.String("method", m) }
func Path(p string) slog.Attr   { return slog.String("path", p) }

// Status records an HTTP response status under "status".
func Status(code int) slog.Attr {
	return slog.Int("status", code)
}
