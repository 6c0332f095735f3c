package util

import "golang.org/x/exp/slog"

func SlogError(err error) slog.Attr {
	return slog.Any("error", err)
}

// SlogLine tags a log record with the 1-based line number and raw text of an
// SDP line.
func SlogLine(num int, text string) slog.Attr {
	return slog.Group("line", slog.Int("num", num), slog.String("text", text))
}
