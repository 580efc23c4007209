package switchback

import "log/slog"

const (
	LogKindKey = "kind"
	LogMaskVal = "xxxxxx"
)

var (
	AppLogKind  = slog.StringValue("app")
	HTTPLogKind = slog.StringValue("http")

	// MaskedLogValue is a convenience [log/slog.Value]
	// to be used in implementations of [log/slog.LogValuer]
	// to hide sensitive data from log messages.
	MaskedLogValue = slog.StringValue(LogMaskVal)
)
