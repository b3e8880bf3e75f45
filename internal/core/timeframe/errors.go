package timeframe

import (
	perr "trendspull/internal/platform/errors"
)

// Sentinels for resolution failures, match with errors.Is
// all of them carry ErrorCodeInvalidArgument
var (
	ErrInvalidMode = perr.New(perr.ErrorCodeInvalidArgument, "invalid range mode")
	ErrInvalidUnit = perr.New(perr.ErrorCodeInvalidArgument, "invalid range unit")
	ErrInvalidDate = perr.New(perr.ErrorCodeInvalidArgument, "invalid calendar date")
)

// invalid wraps a sentinel with detail and the offending field
func invalid(sentinel error, field, format string, a ...any) error {
	return perr.WithField(perr.Wrapf(sentinel, perr.ErrorCodeInvalidArgument, format, a...), field)
}
