// SPDX-License-Identifier: MIT

// Package obs provides the engine's only logging surface: a single
// package-level structured logger, in the shape rclone's fs/log wraps
// log/slog with its own leveled, field-based calls rather than reaching
// for a third-party logging module.
package obs

import (
	"io"
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// SetOutput redirects all subsequent logging to w, used by the CLI to
// honor a configured log level and by tests to capture output.
func SetOutput(w io.Writer, level slog.Level) {
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// ReductionStart logs the beginning of a Whnf/Norm call. The reducer
// itself never logs mid-reduction: only this boundary pair does, so the
// hot upcopy/subst loop stays allocation-free.
func ReductionStart(mode string) {
	logger.Debug("reduction started", slog.String("mode", mode))
}

// ReductionDone logs the end of a Whnf/Norm call together with the
// number of steps it took and whether it ended in a panic.
func ReductionDone(mode string, steps int, err error) {
	if err != nil {
		logger.Error("reduction failed", slog.String("mode", mode), slog.Int("steps", steps), slog.String("error", err.Error()))
		return
	}
	logger.Info("reduction finished", slog.String("mode", mode), slog.Int("steps", steps))
}

// RefResolved logs the first-time resolution of a Ref's link, the only
// other point in the engine where meaningful work that is worth tracing
// happens outside the hot loop.
func RefResolved(link string) {
	logger.Debug("ref resolved", slog.String("link", link))
}
