// Copyright 2024 The ross-config Authors
// This file is part of the ross-config library.
//
// The ross-config library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ross-config library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ross-config library. If not, see <http://www.gnu.org/licenses/>.

// Package rosslog is the engine's structured, key/value logger. It is
// deliberately minimal — a thin wrapper over log/slog in the same shape
// as the teacher's own key/value logging package, so the rest of the
// tree logs the way the teacher does without pulling in its full
// terminal-formatting machinery.
package rosslog

import (
	"context"
	"log/slog"
	"os"
)

// Logger logs key/value pairs at four levels, matching the teacher's
// Debug/Info/Warn/Error(msg string, ctx ...any) shape.
type Logger interface {
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	// New returns a child logger with ctx permanently attached to every
	// record it emits.
	New(ctx ...any) Logger
}

type slogLogger struct{ h *slog.Logger }

var root Logger = &slogLogger{h: slog.New(slog.NewTextHandler(os.Stderr, nil))}

// Root returns the package-level root logger, analogous to the teacher's
// log.Root().
func Root() Logger { return root }

// New returns a new root-derived logger with ctx attached, analogous to
// the teacher's log.New(ctx...).
func New(ctx ...any) Logger { return root.New(ctx...) }

func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }

func (l *slogLogger) Debug(msg string, ctx ...any) { l.h.Log(context.Background(), slog.LevelDebug, msg, ctx...) }
func (l *slogLogger) Info(msg string, ctx ...any)  { l.h.Log(context.Background(), slog.LevelInfo, msg, ctx...) }
func (l *slogLogger) Warn(msg string, ctx ...any)  { l.h.Log(context.Background(), slog.LevelWarn, msg, ctx...) }
func (l *slogLogger) Error(msg string, ctx ...any) { l.h.Log(context.Background(), slog.LevelError, msg, ctx...) }

func (l *slogLogger) New(ctx ...any) Logger {
	return &slogLogger{h: l.h.With(ctx...)}
}
