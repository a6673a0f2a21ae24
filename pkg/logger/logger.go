/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger gates standard library logging by verbosity level.
package logger

import (
	"io"
	"log"
	"os"
)

// Level is a verbosity level.
type Level int

const (
	// LevelError emits errors only.
	LevelError Level = iota
	// LevelInfo adds delivery summaries and lifecycle messages.
	LevelInfo
	// LevelDebug adds every raw sample.
	LevelDebug
)

// Logger writes through a *log.Logger, dropping lines above its level.
type Logger struct {
	out   *log.Logger
	level Level
}

// New creates a Logger writing to w. Levels outside the known range are
// clamped.
func New(w io.Writer, level Level) *Logger {
	if level < LevelError {
		level = LevelError
	}

	if level > LevelDebug {
		level = LevelDebug
	}

	return &Logger{
		out:   log.New(w, "", log.LstdFlags|log.Lmicroseconds),
		level: level,
	}
}

// NewStdout creates a Logger writing to standard output.
func NewStdout(level Level) *Logger {
	return New(os.Stdout, level)
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, LevelError)
}

// Level returns the configured verbosity.
func (l *Logger) Level() Level {
	return l.level
}

// Enabled reports whether lines at level are emitted.
func (l *Logger) Enabled(level Level) bool {
	return level <= l.level
}

// Errorf always logs.
func (l *Logger) Errorf(format string, args ...any) {
	l.out.Printf(format, args...)
}

// Infof logs at verbosity 1 and above.
func (l *Logger) Infof(format string, args ...any) {
	if l.Enabled(LevelInfo) {
		l.out.Printf(format, args...)
	}
}

// Debugf logs at verbosity 2.
func (l *Logger) Debugf(format string, args ...any) {
	if l.Enabled(LevelDebug) {
		l.out.Printf(format, args...)
	}
}
