// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package observability configures the process logger and provides timing
// helpers around pipeline stages.
package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Observer wraps the structured logger handed through the pipeline.
type Observer struct {
	log zerolog.Logger
}

// New builds an observer writing human-readable logs to stderr. Structured
// output stays off stdout so results remain pipeable. Debug widens the
// level to include per-candidate recognizer and resolver decisions.
func New(debug bool) *Observer {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().
		Timestamp().
		Logger().
		Level(level)
	return &Observer{log: logger}
}

// Discard returns an observer that drops everything; used in tests and as
// the default when callers pass nil.
func Discard() *Observer {
	return &Observer{log: zerolog.New(io.Discard)}
}

// Log exposes the underlying logger.
func (o *Observer) Log() *zerolog.Logger { return &o.log }

// StartTiming logs the duration of a pipeline stage at debug level when
// the returned func runs.
func (o *Observer) StartTiming(stage string) func() {
	start := time.Now()
	return func() {
		o.log.Debug().
			Str("stage", stage).
			Dur("elapsed", time.Since(start)).
			Msg("stage complete")
	}
}
