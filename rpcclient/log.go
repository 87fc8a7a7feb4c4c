// Copyright (c) 2014-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcclient

import (
	"github.com/btcsuite/btclog"
)

// log is the package logger.  It discards everything until an application
// installs its own logger with UseLogger.
var log btclog.Logger = btclog.Disabled

// DisableLog turns package logging off again.
func DisableLog() {
	log = btclog.Disabled
}

// UseLogger sets the logger the client writes to.  Envelopes are logged at
// trace level, round trips at debug level and id mismatches at warn level.
func UseLogger(logger btclog.Logger) {
	log = logger
}

// logClosure defers building a log argument until the logger formats it, so
// request bodies are only rendered when trace output is enabled.
type logClosure func() string

func (c logClosure) String() string {
	return c()
}

func newLogClosure(c func() string) logClosure {
	return logClosure(c)
}
