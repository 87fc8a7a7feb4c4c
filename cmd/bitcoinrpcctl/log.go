// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2017 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bibajz/bitcoinrpc/rpcclient"
	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter implements an io.Writer that outputs to standard error and, once
// initialized, to the write-end pipe of the log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stderr.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

// Loggers per subsystem.  A single backend logger is created and all subsystem
// loggers created from it will write to the backend.  When adding new
// subsystems, add the subsystem logger variable here and to the
// subsystemLoggers map.
var (
	// backendLog is the logging backend used to create all subsystem
	// loggers.
	backendLog = btclog.NewBackend(logWriter{})

	// logRotator is the optional file output.  It should be closed on
	// application shutdown.
	logRotator *rotator.Rotator

	ctlLog  = backendLog.Logger("CTL")
	rpccLog = backendLog.Logger("RPCC")
)

// Initialize package-global logger variables.
func init() {
	rpcclient.UseLogger(rpccLog)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]btclog.Logger{
	"CTL":  ctlLog,
	"RPCC": rpccLog,
}

// initLogRotator initializes the logging rotater to write logs to logFile and
// create roll files in the same directory.  It must be called before the
// package-global log rotater variables are used.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}

	logRotator = r
	return nil
}

// parseLogLevel returns the level named by logLevel.
func parseLogLevel(logLevel string) (btclog.Level, error) {
	level, ok := btclog.LevelFromString(logLevel)
	if !ok {
		return btclog.LevelOff, fmt.Errorf("the specified debug level "+
			"[%v] is invalid", logLevel)
	}
	return level, nil
}

// setLogLevels sets the log level for all subsystem loggers to the passed
// level.  Invalid levels are ignored since loadConfig already rejects them.
func setLogLevels(logLevel string) {
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return
	}
	for _, logger := range subsystemLoggers {
		logger.SetLevel(level)
	}
}
