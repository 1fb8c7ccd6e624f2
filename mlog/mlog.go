// SPDX-License-Identifier: GPL-2.0-or-later

// Package mlog carries the parser diagnostics. The codec recovers from
// most anomalies (unresolvable parents, unknown payload combinations)
// instead of failing, so the recoveries are reported here.
package mlog

import (
	"os"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	once      sync.Once
	singleton *log.Logger
)

func logger() *log.Logger {
	once.Do(func() {
		l := log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: false,
			Prefix:          "mdl",
		})
		l.SetLevel(log.WarnLevel)
		singleton = l
	})
	return singleton
}

// SetLevel changes the verbosity of all codec diagnostics.
func SetLevel(level log.Level) {
	logger().SetLevel(level)
}

func Debugf(format string, v ...interface{}) {
	logger().Debugf(format, v...)
}

func Warnf(format string, v ...interface{}) {
	logger().Warnf(format, v...)
}
