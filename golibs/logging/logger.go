// Copyright 2023 The acquirecloud Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package logging

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/solarisdb/lrucache/golibs/errors"
)

type (
	// Logger provides the leveled format-style logging to the application code
	Logger interface {
		// Errorf prints a message with the ERROR severity to the log
		Errorf(format string, args ...interface{})
		// Warnf prints a message with the WARN severity to the log
		Warnf(format string, args ...interface{})
		// Infof prints a message with the INFO severity to the log
		Infof(format string, args ...interface{})
		// Debugf prints a message with the DEBUG severity to the log
		Debugf(format string, args ...interface{})
		// Tracef prints a message with the TRACE severity to the log
		Tracef(format string, args ...interface{})
	}

	// Config defines the functions of the logging backend in charge
	Config struct {
		// NewLoggerF constructs the new Logger with the name provided
		NewLoggerF func(loggerName string) Logger
		// SetLevelF sets the level to filter the log messages by
		SetLevelF func(lvl Level)
		// GetLevelF returns the current filtering level
		GetLevelF func() Level
	}

	// Level defines the log message severity, one of the ERROR, WARN, INFO,
	// DEBUG or TRACE values
	Level int32
)

const (
	ERROR Level = iota
	WARN
	INFO
	DEBUG
	TRACE
)

var levelNames = map[Level]string{ERROR: "ERROR", WARN: "WARN", INFO: "INFO", DEBUG: "DEBUG", TRACE: "TRACE"}

// String returns the level name
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int32(l))
}

// ParseLevel returns the Level value by its name. The comparison is
// case-insensitive, so "info", "Info" and "INFO" are all fine.
func ParseLevel(name string) (Level, error) {
	for lvl, lvlName := range levelNames {
		if strings.EqualFold(name, lvlName) {
			return lvl, nil
		}
	}
	return INFO, fmt.Errorf("unknown log level %q: %w", name, errors.ErrInvalid)
}

var backend atomic.Value

func init() {
	// the std backend is the default one
	SetConfig(Config{NewLoggerF: stdNewLogger, SetLevelF: stdSetLevel, GetLevelF: stdGetLevel})
}

// NewLogger returns the Logger with the name provided. The name is printed
// with every message, so it normally identifies the component which writes
// to the log.
func NewLogger(loggerName string) Logger {
	return backend.Load().(Config).NewLoggerF(loggerName)
}

// SetLevel sets the level to filter the log messages by
func SetLevel(lvl Level) {
	backend.Load().(Config).SetLevelF(lvl)
}

// GetLevel returns the current filtering level
func GetLevel() Level {
	return backend.Load().(Config).GetLevelF()
}

// SetConfig replaces the logging backend. The loggers created before the
// call are not affected.
func SetConfig(cfg Config) {
	backend.Store(cfg)
}
