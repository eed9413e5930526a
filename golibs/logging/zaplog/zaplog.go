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

// Package zaplog plugs the uber zap engine into the logging facade. Call
// logging.SetConfig(zaplog.NewConfig()) once on the application start to route
// every logger obtained via logging.NewLogger through zap.
package zaplog

import (
	"github.com/solarisdb/lrucache/golibs/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"io"
	"os"
	"sync/atomic"
)

type (
	engine struct {
		zlvl zap.AtomicLevel
		lvl  int32
		root *zap.Logger
	}

	zapLogger struct {
		e  *engine
		sl *zap.SugaredLogger
	}
)

// NewConfig returns the logging.Config backed by zap writing to stdout
func NewConfig() logging.Config {
	return NewConfigWith(os.Stdout)
}

// NewConfigWith returns the logging.Config backed by zap writing to w
func NewConfigWith(w io.Writer) logging.Config {
	e := new(engine)
	e.zlvl = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	e.lvl = int32(logging.INFO)
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		MessageKey:     "msg",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), e.zlvl)
	e.root = zap.New(core)
	return logging.Config{NewLoggerF: e.newLogger, SetLevelF: e.setLevel, GetLevelF: e.getLevel}
}

func (e *engine) newLogger(name string) logging.Logger {
	return &zapLogger{e: e, sl: e.root.Named(name).Sugar()}
}

func (e *engine) setLevel(lvl logging.Level) {
	atomic.StoreInt32(&e.lvl, int32(lvl))
	e.zlvl.SetLevel(toZapLevel(lvl))
}

func (e *engine) getLevel() logging.Level {
	return logging.Level(atomic.LoadInt32(&e.lvl))
}

// toZapLevel maps the facade level to the closest zap one. Zap has no trace
// level, so both DEBUG and TRACE open the zap debug records.
func toZapLevel(lvl logging.Level) zapcore.Level {
	switch lvl {
	case logging.ERROR:
		return zapcore.ErrorLevel
	case logging.WARN:
		return zapcore.WarnLevel
	case logging.INFO:
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

// Warnf is a function for printing Warn-level messages from the source code
func (z *zapLogger) Warnf(format string, args ...interface{}) {
	z.sl.Warnf(format, args...)
}

// Infof is a function for printing Info-level messages from the source code
func (z *zapLogger) Infof(format string, args ...interface{}) {
	z.sl.Infof(format, args...)
}

// Debugf is a function for printing Debug-level messages from the source code
func (z *zapLogger) Debugf(format string, args ...interface{}) {
	z.sl.Debugf(format, args...)
}

// Tracef prints the message on the zap debug level, but only when the engine
// level is set to TRACE
func (z *zapLogger) Tracef(format string, args ...interface{}) {
	if z.e.getLevel() >= logging.TRACE {
		z.sl.Debugf(format, args...)
	}
}

// Errorf is a function for printing Error-level messages from the source code
func (z *zapLogger) Errorf(format string, args ...interface{}) {
	z.sl.Errorf(format, args...)
}
