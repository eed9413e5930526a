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
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// stdLogger is the fallback backend. It writes to stdout and serves the
// package until SetConfig installs another engine
type stdLogger struct {
	name string
}

var (
	stdOut   io.Writer = os.Stdout
	stdOutMx sync.Mutex
	stdLevel           = int32(INFO)
)

func stdNewLogger(name string) Logger {
	return &stdLogger{name: name}
}

func stdSetLevel(lvl Level) {
	atomic.StoreInt32(&stdLevel, int32(lvl))
}

func stdGetLevel() Level {
	return Level(atomic.LoadInt32(&stdLevel))
}

func (sl *stdLogger) Errorf(format string, args ...interface{}) {
	sl.logf(ERROR, format, args...)
}

func (sl *stdLogger) Warnf(format string, args ...interface{}) {
	sl.logf(WARN, format, args...)
}

func (sl *stdLogger) Infof(format string, args ...interface{}) {
	sl.logf(INFO, format, args...)
}

func (sl *stdLogger) Debugf(format string, args ...interface{}) {
	sl.logf(DEBUG, format, args...)
}

func (sl *stdLogger) Tracef(format string, args ...interface{}) {
	sl.logf(TRACE, format, args...)
}

// logf writes the whole line under the mutex, so the messages from the
// concurrent loggers are not interleaved
func (sl *stdLogger) logf(lvl Level, format string, args ...interface{}) {
	if int32(lvl) > atomic.LoadInt32(&stdLevel) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	stdOutMx.Lock()
	fmt.Fprintf(stdOut, "[%s] %s\t%s: %s\n", time.Now().Format("15:04:05.000000"), lvl, sl.name, msg)
	stdOutMx.Unlock()
}
