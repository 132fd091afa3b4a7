package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type LogLevel string

const (
	DEBUG LogLevel = "DEBUG"
	INFO  LogLevel = "INFO"
	WARN  LogLevel = "WARN"
	ERROR LogLevel = "ERROR"
)

var levelRank = map[LogLevel]int{
	DEBUG: 0,
	INFO:  1,
	WARN:  2,
	ERROR: 3,
}

// Logger is a leveled key-value logger. Zero value is not usable; call Init
// once at startup and obtain instances via GetLogger.
type Logger struct {
	level   LogLevel
	json    bool
	out     io.Writer
	context map[string]interface{}
	mu      *sync.Mutex
}

var (
	global   *Logger
	initOnce sync.Once
)

// Init configures the global logger. A nil out discards all output.
func Init(level LogLevel, jsonFormat bool, out io.Writer) {
	if out == nil {
		out = io.Discard
	}
	if _, ok := levelRank[level]; !ok {
		level = INFO
	}
	global = &Logger{
		level:   level,
		json:    jsonFormat,
		out:     out,
		context: map[string]interface{}{},
		mu:      &sync.Mutex{},
	}
}

// GetLogger returns the global logger, initializing a default one if needed.
func GetLogger() *Logger {
	initOnce.Do(func() {
		if global == nil {
			Init(INFO, false, os.Stdout)
		}
	})
	if global == nil {
		Init(INFO, false, os.Stdout)
	}
	return global
}

// WithContext returns a child logger that carries an extra key-value pair on
// every entry.
func (l *Logger) WithContext(key string, value interface{}) *Logger {
	ctx := make(map[string]interface{}, len(l.context)+1)
	for k, v := range l.context {
		ctx[k] = v
	}
	ctx[key] = value
	return &Logger{
		level:   l.level,
		json:    l.json,
		out:     l.out,
		context: ctx,
		mu:      l.mu,
	}
}

func (l *Logger) Debug(event string, kvs ...interface{}) { l.log(DEBUG, event, kvs...) }
func (l *Logger) Info(event string, kvs ...interface{})  { l.log(INFO, event, kvs...) }
func (l *Logger) Warn(event string, kvs ...interface{})  { l.log(WARN, event, kvs...) }
func (l *Logger) Error(event string, kvs ...interface{}) { l.log(ERROR, event, kvs...) }

func (l *Logger) log(level LogLevel, event string, kvs ...interface{}) {
	if levelRank[level] < levelRank[l.level] {
		return
	}

	fields := make(map[string]interface{}, len(l.context)+len(kvs)/2)
	for k, v := range l.context {
		fields[k] = v
	}
	for i := 0; i+1 < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kvs[i])
		}
		fields[key] = kvs[i+1]
	}

	ts := time.Now().UTC().Format(time.RFC3339)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.json {
		entry := map[string]interface{}{
			"ts":    ts,
			"level": string(level),
			"event": event,
		}
		for k, v := range fields {
			entry[k] = v
		}
		data, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.out, `{"ts":%q,"level":"ERROR","event":"log_marshal_failed"}`+"\n", ts)
			return
		}
		l.out.Write(append(data, '\n'))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s", ts, level, event)
	for k, v := range fields {
		fmt.Fprintf(&b, " %s=%v", k, v)
	}
	b.WriteByte('\n')
	io.WriteString(l.out, b.String())
}
