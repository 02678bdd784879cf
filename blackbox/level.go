package blackbox

import (
	"fmt"

	"flightcontrol/pipeline"
)

// Level mirrors the config file's log_level_filter values, ordered from
// least to most verbose.
type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	LevelAll
)

var levelNames = map[string]Level{
	"none":  LevelNone,
	"error": LevelError,
	"warn":  LevelWarn,
	"info":  LevelInfo,
	"debug": LevelDebug,
	"all":   LevelAll,
}

// ParseLevel maps a config log_level_filter string to a Level.
func ParseLevel(s string) (Level, bool) {
	l, ok := levelNames[s]
	return l, ok
}

// FilteredSink wraps a pipeline.LogSink, dropping messages above the
// configured verbosity before they ever reach the black-box buffer.
type FilteredSink struct {
	sink  pipeline.LogSink
	level Level
}

// NewFilteredSink returns a sink that only forwards messages at or below
// level's verbosity.
func NewFilteredSink(sink pipeline.LogSink, level Level) *FilteredSink {
	return &FilteredSink{sink: sink, level: level}
}

// Log implements pipeline.LogSink, treating line as an info-level message:
// it is dropped when the configured level is below info.
func (f *FilteredSink) Log(line string) {
	f.logAt(LevelInfo, line)
}

func (f *FilteredSink) Errorf(format string, args ...any) { f.logAt(LevelError, fmt.Sprintf(format, args...)) }
func (f *FilteredSink) Warnf(format string, args ...any)  { f.logAt(LevelWarn, fmt.Sprintf(format, args...)) }
func (f *FilteredSink) Infof(format string, args ...any)  { f.logAt(LevelInfo, fmt.Sprintf(format, args...)) }
func (f *FilteredSink) Debugf(format string, args ...any) { f.logAt(LevelDebug, fmt.Sprintf(format, args...)) }

func (f *FilteredSink) logAt(level Level, line string) {
	if f.level == LevelNone || level > f.level {
		return
	}
	f.sink.Log(line)
}
