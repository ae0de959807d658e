// Package logging configures the logrus logger used by the savesim CLI.
package logging

import (
	"fmt"
	"io"
	"slices"
	"strings"

	log "github.com/sirupsen/logrus"
)

// TimestampFormat is the time layout of every log line.
const TimestampFormat = "2006-01-02 15:04:05"

// PlainFormatter writes "LEVEL timestamp message" lines followed by any
// fields as key=value pairs.
type PlainFormatter struct {
	TimestampFormat string
	LevelDesc       []string
}

// NewPlainFormatter returns the formatter with the default level labels.
func NewPlainFormatter() *PlainFormatter {
	return &PlainFormatter{
		TimestampFormat: TimestampFormat,
		LevelDesc:       []string{"PANIC", "FATAL", "ERROR", "WARN ", "INFO ", "DEBUG", "TRACE"},
	}
}

func (f *PlainFormatter) Format(entry *log.Entry) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s", f.LevelDesc[entry.Level], entry.Time.Format(f.TimestampFormat), entry.Message)
	for _, k := range sortedKeys(entry.Data) {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// NewLogger builds a logger writing to w at the named level ("debug",
// "info", "warn", ...).
func NewLogger(level string, w io.Writer) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := log.New()
	logger.SetOutput(w)
	logger.SetFormatter(NewPlainFormatter())
	logger.SetLevel(lvl)
	return logger, nil
}

func sortedKeys(data log.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
