package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Setup logs JSON lines to stderr and, when path is set, appends the same
// events to the portal log file. The returned closer releases the file.
func Setup(dev bool, path string) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if dev {
		level = zerolog.DebugLevel
	}

	var console io.Writer = os.Stderr
	if dev {
		console = zerolog.ConsoleWriter{Out: os.Stderr, FormatTimestamp: func(i any) string {
			return time.Now().Format(time.RFC3339)
		}}
	}

	if path == "" {
		return zerolog.New(console).Level(level).With().Timestamp().Logger(), io.NopCloser(nil), nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), io.NopCloser(nil), fmt.Errorf("open log file %s: %w", path, err)
	}

	out := zerolog.MultiLevelWriter(console, f)
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), f, nil
}
