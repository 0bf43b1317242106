package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const (
	permission = 0664
)

type LogBuild struct {
	writer io.Writer
	path   string
	level  zerolog.Level
}

type LogData struct {
	LogFile *os.File
	Logger  zerolog.Logger
}

// NewBuild starts a zerolog logger definition writing to stderr at info level.
func NewBuild() *LogBuild {
	return &LogBuild{writer: os.Stderr, level: zerolog.InfoLevel}
}

func (build *LogBuild) FromPath(path string) *LogBuild {
	build.path = path
	return build
}

func (build *LogBuild) FromBuffer(w io.Writer) *LogBuild {
	build.writer = w
	return build
}

func (build *LogBuild) Level(level zerolog.Level) *LogBuild {
	build.level = level
	return build
}

// Make opens the log file if a path was given and builds the logger.
// The caller closes LogData.LogFile when it is set.
func (build *LogBuild) Make() (logData *LogData, err error) {
	logData = new(LogData)
	writer := build.writer
	if build.path != "" {
		logData.LogFile, err = os.OpenFile(build.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return nil, err
		}
		writer = zerolog.SyncWriter(logData.LogFile)
	}
	logData.Logger = zerolog.New(writer).Level(build.level).With().Timestamp().Logger()
	return logData, nil
}

// Handler wraps the built logger in the Logger interface.
func (logData *LogData) Handler() *ZerologHandler {
	return NewZerolog(logData.Logger)
}

// Close closes the log file, if any.
func (logData *LogData) Close() error {
	if logData.LogFile == nil {
		return nil
	}
	return logData.LogFile.Close()
}
