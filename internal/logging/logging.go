package logging

import (
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger construction.
type Options struct {
	Level  string // zerolog level name, "" means info
	Pretty bool   // human-readable console output on stderr
	Out    io.Writer
}

var (
	defaultOnce   sync.Once
	defaultLogger zerolog.Logger
)

func init() {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.TimestampFieldName = "time"
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		function := ""
		fun := runtime.FuncForPC(pc)
		if fun != nil {
			funName := fun.Name()
			slash := strings.LastIndex(funName, "/")
			if slash > 0 {
				funName = funName[slash+1:]
			}
			function = " " + funName + "()"
		}
		return file + ":" + strconv.Itoa(line) + function
	}
}

// New builds a logger from opts.
func New(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	if opts.Pretty {
		logger = logger.Output(zerolog.ConsoleWriter{Out: out})
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		if l, err := zerolog.ParseLevel(opts.Level); err == nil {
			level = l
		}
	}
	return logger.Level(level)
}

// Default returns the process logger, configured from the environment the
// first time it is used (PRETTY=1, DEBUG=1).
func Default() zerolog.Logger {
	defaultOnce.Do(func() {
		opts := Options{Pretty: os.Getenv("PRETTY") == "1"}
		if os.Getenv("DEBUG") == "1" {
			opts.Level = zerolog.DebugLevel.String()
		}
		defaultLogger = New(opts)
	})
	return defaultLogger
}
