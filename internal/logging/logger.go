package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/2beens/repvision/pkg"
)

const (
	defaultMaxSizeMB  = 50
	sentryFlushPeriod = 5 * time.Second
)

type LoggerSetupParams struct {
	// LogFileName empty means stdout only
	LogFileName   string
	LogToStdout   bool
	LogLevel      string
	LogFormatJSON bool

	Environment      string
	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
	SentryRelease    string

	MaxSizeMB int
	// rotated files to keep, 0 keeps all
	MaxBackups int
}

// Setup configures the global logrus logger. The returned func flushes
// buffered sentry events and closes the log file, call it last on shutdown.
func Setup(params LoggerSetupParams) (func(), error) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	logrus.SetLevel(GetLevel(params.LogLevel))

	out, closer := output(params)
	logrus.SetOutput(out)

	sentryOn := false
	if params.SentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Environment: params.Environment,
			Dsn:         params.SentryDSN,
			ServerName:  params.SentryServerName,
			Release:     params.SentryRelease,
		}); err != nil {
			closeQuietly(closer)
			return nil, fmt.Errorf("sentry init: %w", err)
		}
		logrus.AddHook(NewSentryHook([]logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		}))
		sentryOn = true
		logrus.Infoln("sentry hook registered")
	}

	return func() {
		if sentryOn && !sentry.Flush(sentryFlushPeriod) {
			logrus.Warnln("sentry flush timed out")
		}
		closeQuietly(closer)
	}, nil
}

// output picks where log lines go. The closer is nil for stdout.
func output(params LoggerSetupParams) (io.Writer, io.Closer) {
	if params.LogFileName == "" {
		return os.Stdout, nil
	}

	fileName := params.LogFileName
	if filepath.Ext(fileName) != ".log" {
		fileName += ".log"
	}
	maxSize := params.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}

	rotated := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    maxSize,
		MaxBackups: params.MaxBackups,
		LocalTime:  false,
		Compress:   true,
	}
	if params.LogToStdout {
		return pkg.NewLogWriter(os.Stdout, rotated), rotated
	}
	return rotated, rotated
}

func closeQuietly(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close log output: %s\n", err)
	}
}

// GetLevel parses a logrus level name, falling back to info.
func GetLevel(level string) logrus.Level {
	lvl, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return lvl
}
