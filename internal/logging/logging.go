// Package logging builds the shared application logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// NewLogger creates a logrus logger writing to stderr. When logDir is
// non-empty the logger additionally writes to a size-rotated file in that
// directory.
func NewLogger(logDir string) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	log.SetFormatter(&formatter.Formatter{
		TimestampFormat: "02 Jan 06 - 15:04:05",
		HideKeys:        false,
		NoColors:        false,
	})

	writers := []io.Writer{os.Stderr}
	if logDir != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(logDir, "mudra-"+time.Now().Format("2006-01-02")+".log"),
			LocalTime:  true,
			Compress:   true,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
		})
	}
	log.SetOutput(io.MultiWriter(writers...))

	return log
}
