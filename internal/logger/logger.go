package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger. DEBUG=1 turns on debug output;
// EDL2MOSEQ_QUIET=1 keeps only warnings and errors, for batch scripts
// that convert many sessions and only care about problems.
var Log = newLogger(os.Getenv("DEBUG"), os.Getenv("EDL2MOSEQ_QUIET"))

func newLogger(debug, quiet string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		ForceColors:      true,
		DisableTimestamp: true,
	})
	log.SetLevel(pickLevel(debug, quiet))
	return log
}

// pickLevel resolves the log level from the two env toggles; debug
// wins over quiet.
func pickLevel(debug, quiet string) logrus.Level {
	switch {
	case debug == "1":
		return logrus.DebugLevel
	case quiet == "1":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}
